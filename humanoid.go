package puppet

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Joint names of the skeleton built by NewHumanoid.
const (
	JointCenter        = "center"
	JointBack          = "back"
	JointHead          = "head"
	JointLeftHip       = "leftHip"
	JointLeftUpperLeg  = "leftUpperLeg"
	JointLeftLowerLeg  = "leftLowerLeg"
	JointRightHip      = "rightHip"
	JointRightUpperLeg = "rightUpperLeg"
	JointRightLowerLeg = "rightLowerLeg"
	JointLeftShoulder  = "leftShoulder"
	JointLeftUpperArm  = "leftUpperArm"
	JointLeftLowerArm  = "leftLowerArm"
	JointLeftHand      = "leftHand"
	JointRightShoulder = "rightShoulder"
	JointRightUpperArm = "rightUpperArm"
	JointRightLowerArm = "rightLowerArm"
	JointRightHand     = "rightHand"
)

// RegularPolygon returns n points evenly spaced on a circle of the given
// radius in the local Oyz plane (x = 0), starting on +Y. Panics if n < 3.
func RegularPolygon(n int, radius float64) []mgl64.Vec3 {
	if n < 3 {
		panic("puppet: regular polygon needs at least 3 sides")
	}
	pts := make([]mgl64.Vec3, n)
	step := 2 * math.Pi / float64(n)
	for i := range pts {
		a := step * float64(i)
		pts[i] = mgl64.Vec3{0, radius * math.Cos(a), radius * math.Sin(a)}
	}
	return pts
}

// NewHumanoid builds a 17-joint stick figure standing along +Z with its legs
// and arms spread in the YZ plane. The head and hands are decagons; the
// center is a zero-length anchor at the origin.
func NewHumanoid() *Joint {
	center := NewJoint(JointCenter, 0, mgl64.Vec3{})

	back := NewJoint(JointBack, 0.6, mgl64.Vec3{0.1, 0.1, 0.1})
	head := NewPolygonJoint(JointHead, 0.30, mgl64.Vec3{}, RegularPolygon(10, 0.15))
	back.AddChild(head)

	leftHip := NewJoint(JointLeftHip, 0.15, mgl64.Vec3{-2.0, 0, 0})
	leftUpperLeg := NewJoint(JointLeftUpperLeg, 0.40, mgl64.Vec3{-0.25 * math.Pi, 0, 0})
	leftLowerLeg := NewJoint(JointLeftLowerLeg, 0.40, mgl64.Vec3{})
	leftUpperLeg.AddChild(leftLowerLeg)
	leftHip.AddChild(leftUpperLeg)

	rightHip := NewJoint(JointRightHip, 0.15, mgl64.Vec3{2.0, 0, 0})
	rightUpperLeg := NewJoint(JointRightUpperLeg, 0.40, mgl64.Vec3{0.25 * math.Pi, 0, 0})
	rightLowerLeg := NewJoint(JointRightLowerLeg, 0.40, mgl64.Vec3{})
	rightUpperLeg.AddChild(rightLowerLeg)
	rightHip.AddChild(rightUpperLeg)

	back.AddChild(newArm(JointLeftShoulder, JointLeftUpperArm, JointLeftLowerArm, JointLeftHand, -1))
	back.AddChild(newArm(JointRightShoulder, JointRightUpperArm, JointRightLowerArm, JointRightHand, 1))

	center.AddChildren(back, leftHip, rightHip)
	return center
}

// newArm builds shoulder, upper arm, lower arm and hand. side is -1 for the
// left arm and 1 for the right.
func newArm(shoulderName, upperName, lowerName, handName string, side float64) *Joint {
	shoulder := NewJoint(shoulderName, 0.15, mgl64.Vec3{side * 0.5 * math.Pi, 0, 0})
	upper := NewJoint(upperName, 0.30, mgl64.Vec3{side * 1.0, 0, 0})
	lower := NewJoint(lowerName, 0.30, mgl64.Vec3{side * 1.0, 0, 0})
	hand := NewPolygonJoint(handName, 0, mgl64.Vec3{}, RegularPolygon(10, 0.05))
	lower.AddChild(hand)
	upper.AddChild(lower)
	shoulder.AddChild(upper)
	return shoulder
}

// Control binds a named input, such as a slider, to one rotation axis of
// one joint.
type Control struct {
	Name  string
	Joint string
	Axis  Axis
}

// HumanoidControls returns the standard controls of a NewHumanoid skeleton.
func HumanoidControls() []Control {
	return []Control{
		{Name: "spinAroundAxis", Joint: JointCenter, Axis: AxisZ},
		{Name: "centerSideward", Joint: JointBack, Axis: AxisX},
		{Name: "centerForward", Joint: JointBack, Axis: AxisY},
		{Name: "leftKnee", Joint: JointLeftLowerLeg, Axis: AxisY},
		{Name: "rightKnee", Joint: JointRightLowerLeg, Axis: AxisY},
		{Name: "leftElbow", Joint: JointLeftLowerArm, Axis: AxisY},
		{Name: "rightElbow", Joint: JointRightLowerArm, Axis: AxisY},
	}
}

// ApplyControl sets the control's axis on its joint to degrees.
func (f *Figure) ApplyControl(c Control, degrees float64) error {
	return f.SetRotationDegrees(c.Joint, c.Axis, degrees)
}
