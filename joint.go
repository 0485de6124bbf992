package puppet

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Shape selects how a joint is drawn. It is fixed at construction: views
// commit to a primitive kind when they are built.
type Shape uint8

const (
	ShapeSegment Shape = iota // line from the parent's end to this joint's end
	ShapePolygon              // closed polygon through the joint's local points
)

func (s Shape) String() string {
	switch s {
	case ShapeSegment:
		return "segment"
	case ShapePolygon:
		return "polygon"
	default:
		return fmt.Sprintf("Shape(%d)", uint8(s))
	}
}

// Joint is one bone of a skeleton tree. Only Rotation is expected to change
// once the tree is built; world-space values are derived by Propagate and
// never stored at construction time.
type Joint struct {
	Name string

	// Hierarchy
	Parent   *Joint
	children []*Joint

	// LocalOrigin is the joint's starting point in its parent's frame. It is
	// reported by WorldStart/WorldEnd until the first propagation and has no
	// effect afterwards.
	LocalOrigin mgl64.Vec3

	// Length is the segment length along local Z before rotation. Zero is a
	// legal structural anchor (pelvis, neck).
	Length float64

	// Rotation holds Euler angles in radians, applied X, then Y, then Z.
	Rotation mgl64.Vec3

	shape   Shape
	polygon []mgl64.Vec4 // local-frame points, homogeneous

	// Staged by validatePose, committed by propagatePose
	nextLocal mgl64.Mat4
	nextWorld mgl64.Mat4

	// Computed by Propagate
	localTransform mgl64.Mat4
	worldTransform mgl64.Mat4
	worldStart     mgl64.Vec4
	worldEnd       mgl64.Vec4
	worldPolygon   []mgl64.Vec4 // preallocated, reused every pass
	segment        [2]mgl64.Vec4
	propagated     bool
}

// NewJoint creates a segment joint.
func NewJoint(name string, length float64, rotation mgl64.Vec3) *Joint {
	return &Joint{
		Name:           name,
		Length:         length,
		Rotation:       rotation,
		shape:          ShapeSegment,
		localTransform: mgl64.Ident4(),
		worldTransform: mgl64.Ident4(),
	}
}

// NewPolygonJoint creates a joint drawn as a closed polygon through points,
// given in the joint's local frame (before its own rotation and translation
// are applied by the world transform).
// Panics if fewer than 3 points are given or any point is non-finite.
func NewPolygonJoint(name string, length float64, rotation mgl64.Vec3, points []mgl64.Vec3) *Joint {
	if len(points) < 3 {
		panic(fmt.Sprintf("puppet: polygon joint %q needs at least 3 points, got %d", name, len(points)))
	}
	j := NewJoint(name, length, rotation)
	j.shape = ShapePolygon
	j.polygon = make([]mgl64.Vec4, len(points))
	for i, p := range points {
		if !isFiniteVec3(p) {
			panic(fmt.Sprintf("puppet: polygon joint %q has a non-finite point at %d", name, i))
		}
		j.polygon[i] = p.Vec4(1)
	}
	return j
}

// Shape returns the joint's drawing shape.
func (j *Joint) Shape() Shape {
	return j.shape
}

// PolygonPoints returns a copy of the local-frame polygon points, or nil for
// segment joints.
func (j *Joint) PolygonPoints() []mgl64.Vec3 {
	if j.shape != ShapePolygon {
		return nil
	}
	out := make([]mgl64.Vec3, len(j.polygon))
	for i, p := range j.polygon {
		out[i] = p.Vec3()
	}
	return out
}

// --- Tree manipulation ---

// AddChild appends child to this joint's children. If child already has a
// parent, it is removed from that parent first.
// Panics if child is nil or is an ancestor of this joint (cycle).
//
// Topology changes invalidate every view built over the tree; rebuild them.
func (j *Joint) AddChild(child *Joint) {
	if child == nil {
		panic("puppet: cannot add nil child")
	}
	if isAncestor(child, j) {
		panic("puppet: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = j
	j.children = append(j.children, child)
}

// AddChildren appends every child in order.
func (j *Joint) AddChildren(children ...*Joint) {
	for _, c := range children {
		j.AddChild(c)
	}
}

// RemoveChild detaches child from this joint.
// Panics if child.Parent != j.
func (j *Joint) RemoveChild(child *Joint) {
	if child.Parent != j {
		panic("puppet: child's parent is not this joint")
	}
	j.removeChildByPtr(child)
	child.Parent = nil
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (j *Joint) Children() []*Joint {
	return j.children
}

// NumChildren returns the number of children.
func (j *Joint) NumChildren() int {
	return len(j.children)
}

// ChildAt returns the child at the given index.
func (j *Joint) ChildAt(index int) *Joint {
	return j.children[index]
}

// Walk visits j and its descendants depth-first in child order. Returning
// false from fn skips that joint's subtree.
func (j *Joint) Walk(fn func(*Joint) bool) {
	if !fn(j) {
		return
	}
	for _, c := range j.children {
		c.Walk(fn)
	}
}

// Find returns the first joint named name in j's subtree, or nil.
func (j *Joint) Find(name string) *Joint {
	var found *Joint
	j.Walk(func(n *Joint) bool {
		if found != nil {
			return false
		}
		if n.Name == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// Path returns the slash-separated joint names from the root down to j.
func (j *Joint) Path() string {
	var parts []string
	for p := j; p != nil; p = p.Parent {
		name := p.Name
		if name == "" {
			name = "?"
		}
		parts = append(parts, name)
	}
	for l, r := 0, len(parts)-1; l < r; l, r = l+1, r-1 {
		parts[l], parts[r] = parts[r], parts[l]
	}
	return strings.Join(parts, "/")
}

// --- Pose ---

// SetRotation replaces all three Euler angles. Non-finite values are
// rejected and leave the rotation unchanged.
func (j *Joint) SetRotation(r mgl64.Vec3) error {
	if !isFiniteVec3(r) {
		return &PoseError{Joint: j.Name, Field: "rotation"}
	}
	j.Rotation = r
	return nil
}

// SetRotationAxis replaces one Euler angle (radians). Non-finite values are
// rejected and leave the rotation unchanged.
func (j *Joint) SetRotationAxis(axis Axis, radians float64) error {
	if axis > AxisZ {
		return fmt.Errorf("%w: %v", ErrUnknownAxis, axis)
	}
	if !isFinite(radians) {
		return &PoseError{Joint: j.Name, Field: "rotation"}
	}
	j.Rotation[axis] = radians
	return nil
}

// Propagate recomputes local and world transforms for j and every
// descendant, using parentWorld as j's parent frame. Call it on the root
// with mgl64.Ident4().
//
// Every input and every resulting world value is checked before anything is
// written: on error no joint's derived state changes.
func (j *Joint) Propagate(parentWorld mgl64.Mat4) error {
	if !isFiniteMat4(parentWorld) {
		return &PoseError{Field: "parent transform"}
	}
	if err := validatePose(j, parentWorld); err != nil {
		return err
	}
	propagatePose(j, parentWorld)
	return nil
}

// validatePose checks every rotation and length in the subtree and stages
// the resulting transforms, rejecting any that overflow. Derived state is
// left alone.
func validatePose(j *Joint, parentWorld mgl64.Mat4) error {
	if !isFinite(j.Length) {
		return &PoseError{Joint: j.Name, Field: "length"}
	}
	if !isFiniteVec3(j.Rotation) {
		return &PoseError{Joint: j.Name, Field: "rotation"}
	}
	j.nextLocal = LocalTransform(j.Length, j.Rotation)
	j.nextWorld = parentWorld.Mul4(j.nextLocal)
	if !isFiniteMat4(j.nextWorld) {
		return &PoseError{Joint: j.Name, Field: "world transform"}
	}
	for _, p := range j.polygon {
		if !isFiniteVec4(j.nextWorld.Mul4x1(p)) {
			return &PoseError{Joint: j.Name, Field: "polygon"}
		}
	}
	for _, c := range j.children {
		if err := validatePose(c, j.nextWorld); err != nil {
			return err
		}
	}
	return nil
}

// propagatePose commits the transforms staged by validatePose. Steps per
// joint, in order: local transform, world start, world transform, world end,
// polygon points, children.
func propagatePose(j *Joint, parentWorld mgl64.Mat4) {
	j.localTransform = j.nextLocal
	j.worldStart = parentWorld.Mul4x1(originPoint)
	j.worldTransform = j.nextWorld
	j.worldEnd = j.worldTransform.Mul4x1(originPoint)
	if j.shape == ShapePolygon {
		j.worldPolygon = transformPoints(j.worldTransform, j.polygon, j.worldPolygon)
	}
	j.propagated = true

	for _, child := range j.children {
		propagatePose(child, j.worldTransform)
	}
}

// firstUnpropagated returns the first joint in j's subtree that has never
// been propagated, or nil.
func firstUnpropagated(j *Joint) *Joint {
	if !j.propagated {
		return j
	}
	for _, c := range j.children {
		if u := firstUnpropagated(c); u != nil {
			return u
		}
	}
	return nil
}

// --- Derived state ---

// Propagated reports whether j has been through at least one propagation.
func (j *Joint) Propagated() bool {
	return j.propagated
}

// LocalTransform returns the local transform from the last propagation.
func (j *Joint) LocalTransform() mgl64.Mat4 {
	return j.localTransform
}

// WorldTransform returns the cumulative transform from the last propagation.
func (j *Joint) WorldTransform() mgl64.Mat4 {
	return j.worldTransform
}

// WorldStart returns the parent's world origin, where this segment starts.
func (j *Joint) WorldStart() mgl64.Vec3 {
	if !j.propagated {
		return j.LocalOrigin
	}
	return j.worldStart.Vec3()
}

// WorldEnd returns this joint's world origin, where its segment ends.
func (j *Joint) WorldEnd() mgl64.Vec3 {
	if !j.propagated {
		return j.LocalOrigin
	}
	return j.worldEnd.Vec3()
}

// WorldPolygon returns a copy of the world-space polygon points, or nil for
// segment joints and before the first propagation.
func (j *Joint) WorldPolygon() []mgl64.Vec3 {
	if j.shape != ShapePolygon || !j.propagated {
		return nil
	}
	out := make([]mgl64.Vec3, len(j.worldPolygon))
	for i, p := range j.worldPolygon {
		out[i] = p.Vec3()
	}
	return out
}

// renderPoints returns the world-space points a view draws for j. The slice
// aliases internal buffers and is only valid until the next propagation.
func (j *Joint) renderPoints() []mgl64.Vec4 {
	if j.shape == ShapePolygon {
		return j.worldPolygon
	}
	j.segment[0] = j.worldStart
	j.segment[1] = j.worldEnd
	return j.segment[:]
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of joint (or joint itself).
func isAncestor(candidate, joint *Joint) bool {
	for p := joint; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from j.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (j *Joint) removeChildByPtr(child *Joint) {
	for i, c := range j.children {
		if c == child {
			copy(j.children[i:], j.children[i+1:])
			j.children[len(j.children)-1] = nil
			j.children = j.children[:len(j.children)-1]
			return
		}
	}
}
