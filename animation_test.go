package puppet

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
)

// float32 tween state limits precision.
const tweenEpsilon = 1e-6

func TestTweenRotationReachesTarget(t *testing.T) {
	j := NewJoint("knee", 1, mgl64.Vec3{})
	tw := TweenRotation(j, AxisY, math.Pi/2, 1.0, ease.Linear)
	for i := 0; i < 5; i++ {
		if err := tw.Update(0.25); err != nil {
			t.Fatal(err)
		}
	}
	if !tw.Done {
		t.Error("tween not done")
	}
	if math.Abs(j.Rotation[1]-math.Pi/2) > tweenEpsilon {
		t.Errorf("Rotation.y = %v, want pi/2", j.Rotation[1])
	}
	if tw.Joint() != j {
		t.Error("Joint() mismatch")
	}
}

func TestTweenRotationMidpoint(t *testing.T) {
	j := NewJoint("knee", 1, mgl64.Vec3{})
	tw := TweenRotation(j, AxisX, 2, 1.0, ease.Linear)
	_ = tw.Update(0.5)
	if math.Abs(j.Rotation[0]-1) > tweenEpsilon {
		t.Errorf("Rotation.x = %v, want 1", j.Rotation[0])
	}
	if tw.Done {
		t.Error("tween done at midpoint")
	}
	// Other axes untouched.
	if j.Rotation[1] != 0 || j.Rotation[2] != 0 {
		t.Errorf("Rotation = %v", j.Rotation)
	}
}

func TestTweenPoseAllAxes(t *testing.T) {
	j := NewJoint("back", 1, mgl64.Vec3{0.1, 0.2, 0.3})
	to := mgl64.Vec3{1, -1, 0.5}
	tw := TweenPose(j, to, 0.5, ease.InOutQuad)
	for !tw.Done {
		if err := tw.Update(0.1); err != nil {
			t.Fatal(err)
		}
	}
	for i := range to {
		if math.Abs(j.Rotation[i]-to[i]) > tweenEpsilon {
			t.Errorf("Rotation = %v, want %v", j.Rotation, to)
		}
	}
}

func TestTweenDoneIsNoop(t *testing.T) {
	j := NewJoint("j", 1, mgl64.Vec3{})
	tw := TweenRotation(j, AxisZ, 1, 0.1, ease.Linear)
	_ = tw.Update(1)
	j.Rotation[2] = 5
	_ = tw.Update(1)
	if j.Rotation[2] != 5 {
		t.Error("finished tween kept writing")
	}
}

func TestFigureTweensAdvanceAndDrop(t *testing.T) {
	fig, _ := newTestFigure(t)
	knee, _ := fig.Joint(JointRightLowerLeg)
	fig.AddTween(TweenRotation(knee, AxisY, 1, 0.1, ease.Linear))
	if !fig.Tweening() {
		t.Fatal("Tweening = false after AddTween")
	}
	for i := 0; i < 10 && fig.Tweening(); i++ {
		if err := fig.Update(1.0 / 60); err != nil {
			t.Fatal(err)
		}
	}
	if fig.Tweening() {
		t.Error("tween never finished")
	}
	if math.Abs(knee.Rotation[1]-1) > tweenEpsilon {
		t.Errorf("Rotation.y = %v, want 1", knee.Rotation[1])
	}
	// Update propagated the final angle.
	if !knee.Propagated() {
		t.Error("knee not propagated")
	}
}

func TestEaseByName(t *testing.T) {
	if fn, err := EaseByName(""); err != nil || fn == nil {
		t.Errorf("empty name: %v", err)
	}
	for name := range easings {
		if _, err := EaseByName(name); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	if _, err := EaseByName("wobble"); err == nil {
		t.Error("expected error for unknown easing")
	}
}
