package puppet

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// PoseTween animates up to 3 Euler angles of one joint simultaneously.
// Create one via TweenRotation or TweenPose and either call Update(dt) each
// frame or hand it to Figure.AddTween. Every step writes through
// Joint.SetRotationAxis, so world state changes on the next propagation.
type PoseTween struct {
	tweens [3]*gween.Tween
	axes   [3]Axis
	count  int
	joint  *Joint
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// joint's rotation.
func (t *PoseTween) Update(dt float32) error {
	if t.Done {
		return nil
	}
	allDone := true
	for i := 0; i < t.count; i++ {
		val, finished := t.tweens[i].Update(dt)
		if err := t.joint.SetRotationAxis(t.axes[i], float64(val)); err != nil {
			t.Done = true
			return err
		}
		if !finished {
			allDone = false
		}
	}
	t.Done = allDone
	return nil
}

// Joint returns the animated joint.
func (t *PoseTween) Joint() *Joint {
	return t.joint
}

// TweenRotation creates a PoseTween that animates one Euler angle of j to
// the given value (radians) over duration seconds.
func TweenRotation(j *Joint, axis Axis, to float64, duration float32, fn ease.TweenFunc) *PoseTween {
	t := &PoseTween{count: 1, joint: j}
	t.tweens[0] = gween.New(float32(j.Rotation[axis]), float32(to), duration, fn)
	t.axes[0] = axis
	return t
}

// TweenPose creates a PoseTween that animates all three Euler angles of j to
// the target rotation over duration seconds.
func TweenPose(j *Joint, to mgl64.Vec3, duration float32, fn ease.TweenFunc) *PoseTween {
	t := &PoseTween{count: 3, joint: j}
	for i, axis := range []Axis{AxisX, AxisY, AxisZ} {
		t.tweens[i] = gween.New(float32(j.Rotation[axis]), float32(to[axis]), duration, fn)
		t.axes[i] = axis
	}
	return t
}

// AddTween registers a tween advanced by every Figure.Update until it is
// done. The tween's joint must belong to the figure.
func (f *Figure) AddTween(t *PoseTween) {
	f.tweens = append(f.tweens, t)
}

// Tweening reports whether any registered tween is still running.
func (f *Figure) Tweening() bool {
	return len(f.tweens) > 0
}

// updateTweens advances registered tweens and drops finished ones.
func (f *Figure) updateTweens(dt float32) error {
	kept := f.tweens[:0]
	var err error
	for _, t := range f.tweens {
		if e := t.Update(dt); e != nil && err == nil {
			err = e
		}
		if !t.Done {
			kept = append(kept, t)
		}
	}
	clear(f.tweens[len(kept):])
	f.tweens = kept
	return err
}

var easings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inSine":     ease.InSine,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
	"outBounce":  ease.OutBounce,
	"outElastic": ease.OutElastic,
}

// EaseByName returns the easing function with the given name. An empty name
// selects linear.
func EaseByName(name string) (ease.TweenFunc, error) {
	if name == "" {
		return ease.Linear, nil
	}
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("puppet: unknown easing %q", name)
	}
	return fn, nil
}
