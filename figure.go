package puppet

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// PoseEdit records one rotation change applied through a Figure.
type PoseEdit struct {
	Joint   string
	Axis    Axis
	Radians float64
	Frame   uint64 // Figure frame counter when the edit was applied
}

// PoseObserver is the interface for optional pose-edit forwarding. When set
// on a Figure, every applied edit is reported after it is written.
type PoseObserver interface {
	OnPoseEdit(edit PoseEdit)
}

// Figure is the top-level coordinator: it owns the skeleton root, a name
// index over its joints and every view observing it, and sequences pose
// edits, skeleton propagation and view propagation.
//
// Figure's methods are not safe for concurrent use, with the exception of
// QueueRotation, which may be called from any goroutine; queued edits are
// applied by the next Update.
type Figure struct {
	root   *Joint
	joints map[string]*Joint
	views  []*View

	mu    sync.Mutex
	queue []PoseEdit

	observer   PoseObserver
	updateFunc func() error
	tweens     []*PoseTween
	script     *PoseScript
	snapshots  snapshotState
	frame      uint64

	debug  bool
	logger *slog.Logger
}

// NewFigure indexes the joint tree rooted at root by name. Joints with an
// empty name are allowed but cannot be addressed by name.
func NewFigure(root *Joint) (*Figure, error) {
	if root == nil {
		panic("puppet: figure needs a skeleton root")
	}
	f := &Figure{
		root:   root,
		logger: slog.New(slog.DiscardHandler),
	}
	if err := f.index(); err != nil {
		return nil, err
	}
	f.snapshots.config.Dir = defaultSnapshotDir
	return f, nil
}

func (f *Figure) index() error {
	joints := make(map[string]*Joint)
	var err error
	f.root.Walk(func(j *Joint) bool {
		if err != nil {
			return false
		}
		if j.Name == "" {
			return true
		}
		if _, dup := joints[j.Name]; dup {
			err = fmt.Errorf("%w: %q", ErrDuplicateJoint, j.Name)
			return false
		}
		joints[j.Name] = j
		return true
	})
	if err != nil {
		return err
	}
	f.joints = joints
	return nil
}

// Root returns the skeleton root.
func (f *Figure) Root() *Joint {
	return f.root
}

// Joint looks up a joint by name.
func (f *Figure) Joint(name string) (*Joint, bool) {
	j, ok := f.joints[name]
	return j, ok
}

// JointNames returns every indexed joint name, sorted.
func (f *Figure) JointNames() []string {
	return slices.Sorted(maps.Keys(f.joints))
}

// --- Views ---

// NewView builds a view of the skeleton through p onto surface and
// registers it.
func (f *Figure) NewView(surface Surface, p Projection) *View {
	v := BuildProjectedView(surface, p, f.root)
	f.views = append(f.views, v)
	return v
}

// AddView registers a view built elsewhere. Panics if the view mirrors a
// different skeleton.
func (f *Figure) AddView(v *View) {
	if v.skeleton != f.root {
		panic("puppet: view mirrors a different skeleton")
	}
	f.views = append(f.views, v)
}

// RemoveView unregisters a view. Its primitives stay on its surface.
func (f *Figure) RemoveView(v *View) {
	for i, c := range f.views {
		if c == v {
			f.views = append(f.views[:i], f.views[i+1:]...)
			return
		}
	}
}

// Views returns the registered views. The returned slice MUST NOT be mutated.
func (f *Figure) Views() []*View {
	return f.views
}

// Restructure re-indexes joint names and rebuilds every view after joints
// were added or removed.
func (f *Figure) Restructure() error {
	if err := f.index(); err != nil {
		return err
	}
	for _, v := range f.views {
		v.Rebuild()
	}
	if f.debug {
		debugCheckTree(f.logger, f.root)
	}
	return nil
}

// --- Pose edits ---

// SetLocalRotationAxis sets one Euler angle (radians) of the named joint.
// Call Refresh afterwards to propagate the change to every view.
func (f *Figure) SetLocalRotationAxis(joint string, axis Axis, radians float64) error {
	j, ok := f.joints[joint]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownJoint, joint)
	}
	if err := j.SetRotationAxis(axis, radians); err != nil {
		return err
	}
	if f.observer != nil {
		f.observer.OnPoseEdit(PoseEdit{Joint: joint, Axis: axis, Radians: radians, Frame: f.frame})
	}
	return nil
}

// SetRotationDegrees is SetLocalRotationAxis with the angle in degrees.
func (f *Figure) SetRotationDegrees(joint string, axis Axis, degrees float64) error {
	return f.SetLocalRotationAxis(joint, axis, Deg2Rad(degrees))
}

// QueueRotation records an edit to be applied by the next Update. Safe for
// concurrent use; edits are applied in the order they were queued.
func (f *Figure) QueueRotation(joint string, axis Axis, radians float64) {
	f.mu.Lock()
	f.queue = append(f.queue, PoseEdit{Joint: joint, Axis: axis, Radians: radians})
	f.mu.Unlock()
}

// drainQueue applies every queued edit. Invalid edits are skipped and
// reported together.
func (f *Figure) drainQueue() error {
	f.mu.Lock()
	edits := f.queue
	f.queue = nil
	f.mu.Unlock()

	var errs []error
	for _, e := range edits {
		if err := f.SetLocalRotationAxis(e.Joint, e.Axis, e.Radians); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// --- Propagation ---

// Propagate recomputes the skeleton's world state without touching views.
func (f *Figure) Propagate() error {
	return f.root.Propagate(mgl64.Ident4())
}

// Refresh runs one full pass: skeleton propagation, then every view's
// propagation in registration order. All view topologies and all pose
// values are checked before anything is written, so a failed Refresh leaves
// world state and primitives as they were after the last successful pass.
func (f *Figure) Refresh() error {
	var stats refreshStats
	var t0 time.Time

	for _, v := range f.views {
		if err := v.CheckTopology(); err != nil {
			return err
		}
	}

	if f.debug {
		t0 = time.Now()
	}
	if err := f.root.Propagate(mgl64.Ident4()); err != nil {
		return err
	}
	if f.debug {
		stats.propagateTime = time.Since(t0)
		t0 = time.Now()
	}

	for _, v := range f.views {
		c0, u0 := v.Stats()
		v.render(v.root, v.skeleton)
		c1, u1 := v.Stats()
		stats.creates += c1 - c0
		stats.updates += u1 - u0
	}

	if f.debug {
		stats.renderTime = time.Since(t0)
		stats.joints = len(f.joints)
		stats.views = len(f.views)
		f.debugLog(stats)
	}
	return nil
}

// SetUpdateFunc sets a callback run at the start of every Update, before
// queued edits are applied. Returning an error aborts that Update.
func (f *Figure) SetUpdateFunc(fn func() error) {
	f.updateFunc = fn
}

// Update advances one frame of dt seconds: the update callback, the pose
// script, tweens, queued edits, one Refresh, then pending snapshots.
func (f *Figure) Update(dt float32) error {
	if f.updateFunc != nil {
		if err := f.updateFunc(); err != nil {
			return err
		}
	}
	if f.script != nil {
		if err := f.script.step(f); err != nil {
			return err
		}
	}
	if err := f.updateTweens(dt); err != nil {
		return err
	}
	queued := f.drainQueue()
	if err := f.Refresh(); err != nil {
		return err
	}
	f.flushSnapshots()
	f.frame++
	return queued
}

// Frame returns the number of completed Updates.
func (f *Figure) Frame() uint64 {
	return f.frame
}

// SetPoseObserver sets the optional pose-edit observer.
func (f *Figure) SetPoseObserver(obs PoseObserver) {
	f.observer = obs
}

// SetPoseScript attaches a pose script; it advances one step per Update.
func (f *Figure) SetPoseScript(s *PoseScript) {
	f.script = s
}
