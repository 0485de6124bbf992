package puppet

import (
	"errors"
	"fmt"
)

var (
	// ErrTopologyMismatch reports a view tree whose shape no longer matches
	// the skeleton it mirrors. Rebuild the view to recover.
	ErrTopologyMismatch = errors.New("puppet: view topology does not match skeleton")

	// ErrNonFinite reports a NaN or infinite pose value.
	ErrNonFinite = errors.New("puppet: non-finite pose value")

	// ErrUnknownJoint reports a lookup of a joint name the figure does not have.
	ErrUnknownJoint = errors.New("puppet: unknown joint")

	// ErrDuplicateJoint reports two joints sharing one name in a figure.
	ErrDuplicateJoint = errors.New("puppet: duplicate joint name")

	// ErrPointCount reports a point list whose length does not fit the
	// primitive kind a view node committed to.
	ErrPointCount = errors.New("puppet: wrong point count for primitive")

	// ErrNotPropagated reports a view update over joints whose world state
	// has never been computed.
	ErrNotPropagated = errors.New("puppet: skeleton not propagated")

	// ErrUnknownAxis reports an axis name other than x, y or z.
	ErrUnknownAxis = errors.New("puppet: unknown axis")
)

// TopologyError describes where a view tree diverged from its skeleton.
type TopologyError struct {
	View string // view name
	Path string // slash-separated joint names from the root
	// ViewChildren and JointChildren are the diverging child counts.
	// They are equal when the mismatch is a shape change.
	ViewChildren  int
	JointChildren int
	ViewShape     Shape
	JointShape    Shape
}

func (e *TopologyError) Error() string {
	if e.ViewShape != e.JointShape {
		return fmt.Sprintf("puppet: view %q at %s: node committed to %s, joint is %s",
			e.View, e.Path, e.ViewShape, e.JointShape)
	}
	return fmt.Sprintf("puppet: view %q at %s: %d view children, %d joint children",
		e.View, e.Path, e.ViewChildren, e.JointChildren)
}

func (e *TopologyError) Unwrap() error { return ErrTopologyMismatch }

// PoseError describes a non-finite value found during propagation.
type PoseError struct {
	Joint string // joint name, or "" for the parent transform
	Field string // "rotation", "length", "world transform", "polygon", "point" or "parent transform"
}

func (e *PoseError) Error() string {
	if e.Joint == "" {
		return fmt.Sprintf("puppet: non-finite %s", e.Field)
	}
	return fmt.Sprintf("puppet: joint %q: non-finite %s", e.Joint, e.Field)
}

func (e *PoseError) Unwrap() error { return ErrNonFinite }
