package puppet

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rect is an axis-aligned rectangle. In screen space the origin is at the
// top-left with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// PlaneBounds returns the bounding rectangle, in plane units, of every point
// the skeleton draws in its current pose, projected through plane. Y is the
// plane's second axis, not flipped. Propagate the skeleton first.
func PlaneBounds(root *Joint, plane mgl64.Mat4) Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	root.Walk(func(j *Joint) bool {
		for _, p := range j.renderPoints() {
			s := plane.Mul4x1(p)
			minX = math.Min(minX, s[0])
			minY = math.Min(minY, s[1])
			maxX = math.Max(maxX, s[0])
			maxY = math.Max(maxY, s[1])
		}
		return true
	})
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// FitProjection returns a projection through plane whose uniform scale and
// origin place the skeleton's current pose centered inside viewport, with
// margin pixels left free on every side. A skeleton with no extent on
// either axis gets one pixel per unit.
func FitProjection(name string, plane mgl64.Mat4, root *Joint, viewport Rect, margin float64) Projection {
	b := PlaneBounds(root, plane)

	scale := math.Inf(1)
	if b.Width > 0 {
		scale = math.Min(scale, (viewport.Width-2*margin)/b.Width)
	}
	if b.Height > 0 {
		scale = math.Min(scale, (viewport.Height-2*margin)/b.Height)
	}
	if math.IsInf(scale, 1) || scale <= 0 {
		scale = 1
	}

	cx := viewport.X + viewport.Width/2
	cy := viewport.Y + viewport.Height/2
	// screen = scale*u + ox and screen = -scale*v + oy map the bounds'
	// center onto the viewport's center.
	ox := cx - scale*(b.X+b.Width/2)
	oy := cy + scale*(b.Y+b.Height/2)
	return Projection{Name: name, Plane: plane, Screen: NewScreenMapping(scale, ox, oy)}
}
