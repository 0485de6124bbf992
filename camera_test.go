package puppet

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	if !r.Contains(10, 20) || !r.Contains(40, 60) || !r.Contains(25, 30) {
		t.Error("point inside reported outside")
	}
	if r.Contains(9, 30) || r.Contains(25, 61) {
		t.Error("point outside reported inside")
	}
}

func TestPlaneBoundsChain(t *testing.T) {
	root, js := chain(1, 1)
	js[1].Rotation = mgl64.Vec3{-mgl64.DegToRad(90), 0, 0}
	if err := root.Propagate(mgl64.Ident4()); err != nil {
		t.Fatal(err)
	}
	// Root from (0,0,0) to (0,0,1); child bends to +Y: (0,1,1).
	b := PlaneBounds(root, PlaneYZ())
	assertNear(t, "X", b.X, 0)
	assertNear(t, "Y", b.Y, 0)
	assertNear(t, "Width", b.Width, 1)
	assertNear(t, "Height", b.Height, 1)
}

func TestFitProjectionCentersSkeleton(t *testing.T) {
	root := NewHumanoid()
	if err := root.Propagate(mgl64.Ident4()); err != nil {
		t.Fatal(err)
	}
	viewport := Rect{X: 100, Y: 0, Width: 200, Height: 400}
	p := FitProjection("front", PlaneYZ(), root, viewport, 10)
	if p.Name != "front" || p.Screen.ScaleY != -p.Screen.ScaleX {
		t.Fatalf("projection = %+v", p)
	}

	m := p.Matrix()
	minX, minY := 1e9, 1e9
	maxX, maxY := -1e9, -1e9
	root.Walk(func(j *Joint) bool {
		for _, pt := range j.renderPoints() {
			s := m.Mul4x1(pt)
			minX, maxX = min(minX, s[0]), max(maxX, s[0])
			minY, maxY = min(minY, s[1]), max(maxY, s[1])
		}
		return true
	})
	const tol = 1e-6
	if minX < 110-tol || maxX > 290+tol || minY < 10-tol || maxY > 390+tol {
		t.Errorf("screen bounds (%v,%v)-(%v,%v) escape the viewport margin", minX, minY, maxX, maxY)
	}
	// One axis is tight against the margin.
	if !(nearly(minX, 110) && nearly(maxX, 290)) && !(nearly(minY, 10) && nearly(maxY, 390)) {
		t.Errorf("no axis fills the viewport: (%v,%v)-(%v,%v)", minX, minY, maxX, maxY)
	}
	assertNear(t, "center x", (minX+maxX)/2, 200)
	assertNear(t, "center y", (minY+maxY)/2, 200)
}

func TestFitProjectionDegenerate(t *testing.T) {
	root := NewJoint("dot", 0, mgl64.Vec3{})
	if err := root.Propagate(mgl64.Ident4()); err != nil {
		t.Fatal(err)
	}
	p := FitProjection("front", PlaneYZ(), root, Rect{Width: 100, Height: 100}, 0)
	if p.Screen.ScaleX != 1 {
		t.Errorf("scale = %v, want 1", p.Screen.ScaleX)
	}
	s := p.Matrix().Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	assertNear(t, "x", s[0], 50)
	assertNear(t, "y", s[1], 50)
}

func nearly(a, b float64) bool {
	d := a - b
	return d < 1e-6 && d > -1e-6
}
