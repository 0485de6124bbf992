package puppet

import "github.com/go-gl/mathgl/mgl64"

// World coordinates: Z is height, Y is left/right (negative is the viewer's
// left), X is towards/away from the viewer (negative is away).

// PlaneYZ returns the front-view projection: X is discarded, Y becomes
// screen X and Z becomes screen Y.
func PlaneYZ() mgl64.Mat4 {
	return mgl64.Mat4FromRows(
		mgl64.Vec4{0, 1, 0, 0},
		mgl64.Vec4{0, 0, 1, 0},
		mgl64.Vec4{0, 0, 0, 0},
		mgl64.Vec4{0, 0, 0, 1},
	)
}

// PlaneXZ returns the side-view projection: Y is discarded, X becomes
// screen X and Z becomes screen Y.
func PlaneXZ() mgl64.Mat4 {
	return mgl64.Mat4FromRows(
		mgl64.Vec4{1, 0, 0, 0},
		mgl64.Vec4{0, 0, 1, 0},
		mgl64.Vec4{0, 0, 0, 0},
		mgl64.Vec4{0, 0, 0, 1},
	)
}

// PlaneXY returns the top-view projection: Z is discarded, Y becomes
// screen X and X becomes screen Y.
func PlaneXY() mgl64.Mat4 {
	return mgl64.Mat4FromRows(
		mgl64.Vec4{0, 1, 0, 0},
		mgl64.Vec4{1, 0, 0, 0},
		mgl64.Vec4{0, 0, 0, 0},
		mgl64.Vec4{0, 0, 0, 1},
	)
}

// ScreenMapping places projected plane coordinates onto pixels: a per-axis
// scale followed by an offset.
type ScreenMapping struct {
	ScaleX, ScaleY   float64
	OffsetX, OffsetY float64
}

// NewScreenMapping returns a uniform mapping of pixelsPerUnit with the world
// origin at (originX, originY). The Y scale is negated: screen Y grows
// downwards while world height should appear as up.
func NewScreenMapping(pixelsPerUnit, originX, originY float64) ScreenMapping {
	return ScreenMapping{
		ScaleX:  pixelsPerUnit,
		ScaleY:  -pixelsPerUnit,
		OffsetX: originX,
		OffsetY: originY,
	}
}

// Matrix returns the mapping as a 4x4 homogeneous matrix.
func (m ScreenMapping) Matrix() mgl64.Mat4 {
	return mgl64.Mat4FromRows(
		mgl64.Vec4{m.ScaleX, 0, 0, m.OffsetX},
		mgl64.Vec4{0, m.ScaleY, 0, m.OffsetY},
		mgl64.Vec4{0, 0, 0, 0},
		mgl64.Vec4{0, 0, 0, 1},
	)
}

// WorldToScreen composes a screen mapping with a plane projection:
// screen · plane.
func WorldToScreen(screen, plane mgl64.Mat4) mgl64.Mat4 {
	return screen.Mul4(plane)
}

// Projection describes one logical view of a skeleton. It is plain data;
// compute Matrix once per view and treat the result as immutable.
type Projection struct {
	Name   string
	Plane  mgl64.Mat4
	Screen ScreenMapping
}

// Matrix returns the composed world-to-screen matrix.
func (p Projection) Matrix() mgl64.Mat4 {
	return WorldToScreen(p.Screen.Matrix(), p.Plane)
}

// FrontProjection looks along world X with the origin at (originX, originY).
func FrontProjection(pixelsPerUnit, originX, originY float64) Projection {
	return Projection{Name: "front", Plane: PlaneYZ(), Screen: NewScreenMapping(pixelsPerUnit, originX, originY)}
}

// SideProjection looks along world Y with the origin at (originX, originY).
func SideProjection(pixelsPerUnit, originX, originY float64) Projection {
	return Projection{Name: "side", Plane: PlaneXZ(), Screen: NewScreenMapping(pixelsPerUnit, originX, originY)}
}

// TopProjection looks down world Z with the origin at (originX, originY).
func TopProjection(pixelsPerUnit, originX, originY float64) Projection {
	return Projection{Name: "top", Plane: PlaneXY(), Screen: NewScreenMapping(pixelsPerUnit, originX, originY)}
}
