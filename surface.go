package puppet

import "image/color"

// Vec2 is a 2D screen-space point.
type Vec2 struct {
	X, Y float64
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorBlack is the default stroke color.
var ColorBlack = Color{0, 0, 0, 1}

// RGBA converts c to a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A)*255 + 0.5),
		G: uint8(clamp01(c.G*c.A)*255 + 0.5),
		B: uint8(clamp01(c.B*c.A)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Handle addresses one primitive owned by a Surface. Zero is never a valid
// handle.
type Handle uint32

// PrimitiveKind distinguishes the two primitive types a Surface draws.
type PrimitiveKind uint8

const (
	PrimitiveLine    PrimitiveKind = iota + 1 // open segment between two points
	PrimitivePolygon                          // closed path through all points
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveLine:
		return "line"
	case PrimitivePolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Surface is the drawing collaborator a View writes to. Create* is called
// once per view node, on its first update; Update* mutates that primitive
// in place on every later update. Implementations must not retain the
// points slice passed to CreatePolygon or UpdatePolygon.
type Surface interface {
	CreateLine(p1, p2 Vec2) Handle
	UpdateLine(h Handle, p1, p2 Vec2)
	CreatePolygon(points []Vec2) Handle
	UpdatePolygon(h Handle, points []Vec2)
}
