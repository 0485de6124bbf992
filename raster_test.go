package puppet

import (
	"testing"
)

func TestRasterizeSize(t *testing.T) {
	c := NewCanvas(CanvasConfig{})
	img := c.Rasterize(RasterConfig{Width: 64, Height: 32})
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 32 {
		t.Errorf("bounds = %v", b)
	}
	img = c.Rasterize(RasterConfig{})
	if b := img.Bounds(); b.Dx() != DefaultCanvasSize || b.Dy() != DefaultCanvasSize {
		t.Errorf("default bounds = %v", b)
	}
}

func TestRasterizeBackground(t *testing.T) {
	c := NewCanvas(CanvasConfig{Background: Color{R: 0, G: 0, B: 1, A: 1}})
	img := c.Rasterize(RasterConfig{Width: 8, Height: 8, Supersample: 1})
	got := img.RGBAAt(4, 4)
	if got.B != 255 || got.A != 255 || got.R != 0 {
		t.Errorf("pixel = %v, want opaque blue", got)
	}
}

func TestRasterizeLineCoversPixels(t *testing.T) {
	c := NewCanvas(CanvasConfig{StrokeWidth: 4})
	c.CreateLine(Vec2{2, 16}, Vec2{30, 16})
	for _, ss := range []int{1, 2} {
		img := c.Rasterize(RasterConfig{Width: 32, Height: 32, Supersample: ss})
		if a := img.RGBAAt(16, 16).A; a < 200 {
			t.Errorf("ss=%d: on-line alpha = %d, want opaque", ss, a)
		}
		if a := img.RGBAAt(16, 4).A; a != 0 {
			t.Errorf("ss=%d: off-line alpha = %d, want 0", ss, a)
		}
	}
}

func TestRasterizePolygonIsClosed(t *testing.T) {
	c := NewCanvas(CanvasConfig{StrokeWidth: 2})
	c.CreatePolygon([]Vec2{{4, 4}, {28, 4}, {28, 28}, {4, 28}})
	img := c.Rasterize(RasterConfig{Width: 32, Height: 32, Supersample: 1})
	// Left edge closes the path back to the first point.
	if a := img.RGBAAt(4, 16).A; a < 200 {
		t.Errorf("closing edge alpha = %d", a)
	}
	// Unfilled interior.
	if a := img.RGBAAt(16, 16).A; a != 0 {
		t.Errorf("interior alpha = %d, want 0", a)
	}
}

func TestRasterizeZeroLengthDrawsNothing(t *testing.T) {
	c := NewCanvas(CanvasConfig{StrokeWidth: 4})
	c.CreateLine(Vec2{8, 8}, Vec2{8, 8})
	img := c.Rasterize(RasterConfig{Width: 16, Height: 16, Supersample: 1})
	for _, p := range img.Pix {
		if p != 0 {
			t.Fatal("zero-length line drew pixels")
		}
	}
}

func TestPerpendicular(t *testing.T) {
	nx, ny := perpendicular(Vec2{0, 0}, Vec2{10, 0})
	assertNear(t, "nx", nx, 0)
	assertNear(t, "ny", ny, 1)
	nx, ny = perpendicular(Vec2{1, 1}, Vec2{1, 1})
	assertNear(t, "degenerate nx", nx, 0)
	assertNear(t, "degenerate ny", ny, -1)
}
