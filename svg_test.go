package puppet

import (
	"bytes"
	"strings"
	"testing"
)

func TestClosedPathData(t *testing.T) {
	got := ClosedPathData([]Vec2{{0, 0}, {10, 0}, {10, 5.5}})
	want := "M 0 0 L 10 0 L 10 5.5 Z"
	if got != want {
		t.Errorf("ClosedPathData = %q, want %q", got, want)
	}
}

func TestClosedPathDataDecagon(t *testing.T) {
	pts := make([]Vec2, 10)
	for i, p := range RegularPolygon(10, 0.15) {
		pts[i] = Vec2{p[1], p[2]}
	}
	d := ClosedPathData(pts)
	if n := strings.Count(d, "M "); n != 1 {
		t.Errorf("moves = %d, want 1", n)
	}
	if n := strings.Count(d, "L "); n != 9 {
		t.Errorf("lines = %d, want 9", n)
	}
	if !strings.HasSuffix(d, " Z") {
		t.Errorf("path not closed: %q", d)
	}
}

func TestWriteSVG(t *testing.T) {
	c := NewCanvas(CanvasConfig{})
	c.CreateLine(Vec2{1, 2}, Vec2{3, 4})
	c.CreatePolygon([]Vec2{{0, 0}, {1, 0}, {0, 1}})

	var buf bytes.Buffer
	if err := c.WriteSVG(&buf, 400, 300); err != nil {
		t.Fatal(err)
	}
	svg := buf.String()
	for _, want := range []string{
		`width="400" height="300" viewBox="0 0 400 300"`,
		`<line x1="1" y1="2" x2="3" y2="4" stroke="#000000" stroke-width="1"/>`,
		`<path d="M 0 0 L 1 0 L 0 1 Z" stroke="#000000" stroke-width="1" fill="none"/>`,
		"</svg>",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q:\n%s", want, svg)
		}
	}
	if strings.Contains(svg, "<rect") {
		t.Error("transparent background drew a rect")
	}
}

func TestWriteSVGBackgroundAndStyle(t *testing.T) {
	c := NewCanvas(CanvasConfig{Background: Color{R: 1, G: 1, B: 1, A: 1}})
	h := c.CreateLine(Vec2{}, Vec2{1, 1})
	c.SetStyle(h, Color{R: 1, A: 0.5}, 2.5)
	svg := c.SVG(10, 10)
	if !strings.Contains(svg, `<rect width="100%" height="100%" fill="#ffffff"/>`) {
		t.Errorf("background rect missing:\n%s", svg)
	}
	if !strings.Contains(svg, `stroke="#ff0000" stroke-width="2.5" stroke-opacity="0.5"`) {
		t.Errorf("style attributes missing:\n%s", svg)
	}
}

func TestWriteSVGSkipsRemoved(t *testing.T) {
	c := NewCanvas(CanvasConfig{})
	h := c.CreateLine(Vec2{}, Vec2{1, 1})
	c.Remove(h)
	if strings.Contains(c.SVG(10, 10), "<line") {
		t.Error("removed primitive serialized")
	}
}
