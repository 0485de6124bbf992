package puppet

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ClosedPathData returns an SVG path "d" attribute visiting every point in
// order and closing back to the first: "M x y L x y ... Z".
func ClosedPathData(points []Vec2) string {
	var b strings.Builder
	for i, p := range points {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString("L ")
		}
		b.WriteString(formatCoord(p.X))
		b.WriteByte(' ')
		b.WriteString(formatCoord(p.Y))
		b.WriteByte(' ')
	}
	b.WriteByte('Z')
	return b.String()
}

// WriteSVG serializes the canvas's current primitives as an SVG document of
// the given pixel size. Lines become <line> elements and polygons closed
// <path> elements, stroked and unfilled.
func (c *Canvas) WriteSVG(w io.Writer, width, height int) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		width, height, width, height)
	if c.config.Background.A > 0 {
		fmt.Fprintf(bw, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", svgColor(c.config.Background))
	}
	c.each(func(_ Handle, p *Primitive) {
		style := strokeAttrs(p.Color, p.Width)
		switch p.Kind {
		case PrimitiveLine:
			a, b := p.Points[0], p.Points[1]
			fmt.Fprintf(bw, `  <line x1="%s" y1="%s" x2="%s" y2="%s" %s/>`+"\n",
				formatCoord(a.X), formatCoord(a.Y), formatCoord(b.X), formatCoord(b.Y), style)
		case PrimitivePolygon:
			fmt.Fprintf(bw, `  <path d="%s" %s fill="none"/>`+"\n", ClosedPathData(p.Points), style)
		}
	})
	bw.WriteString("</svg>\n")
	return bw.Flush()
}

// SVG returns the canvas as an SVG document string.
func (c *Canvas) SVG(width, height int) string {
	var b strings.Builder
	_ = c.WriteSVG(&b, width, height)
	return b.String()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// svgColor formats the color's RGB as #rrggbb, ignoring alpha.
func svgColor(c Color) string {
	rgba := Color{R: c.R, G: c.G, B: c.B, A: 1}.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

func strokeAttrs(c Color, width float64) string {
	s := fmt.Sprintf(`stroke="%s" stroke-width="%s"`, svgColor(c), formatCoord(width))
	if c.A < 1 {
		s += fmt.Sprintf(` stroke-opacity="%s"`, formatCoord(clamp01(c.A)))
	}
	return s
}
