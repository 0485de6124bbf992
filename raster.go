package puppet

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// DefaultCanvasSize is the output edge length used when a RasterConfig or
// RunConfig leaves the size unset.
const DefaultCanvasSize = 400

// RasterConfig configures Canvas.Rasterize.
type RasterConfig struct {
	// Width and Height are the output size in pixels (default
	// DefaultCanvasSize each).
	Width, Height int
	// Supersample renders at this multiple of the output size and scales
	// down, smoothing stroke edges (default 2).
	Supersample int
}

// Rasterize renders the canvas's current primitives into a new image
// without a window or GPU. Strokes are filled quads per segment; the result
// is premultiplied RGBA.
func (c *Canvas) Rasterize(cfg RasterConfig) *image.RGBA {
	if cfg.Width <= 0 {
		cfg.Width = DefaultCanvasSize
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultCanvasSize
	}
	if cfg.Supersample <= 0 {
		cfg.Supersample = 2
	}
	ss := cfg.Supersample
	w, h := cfg.Width*ss, cfg.Height*ss

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if c.config.Background.A > 0 {
		draw.Draw(img, img.Bounds(), image.NewUniform(c.config.Background.RGBA()), image.Point{}, draw.Src)
	}

	r := vector.NewRasterizer(w, h)
	scale := float64(ss)
	c.each(func(_ Handle, p *Primitive) {
		r.Reset(w, h)
		half := p.Width * scale / 2
		p.segments(func(a, b Vec2) {
			strokeQuad(r, Vec2{a.X * scale, a.Y * scale}, Vec2{b.X * scale, b.Y * scale}, half)
		})
		r.Draw(img, img.Bounds(), image.NewUniform(p.Color.RGBA()), image.Point{})
	})

	if ss == 1 {
		return img
	}
	return downsample(img, cfg.Width, cfg.Height)
}

// strokeQuad adds a rectangle of half-width half around segment a-b, with
// square caps so consecutive segments overlap at joints. All quads share one
// winding direction so overlaps never cancel. Zero-length segments draw
// nothing, as in SVG.
func strokeQuad(r *vector.Rasterizer, a, b Vec2, half float64) {
	if a == b {
		return
	}
	nx, ny := perpendicular(a, b)
	dx, dy := ny, -nx // unit direction a -> b
	ax, ay := a.X-dx*half, a.Y-dy*half
	bx, by := b.X+dx*half, b.Y+dy*half
	r.MoveTo(float32(ax+nx*half), float32(ay+ny*half))
	r.LineTo(float32(bx+nx*half), float32(by+ny*half))
	r.LineTo(float32(bx-nx*half), float32(by-ny*half))
	r.LineTo(float32(ax-nx*half), float32(ay-ny*half))
	r.ClosePath()
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}

// downsample scales a premultiplied image to w x h with CatmullRom filtering.
func downsample(src *image.RGBA, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
