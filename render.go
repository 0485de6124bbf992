package puppet

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Draw strokes every live primitive onto target in creation order. Polygons
// are closed back to their first point.
func (c *Canvas) Draw(target *ebiten.Image) {
	if c.config.Background.A > 0 {
		target.Fill(c.config.Background.RGBA())
	}
	aa := c.config.Antialias
	c.each(func(_ Handle, p *Primitive) {
		clr := p.Color.RGBA()
		w := float32(p.Width)
		p.segments(func(a, b Vec2) {
			vector.StrokeLine(target, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), w, clr, aa)
		})
	})
}
