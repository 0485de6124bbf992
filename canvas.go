package puppet

import "fmt"

// Primitive is a snapshot of one canvas primitive.
type Primitive struct {
	Kind   PrimitiveKind
	Points []Vec2
	Color  Color
	Width  float64
}

// CanvasConfig configures a Canvas. Zero fields take defaults.
type CanvasConfig struct {
	// StrokeColor is the default color for new primitives (default black).
	StrokeColor Color
	// StrokeWidth is the default stroke width in pixels (default 1).
	StrokeWidth float64
	// Background fills the target before drawing when its alpha is non-zero.
	Background Color
	// Antialias enables antialiased strokes in Draw.
	Antialias bool
}

// Canvas is a retained-mode Surface: it keeps every line and closed polygon
// a view creates, addressed by Handle, and mutates their point buffers in
// place on update. Several views may share one canvas.
//
// Canvas is not safe for concurrent use.
type Canvas struct {
	config CanvasConfig
	prims  []Primitive // handle h lives at index h-1; Kind 0 marks a removed slot
	live   int

	creates int
	updates int
}

// NewCanvas creates an empty canvas.
func NewCanvas(cfg CanvasConfig) *Canvas {
	if cfg.StrokeColor == (Color{}) {
		cfg.StrokeColor = ColorBlack
	}
	if cfg.StrokeWidth <= 0 {
		cfg.StrokeWidth = 1
	}
	return &Canvas{config: cfg}
}

// Config returns the canvas configuration after defaults were applied.
func (c *Canvas) Config() CanvasConfig {
	return c.config
}

// CreateLine adds a line primitive.
func (c *Canvas) CreateLine(p1, p2 Vec2) Handle {
	return c.add(PrimitiveLine, []Vec2{p1, p2})
}

// UpdateLine moves both endpoints of an existing line.
func (c *Canvas) UpdateLine(h Handle, p1, p2 Vec2) {
	p := c.mustGet(h, PrimitiveLine)
	p.Points[0] = p1
	p.Points[1] = p2
	c.updates++
}

// CreatePolygon adds a closed polygon primitive through points in order.
func (c *Canvas) CreatePolygon(points []Vec2) Handle {
	buf := make([]Vec2, len(points))
	copy(buf, points)
	return c.add(PrimitivePolygon, buf)
}

// UpdatePolygon replaces the point list of an existing polygon, reusing its
// backing array when it is large enough.
func (c *Canvas) UpdatePolygon(h Handle, points []Vec2) {
	p := c.mustGet(h, PrimitivePolygon)
	if cap(p.Points) >= len(points) {
		p.Points = p.Points[:len(points)]
	} else {
		p.Points = make([]Vec2, len(points))
	}
	copy(p.Points, points)
	c.updates++
}

// Remove drops a primitive. Removing an unknown handle is a no-op.
func (c *Canvas) Remove(h Handle) {
	p := c.get(h)
	if p == nil {
		return
	}
	*p = Primitive{}
	c.live--
}

// SetStyle overrides the color and stroke width of one primitive.
func (c *Canvas) SetStyle(h Handle, clr Color, width float64) {
	p := c.get(h)
	if p == nil {
		panic(fmt.Sprintf("puppet: unknown primitive handle %d", h))
	}
	p.Color = clr
	p.Width = width
}

// Primitive returns a copy of the primitive addressed by h.
func (c *Canvas) Primitive(h Handle) (Primitive, bool) {
	p := c.get(h)
	if p == nil {
		return Primitive{}, false
	}
	out := *p
	out.Points = append([]Vec2(nil), p.Points...)
	return out, true
}

// Len returns the number of live primitives.
func (c *Canvas) Len() int {
	return c.live
}

// Stats returns how many primitives were created and how many in-place
// updates were applied over the canvas's lifetime.
func (c *Canvas) Stats() (creates, updates int) {
	return c.creates, c.updates
}

// each calls fn for every live primitive in creation order.
func (c *Canvas) each(fn func(h Handle, p *Primitive)) {
	for i := range c.prims {
		p := &c.prims[i]
		if p.Kind == 0 {
			continue
		}
		fn(Handle(i+1), p)
	}
}

func (c *Canvas) add(kind PrimitiveKind, points []Vec2) Handle {
	c.prims = append(c.prims, Primitive{
		Kind:   kind,
		Points: points,
		Color:  c.config.StrokeColor,
		Width:  c.config.StrokeWidth,
	})
	c.live++
	c.creates++
	return Handle(len(c.prims))
}

func (c *Canvas) get(h Handle) *Primitive {
	if h == 0 || int(h) > len(c.prims) {
		return nil
	}
	p := &c.prims[h-1]
	if p.Kind == 0 {
		return nil
	}
	return p
}

// mustGet panics when h is unknown or addresses a different kind: a view
// node never changes primitive kind once created.
func (c *Canvas) mustGet(h Handle, kind PrimitiveKind) *Primitive {
	p := c.get(h)
	if p == nil {
		panic(fmt.Sprintf("puppet: unknown primitive handle %d", h))
	}
	if p.Kind != kind {
		panic(fmt.Sprintf("puppet: primitive %d is a %s, not a %s", h, p.Kind, kind))
	}
	return p
}

// segments calls fn for every stroked segment of p in order: one for a
// line, one per edge for a polygon including the closing edge.
func (p *Primitive) segments(fn func(a, b Vec2)) {
	n := len(p.Points)
	switch p.Kind {
	case PrimitiveLine:
		fn(p.Points[0], p.Points[1])
	case PrimitivePolygon:
		for i := 0; i < n; i++ {
			fn(p.Points[i], p.Points[(i+1)%n])
		}
	}
}
