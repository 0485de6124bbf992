package puppet

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures Run.
type RunConfig struct {
	Title string
	// Width and Height are the logical screen size (default
	// DefaultCanvasSize each).
	Width, Height int
	// ShowFPS draws the current FPS and TPS in the top-left corner.
	ShowFPS bool
	// Debug enables Figure.SetDebugMode before the loop starts.
	Debug bool
}

// Run opens a window and drives fig at ebiten's tick rate: every tick runs
// Figure.Update and every frame draws canvas. It blocks until the window is
// closed or an Update fails, and returns that error.
func Run(fig *Figure, canvas *Canvas, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = DefaultCanvasSize
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultCanvasSize
	}
	if cfg.Title == "" {
		cfg.Title = "puppet"
	}
	if cfg.Debug {
		fig.SetDebugMode(true)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&game{fig: fig, canvas: canvas, cfg: cfg})
}

// game implements ebiten.Game over a Figure and the Canvas its views draw to.
type game struct {
	fig    *Figure
	canvas *Canvas
	cfg    RunConfig
}

func (g *game) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	return g.fig.Update(dt)
}

func (g *game) Draw(screen *ebiten.Image) {
	g.canvas.Draw(screen)
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}
