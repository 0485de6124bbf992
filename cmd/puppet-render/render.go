package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/phanxgames/puppet"
)

// frameTime is the simulated tick length for --script playback.
const frameTime = float32(1.0 / 60)

// projectionFor places a named projection in column i of n equal columns.
// With Fit the scale is chosen to frame the skeleton's current pose.
func projectionFor(name string, i, n int, root *puppet.Joint, cfg renderConfig) (puppet.Projection, error) {
	cellW := float64(cfg.Width) / float64(n)
	ox := cellW*float64(i) + cellW/2
	oy := float64(cfg.Height) / 2
	var p puppet.Projection
	switch name {
	case "front":
		p = puppet.FrontProjection(cfg.Scale, ox, oy)
	case "side":
		p = puppet.SideProjection(cfg.Scale, ox, oy)
	case "top":
		p = puppet.TopProjection(cfg.Scale, ox, oy)
	default:
		return puppet.Projection{}, fmt.Errorf("unknown view %q", name)
	}
	if cfg.Fit {
		cell := puppet.Rect{X: cellW * float64(i), Width: cellW, Height: float64(cfg.Height)}
		p = puppet.FitProjection(p.Name, p.Plane, root, cell, fitMargin)
	}
	return p, nil
}

// fitMargin is the free border, in pixels, around a fitted view.
const fitMargin = 10

// buildScene creates the humanoid figure with the configured pose applied
// and one view per configured projection, all drawing to a single canvas.
func buildScene(cfg renderConfig) (*puppet.Figure, *puppet.Canvas, error) {
	fig, err := puppet.NewFigure(puppet.NewHumanoid())
	if err != nil {
		return nil, nil, err
	}
	for _, e := range cfg.Pose {
		if err := fig.SetRotationDegrees(e.Joint, e.Axis, e.Degrees); err != nil {
			return nil, nil, fmt.Errorf("pose %s.%s: %w", e.Joint, e.Axis, err)
		}
	}
	// Fitted views measure the posed skeleton.
	if err := fig.Propagate(); err != nil {
		return nil, nil, err
	}
	canvas := puppet.NewCanvas(puppet.CanvasConfig{
		StrokeWidth: cfg.StrokeWidth,
		Background:  puppet.Color{R: 1, G: 1, B: 1, A: 1},
		Antialias:   true,
	})
	for i, name := range cfg.Views {
		p, err := projectionFor(name, i, len(cfg.Views), fig.Root(), cfg)
		if err != nil {
			return nil, nil, err
		}
		fig.NewView(canvas, p)
	}
	return fig, canvas, nil
}

func render(cfg renderConfig, logger *slog.Logger) error {
	fig, canvas, err := buildScene(cfg)
	if err != nil {
		return err
	}
	fig.SetLogger(logger)
	fig.SetDebugMode(cfg.Debug)

	if err := fig.Refresh(); err != nil {
		return err
	}

	if cfg.Script != "" {
		if err := playScript(fig, canvas, cfg, logger); err != nil {
			return err
		}
	}

	if err := writeOutput(canvas, cfg); err != nil {
		return err
	}
	logger.Info("wrote figure", "path", cfg.Out, "format", cfg.Format, "primitives", canvas.Len())
	return nil
}

// playScript runs a pose script headlessly at a fixed frame time until it
// finishes or MaxFrames is reached.
func playScript(fig *puppet.Figure, canvas *puppet.Canvas, cfg renderConfig, logger *slog.Logger) error {
	data, err := os.ReadFile(cfg.Script)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	script, err := puppet.LoadPoseScript(data)
	if err != nil {
		return err
	}
	format := puppet.SnapshotPNG
	if cfg.Format == "webp" {
		format = puppet.SnapshotWebP
	}
	fig.SetSnapshotCanvas(canvas, puppet.SnapshotConfig{
		Dir:    cfg.SnapshotDir,
		Format: format,
		Raster: puppet.RasterConfig{Width: cfg.Width, Height: cfg.Height, Supersample: cfg.Supersample},
	})
	fig.SetPoseScript(script)

	for frame := 0; !script.Done(); frame++ {
		if frame >= cfg.MaxFrames {
			return errors.New("script did not finish within max-frames")
		}
		if err := fig.Update(frameTime); err != nil {
			return err
		}
		for _, path := range fig.LastSnapshots() {
			logger.Info("snapshot", "path", path)
		}
	}
	logger.Debug("script done", "frames", fig.Frame())
	return nil
}

func writeOutput(canvas *puppet.Canvas, cfg renderConfig) error {
	switch cfg.Format {
	case "png", "webp":
		img := canvas.Rasterize(puppet.RasterConfig{Width: cfg.Width, Height: cfg.Height, Supersample: cfg.Supersample})
		format, err := puppet.ParseSnapshotFormat(cfg.Format)
		if err != nil {
			return err
		}
		return puppet.WriteImage(cfg.Out, img, format)
	default:
		f, err := os.Create(cfg.Out)
		if err != nil {
			return fmt.Errorf("create %s: %w", cfg.Out, err)
		}
		if err := canvas.WriteSVG(f, cfg.Width, cfg.Height); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", cfg.Out, err)
		}
		return f.Close()
	}
}
