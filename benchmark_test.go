package puppet

import (
	"io"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// setupBenchFigure creates a figure over n humanoids hung from one root,
// with a front and a side view on a shared canvas.
func setupBenchFigure(b *testing.B, n int) (*Figure, *Canvas) {
	b.Helper()
	root := NewJoint("root", 0, mgl64.Vec3{})
	for i := 0; i < n; i++ {
		h := NewHumanoid()
		// Names must be unique per figure.
		h.Walk(func(j *Joint) bool {
			j.Name = ""
			return true
		})
		root.AddChild(h)
	}
	fig, err := NewFigure(root)
	if err != nil {
		b.Fatal(err)
	}
	c := NewCanvas(CanvasConfig{})
	fig.NewView(c, FrontProjection(50, 200, 200))
	fig.NewView(c, SideProjection(50, 600, 200))
	if err := fig.Refresh(); err != nil {
		b.Fatal(err)
	}
	return fig, c
}

// --- Propagation benchmarks ---

func BenchmarkPropagate_Humanoid(b *testing.B) {
	root := NewHumanoid()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = root.Propagate(mgl64.Ident4())
	}
}

func BenchmarkPropagate_Chain100(b *testing.B) {
	lengths := make([]float64, 100)
	for i := range lengths {
		lengths[i] = 0.1
	}
	root, js := chain(lengths...)
	for _, j := range js {
		j.Rotation = mgl64.Vec3{0.01, 0.02, 0.03}
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = root.Propagate(mgl64.Ident4())
	}
}

// --- Refresh benchmarks ---

func BenchmarkRefresh_1Humanoid(b *testing.B) {
	fig, _ := setupBenchFigure(b, 1)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = fig.Refresh()
	}
}

func BenchmarkRefresh_100Humanoids(b *testing.B) {
	fig, _ := setupBenchFigure(b, 100)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = fig.Refresh()
	}
}

func BenchmarkRefresh_100Humanoids_Spinning(b *testing.B) {
	fig, _ := setupBenchFigure(b, 100)
	children := fig.Root().Children()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for _, c := range children {
			c.Rotation[2] += 0.01
		}
		_ = fig.Refresh()
	}
}

func BenchmarkUpdate_QueuedEdits(b *testing.B) {
	fig, _ := setupBenchFigure(b, 1)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		fig.QueueRotation("root", AxisZ, float64(i)*0.001)
		_ = fig.Update(1.0 / 60)
	}
}

// --- Output benchmarks ---

func BenchmarkRasterize_Humanoid(b *testing.B) {
	_, c := setupBenchFigure(b, 1)
	cfg := RasterConfig{Width: 800, Height: 400}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = c.Rasterize(cfg)
	}
}

func BenchmarkWriteSVG_Humanoid(b *testing.B) {
	_, c := setupBenchFigure(b, 1)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = c.WriteSVG(io.Discard, 800, 400)
	}
}
