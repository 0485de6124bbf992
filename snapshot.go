package puppet

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
)

const defaultSnapshotDir = "snapshots"

// SnapshotFormat selects the image encoding of snapshot files.
type SnapshotFormat uint8

const (
	SnapshotPNG SnapshotFormat = iota
	SnapshotWebP
)

// Ext returns the file extension for the format, without the dot.
func (f SnapshotFormat) Ext() string {
	if f == SnapshotWebP {
		return "webp"
	}
	return "png"
}

// ParseSnapshotFormat converts "png" or "webp" to a SnapshotFormat.
func ParseSnapshotFormat(s string) (SnapshotFormat, error) {
	switch strings.ToLower(s) {
	case "png":
		return SnapshotPNG, nil
	case "webp":
		return SnapshotWebP, nil
	}
	return 0, fmt.Errorf("puppet: unknown snapshot format %q", s)
}

// SnapshotConfig configures where and how Figure snapshots are written.
type SnapshotConfig struct {
	// Dir is the output directory, created on demand (default "snapshots").
	Dir    string
	Format SnapshotFormat
	Raster RasterConfig
}

type snapshotState struct {
	canvas *Canvas
	config SnapshotConfig
	queue  []string
	// written holds the paths of files written by the last flush.
	written []string
}

// SetSnapshotCanvas selects the canvas rasterized by Snapshot.
func (f *Figure) SetSnapshotCanvas(c *Canvas, cfg SnapshotConfig) {
	if cfg.Dir == "" {
		cfg.Dir = defaultSnapshotDir
	}
	f.snapshots.canvas = c
	f.snapshots.config = cfg
}

// Snapshot queues a labeled snapshot of the snapshot canvas, taken at the
// end of the next Update once views are refreshed. The file is written to
// the configured directory with a timestamped name.
func (f *Figure) Snapshot(label string) {
	f.snapshots.queue = append(f.snapshots.queue, label)
}

// LastSnapshots returns the paths written by the most recent flush.
func (f *Figure) LastSnapshots() []string {
	return f.snapshots.written
}

// flushSnapshots rasterizes the snapshot canvas once and writes it for
// every queued label. Failures are logged, not returned.
func (f *Figure) flushSnapshots() {
	s := &f.snapshots
	s.written = s.written[:0]
	if len(s.queue) == 0 {
		return
	}
	defer func() { s.queue = s.queue[:0] }()

	if s.canvas == nil {
		f.logger.Warn("snapshot: no canvas set", "labels", len(s.queue))
		return
	}
	if err := os.MkdirAll(s.config.Dir, 0o755); err != nil {
		f.logger.Error("snapshot: mkdir", "dir", s.config.Dir, "err", err)
		return
	}

	img := s.canvas.Rasterize(s.config.Raster)
	stamp := time.Now().Format("20060102_150405")

	for _, label := range s.queue {
		name := fmt.Sprintf("%s_%s.%s", stamp, sanitizeLabel(label), s.config.Format.Ext())
		path := filepath.Join(s.config.Dir, name)
		if err := WriteImage(path, img, s.config.Format); err != nil {
			f.logger.Error("snapshot", "err", err)
			continue
		}
		s.written = append(s.written, path)
	}
}

// WriteImage encodes img to a file at path in the given format.
func WriteImage(path string, img image.Image, format SnapshotFormat) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	switch format {
	case SnapshotWebP:
		err = nativewebp.Encode(file, img, nil)
	default:
		err = png.Encode(file, img)
	}
	if err != nil {
		file.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return file.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
