package puppet

import (
	"log/slog"
	"os"
	"time"
)

// refreshStats holds per-pass timing and primitive metrics.
// Only populated when Figure.debug is true.
type refreshStats struct {
	propagateTime time.Duration
	renderTime    time.Duration
	joints        int
	views         int
	creates       int
	updates       int
}

// SetDebugMode enables per-pass timing logs and tree shape warnings. When no
// logger was set, debug output goes to stderr at debug level.
func (f *Figure) SetDebugMode(enabled bool) {
	f.debug = enabled
	if enabled && f.logger.Handler() == slog.DiscardHandler {
		f.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	if enabled {
		debugCheckTree(f.logger, f.root)
	}
}

// SetLogger sets the logger used for debug output and snapshot failures.
// A nil logger discards everything.
func (f *Figure) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	f.logger = l
}

// debugLog reports one Refresh pass.
func (f *Figure) debugLog(stats refreshStats) {
	if !f.debug {
		return
	}
	f.logger.Debug("refresh",
		"frame", f.frame,
		"propagate", stats.propagateTime,
		"render", stats.renderTime,
		"total", stats.propagateTime+stats.renderTime,
		"joints", stats.joints,
		"views", stats.views,
		"creates", stats.creates,
		"updates", stats.updates,
	)
}

// debugMaxTreeDepth is the joint depth past which a warning is logged.
const debugMaxTreeDepth = 32

// debugMaxChildCount is the child count past which a warning is logged.
const debugMaxChildCount = 64

// debugCheckTree warns about joints nested deeper than debugMaxTreeDepth or
// carrying more than debugMaxChildCount children.
func debugCheckTree(l *slog.Logger, root *Joint) {
	var walk func(j *Joint, depth int)
	walk = func(j *Joint, depth int) {
		if depth > debugMaxTreeDepth {
			l.Warn("joint tree too deep", "joint", j.Path(), "depth", depth, "threshold", debugMaxTreeDepth)
			return
		}
		if len(j.children) > debugMaxChildCount {
			l.Warn("joint has many children", "joint", j.Path(), "children", len(j.children), "threshold", debugMaxChildCount)
		}
		for _, c := range j.children {
			walk(c, depth+1)
		}
	}
	walk(root, 1)
}
