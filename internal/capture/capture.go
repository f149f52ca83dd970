// Package capture implements the scroll/capture loop that turns a
// rendered page into an ordered sequence of viewport-sized frames.
package capture

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Dwij1704/Visual-Review-Extractor/internal/logger"
	"github.com/Dwij1704/Visual-Review-Extractor/internal/renderer"
	"github.com/Dwij1704/Visual-Review-Extractor/internal/workdir"
)

// Frame is one viewport screenshot at a known scroll offset. Index order
// equals capture order equals vertical position (Offset = Index ×
// viewport height).
type Frame struct {
	Index  int
	Offset int64
	Data   []byte // PNG bytes, kept in memory for the vision request
	Path   string // where the frame was persisted
}

// Config holds sequencer settings.
type Config struct {
	ViewportHeight int64
	SettleDelay    time.Duration // paint time after each scroll
	MaxFrames      int           // 0 = unbounded
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ViewportHeight: 1000,
		SettleDelay:    2 * time.Second,
	}
}

// Sequencer captures frames from a rendered document, strictly in scroll
// order. Concurrent capture would race on the single browser viewport,
// so there is deliberately no parallelism here.
type Sequencer struct {
	cfg Config
}

// New creates a sequencer.
func New(cfg Config) *Sequencer {
	def := DefaultConfig()
	if cfg.ViewportHeight == 0 {
		cfg.ViewportHeight = def.ViewportHeight
	}
	if cfg.SettleDelay == 0 {
		cfg.SettleDelay = def.SettleDelay
	}
	return &Sequencer{cfg: cfg}
}

// Plan returns the scroll offsets to capture for a page of totalHeight
// with the given viewport height: ceil(totalHeight/viewportHeight)
// offsets spaced one viewport apart, capped at maxFrames when maxFrames
// is positive. A zero-height page yields no offsets.
func Plan(totalHeight, viewportHeight int64, maxFrames int) []int64 {
	if totalHeight <= 0 || viewportHeight <= 0 {
		return nil
	}

	n := totalHeight / viewportHeight
	if totalHeight%viewportHeight != 0 {
		n++
	}
	if maxFrames > 0 && n > int64(maxFrames) {
		n = int64(maxFrames)
	}

	offsets := make([]int64, n)
	for i := range offsets {
		offsets[i] = int64(i) * viewportHeight
	}
	return offsets
}

// Capture runs the scroll→settle→screenshot loop over doc and persists
// every frame into run. The returned slice is ordered by frame index.
func (s *Sequencer) Capture(ctx context.Context, doc renderer.Document, run *workdir.Run) ([]Frame, error) {
	offsets := Plan(doc.Height(), s.cfg.ViewportHeight, s.cfg.MaxFrames)
	if len(offsets) == 0 {
		logger.Warn("page reported zero height, nothing to capture")
		return []Frame{}, nil
	}
	if s.cfg.MaxFrames > 0 && doc.Height() > int64(len(offsets))*s.cfg.ViewportHeight {
		logger.Warn("frame count capped",
			"page_height", doc.Height(),
			"max_frames", s.cfg.MaxFrames)
	}

	logger.Debug("capture plan computed",
		"frames", len(offsets),
		"viewport_height", s.cfg.ViewportHeight,
		"page_height", doc.Height())

	frames := make([]Frame, 0, len(offsets))
	for i, y := range offsets {
		if err := ctx.Err(); err != nil {
			return frames, err
		}

		if err := doc.ScrollTo(ctx, y); err != nil {
			return frames, fmt.Errorf("frame %d: %w", i, err)
		}

		// Lazy images need real paint time before the shot is useful.
		select {
		case <-time.After(s.cfg.SettleDelay):
		case <-ctx.Done():
			return frames, ctx.Err()
		}

		data, err := doc.Screenshot(ctx)
		if err != nil {
			return frames, fmt.Errorf("frame %d: %w", i, err)
		}

		path, err := run.WriteFrame(i, data)
		if err != nil {
			return frames, err
		}

		frames = append(frames, Frame{Index: i, Offset: y, Data: data, Path: path})
		logger.Debug("frame captured", "index", i, "offset", y, "size", humanize.Bytes(uint64(len(data))))
	}

	return frames, nil
}
