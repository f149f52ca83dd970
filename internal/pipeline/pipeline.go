// Package pipeline orchestrates one extraction run: render the page,
// capture frames, submit them to the vision model, reconcile the reply.
// Stages run strictly in sequence; the browser tab acquired at the start
// is released on every exit path.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dwij1704/Visual-Review-Extractor/internal/capture"
	"github.com/Dwij1704/Visual-Review-Extractor/internal/logger"
	"github.com/Dwij1704/Visual-Review-Extractor/internal/metrics"
	"github.com/Dwij1704/Visual-Review-Extractor/internal/reconcile"
	"github.com/Dwij1704/Visual-Review-Extractor/internal/renderer"
	"github.com/Dwij1704/Visual-Review-Extractor/internal/review"
	"github.com/Dwij1704/Visual-Review-Extractor/internal/workdir"
)

// Renderer opens a URL into a live document. Satisfied by
// *renderer.Renderer; faked in tests.
type Renderer interface {
	Open(ctx context.Context, targetURL string) (renderer.Document, error)
}

// Capturer runs the scroll/capture loop. Satisfied by *capture.Sequencer.
type Capturer interface {
	Capture(ctx context.Context, doc renderer.Document, run *workdir.Run) ([]capture.Frame, error)
}

// TextExtractor submits frames to the vision model. Satisfied by
// *extract.Extractor.
type TextExtractor interface {
	Extract(ctx context.Context, frames []capture.Frame) (string, error)
}

// Pipeline wires the four stages together.
type Pipeline struct {
	renderer  Renderer
	sequencer Capturer
	extractor TextExtractor
	workBase  string
}

// New creates a pipeline over the given stage implementations. workBase
// is the directory under which per-run workspaces are created.
func New(r Renderer, s Capturer, e TextExtractor, workBase string) *Pipeline {
	return &Pipeline{renderer: r, sequencer: s, extractor: e, workBase: workBase}
}

// Run executes one extraction for targetURL.
//
// Renderer and capture failures abort and are returned as errors (the
// caller maps them to HTTP statuses). A vision-provider failure degrades:
// the raw payload is persisted for postmortem and the result carries
// empty reviews plus ErrorDetails, with a nil error.
func (p *Pipeline) Run(ctx context.Context, targetURL string) (*review.Result, error) {
	start := time.Now()

	run, err := workdir.New(p.workBase)
	if err != nil {
		return nil, fmt.Errorf("preparing run workspace: %w", err)
	}

	log := logger.With("run_id", run.ID(), "url", targetURL)
	log.Info("extraction run starting")

	doc, err := p.renderer.Open(ctx, targetURL)
	if err != nil {
		metrics.ObserveExtraction(renderStatus(err), time.Since(start).Seconds())
		return nil, err
	}
	defer doc.Close()

	frames, err := p.sequencer.Capture(ctx, doc, run)
	if err != nil {
		metrics.ObserveExtraction("capture_error", time.Since(start).Seconds())
		return nil, fmt.Errorf("capturing frames: %w", err)
	}
	metrics.AddFrames(len(frames))

	result := review.NewResult()
	if len(frames) == 0 {
		log.Warn("no frames captured, skipping extraction")
		metrics.ObserveExtraction("success", time.Since(start).Seconds())
		return result, nil
	}

	raw, err := p.extractor.Extract(ctx, frames)
	if err != nil {
		// External service failure is not the caller's problem:
		// persist the payload, report the detail, return what we have.
		if dumpErr := run.WriteErrorDump(err.Error()); dumpErr != nil {
			log.Error("failed to persist extraction error payload", "error", dumpErr)
		}
		log.Error("vision extraction failed", "error", err)
		result.ErrorDetails = err.Error()
		metrics.ObserveExtraction("degraded", time.Since(start).Seconds())
		return result, nil
	}

	result.Reviews = reconcile.Reconcile(raw)

	log.Info("extraction run complete",
		"frames", len(frames),
		"reviews", len(result.Reviews),
		"duration", time.Since(start))
	metrics.ObserveExtraction("success", time.Since(start).Seconds())

	return result, nil
}

func renderStatus(err error) string {
	if renderer.IsTimeout(err) {
		return "timeout"
	}
	var ne *renderer.NavigationError
	if errors.As(err, &ne) {
		return "navigation_error"
	}
	return "render_error"
}
