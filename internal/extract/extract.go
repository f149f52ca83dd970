// Package extract submits captured frames to a vision-model provider and
// returns the model's raw reply for reconciliation.
package extract

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dwij1704/Visual-Review-Extractor/internal/capture"
	"github.com/Dwij1704/Visual-Review-Extractor/internal/logger"
	"github.com/Dwij1704/Visual-Review-Extractor/internal/vision"
)

// ServiceError wraps failures of the external vision-model call:
// network, timeout, rate-limit, auth. The pipeline treats these as
// degradable, not fatal.
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("vision provider %s failed: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// IsServiceError reports whether err came from the external vision call.
func IsServiceError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}

// Extractor sends all frames of a run to the provider in one request.
// One round trip regardless of frame count; very tall pages can exceed
// the model's input limits, which is accepted and bounded only by the
// sequencer's frame cap.
type Extractor struct {
	provider vision.Provider
	timeout  time.Duration
}

// New creates an extractor. timeout bounds the external call; zero means
// no bound beyond the caller's context.
func New(provider vision.Provider, timeout time.Duration) *Extractor {
	return &Extractor{provider: provider, timeout: timeout}
}

// Extract submits the ordered frames plus the extraction instruction and
// returns the raw model text. Provider failures come back as *ServiceError.
func (e *Extractor) Extract(ctx context.Context, frames []capture.Frame) (string, error) {
	images := make([]vision.Image, len(frames))
	for i, f := range frames {
		images[i] = vision.Image{MediaType: "image/png", Data: f.Data}
	}

	instruction := buildInstruction(len(frames))

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	logger.Info("submitting frames to vision provider",
		"provider", e.provider.Name(),
		"model", e.provider.Model(),
		"frames", len(frames))

	raw, err := e.provider.Submit(ctx, instruction, images)
	if err != nil {
		return "", &ServiceError{Provider: e.provider.Name(), Err: err}
	}

	logger.Debug("vision provider responded", "response_size", len(raw))
	return raw, nil
}
