// Package vision provides a unified interface to vision-capable model
// providers. A provider accepts an ordered list of images plus a text
// instruction in one request and returns the model's raw text reply.
package vision

import (
	"context"
)

// Image is one inline-encoded screenshot sent to the model. Order in the
// slice is the order the model sees the frames, which must match scroll
// order so reviews split across frame boundaries read top to bottom.
type Image struct {
	MediaType string // e.g. "image/png"
	Data      []byte
}

// Provider is the capability contract for a vision-capable model backend.
type Provider interface {
	// Submit sends the instruction and all images in a single request
	// and returns the raw text response.
	Submit(ctx context.Context, instruction string, images []Image) (string, error)

	// Name returns the provider identifier (e.g., "anthropic", "openai").
	Name() string

	// Model returns the configured model name.
	Model() string
}

// ProviderConfig holds settings common to all providers.
type ProviderConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
}
