package commands

import (
	"fmt"

	"github.com/Dwij1704/Visual-Review-Extractor/internal/capture"
	"github.com/Dwij1704/Visual-Review-Extractor/internal/config"
	"github.com/Dwij1704/Visual-Review-Extractor/internal/extract"
	"github.com/Dwij1704/Visual-Review-Extractor/internal/pipeline"
	"github.com/Dwij1704/Visual-Review-Extractor/internal/renderer"
	"github.com/Dwij1704/Visual-Review-Extractor/internal/vision"
	"github.com/Dwij1704/Visual-Review-Extractor/internal/workdir"
)

// buildPipeline assembles the extraction pipeline from config. The
// returned cleanup releases the browser allocator.
func buildPipeline(cfg *config.Config) (*pipeline.Pipeline, func(), error) {
	if err := workdir.Prune(cfg.WorkDir); err != nil {
		return nil, nil, fmt.Errorf("pruning work directory: %w", err)
	}

	providerName := cfg.Provider
	apiKey := cfg.APIKey
	if providerName == "" {
		detected, detectedKey := vision.DetectProvider()
		if detected == "" {
			return nil, nil, fmt.Errorf("no vision provider configured: set provider/api_key or ANTHROPIC_API_KEY / OPENAI_API_KEY")
		}
		providerName = detected
		if apiKey == "" {
			apiKey = detectedKey
		}
	}

	provider, err := vision.NewProvider(providerName, vision.ProviderConfig{
		APIKey:    apiKey,
		Model:     cfg.Model,
		MaxTokens: cfg.MaxTokens,
	})
	if err != nil {
		return nil, nil, err
	}

	rend, err := renderer.New(renderer.Config{
		ViewportWidth:  cfg.ViewportWidth,
		ViewportHeight: cfg.ViewportHeight,
		LoadTimeout:    cfg.LoadTimeout,
		SettleDelay:    cfg.SettleDelay,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating renderer: %w", err)
	}

	seq := capture.New(capture.Config{
		ViewportHeight: cfg.ViewportHeight,
		SettleDelay:    cfg.SettleDelay,
		MaxFrames:      cfg.MaxFrames,
	})

	ext := extract.New(provider, cfg.VisionTimeout)

	p := pipeline.New(rend, seq, ext, cfg.WorkDir)
	cleanup := func() { _ = rend.Close() }
	return p, cleanup, nil
}
