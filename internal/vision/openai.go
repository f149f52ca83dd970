package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/Dwij1704/Visual-Review-Extractor/internal/logger"
)

// OpenAIProvider implements Provider against the Chat Completions API
// with image content parts.
type OpenAIProvider struct {
	client openai.Client
	model  string
	cfg    ProviderConfig
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg ProviderConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key required")
	}

	client := openai.NewClient(option.WithAPIKey(cfg.APIKey))

	model := cfg.Model
	if model == "" {
		model = string(openai.ChatModelGPT4o)
	}

	return &OpenAIProvider{
		client: client,
		model:  model,
		cfg:    cfg,
	}, nil
}

// Submit sends all frame images as data-URI content parts followed by
// the instruction text, in one user message.
func (p *OpenAIProvider) Submit(ctx context.Context, instruction string, images []Image) (string, error) {
	start := time.Now()

	parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(images)+1)
	for _, img := range images {
		uri := fmt.Sprintf("data:%s;base64,%s",
			img.MediaType, base64.StdEncoding.EncodeToString(img.Data))
		parts = append(parts, openai.ImageContentPart(
			openai.ChatCompletionContentPartImageImageURLParam{URL: uri},
		))
	}
	parts = append(parts, openai.TextContentPart(instruction))

	maxTokens := p.cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(p.model),
		Messages:            []openai.ChatCompletionMessageParamUnion{openai.UserMessage(parts)},
		MaxCompletionTokens: openai.Int(int64(maxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	logger.Debug("openai submission complete",
		"model", p.model,
		"images", len(images),
		"input_tokens", resp.Usage.PromptTokens,
		"output_tokens", resp.Usage.CompletionTokens,
		"duration", time.Since(start))

	return resp.Choices[0].Message.Content, nil
}

// Name returns the provider identifier.
func (p *OpenAIProvider) Name() string { return "openai" }

// Model returns the configured model name.
func (p *OpenAIProvider) Model() string { return p.model }
