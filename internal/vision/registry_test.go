package vision

import (
	"context"
	"testing"
)

func TestNewProvider_Unknown(t *testing.T) {
	if _, err := NewProvider("llava", ProviderConfig{APIKey: "k"}); err == nil {
		t.Error("NewProvider(llava) should fail")
	}
}

func TestNewProvider_RequiresAPIKey(t *testing.T) {
	for _, name := range []string{"anthropic", "openai"} {
		t.Run(name, func(t *testing.T) {
			if _, err := NewProvider(name, ProviderConfig{}); err == nil {
				t.Errorf("NewProvider(%s) without key should fail", name)
			}
		})
	}
}

func TestNewProvider_DefaultModels(t *testing.T) {
	for _, name := range []string{"anthropic", "openai"} {
		t.Run(name, func(t *testing.T) {
			p, err := NewProvider(name, ProviderConfig{APIKey: "test-key"})
			if err != nil {
				t.Fatalf("NewProvider(%s) error = %v", name, err)
			}
			if p.Name() != name {
				t.Errorf("Name() = %q, want %q", p.Name(), name)
			}
			if p.Model() != DefaultModels[name] {
				t.Errorf("Model() = %q, want %q", p.Model(), DefaultModels[name])
			}
		})
	}
}

func TestRegisterProvider_Custom(t *testing.T) {
	RegisterProvider("custom", func(cfg ProviderConfig) (Provider, error) {
		return &staticProvider{}, nil
	})

	p, err := NewProvider("custom", ProviderConfig{})
	if err != nil {
		t.Fatalf("NewProvider(custom) error = %v", err)
	}
	if p.Name() != "static" {
		t.Errorf("Name() = %q", p.Name())
	}
}

func TestDetectProvider(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	if name, _ := DetectProvider(); name != "" {
		t.Errorf("DetectProvider() with no keys = %q, want empty", name)
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	if name, key := DetectProvider(); name != "openai" || key != "sk-test" {
		t.Errorf("DetectProvider() = %q/%q, want openai/sk-test", name, key)
	}

	// Anthropic wins when both are present.
	t.Setenv("ANTHROPIC_API_KEY", "ak-test")
	if name, key := DetectProvider(); name != "anthropic" || key != "ak-test" {
		t.Errorf("DetectProvider() = %q/%q, want anthropic/ak-test", name, key)
	}
}

type staticProvider struct{}

func (p *staticProvider) Submit(ctx context.Context, instruction string, images []Image) (string, error) {
	return "", nil
}
func (p *staticProvider) Name() string  { return "static" }
func (p *staticProvider) Model() string { return "static-1" }
