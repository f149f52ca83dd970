package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func setup(t *testing.T) {
	t.Helper()
	viper.Reset()
	SetDefaults()
	t.Cleanup(viper.Reset)
}

func TestLoad_Defaults(t *testing.T) {
	setup(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.ViewportWidth != 1920 || cfg.ViewportHeight != 1000 {
		t.Errorf("viewport = %dx%d, want 1920x1000", cfg.ViewportWidth, cfg.ViewportHeight)
	}
	if cfg.SettleDelay != 2*time.Second {
		t.Errorf("SettleDelay = %v", cfg.SettleDelay)
	}
	if cfg.MaxFrames != 20 {
		t.Errorf("MaxFrames = %d", cfg.MaxFrames)
	}
	if cfg.VisionTimeout == 0 {
		t.Error("VisionTimeout should default to a bound")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setup(t)
	viper.Set("viewport_height", 800)
	viper.Set("max_frames", 0)
	viper.Set("provider", "openai")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ViewportHeight != 800 {
		t.Errorf("ViewportHeight = %d, want 800", cfg.ViewportHeight)
	}
	if cfg.MaxFrames != 0 {
		t.Errorf("MaxFrames = %d, want 0 (unbounded)", cfg.MaxFrames)
	}
	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q", cfg.Provider)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"unknown_provider", "provider", "llava"},
		{"zero_viewport", "viewport_height", 0},
		{"negative_max_frames", "max_frames", -1},
		{"empty_work_dir", "work_dir", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t)
			viper.Set(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%v should fail", tt.key, tt.value)
			}
		})
	}
}
