// Package config loads and validates application configuration from
// flags, environment variables, and an optional config file.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all runtime settings.
type Config struct {
	ListenAddr      string        `mapstructure:"listen_addr" validate:"required"`
	WorkDir         string        `mapstructure:"work_dir" validate:"required"`
	LogFile         string        `mapstructure:"log_file"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`

	ViewportWidth  int64         `mapstructure:"viewport_width" validate:"gt=0"`
	ViewportHeight int64         `mapstructure:"viewport_height" validate:"gt=0"`
	LoadTimeout    time.Duration `mapstructure:"load_timeout" validate:"gt=0"`
	SettleDelay    time.Duration `mapstructure:"settle_delay" validate:"gt=0"`
	MaxFrames      int           `mapstructure:"max_frames" validate:"gte=0"`

	Provider      string        `mapstructure:"provider" validate:"omitempty,oneof=anthropic openai"`
	Model         string        `mapstructure:"model"`
	APIKey        string        `mapstructure:"api_key"`
	MaxTokens     int           `mapstructure:"max_tokens" validate:"gte=0"`
	VisionTimeout time.Duration `mapstructure:"vision_timeout" validate:"gte=0"`
}

// SetDefaults registers default values on viper. Called before flags are
// bound so flags and env vars win.
func SetDefaults() {
	viper.SetDefault("listen_addr", ":8080")
	viper.SetDefault("work_dir", "screenshots")
	viper.SetDefault("log_file", "reviewlens.log")
	viper.SetDefault("shutdown_timeout", 15*time.Second)

	viper.SetDefault("viewport_width", 1920)
	viper.SetDefault("viewport_height", 1000)
	viper.SetDefault("load_timeout", 60*time.Second)
	viper.SetDefault("settle_delay", 2*time.Second)
	viper.SetDefault("max_frames", 20)

	viper.SetDefault("max_tokens", 4096)
	viper.SetDefault("vision_timeout", 120*time.Second)
}

// Load unmarshals and validates the effective configuration.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
