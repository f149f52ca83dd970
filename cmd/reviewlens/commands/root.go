// Package commands implements the CLI commands for reviewlens.
package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Dwij1704/Visual-Review-Extractor/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "reviewlens",
	Short: "Extract product reviews from web pages via screenshots and a vision model",
	Long: `Reviewlens renders a product page in a headless browser, captures it as
a sequence of viewport screenshots, and asks a vision-capable model to
transcribe the customer reviews it sees.

Examples:
  # Run the HTTP service
  reviewlens serve --listen-addr :8080

  # One-shot extraction from the command line
  reviewlens extract -u "https://example.com/product" -f yaml`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.reviewlens.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().Bool("log-json", false, "log as JSON")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))
}

func initConfig() {
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".reviewlens")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("REVIEWLENS")
	viper.AutomaticEnv()

	// API keys usually live in the provider's conventional env var.
	_ = viper.BindEnv("api_key", "REVIEWLENS_API_KEY", "ANTHROPIC_API_KEY", "OPENAI_API_KEY")

	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
