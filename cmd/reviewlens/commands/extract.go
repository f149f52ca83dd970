package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Dwij1704/Visual-Review-Extractor/internal/config"
	"github.com/Dwij1704/Visual-Review-Extractor/internal/logger"
	"github.com/Dwij1704/Visual-Review-Extractor/internal/output"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Run one extraction from the command line",
	Long: `Run the full pipeline once for a single URL and print the result.

Examples:
  reviewlens extract -u "https://example.com/product"
  reviewlens extract -u "https://example.com/product" -f yaml -o reviews.yaml`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	flags := extractCmd.Flags()
	flags.StringP("url", "u", "", "page URL to extract reviews from (required)")
	flags.StringP("format", "f", "json", "output format: json, yaml")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.StringP("provider", "p", "", "vision provider: anthropic, openai (auto-detects from env vars)")
	flags.StringP("model", "m", "", "model name (provider-specific)")

	_ = extractCmd.MarkFlagRequired("url")
	_ = viper.BindPFlag("provider", flags.Lookup("provider"))
	_ = viper.BindPFlag("model", flags.Lookup("model"))
}

func runExtract(cmd *cobra.Command, args []string) error {
	targetURL, _ := cmd.Flags().GetString("url")
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("output")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("log_json"),
	}); err != nil {
		return err
	}

	p, cleanup, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	start := time.Now()
	result, err := p.Run(cmd.Context(), targetURL)
	if err != nil {
		return err
	}

	dest := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		dest = f
	}

	w, err := output.NewWriter(dest, output.Format(format))
	if err != nil {
		return err
	}
	if err := w.Write(result); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "extracted %d review(s) in %s\n",
		len(result.Reviews), humanize.RelTime(start, time.Now(), "", ""))
	return nil
}
