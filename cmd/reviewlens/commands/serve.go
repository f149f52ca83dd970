package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Dwij1704/Visual-Review-Extractor/internal/config"
	"github.com/Dwij1704/Visual-Review-Extractor/internal/logger"
	"github.com/Dwij1704/Visual-Review-Extractor/internal/metrics"
	"github.com/Dwij1704/Visual-Review-Extractor/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the review extraction HTTP service",
	Long: `Start the HTTP service.

Endpoints:
  GET /api/reviews?page=<url>   run an extraction for the given page
  GET /api/logs                 plain-text server log dump
  GET /api/health               liveness check
  GET /metrics                  prometheus metrics`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	flags := serveCmd.Flags()
	flags.String("listen-addr", ":8080", "address to listen on")
	flags.String("work-dir", "screenshots", "base directory for per-run frame workspaces")
	flags.String("log-file", "reviewlens.log", "flat log file served by /api/logs")
	flags.StringP("provider", "p", "", "vision provider: anthropic, openai (auto-detects from env vars)")
	flags.StringP("model", "m", "", "model name (provider-specific)")
	flags.Int("max-frames", 20, "maximum screenshots per page (0 = unbounded)")

	_ = viper.BindPFlag("listen_addr", flags.Lookup("listen-addr"))
	_ = viper.BindPFlag("work_dir", flags.Lookup("work-dir"))
	_ = viper.BindPFlag("log_file", flags.Lookup("log-file"))
	_ = viper.BindPFlag("provider", flags.Lookup("provider"))
	_ = viper.BindPFlag("model", flags.Lookup("model"))
	_ = viper.BindPFlag("max_frames", flags.Lookup("max-frames"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("log_json"),
		File:  cfg.LogFile,
	}); err != nil {
		return err
	}

	metrics.Init()

	p, cleanup, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	handler := server.NewHandler(p, cfg.LogFile)
	srv := server.New(cfg.ListenAddr, server.NewRouter(handler), cfg.ShutdownTimeout)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
