package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/ai"
	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/config"
	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/platform/logger"
	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/platform/woocommerce"
	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/platform/wordpress"
	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/task"
)

// app holds the shared dependencies built once by the root command and
// consumed by every subcommand.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	media     *wordpress.MediaClient
	store     *woocommerce.Client
	assistant *ai.Assistant
}

// runnerConfig derives the worker pool settings from config, honoring
// a --workers override when the flag was set.
func (a *app) runnerConfig() task.RunnerConfig {
	rc := task.DefaultRunnerConfig()
	rc.WorkerCount = a.cfg.Queue.Workers
	if a.cfg.Queue.StopTimeout > 0 {
		rc.StopTimeout = a.cfg.Queue.StopTimeout
	}
	if flagWorkers > 0 {
		rc.WorkerCount = flagWorkers
	}
	return rc
}

func (a *app) newRunner() *task.Runner {
	return task.NewRunner(a.media, a.store, a.runnerConfig(), a.logger)
}

var (
	appInstance *app
	flagWorkers int
)

var rootCmd = &cobra.Command{
	Use:   "uploader",
	Short: "Bulk product uploader for WooCommerce stores",
	Long: `uploader publishes products to a WooCommerce store through a fixed
pool of concurrent workers. Each product's images are uploaded to the
WordPress media library first, then the product is created with the
first successfully uploaded image featured.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		log := logger.Setup(cfg.Server)

		appInstance = &app{
			cfg:       cfg,
			logger:    log,
			media:     wordpress.NewMediaClient(cfg.Store, log),
			store:     woocommerce.NewClient(cfg.Store, log),
			assistant: ai.NewAssistant(cfg.AI, log),
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0,
		"number of upload workers (overrides config)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
