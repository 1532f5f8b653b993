package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP submission API",
	Long: `Starts an HTTP server that accepts product submissions on
POST /api/tasks and exposes queue depth and counters. Shuts down
gracefully on SIGINT or SIGTERM, finishing in-flight uploads.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := appInstance.logger

		runner := appInstance.newRunner()
		defer runner.Stop()

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", appInstance.cfg.Server.Port),
			Handler:           api.NewRouter(runner),
			ReadHeaderTimeout: 5 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("HTTP server starting", "addr", srv.Addr)
			errCh <- srv.ListenAndServe()
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		case sig := <-sigCh:
			log.Info("shutting down", "signal", sig.String())
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		// Let in-flight tasks drain before Stop abandons the queue.
		runner.WaitForCompletion()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
