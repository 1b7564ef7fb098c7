package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aqlanhadi/ledgr/api"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP API server",
	Long:  `Starts the HTTP API server that accepts statements and returns categorized transactions as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ext, err := newExtractor()
		if err != nil {
			return err
		}

		cfg := api.DefaultConfig()
		cfg.Port = ":" + coalesce(servePort, appConfig.Server.Port, "8080")
		if appConfig.Server.MaxUploadBytes > 0 {
			cfg.MaxUploadBytes = appConfig.Server.MaxUploadBytes
		}

		server := api.New(cfg, logger, ext)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() { errCh <- server.Start() }()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown failed", zap.Error(err))
				return err
			}
			return nil
		}
	},
}

// coalesce returns the first non-empty string
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to run the API server on (default from server.port)")
}
