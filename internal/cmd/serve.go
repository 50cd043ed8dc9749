package cmd

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	_ "github.com/studytrack/tracker/docs"
	"github.com/studytrack/tracker/internal/api"
	"github.com/studytrack/tracker/internal/pkg/config"
	"github.com/studytrack/tracker/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API with health probes, Prometheus metrics and Swagger UI.

The server shuts down gracefully on SIGINT or SIGTERM, draining in-flight
requests for up to SHUTDOWN_TIMEOUT.`,
	RunE: runServe,
}

var servePort string

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "study-tracker",
	})

	a, err := buildApp(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialise dependencies")
		return err
	}

	e := api.NewRouter(a.services, api.Options{
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
		Checks:    a.checks,
		Metrics:   true,
		Swagger:   !cfg.IsProduction(),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server failed")
			a.close(context.Background(), log)
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	a.close(shutdownCtx, log)
	log.Info().Msg("server stopped")
	return nil
}
