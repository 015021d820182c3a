package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/aretw0/fieldprint/internal/config"
	"github.com/aretw0/fieldprint/internal/logging"
	httpAdapter "github.com/aretw0/fieldprint/pkg/adapters/http"
	"github.com/aretw0/fieldprint/pkg/observability"
	"github.com/go-chi/httplog/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// NewServeHandler wires extractors, scripts and metrics into the HTTP adapter.
func NewServeHandler(cfg *config.Config, logger *slog.Logger) (http.Handler, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(reg)

	extractors, err := newExtractors(cfg, logger, metrics)
	if err != nil {
		return nil, err
	}
	scripts, err := newProcessRunner(cfg, logger, metrics)
	if err != nil {
		return nil, err
	}

	opts := []httpAdapter.Option{
		httpAdapter.WithGatherer(reg),
		httpAdapter.WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes),
		httpAdapter.WithLogger(logger),
	}
	if len(scripts.Names()) > 0 {
		opts = append(opts, httpAdapter.WithScripts(scripts))
	}
	if len(cfg.HTTP.AllowedOrigins) > 0 {
		opts = append(opts, httpAdapter.WithAllowedOrigins(cfg.HTTP.AllowedOrigins...))
	}
	if cfg.HTTP.AccessLog {
		level, _ := logging.ParseLevel(cfg.LogLevel)
		opts = append(opts, httpAdapter.WithRequestLogger(httplog.NewLogger("fieldprint", httplog.Options{
			LogLevel: min(level, slog.LevelInfo),
			Concise:  true,
			Writer:   os.Stderr,
		})))
	}
	for _, ext := range extractors {
		opts = append(opts, httpAdapter.WithExtractor(ext))
	}
	return httpAdapter.NewHandler(opts...), nil
}

// Serve runs the HTTP server until ctx is cancelled, then drains it within
// the configured shutdown timeout.
func Serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	handler, err := NewServeHandler(cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("shutdown started")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", cfg.HTTP.ShutdownTimeout, "err", err)
			if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		logger.Info("HTTP server stopped gracefully")
		return nil
	}
}
