package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/fieldprint"
	"github.com/aretw0/fieldprint/internal/config"
	"github.com/aretw0/fieldprint/internal/logging"
	"github.com/aretw0/fieldprint/internal/presentation/tui"
	"github.com/aretw0/fieldprint/pkg/adapters/process"
	"github.com/aretw0/fieldprint/pkg/domain"
	"github.com/aretw0/fieldprint/pkg/observability"
	"github.com/aretw0/fieldprint/pkg/record"
)

// NewLogger configures the application logger from the config level.
// Logs go to stderr so they never mix with script output.
func NewLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

// newExtractor builds an extractor for variant with the conventions of the CLI:
// config values first, then banner colors when out is a terminal.
func newExtractor(cfg *config.Config, variant domain.Variant, out io.Writer, logger *slog.Logger, metrics *observability.Metrics) (*fieldprint.Extractor, error) {
	form, err := record.ParseForm(cfg.Form)
	if err != nil {
		return nil, err
	}

	opts := []fieldprint.Option{
		fieldprint.WithLogger(logger),
		fieldprint.WithForm(form),
		fieldprint.WithField(cfg.Field),
		fieldprint.WithOffset(cfg.Offset),
		fieldprint.WithGreeting(cfg.Greeting),
		fieldprint.WithMode(domain.Mode(cfg.Mode)),
		fieldprint.WithInputTimeout(cfg.InputTimeout),
		fieldprint.WithBanners(cfg.Banners),
		fieldprint.WithJSON(cfg.JSON),
		fieldprint.WithMetrics(metrics),
	}

	if f, ok := out.(*os.File); ok && !cfg.JSON {
		if d := tui.NewDecorator(cfg.Color, f); d != nil {
			opts = append(opts, fieldprint.WithDecorator(d))
		}
	}

	ext, err := fieldprint.New(variant, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing %s extractor: %w", variant, err)
	}
	return ext, nil
}

// newExtractors builds one extractor per variant, for the servers.
func newExtractors(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) ([]*fieldprint.Extractor, error) {
	var out []*fieldprint.Extractor
	for _, v := range []domain.Variant{domain.VariantConversor, domain.VariantNombre} {
		ext, err := newExtractor(cfg, v, nil, logger, metrics)
		if err != nil {
			return nil, err
		}
		out = append(out, ext)
	}
	return out, nil
}

// newProcessRunner builds the script allow-list: inline config entries first,
// then scripts_file, which wins on name clashes.
func newProcessRunner(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (*process.Runner, error) {
	registry := process.Index(cfg.Scripts)
	if cfg.ScriptsFile != "" {
		loaded, err := process.LoadScripts(cfg.ScriptsFile)
		if err != nil {
			return nil, err
		}
		for name, s := range loaded {
			registry[name] = s
		}
	}

	return process.NewRunner(
		process.WithRegistry(registry),
		process.WithBaseDir(cfg.ScriptsDir),
		process.WithLogger(logger),
		process.WithMetrics(metrics),
	), nil
}
