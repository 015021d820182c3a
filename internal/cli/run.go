package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/fieldprint/internal/config"
	"github.com/aretw0/fieldprint/pkg/domain"
)

// Exit codes of the script commands.
const (
	ExitOK          = 0
	ExitFailures    = 1
	ExitInterrupted = 130
)

// RunOptions contains everything the convert and greet commands need.
type RunOptions struct {
	Config *config.Config
	// Variant overrides Config.Variant when set.
	Variant domain.Variant
	Stdin   io.Reader
	Stdout  io.Writer
	Args    []string
	Logger  *slog.Logger
}

// RunScript executes the script flow once and returns the process exit code.
// Record failures only change the exit code under strict mode.
func RunScript(ctx context.Context, opts RunOptions) (int, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	variant := opts.Variant
	if variant == "" {
		v, err := domain.ParseVariant(opts.Config.Variant)
		if err != nil {
			return ExitFailures, err
		}
		variant = v
	}

	ext, err := newExtractor(opts.Config, variant, opts.Stdout, logger, nil)
	if err != nil {
		return ExitFailures, err
	}

	if len(opts.Args) > 1 {
		logger.Debug("extra arguments ignored", "count", len(opts.Args)-1)
	}

	report, err := ext.Run(ctx, opts.Stdin, opts.Stdout, opts.Args)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("run interrupted")
			return ExitInterrupted, nil
		}
		return ExitFailures, fmt.Errorf("run failed: %w", err)
	}

	logger.Info("run finished",
		"variant", variant,
		"records", len(report.Results),
		"failures", len(report.Failures()),
		"timed_out", report.TimedOut,
		"abandoned", report.Abandoned,
	)
	return ExitCode(report, opts.Config.Strict), nil
}

// ExitCode maps a report to the process exit status.
func ExitCode(report *domain.Report, strict bool) int {
	if strict && report != nil && len(report.Failures()) > 0 {
		return ExitFailures
	}
	return ExitOK
}
