package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/fieldprint/internal/config"
	"github.com/aretw0/fieldprint/pkg/domain"
	"github.com/aretw0/fieldprint/pkg/runner"
)

// ExecScript runs one registered external script on record, copies its
// stdout to w and returns the script's exit code.
func ExecScript(ctx context.Context, cfg *config.Config, name, record string, w io.Writer, logger *slog.Logger) (int, error) {
	scripts, err := newProcessRunner(cfg, logger, nil)
	if err != nil {
		return ExitFailures, err
	}

	clean, err := runner.SanitizeRecord(record)
	if err != nil {
		return ExitFailures, fmt.Errorf("record rejected: %w", err)
	}

	res, err := scripts.Execute(ctx, domain.ScriptCall{Name: name, Record: clean})
	if err != nil {
		return ExitFailures, err
	}
	if _, err := io.WriteString(w, res.Output); err != nil {
		return ExitFailures, err
	}
	if res.IsError {
		logger.Warn("script failed", "script", name, "exit_code", res.ExitCode, "err", res.Error)
		if res.ExitCode > 0 {
			return res.ExitCode, nil
		}
		return ExitFailures, nil
	}
	return ExitOK, nil
}
