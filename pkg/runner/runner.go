package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/fieldprint/pkg/domain"
)

// DefaultInputTimeout bounds how long the STDIN section waits for the next line.
const DefaultInputTimeout = time.Second

// Extractor derives a Result from one raw record.
type Extractor interface {
	Apply(raw string, src domain.Source) domain.Result
}

// Runner executes the linear read-parse-print flow once.
type Runner struct {
	// Extractor parses and transforms each record. Required.
	Extractor Extractor

	// Printer presents the run. If nil, a TextPrinter on os.Stdout with Banners is used.
	Printer Printer

	// Banners are used by the default TextPrinter.
	Banners Banners

	// Mode decides whether a failed stdin line ends the STDIN section.
	Mode domain.Mode

	// InputTimeout bounds the wait for each stdin line. Zero disables it.
	InputTimeout time.Duration

	// Logger is the debug channel for failed records.
	// If nil, a no-op logger is used.
	Logger *slog.Logger
}

// NewRunner creates a Runner with default banners, domain.DefaultMode and DefaultInputTimeout.
func NewRunner(extractor Extractor, opts ...Option) *Runner {
	r := &Runner{
		Extractor:    extractor,
		Banners:      DefaultBanners(domain.VariantConversor),
		Mode:         domain.DefaultMode,
		InputTimeout: DefaultInputTimeout,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) resolvePrinter() Printer {
	if r.Printer != nil {
		return r.Printer
	}
	return NewTextPrinter(nil, r.Banners)
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}

// Run reads stdin to exhaustion (or until the input deadline), then extracts the
// first element of args. Record failures are never returned as errors: they are
// in the report. An error means the output could not be written or ctx was cancelled.
func (r *Runner) Run(ctx context.Context, stdin io.Reader, args []string) (*domain.Report, error) {
	if r.Extractor == nil {
		return nil, errors.New("runner: extractor must be set")
	}
	printer := r.resolvePrinter()
	report := &domain.Report{}

	if err := printer.Begin(); err != nil {
		return report, fmt.Errorf("write banner: %w", err)
	}

	if err := printer.BeginSection(domain.SourceStdin); err != nil {
		return report, fmt.Errorf("write banner: %w", err)
	}
	if err := r.runStdin(ctx, stdin, printer, report); err != nil {
		return report, err
	}
	if err := printer.EndSection(domain.SourceStdin); err != nil {
		return report, fmt.Errorf("write banner: %w", err)
	}

	if err := printer.BeginSection(domain.SourceArgv); err != nil {
		return report, fmt.Errorf("write banner: %w", err)
	}
	if err := r.runArgs(args, printer, report); err != nil {
		return report, err
	}
	if err := printer.EndSection(domain.SourceArgv); err != nil {
		return report, fmt.Errorf("write banner: %w", err)
	}

	if err := printer.End(report); err != nil {
		return report, fmt.Errorf("write banner: %w", err)
	}
	return report, nil
}

func (r *Runner) runStdin(ctx context.Context, stdin io.Reader, printer Printer, report *domain.Report) error {
	if stdin == nil {
		return nil
	}
	log := r.logger()
	source := NewLineSource(stdin)
	defer source.Close()

	for n := 1; ; n++ {
		line, err := r.nextLine(ctx, source)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, context.DeadlineExceeded) {
				report.TimedOut = true
				log.Debug("stdin section ended", "err", domain.ErrInputTimeout, "timeout", r.InputTimeout, "lines", n-1)
				return nil
			}
			if !errors.Is(err, io.EOF) {
				log.Debug("stdin read failed", "err", err, "lines", n-1)
			}
			return nil
		}

		res := r.Extractor.Apply(line, domain.SourceStdin)
		res.Record.Line = n
		report.Add(res)
		if err := printer.Result(res); err != nil {
			return fmt.Errorf("write result: %w", err)
		}

		if !res.OK() {
			log.Debug("record ignored", "source", domain.SourceStdin, "line", n, "raw", line, "err", res.Err)
			if r.Mode == domain.ModeAbandon {
				report.Abandoned = true
				return nil
			}
		}
	}
}

func (r *Runner) nextLine(ctx context.Context, source *LineSource) (string, error) {
	if r.InputTimeout <= 0 {
		return source.Next(ctx)
	}
	lineCtx, cancel := context.WithTimeout(ctx, r.InputTimeout)
	defer cancel()
	return source.Next(lineCtx)
}

func (r *Runner) runArgs(args []string, printer Printer, report *domain.Report) error {
	var res domain.Result
	if len(args) == 0 {
		res = domain.Result{
			Record: domain.Record{Source: domain.SourceArgv},
			Err:    domain.ErrMissingArgument,
		}
	} else {
		res = r.Extractor.Apply(args[0], domain.SourceArgv)
	}
	report.Add(res)

	if !res.OK() {
		r.logger().Debug("record ignored", "source", domain.SourceArgv, "raw", res.Record.Raw, "err", res.Err)
	}
	if err := printer.Result(res); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
