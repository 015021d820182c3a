package fieldprint

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/fieldprint/pkg/domain"
	"github.com/aretw0/fieldprint/pkg/observability"
	"github.com/aretw0/fieldprint/pkg/record"
	"github.com/aretw0/fieldprint/pkg/runner"
	"github.com/aretw0/fieldprint/pkg/transform"
)

// Extractor is the high-level entry point of the library.
// It binds a record parser to a variant's transformer and drives runs.
type Extractor struct {
	variant      domain.Variant
	form         record.Form
	field        string
	offset       int64
	greeting     string
	mode         domain.Mode
	inputTimeout time.Duration
	banners      *runner.Banners
	decorator    runner.Decorator
	json         bool
	logger       *slog.Logger
	metrics      *observability.Metrics

	parser      record.Parser
	transformer transform.Transformer
}

// Option defines a functional option for configuring the Extractor.
type Option func(*Extractor)

// WithLogger sets a custom structured logger. Failed records are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// WithForm selects plain `key=value` or query-string records.
func WithForm(f record.Form) Option {
	return func(e *Extractor) {
		e.form = f
	}
}

// WithField sets the query-string key read by record.FormQuery (default "var").
func WithField(field string) Option {
	return func(e *Extractor) {
		e.field = field
	}
}

// WithOffset sets the integer added by the conversor (default 273).
func WithOffset(offset int64) Option {
	return func(e *Extractor) {
		e.offset = offset
	}
}

// WithGreeting sets the fmt format of the nombre variant (default "Hola %s!").
func WithGreeting(format string) Option {
	return func(e *Extractor) {
		e.greeting = format
	}
}

// WithMode sets what a failed stdin line does to the STDIN section.
func WithMode(m domain.Mode) Option {
	return func(e *Extractor) {
		e.mode = m
	}
}

// WithInputTimeout bounds the wait for each stdin line. Zero disables it.
func WithInputTimeout(d time.Duration) Option {
	return func(e *Extractor) {
		e.inputTimeout = d
	}
}

// WithBanners overrides the banners printed around the sections.
// Empty fields keep the variant's defaults.
func WithBanners(b runner.Banners) Option {
	return func(e *Extractor) {
		e.banners = &b
	}
}

// WithDecorator styles banner lines (e.g. terminal colors).
func WithDecorator(d runner.Decorator) Option {
	return func(e *Extractor) {
		e.decorator = d
	}
}

// WithJSON switches Run to NDJSON output.
func WithJSON(enabled bool) Option {
	return func(e *Extractor) {
		e.json = enabled
	}
}

// WithMetrics records every processed record on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Extractor) {
		e.metrics = m
	}
}

// New builds an Extractor for a variant.
func New(variant domain.Variant, opts ...Option) (*Extractor, error) {
	e := &Extractor{
		variant:      variant,
		form:         record.FormPlain,
		field:        domain.DefaultField,
		offset:       domain.DefaultOffset,
		greeting:     domain.DefaultGreeting,
		mode:         domain.DefaultMode,
		inputTimeout: runner.DefaultInputTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e.logger = e.logger.With("variant", string(variant))

	t, err := transform.ForVariant(variant, transform.Options{Offset: e.offset, Greeting: e.greeting})
	if err != nil {
		return nil, err
	}
	e.transformer = t
	e.parser = record.New(e.form, e.field)

	switch e.mode {
	case domain.ModeContinue, domain.ModeAbandon:
	default:
		return nil, fmt.Errorf("unknown mode %q", e.mode)
	}

	return e, nil
}

// Variant returns the variant the extractor applies.
func (e *Extractor) Variant() domain.Variant {
	return e.variant
}

// Apply parses and transforms one raw record. It never panics and never prints.
func (e *Extractor) Apply(raw string, src domain.Source) domain.Result {
	start := time.Now()
	res := e.apply(raw, src)
	e.metrics.ObserveRecord(e.variant, res, time.Since(start))
	return res
}

func (e *Extractor) apply(raw string, src domain.Source) domain.Result {
	rec, err := e.parser.Parse(raw)
	rec.Source = src
	if err != nil {
		return domain.Result{Record: rec, Err: err}
	}

	out, err := e.transformer.Transform(rec.Value)
	if err != nil {
		return domain.Result{Record: rec, Err: err}
	}
	return domain.Result{Record: rec, Output: out}
}

// Printer returns the printer Run uses for w: NDJSON when WithJSON is set,
// otherwise the banner text output.
func (e *Extractor) Printer(w io.Writer) runner.Printer {
	if e.json {
		return runner.NewJSONPrinter(w)
	}
	tp := runner.NewTextPrinter(w, e.Banners())
	tp.Decorator = e.decorator
	return tp
}

// Banners returns the variant's default banners merged with WithBanners.
func (e *Extractor) Banners() runner.Banners {
	banners := runner.DefaultBanners(e.variant)
	if e.banners != nil {
		banners = e.banners.Merge(banners)
	}
	return banners
}

// Runner returns a runner.Runner wired to this extractor and printer.
func (e *Extractor) Runner(p runner.Printer) *runner.Runner {
	return runner.NewRunner(e,
		runner.WithPrinter(p),
		runner.WithBanners(e.Banners()),
		runner.WithMode(e.mode),
		runner.WithInputTimeout(e.inputTimeout),
		runner.WithLogger(e.logger),
	)
}

// Run executes the full script flow: stdin lines first, then args[0].
// The returned error only reports output or cancellation problems; record
// failures are in the report.
func (e *Extractor) Run(ctx context.Context, stdin io.Reader, stdout io.Writer, args []string) (*domain.Report, error) {
	return e.RunWith(ctx, stdin, e.Printer(stdout), args)
}

// RunWith is Run with an explicit printer.
func (e *Extractor) RunWith(ctx context.Context, stdin io.Reader, p runner.Printer, args []string) (*domain.Report, error) {
	report, err := e.Runner(p).Run(ctx, stdin, args)
	e.metrics.ObserveReport(e.variant, report)
	return report, err
}
