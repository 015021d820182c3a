package runner

import (
	"log/slog"
	"time"

	"github.com/aretw0/fieldprint/pkg/domain"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithPrinter configures how the run is presented.
func WithPrinter(p Printer) Option {
	return func(r *Runner) {
		r.Printer = p
	}
}

// WithBanners configures the banners of the default TextPrinter.
func WithBanners(b Banners) Option {
	return func(r *Runner) {
		r.Banners = b
	}
}

// WithMode configures what a failed stdin line does to the STDIN section.
func WithMode(m domain.Mode) Option {
	return func(r *Runner) {
		r.Mode = m
	}
}

// WithInputTimeout bounds the wait for each stdin line. Zero disables the deadline.
func WithInputTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.InputTimeout = d
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}
