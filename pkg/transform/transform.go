// Package transform derives the printed output from an extracted value.
package transform

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/fieldprint/pkg/domain"
)

// Transformer turns an extracted value into the line that gets printed.
type Transformer interface {
	Transform(value string) (string, error)
}

// Kelvin adds a fixed offset to an integer value.
type Kelvin struct {
	Offset int64
}

// Transform trims surrounding whitespace, parses a base-10 integer and adds the offset.
func (k Kelvin) Transform(value string) (string, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return "", fmt.Errorf("%q: %w", value, domain.ErrOutOfRange)
		}
		return "", fmt.Errorf("%q: %w", value, domain.ErrNotInteger)
	}
	if (k.Offset > 0 && n > math.MaxInt64-k.Offset) || (k.Offset < 0 && n < math.MinInt64-k.Offset) {
		return "", fmt.Errorf("%d%+d: %w", n, k.Offset, domain.ErrOutOfRange)
	}
	return strconv.FormatInt(n+k.Offset, 10), nil
}

// Greeting renders the value into a fmt format with a single %s verb.
type Greeting struct {
	Format string
}

// Transform cuts the value at the first carriage return and formats it.
func (g Greeting) Transform(value string) (string, error) {
	format := g.Format
	if format == "" {
		format = domain.DefaultGreeting
	}
	name, _, _ := strings.Cut(value, "\r")
	return fmt.Sprintf(format, name), nil
}

// CheckGreeting accepts a format whose only verb is a single %s. Literal
// percent signs are written as %%.
func CheckGreeting(format string) error {
	verbs := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		i++
		switch {
		case i < len(format) && format[i] == '%':
		case i < len(format) && format[i] == 's':
			verbs++
		default:
			return fmt.Errorf("%q: %w", format, domain.ErrInvalidGreeting)
		}
	}
	if verbs != 1 {
		return fmt.Errorf("%q: %w", format, domain.ErrInvalidGreeting)
	}
	return nil
}

// Options carries the per-variant knobs.
type Options struct {
	Offset   int64
	Greeting string
}

// ForVariant returns the transformer a variant uses.
func ForVariant(v domain.Variant, opts Options) (Transformer, error) {
	switch v {
	case domain.VariantConversor:
		return Kelvin{Offset: opts.Offset}, nil
	case domain.VariantNombre:
		if opts.Greeting != "" {
			if err := CheckGreeting(opts.Greeting); err != nil {
				return nil, err
			}
		}
		return Greeting{Format: opts.Greeting}, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownVariant, v)
}
