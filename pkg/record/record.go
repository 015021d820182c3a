package record

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/aretw0/fieldprint/pkg/domain"
)

// Form selects how a raw string is split.
type Form string

const (
	FormPlain Form = "plain"
	FormQuery Form = "query"
)

// ParseForm validates a form name. An empty name means FormPlain.
func ParseForm(s string) (Form, error) {
	switch Form(s) {
	case "", FormPlain:
		return FormPlain, nil
	case FormQuery:
		return FormQuery, nil
	}
	return "", fmt.Errorf("unknown record form %q", s)
}

// Parser extracts a Record from raw text.
type Parser interface {
	Parse(raw string) (domain.Record, error)
}

// New returns the parser for a form. field is only used by FormQuery.
func New(form Form, field string) Parser {
	if form == FormQuery {
		if field == "" {
			field = domain.DefaultField
		}
		return QueryParser{Field: field}
	}
	return PlainParser{}
}

// PlainParser splits on '='.
type PlainParser struct{}

func (PlainParser) Parse(raw string) (domain.Record, error) {
	return ParsePlain(raw)
}

// ParsePlain splits raw on '=' and keeps the second segment, so "a=5=6" yields "5".
func ParsePlain(raw string) (domain.Record, error) {
	rec := domain.Record{Raw: raw}
	parts := strings.Split(raw, "=")
	if len(parts) < 2 {
		return rec, fmt.Errorf("parse %q: %w", raw, domain.ErrMissingDelimiter)
	}
	rec.Key = parts[0]
	rec.Value = parts[1]
	return rec, nil
}

// QueryParser reads one field of a URL query string.
type QueryParser struct {
	Field string
}

func (p QueryParser) Parse(raw string) (domain.Record, error) {
	return ParseQuery(raw, p.Field)
}

// ParseQuery parses raw as a URL query string and returns the first value of field.
func ParseQuery(raw, field string) (domain.Record, error) {
	rec := domain.Record{Raw: raw, Key: field}
	values, err := url.ParseQuery(strings.TrimRight(raw, "\r"))
	if err != nil {
		return rec, fmt.Errorf("parse query %q: %w", raw, err)
	}
	if !values.Has(field) {
		return rec, fmt.Errorf("parse query %q: %w: %s", raw, domain.ErrMissingField, field)
	}
	rec.Value = values.Get(field)
	return rec, nil
}
