package domain

import "errors"

// ErrMissingDelimiter is returned when a record has no '=' separating key and value.
var ErrMissingDelimiter = errors.New("missing '=' delimiter")

// ErrMissingField is returned when a query-string record lacks the configured field.
var ErrMissingField = errors.New("missing field")

// ErrNotInteger is returned when the numeric variant receives a non-integer value.
var ErrNotInteger = errors.New("value is not an integer")

// ErrOutOfRange is returned when an integer value or its conversion overflows int64.
var ErrOutOfRange = errors.New("value out of range")

// ErrMissingArgument is returned when the command-line record was not provided.
var ErrMissingArgument = errors.New("missing argument")

// ErrInputTimeout is recorded when reading standard input exceeded its deadline.
var ErrInputTimeout = errors.New("input timeout")

// ErrUnknownVariant is returned for a variant name that has no transformer.
var ErrUnknownVariant = errors.New("unknown variant")

// ErrScriptNotRegistered is returned when an external script is not in the allow-list.
var ErrScriptNotRegistered = errors.New("script not registered")

// ErrInvalidGreeting is returned for a greeting format that is not exactly one %s verb.
var ErrInvalidGreeting = errors.New("greeting must contain exactly one %s")

// ErrScriptTimeout is returned when an external script outlived its timeout.
var ErrScriptTimeout = errors.New("script timed out")
