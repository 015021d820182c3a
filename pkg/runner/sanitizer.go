package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxRecordSize caps records received from remote callers (HTTP, MCP).
	DefaultMaxRecordSize = 64 * 1024
	// EnvMaxRecordSize overrides DefaultMaxRecordSize.
	EnvMaxRecordSize = "FIELDPRINT_MAX_RECORD_SIZE"
)

var (
	ErrRecordTooLarge = errors.New("record exceeds maximum allowed size")
	ErrInvalidUTF8    = errors.New("record contains invalid UTF-8 sequences")
)

// SanitizeRecord rejects oversized or non UTF-8 input and strips control
// characters other than '\n', '\t' and '\r', which keep their record meaning.
func SanitizeRecord(input string) (string, error) {
	limit := MaxRecordSize()
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrRecordTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	if strings.IndexFunc(input, isUnsafeControl) < 0 {
		return input, nil
	}
	return strings.Map(func(r rune) rune {
		if isUnsafeControl(r) {
			return -1
		}
		return r
	}, input), nil
}

func isUnsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}

// MaxRecordSize returns the active size limit in bytes.
func MaxRecordSize() int {
	if val := os.Getenv(EnvMaxRecordSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxRecordSize
}
