package domain

import "fmt"

// Variant selects the transformation applied to extracted values.
type Variant string

const (
	// VariantConversor parses the value as an integer and adds the Kelvin offset.
	VariantConversor Variant = "conversor"
	// VariantNombre decorates the value with a greeting.
	VariantNombre Variant = "nombre"
)

// ParseVariant accepts the canonical names plus the command aliases used by the CLI.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "conversor", "convert", "kelvin":
		return VariantConversor, nil
	case "nombre", "greet", "name":
		return VariantNombre, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Mode decides what happens to the STDIN section when a line fails.
type Mode string

const (
	// ModeContinue skips the failed line and keeps reading.
	ModeContinue Mode = "continue"
	// ModeAbandon stops reading standard input at the first failed line.
	ModeAbandon Mode = "abandon"
)

// Source tells where a record came from.
type Source string

const (
	SourceStdin Source = "stdin"
	SourceArgv  Source = "argv"
	SourceHTTP  Source = "http"
	SourceMCP   Source = "mcp"
)

// DefaultField is the query-string key read by the query form.
const DefaultField = "var"

// DefaultOffset is added to integers by the numeric variant.
const DefaultOffset = 273

// DefaultMode ends the STDIN section at the first failed line.
const DefaultMode = ModeAbandon

// DefaultGreeting is the fmt format used by the textual variant.
const DefaultGreeting = "Hola %s!"
