package tui

import (
	"os"

	"github.com/aretw0/fieldprint/pkg/runner"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// NewDecorator returns a banner decorator for the given color mode
// ("auto", "always" or "never"). In auto mode, banners are only colored when
// out is a terminal; piped output stays byte-for-byte plain.
func NewDecorator(mode string, out *os.File) runner.Decorator {
	var profile termenv.Profile
	switch mode {
	case "never":
		return nil
	case "always":
		profile = termenv.ANSI256
	default:
		if !IsTerminal(out) {
			return nil
		}
		profile = termenv.ColorProfile()
	}

	color := profile.Color("#a78bfa")
	return func(s string) string {
		return termenv.String(s).Foreground(color).Bold().String()
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
