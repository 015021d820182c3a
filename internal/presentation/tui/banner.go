package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the startup banner of long-running commands (serve, mcp).
func PrintBanner(w io.Writer, version, subtitle string) {
	p := termenv.ColorProfile()
	title := termenv.String(" fieldprint ").Foreground(p.Color("#0f172a")).Background(p.Color("#a78bfa")).Bold()
	ver := termenv.String("v" + version).Foreground(p.Color("#818cf8"))
	sub := termenv.String(subtitle).Foreground(p.Color("#f472b6"))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", title, ver)
	if subtitle != "" {
		fmt.Fprintln(w, sub)
	}
	fmt.Fprintln(w)
}
