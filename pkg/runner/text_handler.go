package runner

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/fieldprint/pkg/domain"
)

// TextPrinter reproduces the plain script output: banners, one line per
// successful record, nothing for failures.
type TextPrinter struct {
	Writer    io.Writer
	Banners   Banners
	Decorator Decorator
}

// NewTextPrinter creates a printer writing to w (os.Stdout if nil).
func NewTextPrinter(w io.Writer, banners Banners) *TextPrinter {
	if w == nil {
		w = os.Stdout
	}
	return &TextPrinter{Writer: w, Banners: banners}
}

func (p *TextPrinter) banner(text string) string {
	if p.Decorator != nil && text != "" {
		return p.Decorator(text)
	}
	return text
}

func (p *TextPrinter) Begin() error {
	_, err := fmt.Fprintf(p.Writer, "%s\n%s\n\n", p.banner(p.Banners.Start), p.banner(p.Banners.Title))
	return err
}

func (p *TextPrinter) BeginSection(src domain.Source) error {
	title := p.Banners.Stdin
	if src == domain.SourceArgv {
		title = p.Banners.Argv
	}
	_, err := fmt.Fprintln(p.Writer, p.banner(title))
	return err
}

func (p *TextPrinter) Result(res domain.Result) error {
	if !res.OK() {
		return nil
	}
	_, err := fmt.Fprintln(p.Writer, res.Output)
	return err
}

func (p *TextPrinter) EndSection(src domain.Source) error {
	_, err := fmt.Fprintf(p.Writer, "%s\n\n\n", p.banner(p.Banners.EndOfData))
	return err
}

func (p *TextPrinter) End(report *domain.Report) error {
	_, err := fmt.Fprintln(p.Writer, p.banner(p.Banners.End))
	return err
}
