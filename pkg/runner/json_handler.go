package runner

import (
	"encoding/json"
	"io"
	"os"

	"github.com/aretw0/fieldprint/pkg/domain"
)

// JSONPrinter emits one JSON object per record (NDJSON), failures included,
// and a summary line at the end. Banners are not printed.
type JSONPrinter struct {
	Encoder *json.Encoder
}

// ResultLine is the wire shape of one record in JSON mode.
type ResultLine struct {
	Source domain.Source `json:"source"`
	Line   int           `json:"line,omitempty"`
	Raw    string        `json:"raw"`
	Value  string        `json:"value,omitempty"`
	Output string        `json:"output,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// SummaryLine closes a JSON run.
type SummaryLine struct {
	Done      bool `json:"done"`
	Records   int  `json:"records"`
	Failures  int  `json:"failures"`
	TimedOut  bool `json:"timed_out,omitempty"`
	Abandoned bool `json:"abandoned,omitempty"`
}

// NewJSONPrinter creates a printer writing to w (os.Stdout if nil).
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	if w == nil {
		w = os.Stdout
	}
	return &JSONPrinter{Encoder: json.NewEncoder(w)}
}

// NewResultLine flattens a result for JSON output.
func NewResultLine(res domain.Result) ResultLine {
	return ResultLine{
		Source: res.Record.Source,
		Line:   res.Record.Line,
		Raw:    res.Record.Raw,
		Value:  res.Record.Value,
		Output: res.Output,
		Error:  res.Error(),
	}
}

func (p *JSONPrinter) Begin() error                         { return nil }
func (p *JSONPrinter) BeginSection(src domain.Source) error { return nil }
func (p *JSONPrinter) EndSection(src domain.Source) error   { return nil }

func (p *JSONPrinter) Result(res domain.Result) error {
	return p.Encoder.Encode(NewResultLine(res))
}

func (p *JSONPrinter) End(report *domain.Report) error {
	return p.Encoder.Encode(SummaryLine{
		Done:      true,
		Records:   len(report.Results),
		Failures:  len(report.Failures()),
		TimedOut:  report.TimedOut,
		Abandoned: report.Abandoned,
	})
}
