package runner

import (
	"github.com/aretw0/fieldprint/pkg/domain"
)

// Printer defines how a run is presented.
// This allows switching between the plain script output and structured JSON lines.
type Printer interface {
	// Begin is called once before any section.
	Begin() error
	// BeginSection is called before the records of a source are processed.
	BeginSection(src domain.Source) error
	// Result receives every result, failed ones included.
	Result(res domain.Result) error
	// EndSection is called after the last record of a source.
	EndSection(src domain.Source) error
	// End is called once with the final report.
	End(report *domain.Report) error
}

// Decorator transforms banner text before it is written (e.g. terminal colors).
type Decorator func(string) string
