package observability

import (
	"time"

	"github.com/aretw0/fieldprint/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fieldprint"

// Metrics groups the collectors updated by extractors and runners.
type Metrics struct {
	Records  *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	Sections *prometheus.CounterVec
	Scripts  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered, which is handy in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Records: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_total",
				Help:      "Total number of records processed",
			},
			[]string{"variant", "source", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "transform_duration_seconds",
				Help:      "Duration of record extraction and transformation",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 8),
			},
			[]string{"variant"},
		),
		Sections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stdin_sections_total",
				Help:      "STDIN sections by how they ended",
			},
			[]string{"variant", "end"},
		),
		Scripts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "script_runs_total",
				Help:      "External script executions by outcome",
			},
			[]string{"script", "outcome"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Records, m.Duration, m.Sections, m.Scripts)
	}
	return m
}

func outcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}

// ObserveRecord counts one result and its processing time.
func (m *Metrics) ObserveRecord(v domain.Variant, res domain.Result, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Records.WithLabelValues(string(v), string(res.Record.Source), outcome(res.OK())).Inc()
	m.Duration.WithLabelValues(string(v)).Observe(elapsed.Seconds())
}

// ObserveReport counts how the STDIN section of a run ended.
func (m *Metrics) ObserveReport(v domain.Variant, report *domain.Report) {
	if m == nil || report == nil {
		return
	}
	end := "eof"
	switch {
	case report.TimedOut:
		end = "timeout"
	case report.Abandoned:
		end = "abandoned"
	}
	m.Sections.WithLabelValues(string(v), end).Inc()
}

// ObserveScript counts one external script run.
func (m *Metrics) ObserveScript(res domain.ScriptResult) {
	if m == nil {
		return
	}
	m.Scripts.WithLabelValues(res.Name, outcome(!res.IsError)).Inc()
}
