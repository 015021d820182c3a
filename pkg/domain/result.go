package domain

// Result is the outcome of extracting and transforming a single Record.
// Exactly one of Output or Err is meaningful.
type Result struct {
	Record Record `json:"record"`
	Output string `json:"output,omitempty"`
	Err    error  `json:"-"`
}

// OK reports whether the record produced an output line.
func (r Result) OK() bool {
	return r.Err == nil
}

// Error returns the failure message, or an empty string on success.
func (r Result) Error() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Report collects every Result of one run in the order they were produced.
type Report struct {
	Results []Result `json:"results"`

	// TimedOut is set when the input deadline ended the STDIN section.
	TimedOut bool `json:"timed_out,omitempty"`
	// Abandoned is set when a failed line ended the STDIN section in ModeAbandon.
	Abandoned bool `json:"abandoned,omitempty"`
}

// Add appends a result.
func (r *Report) Add(res Result) {
	r.Results = append(r.Results, res)
}

// Failures returns the results that did not produce output.
func (r *Report) Failures() []Result {
	var failed []Result
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Outputs returns the printed lines, in order.
func (r *Report) Outputs() []string {
	var out []string
	for _, res := range r.Results {
		if res.OK() {
			out = append(out, res.Output)
		}
	}
	return out
}

// BySource filters results by origin.
func (r *Report) BySource(src Source) []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Record.Source == src {
			out = append(out, res)
		}
	}
	return out
}
