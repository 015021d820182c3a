package domain

// Record is one `key=value` input, either a line of standard input or the command-line argument.
type Record struct {
	Raw    string `json:"raw"`
	Key    string `json:"key,omitempty"`
	Value  string `json:"value,omitempty"`
	Source Source `json:"source"`
	Line   int    `json:"line,omitempty"` // 1-based for stdin, 0 otherwise
}
