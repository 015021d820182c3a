package domain

import "time"

// ScriptCall asks the process adapter to run a registered external script on a record.
type ScriptCall struct {
	Name    string        `json:"name" yaml:"name" mapstructure:"name"`
	Record  string        `json:"record" yaml:"record" mapstructure:"record"`
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty" mapstructure:"timeout"`
}

// ScriptResult is what an external script printed.
type ScriptResult struct {
	Name     string `json:"name"`
	Output   string `json:"output,omitempty"`
	ExitCode int    `json:"exit_code"`
	IsError  bool   `json:"is_error,omitempty"`
	Error    string `json:"error,omitempty"`
}
