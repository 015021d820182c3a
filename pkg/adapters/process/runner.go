package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/fieldprint/pkg/domain"
	"github.com/aretw0/fieldprint/pkg/observability"
)

// DefaultTimeout bounds a script run when neither the call nor the registry sets one.
const DefaultTimeout = time.Second

// Runner executes registered external scripts the way a CGI host does: the record
// is written to the script's stdin and appended as its last argument.
// Only allow-listed scripts run.
type Runner struct {
	registry map[string]RegisteredProcess
	baseDir  string
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// RegisteredProcess defines an allowed command execution.
type RegisteredProcess struct {
	Command string
	Args    []string
	Timeout time.Duration
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithRegistry populates the allow-list from loaded configs.
func WithRegistry(scripts map[string]ProcessConfig) RunnerOption {
	return func(r *Runner) {
		for name, s := range scripts {
			r.registry[name] = RegisteredProcess{Command: s.Command, Args: s.Args, Timeout: s.Timeout}
		}
	}
}

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithMetrics counts every executed script on m.
func WithMetrics(m *observability.Metrics) RunnerOption {
	return func(r *Runner) {
		r.metrics = m
	}
}

// NewRunner creates a new process Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		registry: make(map[string]RegisteredProcess),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a trusted script to the allow-list.
func (r *Runner) Register(name string, command string, args ...string) {
	r.registry[name] = RegisteredProcess{Command: command, Args: args}
}

// Names lists the registered scripts, sorted.
func (r *Runner) Names() []string {
	names := make([]string, 0, len(r.registry))
	for name := range r.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs a registered script on call.Record.
// Script failures (non-zero exit, timeout) are reported in the ScriptResult;
// the error is only set for unregistered scripts.
func (r *Runner) Execute(ctx context.Context, call domain.ScriptCall) (domain.ScriptResult, error) {
	proc, ok := r.registry[call.Name]
	if !ok {
		return domain.ScriptResult{
			Name:    call.Name,
			IsError: true,
			Error:   fmt.Sprintf("%v: %s", domain.ErrScriptNotRegistered, call.Name),
		}, fmt.Errorf("%w: %s", domain.ErrScriptNotRegistered, call.Name)
	}

	timeout := call.Timeout
	if timeout <= 0 {
		timeout = proc.Timeout
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := append(append([]string{}, proc.Args...), call.Record)
	cmd := exec.CommandContext(ctx, proc.Command, args...)
	cmd.Dir = r.baseDir
	cmd.Stdin = strings.NewReader(call.Record + "\n")
	cmd.WaitDelay = 100 * time.Millisecond

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := domain.ScriptResult{
		Name:   call.Name,
		Output: stdout.String(),
	}
	if err != nil {
		result.IsError = true
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s", domain.ErrScriptTimeout, timeout)
		}
		result.Error = fmt.Sprintf("execution failed: %v. Stderr: %s", err, strings.TrimSpace(stderr.String()))
		r.logger.Debug("script failed", "script", call.Name, "err", err, "exit_code", result.ExitCode)
	}
	r.metrics.ObserveScript(result)
	return result, nil
}
