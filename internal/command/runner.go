// Package command runs external tools and the privilege-escalation helper.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// ErrHelperUnavailable indicates that a command could not be started at all,
// for example because the binary is not installed.
var ErrHelperUnavailable = errors.New("command: helper unavailable")

// Result holds the captured output of a finished process.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner abstracts process execution for testability.
type Runner interface {
	// Run starts name with args, feeds stdin (may be nil) and waits for it.
	// A non-zero exit returns a *ExitError alongside the captured Result.
	// A process that cannot be started returns a *SpawnError.
	Run(ctx context.Context, stdin io.Reader, name string, args ...string) (Result, error)
}

// ExitError reports a process that ran and exited non-zero.
// Stderr is kept verbatim so callers can surface it unchanged.
type ExitError struct {
	Name     string
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = fmt.Sprintf("exit status %d", e.ExitCode)
	}
	return fmt.Sprintf("%s: %s", e.Name, msg)
}

// SpawnError reports a process that could not be started.
type SpawnError struct {
	Name string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("command: start %s: %v", e.Name, e.Err)
}

func (e *SpawnError) Unwrap() []error {
	return []error{ErrHelperUnavailable, e.Err}
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct {
	logger *slog.Logger
}

// NewExecRunner returns a Runner backed by os/exec.
func NewExecRunner(logger *slog.Logger) *ExecRunner {
	return &ExecRunner{logger: logger.With("component", "command")}
}

// Run executes the command and captures stdout and stderr separately.
func (r *ExecRunner) Run(ctx context.Context, stdin io.Reader, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if stdin != nil {
		cmd.Stdin = stdin
	}

	r.logger.Debug("running command",
		"name", name,
		"args", args,
	)

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, &ExitError{
			Name:     name,
			Args:     args,
			ExitCode: res.ExitCode,
			Stderr:   res.Stderr,
		}
	}

	res.ExitCode = -1
	return res, &SpawnError{Name: name, Err: err}
}
