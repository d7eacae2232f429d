package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Output holds what a finished child process left behind.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Success reports whether the process exited with status zero.
func (o *Output) Success() bool {
	return o.ExitCode == 0
}

// CommandRunner defines the interface for executing external commands.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (*Output, error)
}

// ExecRunner is a concrete implementation of CommandRunner using os/exec.
// A non-zero exit is reported through Output.ExitCode, not as an error.
type ExecRunner struct{}

// Run starts the command, waits for it and captures both output streams separately.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (*Output, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := &Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return out, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	}
	return nil, fmt.Errorf("failed to run %s: %w", name, err)
}
