package trivy

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// ExecResult holds the outcome of a finished command.
type ExecResult struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Executor is the interface that wraps the Execute method.
//
// Execute runs the named program with the given arguments and waits for it
// to exit. A non-zero exit code is not an error; errors are reserved for
// commands that could not be started or were killed because ctx is done.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (ExecResult, error)
}

// NewExecutor returns an Executor backed by os/exec.
func NewExecutor() Executor {
	return &osExecutor{}
}

type osExecutor struct{}

func (e *osExecutor) Execute(ctx context.Context, name string, args ...string) (ExecResult, error) {
	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, name, args...)
	command.Stdout = &stdout
	command.Stderr = &stderr

	err := command.Run()
	if ctx.Err() != nil {
		return ExecResult{}, ctx.Err()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return ExecResult{ExitCode: exitErr.ExitCode(), Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, nil
	}
	if err != nil {
		return ExecResult{}, err
	}
	return ExecResult{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, nil
}
