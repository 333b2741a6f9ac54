// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// BaseCLIEngineOption configures a BaseCLIEngine.
	BaseCLIEngineOption func(*BaseCLIEngine)

	// BaseCLIEngine provides the common implementation for CLI-based
	// compose engines. Docker and Podman engines embed this struct: the
	// compose verbs (Build, Push) are identical across both CLIs, only
	// the binary and availability probing differ.
	BaseCLIEngine struct {
		name        string // engine name for error messages (docker, podman)
		binaryPath  string // resolved at construction via exec.LookPath
		execCommand ExecCommandFunc
	}
)

// WithName sets the engine name used in error messages.
func WithName(name string) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) {
		e.name = name
	}
}

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) {
		e.execCommand = fn
	}
}

// NewBaseCLIEngine creates a base engine for the given binary path.
func NewBaseCLIEngine(binaryPath string, opts ...BaseCLIEngineOption) *BaseCLIEngine {
	e := &BaseCLIEngine{
		binaryPath:  binaryPath,
		execCommand: exec.CommandContext,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BinaryPath returns the resolved engine binary path.
func (e *BaseCLIEngine) BinaryPath() string {
	return e.binaryPath
}

// CreateCommand creates an exec.Cmd for the given arguments.
// This is useful when the caller needs to customize stdin/stdout/stderr
// or the working directory.
func (e *BaseCLIEngine) CreateCommand(ctx context.Context, args ...string) *exec.Cmd {
	return e.execCommand(ctx, e.binaryPath, args...)
}

// RunCommandStatus executes a command and returns only the error status.
func (e *BaseCLIEngine) RunCommandStatus(ctx context.Context, args ...string) error {
	cmd := e.CreateCommand(ctx, args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command %s %v failed: %w", e.binaryPath, args, err)
	}
	return nil
}

// RunCommandWithOutput executes a command with stdout captured to a buffer.
func (e *BaseCLIEngine) RunCommandWithOutput(ctx context.Context, args ...string) (string, error) {
	cmd := e.CreateCommand(ctx, args...)
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("command %s %v failed: %w", e.binaryPath, args, err)
	}

	return out.String(), nil
}

// Build runs `<binary> compose build` in the project directory.
// It validates ProjectOptions before executing to catch invalid fields early.
func (e *BaseCLIEngine) Build(ctx context.Context, opts ProjectOptions) error {
	return e.runComposeVerb(ctx, "build", opts)
}

// Push runs `<binary> compose push` in the project directory.
// It validates ProjectOptions before executing to catch invalid fields early.
func (e *BaseCLIEngine) Push(ctx context.Context, opts ProjectOptions) error {
	return e.runComposeVerb(ctx, "push", opts)
}

// runComposeVerb executes one compose subcommand scoped to the project dir.
func (e *BaseCLIEngine) runComposeVerb(ctx context.Context, verb string, opts ProjectOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	cmd := e.CreateCommand(ctx, "compose", verb)
	cmd.Dir = opts.ProjectDir.String()
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s compose %s in %s failed: %w", e.name, verb, opts.ProjectDir, err)
	}

	return nil
}
