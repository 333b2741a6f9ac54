// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"
	"testing"
)

type (
	// MockCommandRecorder captures arguments passed to exec.Command for verification.
	// It uses the TestHelperProcess pattern to simulate command execution.
	MockCommandRecorder struct {
		// Invocations records each call to the mock exec.Command
		Invocations []MockInvocation
		// ExitCode is the exit code to return (0 = success)
		ExitCode int
		// Stdout is the output to write to stdout
		Stdout string
		// Stderr is the output to write to stderr
		Stderr string
		// FailOnVerb can be set to a compose verb that should fail
		FailOnVerb string
	}

	// MockInvocation represents a single invocation of exec.Command.
	MockInvocation struct {
		// Name is the command name (e.g., "docker", "podman")
		Name string
		// Args are the arguments passed to the command
		Args []string
	}
)

// NewMockCommandRecorder creates a new recorder with default settings (success, no output).
func NewMockCommandRecorder() *MockCommandRecorder {
	return &MockCommandRecorder{
		Invocations: make([]MockInvocation, 0),
		ExitCode:    0,
	}
}

// CommandFunc returns an ExecCommandFunc suitable for WithExecCommand.
// The function records invocations and returns a command that runs TestHelperProcess.
func (m *MockCommandRecorder) CommandFunc(t *testing.T) ExecCommandFunc {
	t.Helper()
	return func(_ context.Context, name string, args ...string) *exec.Cmd {
		m.Invocations = append(m.Invocations, MockInvocation{
			Name: name,
			Args: args,
		})

		// Build a helper process command that will return our configured output
		cs := []string{"-test.run=TestHelperProcess", "--", name}
		cs = append(cs, args...)
		//nolint:gosec // TestHelperProcess is a test-only pattern
		cmd := exec.Command(os.Args[0], cs...) //nolint:noctx // exec.Command used intentionally for test helper
		cmd.Env = []string{
			"GO_WANT_HELPER_PROCESS=1",
			fmt.Sprintf("GO_HELPER_EXIT_CODE=%d", m.ExitCode),
			fmt.Sprintf("GO_HELPER_STDOUT=%s", m.Stdout),
			fmt.Sprintf("GO_HELPER_STDERR=%s", m.Stderr),
		}

		// Compose verbs arrive as ["compose", "<verb>"]
		if m.FailOnVerb != "" && len(args) > 1 && args[0] == "compose" && args[1] == m.FailOnVerb {
			cmd.Env = append(cmd.Env, "GO_HELPER_EXIT_CODE=1")
		}

		return cmd
	}
}

// LastInvocation returns the most recent invocation, or nil if none.
func (m *MockCommandRecorder) LastInvocation() *MockInvocation {
	if len(m.Invocations) == 0 {
		return nil
	}
	return &m.Invocations[len(m.Invocations)-1]
}

// LastArgs returns the arguments from the most recent invocation.
func (m *MockCommandRecorder) LastArgs() []string {
	if inv := m.LastInvocation(); inv != nil {
		return inv.Args
	}
	return nil
}

// AssertCommandName verifies the last command name matches.
func (m *MockCommandRecorder) AssertCommandName(t *testing.T, expected string) {
	t.Helper()
	if inv := m.LastInvocation(); inv == nil {
		t.Errorf("expected command %q but no commands were invoked", expected)
	} else if inv.Name != expected {
		t.Errorf("expected command %q, got %q", expected, inv.Name)
	}
}

// AssertArgs verifies the last invocation argv matches exactly.
func (m *MockCommandRecorder) AssertArgs(t *testing.T, expected []string) {
	t.Helper()
	args := m.LastArgs()
	if !slices.Equal(args, expected) {
		t.Errorf("expected args %v, got %v", expected, args)
	}
}

// AssertArgsContain verifies that the last invocation args contain the expected string.
func (m *MockCommandRecorder) AssertArgsContain(t *testing.T, expected string) {
	t.Helper()
	args := m.LastArgs()
	argsStr := strings.Join(args, " ")
	if !strings.Contains(argsStr, expected) {
		t.Errorf("expected args to contain %q, got: %v", expected, args)
	}
}

// AssertInvocationCount verifies the number of command invocations.
func (m *MockCommandRecorder) AssertInvocationCount(t *testing.T, expected int) {
	t.Helper()
	if len(m.Invocations) != expected {
		t.Errorf("expected %d invocations, got %d", expected, len(m.Invocations))
	}
}

// Reset clears all recorded invocations.
func (m *MockCommandRecorder) Reset() {
	m.Invocations = m.Invocations[:0]
}

// TestHelperProcess is used by the mock to simulate command execution.
// It reads configuration from environment variables and outputs accordingly.
// This function should not be called directly - it is invoked by the mock.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	if stdout := os.Getenv("GO_HELPER_STDOUT"); stdout != "" {
		fmt.Fprint(os.Stdout, stdout)
	}

	if stderr := os.Getenv("GO_HELPER_STDERR"); stderr != "" {
		fmt.Fprint(os.Stderr, stderr)
	}

	// The last GO_HELPER_EXIT_CODE entry wins, matching os/exec env semantics.
	exitCode := 0
	for _, kv := range os.Environ() {
		if code, ok := strings.CutPrefix(kv, "GO_HELPER_EXIT_CODE="); ok {
			fmt.Sscanf(code, "%d", &exitCode)
		}
	}

	os.Exit(exitCode)
}
