// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"testing"

	"stevedore-cli/pkg/types"
)

func TestBaseCLIEngine_BuildArgv(t *testing.T) {
	recorder := NewMockCommandRecorder()
	e := NewBaseCLIEngine("/usr/bin/docker",
		WithName("docker"),
		WithExecCommand(recorder.CommandFunc(t)))

	opts := ProjectOptions{ProjectDir: types.FilesystemPath(t.TempDir())}
	if err := e.Build(context.Background(), opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	recorder.AssertInvocationCount(t, 1)
	recorder.AssertCommandName(t, "/usr/bin/docker")
	recorder.AssertArgs(t, []string{"compose", "build"})
}

func TestBaseCLIEngine_PushArgv(t *testing.T) {
	recorder := NewMockCommandRecorder()
	e := NewBaseCLIEngine("/usr/bin/podman",
		WithName("podman"),
		WithExecCommand(recorder.CommandFunc(t)))

	opts := ProjectOptions{ProjectDir: types.FilesystemPath(t.TempDir())}
	if err := e.Push(context.Background(), opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	recorder.AssertArgs(t, []string{"compose", "push"})
}

// TestBaseCLIEngine_RunsInProjectDir verifies the compose command is scoped to
// the project directory rather than the caller's working directory.
func TestBaseCLIEngine_RunsInProjectDir(t *testing.T) {
	recorder := NewMockCommandRecorder()
	inner := recorder.CommandFunc(t)

	var captured *exec.Cmd
	e := NewBaseCLIEngine("docker",
		WithName("docker"),
		WithExecCommand(func(ctx context.Context, name string, args ...string) *exec.Cmd {
			captured = inner(ctx, name, args...)
			return captured
		}))

	dir := t.TempDir()
	opts := ProjectOptions{ProjectDir: types.FilesystemPath(dir)}
	if err := e.Build(context.Background(), opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured == nil {
		t.Fatal("expected a command to be created")
	}
	if captured.Dir != dir {
		t.Errorf("expected command dir %q, got %q", dir, captured.Dir)
	}
}

func TestBaseCLIEngine_BuildValidatesOptions(t *testing.T) {
	recorder := NewMockCommandRecorder()
	e := NewBaseCLIEngine("docker",
		WithName("docker"),
		WithExecCommand(recorder.CommandFunc(t)))

	err := e.Build(context.Background(), ProjectOptions{})
	if err == nil {
		t.Fatal("expected error for empty project dir")
	}
	// Validation failures must not reach the engine binary.
	recorder.AssertInvocationCount(t, 0)
}

func TestBaseCLIEngine_BuildFailureWrapsEngine(t *testing.T) {
	recorder := NewMockCommandRecorder()
	recorder.FailOnVerb = "build"
	e := NewBaseCLIEngine("docker",
		WithName("docker"),
		WithExecCommand(recorder.CommandFunc(t)))

	opts := ProjectOptions{ProjectDir: types.FilesystemPath(t.TempDir())}
	err := e.Build(context.Background(), opts)
	if err == nil {
		t.Fatal("expected error for failing build")
	}
	if !strings.Contains(err.Error(), "docker compose build") {
		t.Errorf("expected error to name the engine and verb, got: %v", err)
	}
}

func TestBaseCLIEngine_OutputStreams(t *testing.T) {
	recorder := NewMockCommandRecorder()
	recorder.Stdout = "building api\n"
	recorder.Stderr = "warning: cache miss\n"
	e := NewBaseCLIEngine("docker",
		WithName("docker"),
		WithExecCommand(recorder.CommandFunc(t)))

	var stdout, stderr bytes.Buffer
	opts := ProjectOptions{
		ProjectDir: types.FilesystemPath(t.TempDir()),
		Stdout:     &stdout,
		Stderr:     &stderr,
	}
	if err := e.Build(context.Background(), opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stdout.String() != "building api\n" {
		t.Errorf("expected stdout forwarded, got %q", stdout.String())
	}
	if stderr.String() != "warning: cache miss\n" {
		t.Errorf("expected stderr forwarded, got %q", stderr.String())
	}
}

func TestBaseCLIEngine_RunCommandWithOutput(t *testing.T) {
	recorder := NewMockCommandRecorder()
	recorder.Stdout = "28.0.1"
	e := NewBaseCLIEngine("docker", WithExecCommand(recorder.CommandFunc(t)))

	out, err := e.RunCommandWithOutput(context.Background(), "version", "--format", "{{.Server.Version}}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "28.0.1" {
		t.Errorf("expected output %q, got %q", "28.0.1", out)
	}
	recorder.AssertArgsContain(t, "version")
}

func TestBaseCLIEngine_RunCommandStatus(t *testing.T) {
	recorder := NewMockCommandRecorder()
	e := NewBaseCLIEngine("docker", WithExecCommand(recorder.CommandFunc(t)))

	if err := e.RunCommandStatus(context.Background(), "version"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	recorder.AssertArgsContain(t, "version")

	recorder.ExitCode = 1
	if err := e.RunCommandStatus(context.Background(), "version"); err == nil {
		t.Fatal("expected error for nonzero exit status")
	}
}

// The availability probe runs the version command and only cares about
// the exit status.
func TestDockerEngine_AvailableViaMock(t *testing.T) {
	recorder := NewMockCommandRecorder()
	e := &DockerEngine{BaseCLIEngine: NewBaseCLIEngine("/usr/bin/docker",
		WithName("docker"),
		WithExecCommand(recorder.CommandFunc(t)))}

	if !e.Available() {
		t.Error("expected engine available when the probe succeeds")
	}
	recorder.AssertArgsContain(t, "version")

	recorder.ExitCode = 1
	if e.Available() {
		t.Error("expected engine unavailable when the probe fails")
	}
}
