// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"strings"
	"testing"

	"stevedore-cli/pkg/types"
)

func TestProjectOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    ProjectOptions
		wantErr bool
	}{
		{
			name: "valid project dir",
			opts: ProjectOptions{ProjectDir: types.FilesystemPath("/srv/billing")},
		},
		{
			name:    "empty project dir",
			opts:    ProjectOptions{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNotAvailableError_Message(t *testing.T) {
	err := &NotAvailableError{Engine: "docker", Reason: "binary not found in PATH"}
	msg := err.Error()
	if !strings.Contains(msg, "docker") || !strings.Contains(msg, "binary not found") {
		t.Errorf("expected error to name engine and reason, got %q", msg)
	}
}

func TestNew_UnknownType(t *testing.T) {
	if _, err := New(Type("buildah")); err == nil {
		t.Fatal("expected error for unknown engine type")
	}
}

func TestEngineNames(t *testing.T) {
	if name := NewDockerEngine().Name(); name != "docker" {
		t.Errorf("expected docker, got %q", name)
	}
	if name := NewPodmanEngine().Name(); name != "podman" {
		t.Errorf("expected podman, got %q", name)
	}
}

func TestDockerEngine_VersionViaMock(t *testing.T) {
	recorder := NewMockCommandRecorder()
	recorder.Stdout = "28.0.1\n"
	e := &DockerEngine{
		BaseCLIEngine: NewBaseCLIEngine("docker",
			WithName("docker"),
			WithExecCommand(recorder.CommandFunc(t))),
	}

	version, err := e.Version(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != "28.0.1" {
		t.Errorf("expected trimmed version %q, got %q", "28.0.1", version)
	}
	recorder.AssertArgsContain(t, "--format")
}

func TestPodmanEngine_VersionViaMock(t *testing.T) {
	recorder := NewMockCommandRecorder()
	recorder.Stdout = "5.3.0\n"
	e := &PodmanEngine{
		BaseCLIEngine: NewBaseCLIEngine("podman",
			WithName("podman"),
			WithExecCommand(recorder.CommandFunc(t))),
	}

	version, err := e.Version(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != "5.3.0" {
		t.Errorf("expected trimmed version %q, got %q", "5.3.0", version)
	}
}
