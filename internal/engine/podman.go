// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// PodmanEngine implements the Engine interface using the Podman CLI.
// It embeds BaseCLIEngine for the shared compose verbs.
type PodmanEngine struct {
	*BaseCLIEngine
}

// NewPodmanEngine creates a new Podman engine.
func NewPodmanEngine(opts ...BaseCLIEngineOption) *PodmanEngine {
	path, _ := exec.LookPath("podman")
	base := []BaseCLIEngineOption{WithName(string(TypePodman))}
	return &PodmanEngine{
		BaseCLIEngine: NewBaseCLIEngine(path, append(base, opts...)...),
	}
}

// Name returns the engine name.
func (e *PodmanEngine) Name() string {
	return string(TypePodman)
}

// Available checks if Podman is available.
func (e *PodmanEngine) Available() bool {
	if e.BinaryPath() == "" {
		return false
	}
	return e.RunCommandStatus(context.Background(), "version", "--format", "{{.Version}}") == nil
}

// Version returns the Podman version.
func (e *PodmanEngine) Version(ctx context.Context) (string, error) {
	out, err := e.RunCommandWithOutput(ctx, "version", "--format", "{{.Version}}")
	if err != nil {
		return "", fmt.Errorf("failed to get podman version: %w", err)
	}
	return strings.TrimSpace(out), nil
}
