// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DockerEngine implements the Engine interface using the Docker CLI.
// It embeds BaseCLIEngine for the shared compose verbs.
type DockerEngine struct {
	*BaseCLIEngine
}

// NewDockerEngine creates a new Docker engine.
func NewDockerEngine(opts ...BaseCLIEngineOption) *DockerEngine {
	path, _ := exec.LookPath("docker")
	base := []BaseCLIEngineOption{WithName(string(TypeDocker))}
	return &DockerEngine{
		BaseCLIEngine: NewBaseCLIEngine(path, append(base, opts...)...),
	}
}

// Name returns the engine name.
func (e *DockerEngine) Name() string {
	return string(TypeDocker)
}

// Available checks if Docker is available.
func (e *DockerEngine) Available() bool {
	if e.BinaryPath() == "" {
		return false
	}
	return e.RunCommandStatus(context.Background(), "version", "--format", "{{.Server.Version}}") == nil
}

// Version returns the Docker server version.
func (e *DockerEngine) Version(ctx context.Context) (string, error) {
	out, err := e.RunCommandWithOutput(ctx, "version", "--format", "{{.Server.Version}}")
	if err != nil {
		return "", fmt.Errorf("failed to get docker version: %w", err)
	}
	return strings.TrimSpace(out), nil
}
