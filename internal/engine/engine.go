// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"fmt"
	"io"

	"stevedore-cli/pkg/types"
)

type (
	// Engine defines the interface for compose build and push operations.
	// Implementations shell out to the engine binary; they never retry.
	Engine interface {
		// Name returns the engine name (docker or podman).
		Name() string
		// Available checks if the engine is available on the system.
		Available() bool
		// Version returns the engine version.
		Version(ctx context.Context) (string, error)

		// Build builds every image of the compose project in opts.ProjectDir.
		Build(ctx context.Context, opts ProjectOptions) error
		// Push pushes every image of the compose project in opts.ProjectDir.
		Push(ctx context.Context, opts ProjectOptions) error
	}

	// ProjectOptions scopes a build or push to one compose project.
	ProjectOptions struct {
		// ProjectDir is the directory owning the compose file. The engine
		// runs with this as its working directory so the compose CLI
		// resolves the project file the same way a developer in that
		// directory would.
		ProjectDir types.FilesystemPath
		// Stdout is where engine output is written.
		Stdout io.Writer
		// Stderr is where engine errors are written.
		Stderr io.Writer
	}

	// Type identifies the engine implementation.
	Type string

	// NotAvailableError is returned when no usable engine is found.
	NotAvailableError struct {
		Engine string
		Reason string
	}
)

const (
	// TypeDocker selects the Docker CLI engine.
	TypeDocker Type = "docker"
	// TypePodman selects the Podman CLI engine.
	TypePodman Type = "podman"
)

// Error implements the error interface.
func (e *NotAvailableError) Error() string {
	return fmt.Sprintf("container engine '%s' is not available: %s", e.Engine, e.Reason)
}

// Validate returns an error if the ProjectOptions are incomplete.
func (o ProjectOptions) Validate() error {
	return o.ProjectDir.Validate()
}

// New creates an engine of the preferred type, falling back to the other
// CLI when the preferred one is not installed.
func New(preferred Type) (Engine, error) {
	switch preferred {
	case TypePodman:
		podman := NewPodmanEngine()
		if podman.Available() {
			return podman, nil
		}
		docker := NewDockerEngine()
		if docker.Available() {
			return docker, nil
		}
		return nil, &NotAvailableError{
			Engine: string(TypePodman),
			Reason: "podman is not installed or not accessible, and docker fallback is also not available",
		}

	case TypeDocker:
		docker := NewDockerEngine()
		if docker.Available() {
			return docker, nil
		}
		podman := NewPodmanEngine()
		if podman.Available() {
			return podman, nil
		}
		return nil, &NotAvailableError{
			Engine: string(TypeDocker),
			Reason: "docker is not installed or not accessible, and podman fallback is also not available",
		}

	default:
		return nil, fmt.Errorf("unknown container engine type: %s", preferred)
	}
}

// AutoDetect tries to find any available engine, docker first.
func AutoDetect() (Engine, error) {
	docker := NewDockerEngine()
	if docker.Available() {
		return docker, nil
	}

	podman := NewPodmanEngine()
	if podman.Available() {
		return podman, nil
	}

	return nil, &NotAvailableError{
		Engine: "any",
		Reason: "no container engine (docker or podman) is available on this system",
	}
}
