// SPDX-License-Identifier: MPL-2.0

package orchestrate

import (
	"context"
	"errors"
	"fmt"

	"stevedore-cli/internal/engine"
)

var (
	// ErrBuildFailed indicates the engine's compose build returned non-zero.
	ErrBuildFailed = errors.New("build failed")

	// ErrPushFailed indicates the engine's compose push returned non-zero.
	ErrPushFailed = errors.New("push failed")
)

type (
	// BuildFailedError wraps an engine build failure for one project.
	BuildFailedError struct {
		Project string
		Cause   error
	}

	// PushFailedError wraps an engine push failure for one project.
	PushFailedError struct {
		Project string
		Cause   error
	}
)

// Error implements the error interface.
func (e *BuildFailedError) Error() string {
	return fmt.Sprintf("project '%s': build failed: %v", e.Project, e.Cause)
}

// Unwrap returns the sentinel error for errors.Is checks.
func (e *BuildFailedError) Unwrap() error { return ErrBuildFailed }

// Error implements the error interface.
func (e *PushFailedError) Error() string {
	return fmt.Sprintf("project '%s': push failed: %v", e.Project, e.Cause)
}

// Unwrap returns the sentinel error for errors.Is checks.
func (e *PushFailedError) Unwrap() error { return ErrPushFailed }

// buildAndPush runs the engine's build then push for one project.
// Push never runs after a failed build.
func buildAndPush(ctx context.Context, eng engine.Engine, project string, opts engine.ProjectOptions) error {
	if err := eng.Build(ctx, opts); err != nil {
		return &BuildFailedError{Project: project, Cause: err}
	}
	if err := eng.Push(ctx, opts); err != nil {
		return &PushFailedError{Project: project, Cause: err}
	}
	return nil
}
