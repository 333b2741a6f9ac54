// SPDX-License-Identifier: MPL-2.0

package orchestrate

import (
	"stevedore-cli/internal/discovery"
	"stevedore-cli/internal/naming"
	"stevedore-cli/pkg/types"
)

type (
	// Status tracks the lifecycle of one project inside a run:
	// pending until the loop reaches it, processing while in flight,
	// then done, failed or skipped. An aborted run leaves the
	// unprocessed tail pending.
	Status string

	// ProjectReport records the outcome for a single project.
	ProjectReport struct {
		// Project is the discovered compose project.
		Project discovery.Project
		// Status is the state the project reached.
		Status Status
		// Images lists the canonical references pinned into the compose
		// file. Empty for build-push runs and for skipped or
		// failed-before-tagging projects.
		Images []naming.ImageReference
		// Err holds the failure cause when Status is StatusFailed.
		Err error
	}

	// Report aggregates per-project outcomes for one run, in the order
	// the projects were discovered.
	Report struct {
		Projects []ProjectReport
	}
)

const (
	// StatusPending marks a project that has not been processed yet.
	StatusPending Status = "pending"
	// StatusProcessing marks the project currently being worked on.
	StatusProcessing Status = "processing"
	// StatusDone marks a project whose operations all succeeded.
	StatusDone Status = "done"
	// StatusFailed marks a project where any operation failed.
	StatusFailed Status = "failed"
	// StatusSkipped marks a project excluded by its override file.
	StatusSkipped Status = "skipped"
)

// OK reports whether every project finished without failure.
func (r *Report) OK() bool {
	for _, p := range r.Projects {
		if p.Status == StatusFailed {
			return false
		}
	}
	return true
}

// Failed returns the reports of all failed projects, in run order.
func (r *Report) Failed() []ProjectReport {
	var failed []ProjectReport
	for _, p := range r.Projects {
		if p.Status == StatusFailed {
			failed = append(failed, p)
		}
	}
	return failed
}

// Done returns the number of successfully processed projects.
func (r *Report) Done() int {
	n := 0
	for _, p := range r.Projects {
		if p.Status == StatusDone {
			n++
		}
	}
	return n
}

// ExitCode maps the aggregate outcome to a process exit code:
// success only when no project failed.
func (r *Report) ExitCode() types.ExitCode {
	if r.OK() {
		return types.ExitCode(0)
	}
	return types.ExitCode(1)
}
