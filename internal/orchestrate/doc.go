// SPDX-License-Identifier: MPL-2.0

// Package orchestrate runs the multi-project pipelines: discover compose
// projects and either pin canonical image references into their compose
// files (tag) or drive the configured engine's build and push for each
// project (build-push). The two are independent; a typical workflow tags
// first, commits, then builds and pushes.
//
// Projects are processed sequentially in discovery order. Failures are
// isolated per project: a malformed compose file or failed build marks
// that project failed in the Report and the run moves on. Only discovery
// errors (e.g. a missing root directory) abort the whole run.
package orchestrate
