// SPDX-License-Identifier: MPL-2.0

// Package engine provides a unified abstraction layer for container engines (Docker/Podman).
//
// The Engine interface defines the two compose-level operations the tool drives: Build and
// Push, both scoped to a project directory. Two implementations are provided: DockerEngine
// and PodmanEngine, both embedding BaseCLIEngine for shared command construction and
// execution via the engine's `compose` subcommand.
//
// Engine selection uses New(Type) with automatic fallback if the preferred engine is
// unavailable, or AutoDetect() for preference-less detection (Docker is tried first).
package engine
