// SPDX-License-Identifier: MPL-2.0

// Package compose reads and edits compose project definition files.
//
// A Document wraps the YAML node tree of one compose file. Edits are
// structural (by key path) rather than textual, so pinning an image never
// rewrites unrelated content, and applying the same edit twice leaves the
// serialized file byte-identical. Writes go through an atomic temp-file
// replace; a crash mid-write never leaves a half-written document behind.
package compose
