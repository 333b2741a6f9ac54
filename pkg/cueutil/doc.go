// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// The configuration loader compiles the user's config.cue, unifies it with
// the embedded #Config schema, and reports schema violations through
// FormatError so users see "config.cue: max_depth: ..." instead of raw CUE
// diagnostics. DefaultMaxFileSize bounds how large a configuration file may
// be before it is rejected outright.
package cueutil

// DefaultMaxFileSize is the maximum accepted size for a parsed CUE file.
// Config files are tiny; anything above this is almost certainly a mistake
// (or a hostile input) rather than configuration.
const DefaultMaxFileSize int64 = 1 << 20
