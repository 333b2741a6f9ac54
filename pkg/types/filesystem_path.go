// SPDX-License-Identifier: MPL-2.0

// Package types defines cross-cutting value types shared by the domain
// packages (naming, compose, discovery, engine). These are foundation types
// that carry semantic meaning and validation but have no domain-specific
// dependencies.
//
// This package is a leaf dependency: it imports only the standard library.
// Domain packages import it; it never imports domain packages.
package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFilesystemPath is the sentinel error wrapped by InvalidFilesystemPathError.
var ErrInvalidFilesystemPath = errors.New("invalid filesystem path")

type (
	// FilesystemPath represents an absolute or relative filesystem path,
	// such as a traversal root or a project directory.
	// A valid path must be non-empty and not whitespace-only.
	// The zero value ("") is invalid — a path must always point somewhere.
	FilesystemPath string

	// InvalidFilesystemPathError is returned when a FilesystemPath value is
	// empty or whitespace-only.
	InvalidFilesystemPathError struct {
		Value FilesystemPath
	}
)

// String returns the string representation of the FilesystemPath.
func (p FilesystemPath) String() string { return string(p) }

// Validate returns an error if the FilesystemPath is empty or whitespace-only.
func (p FilesystemPath) Validate() error {
	if strings.TrimSpace(string(p)) == "" {
		return &InvalidFilesystemPathError{Value: p}
	}
	return nil
}

// Error implements the error interface for InvalidFilesystemPathError.
func (e *InvalidFilesystemPathError) Error() string {
	return fmt.Sprintf("invalid filesystem path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidFilesystemPath for errors.Is() compatibility.
func (e *InvalidFilesystemPathError) Unwrap() error { return ErrInvalidFilesystemPath }
