// SPDX-License-Identifier: MPL-2.0

package compose

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedDocument is the sentinel error wrapped by MalformedDocumentError.
	ErrMalformedDocument = errors.New("malformed compose document")

	// ErrSchema is the sentinel error wrapped by SchemaError.
	ErrSchema = errors.New("compose schema violation")
)

type (
	// MalformedDocumentError is returned when a compose file does not parse
	// as a YAML mapping at the top level.
	MalformedDocumentError struct {
		// Path is the file that failed to parse.
		Path string
		// Cause is the underlying parse error, if any.
		Cause error
	}

	// SchemaError is returned when a parsed document is missing an expected
	// key, such as the top-level "services" mapping or a named service entry.
	SchemaError struct {
		// Path is the file the violation was found in.
		Path string
		// FieldPath is the dotted path of the offending key (e.g.
		// "services" or "services.web").
		FieldPath string
		// Reason describes the violation; empty means "is missing".
		Reason string
	}
)

// Error implements the error interface.
func (e *MalformedDocumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed compose document %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("malformed compose document %s", e.Path)
}

// Unwrap returns ErrMalformedDocument so callers can use errors.Is for programmatic detection.
func (e *MalformedDocumentError) Unwrap() error { return ErrMalformedDocument }

// Error implements the error interface.
func (e *SchemaError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "is missing"
	}
	return fmt.Sprintf("compose document %s: %q %s", e.Path, e.FieldPath, reason)
}

// Unwrap returns ErrSchema so callers can use errors.Is for programmatic detection.
func (e *SchemaError) Unwrap() error { return ErrSchema }
