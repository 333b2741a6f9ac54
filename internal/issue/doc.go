// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error types.
//
// ActionableError carries the operation that failed, the resource involved,
// and concrete suggestions for fixing the problem. The CLI layer renders
// these with the verbose flag controlling whether the full error chain is
// shown.
package issue
