// SPDX-License-Identifier: MPL-2.0

// Package naming computes canonical image references for compose services.
//
// The naming rule is {registry}/{project}-{service}:{tag}: all services of
// one project live under a single registry path segment, disambiguated by
// the hyphenated service suffix. Resolution is a pure function of its
// inputs, so two runs over an unchanged project/service pair always yield
// byte-identical references.
package naming

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultTag is the tag applied when no explicit tag is configured.
const DefaultTag ImageTag = "latest"

var (
	// ErrInvalidIdentifier is the sentinel error wrapped by InvalidIdentifierError.
	ErrInvalidIdentifier = errors.New("invalid identifier")
)

type (
	// RegistryName is the registry prefix of an image reference, such as
	// "ghcr.io/acme" or a bare "acme". A registry may contain slashes
	// (host and namespace segments) but must be non-empty, must not
	// contain whitespace, and must not start or end with a slash.
	RegistryName string

	// ProjectID identifies a project; it is the name of the directory
	// containing the project's compose file. It must be non-empty and
	// must not contain "/", ":", or whitespace, so that the rendered
	// reference stays well-formed.
	ProjectID string

	// ServiceName is the name of one service declared in a compose file.
	// It shares the ProjectID character constraints.
	ServiceName string

	// ImageTag is the tag component of an image reference. It must be
	// non-empty and must not contain "/", ":", or whitespace.
	ImageTag string

	// ImageReference is a fully resolved canonical image name. It is a
	// value object: construct it via Resolve and render it via String.
	ImageReference struct {
		Registry RegistryName
		Project  ProjectID
		Service  ServiceName
		Tag      ImageTag
	}

	// InvalidIdentifierError is returned when a naming component violates
	// its character constraints.
	InvalidIdentifierError struct {
		// Field names the offending component ("registry", "project",
		// "service", or "tag").
		Field string
		// Value is the rejected input.
		Value string
		// Reason describes the violated constraint.
		Reason string
	}
)

// Error implements the error interface.
func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Unwrap returns ErrInvalidIdentifier so callers can use errors.Is for programmatic detection.
func (e *InvalidIdentifierError) Unwrap() error { return ErrInvalidIdentifier }

// String returns the string representation of the RegistryName.
func (r RegistryName) String() string { return string(r) }

// Validate returns an error if the RegistryName is empty, contains
// whitespace, or has a leading or trailing slash.
func (r RegistryName) Validate() error {
	s := string(r)
	switch {
	case strings.TrimSpace(s) == "":
		return &InvalidIdentifierError{Field: "registry", Value: s, Reason: "must be non-empty"}
	case strings.ContainsAny(s, " \t\n"):
		return &InvalidIdentifierError{Field: "registry", Value: s, Reason: "must not contain whitespace"}
	case strings.HasPrefix(s, "/") || strings.HasSuffix(s, "/"):
		return &InvalidIdentifierError{Field: "registry", Value: s, Reason: "must not start or end with a slash"}
	}
	return nil
}

// String returns the string representation of the ProjectID.
func (p ProjectID) String() string { return string(p) }

// Validate returns an error if the ProjectID violates the identifier constraints.
func (p ProjectID) Validate() error {
	return validateIdentifier("project", string(p))
}

// String returns the string representation of the ServiceName.
func (s ServiceName) String() string { return string(s) }

// Validate returns an error if the ServiceName violates the identifier constraints.
func (s ServiceName) Validate() error {
	return validateIdentifier("service", string(s))
}

// String returns the string representation of the ImageTag.
func (t ImageTag) String() string { return string(t) }

// Validate returns an error if the ImageTag violates the identifier constraints.
func (t ImageTag) Validate() error {
	return validateIdentifier("tag", string(t))
}

// validateIdentifier enforces the shared constraints for project, service,
// and tag components: non-empty, no "/", no ":", no whitespace.
func validateIdentifier(field, value string) error {
	switch {
	case value == "":
		return &InvalidIdentifierError{Field: field, Value: value, Reason: "must be non-empty"}
	case strings.Contains(value, "/"):
		return &InvalidIdentifierError{Field: field, Value: value, Reason: `must not contain "/"`}
	case strings.Contains(value, ":"):
		return &InvalidIdentifierError{Field: field, Value: value, Reason: `must not contain ":"`}
	case strings.ContainsAny(value, " \t\n"):
		return &InvalidIdentifierError{Field: field, Value: value, Reason: "must not contain whitespace"}
	}
	return nil
}

// Resolve computes the canonical image reference for one service of one
// project, using DefaultTag. It performs no I/O.
func Resolve(registry RegistryName, project ProjectID, service ServiceName) (ImageReference, error) {
	return ResolveWithTag(registry, project, service, DefaultTag)
}

// ResolveWithTag computes the canonical image reference with an explicit tag.
// All four components are validated before the reference is constructed.
func ResolveWithTag(registry RegistryName, project ProjectID, service ServiceName, tag ImageTag) (ImageReference, error) {
	if err := registry.Validate(); err != nil {
		return ImageReference{}, err
	}
	if err := project.Validate(); err != nil {
		return ImageReference{}, err
	}
	if err := service.Validate(); err != nil {
		return ImageReference{}, err
	}
	if err := tag.Validate(); err != nil {
		return ImageReference{}, err
	}

	return ImageReference{
		Registry: registry,
		Project:  project,
		Service:  service,
		Tag:      tag,
	}, nil
}

// String renders the reference as {registry}/{project}-{service}:{tag}.
func (r ImageReference) String() string {
	return fmt.Sprintf("%s/%s-%s:%s", r.Registry, r.Project, r.Service, r.Tag)
}
