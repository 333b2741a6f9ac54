// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"stevedore-cli/internal/discovery"
	"stevedore-cli/internal/naming"
)

const (
	// ContainerEngineDocker uses Docker as the container engine.
	ContainerEngineDocker ContainerEngine = "docker"
	// ContainerEnginePodman uses Podman as the container engine.
	ContainerEnginePodman ContainerEngine = "podman"
	// ContainerEngineAuto picks whichever engine is installed.
	ContainerEngineAuto ContainerEngine = "auto"
)

var (
	// ErrInvalidContainerEngine is returned when a ContainerEngine value is not recognized.
	ErrInvalidContainerEngine = errors.New("invalid container engine")
	// ErrInvalidMaxDepth is returned when max_depth is negative.
	ErrInvalidMaxDepth = errors.New("invalid max depth")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ContainerEngine specifies which container engine drives build and push.
	ContainerEngine string

	// InvalidContainerEngineError is returned when a ContainerEngine value is not recognized.
	// It wraps ErrInvalidContainerEngine for errors.Is() compatibility.
	InvalidContainerEngineError struct {
		Value ContainerEngine
	}

	// InvalidMaxDepthError is returned when max_depth is negative.
	// It wraps ErrInvalidMaxDepth for errors.Is() compatibility.
	InvalidMaxDepthError struct {
		Value int
	}

	// InvalidConfigError aggregates the first validation failure of a Config.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		Field string
		Cause error
	}

	// UIConfig holds terminal output settings.
	UIConfig struct {
		// Verbose enables debug-level logging.
		Verbose bool `mapstructure:"verbose"`
	}

	// Config is the application configuration.
	Config struct {
		// ContainerEngine selects docker, podman, or auto-detection.
		ContainerEngine ContainerEngine `mapstructure:"container_engine"`
		// Registry is the default registry prefix for canonical image names.
		Registry string `mapstructure:"registry"`
		// Root is the default directory tree to scan for compose projects.
		Root string `mapstructure:"root"`
		// MaxDepth bounds discovery relative to the root (root itself is depth 0).
		MaxDepth int `mapstructure:"max_depth"`
		// UI holds terminal output settings.
		UI UIConfig `mapstructure:"ui"`
	}
)

// Error implements the error interface.
func (e *InvalidContainerEngineError) Error() string {
	return fmt.Sprintf("invalid container engine '%s' (must be 'docker', 'podman' or 'auto')", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() checks.
func (e *InvalidContainerEngineError) Unwrap() error { return ErrInvalidContainerEngine }

// Error implements the error interface.
func (e *InvalidMaxDepthError) Error() string {
	return fmt.Sprintf("invalid max depth %d (must be >= 0)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() checks.
func (e *InvalidMaxDepthError) Unwrap() error { return ErrInvalidMaxDepth }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config field '%s': %v", e.Field, e.Cause)
}

// Unwrap returns the sentinel error for errors.Is() checks.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Validate checks that the engine value is one of the known engines.
func (c ContainerEngine) Validate() error {
	switch c {
	case ContainerEngineDocker, ContainerEnginePodman, ContainerEngineAuto:
		return nil
	default:
		return &InvalidContainerEngineError{Value: c}
	}
}

// Validate checks every field of the configuration. The registry may be
// empty here; commands that need one enforce its presence themselves.
func (c *Config) Validate() error {
	if err := c.ContainerEngine.Validate(); err != nil {
		return &InvalidConfigError{Field: "container_engine", Cause: err}
	}
	if c.MaxDepth < 0 {
		return &InvalidConfigError{Field: "max_depth", Cause: &InvalidMaxDepthError{Value: c.MaxDepth}}
	}
	if c.Registry != "" {
		if err := naming.RegistryName(c.Registry).Validate(); err != nil {
			return &InvalidConfigError{Field: "registry", Cause: err}
		}
	}
	return nil
}

// DefaultConfig returns the built-in defaults used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		ContainerEngine: ContainerEngineAuto,
		Registry:        "",
		Root:            ".",
		MaxDepth:        discovery.DefaultMaxDepth,
		UI: UIConfig{
			Verbose: false,
		},
	}
}
