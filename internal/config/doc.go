// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/stevedore/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/stevedore/config.cue on macOS, %APPDATA%\stevedore\config.cue
// on Windows), with STEVEDORE_* environment variables layered on top. The package covers
// container engine selection, the default registry, the discovery root and depth bound,
// and UI settings.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
