// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for stevedore.
//
// This package implements the Cobra command hierarchy: the root command,
// the tag and build-push pipelines, and configuration management.
package cmd
