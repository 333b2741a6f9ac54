// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"stevedore-cli/internal/config"
	"stevedore-cli/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "stevedore",
		Short: "Pin, build and push compose project images across a repository tree",
		Long: TitleStyle.Render("stevedore") + SubtitleStyle.Render(" - canonical image names for compose projects") + `

stevedore scans a directory tree for compose projects, pins every
service to its canonical image name ({registry}/{project}-{service}:{tag}),
and can drive 'compose build' and 'compose push' for each project.

Rewrites are structural: comments, key order and unrelated fields in
your compose files are left untouched, and re-running is a no-op.

` + SubtitleStyle.Render("Examples:") + `
  stevedore tag --registry ghcr.io/acme            Pin image names only
  stevedore tag --registry ghcr.io/acme --dry-run  Preview without writing
  stevedore build-push --root ./services           Build and push each project
  stevedore config show                            Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/stevedore/config.cue)")

	// Add subcommands
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(buildPushCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	// Set custom config file path if provided via --config flag
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Always surface config loading errors to the user
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}

	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
