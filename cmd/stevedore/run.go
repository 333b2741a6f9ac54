// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"stevedore-cli/internal/config"
	"stevedore-cli/internal/discovery"
	"stevedore-cli/internal/issue"
	"stevedore-cli/internal/naming"
	"stevedore-cli/internal/orchestrate"
)

// runSettings is the merged view of flags and configuration for one run.
// Flags win over config; config already layers env over the file.
type runSettings struct {
	registry naming.RegistryName
	root     string
	maxDepth int
	dryRun   bool
}

// resolveRunSettings merges command flags with the loaded configuration.
// requireRegistry is set for tagging runs, which mint image names;
// build-push works off the compose files as committed and needs none.
func resolveRunSettings(cmd *cobra.Command, requireRegistry bool) (runSettings, error) {
	cfg, err := config.Load()
	if err != nil {
		return runSettings{}, err
	}

	s := runSettings{
		registry: naming.RegistryName(cfg.Registry),
		root:     cfg.Root,
		maxDepth: cfg.MaxDepth,
	}

	if f := cmd.Flags().Lookup("registry"); f != nil && f.Changed {
		s.registry = naming.RegistryName(f.Value.String())
	}
	if cmd.Flags().Changed("root") {
		s.root, _ = cmd.Flags().GetString("root")
	}
	if cmd.Flags().Changed("max-depth") {
		s.maxDepth, _ = cmd.Flags().GetInt("max-depth")
	}
	if f := cmd.Flags().Lookup("dry-run"); f != nil {
		s.dryRun, _ = cmd.Flags().GetBool("dry-run")
	}

	if requireRegistry && s.registry == "" {
		return runSettings{}, issue.NewErrorContext().
			WithOperation("resolve registry").
			WithSuggestion("Pass --registry or set 'registry' in the config file").
			WithSuggestion("Environment variable STEVEDORE_REGISTRY also works").
			Wrap(fmt.Errorf("no registry configured")).
			BuildError()
	}

	return s, nil
}

// addRunFlags registers the flags shared by tag and build-push.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("root", "", "directory tree to scan (default from config, '.')")
	cmd.Flags().Int("max-depth", 0, "discovery depth below the root (default from config)")
}

// newRunOrchestrator assembles an orchestrator from resolved settings.
func newRunOrchestrator(s runSettings, extra ...orchestrate.Option) (*orchestrate.Orchestrator, error) {
	opts := append([]orchestrate.Option{
		orchestrate.WithDiscoverer(discovery.New(
			discovery.WithMaxDepth(s.maxDepth),
			discovery.WithLogger(log.Default()),
		)),
		orchestrate.WithLogger(log.Default()),
		orchestrate.WithDryRun(s.dryRun),
	}, extra...)

	return orchestrate.New(s.registry, opts...)
}
