// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"stevedore-cli/internal/config"
	"stevedore-cli/internal/engine"
	"stevedore-cli/internal/orchestrate"
)

// buildPushCmd builds and pushes every discovered project.
var buildPushCmd = &cobra.Command{
	Use:   "build-push",
	Short: "Build and push every discovered project",
	Long: `Scan the directory tree for compose projects and drive 'compose build'
followed by 'compose push' for each. Compose files are used as they are;
run 'stevedore tag' first to pin canonical image names.

A failing project is reported and the run continues with the next one;
push never runs for a project whose build failed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := resolveRunSettings(cmd, false)
		if err != nil {
			return err
		}

		eng, err := selectEngine(cmd)
		if err != nil {
			return err
		}

		o, err := newRunOrchestrator(settings, orchestrate.WithEngine(eng))
		if err != nil {
			return err
		}

		report, err := o.BuildPush(cmd.Context(), settings.root)
		if err != nil {
			return err
		}

		renderReport(cmd.OutOrStdout(), report, false)
		if !report.OK() {
			return &ExitError{Code: report.ExitCode()}
		}
		return nil
	},
}

// selectEngine picks the container engine from the --engine flag or config.
func selectEngine(cmd *cobra.Command) (engine.Engine, error) {
	choice := config.ContainerEngineAuto
	if cmd.Flags().Changed("engine") {
		value, _ := cmd.Flags().GetString("engine")
		choice = config.ContainerEngine(value)
	} else if cfg, err := config.Load(); err == nil {
		choice = cfg.ContainerEngine
	}

	if err := choice.Validate(); err != nil {
		return nil, err
	}

	switch choice {
	case config.ContainerEngineDocker:
		return engine.New(engine.TypeDocker)
	case config.ContainerEnginePodman:
		return engine.New(engine.TypePodman)
	default:
		return engine.AutoDetect()
	}
}

func init() {
	addRunFlags(buildPushCmd)
	buildPushCmd.Flags().String("engine", "", "container engine: docker, podman or auto (default from config)")
}
