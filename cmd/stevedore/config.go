// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"stevedore-cli/internal/config"
	"stevedore-cli/internal/issue"
)

// setConfigValue loads the current configuration, applies one key and
// writes the result back. The updated config is validated before saving
// so a bad value never reaches the file.
func setConfigValue(key, value string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	updated := *cfg
	switch key {
	case "container_engine":
		updated.ContainerEngine = config.ContainerEngine(value)
	case "registry":
		updated.Registry = value
	case "root":
		updated.Root = value
	case "max_depth":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid max_depth %q: %w", value, err)
		}
		updated.MaxDepth = n
	case "ui.verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid ui.verbose %q: %w", value, err)
		}
		updated.UI.Verbose = b
	default:
		return issue.NewErrorContext().
			WithOperation("set config value").
			WithSuggestion("Valid keys: container_engine, registry, root, max_depth, ui.verbose").
			Wrap(fmt.Errorf("unknown config key %q", key)).
			BuildError()
	}

	if err := updated.Validate(); err != nil {
		return err
	}
	return config.Save(&updated)
}

// configCmd is the `stevedore config` command tree.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage stevedore configuration",
	Long: `Manage stevedore configuration.

Configuration is stored in:
  - Linux: ~/.config/stevedore/config.cue
  - macOS: ~/Library/Application Support/stevedore/config.cue
  - Windows: %APPDATA%\stevedore\config.cue

Environment variables with the STEVEDORE_ prefix override file values
(e.g. STEVEDORE_REGISTRY, STEVEDORE_MAX_DEPTH).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if path := config.LoadedConfigPath(); path != "" {
				fmt.Fprintln(cmd.OutOrStdout(), SubtitleStyle.Render("loaded from "+path))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), SubtitleStyle.Render("using built-in defaults"))
			}
			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(cfg))
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.CreateDefaultConfig(); err != nil {
				return err
			}
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			path := filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓")+" configuration at "+path)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value and write it to the config file.

Keys: container_engine, registry, root, max_depth, ui.verbose`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setConfigValue(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓")+" "+args[0]+" = "+args[1])
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
			return nil
		},
	})
}
