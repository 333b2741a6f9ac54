// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"
)

// tagCmd pins canonical image names into every discovered compose file.
var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Pin canonical image names into compose files",
	Long: `Scan the directory tree for compose projects and pin every service
to its canonical image name ({registry}/{project}-{service}:{tag}).

Rewrites are structural: comments, key order and unrelated fields are
preserved, and running tag twice leaves the files byte-identical.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := resolveRunSettings(cmd, true)
		if err != nil {
			return err
		}

		o, err := newRunOrchestrator(settings)
		if err != nil {
			return err
		}

		report, err := o.Tag(cmd.Context(), settings.root)
		if err != nil {
			return err
		}

		renderReport(cmd.OutOrStdout(), report, settings.dryRun)
		if !report.OK() {
			return &ExitError{Code: report.ExitCode()}
		}
		return nil
	},
}

func init() {
	addRunFlags(tagCmd)
	tagCmd.Flags().StringP("registry", "r", "", "image registry prefix (e.g. ghcr.io/acme)")
	tagCmd.Flags().Bool("dry-run", false, "compute and print image names without writing files")
}
