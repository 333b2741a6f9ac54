// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"stevedore-cli/internal/orchestrate"
)

// renderReport prints the per-project outcome table and a summary line.
func renderReport(w io.Writer, report *orchestrate.Report, dryRun bool) {
	if dryRun {
		fmt.Fprintln(w, WarningStyle.Render("dry run - no files were written"))
	}

	for _, p := range report.Projects {
		switch p.Status {
		case orchestrate.StatusDone:
			fmt.Fprintf(w, "%s %s\n", SuccessStyle.Render("✓"), p.Project.Name)
			for _, image := range p.Images {
				fmt.Fprintf(w, "    %s\n", ImageStyle.Render(image.String()))
			}
		case orchestrate.StatusSkipped:
			fmt.Fprintf(w, "%s %s %s\n", VerboseStyle.Render("-"), p.Project.Name, VerboseStyle.Render("(skipped)"))
		case orchestrate.StatusFailed:
			fmt.Fprintf(w, "%s %s: %s\n", ErrorStyle.Render("✗"), p.Project.Name, formatErrorForDisplay(p.Err, GetVerbose()))
		}
	}

	failed := len(report.Failed())
	summary := fmt.Sprintf("%d project(s): %d done, %d failed", len(report.Projects), report.Done(), failed)
	if failed > 0 {
		fmt.Fprintln(w, ErrorStyle.Render(summary))
		return
	}
	fmt.Fprintln(w, SuccessStyle.Render(summary))
}
