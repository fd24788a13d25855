package cmd

import (
	"fmt"
	"strings"

	"github.com/PolarWolf314/n8nsync/internal/configs"
	kerrors "github.com/PolarWolf314/n8nsync/internal/errors"
	"github.com/PolarWolf314/n8nsync/internal/redact"
	"github.com/PolarWolf314/n8nsync/internal/ui"
	"github.com/PolarWolf314/n8nsync/internal/utils"
	"github.com/PolarWolf314/n8nsync/internal/workflows"
	"github.com/spf13/cobra"
)

func runPull(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting pull")

	cfg, err := configs.Load(getenv)
	if err != nil {
		return err
	}
	if cfg.Source != "" {
		Logger.Infof("Loaded config file %s", cfg.Source)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Fetching workflows from %s...\n", ui.URL.Sprint(cfg.BaseURL))

	spinner, cleanup := startSpinner(out, "Listing workflows...")
	defer cleanup()

	result, err := workflows.Pull(cmd.Context(), workflows.PullOptions{
		Config: cfg,
		Logger: Logger,
		OnList: func(total int) {
			setSpinnerSuffix(spinner, fmt.Sprintf("Exporting %d %s...", total, utils.Plural(total, "workflow")))
		},
		OnProgress: func(e workflows.ProgressEvent) {
			printAbove(spinner, out, formatProgress(e))
			setSpinnerSuffix(spinner, fmt.Sprintf("Exported %d/%d...", e.Index, e.Total))
		},
	})
	if err != nil {
		spinner.FinalMSG = formatPullError(err, cfg)
		return err
	}

	spinner.FinalMSG = formatPullSummary(result)
	return nil
}

func formatProgress(e workflows.ProgressEvent) string {
	if e.Skipped {
		return ui.Muted.Sprint("-") + " Skipped: " + ui.Highlight.Sprint(e.Name) + " " + ui.Muted.Sprint("excluded")
	}
	line := ui.Success.Sprint(ui.CheckMark) + " Saved: " + ui.Path.Sprint(e.Entry.File)
	if details := formatRedactions(e.Redactions); details != "" {
		line += " " + ui.Muted.Sprint(details)
	}
	return line
}

func formatRedactions(r redact.Report) string {
	var parts []string
	if r.Secrets > 0 {
		parts = append(parts, fmt.Sprintf("%d %s redacted", r.Secrets, utils.Plural(r.Secrets, "secret")))
	}
	if r.Certificates > 0 {
		parts = append(parts, fmt.Sprintf("%d %s redacted", r.Certificates, utils.Plural(r.Certificates, "certificate")))
	}
	return strings.Join(parts, ", ")
}

func formatPullSummary(r *workflows.PullResult) string {
	n := r.Written()
	var b strings.Builder
	b.WriteString(ui.Success.Sprint(ui.CheckMark))
	fmt.Fprintf(&b, " Sync complete: %d %s written to %s", n, utils.Plural(n, "workflow"), ui.Path.Sprint(r.OutputDir))
	fmt.Fprintf(&b, "\n%s Manifest: %s", ui.Info.Sprint(ui.Arrow), ui.Path.Sprint(r.ManifestPath))

	if len(r.Skipped) > 0 {
		fmt.Fprintf(&b, "\n%s %d excluded by %s", ui.Info.Sprint(ui.Arrow), len(r.Skipped), ui.Code.Sprint("exclude"))
	}
	if len(r.Collisions) > 0 {
		files := make([]string, len(r.Collisions))
		for i, c := range r.Collisions {
			files[i] = c.File
		}
		fmt.Fprintf(&b, "\n%s %d %s written more than once:%s",
			ui.Warning.Sprint(ui.WarnMark), len(files), utils.Plural(len(files), "file"), strings.TrimRight(utils.FormatPaths(files), "\n"))
	}
	if r.MorePages {
		fmt.Fprintf(&b, "\n%s Only the first page of workflows was exported. Set %s to export all of them.",
			ui.Warning.Sprint(ui.WarnMark), ui.Code.Sprint("follow_pagination = true"))
	}
	return b.String()
}

func formatPullError(err error, cfg *configs.Config) string {
	msg := ui.Error.Sprint(ui.CrossMark) + " Sync failed; the manifest was not updated"
	if kerrors.IsUnauthorized(err) {
		msg += "\n" + ui.Info.Sprint(ui.Arrow) + " Check that " + ui.Code.Sprint(configs.EnvAPIKey) +
			" is a valid API key for " + ui.URL.Sprint(cfg.BaseURL)
	}
	return msg
}
