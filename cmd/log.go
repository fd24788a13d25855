package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/PolarWolf314/n8nsync/internal/audit"
	"github.com/PolarWolf314/n8nsync/internal/configs"
	kerrors "github.com/PolarWolf314/n8nsync/internal/errors"
	"github.com/PolarWolf314/n8nsync/internal/ui"
	"github.com/PolarWolf314/n8nsync/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit   int
	logReverse bool
	logStatus  string
	logSource  string
	logSince   string
	logUntil   string
	logJSON    bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logStatus, "status", "", "filter by outcome (success or failure)")
	logCmd.Flags().StringVar(&logSource, "source", "", "filter by n8n instance URL")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logStatus = ""
	logSource = ""
	logSince = ""
	logUntil = ""
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the history of sync runs",
	Long: `Displays the history of sync runs recorded in the audit log.

Every run is recorded, including failed ones, with the instance it read
from and how many workflows it wrote.

Examples:
  n8nsync log                     # View full history
  n8nsync log -n 10               # Last 10 runs
  n8nsync log --reverse           # Most recent first
  n8nsync log --status failure    # Failed runs only
  n8nsync log --since 2024-01-01  # Filter by date
  n8nsync log --json              # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")
	out := cmd.OutOrStdout()

	cfg, err := configs.LoadLocal(getenv)
	if err != nil {
		return err
	}
	if !cfg.AuditEnabled() {
		fmt.Fprintln(out, ui.Info.Sprint("ℹ")+" Run history is disabled ("+ui.Code.Sprint(`audit_log = "-"`)+").")
		return nil
	}
	Logger.Debugf("Reading audit log %s", cfg.AuditLog)

	result, err := workflows.Log(cmd.Context(), workflows.LogOptions{
		Path:    cfg.AuditLog,
		Limit:   logLimit,
		Reverse: logReverse,
		Status:  logStatus,
		Source:  logSource,
		Since:   logSince,
		Until:   logUntil,
	})
	if err != nil {
		fmt.Fprintln(out, formatLogError(err))
		if isLogUnexpectedError(err) {
			return err
		}
		return nil
	}

	Logger.Debugf("Parsed %d entries from audit log", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			fmt.Fprintln(out, "No runs recorded yet.")
		} else {
			fmt.Fprintln(out, "No runs found matching the filters.")
		}
		return nil
	}

	if logJSON {
		return outputLogJSON(out, result.Entries)
	}
	outputLogDefault(out, result.Entries)
	return nil
}

// formatLogError formats a log error for display to the user.
func formatLogError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrNoAuditLog):
		return ui.Info.Sprint("ℹ") + " No runs recorded yet. Run " + ui.Code.Sprint("n8nsync") + " to export workflows."

	case errors.Is(err, kerrors.ErrInvalidDateFormat):
		return ui.Error.Sprint(ui.CrossMark) + " " + err.Error()

	default:
		return ui.Error.Sprint(ui.CrossMark) + " Failed to read run history: " + err.Error()
	}
}

// isLogUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isLogUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, kerrors.ErrNoAuditLog),
		errors.Is(err, kerrors.ErrInvalidDateFormat):
		return false
	default:
		return true
	}
}

func outputLogJSON(w io.Writer, entries []audit.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func outputLogDefault(w io.Writer, entries []audit.Entry) {
	for _, e := range entries {
		status := ui.Success.Sprintf("%-7s", e.Status)
		if e.Status == audit.StatusFailure {
			status = ui.Error.Sprintf("%-7s", e.Status)
		}
		fmt.Fprintf(w, "%-19s  %s  %-30s  %s\n",
			workflows.FormatDateTime(e.Timestamp), status, e.Source, workflows.FormatDetails(e))
	}
}
