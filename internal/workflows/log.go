package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PolarWolf314/n8nsync/internal/audit"
	kerrors "github.com/PolarWolf314/n8nsync/internal/errors"
	"github.com/PolarWolf314/n8nsync/internal/utils"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Path is the audit log to read. Required.
	Path string

	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// Status keeps only entries with this outcome ("success" or "failure").
	Status string

	// Source keeps only runs against this instance URL.
	Source string

	// Since filters entries after this date (YYYY-MM-DD format).
	Since string

	// Until filters entries before this date (YYYY-MM-DD format).
	Until string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the filtered audit log entries.
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the run history.
//
// Returns ErrNoAuditLog if no history has been recorded.
// Returns ErrInvalidDateFormat if a date filter is invalid.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	if opts.Path == "" {
		return nil, kerrors.ErrNoAuditLog
	}

	if !utils.FileExists(opts.Path) {
		return nil, kerrors.ErrNoAuditLog
	}

	entries, err := audit.ReadEntries(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	result := &LogResult{
		TotalEntriesBeforeFilter: len(entries),
	}

	if len(entries) == 0 {
		result.Entries = entries
		return result, nil
	}

	filtered := entries

	if opts.Status != "" {
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			return strings.EqualFold(e.Status, opts.Status)
		})
	}

	if opts.Source != "" {
		want := strings.TrimRight(opts.Source, "/")
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			return strings.TrimRight(e.Source, "/") == want
		})
	}

	if opts.Since != "" {
		sinceTime, err := time.Parse("2006-01-02", opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			t, ok := entryTime(e)
			return ok && !t.Before(sinceTime)
		})
	}

	if opts.Until != "" {
		untilTime, err := time.Parse("2006-01-02", opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		// Include the entire day.
		untilTime = untilTime.Add(24*time.Hour - time.Nanosecond)
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			t, ok := entryTime(e)
			return ok && !t.After(untilTime)
		})
	}

	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			// Reversed: the first N are the most recent.
			filtered = filtered[:opts.Limit]
		} else {
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

func filterEntries(entries []audit.Entry, keep func(audit.Entry) bool) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		if keep(e) {
			result = append(result, e)
		}
	}
	return result
}

func entryTime(e audit.Entry) (time.Time, bool) {
	t, err := e.Time()
	if err != nil {
		t, err = time.Parse(time.RFC3339, e.Timestamp)
	}
	return t, err == nil
}

// FormatDateTime formats a timestamp string to YYYY-MM-DD HH:MM:SS format.
func FormatDateTime(ts string) string {
	t, ok := entryTime(audit.Entry{Timestamp: ts})
	if !ok {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails summarizes what a run did.
func FormatDetails(e audit.Entry) string {
	if e.Status == audit.StatusFailure {
		return e.Error
	}
	parts := []string{fmt.Sprintf("%d %s", e.WorkflowsCount, utils.Plural(e.WorkflowsCount, "workflow"))}
	if e.SkippedCount > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", e.SkippedCount))
	}
	if redacted := e.SecretsRedacted + e.CertificatesRedacted; redacted > 0 {
		parts = append(parts, fmt.Sprintf("%d redacted", redacted))
	}
	return strings.Join(parts, ", ")
}
