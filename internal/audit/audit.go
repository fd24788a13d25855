package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/PolarWolf314/n8nsync/internal/utils"
)

// TimeFormat is RFC3339 with microseconds, always UTC.
const TimeFormat = "2006-01-02T15:04:05.000000Z"

// Operation names.
const (
	OpPull = "pull"
)

// Run outcomes.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`     // RFC3339 with microseconds.
	RunID     string `json:"run_id"` // Random UUID per run.
	Operation string `json:"op"`
	Status    string `json:"status"`
	User      string `json:"user,omitempty"` // Local account that ran the export.
	Host      string `json:"host,omitempty"`

	Source       string `json:"source,omitempty"` // n8n base URL.
	OutputDir    string `json:"output_dir,omitempty"`
	ManifestPath string `json:"manifest_path,omitempty"`

	WorkflowsCount       int `json:"workflows_count,omitempty"`
	SkippedCount         int `json:"skipped_count,omitempty"`
	SecretsRedacted      int `json:"secrets_redacted,omitempty"`
	CertificatesRedacted int `json:"certificates_redacted,omitempty"`

	Error string `json:"error,omitempty"`
}

// NewEntry returns an entry for op with a fresh run ID and the local user
// and host filled in where available.
func NewEntry(op string) Entry {
	entry := Entry{
		RunID:     uuid.New().String(),
		Operation: op,
	}
	if user, err := utils.GetUsername(); err == nil {
		entry.User = user
	}
	if host, err := utils.GetHostname(); err == nil {
		entry.Host = host
	}
	return entry
}

// Time parses the entry timestamp.
func (e Entry) Time() (time.Time, error) {
	return time.Parse(TimeFormat, e.Timestamp)
}

// Log appends an entry to the audit log at path.
// Failures are returned for the caller to report, but a sync never fails
// because its history could not be recorded.
func Log(path string, entry Entry) error {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimeFormat)
	}

	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	_, err = f.Write(append(data, '\n'))
	return err
}

// ReadEntries reads all entries from the audit log at path.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
