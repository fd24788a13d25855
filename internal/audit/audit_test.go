package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLog_CreatesFileAndDirectory(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "n8nsync", "audit.jsonl")

	if err := Log(logPath, Entry{Operation: OpPull, Status: StatusSuccess}); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Fatalf("Audit log file was not created")
	}
}

func TestLog_AppendsEntries(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.jsonl")

	for _, status := range []string{StatusSuccess, StatusFailure, StatusSuccess} {
		if err := Log(logPath, Entry{Operation: OpPull, Status: status}); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Errorf("Expected 3 lines, got %d", len(lines))
	}
}

func TestLog_ValidJSON(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.jsonl")

	entry := Entry{
		RunID:           "run-1",
		Operation:       OpPull,
		Status:          StatusSuccess,
		Source:          "http://localhost:5678",
		WorkflowsCount:  2,
		SecretsRedacted: 1,
	}
	if err := Log(logPath, entry); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}

	var parsed Entry
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &parsed); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	if parsed.Source != entry.Source || parsed.WorkflowsCount != 2 || parsed.SecretsRedacted != 1 {
		t.Errorf("entry did not round trip: %+v", parsed)
	}
	if parsed.Timestamp == "" {
		t.Error("Expected timestamp to be set")
	}
	if _, err := parsed.Time(); err != nil {
		t.Errorf("timestamp %q does not parse: %v", parsed.Timestamp, err)
	}
}

func TestLog_OmitsEmptyOptionalFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.jsonl")
	if err := Log(logPath, Entry{Operation: OpPull, Status: StatusSuccess}); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	data, _ := os.ReadFile(logPath)
	for _, field := range []string{"error", "secrets_redacted", "output_dir"} {
		if strings.Contains(string(data), `"`+field+`"`) {
			t.Errorf("empty field %q should be omitted: %s", field, data)
		}
	}
}

func TestLog_PreservesTimestamp(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.jsonl")
	ts := time.Date(2024, 1, 2, 3, 4, 5, 6000, time.UTC).Format(TimeFormat)

	if err := Log(logPath, Entry{Timestamp: ts, Operation: OpPull}); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	entries, err := ReadEntries(logPath)
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Timestamp != "2024-01-02T03:04:05.000006Z" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestLog_UnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	if err := Log(filepath.Join(blocker, "audit.jsonl"), Entry{Operation: OpPull}); err == nil {
		t.Error("expected an error when the parent is a file")
	}
}

func TestNewEntry(t *testing.T) {
	a := NewEntry(OpPull)
	b := NewEntry(OpPull)

	if a.Operation != OpPull {
		t.Errorf("Operation = %q", a.Operation)
	}
	if len(a.RunID) != 36 {
		t.Errorf("Expected UUID length 36, got %d", len(a.RunID))
	}
	if a.RunID == b.RunID {
		t.Error("run IDs should be unique")
	}
}

func TestReadEntries_Missing(t *testing.T) {
	entries, err := ReadEntries(filepath.Join(t.TempDir(), "missing.jsonl"))
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if entries != nil {
		t.Errorf("Expected nil entries, got %v", entries)
	}
}

func TestParseEntries_ValidData(t *testing.T) {
	data := []byte(`{"ts":"2024-01-15T10:30:00.123456Z","run_id":"r1","op":"pull","status":"success","workflows_count":3}
{"ts":"2024-01-15T10:31:00.123456Z","run_id":"r2","op":"pull","status":"failure","error":"boom"}
`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].WorkflowsCount != 3 {
		t.Errorf("WorkflowsCount = %d", entries[0].WorkflowsCount)
	}
	if entries[1].Status != StatusFailure || entries[1].Error != "boom" {
		t.Errorf("unexpected second entry: %+v", entries[1])
	}
}

func TestParseEntries_SkipsMalformedLines(t *testing.T) {
	data := []byte(`{"ts":"2024-01-15T10:30:00.123456Z","op":"pull"}
not json
{"ts":"2024-01-15T10:32:00.123456Z","op":"pull"}`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 entries (skipping malformed), got %d", len(entries))
	}
}

func TestParseEntries_EmptyData(t *testing.T) {
	entries, err := ParseEntries(nil)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}
	if entries != nil {
		t.Errorf("Expected nil entries, got %v", entries)
	}
}
