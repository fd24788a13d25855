package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestNew(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	now := time.Date(2024, 5, 6, 9, 30, 15, 123_000_000, loc)

	m := New("http://localhost:5678", now)

	if m.SourceInstance != "http://localhost:5678" {
		t.Errorf("SourceInstance = %q", m.SourceInstance)
	}
	if m.LastSync != "2024-05-06T07:30:15.123Z" {
		t.Errorf("LastSync = %q, expected UTC with milliseconds", m.LastSync)
	}
	if m.Workflows == nil || len(m.Workflows) != 0 {
		t.Errorf("Workflows should be empty and non-nil, got %#v", m.Workflows)
	}

	parsed, err := m.LastSyncTime()
	if err != nil {
		t.Fatalf("LastSyncTime failed: %v", err)
	}
	if !parsed.Equal(now) {
		t.Errorf("LastSyncTime = %v, expected %v", parsed, now)
	}
}

func TestMarshal_Layout(t *testing.T) {
	m := New("http://n8n", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	m.Add(Entry{Name: "Test", SourceID: "w1", File: "test.json"})
	m.Add(Entry{Name: "Other: flow", SourceID: "w2", File: "other__flow.json"})

	data, err := m.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		"source_instance: http://n8n\n",
		"last_sync: ",
		"workflows:\n",
		"  - name: Test\n",
		"    source_id: w1\n",
		"    file: test.json\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if strings.Index(out, "source_instance") > strings.Index(out, "last_sync") ||
		strings.Index(out, "last_sync") > strings.Index(out, "workflows") {
		t.Errorf("unexpected key order:\n%s", out)
	}

	var decoded map[string]interface{}
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
}

func TestMarshal_EmptyWorkflowsIsAList(t *testing.T) {
	data, err := New("http://n8n", time.Now()).Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), "workflows: []") {
		t.Errorf("expected an empty list, got:\n%s", data)
	}
}

func TestWriteAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "manifest.yml")

	m := New("http://n8n", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	m.Add(Entry{Name: "B", SourceID: "2", File: "b.json"})
	m.Add(Entry{Name: "A", SourceID: "1", File: "a.json"})

	if err := Write(path, m); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.SourceInstance != m.SourceInstance || got.LastSync != m.LastSync {
		t.Errorf("header mismatch: %+v", got)
	}
	if len(got.Workflows) != 2 || got.Workflows[0].Name != "B" || got.Workflows[1].SourceID != "1" {
		t.Errorf("entries lost their order: %+v", got.Workflows)
	}
}

func TestWrite_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yml")
	if err := os.WriteFile(path, []byte("stale: true\nworkflows:\n  - name: Old\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Write(path, New("http://n8n", time.Now())); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "Old") || strings.Contains(string(data), "stale") {
		t.Errorf("old manifest content survived:\n%s", data)
	}
}

func TestRead_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Read(filepath.Join(dir, "missing.yml")); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}

	bad := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(bad, []byte("workflows: {"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(bad); err == nil {
		t.Error("expected parse error")
	}
}
