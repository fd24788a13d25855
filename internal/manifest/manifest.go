// Package manifest describes an export run in a small YAML file that sits
// next to the exported workflows.
package manifest

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/PolarWolf314/n8nsync/internal/utils"
)

// TimeFormat is ISO-8601 UTC with millisecond precision.
const TimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Manifest lists every workflow written by one export.
type Manifest struct {
	SourceInstance string  `yaml:"source_instance"`
	LastSync       string  `yaml:"last_sync"`
	Workflows      []Entry `yaml:"workflows"`
}

// Entry maps an exported file back to its workflow on the source instance.
type Entry struct {
	Name     string `yaml:"name"`
	SourceID string `yaml:"source_id"`
	File     string `yaml:"file"`
}

// New returns an empty manifest for source stamped with now in UTC.
func New(source string, now time.Time) *Manifest {
	return &Manifest{
		SourceInstance: source,
		LastSync:       now.UTC().Format(TimeFormat),
		Workflows:      []Entry{},
	}
}

// Add appends an entry, keeping list order.
func (m *Manifest) Add(e Entry) {
	m.Workflows = append(m.Workflows, e)
}

// Marshal renders m as YAML with two-space indentation.
func (m *Manifest) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// Write replaces the file at path with m.
func Write(path string, m *Manifest) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	if err := utils.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// Read loads the manifest at path.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// LastSyncTime parses LastSync.
func (m *Manifest) LastSyncTime() (time.Time, error) {
	return time.Parse(TimeFormat, m.LastSync)
}
