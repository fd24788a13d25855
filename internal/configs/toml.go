package configs

import (
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SaveTOML saves a struct to a TOML file, creating parent directories.
func SaveTOML(filePath string, data interface{}) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return err
	}

	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	return EncodeTOML(file, data)
}

// LoadTOML loads a TOML file into a struct. The metadata reports keys the
// struct had no field for.
func LoadTOML(filePath string, data interface{}) (toml.MetaData, error) {
	return toml.DecodeFile(filePath, data)
}

// EncodeTOML writes data to w as TOML.
func EncodeTOML(w io.Writer, data interface{}) error {
	return toml.NewEncoder(w).Encode(data)
}

// View is the printable form of a Config: the API key is masked and the
// source of every value is shown.
type View struct {
	ConfigFile         string   `toml:"config_file" json:"config_file"`
	BaseURL            string   `toml:"n8n_url"`
	APIKey             string   `toml:"api_key" json:"api_key"`
	OutputDir          string   `toml:"output_dir" json:"output_dir"`
	ManifestPath       string   `toml:"manifest_path" json:"manifest_path"`
	FollowPagination   bool     `toml:"follow_pagination" json:"follow_pagination"`
	StripActive        bool     `toml:"strip_active" json:"strip_active"`
	Exclude            []string `toml:"exclude" json:"exclude"`
	ExtraSensitiveKeys []string `toml:"extra_sensitive_keys" json:"extra_sensitive_keys"`
	Timeout            string   `toml:"timeout" json:"timeout"`
	AuditLog           string   `toml:"audit_log" json:"audit_log"`
}

// View returns the printable form of c.
func (c *Config) View() View {
	v := View{
		ConfigFile:         c.Source,
		BaseURL:            c.BaseURL,
		APIKey:             c.MaskedAPIKey(),
		OutputDir:          c.OutputDir,
		ManifestPath:       c.ManifestPath,
		FollowPagination:   c.FollowPagination,
		StripActive:        c.StripActive,
		Exclude:            c.Exclude,
		ExtraSensitiveKeys: c.ExtraSensitiveKeys,
		Timeout:            "none",
		AuditLog:           c.AuditLog,
	}
	if v.ConfigFile == "" {
		v.ConfigFile = "none"
	}
	if c.Timeout > 0 {
		v.Timeout = c.Timeout.String()
	}
	if v.Exclude == nil {
		v.Exclude = []string{}
	}
	if v.ExtraSensitiveKeys == nil {
		v.ExtraSensitiveKeys = []string{}
	}
	return v
}
