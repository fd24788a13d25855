package configs

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	kerrors "github.com/PolarWolf314/n8nsync/internal/errors"
	"github.com/PolarWolf314/n8nsync/internal/utils"
)

// Environment variables read by Load.
const (
	EnvBaseURL    = "N8N_URL"
	EnvAPIKey     = "N8N_API_KEY"
	EnvConfigPath = "N8NSYNC_CONFIG"
)

// Defaults.
const (
	DefaultConfigFile   = "n8nsync.toml"
	DefaultOutputDir    = "workflows"
	DefaultManifestPath = "manifest.yml"

	// AuditDisabled as audit_log turns run history off.
	AuditDisabled = "-"
)

// Config is the effective configuration for one run. It is built once by
// Load and passed down explicitly.
type Config struct {
	// BaseURL is the n8n instance address. N8N_URL overrides n8n_url.
	BaseURL string `toml:"n8n_url"`

	// APIKey only ever comes from N8N_API_KEY so it cannot be committed.
	APIKey string `toml:"-"`

	OutputDir    string `toml:"output_dir"`
	ManifestPath string `toml:"manifest_path"`

	FollowPagination bool `toml:"follow_pagination"`
	StripActive      bool `toml:"strip_active"`

	// Exclude holds doublestar globs matched against workflow names.
	Exclude []string `toml:"exclude"`

	// ExtraSensitiveKeys are appended to the default redaction keywords.
	ExtraSensitiveKeys []string `toml:"extra_sensitive_keys"`

	// TimeoutRaw is a Go duration string. Zero means no client timeout.
	TimeoutRaw string        `toml:"timeout"`
	Timeout    time.Duration `toml:"-"`

	AuditLog string `toml:"audit_log"`

	// Source is the config file that was loaded, or "" if none was.
	Source string `toml:"-"`
}

// Defaults returns a Config with every optional value set to its default.
func Defaults() *Config {
	return &Config{
		OutputDir:    DefaultOutputDir,
		ManifestPath: DefaultManifestPath,
	}
}

// Load builds the configuration: defaults, then the TOML file named by
// N8NSYNC_CONFIG (or ./n8nsync.toml if present), then the environment.
// The result is validated before it is returned.
func Load(getenv func(string) string) (*Config, error) {
	cfg, err := LoadLocal(getenv)
	if err != nil {
		return nil, err
	}
	if err := cfg.validateConnection(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadLocal is Load without the N8N_URL and N8N_API_KEY checks, for
// commands that never contact the instance.
func LoadLocal(getenv func(string) string) (*Config, error) {
	cfg := Defaults()

	path := getenv(EnvConfigPath)
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if explicit || utils.FileExists(path) {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
		cfg.Source = path
	}

	if v := getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	cfg.APIKey = getenv(EnvAPIKey)

	if cfg.AuditLog == "" {
		dataDir, err := utils.UserDataDir(getenv)
		if err != nil {
			cfg.AuditLog = AuditDisabled
		} else {
			cfg.AuditLog = filepath.Join(dataDir, "n8nsync", "audit.jsonl")
		}
	}

	if err := cfg.validateLocal(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	md, err := LoadTOML(path, cfg)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", kerrors.ErrInvalidConfig, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		for _, k := range keys {
			if strings.EqualFold(k, "api_key") {
				return fmt.Errorf("%w: %s: the API key must be set with %s, not in the config file", kerrors.ErrInvalidConfig, path, EnvAPIKey)
			}
		}
		return fmt.Errorf("%w: %s: unknown keys %s", kerrors.ErrInvalidConfig, path, strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks every field and fills Timeout from TimeoutRaw.
func (c *Config) Validate() error {
	if err := c.validateConnection(); err != nil {
		return err
	}
	return c.validateLocal()
}

func (c *Config) validateConnection() error {
	if c.BaseURL == "" {
		return kerrors.ErrMissingBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", kerrors.ErrInvalidBaseURL, c.BaseURL)
	}
	if c.APIKey == "" {
		return kerrors.ErrMissingAPIKey
	}
	return nil
}

func (c *Config) validateLocal() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("%w: output_dir must not be empty", kerrors.ErrInvalidConfig)
	}
	if strings.TrimSpace(c.ManifestPath) == "" {
		return fmt.Errorf("%w: manifest_path must not be empty", kerrors.ErrInvalidConfig)
	}

	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%w: exclude pattern %q is malformed", kerrors.ErrInvalidConfig, pattern)
		}
	}

	c.Timeout = 0
	if c.TimeoutRaw != "" {
		d, err := time.ParseDuration(c.TimeoutRaw)
		if err != nil || d < 0 {
			return fmt.Errorf("%w: timeout %q is not a valid duration", kerrors.ErrInvalidConfig, c.TimeoutRaw)
		}
		c.Timeout = d
	}
	return nil
}

// AuditEnabled reports whether run history should be recorded.
func (c *Config) AuditEnabled() bool {
	return c.AuditLog != "" && c.AuditLog != AuditDisabled
}

// Excluded reports whether name matches one of the exclude globs.
func (c *Config) Excluded(name string) bool {
	for _, pattern := range c.Exclude {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// MaskedAPIKey returns the API key with all but its last four characters hidden.
func (c *Config) MaskedAPIKey() string {
	if len(c.APIKey) <= 8 {
		return strings.Repeat("*", len(c.APIKey))
	}
	return strings.Repeat("*", len(c.APIKey)-4) + c.APIKey[len(c.APIKey)-4:]
}
