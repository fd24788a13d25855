// Package configs loads the n8nsync configuration.
//
// Values are resolved in order, later sources winning:
//
//  1. Built-in defaults (output_dir "workflows", manifest_path "manifest.yml")
//  2. The TOML file named by N8NSYNC_CONFIG, or ./n8nsync.toml if it exists
//  3. The environment: N8N_URL and N8N_API_KEY
//
// The API key is read only from the environment. A config file containing
// api_key is rejected so the key cannot end up in version control next to
// the exported workflows.
//
// # Config File
//
//	n8n_url = "https://n8n.example.com"
//	output_dir = "workflows"
//	manifest_path = "manifest.yml"
//	follow_pagination = true
//	strip_active = false
//	exclude = ["Scratch/**", "* (copy)"]
//	extra_sensitive_keys = ["webhookId"]
//	timeout = "30s"
//	audit_log = "-"
//
// Load validates the result, so callers can rely on a usable Config or an
// error wrapping one of the configuration sentinels in internal/errors.
package configs
