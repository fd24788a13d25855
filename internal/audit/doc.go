// Package audit records a history of export runs.
//
// Every pull appends one entry, successful or not, to a per-user JSON Lines
// file (by default $XDG_DATA_HOME/n8nsync/audit.jsonl). The file lives
// outside the exported repository so history never shows up in workflow
// diffs.
//
// # Log Format
//
// Each line is one JSON object:
//
//	{"ts":"2024-05-06T07:30:15.123456Z","run_id":"…","op":"pull","status":"success",
//	 "source":"https://n8n.example.com","workflows_count":12,"secrets_redacted":3}
//
// # Failure Handling
//
// Log returns an error so the caller can warn, but callers must never fail a
// sync because its history could not be written.
//
// # Reading Logs
//
// ReadEntries parses the log for `n8nsync log`. Malformed lines are skipped
// to tolerate partial writes.
package audit
