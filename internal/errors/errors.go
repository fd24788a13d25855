package errors

import "errors"

// Configuration errors indicate missing or malformed settings.
var (
	// ErrMissingBaseURL indicates N8N_URL is not set.
	ErrMissingBaseURL = errors.New("N8N_URL is not set")

	// ErrInvalidBaseURL indicates N8N_URL is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("N8N_URL must be an absolute http or https URL")

	// ErrMissingAPIKey indicates N8N_API_KEY is not set.
	ErrMissingAPIKey = errors.New("N8N_API_KEY is not set")

	// ErrInvalidConfig indicates the config file is malformed or holds an invalid value.
	ErrInvalidConfig = errors.New("configuration is invalid")
)

// Remote API errors indicate the n8n instance returned something unusable.
var (
	// ErrInvalidResponse indicates a response body could not be interpreted.
	ErrInvalidResponse = errors.New("invalid response from n8n")

	// ErrNotAWorkflow indicates a workflow detail response was not a JSON object.
	ErrNotAWorkflow = errors.New("workflow detail is not an object")
)

// Audit log errors.
var (
	// ErrNoAuditLog indicates no run history has been recorded yet.
	ErrNoAuditLog = errors.New("no audit log found")

	// ErrInvalidDateFormat indicates a date filter could not be parsed.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool { return errors.As(err, target) }
