// Package errors provides typed error values for n8nsync.
//
// Sentinel errors let callers branch with errors.Is() rather than string
// matching.
//
// # Error Categories
//
//   - Configuration errors: ErrMissingBaseURL, ErrMissingAPIKey,
//     ErrInvalidBaseURL, ErrInvalidConfig
//   - Remote API errors: ErrInvalidResponse, ErrNotAWorkflow, and
//     *HTTPStatusError for non-2xx responses
//   - Audit log errors: ErrNoAuditLog, ErrInvalidDateFormat
//
// Filesystem errors are returned as the wrapped os errors.
//
// # Usage
//
//	if cfg.BaseURL == "" {
//	    return errors.ErrMissingBaseURL
//	}
//
// Wrap with context in the caller:
//
//	return fmt.Errorf("reading %s: %w", path, kerrors.ErrInvalidConfig)
package errors
