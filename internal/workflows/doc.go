// Package workflows provides high-level orchestration for n8nsync commands.
//
// Workflows coordinate the other internal packages (n8n, redact, normalize,
// manifest, audit) to implement complete user-facing features. Each
// workflow handles one command's business logic, independent of CLI
// concerns like flag parsing, spinners, and output formatting.
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and loads configuration
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// # Available Workflows
//
//   - Pull: exports every workflow and writes the manifest
//   - Log: reads and filters the run history
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package so the CLI
// can react without string matching:
//
//	result, err := workflows.Pull(ctx, opts)
//	if kerrors.IsUnauthorized(err) {
//	    // suggest checking N8N_API_KEY
//	}
//
// # Context Support
//
// Workflows accept a context.Context. Pull threads it through every HTTP
// request, so cancelling it aborts the in-flight call.
package workflows
