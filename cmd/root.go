package cmd

import (
	"context"
	"os"

	logger "github.com/PolarWolf314/n8nsync/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	// getenv is replaced in tests.
	getenv = os.Getenv

	RootCmd = &cobra.Command{
		Use:   "n8nsync",
		Short: "Export n8n workflows into a reviewable, secret-free file tree",
		Long: `Exports every workflow from an n8n instance into ./workflows/*.json and
writes ./manifest.yml mapping each file back to its source workflow.

Credentials embedded in node parameters and PEM material are replaced with
placeholders, and instance-specific fields (id, createdAt, updatedAt,
staticData) are removed so the output can be committed and diffed.

Environment:
  N8N_URL          base URL of the n8n instance (required)
  N8N_API_KEY      API key sent as X-N8N-API-KEY (required)
  N8NSYNC_CONFIG   path of an optional TOML config file (default ./n8nsync.toml)

Examples:
  n8nsync              # export all workflows
  n8nsync -v           # export with progress details
  n8nsync log -n 5     # show the last five runs
  n8nsync config       # show the effective configuration`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
				Out:     cmd.ErrOrStderr(),
			}
			Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.Name(), verbose, debug)
		},
		RunE: runPull,
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(logCmd)
	RootCmd.AddCommand(configCmd)
	RootCmd.AddCommand(versionCmd)
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return RootCmd.ExecuteContext(ctx)
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	getenv = os.Getenv
	resetLogCommandState()
	resetConfigCommandState()
	resetCobraFlagState(RootCmd)
}
