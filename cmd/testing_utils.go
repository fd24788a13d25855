package cmd

import (
	"io"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetCobraFlagState puts every flag of cmd and its subcommands back to its
// default value. Cobra commands are package globals, so flag values leak
// between tests otherwise.
func resetCobraFlagState(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetCobraFlagState(sub)
	}
}

// createTestCLI returns RootCmd wired to the given environment and writers,
// with args set and all global state reset.
func createTestCLI(t *testing.T, env map[string]string, stdout, stderr io.Writer, args ...string) *cobra.Command {
	t.Helper()
	ResetGlobalState()
	t.Cleanup(ResetGlobalState)

	getenv = func(key string) string { return env[key] }

	RootCmd.SetArgs(args)
	RootCmd.SetOut(stdout)
	RootCmd.SetErr(stderr)
	t.Cleanup(func() {
		RootCmd.SetArgs(nil)
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
	})
	return RootCmd
}

// chdir switches into dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change to %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("Failed to restore working directory: %v", err)
		}
	})
}
