package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/n8nsync/internal/configs"
	"github.com/PolarWolf314/n8nsync/internal/ui"
	"github.com/PolarWolf314/n8nsync/internal/utils"
	"github.com/spf13/cobra"
)

var (
	configJSON  bool
	configInit  bool
	configForce bool
)

func init() {
	configCmd.Flags().BoolVar(&configJSON, "json", false, "output in JSON format")
	configCmd.Flags().BoolVar(&configInit, "init", false, "write a starter config file")
	configCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file with --init")
}

// resetConfigCommandState resets the config command's global state for testing.
func resetConfigCommandState() {
	configJSON = false
	configInit = false
	configForce = false
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display the effective configuration",
	Long: `Displays the configuration a sync would run with, after merging the
config file and the environment. The API key is masked.

The config file is read from N8NSYNC_CONFIG, or ./n8nsync.toml if it exists.

Examples:
  n8nsync config           # Show the effective configuration
  n8nsync config --json    # JSON output
  n8nsync config --init    # Write a starter n8nsync.toml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting config command")
	Logger.Debugf("Flags: json=%t, init=%t, force=%t", configJSON, configInit, configForce)

	if configInit {
		return initConfigFile(cmd)
	}

	cfg, err := configs.LoadLocal(getenv)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if configJSON {
		data, err := json.MarshalIndent(cfg.View(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
	} else if err := configs.EncodeTOML(out, cfg.View()); err != nil {
		return Logger.ErrorfAndReturn("Failed to encode config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		Logger.WarnfAlways("Configuration is incomplete: %v", err)
	}
	return nil
}

func initConfigFile(cmd *cobra.Command) error {
	path := getenv(configs.EnvConfigPath)
	if path == "" {
		path = configs.DefaultConfigFile
	}

	out := cmd.OutOrStdout()
	if utils.FileExists(path) && !configForce {
		fmt.Fprintln(out, ui.Error.Sprint(ui.CrossMark)+" "+ui.Path.Sprint(path)+" already exists")
		fmt.Fprintln(out, ui.Info.Sprint(ui.Arrow)+" Run "+ui.Code.Sprint("n8nsync config --init --force")+" to overwrite it")
		return nil
	}

	starter := configs.Defaults()
	starter.BaseURL = getenv(configs.EnvBaseURL)
	Logger.Debugf("Writing starter config to %s", path)
	if err := configs.SaveTOML(path, starter); err != nil {
		return Logger.ErrorfAndReturn("Failed to write %s: %v", path, err)
	}

	fmt.Fprintln(out, ui.Success.Sprint(ui.CheckMark)+" Wrote "+ui.Path.Sprint(path))
	fmt.Fprintln(out, ui.Info.Sprint(ui.Arrow)+" Set "+ui.Code.Sprint(configs.EnvAPIKey)+" in the environment; the API key is never read from this file")
	return nil
}
