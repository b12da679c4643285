package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/marmos91/labctl/cmd/labctl/cmdutil"
	"github.com/marmos91/labctl/pkg/config"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file with default values",
	Long: `Create a configuration file with default values.

The server URL is taken from --server when given. An existing file is only
replaced with --force, which also repairs a file that no longer validates.

Examples:
  # Create the default config file
  labctl config init --server https://lab.example.org

  # Overwrite a specific file
  labctl config init --config ./labctl.yaml --force`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{cmdutil.SkipConfigLoad: "true"},
	RunE:        runConfigInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath(cmdutil.Flags.ConfigPath)

	if _, err := os.Stat(path); err == nil {
		if !initForce {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	cfg := config.GetDefaultConfig()
	cfg.ServerURL = cmdutil.Flags.ServerURL
	config.ApplyDefaults(cfg)
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := config.SaveConfig(cfg, path); err != nil {
		return err
	}

	cmdutil.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Configuration written to %s", path))
	return nil
}
