// Package config implements configuration management subcommands for labctl.
package config

import (
	"github.com/marmos91/labctl/pkg/config"
	"github.com/spf13/cobra"
)

// Cmd is the config subcommand.
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Manage client configuration",
	Long: `Manage the labctl configuration file.

The configuration is read from $XDG_CONFIG_HOME/labctl/config.yaml unless
--config names another file. LABCTL_* environment variables override it.

Subcommands:
  init      Create a configuration file with default values
  validate  Validate the configuration`,
}

func init() {
	Cmd.AddCommand(initCmd)
	Cmd.AddCommand(validateCmd)
}

func configPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return config.GetDefaultConfigPath()
}
