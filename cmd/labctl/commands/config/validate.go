package config

import (
	"fmt"
	"os"

	"github.com/marmos91/labctl/cmd/labctl/cmdutil"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	Long: `Validate the labctl configuration file and environment overrides.

Checks for syntax errors and invalid values, then prints the effective
settings.

Examples:
  # Validate default config
  labctl config validate

  # Validate specific config file
  labctl config validate --config ./labctl.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfigValidate,
}

// The root command has already loaded and validated the configuration.
func runConfigValidate(cmd *cobra.Command, args []string) error {
	path := configPath(cmdutil.Flags.ConfigPath)
	cfg := cmdutil.Config
	out := cmd.OutOrStdout()

	if _, err := os.Stat(path); err != nil {
		_, _ = fmt.Fprintf(out, "Configuration file: %s (not found, using defaults)\n", path)
	} else {
		_, _ = fmt.Fprintf(out, "Configuration file: %s\n", path)
	}
	_, _ = fmt.Fprintln(out, "Validation: OK")

	_, _ = fmt.Fprintf(out, "\nConfiguration summary:\n")
	_, _ = fmt.Fprintf(out, "  Server URL:  %s\n", cmdutil.EmptyOr(cfg.ServerURL, "-"))
	_, _ = fmt.Fprintf(out, "  Timeout:     %s\n", cfg.Timeout)
	_, _ = fmt.Fprintf(out, "  Output:      %s\n", cfg.Output)
	_, _ = fmt.Fprintf(out, "  Log level:   %s\n", cfg.Logging.Level)
	_, _ = fmt.Fprintf(out, "  Log format:  %s\n", cfg.Logging.Format)
	return nil
}
