// Package commands implements the CLI commands for the labctl client.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/marmos91/labctl/cmd/labctl/cmdutil"
	configcmd "github.com/marmos91/labctl/cmd/labctl/commands/config"
	ctxcmd "github.com/marmos91/labctl/cmd/labctl/commands/context"
	usercmd "github.com/marmos91/labctl/cmd/labctl/commands/user"
	"github.com/marmos91/labctl/internal/cli/output"
	"github.com/marmos91/labctl/internal/logger"
	"github.com/marmos91/labctl/pkg/config"
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "labctl",
	Short: "Lab server administration client",
	Long: `labctl is the command-line client for administering users and groups
on a lab server remotely.

Log in once with "labctl login", then manage accounts with "labctl user".

Use "labctl [command] --help" for more information about a command.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// setup syncs global flags, loads the configuration and configures logging.
func setup(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	cmdutil.Flags.ServerURL, _ = flags.GetString("server")
	cmdutil.Flags.Token, _ = flags.GetString("token")
	cmdutil.Flags.ConfigPath, _ = flags.GetString("config")
	cmdutil.Flags.Output, _ = flags.GetString("output")
	cmdutil.Flags.NoColor, _ = flags.GetBool("no-color")
	cmdutil.Flags.Verbose, _ = flags.GetBool("verbose")

	cfg := config.GetDefaultConfig()
	if cmd.Annotations[cmdutil.SkipConfigLoad] != "true" {
		loaded, err := config.Load(cmdutil.Flags.ConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cmdutil.Config = cfg

	if !flags.Changed("output") {
		cmdutil.Flags.Output = cfg.Output
	}
	if _, err := output.ParseFormat(cmdutil.Flags.Output); err != nil {
		return err
	}

	level := cfg.Logging.Level
	if cmdutil.Flags.Verbose {
		level = "DEBUG"
	}
	color := cmdutil.IsColorEnabled()
	if err := logger.Init(logger.Config{
		Level:  level,
		Format: cfg.Logging.Format,
		Output: "stderr",
		Color:  &color,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Debug("Configuration loaded", logger.Command(cmd.CommandPath()))
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// The context is canceled on SIGINT or SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().String("server", "", "Server URL (overrides stored credential)")
	rootCmd.PersistentFlags().String("token", "", "Session token (overrides stored credential)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/labctl/config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format (table|json|yaml)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(configcmd.Cmd)
	rootCmd.AddCommand(ctxcmd.Cmd)
	rootCmd.AddCommand(usercmd.Cmd)
	rootCmd.AddCommand(completionCmd)

	// Hide the default completion command (we provide our own)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
