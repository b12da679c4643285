package commands

import (
	"fmt"

	"github.com/marmos91/labctl/cmd/labctl/cmdutil"
	"github.com/marmos91/labctl/internal/cli/credentials"
	"github.com/marmos91/labctl/internal/logger"
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Close the session and clear stored credentials",
	Long: `Close the server session of the current context and clear its token.

The server URL and username are kept for easy re-login. The local token is
cleared even when the server cannot be reached.

Examples:
  # Logout from current context
  labctl logout`,
	RunE: runLogout,
}

func runLogout(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize credential store: %w", err)
	}

	contextName := store.GetCurrentContextName()
	if contextName == "" {
		return fmt.Errorf("not logged in - no current context")
	}

	if client, err := cmdutil.GetAuthenticatedClient(); err == nil {
		ctx := logger.WithContext(cmd.Context(), logger.NewLogContext("logout").WithServer(client.BaseURL()))
		if err := client.Logout(ctx); err != nil {
			logger.WarnCtx(ctx, "Server logout failed", logger.Err(err))
		}
	}

	if err := store.ClearCurrentContext(); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged out from context: %s\n", contextName)
	return nil
}
