package context

import (
	"fmt"
	"time"

	"github.com/marmos91/labctl/cmd/labctl/cmdutil"
	"github.com/marmos91/labctl/internal/cli/credentials"
	"github.com/marmos91/labctl/internal/cli/output"
	"github.com/marmos91/labctl/internal/cli/timeutil"
	"github.com/spf13/cobra"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show current context",
	Long: `Display information about the current active context.

Examples:
  # Show current context
  labctl context current

  # Show as JSON
  labctl context current -o json`,
	RunE: runContextCurrent,
}

func runContextCurrent(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize credential store: %w", err)
	}

	contextName := store.GetCurrentContextName()
	if contextName == "" {
		return fmt.Errorf("no current context set\n\n" +
			"Login to a server first:\n" +
			"  labctl login --server https://lab.example.org")
	}

	ctx, err := store.GetContext(contextName)
	if err != nil {
		return fmt.Errorf("failed to get context: %w", err)
	}
	info := newContextInfo(contextName, contextName, ctx)

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format.IsStructured() {
		return output.Render(out, format, info, nil)
	}

	_, _ = fmt.Fprintf(out, "Current context: %s\n", contextName)
	_, _ = fmt.Fprintf(out, "  Server:    %s\n", ctx.ServerURL)
	_, _ = fmt.Fprintf(out, "  User:      %s\n", cmdutil.EmptyOr(ctx.Username, "-"))
	if info.LoggedIn {
		_, _ = fmt.Fprintln(out, "  Status:    Logged in")
		_, _ = fmt.Fprintf(out, "  Expires:   %s\n", timeutil.FormatExpiry(ctx.ExpiresAt, time.Now()))
	} else {
		_, _ = fmt.Fprintln(out, "  Status:    Not logged in")
	}
	return nil
}
