package context

import (
	"errors"
	"fmt"

	"github.com/marmos91/labctl/internal/cli/credentials"
	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <old-name> <new-name>",
	Short: "Rename a context",
	Long: `Rename an existing server context.

Examples:
  # Rename context from "default" to "production"
  labctl context rename default production`,
	Args: cobra.ExactArgs(2),
	RunE: runContextRename,
}

func runContextRename(cmd *cobra.Command, args []string) error {
	oldName, newName := args[0], args[1]

	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize credential store: %w", err)
	}

	if err := store.RenameContext(oldName, newName); err != nil {
		switch {
		case errors.Is(err, credentials.ErrContextNotFound):
			return fmt.Errorf("context '%s' not found", oldName)
		case errors.Is(err, credentials.ErrContextExists):
			return fmt.Errorf("context '%s' already exists", newName)
		}
		return fmt.Errorf("failed to rename context: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Context renamed: %s -> %s\n", oldName, newName)
	return nil
}
