package user

import (
	"github.com/marmos91/labctl/cmd/labctl/cmdutil"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	Long: `List all users with their administrator, activity and group flags.

Examples:
  # List users as table
  labctl user list

  # List as JSON
  labctl user list -o json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	ctx, d, err := cmdutil.NewDispatcher(cmd)
	if err != nil {
		return err
	}
	return d.List(ctx)
}
