package user

import (
	"github.com/marmos91/labctl/cmd/labctl/cmdutil"
	"github.com/marmos91/labctl/internal/admin"
	"github.com/spf13/cobra"
)

var passwordCmd = &cobra.Command{
	Use:   "password [username]",
	Short: "Change a password",
	Long: `Change the password of the current user or of another user.

Your own password is verified first. Changing another user's password
requires administrator rights.

Examples:
  # Change your own password
  labctl user password

  # Reset another user's password
  labctl user password alice`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPassword,
}

func runPassword(cmd *cobra.Command, args []string) error {
	ctx, d, err := cmdutil.NewDispatcher(cmd)
	if err != nil {
		return err
	}

	var req admin.PasswordArgs
	if len(args) > 0 {
		req.Username = args[0]
	}
	return cmdutil.HandleAbort(d.Password(ctx, req))
}
