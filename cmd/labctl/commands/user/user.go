// Package user implements user administration subcommands for labctl.
package user

import (
	"github.com/spf13/cobra"
)

// Cmd is the user subcommand.
var Cmd = &cobra.Command{
	Use:   "user",
	Short: "Administer users",
	Long: `Administer users and their group memberships on the lab server.

Subcommands:
  add         Create a user
  list        List all users
  password    Change a password
  email       List email addresses
  joingroup   Join one or more groups
  leavegroup  Leave one or more groups`,
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(passwordCmd)
	Cmd.AddCommand(emailCmd)
	Cmd.AddCommand(joinGroupCmd)
	Cmd.AddCommand(leaveGroupCmd)
}
