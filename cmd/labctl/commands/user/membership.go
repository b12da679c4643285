package user

import (
	"github.com/marmos91/labctl/cmd/labctl/cmdutil"
	"github.com/marmos91/labctl/internal/admin"
	"github.com/spf13/cobra"
)

type membershipFlags struct {
	asOwner bool
	id      string
	name    string
}

var (
	joinFlags  membershipFlags
	leaveFlags membershipFlags
)

var joinGroupCmd = &cobra.Command{
	Use:   "joingroup <group>...",
	Short: "Join one or more groups",
	Long: `Add a user to one or more groups, or to their owner lists with --as-owner.

The user defaults to the logged in user. Groups the user already belongs
to are skipped.

Examples:
  # Join two groups
  labctl user joingroup lab-a 42

  # Make user 7 an owner of lab-a
  labctl user joingroup lab-a --id 7 --as-owner`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, d, err := cmdutil.NewDispatcher(cmd)
		if err != nil {
			return err
		}
		return d.JoinGroup(ctx, joinFlags.args(args))
	},
}

var leaveGroupCmd = &cobra.Command{
	Use:   "leavegroup <group>...",
	Short: "Leave one or more groups",
	Long: `Remove a user from one or more groups, or from their owner lists with --as-owner.

The user defaults to the logged in user. Groups the user does not belong
to are skipped.

Examples:
  # Leave a group
  labctl user leavegroup lab-a

  # Remove alice from the owners of lab-a
  labctl user leavegroup lab-a --name alice --as-owner`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, d, err := cmdutil.NewDispatcher(cmd)
		if err != nil {
			return err
		}
		return d.LeaveGroup(ctx, leaveFlags.args(args))
	},
}

func init() {
	joinFlags.register(joinGroupCmd)
	leaveFlags.register(leaveGroupCmd)
}

func (f *membershipFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.asOwner, "as-owner", false, "Change the group owner list instead of the member list")
	cmd.Flags().StringVar(&f.id, "id", "", "ID of the user (default: current user)")
	cmd.Flags().StringVar(&f.name, "name", "", "Login of the user (default: current user)")
	cmd.MarkFlagsMutuallyExclusive("id", "name")
}

func (f *membershipFlags) args(groups []string) admin.MembershipArgs {
	return admin.MembershipArgs{
		Groups:  groups,
		ID:      f.id,
		Name:    f.name,
		AsOwner: f.asOwner,
	}
}
