package user

import (
	"github.com/marmos91/labctl/cmd/labctl/cmdutil"
	"github.com/marmos91/labctl/internal/admin"
	"github.com/spf13/cobra"
)

var (
	addIgnoreExisting bool
	addMiddleName     string
	addEmail          string
	addInstitution    string
	addPassword       string
	addAdmin          bool
)

var addCmd = &cobra.Command{
	Use:   "add <username> <firstname> <lastname> <group>...",
	Short: "Create a user",
	Long: `Create a user and place it in one or more groups.

The first group becomes the user's default group. Groups may be given by
id or by name. The user is always added to the system user group, and to
the system group as well with --admin.

Examples:
  # Create a user with a password
  labctl user add alice Alice Wonderland lab-a -P secret

  # Create an administrator belonging to two groups
  labctl user add bob Bob Builder lab-a lab-b -a -e bob@example.org

  # Succeed if the user already exists
  labctl user add alice Alice Wonderland lab-a --ignore-existing`,
	Args: cobra.MinimumNArgs(4),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().BoolVar(&addIgnoreExisting, "ignore-existing", false, "Do not fail if the user already exists")
	addCmd.Flags().StringVarP(&addMiddleName, "middlename", "m", "", "Middle name")
	addCmd.Flags().StringVarP(&addEmail, "email", "e", "", "Email address")
	addCmd.Flags().StringVarP(&addInstitution, "institution", "i", "", "Institution")
	addCmd.Flags().StringVarP(&addPassword, "userpassword", "P", "", "Password for the new user")
	addCmd.Flags().BoolVarP(&addAdmin, "admin", "a", false, "Grant administrator rights")
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx, d, err := cmdutil.NewDispatcher(cmd)
	if err != nil {
		return err
	}

	req := admin.AddArgs{
		Username:       args[0],
		FirstName:      args[1],
		LastName:       args[2],
		MemberOf:       args[3:],
		MiddleName:     addMiddleName,
		Email:          addEmail,
		Institution:    addInstitution,
		Admin:          addAdmin,
		IgnoreExisting: addIgnoreExisting,
	}
	if cmd.Flags().Changed("userpassword") {
		req.Password = &addPassword
	}

	return d.Add(ctx, req)
}
