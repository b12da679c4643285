package user

import (
	"github.com/marmos91/labctl/cmd/labctl/cmdutil"
	"github.com/marmos91/labctl/internal/admin"
	"github.com/spf13/cobra"
)

var (
	emailNames  bool
	emailOne    bool
	emailIgnore bool
)

var emailCmd = &cobra.Command{
	Use:   "email",
	Short: "List email addresses",
	Long: `List the email addresses of all users.

Users without an address are reported on stderr unless --ignore is set.

Examples:
  # Comma-separated list suitable for a mail client
  labctl user email

  # One "Name" <address> entry per line
  labctl user email --names --one`,
	Args: cobra.NoArgs,
	RunE: runEmail,
}

func init() {
	emailCmd.Flags().BoolVarP(&emailNames, "names", "n", false, "Include user names")
	emailCmd.Flags().BoolVarP(&emailOne, "one", "1", false, "Print one address per line")
	emailCmd.Flags().BoolVarP(&emailIgnore, "ignore", "i", false, "Do not report users without an email address")
}

func runEmail(cmd *cobra.Command, args []string) error {
	ctx, d, err := cmdutil.NewDispatcher(cmd)
	if err != nil {
		return err
	}
	return d.Email(ctx, admin.EmailArgs{Names: emailNames, One: emailOne, Ignore: emailIgnore})
}
