package context

import (
	"fmt"

	"github.com/marmos91/labctl/cmd/labctl/cmdutil"
	"github.com/marmos91/labctl/internal/cli/credentials"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configured contexts",
	Long: `List all configured server contexts.

Shows the context name, server URL, and username for each saved context.
The current context is marked with an asterisk (*).

Examples:
  # List contexts as table
  labctl context list

  # List as JSON
  labctl context list -o json`,
	RunE: runContextList,
}

// ContextInfo represents context information for output.
type ContextInfo struct {
	Name      string `json:"name" yaml:"name"`
	Current   bool   `json:"current" yaml:"current"`
	ServerURL string `json:"server_url" yaml:"server_url"`
	Username  string `json:"username,omitempty" yaml:"username,omitempty"`
	LoggedIn  bool   `json:"logged_in" yaml:"logged_in"`
}

func newContextInfo(name, current string, ctx *credentials.Context) ContextInfo {
	return ContextInfo{
		Name:      name,
		Current:   name == current,
		ServerURL: ctx.ServerURL,
		Username:  ctx.Username,
		LoggedIn:  ctx.IsLoggedIn(),
	}
}

// ContextList is a list of contexts for table rendering.
type ContextList []ContextInfo

// Headers implements TableRenderer.
func (cl ContextList) Headers() []string {
	return []string{"", "NAME", "SERVER", "USER", "LOGGED IN"}
}

// Rows implements TableRenderer.
func (cl ContextList) Rows() [][]string {
	rows := make([][]string, 0, len(cl))
	for _, c := range cl {
		current := ""
		if c.Current {
			current = "*"
		}
		rows = append(rows, []string{current, c.Name, c.ServerURL, cmdutil.EmptyOr(c.Username, "-"), cmdutil.BoolToYesNo(c.LoggedIn)})
	}
	return rows
}

func runContextList(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize credential store: %w", err)
	}

	current := store.GetCurrentContextName()
	names := store.ListContexts()

	contexts := make(ContextList, 0, len(names))
	for _, name := range names {
		ctx, err := store.GetContext(name)
		if err != nil {
			continue
		}
		contexts = append(contexts, newContextInfo(name, current, ctx))
	}

	return cmdutil.PrintOutput(cmd.OutOrStdout(), contexts, len(contexts) == 0,
		"No contexts configured. Use 'labctl login --server <url>' to create one.", contexts)
}
