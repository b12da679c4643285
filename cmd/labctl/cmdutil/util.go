// Package cmdutil provides shared utilities for labctl commands.
package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/marmos91/labctl/internal/admin"
	"github.com/marmos91/labctl/internal/cli/credentials"
	"github.com/marmos91/labctl/internal/cli/output"
	"github.com/marmos91/labctl/internal/cli/prompt"
	"github.com/marmos91/labctl/internal/logger"
	"github.com/marmos91/labctl/pkg/apiclient"
	"github.com/marmos91/labctl/pkg/config"
	"github.com/spf13/cobra"
)

// Flags stores global flag values accessible by subcommands.
var Flags = &GlobalFlags{}

// SkipConfigLoad is a command annotation. Commands carrying it run with the
// default configuration instead of loading the config file.
const SkipConfigLoad = "labctl/skip-config-load"

// Config is the loaded client configuration. The root command replaces it
// before any subcommand runs.
var Config = config.GetDefaultConfig()

// GlobalFlags holds the global flag values.
type GlobalFlags struct {
	ServerURL  string
	Token      string
	ConfigPath string
	Output     string
	NoColor    bool
	Verbose    bool
}

// Session is a resolved server connection.
type Session struct {
	Client   *apiclient.Client
	Username string
}

// GetAuthenticatedClient returns an API client configured from the current context.
// The server URL is the first of --server, the stored context's server and the
// configured server_url (LABCTL_SERVER_URL, then the config file). A stored
// session token is only sent to the server that issued it, so the context
// outranks the configuration.
func GetAuthenticatedClient() (*apiclient.Client, error) {
	s, err := ResolveSession()
	if err != nil {
		return nil, err
	}
	return s.Client, nil
}

// ResolveSession is GetAuthenticatedClient that also reports the stored username.
func ResolveSession() (*Session, error) {
	if Flags.ServerURL != "" && Flags.Token != "" {
		return &Session{Client: newClient(Flags.ServerURL).WithToken(Flags.Token)}, nil
	}

	store, err := credentials.NewStore()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize credential store: %w", err)
	}

	ctx, err := store.GetCurrentContext()
	if err != nil && Flags.Token == "" {
		return nil, fmt.Errorf("not logged in. Run 'labctl login' first")
	}
	if ctx == nil {
		ctx = &credentials.Context{}
	}

	url := firstNonEmpty(Flags.ServerURL, ctx.ServerURL, Config.ServerURL)
	if url == "" {
		return nil, fmt.Errorf("no server URL configured. Run 'labctl login --server <url>' first")
	}

	tok := ctx.SessionToken
	if Flags.Token != "" {
		tok = Flags.Token
	} else if ctx.IsExpired() {
		return nil, fmt.Errorf("session expired. Run 'labctl login' to re-authenticate")
	}

	if tok == "" {
		return nil, fmt.Errorf("no session token. Run 'labctl login' first")
	}

	return &Session{Client: newClient(url).WithToken(tok), Username: ctx.Username}, nil
}

func newClient(url string) *apiclient.Client {
	return apiclient.NewWithTimeout(url, Config.Timeout)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// NewDispatcher builds an admin.Dispatcher for cmd from the current session.
// It returns a context carrying the invocation's log fields.
func NewDispatcher(cmd *cobra.Command) (context.Context, *admin.Dispatcher, error) {
	session, err := ResolveSession()
	if err != nil {
		return nil, nil, err
	}
	format, err := GetOutputFormatParsed()
	if err != nil {
		return nil, nil, err
	}

	lc := logger.NewLogContext(cmd.CommandPath()).
		WithServer(session.Client.BaseURL()).
		WithUsername(session.Username)
	ctx := logger.WithContext(commandContext(cmd), lc)

	d := admin.NewDispatcher(session.Client, prompt.NewPasswordReader(), admin.Streams{
		Out:    cmd.OutOrStdout(),
		Err:    cmd.ErrOrStderr(),
		Format: format,
	})
	return ctx, d, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// GetOutputFormatParsed returns the parsed output format.
func GetOutputFormatParsed() (output.Format, error) {
	return output.ParseFormat(Flags.Output)
}

// IsColorEnabled reports whether colored output is allowed by flags and config.
func IsColorEnabled() bool {
	return !Flags.NoColor && Config.Color
}

// PrintOutput prints data in the specified format (JSON, YAML, or table).
// For table format, it displays emptyMsg if data is empty, otherwise uses the tableRenderer.
func PrintOutput(w io.Writer, data any, isEmpty bool, emptyMsg string, tableRenderer output.TableRenderer) error {
	format, err := GetOutputFormatParsed()
	if err != nil {
		return err
	}

	if format == output.FormatTable && isEmpty {
		_, _ = fmt.Fprintln(w, emptyMsg)
		return nil
	}
	return output.Render(w, format, data, tableRenderer)
}

// PrintSuccess prints a success message if the output format is table.
func PrintSuccess(w io.Writer, msg string) {
	format, err := GetOutputFormatParsed()
	if err != nil || format != output.FormatTable {
		return
	}
	output.NewPrinter(w, IsColorEnabled()).Success(msg)
}

// RunDeleteWithConfirmation prompts for confirmation (unless force is true) and runs deleteFn.
func RunDeleteWithConfirmation(w io.Writer, resourceType, name string, force bool, deleteFn func() error) error {
	confirmed, err := prompt.ConfirmWithForce(fmt.Sprintf("Delete %s '%s'", resourceType, name), force)
	if err != nil {
		return HandleAbort(err)
	}
	if !confirmed {
		_, _ = fmt.Fprintln(w, "Aborted.")
		return nil
	}

	if err := deleteFn(); err != nil {
		return err
	}

	PrintSuccess(w, fmt.Sprintf("%s '%s' deleted successfully", resourceType, name))
	return nil
}

// BoolToYesNo converts a boolean to "yes" or "no" string.
func BoolToYesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// EmptyOr returns the value if not empty, otherwise returns the fallback.
func EmptyOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// HandleAbort checks if error is an abort (Ctrl+C) and prints a message.
// Returns nil for abort (user cancelled), otherwise returns the original error.
func HandleAbort(err error) error {
	if prompt.IsAborted(err) {
		_, _ = fmt.Fprintln(os.Stderr, "\nAborted.")
		return nil
	}
	return err
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *admin.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
