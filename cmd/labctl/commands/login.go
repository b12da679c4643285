package commands

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/marmos91/labctl/cmd/labctl/cmdutil"
	"github.com/marmos91/labctl/internal/cli/credentials"
	"github.com/marmos91/labctl/internal/cli/prompt"
	"github.com/marmos91/labctl/internal/cli/timeutil"
	"github.com/marmos91/labctl/internal/logger"
	"github.com/marmos91/labctl/pkg/apiclient"
	"github.com/spf13/cobra"
)

var (
	loginUsername string
	loginPassword string
	loginContext  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with a lab server",
	Long: `Authenticate with a lab server and store the session.

On first login, you must specify the server URL (or set server_url in the
config file). Subsequent logins use the stored server URL unless overridden.

Examples:
  # First login to a server
  labctl login --server https://lab.example.org --username root

  # Login with password on command line (less secure)
  labctl login --server https://lab.example.org -u root -p secret

  # Save the session under a named context
  labctl login --server https://staging.example.org --context staging

  # Re-login to stored server
  labctl login`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password")
	loginCmd.Flags().StringVar(&loginContext, "context", "", "Context name (default: current or \"default\")")
}

func runLogin(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize credential store: %w", err)
	}

	contextName := loginContext
	if contextName == "" {
		contextName = store.GetCurrentContextName()
	}
	if contextName == "" {
		contextName = credentials.DefaultContextName
	}

	var saved *credentials.Context
	if c, err := store.GetContext(contextName); err == nil {
		saved = c
	}

	serverURL := cmdutil.Flags.ServerURL
	if serverURL == "" && saved != nil {
		serverURL = saved.ServerURL
	}
	if serverURL == "" {
		serverURL = cmdutil.Config.ServerURL
	}
	if serverURL == "" {
		return fmt.Errorf("no server URL specified and no saved context found\n\n" +
			"Specify server URL:\n" +
			"  labctl login --server https://lab.example.org")
	}

	serverURL, err = normalizeServerURL(serverURL)
	if err != nil {
		return err
	}

	username := loginUsername
	if username == "" && saved != nil && saved.ServerURL == serverURL {
		username = saved.Username
	}
	if username == "" {
		username, err = prompt.InputRequired("Username")
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	password := loginPassword
	if password == "" {
		password, err = prompt.NewPasswordReader().ReadPassword("Password: ")
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	client := apiclient.NewWithTimeout(serverURL, cmdutil.Config.Timeout)

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Logging in to %s as %s...\n", serverURL, username)

	ctx := logger.WithContext(cmd.Context(), logger.NewLogContext("login").WithServer(serverURL).WithUsername(username))
	resp, err := client.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	expiresAt := resp.Expiry(time.Now())
	if expiresAt.IsZero() {
		expiresAt = credentials.TokenExpiry(resp.SessionToken)
	}

	if err := store.SetContext(contextName, &credentials.Context{
		ServerURL:    serverURL,
		Username:     username,
		SessionToken: resp.SessionToken,
		ExpiresAt:    expiresAt,
	}); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	if err := store.UseContext(contextName); err != nil {
		return fmt.Errorf("failed to set current context: %w", err)
	}

	cmdutil.PrintSuccess(out, fmt.Sprintf("Logged in successfully as %s", username))
	_, _ = fmt.Fprintf(out, "Context: %s\n", contextName)
	_, _ = fmt.Fprintf(out, "Session expires: %s\n", timeutil.FormatExpiry(expiresAt, time.Now()))
	_, _ = fmt.Fprintf(out, "Credentials saved to: %s\n", store.ConfigPath())
	return nil
}

// normalizeServerURL defaults the scheme to http and drops trailing slashes.
func normalizeServerURL(raw string) (string, error) {
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("invalid server URL: %q has no host", raw)
	}
	return strings.TrimRight(parsed.String(), "/"), nil
}
