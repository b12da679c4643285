package cmdutil

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/marmos91/labctl/internal/admin"
	"github.com/marmos91/labctl/internal/cli/credentials"
	"github.com/marmos91/labctl/internal/cli/output"
	"github.com/marmos91/labctl/pkg/config"
)

func TestBoolToYesNo(t *testing.T) {
	tests := []struct {
		input    bool
		expected string
	}{
		{true, "yes"},
		{false, "no"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := BoolToYesNo(tt.input)
			if result != tt.expected {
				t.Errorf("BoolToYesNo(%v) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestEmptyOr(t *testing.T) {
	if got := EmptyOr("", "-"); got != "-" {
		t.Errorf("EmptyOr(\"\", \"-\") = %q, want \"-\"", got)
	}
	if got := EmptyOr("alice", "-"); got != "alice" {
		t.Errorf("EmptyOr(\"alice\", \"-\") = %q, want \"alice\"", got)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, 0},
		{"plain error", errors.New("boom"), 1},
		{"exit error", &admin.ExitError{Code: admin.ExitUserExists, Message: "User exists"}, 3},
		{"wrapped exit error", fmt.Errorf("add: %w", &admin.ExitError{Code: admin.ExitBadCredentials}), 456},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.expected {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.expected)
			}
		})
	}
}

func resetGlobals(t *testing.T) {
	t.Helper()
	oldFlags, oldConfig := Flags, Config
	Flags = &GlobalFlags{Output: "table"}
	Config = config.GetDefaultConfig()
	t.Cleanup(func() {
		Flags, Config = oldFlags, oldConfig
	})
}

func TestPrintOutput(t *testing.T) {
	resetGlobals(t)

	table := output.NewTableData("NAME")
	table.AddRow("alice")

	var buf bytes.Buffer
	if err := PrintOutput(&buf, []string{}, true, "Nothing here.", output.NewTableData("NAME")); err != nil {
		t.Fatalf("PrintOutput() error = %v", err)
	}
	if buf.String() != "Nothing here.\n" {
		t.Errorf("empty table output = %q, want empty message", buf.String())
	}

	buf.Reset()
	if err := PrintOutput(&buf, []string{"alice"}, false, "Nothing here.", table); err != nil {
		t.Fatalf("PrintOutput() error = %v", err)
	}
	if !strings.Contains(buf.String(), "alice") {
		t.Errorf("table output = %q, want it to contain alice", buf.String())
	}

	Flags.Output = "json"
	buf.Reset()
	if err := PrintOutput(&buf, []string{}, true, "Nothing here.", table); err != nil {
		t.Fatalf("PrintOutput() error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("json output = %q, want []", buf.String())
	}
}

func TestPrintSuccessSkipsStructuredOutput(t *testing.T) {
	resetGlobals(t)
	Flags.NoColor = true

	var buf bytes.Buffer
	PrintSuccess(&buf, "done")
	if buf.String() != "done\n" {
		t.Errorf("PrintSuccess() = %q, want %q", buf.String(), "done\n")
	}

	Flags.Output = "yaml"
	buf.Reset()
	PrintSuccess(&buf, "done")
	if buf.Len() != 0 {
		t.Errorf("PrintSuccess() with yaml output = %q, want nothing", buf.String())
	}
}

func saveContext(t *testing.T, ctx *credentials.Context) {
	t.Helper()
	store, err := credentials.NewStore()
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	if err := store.SetContext("default", ctx); err != nil {
		t.Fatalf("SetContext() error = %v", err)
	}
	if err := store.UseContext("default"); err != nil {
		t.Fatalf("UseContext() error = %v", err)
	}
}

func TestResolveSession(t *testing.T) {
	t.Run("flags bypass the store", func(t *testing.T) {
		resetGlobals(t)
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		Flags.ServerURL = "https://lab.example.org"
		Flags.Token = "tok"

		s, err := ResolveSession()
		if err != nil {
			t.Fatalf("ResolveSession() error = %v", err)
		}
		if s.Client.BaseURL() != "https://lab.example.org" {
			t.Errorf("BaseURL() = %q", s.Client.BaseURL())
		}
	})

	t.Run("stored context", func(t *testing.T) {
		resetGlobals(t)
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		saveContext(t, &credentials.Context{
			ServerURL:    "https://lab.example.org",
			Username:     "root",
			SessionToken: "tok",
			ExpiresAt:    time.Now().Add(time.Hour),
		})

		s, err := ResolveSession()
		if err != nil {
			t.Fatalf("ResolveSession() error = %v", err)
		}
		if s.Username != "root" {
			t.Errorf("Username = %q, want root", s.Username)
		}
		if s.Client.BaseURL() != "https://lab.example.org" {
			t.Errorf("BaseURL() = %q", s.Client.BaseURL())
		}
	})

	t.Run("server flag overrides stored server", func(t *testing.T) {
		resetGlobals(t)
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		saveContext(t, &credentials.Context{ServerURL: "https://old.example.org", SessionToken: "tok"})
		Flags.ServerURL = "https://new.example.org"

		s, err := ResolveSession()
		if err != nil {
			t.Fatalf("ResolveSession() error = %v", err)
		}
		if s.Client.BaseURL() != "https://new.example.org" {
			t.Errorf("BaseURL() = %q, want the flag value", s.Client.BaseURL())
		}
	})

	t.Run("stored server outranks configured server", func(t *testing.T) {
		resetGlobals(t)
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		saveContext(t, &credentials.Context{ServerURL: "https://issuer.example.org", SessionToken: "tok"})
		Config.ServerURL = "https://env.example.org"

		s, err := ResolveSession()
		if err != nil {
			t.Fatalf("ResolveSession() error = %v", err)
		}
		if s.Client.BaseURL() != "https://issuer.example.org" {
			t.Errorf("BaseURL() = %q, want the stored context's server", s.Client.BaseURL())
		}
	})

	t.Run("configured server without stored context", func(t *testing.T) {
		resetGlobals(t)
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		Config.ServerURL = "https://env.example.org"
		Flags.Token = "tok"

		s, err := ResolveSession()
		if err != nil {
			t.Fatalf("ResolveSession() error = %v", err)
		}
		if s.Client.BaseURL() != "https://env.example.org" {
			t.Errorf("BaseURL() = %q, want the configured server", s.Client.BaseURL())
		}
	})

	t.Run("expired session", func(t *testing.T) {
		resetGlobals(t)
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		saveContext(t, &credentials.Context{
			ServerURL:    "https://lab.example.org",
			SessionToken: "tok",
			ExpiresAt:    time.Now().Add(-time.Hour),
		})

		_, err := ResolveSession()
		if err == nil || !strings.Contains(err.Error(), "session expired") {
			t.Errorf("ResolveSession() error = %v, want session expired", err)
		}
	})

	t.Run("not logged in", func(t *testing.T) {
		resetGlobals(t)
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		_, err := ResolveSession()
		if err == nil || !strings.Contains(err.Error(), "not logged in") {
			t.Errorf("ResolveSession() error = %v, want not logged in", err)
		}
	})
}

func TestRunDeleteWithConfirmationForce(t *testing.T) {
	resetGlobals(t)
	Flags.NoColor = true

	called := false
	var buf bytes.Buffer
	err := RunDeleteWithConfirmation(&buf, "Context", "staging", true, func() error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("RunDeleteWithConfirmation() error = %v", err)
	}
	if !called {
		t.Error("delete function was not called")
	}
	if !strings.Contains(buf.String(), "Context 'staging' deleted successfully") {
		t.Errorf("output = %q", buf.String())
	}
}
