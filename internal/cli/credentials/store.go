// Package credentials stores labctl login sessions ("contexts") on disk.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultConfigDir is the directory under $XDG_CONFIG_HOME used by labctl.
	DefaultConfigDir = "labctl"
	// CredentialsFileName is the name of the session file.
	CredentialsFileName = "credentials.json"
	// FilePermissions for the session file (read/write for owner only).
	FilePermissions = 0600
	// DirPermissions for the configuration directory.
	DirPermissions = 0700
	// DefaultContextName names the context created by the first login.
	DefaultContextName = "default"

	// expirySkew treats sessions about to expire as already expired.
	expirySkew = 60 * time.Second
)

var (
	// ErrNoCurrentContext indicates no context is currently set.
	ErrNoCurrentContext = errors.New("no current context set")
	// ErrContextNotFound indicates the requested context doesn't exist.
	ErrContextNotFound = errors.New("context not found")
)

// Context is one saved connection to a lab server.
type Context struct {
	ServerURL    string    `json:"server_url"`
	Username     string    `json:"username,omitempty"`
	SessionToken string    `json:"session_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
}

// IsExpired reports whether the session is expired or about to expire.
// A zero ExpiresAt means the server reported no expiry.
func (c *Context) IsExpired() bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().Add(expirySkew).After(c.ExpiresAt)
}

// IsLoggedIn reports whether the context holds a usable session token.
func (c *Context) IsLoggedIn() bool {
	return c.SessionToken != "" && !c.IsExpired()
}

// file is the on-disk layout.
type file struct {
	CurrentContext string              `json:"current_context"`
	Contexts       map[string]*Context `json:"contexts"`
}

// Store manages session storage and retrieval.
type Store struct {
	path string
	data *file
}

// NewStore opens the session file, creating an empty store if it does not exist.
func NewStore() (*Store, error) {
	path, err := defaultPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// Open opens the session file at path.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		s.data = &file{Contexts: make(map[string]*Context)}
	}
	if s.data.Contexts == nil {
		s.data.Contexts = make(map[string]*Context)
	}
	return s, nil
}

func defaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, DefaultConfigDir, CredentialsFileName), nil
}

func (s *Store) load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	s.data = &file{}
	return json.Unmarshal(raw, s.data)
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), DirPermissions); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, FilePermissions)
}

// GetCurrentContext returns the current context.
func (s *Store) GetCurrentContext() (*Context, error) {
	if s.data.CurrentContext == "" {
		return nil, ErrNoCurrentContext
	}
	return s.GetContext(s.data.CurrentContext)
}

// GetCurrentContextName returns the name of the current context.
func (s *Store) GetCurrentContextName() string {
	return s.data.CurrentContext
}

// GetContext returns a specific context by name.
func (s *Store) GetContext(name string) (*Context, error) {
	ctx, ok := s.data.Contexts[name]
	if !ok {
		return nil, ErrContextNotFound
	}
	return ctx, nil
}

// ListContexts returns all context names in sorted order.
func (s *Store) ListContexts() []string {
	names := make([]string, 0, len(s.data.Contexts))
	for name := range s.data.Contexts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetContext creates or updates a context.
func (s *Store) SetContext(name string, ctx *Context) error {
	s.data.Contexts[name] = ctx
	return s.save()
}

// UseContext switches to a different context.
func (s *Store) UseContext(name string) error {
	if _, ok := s.data.Contexts[name]; !ok {
		return ErrContextNotFound
	}
	s.data.CurrentContext = name
	return s.save()
}

// DeleteContext removes a context.
func (s *Store) DeleteContext(name string) error {
	if _, ok := s.data.Contexts[name]; !ok {
		return ErrContextNotFound
	}

	delete(s.data.Contexts, name)
	if s.data.CurrentContext == name {
		s.data.CurrentContext = ""
	}
	return s.save()
}

// ErrContextExists indicates a rename target is already taken.
var ErrContextExists = errors.New("context already exists")

// RenameContext renames a context, following it if it is current.
func (s *Store) RenameContext(oldName, newName string) error {
	ctx, ok := s.data.Contexts[oldName]
	if !ok {
		return ErrContextNotFound
	}
	if _, taken := s.data.Contexts[newName]; taken {
		return ErrContextExists
	}

	delete(s.data.Contexts, oldName)
	s.data.Contexts[newName] = ctx
	if s.data.CurrentContext == oldName {
		s.data.CurrentContext = newName
	}
	return s.save()
}

// ClearCurrentContext drops the session token of the current context (logout),
// keeping the server URL and username for the next login.
func (s *Store) ClearCurrentContext() error {
	ctx, err := s.GetCurrentContext()
	if err != nil {
		return err
	}

	ctx.SessionToken = ""
	ctx.ExpiresAt = time.Time{}
	return s.save()
}

// ConfigPath returns the path to the session file.
func (s *Store) ConfigPath() string {
	return s.path
}

// TokenExpiry returns the "exp" claim of a JWT session token. The signature
// is not verified: the server remains the authority, the client only uses
// the claim to avoid sending a token it knows is stale. Opaque tokens yield
// the zero time.
func TokenExpiry(token string) time.Time {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
