package apiclient

import (
	"context"
)

// SecurityRoles names the platform's built-in groups.
type SecurityRoles struct {
	RootID        int64 `json:"root_id"`
	SystemGroupID int64 `json:"system_group_id"`
	UserGroupID   int64 `json:"user_group_id"`
	GuestGroupID  int64 `json:"guest_group_id"`
}

// SessionContext describes the caller's session.
type SessionContext struct {
	UserID    int64  `json:"user_id"`
	UserName  string `json:"user_name"`
	GroupID   int64  `json:"group_id"`
	GroupName string `json:"group_name,omitempty"`
	IsAdmin   bool   `json:"is_admin"`
}

// GetSecurityRoles returns the ids of the built-in groups.
func (c *Client) GetSecurityRoles(ctx context.Context) (*SecurityRoles, error) {
	return getResource[SecurityRoles](ctx, c, "/api/v1/security/roles")
}

// CurrentSession returns the identity behind the client's session token.
func (c *Client) CurrentSession(ctx context.Context) (*SessionContext, error) {
	return getResource[SessionContext](ctx, c, "/api/v1/session")
}

// SetSecurityPassword re-verifies the session owner's password. The server
// answers SECURITY_VIOLATION when the password is wrong.
func (c *Client) SetSecurityPassword(ctx context.Context, password string) error {
	return c.post(ctx, "/api/v1/session/security-password", &PasswordRequest{Password: password}, nil)
}
