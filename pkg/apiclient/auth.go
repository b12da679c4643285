package apiclient

import (
	"context"
	"time"
)

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents the response from the login endpoint.
type LoginResponse struct {
	SessionToken string    `json:"session_token"`
	ExpiresIn    int64     `json:"expires_in,omitempty"` // seconds
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
}

// ExpiresInDuration returns ExpiresIn as a time.Duration.
func (r *LoginResponse) ExpiresInDuration() time.Duration {
	return time.Duration(r.ExpiresIn) * time.Second
}

// Expiry returns the absolute expiry reported by the server, preferring
// ExpiresAt over ExpiresIn. The zero time means no expiry was reported.
func (r *LoginResponse) Expiry(now time.Time) time.Time {
	if !r.ExpiresAt.IsZero() {
		return r.ExpiresAt
	}
	if r.ExpiresIn > 0 {
		return now.Add(r.ExpiresInDuration())
	}
	return time.Time{}
}

// Login authenticates with the server and returns a session token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	req := LoginRequest{
		Username: username,
		Password: password,
	}
	return createResource[LoginResponse](ctx, c, "/api/v1/auth/login", req)
}

// Logout closes the session behind the client's token.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/api/v1/auth/logout", nil, nil)
}
