package apiclient

import (
	"context"
)

// Role is the relation between an experimenter and a group.
type Role string

const (
	// RoleMember is a plain group membership.
	RoleMember Role = "member"
	// RoleOwner marks the experimenter as an owner (leader) of the group.
	RoleOwner Role = "owner"
)

// Membership links an experimenter to one group.
type Membership struct {
	GroupID int64 `json:"group_id" yaml:"group_id"`
	Role    Role  `json:"role" yaml:"role"`
}

// IsOwner reports whether the membership carries ownership.
func (m Membership) IsOwner() bool {
	return m.Role == RoleOwner
}

// Experimenter is a user account on the lab server.
type Experimenter struct {
	ID          int64        `json:"id" yaml:"id"`
	Login       string       `json:"login" yaml:"login"`
	FirstName   string       `json:"first_name" yaml:"first_name"`
	MiddleName  string       `json:"middle_name,omitempty" yaml:"middle_name,omitempty"`
	LastName    string       `json:"last_name" yaml:"last_name"`
	Email       string       `json:"email,omitempty" yaml:"email,omitempty"`
	Institution string       `json:"institution,omitempty" yaml:"institution,omitempty"`
	Memberships []Membership `json:"memberships,omitempty" yaml:"memberships,omitempty"`
}

// NewExperimenter describes an account to create. IDs are server-assigned.
type NewExperimenter struct {
	Login       string `json:"login"`
	FirstName   string `json:"first_name"`
	MiddleName  string `json:"middle_name,omitempty"`
	LastName    string `json:"last_name"`
	Email       string `json:"email,omitempty"`
	Institution string `json:"institution,omitempty"`
}

// CreateExperimenterRequest is the request to create an experimenter.
type CreateExperimenterRequest struct {
	Experimenter   NewExperimenter `json:"experimenter"`
	Password       *string         `json:"password,omitempty"`
	DefaultGroupID int64           `json:"default_group_id"`
	OtherGroupIDs  []int64         `json:"other_group_ids"`
}

// CreateExperimenterResponse carries the id of a created experimenter.
type CreateExperimenterResponse struct {
	ID int64 `json:"id"`
}

// PasswordRequest carries a single credential.
type PasswordRequest struct {
	Password string `json:"password"`
}

// LookupExperimenters returns all experimenters in server order.
func (c *Client) LookupExperimenters(ctx context.Context) ([]Experimenter, error) {
	return listResources[Experimenter](ctx, c, "/api/v1/experimenters")
}

// LookupExperimenter returns the experimenter with the given login.
// A missing login yields an APIError for which IsNotFound is true.
func (c *Client) LookupExperimenter(ctx context.Context, login string) (*Experimenter, error) {
	return getResource[Experimenter](ctx, c, resourcePath("/api/v1/experimenters/by-login/%s", login))
}

// GetExperimenter returns the experimenter with the given id.
func (c *Client) GetExperimenter(ctx context.Context, id int64) (*Experimenter, error) {
	return getResource[Experimenter](ctx, c, resourcePath("/api/v1/experimenters/%d", id))
}

// CreateExperimenter creates an experimenter without a password.
func (c *Client) CreateExperimenter(ctx context.Context, exp NewExperimenter, defaultGroup int64, otherGroups []int64) (int64, error) {
	return c.createExperimenter(ctx, &CreateExperimenterRequest{
		Experimenter:   exp,
		DefaultGroupID: defaultGroup,
		OtherGroupIDs:  nonNil(otherGroups),
	})
}

// CreateExperimenterWithPassword creates an experimenter with a password.
func (c *Client) CreateExperimenterWithPassword(ctx context.Context, exp NewExperimenter, password string, defaultGroup int64, otherGroups []int64) (int64, error) {
	return c.createExperimenter(ctx, &CreateExperimenterRequest{
		Experimenter:   exp,
		Password:       &password,
		DefaultGroupID: defaultGroup,
		OtherGroupIDs:  nonNil(otherGroups),
	})
}

func (c *Client) createExperimenter(ctx context.Context, req *CreateExperimenterRequest) (int64, error) {
	resp, err := createResource[CreateExperimenterResponse](ctx, c, "/api/v1/experimenters", req)
	if err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// ChangePassword changes the session owner's password.
func (c *Client) ChangePassword(ctx context.Context, password string) error {
	return c.put(ctx, "/api/v1/experimenters/me/password", &PasswordRequest{Password: password}, nil)
}

// ChangeUserPassword changes another experimenter's password (admin operation).
func (c *Client) ChangeUserPassword(ctx context.Context, login, password string) error {
	return c.put(ctx, resourcePath("/api/v1/experimenters/by-login/%s/password", login), &PasswordRequest{Password: password}, nil)
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
