package apiclient

import (
	"context"
)

// GroupMember links a group to one experimenter.
type GroupMember struct {
	ExperimenterID int64 `json:"experimenter_id"`
	Role           Role  `json:"role"`
}

// Group represents a group on the lab server.
type Group struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Members     []GroupMember `json:"members,omitempty"`
}

// MemberIDs returns the ids of every experimenter in the group, owners
// included, in server order.
func (g *Group) MemberIDs() []int64 {
	ids := make([]int64, 0, len(g.Members))
	for _, m := range g.Members {
		ids = append(ids, m.ExperimenterID)
	}
	return ids
}

// OwnerIDs returns the ids of the group's owners.
func (g *Group) OwnerIDs() []int64 {
	var ids []int64
	for _, m := range g.Members {
		if m.Role == RoleOwner {
			ids = append(ids, m.ExperimenterID)
		}
	}
	return ids
}

// MembersRequest names the experimenters affected by a membership change.
type MembersRequest struct {
	ExperimenterIDs []int64 `json:"experimenter_ids"`
}

// LookupGroup returns the group with the given name.
func (c *Client) LookupGroup(ctx context.Context, name string) (*Group, error) {
	return getResource[Group](ctx, c, resourcePath("/api/v1/groups/by-name/%s", name))
}

// GetGroup returns the group with the given id.
func (c *Client) GetGroup(ctx context.Context, id int64) (*Group, error) {
	return getResource[Group](ctx, c, resourcePath("/api/v1/groups/%d", id))
}

// AddUsersToGroup adds experimenters to a group as plain members.
func (c *Client) AddUsersToGroup(ctx context.Context, groupID int64, experimenterIDs []int64) error {
	return c.post(ctx, resourcePath("/api/v1/groups/%d/members", groupID), &MembersRequest{ExperimenterIDs: experimenterIDs}, nil)
}

// RemoveUsersFromGroup removes experimenters from a group.
func (c *Client) RemoveUsersFromGroup(ctx context.Context, groupID int64, experimenterIDs []int64) error {
	return c.delete(ctx, resourcePath("/api/v1/groups/%d/members", groupID), &MembersRequest{ExperimenterIDs: experimenterIDs}, nil)
}

// AddOwnersToGroup makes experimenters owners of a group.
func (c *Client) AddOwnersToGroup(ctx context.Context, groupID int64, experimenterIDs []int64) error {
	return c.post(ctx, resourcePath("/api/v1/groups/%d/owners", groupID), &MembersRequest{ExperimenterIDs: experimenterIDs}, nil)
}

// RemoveOwnersFromGroup removes experimenters from a group's owner list.
func (c *Client) RemoveOwnersFromGroup(ctx context.Context, groupID int64, experimenterIDs []int64) error {
	return c.delete(ctx, resourcePath("/api/v1/groups/%d/owners", groupID), &MembersRequest{ExperimenterIDs: experimenterIDs}, nil)
}
