package admin

import (
	"context"
	"fmt"
	"slices"

	"github.com/marmos91/labctl/internal/logger"
	"github.com/marmos91/labctl/pkg/apiclient"
)

// MembershipArgs are the arguments of JoinGroup and LeaveGroup.
type MembershipArgs struct {
	// Groups are group ids or names.
	Groups []string
	// ID and Name select the user; both empty means the caller.
	ID      string
	Name    string
	AsOwner bool
}

// JoinGroup adds the selected user to each group, or to its owner list
// with args.AsOwner. Groups the user already belongs to are skipped.
func (d *Dispatcher) JoinGroup(ctx context.Context, args MembershipArgs) error {
	return d.changeMembership(ctx, args, true)
}

// LeaveGroup removes the selected user from each group, or from its owner
// list with args.AsOwner. Groups the user does not belong to are skipped.
func (d *Dispatcher) LeaveGroup(ctx context.Context, args MembershipArgs) error {
	return d.changeMembership(ctx, args, false)
}

func (d *Dispatcher) changeMembership(ctx context.Context, args MembershipArgs, join bool) error {
	if args.ID != "" && args.Name != "" {
		return fmt.Errorf("--id and --name are mutually exclusive")
	}

	user, err := d.resolveUser(ctx, args)
	if err != nil {
		return err
	}
	groups, err := d.resolveGroups(ctx, args.Groups)
	if err != nil {
		return err
	}

	pending := d.filterGroups(groups, user.ID, args.AsOwner, join)
	for _, g := range pending {
		if err := d.applyMembership(ctx, g.ID, user.ID, args.AsOwner, join); err != nil {
			return err
		}
	}
	return nil
}

// filterGroups drops the groups where the change would be a no-op and
// reports each one on the error stream.
func (d *Dispatcher) filterGroups(groups []*apiclient.Group, uid int64, owner, join bool) []*apiclient.Group {
	relation := "in"
	if owner {
		relation = "owner of"
	}

	kept := make([]*apiclient.Group, 0, len(groups))
	for _, g := range groups {
		ids := g.MemberIDs()
		if owner {
			ids = g.OwnerIDs()
		}
		has := slices.Contains(ids, uid)

		switch {
		case join && has:
			_, _ = fmt.Fprintf(d.errOut, "%d is already %s group %d\n", uid, relation, g.ID)
		case !join && !has:
			_, _ = fmt.Fprintf(d.errOut, "%d is not %s group %d\n", uid, relation, g.ID)
		default:
			kept = append(kept, g)
		}
	}
	return kept
}

func (d *Dispatcher) applyMembership(ctx context.Context, groupID, uid int64, owner, join bool) error {
	ids := []int64{uid}
	role := apiclient.RoleMember
	if owner {
		role = apiclient.RoleOwner
	}
	logger.DebugCtx(ctx, "Changing group membership",
		logger.ExperimenterID(uid), logger.GroupID(groupID), logger.Role(string(role)))

	var (
		err error
		msg string
	)
	switch {
	case join && owner:
		err = d.svc.AddOwnersToGroup(ctx, groupID, ids)
		msg = fmt.Sprintf("Added %d as owner of group %d", uid, groupID)
	case join:
		err = d.svc.AddUsersToGroup(ctx, groupID, ids)
		msg = fmt.Sprintf("Added %d to group %d", uid, groupID)
	case owner:
		err = d.svc.RemoveOwnersFromGroup(ctx, groupID, ids)
		msg = fmt.Sprintf("Removed %d from the owner list of group %d", uid, groupID)
	default:
		err = d.svc.RemoveUsersFromGroup(ctx, groupID, ids)
		msg = fmt.Sprintf("Removed %d from group %d", uid, groupID)
	}
	if err != nil {
		return fmt.Errorf("failed to update group %d: %w", groupID, err)
	}

	d.println(msg)
	return nil
}
