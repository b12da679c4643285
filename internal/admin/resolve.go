package admin

import (
	"context"
	"fmt"
	"strconv"

	"github.com/marmos91/labctl/pkg/apiclient"
)

// isNumeric reports whether ref is a non-empty string of ASCII digits.
func isNumeric(ref string) bool {
	if ref == "" {
		return false
	}
	for _, r := range ref {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// findGroup resolves ref by id when it is numeric, by name otherwise.
// A group the server cannot find is reported as found == false.
func (d *Dispatcher) findGroup(ctx context.Context, ref string) (*apiclient.Group, bool, error) {
	var (
		group *apiclient.Group
		err   error
	)
	if isNumeric(ref) {
		id, perr := strconv.ParseInt(ref, 10, 64)
		if perr != nil {
			return nil, false, nil
		}
		group, err = d.svc.GetGroup(ctx, id)
	} else {
		group, err = d.svc.LookupGroup(ctx, ref)
	}
	if err != nil {
		if apiclient.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to look up group %s: %w", ref, err)
	}
	return group, true, nil
}

// resolveGroups resolves every ref, warning about the unknown ones. It fails
// only when none resolve.
func (d *Dispatcher) resolveGroups(ctx context.Context, refs []string) ([]*apiclient.Group, error) {
	groups := make([]*apiclient.Group, 0, len(refs))
	for _, ref := range refs {
		group, found, err := d.findGroup(ctx, ref)
		if err != nil {
			return nil, err
		}
		if !found {
			_, _ = fmt.Fprintf(d.errOut, "Unknown group: %s\n", ref)
			continue
		}
		groups = append(groups, group)
	}
	if len(groups) == 0 {
		return nil, exitf(ExitNoGroup, nil, "No group found")
	}
	return groups, nil
}

func (d *Dispatcher) findUserByLogin(ctx context.Context, login string) (*apiclient.Experimenter, bool, error) {
	exp, err := d.svc.LookupExperimenter(ctx, login)
	if err != nil {
		if apiclient.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to look up user %s: %w", login, err)
	}
	return exp, true, nil
}

func (d *Dispatcher) findUserByID(ctx context.Context, id int64) (*apiclient.Experimenter, bool, error) {
	exp, err := d.svc.GetExperimenter(ctx, id)
	if err != nil {
		if apiclient.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to look up user %d: %w", id, err)
	}
	return exp, true, nil
}

// resolveUser selects the user by args.ID, args.Name, or the caller's own
// login. An unknown user is fatal.
func (d *Dispatcher) resolveUser(ctx context.Context, args MembershipArgs) (*apiclient.Experimenter, error) {
	var (
		exp   *apiclient.Experimenter
		found bool
		err   error
		ref   string
	)

	switch {
	case args.ID != "":
		ref = args.ID
		if !isNumeric(args.ID) {
			return nil, exitf(ExitInvalidUserID, nil, "Not a valid user ID: %s", args.ID)
		}
		id, perr := strconv.ParseInt(args.ID, 10, 64)
		if perr != nil {
			return nil, exitf(ExitInvalidUserID, perr, "Not a valid user ID: %s", args.ID)
		}
		exp, found, err = d.findUserByID(ctx, id)
	case args.Name != "":
		ref = args.Name
		exp, found, err = d.findUserByLogin(ctx, args.Name)
	default:
		session, serr := d.svc.CurrentSession(ctx)
		if serr != nil {
			return nil, fmt.Errorf("failed to get current session: %w", serr)
		}
		ref = session.UserName
		exp, found, err = d.findUserByLogin(ctx, session.UserName)
	}

	if err != nil {
		return nil, err
	}
	if !found {
		return nil, exitf(ExitUnknownUser, nil, "Unknown user: %s", ref)
	}
	return exp, nil
}
