package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/marmos91/labctl/internal/cli/output"
	"github.com/marmos91/labctl/internal/logger"
	"github.com/marmos91/labctl/pkg/apiclient"
)

// Streams are the destinations of command output. Results go to Out;
// notices about skipped input go to Err.
type Streams struct {
	Out    io.Writer
	Err    io.Writer
	Format output.Format
}

// Dispatcher runs user administration commands against a Service.
type Dispatcher struct {
	svc       Service
	passwords PasswordReader
	out       io.Writer
	errOut    io.Writer
	format    output.Format
}

// NewDispatcher creates a Dispatcher. Nil writers discard output.
func NewDispatcher(svc Service, passwords PasswordReader, streams Streams) *Dispatcher {
	d := &Dispatcher{
		svc:       svc,
		passwords: passwords,
		out:       streams.Out,
		errOut:    streams.Err,
		format:    streams.Format,
	}
	if d.out == nil {
		d.out = io.Discard
	}
	if d.errOut == nil {
		d.errOut = io.Discard
	}
	if d.format == "" {
		d.format = output.FormatTable
	}
	return d
}

// AddArgs are the arguments of Add.
type AddArgs struct {
	Username    string
	FirstName   string
	LastName    string
	MemberOf    []string
	MiddleName  string
	Email       string
	Institution string
	// Password is nil when the user is created without one.
	Password       *string
	Admin          bool
	IgnoreExisting bool
}

// Add creates a user in the groups named by args.MemberOf, the first of
// which becomes the user's default group. The user is always added to the
// platform's user group, and to the system group when args.Admin is set.
func (d *Dispatcher) Add(ctx context.Context, args AddArgs) error {
	if len(args.MemberOf) == 0 {
		return errors.New("at least one group is required")
	}

	existing, found, err := d.findUserByLogin(ctx, args.Username)
	if err != nil {
		return err
	}
	if found {
		msg := fmt.Sprintf("User exists: %s (id=%d)", args.Username, existing.ID)
		if args.IgnoreExisting {
			d.println(msg)
			return nil
		}
		return exitf(ExitUserExists, nil, "%s", msg)
	}

	groupIDs := make([]int64, 0, len(args.MemberOf)+2)
	for _, ref := range args.MemberOf {
		group, found, err := d.findGroup(ctx, ref)
		if err != nil {
			return err
		}
		if !found {
			return exitf(ExitSecurityViolation, nil, "Unknown group: %s", ref)
		}
		groupIDs = append(groupIDs, group.ID)
	}

	roles, err := d.svc.GetSecurityRoles(ctx)
	if err != nil {
		return fmt.Errorf("failed to get security roles: %w", err)
	}
	groupIDs = append(groupIDs, roles.UserGroupID)
	if args.Admin {
		groupIDs = append(groupIDs, roles.SystemGroupID)
	}
	defaultGroup, otherGroups := groupIDs[0], groupIDs[1:]

	exp := apiclient.NewExperimenter{
		Login:       args.Username,
		FirstName:   args.FirstName,
		MiddleName:  args.MiddleName,
		LastName:    args.LastName,
		Email:       args.Email,
		Institution: args.Institution,
	}

	logger.DebugCtx(ctx, "Creating experimenter",
		logger.Username(args.Username),
		logger.GroupID(defaultGroup),
		logger.Count(len(otherGroups)))

	var id int64
	if args.Password == nil {
		id, err = d.svc.CreateExperimenter(ctx, exp, defaultGroup, otherGroups)
	} else {
		id, err = d.svc.CreateExperimenterWithPassword(ctx, exp, *args.Password, defaultGroup, otherGroups)
	}
	if err != nil {
		return classifyCreateError(args.Username, err)
	}

	if args.Password == nil {
		d.printf("Added user %d\n", id)
	} else {
		d.printf("Added user %d with password\n", id)
	}
	return nil
}

func classifyCreateError(login string, err error) error {
	switch {
	case apiclient.IsConflict(err):
		return exitf(ExitDuplicateUser, err, "User already exists: %s", login)
	case apiclient.IsValidation(err):
		return exitf(ExitValidation, err, "Unknown ValidationException: %s", apiclient.Message(err))
	case apiclient.IsSecurityViolation(err), apiclient.IsAuthError(err):
		return exitf(ExitSecurityViolation, err, "Security violation: %s", apiclient.Message(err))
	default:
		return fmt.Errorf("failed to create user: %w", err)
	}
}

// List writes every user sorted by id, with their derived standing.
func (d *Dispatcher) List(ctx context.Context) error {
	exps, err := d.svc.LookupExperimenters(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	roles, err := d.svc.GetSecurityRoles(ctx)
	if err != nil {
		return fmt.Errorf("failed to get security roles: %w", err)
	}

	table := NewUserTable(exps, *roles)
	return output.Render(d.out, d.format, table, table)
}

// EmailArgs are the arguments of Email.
type EmailArgs struct {
	// Names prefixes each address with the quoted display name.
	Names bool
	// One writes one entry per line instead of a comma-separated list.
	One bool
	// Ignore suppresses the report of users without an address.
	Ignore bool
}

// Email writes the email addresses of all users in server order.
func (d *Dispatcher) Email(ctx context.Context, args EmailArgs) error {
	exps, err := d.svc.LookupExperimenters(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	var records []string
	var missing []apiclient.Experimenter
	for _, exp := range exps {
		if exp.Email == "" {
			if !args.Ignore {
				missing = append(missing, exp)
			}
			continue
		}
		if args.Names {
			records = append(records, fmt.Sprintf(`"%s" <%s>`, DisplayName(exp), exp.Email))
		} else {
			records = append(records, exp.Email)
		}
	}

	if args.One {
		for _, r := range records {
			d.println(r)
		}
	} else {
		d.println(strings.Join(records, ", "))
	}

	if len(missing) > 0 {
		_, _ = fmt.Fprintln(d.errOut, "Missing email addresses:")
		for _, exp := range missing {
			_, _ = fmt.Fprintln(d.errOut, DisplayName(exp))
		}
	}
	return nil
}

// PasswordArgs are the arguments of Password.
type PasswordArgs struct {
	// Username is the user whose password changes; empty means the caller.
	Username string
}

// Password verifies the caller's own password, then sets a new one for the
// caller or for args.Username.
func (d *Dispatcher) Password(ctx context.Context, args PasswordArgs) error {
	session, err := d.svc.CurrentSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current session: %w", err)
	}
	own := session.UserName

	ownPassword, err := d.passwords.ReadPassword(fmt.Sprintf("Please enter password for your user (%s): ", own))
	if err != nil {
		return err
	}
	if err := d.svc.SetSecurityPassword(ctx, ownPassword); err != nil {
		if apiclient.IsSecurityViolation(err) {
			logger.DebugCtx(ctx, "Password verification rejected", logger.Username(own), logger.Err(err))
			return exitf(ExitBadCredentials, err, "SecurityViolation: Bad credentials")
		}
		return fmt.Errorf("failed to verify password: %w", err)
	}
	d.println("Verified password.")
	d.println()

	target := own
	if args.Username != "" {
		target = args.Username
	}
	d.printf("Changing password for %s\n", target)

	password, err := d.passwords.ReadNewPassword(" to be set")
	if err != nil {
		return err
	}

	if args.Username != "" {
		err = d.svc.ChangeUserPassword(ctx, args.Username, password)
	} else {
		err = d.svc.ChangePassword(ctx, password)
	}
	if err != nil {
		return fmt.Errorf("failed to change password for %s: %w", target, err)
	}

	d.println("Password changed")
	return nil
}

func (d *Dispatcher) println(args ...any) {
	_, _ = fmt.Fprintln(d.out, args...)
}

func (d *Dispatcher) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(d.out, format, args...)
}
