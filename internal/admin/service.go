// Package admin implements the user administration commands: adding and
// listing users, changing passwords, listing email addresses and managing
// group membership. Each operation translates its arguments into a few calls
// on a Service and formats the returned records.
package admin

import (
	"context"

	"github.com/marmos91/labctl/pkg/apiclient"
)

// Service is the remote administration surface used by the Dispatcher.
// *apiclient.Client satisfies it.
type Service interface {
	LookupExperimenters(ctx context.Context) ([]apiclient.Experimenter, error)
	LookupExperimenter(ctx context.Context, login string) (*apiclient.Experimenter, error)
	GetExperimenter(ctx context.Context, id int64) (*apiclient.Experimenter, error)
	CreateExperimenter(ctx context.Context, exp apiclient.NewExperimenter, defaultGroup int64, otherGroups []int64) (int64, error)
	CreateExperimenterWithPassword(ctx context.Context, exp apiclient.NewExperimenter, password string, defaultGroup int64, otherGroups []int64) (int64, error)
	ChangePassword(ctx context.Context, password string) error
	ChangeUserPassword(ctx context.Context, login, password string) error

	LookupGroup(ctx context.Context, name string) (*apiclient.Group, error)
	GetGroup(ctx context.Context, id int64) (*apiclient.Group, error)
	AddUsersToGroup(ctx context.Context, groupID int64, experimenterIDs []int64) error
	RemoveUsersFromGroup(ctx context.Context, groupID int64, experimenterIDs []int64) error
	AddOwnersToGroup(ctx context.Context, groupID int64, experimenterIDs []int64) error
	RemoveOwnersFromGroup(ctx context.Context, groupID int64, experimenterIDs []int64) error

	GetSecurityRoles(ctx context.Context) (*apiclient.SecurityRoles, error)
	CurrentSession(ctx context.Context) (*apiclient.SessionContext, error)
	SetSecurityPassword(ctx context.Context, password string) error
}

// PasswordReader reads passwords without echoing them.
// *prompt.PasswordReader satisfies it.
type PasswordReader interface {
	// ReadPassword prints label and reads one password.
	ReadPassword(label string) (string, error)
	// ReadNewPassword reads a non-empty password and its confirmation.
	ReadNewPassword(reason string) (string, error)
}

var _ Service = (*apiclient.Client)(nil)
