package admin

import (
	"context"
	"fmt"
	"slices"

	"github.com/marmos91/labctl/pkg/apiclient"
)

const (
	systemGroupID int64 = 0
	userGroupID   int64 = 1
)

type createCall struct {
	Exp          apiclient.NewExperimenter
	Password     *string
	DefaultGroup int64
	OtherGroups  []int64
}

type passwordChange struct {
	Login    string
	Password string
}

type membershipCall struct {
	Method  string
	GroupID int64
	IDs     []int64
}

// fakeService is an in-memory Service. Users and groups stay consistent
// across membership mutations.
type fakeService struct {
	users   []apiclient.Experimenter
	groups  []*apiclient.Group
	session apiclient.SessionContext

	ownPassword string
	nextID      int64
	createErr   error

	created         []createCall
	passwordChanges []passwordChange
	membership      []membershipCall
	verified        []string
}

func newFakeService() *fakeService {
	return &fakeService{
		groups: []*apiclient.Group{
			{ID: systemGroupID, Name: "system"},
			{ID: userGroupID, Name: "user"},
		},
		session:     apiclient.SessionContext{UserID: 0, UserName: "root"},
		ownPassword: "rootpw",
		nextID:      100,
	}
}

func notFound(what string) error {
	return &apiclient.APIError{StatusCode: 404, Code: apiclient.CodeNotFound, Message: what + " not found"}
}

func (f *fakeService) addGroup(id int64, name string) *apiclient.Group {
	g := &apiclient.Group{ID: id, Name: name}
	f.groups = append(f.groups, g)
	return g
}

func (f *fakeService) addUser(exp apiclient.Experimenter) {
	f.users = append(f.users, exp)
	for _, m := range exp.Memberships {
		for _, g := range f.groups {
			if g.ID == m.GroupID {
				g.Members = append(g.Members, apiclient.GroupMember{ExperimenterID: exp.ID, Role: m.Role})
			}
		}
	}
}

func (f *fakeService) mutations() int {
	return len(f.created) + len(f.passwordChanges) + len(f.membership)
}

func (f *fakeService) LookupExperimenters(context.Context) ([]apiclient.Experimenter, error) {
	return slices.Clone(f.users), nil
}

func (f *fakeService) LookupExperimenter(_ context.Context, login string) (*apiclient.Experimenter, error) {
	for i := range f.users {
		if f.users[i].Login == login {
			exp := f.users[i]
			return &exp, nil
		}
	}
	return nil, &apiclient.APIError{StatusCode: 400, Code: apiclient.CodeAPIUsage, Message: "no such user: " + login}
}

func (f *fakeService) GetExperimenter(_ context.Context, id int64) (*apiclient.Experimenter, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			exp := f.users[i]
			return &exp, nil
		}
	}
	return nil, notFound("experimenter")
}

func (f *fakeService) CreateExperimenter(_ context.Context, exp apiclient.NewExperimenter, defaultGroup int64, otherGroups []int64) (int64, error) {
	return f.create(exp, nil, defaultGroup, otherGroups)
}

func (f *fakeService) CreateExperimenterWithPassword(_ context.Context, exp apiclient.NewExperimenter, password string, defaultGroup int64, otherGroups []int64) (int64, error) {
	return f.create(exp, &password, defaultGroup, otherGroups)
}

func (f *fakeService) create(exp apiclient.NewExperimenter, password *string, defaultGroup int64, otherGroups []int64) (int64, error) {
	f.created = append(f.created, createCall{Exp: exp, Password: password, DefaultGroup: defaultGroup, OtherGroups: otherGroups})
	if f.createErr != nil {
		return 0, f.createErr
	}

	id := f.nextID
	f.nextID++

	var memberships []apiclient.Membership
	for _, gid := range append([]int64{defaultGroup}, otherGroups...) {
		memberships = append(memberships, apiclient.Membership{GroupID: gid, Role: apiclient.RoleMember})
	}
	f.addUser(apiclient.Experimenter{
		ID:          id,
		Login:       exp.Login,
		FirstName:   exp.FirstName,
		MiddleName:  exp.MiddleName,
		LastName:    exp.LastName,
		Email:       exp.Email,
		Institution: exp.Institution,
		Memberships: memberships,
	})
	return id, nil
}

func (f *fakeService) ChangePassword(_ context.Context, password string) error {
	f.passwordChanges = append(f.passwordChanges, passwordChange{Login: f.session.UserName, Password: password})
	return nil
}

func (f *fakeService) ChangeUserPassword(_ context.Context, login, password string) error {
	f.passwordChanges = append(f.passwordChanges, passwordChange{Login: login, Password: password})
	return nil
}

func (f *fakeService) LookupGroup(_ context.Context, name string) (*apiclient.Group, error) {
	for _, g := range f.groups {
		if g.Name == name {
			return cloneGroup(g), nil
		}
	}
	return nil, &apiclient.APIError{StatusCode: 400, Code: apiclient.CodeAPIUsage, Message: "no such group: " + name}
}

func (f *fakeService) GetGroup(_ context.Context, id int64) (*apiclient.Group, error) {
	for _, g := range f.groups {
		if g.ID == id {
			return cloneGroup(g), nil
		}
	}
	return nil, notFound("group")
}

func cloneGroup(g *apiclient.Group) *apiclient.Group {
	c := *g
	c.Members = slices.Clone(g.Members)
	return &c
}

func (f *fakeService) group(id int64) (*apiclient.Group, error) {
	for _, g := range f.groups {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, notFound(fmt.Sprintf("group %d", id))
}

func (f *fakeService) AddUsersToGroup(_ context.Context, groupID int64, ids []int64) error {
	f.membership = append(f.membership, membershipCall{"AddUsersToGroup", groupID, ids})
	g, err := f.group(groupID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		g.Members = append(g.Members, apiclient.GroupMember{ExperimenterID: id, Role: apiclient.RoleMember})
	}
	return nil
}

func (f *fakeService) RemoveUsersFromGroup(_ context.Context, groupID int64, ids []int64) error {
	f.membership = append(f.membership, membershipCall{"RemoveUsersFromGroup", groupID, ids})
	g, err := f.group(groupID)
	if err != nil {
		return err
	}
	g.Members = slices.DeleteFunc(g.Members, func(m apiclient.GroupMember) bool {
		return slices.Contains(ids, m.ExperimenterID)
	})
	return nil
}

func (f *fakeService) AddOwnersToGroup(_ context.Context, groupID int64, ids []int64) error {
	f.membership = append(f.membership, membershipCall{"AddOwnersToGroup", groupID, ids})
	g, err := f.group(groupID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		promoted := false
		for i := range g.Members {
			if g.Members[i].ExperimenterID == id {
				g.Members[i].Role = apiclient.RoleOwner
				promoted = true
			}
		}
		if !promoted {
			g.Members = append(g.Members, apiclient.GroupMember{ExperimenterID: id, Role: apiclient.RoleOwner})
		}
	}
	return nil
}

func (f *fakeService) RemoveOwnersFromGroup(_ context.Context, groupID int64, ids []int64) error {
	f.membership = append(f.membership, membershipCall{"RemoveOwnersFromGroup", groupID, ids})
	g, err := f.group(groupID)
	if err != nil {
		return err
	}
	for i := range g.Members {
		if slices.Contains(ids, g.Members[i].ExperimenterID) {
			g.Members[i].Role = apiclient.RoleMember
		}
	}
	return nil
}

func (f *fakeService) GetSecurityRoles(context.Context) (*apiclient.SecurityRoles, error) {
	return &apiclient.SecurityRoles{SystemGroupID: systemGroupID, UserGroupID: userGroupID, GuestGroupID: 2}, nil
}

func (f *fakeService) CurrentSession(context.Context) (*apiclient.SessionContext, error) {
	s := f.session
	return &s, nil
}

func (f *fakeService) SetSecurityPassword(_ context.Context, password string) error {
	f.verified = append(f.verified, password)
	if password != f.ownPassword {
		return &apiclient.APIError{StatusCode: 403, Code: apiclient.CodeSecurityViolation, Message: "bad password"}
	}
	return nil
}

// scriptedPasswords answers password prompts from fixed values.
type scriptedPasswords struct {
	own    string
	newPw  string
	err    error
	labels []string
}

func (s *scriptedPasswords) ReadPassword(label string) (string, error) {
	s.labels = append(s.labels, label)
	return s.own, s.err
}

func (s *scriptedPasswords) ReadNewPassword(reason string) (string, error) {
	s.labels = append(s.labels, reason)
	return s.newPw, s.err
}
