package admin

import (
	"sort"
	"strconv"
	"strings"

	"github.com/marmos91/labctl/pkg/apiclient"
)

// Classification is a user's standing derived from their memberships.
type Classification struct {
	Active   bool
	Admin    bool
	MemberOf []int64
	LeaderOf []int64
}

// Classify sorts exp's memberships in order: the default user group marks
// the user active, the system group marks them admin, owned groups are
// led, and everything else is plain membership.
func Classify(exp apiclient.Experimenter, roles apiclient.SecurityRoles) Classification {
	var c Classification
	for _, m := range exp.Memberships {
		switch {
		case m.GroupID == roles.UserGroupID:
			c.Active = true
		case m.GroupID == roles.SystemGroupID:
			c.Admin = true
		case m.IsOwner():
			c.LeaderOf = append(c.LeaderOf, m.GroupID)
		default:
			c.MemberOf = append(c.MemberOf, m.GroupID)
		}
	}
	return c
}

// DisplayName returns "First Last", or "First Middle Last" when a middle
// name is set.
func DisplayName(exp apiclient.Experimenter) string {
	middle := " "
	if exp.MiddleName != "" {
		middle = " " + exp.MiddleName + " "
	}
	return exp.FirstName + middle + exp.LastName
}

// UserRow is one line of the user listing.
type UserRow struct {
	ID        int64   `json:"id" yaml:"id"`
	Login     string  `json:"login" yaml:"login"`
	FirstName string  `json:"first_name" yaml:"first_name"`
	LastName  string  `json:"last_name" yaml:"last_name"`
	Email     string  `json:"email" yaml:"email"`
	Active    bool    `json:"active" yaml:"active"`
	Admin     bool    `json:"admin" yaml:"admin"`
	MemberOf  []int64 `json:"member_of" yaml:"member_of"`
	LeaderOf  []int64 `json:"leader_of" yaml:"leader_of"`
}

// UserTable renders experimenters as a table sorted by id.
type UserTable []UserRow

// NewUserTable classifies exps and sorts them by ascending id.
func NewUserTable(exps []apiclient.Experimenter, roles apiclient.SecurityRoles) UserTable {
	rows := make(UserTable, 0, len(exps))
	for _, exp := range exps {
		c := Classify(exp, roles)
		rows = append(rows, UserRow{
			ID:        exp.ID,
			Login:     exp.Login,
			FirstName: exp.FirstName,
			LastName:  exp.LastName,
			Email:     exp.Email,
			Active:    c.Active,
			Admin:     c.Admin,
			MemberOf:  nonNilIDs(c.MemberOf),
			LeaderOf:  nonNilIDs(c.LeaderOf),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}

// Headers implements output.TableRenderer.
func (t UserTable) Headers() []string {
	return []string{"ID", "LOGIN", "FIRST NAME", "LAST NAME", "EMAIL", "ACTIVE", "ADMIN", "MEMBER OF", "LEADER OF"}
}

// Rows implements output.TableRenderer.
func (t UserTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, r := range t {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.Login,
			r.FirstName,
			r.LastName,
			r.Email,
			yesOrBlank(r.Active),
			yesOrBlank(r.Admin),
			joinIDs(r.MemberOf),
			joinIDs(r.LeaderOf),
		})
	}
	return rows
}

func yesOrBlank(b bool) string {
	if b {
		return "Yes"
	}
	return ""
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func nonNilIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
