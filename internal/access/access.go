// Package access classifies callers for queue visibility. Floor staff see
// and manage the full lists; everyone else only sees their own spot.
package access

// Role is a named role attached to a player account.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleFloor         Role = "floor"
	RolePlayer        Role = "player"
)

// Caller is the access class derived from a role set.
type Caller int

const (
	CallerPlayer Caller = iota
	CallerStaff
)

func (c Caller) String() string {
	if c == CallerStaff {
		return "staff"
	}
	return "player"
}

// staffRoles are the roles whose presence makes a caller floor staff.
var staffRoles = []Role{RoleAdministrator, RoleFloor}

// ClassifyCaller classifies a role set. A caller is staff iff the set
// intersects {administrator, floor}. Pure and total; the role set is always
// passed explicitly, never read from ambient request state.
func ClassifyCaller(roles []Role) Caller {
	for _, r := range roles {
		for _, s := range staffRoles {
			if r == s {
				return CallerStaff
			}
		}
	}
	return CallerPlayer
}

// IsStaff is a convenience wrapper over ClassifyCaller for string role sets
// as stored on player rows.
func IsStaff(roles []string) bool {
	rs := make([]Role, len(roles))
	for i, r := range roles {
		rs[i] = Role(r)
	}
	return ClassifyCaller(rs) == CallerStaff
}
