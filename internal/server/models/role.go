package models

import (
	"fmt"

	"github.com/edusys/eduauth/internal/common"
)

// Role is the closed enumeration of grantable roles. Any name outside the
// enumeration is rejected by ParseRole; there is no implicit coercion.
type Role int

const (
	RoleAdmin Role = iota + 1
	RoleTeacher
	RoleStudent
)

// Roles lists every valid role.
var Roles = []Role{RoleAdmin, RoleTeacher, RoleStudent}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleTeacher:
		return "Teacher"
	case RoleStudent:
		return "Student"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	return r >= RoleAdmin && r <= RoleStudent
}

// ParseRole maps a role name to its Role value. Unknown names yield
// common.ErrUnknownRole wrapped with the offending name.
func ParseRole(name string) (Role, error) {
	switch name {
	case "Admin":
		return RoleAdmin, nil
	case "Teacher":
		return RoleTeacher, nil
	case "Student":
		return RoleStudent, nil
	default:
		return 0, fmt.Errorf("%w: %q", common.ErrUnknownRole, name)
	}
}

// RoleGrant is a row of the user_roles table. The pair (Username, Role) is
// the composite primary key; Username references users.username.
type RoleGrant struct {
	Username string
	Role     Role
}
