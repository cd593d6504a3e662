package membership

import "fmt"

// Role is an ordinal tenant role. Higher values carry every permission
// of the lower ones, so authorization checks reduce to a comparison.
type Role uint8

const (
	RoleMember Role = iota + 1
	RoleAdmin
	RoleOwner
)

// AtLeast reports whether r carries at least the permissions of min.
func (r Role) AtLeast(min Role) bool {
	return r >= min
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r >= RoleMember && r <= RoleOwner
}

func (r Role) String() string {
	switch r {
	case RoleMember:
		return "member"
	case RoleAdmin:
		return "admin"
	case RoleOwner:
		return "owner"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// ParseRole converts a stored role name back to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "member":
		return RoleMember, nil
	case "admin":
		return RoleAdmin, nil
	case "owner":
		return RoleOwner, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}
