package alumni

import (
	"encoding/json"
	"strings"
)

// UserRole is the account role. It is a closed set: anything other than
// the declared constants is rejected during deserialization.
type UserRole string

const (
	// RoleAdmin manages alumni records, events and directory stats
	RoleAdmin UserRole = "admin"
	// RoleAlumni is a regular member maintaining a single profile
	RoleAlumni UserRole = "alumni"
)

// DefaultRole is assigned when registration omits the role
const DefaultRole = RoleAlumni

// IsValid checks if the role is one of the predefined valid roles
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleAlumni:
		return true
	default:
		return false
	}
}

func (r UserRole) String() string {
	return string(r)
}

// IsAdmin reports whether the role grants admin-only operations
func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// ParseRole maps a wire value to a UserRole. The empty string resolves to
// DefaultRole so callers can treat the field as optional.
func ParseRole(value string) (UserRole, error) {
	switch UserRole(strings.TrimSpace(value)) {
	case "":
		return DefaultRole, nil
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleAlumni:
		return RoleAlumni, nil
	default:
		return "", ErrInvalidRole
	}
}

// UnmarshalJSON rejects any value outside the closed role set. An empty
// string is accepted as "unset" and resolved later through ParseRole.
func (r *UserRole) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return ErrInvalidRole
	}

	if raw == "" {
		*r = ""
		return nil
	}

	role, err := ParseRole(raw)
	if err != nil {
		return err
	}

	*r = role
	return nil
}
