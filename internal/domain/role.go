package domain

import "strings"

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"

	// Legacy roles still present in stored data; resolvable by lookup but
	// no longer assignable through the API.
	RoleManager Role = "MANAGER"
	RoleGuest   Role = "GUEST"
)

var allRoles = []Role{RoleAdmin, RoleUser, RoleManager, RoleGuest}

// ParseRole resolves a role name case-insensitively.
func ParseRole(s string) (Role, bool) {
	up := Role(strings.ToUpper(strings.TrimSpace(s)))
	for _, r := range allRoles {
		if r == up {
			return r, true
		}
	}
	return "", false
}

// Assignable reports whether the role may be set on a create/update request.
func (r Role) Assignable() bool { return r == RoleAdmin || r == RoleUser }

// RoleNames lists every recognized role, for error messages.
func RoleNames() string {
	names := make([]string, len(allRoles))
	for i, r := range allRoles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
