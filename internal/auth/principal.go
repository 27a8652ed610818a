package auth

import "strings"

// RoleAdmin is the role label that grants user-management rights.
const RoleAdmin = "admin"

// Principal is the acting identity resolved from a verified token. Roles is
// the account's space-separated role-label string (e.g. "admin user").
type Principal struct {
	ID       int64
	Username string
	Roles    string
}

// HasRole reports whether the principal carries the given role label.
func (p Principal) HasRole(role string) bool {
	for _, r := range strings.Fields(p.Roles) {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}
