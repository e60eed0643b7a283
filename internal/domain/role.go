package domain

import "strings"

// Role names accepted by the authorization layer. Matching on role names is
// case-insensitive, so "admin" in an X-Required-Roles header is RoleAdmin.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleManager Role = "Manager"
	RoleUser    Role = "User"
)

// ParseRoles splits a comma-separated role list, trimming whitespace and
// dropping empty segments.
func ParseRoles(raw string) []Role {
	parts := strings.Split(raw, ",")
	roles := make([]Role, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		roles = append(roles, Role(trimmed))
	}
	return roles
}

// Is reports whether the role names the same role as other, ignoring case.
func (r Role) Is(other Role) bool {
	return strings.EqualFold(string(r), string(other))
}
