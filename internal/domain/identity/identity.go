package identity

import "fmt"

// Role classifies a caller for policy decisions.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleUser   Role = "USER"
	RoleClient Role = "CLIENT"
	RoleMember Role = "MEMBER"
)

// Caller is the authenticated identity a request runs as. It is supplied by
// the transport context and is never derived from stored data.
type Caller struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// ParseRole converts a wire role string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser, RoleClient, RoleMember:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// User is a stored account. Display fields feed report templating; the
// policy layer only ever consults Caller.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Active bool   `json:"active"`
}
