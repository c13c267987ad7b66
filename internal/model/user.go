package model

import (
	"strings"
	"time"
)

// Role is a tag granting elevated capabilities to a user.
type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// User mirrors the API's user record.  Verified and CreatedAt are
// assigned by the server and are read-only here.
type User struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Roles     []Role    `json:"roles"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
}

// HasRole reports whether the user carries role r.
func (u User) HasRole(r Role) bool {
	for _, v := range u.Roles {
		if v == r {
			return true
		}
	}
	return false
}

// RolesString joins the role tags for display, e.g. "USER, ADMIN".
func (u User) RolesString() string {
	parts := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		parts = append(parts, string(r))
	}
	return strings.Join(parts, ", ")
}
