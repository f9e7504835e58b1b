// Package user provides the account model and its SQLite store.
package user

import (
	"strings"
	"time"
)

// Role determines which listing operations an account may perform.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleRealtor Role = "REALTOR"
	RoleBuyer   Role = "BUYER"
)

// ValidRoles is the set of known roles.
var ValidRoles = []Role{RoleAdmin, RoleRealtor, RoleBuyer}

// ParseRole converts a case-insensitive role name into a Role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.IsValid()
}

// IsValid checks if a role is recognized.
func (r Role) IsValid() bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// Privileged reports whether signing up with this role requires a product key.
func (r Role) Privileged() bool {
	return r == RoleAdmin || r == RoleRealtor
}

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Contact is the public subset of a user shown alongside listings and messages.
type Contact struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
