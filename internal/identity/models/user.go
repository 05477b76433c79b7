package models

import (
	"time"

	"github.com/google/uuid"

	dErrors "github.com/dhanuj00123/HeadlessCms/pkg/domainerrors"
)

// Role identifies a user's access level.
// Invariant: the value must be one of the supported roles.
//
// Construct via ParseRole at trust boundaries to enforce the allowlist;
// direct casting bypasses validation.
type Role string

const (
	RoleUser   Role = "user"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

// validRoles is the single source of truth for valid roles.
var validRoles = map[Role]bool{
	RoleUser:   true,
	RoleEditor: true,
	RoleAdmin:  true,
}

// ParseRole constructs a Role from external input.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !validRoles[r] {
		return "", dErrors.New(dErrors.CodeValidation, "invalid role")
	}
	return r, nil
}

// IsValid reports whether the role is in the closed set.
func (r Role) IsValid() bool { return validRoles[r] }

func (r Role) String() string { return string(r) }

// User is the canonical identity record. GoogleID is the stable identifier
// assigned by the external provider; ID is internal. Both, and Email, are
// unique across the directory.
type User struct {
	ID        uuid.UUID `json:"id"`
	GoogleID  string    `json:"-"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
