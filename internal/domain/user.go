package domain

import "time"

type UserRole string

const (
	UserRoleAdmin UserRole = "ADMIN"
	UserRoleChild UserRole = "CHILD"
)

// Valid reports whether r is one of the two known roles. The auth
// middleware rejects tokens carrying anything else.
func (r UserRole) Valid() bool {
	return r == UserRoleAdmin || r == UserRoleChild
}

type User struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Role      UserRole  `json:"role"`
	PinHash   string    `json:"-"`
	IsActive  bool      `json:"is_active"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}
