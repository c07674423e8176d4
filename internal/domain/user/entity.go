package user

import (
	"time"
)

// Role controls access to admin operations.
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
)

func (r Role) IsValid() bool {
	return r == RoleEmployee || r == RoleAdmin
}

// User is the account identity the engine receives from the auth layer.
// Account management beyond login is out of scope.
type User struct {
	ID           string
	Email        string
	FullName     string
	Role         Role
	IsApproved   bool
	PasswordHash *string
	GoogleID     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
