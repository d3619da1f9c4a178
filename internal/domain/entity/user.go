package entity

import "time"

// Role is fixed at registration and never changes afterwards.
type Role string

// Valid user roles.
const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleManager
}

// User an account of the system. WorkshopID is resolved at read time, empty until the account belongs to a workshop.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string // bcrypt hash, never the plain password
	Role         Role
	WorkshopID   string
	CreatedAt    time.Time
}

// NeedsWorkshopSetup reports whether the user must create a workshop before reaching protected screens.
func (u *User) NeedsWorkshopSetup() bool {
	return u.Role == RoleOwner && u.WorkshopID == ""
}
