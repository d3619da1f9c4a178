package entity

import "time"

// InviteCode single-use token that lets a manager join one workshop.
type InviteCode struct {
	ID         string
	Code       string
	WorkshopID string
	CreatedBy  string
	IsActive   bool
	UsedBy     *string // nil until consumed
	UsedAt     *time.Time
	CreatedAt  time.Time
}

// Available reports whether the code may still be shown for copy or used to register.
func (c *InviteCode) Available() bool {
	return c.IsActive && c.UsedBy == nil
}
