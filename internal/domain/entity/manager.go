package entity

import "time"

// Manager links a manager User to a Workshop. Removal only clears IsActive.
type Manager struct {
	ID         string
	UserID     string
	WorkshopID string
	JoinedAt   time.Time
	IsActive   bool

	// User is filled by list queries.
	User *User
}
