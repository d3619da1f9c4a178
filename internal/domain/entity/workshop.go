package entity

import "time"

// Workshop a tenant garage. Owned by exactly one owner; managers and jobs reference it.
type Workshop struct {
	ID           string
	OwnerID      string
	Name         string
	Address      string
	Phone        string
	GSTNumber    string
	CurrencyCode string // registry code; unknown codes resolve to the default on read
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
