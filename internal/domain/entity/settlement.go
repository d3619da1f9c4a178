package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement a batch of manager-collected cash across several jobs, confirmed once by the owner.
// JobIDs are weak references.
type Settlement struct {
	ID               string
	WorkshopID       string
	ManagerID        string
	ManagerName      string
	JobIDs           []string
	Amount           decimal.Decimal
	Notes            string
	SubmittedDate    time.Time
	ConfirmedByOwner bool
	ConfirmationDate *time.Time
}
