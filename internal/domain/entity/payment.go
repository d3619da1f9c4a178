package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType classifies a customer payment.
type PaymentType string

// Valid payment types.
const (
	PaymentAdvance PaymentType = "advance"
	PaymentPartial PaymentType = "partial"
	PaymentFinal   PaymentType = "final"
)

// Valid reports whether t is a known payment type.
func (t PaymentType) Valid() bool {
	switch t {
	case PaymentAdvance, PaymentPartial, PaymentFinal:
		return true
	}
	return false
}

// Payment money a manager collected against a job. ConfirmedByOwner only goes false → true.
type Payment struct {
	ID               string
	JobID            string
	Amount           decimal.Decimal
	PaymentType      PaymentType
	Notes            string
	CollectedBy      string // manager user id
	ManagerName      string
	ConfirmedByOwner bool
	PaymentDate      time.Time
	ConfirmationDate *time.Time

	// Filled by list queries.
	CustomerName  string
	VehicleNumber string
}
