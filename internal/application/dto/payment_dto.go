package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePaymentRequest a manager recording money collected for a job.
type CreatePaymentRequest struct {
	JobID       string          `json:"job_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentType string          `json:"payment_type"`
	Notes       string          `json:"notes"`
}

// PaymentListQuery query string of GET /payments. Confirmed is "", "true" or "false".
type PaymentListQuery struct {
	JobID     string `query:"job_id"`
	Confirmed string `query:"confirmed"`
}

// PaymentResponse a payment with display fields of its job and collector.
type PaymentResponse struct {
	ID               string          `json:"id"`
	JobID            string          `json:"job_id"`
	Amount           decimal.Decimal `json:"amount"`
	PaymentType      string          `json:"payment_type"`
	Notes            string          `json:"notes"`
	CollectedBy      string          `json:"collected_by_manager_id"`
	ManagerName      string          `json:"manager_name"`
	CustomerName     string          `json:"customer_name,omitempty"`
	VehicleNumber    string          `json:"vehicle_number,omitempty"`
	ConfirmedByOwner bool            `json:"confirmed_by_owner"`
	PaymentDate      time.Time       `json:"payment_date"`
	ConfirmationDate *time.Time      `json:"confirmation_date"`
}

// RecordPaymentResponse the new payment and the job financials it produced.
type RecordPaymentResponse struct {
	Payment         PaymentResponse `json:"payment"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	JobStatus       string          `json:"job_status"`
}

// CreateSettlementRequest a manager handing over collected cash.
type CreateSettlementRequest struct {
	Amount decimal.Decimal `json:"amount"`
	JobIDs []string        `json:"job_ids"`
	Notes  string          `json:"notes"`
}

// SettlementListQuery query string of GET /settlements.
type SettlementListQuery struct {
	Confirmed string `query:"confirmed"`
}

// SettlementResponse a settlement batch.
type SettlementResponse struct {
	ID               string          `json:"id"`
	WorkshopID       string          `json:"workshop_id"`
	ManagerID        string          `json:"manager_id"`
	ManagerName      string          `json:"manager_name"`
	JobIDs           []string        `json:"job_ids"`
	Amount           decimal.Decimal `json:"amount"`
	Notes            string          `json:"notes"`
	SubmittedDate    time.Time       `json:"submitted_date"`
	ConfirmedByOwner bool            `json:"confirmed_by_owner"`
	ConfirmationDate *time.Time      `json:"confirmation_date"`
}
