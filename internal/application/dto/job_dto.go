package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateJobRequest new job form.
type CreateJobRequest struct {
	CustomerName          string          `json:"customer_name"`
	Phone                 string          `json:"phone"`
	CarModel              string          `json:"car_model"`
	VehicleNumber         string          `json:"vehicle_number"`
	WorkDescription       string          `json:"work_description"`
	EstimatedAmount       decimal.Decimal `json:"estimated_amount"`
	AdvancePaid           decimal.Decimal `json:"advance_paid"`
	PlannedCompletionDays int             `json:"planned_completion_days"`
	Address               string          `json:"address"`
	PartsRequired         string          `json:"parts_required"`
	WorkerAssigned        string          `json:"worker_assigned"`
	InternalNotes         string          `json:"internal_notes"`
}

// UpdateJobRequest partial update; nil fields are left unchanged.
type UpdateJobRequest struct {
	CustomerName          *string          `json:"customer_name"`
	Phone                 *string          `json:"phone"`
	CarModel              *string          `json:"car_model"`
	VehicleNumber         *string          `json:"vehicle_number"`
	WorkDescription       *string          `json:"work_description"`
	EstimatedAmount       *decimal.Decimal `json:"estimated_amount"`
	PlannedCompletionDays *int             `json:"planned_completion_days"`
	Address               *string          `json:"address"`
	PartsRequired         *string          `json:"parts_required"`
	WorkerAssigned        *string          `json:"worker_assigned"`
	InternalNotes         *string          `json:"internal_notes"`
	Status                *string          `json:"status"`
}

// JobListQuery query string of GET /jobs.
type JobListQuery struct {
	Status    string `query:"status"`
	ManagerID string `query:"manager_id"`
}

// JobUpdateResponse one timeline entry.
type JobUpdateResponse struct {
	ID          string    `json:"id"`
	UpdatedBy   string    `json:"updated_by"`
	UpdateType  string    `json:"update_type"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// JobResponse a job with derived financials. Payments and Updates are only
// filled by the detail read.
type JobResponse struct {
	ID                    string              `json:"id"`
	WorkshopID            string              `json:"workshop_id"`
	ManagerID             string              `json:"manager_id"`
	ManagerName           string              `json:"manager_name"`
	CustomerName          string              `json:"customer_name"`
	Phone                 string              `json:"phone"`
	CarModel              string              `json:"car_model"`
	VehicleNumber         string              `json:"vehicle_number"`
	WorkDescription       string              `json:"work_description"`
	EstimatedAmount       decimal.Decimal     `json:"estimated_amount"`
	AdvancePaid           decimal.Decimal     `json:"advance_paid"`
	PlannedCompletionDays int                 `json:"planned_completion_days"`
	Address               string              `json:"address"`
	PartsRequired         string              `json:"parts_required"`
	WorkerAssigned        string              `json:"worker_assigned"`
	InternalNotes         string              `json:"internal_notes"`
	Status                string              `json:"status"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
	CompletedAt           *time.Time          `json:"completed_at"`
	TotalPaid             decimal.Decimal     `json:"total_paid"`
	RemainingAmount       decimal.Decimal     `json:"remaining_amount"`
	ConfirmedPaid         decimal.Decimal     `json:"confirmed_paid"`
	PendingPaid           decimal.Decimal     `json:"pending_paid"`
	Payments              []PaymentResponse   `json:"payments,omitempty"`
	Updates               []JobUpdateResponse `json:"updates,omitempty"`
}
