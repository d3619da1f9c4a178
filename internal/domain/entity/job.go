package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobStatus position of a job in its lifecycle.
type JobStatus string

// Job statuses. The forward flow is pending → in_progress → waiting_for_parts →
// completed → delivered; credit_pending and closed are side branches.
const (
	JobPending         JobStatus = "pending"
	JobInProgress      JobStatus = "in_progress"
	JobWaitingForParts JobStatus = "waiting_for_parts"
	JobCompleted       JobStatus = "completed"
	JobDelivered       JobStatus = "delivered"
	JobCreditPending   JobStatus = "credit_pending"
	JobClosed          JobStatus = "closed"
)

// JobStatuses the full status domain in display order.
var JobStatuses = []JobStatus{
	JobPending, JobInProgress, JobWaitingForParts, JobCompleted,
	JobDelivered, JobCreditPending, JobClosed,
}

// Job a vehicle repair engagement.
type Job struct {
	ID                    string
	WorkshopID            string
	ManagerID             string // manager user id
	ManagerName           string
	CustomerName          string
	Phone                 string
	CarModel              string
	VehicleNumber         string
	WorkDescription       string
	EstimatedAmount       decimal.Decimal
	AdvancePaid           decimal.Decimal
	PlannedCompletionDays int
	Address               string
	PartsRequired         string
	WorkerAssigned        string
	InternalNotes         string
	Status                JobStatus
	CreatedAt             time.Time
	UpdatedAt             time.Time
	CompletedAt           *time.Time
}

// JobUpdate kinds.
const (
	UpdateCreated  = "created"
	UpdateModified = "modified"
	UpdateStatus   = "status"
	UpdatePayment  = "payment"
)

// JobUpdate one entry of a job's audit timeline.
type JobUpdate struct {
	ID          string
	JobID       string
	UpdatedBy   string
	UpdateType  string
	Description string
	Timestamp   time.Time
}
