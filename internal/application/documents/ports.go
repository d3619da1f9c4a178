package documents

import (
	"context"
	"time"
)

// JobDocument everything a job card or invoice prints. Amounts arrive
// formatted in the workshop currency.
type JobDocument struct {
	WorkshopName    string
	WorkshopAddress string
	WorkshopPhone   string
	GSTNumber       string

	JobID           string
	ShortID         string
	CustomerName    string
	Phone           string
	Address         string
	VehicleNumber   string
	CarModel        string
	WorkDescription string
	PartsRequired   string
	WorkerAssigned  string
	Status          string
	CreatedAt       time.Time
	CompletedAt     *time.Time

	Estimated string
	Advance   string
	Paid      string
	Balance   string
}

// Renderer draws documents as PDF bytes.
type Renderer interface {
	JobCard(doc JobDocument) ([]byte, error)
	Invoice(doc JobDocument) ([]byte, error)
}

// Archive keeps a copy of every generated document.
type Archive interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
}
