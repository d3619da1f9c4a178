package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/revops-api/internal/application/dto"
)

// DashboardCache stores computed dashboards per workshop. Get reports a miss
// with ok=false and a nil error.
type DashboardCache interface {
	Get(ctx context.Context, workshopID string) (d *dto.DashboardResponse, ok bool, err error)
	Set(ctx context.Context, workshopID string, d *dto.DashboardResponse) error
	Delete(ctx context.Context, workshopID string) error
	// Workshops lists the workshops that currently have a cached dashboard.
	Workshops(ctx context.Context) ([]string, error)
}

// ExportRow one line of the jobs spreadsheet.
type ExportRow struct {
	JobID           string
	CustomerName    string
	Phone           string
	VehicleNumber   string
	CarModel        string
	WorkDescription string
	EstimatedAmount decimal.Decimal
	AdvancePaid     decimal.Decimal
	TotalPaid       decimal.Decimal
	Remaining       decimal.Decimal
	Status          string
	CreatedAt       time.Time
	CompletedAt     *time.Time
}

// JobExporter renders export rows into a spreadsheet file.
type JobExporter interface {
	ExportJobs(rows []ExportRow) ([]byte, error)
}
