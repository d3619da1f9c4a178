package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/revops-api/internal/application/auth"
	"github.com/jhoicas/revops-api/internal/domain"
	"github.com/jhoicas/revops-api/internal/domain/entity"
	"github.com/jhoicas/revops-api/internal/domain/job"
	"github.com/jhoicas/revops-api/internal/domain/repository"
)

// ExportUseCase produces the jobs spreadsheet of a workshop.
type ExportUseCase struct {
	jobs     repository.JobRepository
	payments repository.PaymentRepository
	exporter JobExporter
}

// NewExportUseCase builds the use case.
func NewExportUseCase(jobs repository.JobRepository, payments repository.PaymentRepository, exporter JobExporter) *ExportUseCase {
	return &ExportUseCase{jobs: jobs, payments: payments, exporter: exporter}
}

// Export returns the xlsx bytes and a file name for the owner's workshop.
func (uc *ExportUseCase) Export(ctx context.Context, actor auth.SessionUser) ([]byte, string, error) {
	if actor.Role != entity.RoleOwner {
		return nil, "", domain.ErrForbidden
	}
	if actor.WorkshopID == "" {
		return nil, "", domain.ErrWorkshopRequired
	}
	list, err := uc.jobs.List(ctx, repository.JobFilter{WorkshopID: actor.WorkshopID})
	if err != nil {
		return nil, "", err
	}
	payments, err := uc.payments.List(ctx, repository.PaymentFilter{WorkshopID: actor.WorkshopID})
	if err != nil {
		return nil, "", err
	}
	byJob := make(map[string][]*entity.Payment, len(list))
	for _, p := range payments {
		byJob[p.JobID] = append(byJob[p.JobID], p)
	}

	rows := make([]ExportRow, 0, len(list))
	for _, j := range list {
		fin := job.ComputeFinancials(j.EstimatedAmount, byJob[j.ID])
		rows = append(rows, ExportRow{
			JobID:           j.ID,
			CustomerName:    j.CustomerName,
			Phone:           j.Phone,
			VehicleNumber:   j.VehicleNumber,
			CarModel:        j.CarModel,
			WorkDescription: j.WorkDescription,
			EstimatedAmount: j.EstimatedAmount,
			AdvancePaid:     j.AdvancePaid,
			TotalPaid:       fin.TotalPaid,
			Remaining:       fin.Remaining,
			Status:          string(j.Status),
			CreatedAt:       j.CreatedAt,
			CompletedAt:     j.CompletedAt,
		})
	}
	data, err := uc.exporter.ExportJobs(rows)
	if err != nil {
		return nil, "", fmt.Errorf("export jobs: %w", err)
	}
	return data, "jobs_export.xlsx", nil
}
