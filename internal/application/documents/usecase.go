// Package documents produces the printable job card and invoice of a job.
package documents

import (
	"context"
	"fmt"
	"path"

	"github.com/jhoicas/revops-api/internal/application/auth"
	"github.com/jhoicas/revops-api/internal/application/jobs"
	"github.com/jhoicas/revops-api/internal/domain/entity"
	"github.com/jhoicas/revops-api/internal/domain/job"
	"github.com/jhoicas/revops-api/internal/domain/repository"
	"github.com/jhoicas/revops-api/pkg/currency"
	"github.com/jhoicas/revops-api/pkg/logger"
)

const contentTypePDF = "application/pdf"

// File a generated document.
type File struct {
	Name    string
	Content []byte
}

// DocumentUseCase renders job documents and archives them when an archive is configured.
type DocumentUseCase struct {
	jobs      *jobs.JobUseCase
	payments  repository.PaymentRepository
	workshops repository.WorkshopRepository
	renderer  Renderer
	archive   Archive // optional
	locale    string
	log       *logger.Logger
}

// NewDocumentUseCase builds the use case. archive and log may be nil.
func NewDocumentUseCase(
	jobUC *jobs.JobUseCase,
	payments repository.PaymentRepository,
	workshops repository.WorkshopRepository,
	renderer Renderer,
	archive Archive,
	locale string,
	log *logger.Logger,
) *DocumentUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DocumentUseCase{
		jobs:      jobUC,
		payments:  payments,
		workshops: workshops,
		renderer:  renderer,
		archive:   archive,
		locale:    locale,
		log:       log,
	}
}

// JobCard renders job_card_<id8>.pdf.
func (uc *DocumentUseCase) JobCard(ctx context.Context, actor auth.SessionUser, jobID string) (*File, error) {
	return uc.render(ctx, actor, jobID, "job_card", uc.renderer.JobCard)
}

// Invoice renders invoice_<id8>.pdf.
func (uc *DocumentUseCase) Invoice(ctx context.Context, actor auth.SessionUser, jobID string) (*File, error) {
	return uc.render(ctx, actor, jobID, "invoice", uc.renderer.Invoice)
}

func (uc *DocumentUseCase) render(
	ctx context.Context,
	actor auth.SessionUser,
	jobID, kind string,
	draw func(JobDocument) ([]byte, error),
) (*File, error) {
	j, err := uc.jobs.Load(ctx, actor, jobID)
	if err != nil {
		return nil, err
	}
	doc, err := uc.document(ctx, j)
	if err != nil {
		return nil, err
	}
	content, err := draw(doc)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", kind, err)
	}
	f := &File{Name: fmt.Sprintf("%s_%s.pdf", kind, doc.ShortID), Content: content}

	if uc.archive != nil {
		key := path.Join("documents", j.WorkshopID, f.Name)
		if err := uc.archive.Put(ctx, key, contentTypePDF, content); err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("document archive failed")
		}
	}
	return f, nil
}

func (uc *DocumentUseCase) document(ctx context.Context, j *entity.Job) (JobDocument, error) {
	w, err := uc.workshops.GetByID(ctx, j.WorkshopID)
	if err != nil {
		return JobDocument{}, err
	}
	if w == nil {
		w = &entity.Workshop{}
	}
	payments, err := uc.payments.List(ctx, repository.PaymentFilter{JobIDs: []string{j.ID}})
	if err != nil {
		return JobDocument{}, err
	}
	fin := job.ComputeFinancials(j.EstimatedAmount, payments)
	f := currency.NewFormatter(w.CurrencyCode, uc.locale)

	return JobDocument{
		WorkshopName:    w.Name,
		WorkshopAddress: w.Address,
		WorkshopPhone:   w.Phone,
		GSTNumber:       w.GSTNumber,
		JobID:           j.ID,
		ShortID:         ShortID(j.ID),
		CustomerName:    j.CustomerName,
		Phone:           j.Phone,
		Address:         j.Address,
		VehicleNumber:   j.VehicleNumber,
		CarModel:        j.CarModel,
		WorkDescription: j.WorkDescription,
		PartsRequired:   j.PartsRequired,
		WorkerAssigned:  j.WorkerAssigned,
		Status:          string(j.Status),
		CreatedAt:       j.CreatedAt,
		CompletedAt:     j.CompletedAt,
		Estimated:       f.Format(j.EstimatedAmount),
		Advance:         f.Format(j.AdvancePaid),
		Paid:            f.Format(fin.TotalPaid),
		Balance:         f.Format(fin.Remaining),
	}, nil
}

// ShortID is the first eight characters of id.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
