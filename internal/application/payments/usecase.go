// Package payments reconciles money: managers record customer payments and
// submit settlements, owners confirm both. Confirmation is one-way.
package payments

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/revops-api/internal/application/auth"
	"github.com/jhoicas/revops-api/internal/application/dto"
	"github.com/jhoicas/revops-api/internal/application/jobs"
	"github.com/jhoicas/revops-api/internal/domain"
	"github.com/jhoicas/revops-api/internal/domain/entity"
	"github.com/jhoicas/revops-api/internal/domain/job"
	"github.com/jhoicas/revops-api/internal/domain/repository"
	"github.com/jhoicas/revops-api/pkg/currency"
)

// PaymentUseCase payments and settlements.
type PaymentUseCase struct {
	jobs        *jobs.JobUseCase
	jobRepo     repository.JobRepository
	payments    repository.PaymentRepository
	settlements repository.SettlementRepository
	workshops   repository.WorkshopRepository
	tx          repository.TxRunner
	invalidator jobs.DashboardInvalidator
	locale      string
	now         func() time.Time
}

// Deps groups the ports of PaymentUseCase.
type Deps struct {
	Jobs        *jobs.JobUseCase
	JobRepo     repository.JobRepository
	Payments    repository.PaymentRepository
	Settlements repository.SettlementRepository
	Workshops   repository.WorkshopRepository
	Tx          repository.TxRunner       // writes a payment and its timeline entry together
	Invalidator jobs.DashboardInvalidator // optional
	Locale      string                    // digit locale of amounts in the timeline
}

// NewPaymentUseCase builds the use case.
func NewPaymentUseCase(d Deps) *PaymentUseCase {
	uc := &PaymentUseCase{
		jobs:        d.Jobs,
		jobRepo:     d.JobRepo,
		payments:    d.Payments,
		settlements: d.Settlements,
		workshops:   d.Workshops,
		tx:          d.Tx,
		invalidator: d.Invalidator,
		locale:      d.Locale,
		now:         time.Now,
	}
	if uc.invalidator == nil {
		uc.invalidator = nopInvalidator{}
	}
	return uc
}

type nopInvalidator struct{}

func (nopInvalidator) Invalidate(context.Context, string) {}

// Record stores an unconfirmed payment collected by the manager on one of their jobs.
func (uc *PaymentUseCase) Record(ctx context.Context, actor auth.SessionUser, in dto.CreatePaymentRequest) (*dto.RecordPaymentResponse, error) {
	if actor.Role != entity.RoleManager {
		return nil, domain.ErrForbidden
	}
	if !in.Amount.IsPositive() {
		return nil, domain.Invalid("amount", "must be greater than zero")
	}
	kind := entity.PaymentType(strings.ToLower(strings.TrimSpace(in.PaymentType)))
	if !kind.Valid() {
		return nil, domain.Invalid("payment_type", "must be advance, partial or final")
	}
	j, err := uc.jobs.Load(ctx, actor, in.JobID)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	p := &entity.Payment{
		ID:          uuid.New().String(),
		JobID:       j.ID,
		Amount:      in.Amount,
		PaymentType: kind,
		Notes:       strings.TrimSpace(in.Notes),
		CollectedBy: actor.ID,
		PaymentDate: now,
	}
	f, err := uc.formatter(ctx, j.WorkshopID)
	if err != nil {
		return nil, err
	}
	err = uc.tx.RunJob(ctx, func(repos repository.JobRepos) error {
		if err := repos.Payments.Create(ctx, p); err != nil {
			return err
		}
		return repos.Jobs.AddUpdate(ctx, &entity.JobUpdate{
			ID:          uuid.New().String(),
			JobID:       j.ID,
			UpdatedBy:   actor.ID,
			UpdateType:  entity.UpdatePayment,
			Description: fmt.Sprintf("Payment of %s recorded (%s)", f.Format(p.Amount), p.PaymentType),
			Timestamp:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx, j.WorkshopID)

	all, err := uc.payments.List(ctx, repository.PaymentFilter{JobIDs: []string{j.ID}})
	if err != nil {
		return nil, err
	}
	fin := job.ComputeFinancials(j.EstimatedAmount, all)
	stored, err := uc.payments.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		stored = p
	}
	return &dto.RecordPaymentResponse{
		Payment:         jobs.ToPaymentResponse(stored),
		TotalPaid:       fin.TotalPaid,
		RemainingAmount: fin.Remaining,
		JobStatus:       string(j.Status),
	}, nil
}

// List returns the manager's collections or the payments of the owner's workshop.
func (uc *PaymentUseCase) List(ctx context.Context, actor auth.SessionUser, q dto.PaymentListQuery) ([]dto.PaymentResponse, error) {
	confirmed, err := ParseConfirmed(q.Confirmed)
	if err != nil {
		return nil, err
	}
	f := repository.PaymentFilter{Confirmed: confirmed}
	if id := strings.TrimSpace(q.JobID); id != "" {
		f.JobIDs = []string{id}
	}
	switch actor.Role {
	case entity.RoleManager:
		f.CollectedBy = actor.ID
	case entity.RoleOwner:
		if actor.WorkshopID == "" {
			return []dto.PaymentResponse{}, nil
		}
		f.WorkshopID = actor.WorkshopID
	default:
		return nil, domain.ErrForbidden
	}
	list, err := uc.payments.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, jobs.ToPaymentResponse(p))
	}
	return out, nil
}

// Confirm marks a payment of the owner's workshop as received. Confirming
// twice returns the stored payment unchanged.
func (uc *PaymentUseCase) Confirm(ctx context.Context, actor auth.SessionUser, id string) (*dto.PaymentResponse, error) {
	if actor.Role != entity.RoleOwner {
		return nil, domain.ErrForbidden
	}
	p, err := uc.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	j, err := uc.jobRepo.GetByID(ctx, p.JobID)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, domain.ErrNotFound
	}
	if j.WorkshopID != actor.WorkshopID {
		return nil, domain.ErrForbidden
	}
	if !p.ConfirmedByOwner {
		if p, err = uc.payments.Confirm(ctx, id, uc.now().UTC()); err != nil {
			return nil, err
		}
		uc.invalidator.Invalidate(ctx, j.WorkshopID)
	}
	out := jobs.ToPaymentResponse(p)
	return &out, nil
}

// Submit records a settlement over the manager's own jobs.
func (uc *PaymentUseCase) Submit(ctx context.Context, actor auth.SessionUser, in dto.CreateSettlementRequest) (*dto.SettlementResponse, error) {
	if actor.Role != entity.RoleManager {
		return nil, domain.ErrForbidden
	}
	if actor.WorkshopID == "" {
		return nil, domain.ErrWorkshopRequired
	}
	if !in.Amount.IsPositive() {
		return nil, domain.Invalid("amount", "must be greater than zero")
	}
	ids := dedupe(in.JobIDs)
	if len(ids) == 0 {
		return nil, domain.Invalid("job_ids", "at least one job is required")
	}
	for _, id := range ids {
		if _, err := uc.jobs.Load(ctx, actor, id); err != nil {
			return nil, fmt.Errorf("job %s: %w", id, err)
		}
	}

	s := &entity.Settlement{
		ID:            uuid.New().String(),
		WorkshopID:    actor.WorkshopID,
		ManagerID:     actor.ID,
		JobIDs:        ids,
		Amount:        in.Amount,
		Notes:         strings.TrimSpace(in.Notes),
		SubmittedDate: uc.now().UTC(),
	}
	if err := uc.settlements.Create(ctx, s); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx, s.WorkshopID)
	stored, err := uc.settlements.GetByID(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		stored = s
	}
	return toSettlementResponse(stored), nil
}

// ListSettlements returns the manager's settlements or those of the owner's workshop.
func (uc *PaymentUseCase) ListSettlements(ctx context.Context, actor auth.SessionUser, q dto.SettlementListQuery) ([]dto.SettlementResponse, error) {
	confirmed, err := ParseConfirmed(q.Confirmed)
	if err != nil {
		return nil, err
	}
	f := repository.SettlementFilter{Confirmed: confirmed}
	switch actor.Role {
	case entity.RoleManager:
		f.ManagerID = actor.ID
	case entity.RoleOwner:
		if actor.WorkshopID == "" {
			return []dto.SettlementResponse{}, nil
		}
		f.WorkshopID = actor.WorkshopID
	default:
		return nil, domain.ErrForbidden
	}
	list, err := uc.settlements.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SettlementResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSettlementResponse(s))
	}
	return out, nil
}

// ConfirmSettlement is the settlement counterpart of Confirm.
func (uc *PaymentUseCase) ConfirmSettlement(ctx context.Context, actor auth.SessionUser, id string) (*dto.SettlementResponse, error) {
	if actor.Role != entity.RoleOwner {
		return nil, domain.ErrForbidden
	}
	s, err := uc.settlements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if s.WorkshopID != actor.WorkshopID {
		return nil, domain.ErrForbidden
	}
	if !s.ConfirmedByOwner {
		if s, err = uc.settlements.Confirm(ctx, id, uc.now().UTC()); err != nil {
			return nil, err
		}
		uc.invalidator.Invalidate(ctx, s.WorkshopID)
	}
	return toSettlementResponse(s), nil
}

func (uc *PaymentUseCase) formatter(ctx context.Context, workshopID string) (*currency.Formatter, error) {
	w, err := uc.workshops.GetByID(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	code := ""
	if w != nil {
		code = w.CurrencyCode
	}
	return currency.NewFormatter(code, uc.locale), nil
}

// ParseConfirmed reads the optional confirmed filter: "" means both states.
func ParseConfirmed(s string) (*bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, domain.Invalid("confirmed", "must be true or false")
	}
	return &b, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func toSettlementResponse(s *entity.Settlement) *dto.SettlementResponse {
	return &dto.SettlementResponse{
		ID:               s.ID,
		WorkshopID:       s.WorkshopID,
		ManagerID:        s.ManagerID,
		ManagerName:      s.ManagerName,
		JobIDs:           s.JobIDs,
		Amount:           s.Amount,
		Notes:            s.Notes,
		SubmittedDate:    s.SubmittedDate,
		ConfirmedByOwner: s.ConfirmedByOwner,
		ConfirmationDate: s.ConfirmationDate,
	}
}
