// Package jobs implements the job lifecycle use cases: intake, listing with
// derived financials, detail with timeline, partial updates and status moves.
package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/revops-api/internal/application/auth"
	"github.com/jhoicas/revops-api/internal/application/dto"
	"github.com/jhoicas/revops-api/internal/domain"
	"github.com/jhoicas/revops-api/internal/domain/entity"
	"github.com/jhoicas/revops-api/internal/domain/job"
	"github.com/jhoicas/revops-api/internal/domain/repository"
)

// DashboardInvalidator drops cached analytics of a workshop.
type DashboardInvalidator interface {
	Invalidate(ctx context.Context, workshopID string)
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context, string) {}

// JobUseCase job lifecycle.
type JobUseCase struct {
	jobs        repository.JobRepository
	payments    repository.PaymentRepository
	tx          repository.TxRunner
	policy      job.TransitionPolicy
	invalidator DashboardInvalidator
	now         func() time.Time
}

// NewJobUseCase builds the use case. Writes to a job and its timeline go
// through tx together. invalidator may be nil.
func NewJobUseCase(jobs repository.JobRepository, payments repository.PaymentRepository, tx repository.TxRunner, policy job.TransitionPolicy, invalidator DashboardInvalidator) *JobUseCase {
	if invalidator == nil {
		invalidator = noopInvalidator{}
	}
	return &JobUseCase{jobs: jobs, payments: payments, tx: tx, policy: policy, invalidator: invalidator, now: time.Now}
}

// Create opens a pending job for the manager's workshop.
func (uc *JobUseCase) Create(ctx context.Context, actor auth.SessionUser, in dto.CreateJobRequest) (*dto.JobResponse, error) {
	if actor.Role != entity.RoleManager {
		return nil, domain.ErrForbidden
	}
	if actor.WorkshopID == "" {
		return nil, domain.ErrWorkshopRequired
	}
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	j := &entity.Job{
		ID:                    uuid.New().String(),
		WorkshopID:            actor.WorkshopID,
		ManagerID:             actor.ID,
		CustomerName:          strings.TrimSpace(in.CustomerName),
		Phone:                 strings.TrimSpace(in.Phone),
		CarModel:              strings.TrimSpace(in.CarModel),
		VehicleNumber:         NormalizeVehicleNumber(in.VehicleNumber),
		WorkDescription:       strings.TrimSpace(in.WorkDescription),
		EstimatedAmount:       in.EstimatedAmount,
		AdvancePaid:           in.AdvancePaid,
		PlannedCompletionDays: in.PlannedCompletionDays,
		Address:               strings.TrimSpace(in.Address),
		PartsRequired:         strings.TrimSpace(in.PartsRequired),
		WorkerAssigned:        strings.TrimSpace(in.WorkerAssigned),
		InternalNotes:         strings.TrimSpace(in.InternalNotes),
		Status:                entity.JobPending,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	err := uc.tx.RunJob(ctx, func(repos repository.JobRepos) error {
		if err := repos.Jobs.Create(ctx, j); err != nil {
			return err
		}
		return uc.addUpdate(ctx, repos.Jobs, j.ID, actor.ID, entity.UpdateCreated, "Job created")
	})
	if err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx, j.WorkshopID)

	created, err := uc.jobs.GetByID(ctx, j.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		created = j
	}
	return ToJobResponse(created, job.ComputeFinancials(j.EstimatedAmount, nil), nil, nil), nil
}

// List returns the manager's own jobs or all jobs of the owner's workshop.
func (uc *JobUseCase) List(ctx context.Context, actor auth.SessionUser, q dto.JobListQuery) ([]dto.JobResponse, error) {
	f := repository.JobFilter{}
	if strings.TrimSpace(q.Status) != "" {
		st, err := job.ParseStatus(q.Status)
		if err != nil {
			return nil, err
		}
		f.Status = st
	}
	switch actor.Role {
	case entity.RoleManager:
		f.ManagerID = actor.ID
	case entity.RoleOwner:
		if actor.WorkshopID == "" {
			return []dto.JobResponse{}, nil
		}
		f.WorkshopID = actor.WorkshopID
		f.ManagerID = strings.TrimSpace(q.ManagerID)
	default:
		return nil, domain.ErrForbidden
	}

	list, err := uc.jobs.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.JobResponse, 0, len(list))
	if len(list) == 0 {
		return out, nil
	}
	ids := make([]string, len(list))
	for i, j := range list {
		ids[i] = j.ID
	}
	payments, err := uc.payments.List(ctx, repository.PaymentFilter{JobIDs: ids})
	if err != nil {
		return nil, err
	}
	byJob := make(map[string][]*entity.Payment, len(list))
	for _, p := range payments {
		byJob[p.JobID] = append(byJob[p.JobID], p)
	}
	for _, j := range list {
		out = append(out, *ToJobResponse(j, job.ComputeFinancials(j.EstimatedAmount, byJob[j.ID]), nil, nil))
	}
	return out, nil
}

// Get returns the job with its payments, timeline and financials.
func (uc *JobUseCase) Get(ctx context.Context, actor auth.SessionUser, id string) (*dto.JobResponse, error) {
	j, err := uc.Load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	payments, err := uc.payments.List(ctx, repository.PaymentFilter{JobIDs: []string{j.ID}})
	if err != nil {
		return nil, err
	}
	updates, err := uc.jobs.ListUpdates(ctx, j.ID)
	if err != nil {
		return nil, err
	}
	return ToJobResponse(j, job.ComputeFinancials(j.EstimatedAmount, payments), payments, updates), nil
}

// Load fetches a job the actor may see: a manager their own jobs, an owner
// the jobs of their workshop.
func (uc *JobUseCase) Load(ctx context.Context, actor auth.SessionUser, id string) (*entity.Job, error) {
	j, err := uc.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, domain.ErrNotFound
	}
	if !CanAccess(actor, j) {
		return nil, domain.ErrForbidden
	}
	return j, nil
}

// CanAccess is the read/write access rule for a single job.
func CanAccess(actor auth.SessionUser, j *entity.Job) bool {
	switch actor.Role {
	case entity.RoleManager:
		return j.ManagerID == actor.ID
	case entity.RoleOwner:
		return actor.WorkshopID != "" && j.WorkshopID == actor.WorkshopID
	}
	return false
}

// Update applies the non-nil fields of in. A status change goes through the
// transition policy and stamps completed_at on the first finishing status.
func (uc *JobUseCase) Update(ctx context.Context, actor auth.SessionUser, id string, in dto.UpdateJobRequest) (*dto.JobResponse, error) {
	j, err := uc.Load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	estimate := j.EstimatedAmount
	changed, err := applyPatch(j, in)
	if err != nil {
		return nil, err
	}

	from := j.Status
	to := from
	if in.Status != nil {
		if to, err = job.ParseStatus(*in.Status); err != nil {
			return nil, err
		}
	}

	payments, err := uc.payments.List(ctx, repository.PaymentFilter{JobIDs: []string{j.ID}})
	if err != nil {
		return nil, err
	}
	fin := job.ComputeFinancials(j.EstimatedAmount, payments)
	if err := uc.policy.Check(from, to, fin.Remaining); err != nil {
		return nil, err
	}
	if from == to {
		before := job.ComputeFinancials(estimate, payments).Remaining
		if err := uc.policy.CheckEdit(to, before, fin.Remaining); err != nil {
			return nil, err
		}
	}

	if len(changed) == 0 && from == to {
		return uc.Get(ctx, actor, id)
	}
	now := uc.now().UTC()
	j.Status = to
	if job.IsFinished(to) && j.CompletedAt == nil {
		j.CompletedAt = &now
	}
	j.UpdatedAt = now
	err = uc.tx.RunJob(ctx, func(repos repository.JobRepos) error {
		if err := repos.Jobs.Update(ctx, j); err != nil {
			return err
		}
		if from != to {
			desc := fmt.Sprintf("Status changed from %s to %s", from, to)
			if err := uc.addUpdate(ctx, repos.Jobs, j.ID, actor.ID, entity.UpdateStatus, desc); err != nil {
				return err
			}
		}
		if len(changed) > 0 {
			desc := "Job updated: " + strings.Join(changed, ", ")
			return uc.addUpdate(ctx, repos.Jobs, j.ID, actor.ID, entity.UpdateModified, desc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx, j.WorkshopID)
	return uc.Get(ctx, actor, id)
}

// UpdateStatus moves the job to status.
func (uc *JobUseCase) UpdateStatus(ctx context.Context, actor auth.SessionUser, id, status string) (*dto.JobResponse, error) {
	return uc.Update(ctx, actor, id, dto.UpdateJobRequest{Status: &status})
}

func (uc *JobUseCase) addUpdate(ctx context.Context, jobs repository.JobRepository, jobID, by, kind, desc string) error {
	return jobs.AddUpdate(ctx, &entity.JobUpdate{
		ID:          uuid.New().String(),
		JobID:       jobID,
		UpdatedBy:   by,
		UpdateType:  kind,
		Description: desc,
		Timestamp:   uc.now().UTC(),
	})
}

// NormalizeVehicleNumber trims and uppercases a registration number.
func NormalizeVehicleNumber(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func validateCreate(in dto.CreateJobRequest) error {
	required := []struct{ field, value string }{
		{"customer_name", in.CustomerName},
		{"phone", in.Phone},
		{"car_model", in.CarModel},
		{"vehicle_number", in.VehicleNumber},
		{"work_description", in.WorkDescription},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return domain.Invalid(r.field, "required")
		}
	}
	if !in.EstimatedAmount.IsPositive() {
		return domain.Invalid("estimated_amount", "must be greater than zero")
	}
	if in.AdvancePaid.IsNegative() {
		return domain.Invalid("advance_paid", "cannot be negative")
	}
	if in.PlannedCompletionDays <= 0 {
		return domain.Invalid("planned_completion_days", "must be greater than zero")
	}
	return nil
}

// applyPatch copies the set fields into j and returns the names of the fields that changed.
func applyPatch(j *entity.Job, in dto.UpdateJobRequest) ([]string, error) {
	var changed []string
	setText := func(field string, dst *string, src *string, required bool, norm func(string) string) error {
		if src == nil {
			return nil
		}
		v := norm(*src)
		if required && v == "" {
			return domain.Invalid(field, "required")
		}
		if v != *dst {
			*dst = v
			changed = append(changed, field)
		}
		return nil
	}
	texts := []struct {
		field    string
		dst      *string
		src      *string
		required bool
		norm     func(string) string
	}{
		{"customer_name", &j.CustomerName, in.CustomerName, true, strings.TrimSpace},
		{"phone", &j.Phone, in.Phone, true, strings.TrimSpace},
		{"car_model", &j.CarModel, in.CarModel, true, strings.TrimSpace},
		{"vehicle_number", &j.VehicleNumber, in.VehicleNumber, true, NormalizeVehicleNumber},
		{"work_description", &j.WorkDescription, in.WorkDescription, true, strings.TrimSpace},
		{"address", &j.Address, in.Address, false, strings.TrimSpace},
		{"parts_required", &j.PartsRequired, in.PartsRequired, false, strings.TrimSpace},
		{"worker_assigned", &j.WorkerAssigned, in.WorkerAssigned, false, strings.TrimSpace},
		{"internal_notes", &j.InternalNotes, in.InternalNotes, false, strings.TrimSpace},
	}
	for _, t := range texts {
		if err := setText(t.field, t.dst, t.src, t.required, t.norm); err != nil {
			return nil, err
		}
	}
	if in.EstimatedAmount != nil {
		if !in.EstimatedAmount.IsPositive() {
			return nil, domain.Invalid("estimated_amount", "must be greater than zero")
		}
		if !in.EstimatedAmount.Equal(j.EstimatedAmount) {
			j.EstimatedAmount = *in.EstimatedAmount
			changed = append(changed, "estimated_amount")
		}
	}
	if in.PlannedCompletionDays != nil {
		if *in.PlannedCompletionDays <= 0 {
			return nil, domain.Invalid("planned_completion_days", "must be greater than zero")
		}
		if *in.PlannedCompletionDays != j.PlannedCompletionDays {
			j.PlannedCompletionDays = *in.PlannedCompletionDays
			changed = append(changed, "planned_completion_days")
		}
	}
	return changed, nil
}

// ToJobResponse maps a job with its derived financials.
func ToJobResponse(j *entity.Job, fin job.Financials, payments []*entity.Payment, updates []*entity.JobUpdate) *dto.JobResponse {
	out := &dto.JobResponse{
		ID:                    j.ID,
		WorkshopID:            j.WorkshopID,
		ManagerID:             j.ManagerID,
		ManagerName:           j.ManagerName,
		CustomerName:          j.CustomerName,
		Phone:                 j.Phone,
		CarModel:              j.CarModel,
		VehicleNumber:         j.VehicleNumber,
		WorkDescription:       j.WorkDescription,
		EstimatedAmount:       j.EstimatedAmount,
		AdvancePaid:           j.AdvancePaid,
		PlannedCompletionDays: j.PlannedCompletionDays,
		Address:               j.Address,
		PartsRequired:         j.PartsRequired,
		WorkerAssigned:        j.WorkerAssigned,
		InternalNotes:         j.InternalNotes,
		Status:                string(j.Status),
		CreatedAt:             j.CreatedAt,
		UpdatedAt:             j.UpdatedAt,
		CompletedAt:           j.CompletedAt,
		TotalPaid:             fin.TotalPaid,
		RemainingAmount:       fin.Remaining,
		ConfirmedPaid:         fin.ConfirmedPaid,
		PendingPaid:           fin.PendingPaid,
	}
	for _, p := range payments {
		out.Payments = append(out.Payments, ToPaymentResponse(p))
	}
	for _, u := range updates {
		out.Updates = append(out.Updates, dto.JobUpdateResponse{
			ID:          u.ID,
			UpdatedBy:   u.UpdatedBy,
			UpdateType:  u.UpdateType,
			Description: u.Description,
			Timestamp:   u.Timestamp,
		})
	}
	return out
}

// ToPaymentResponse maps a payment.
func ToPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:               p.ID,
		JobID:            p.JobID,
		Amount:           p.Amount,
		PaymentType:      string(p.PaymentType),
		Notes:            p.Notes,
		CollectedBy:      p.CollectedBy,
		ManagerName:      p.ManagerName,
		CustomerName:     p.CustomerName,
		VehicleNumber:    p.VehicleNumber,
		ConfirmedByOwner: p.ConfirmedByOwner,
		PaymentDate:      p.PaymentDate,
		ConfirmationDate: p.ConfirmationDate,
	}
}

