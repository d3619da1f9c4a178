package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/revops-api/internal/domain"
	"github.com/jhoicas/revops-api/internal/domain/entity"
	"github.com/jhoicas/revops-api/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

// JobRepo JobRepository over PostgreSQL, including the job_updates timeline.
type JobRepo struct {
	q Querier
}

// NewJobRepository builds the job adapter.
func NewJobRepository(q Querier) *JobRepo {
	return &JobRepo{q: q}
}

const jobSelect = `
	SELECT j.id, j.workshop_id, j.manager_id, COALESCE(u.name, ''), j.customer_name, j.phone,
	       j.car_model, j.vehicle_number, j.work_description, j.estimated_amount, j.advance_paid,
	       j.planned_completion_days, j.address, j.parts_required, j.worker_assigned,
	       j.internal_notes, j.status, j.created_at, j.updated_at, j.completed_at
	FROM jobs j
	LEFT JOIN users u ON u.id = j.manager_id`

func (r *JobRepo) Create(ctx context.Context, j *entity.Job) error {
	query := `
		INSERT INTO jobs (id, workshop_id, manager_id, customer_name, phone, car_model, vehicle_number,
		                  work_description, estimated_amount, advance_paid, planned_completion_days,
		                  address, parts_required, worker_assigned, internal_notes, status,
		                  created_at, updated_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		j.ID, j.WorkshopID, j.ManagerID, j.CustomerName, j.Phone, j.CarModel, j.VehicleNumber,
		j.WorkDescription, j.EstimatedAmount, j.AdvancePaid, j.PlannedCompletionDays,
		j.Address, j.PartsRequired, j.WorkerAssigned, j.InternalNotes, string(j.Status),
		j.CreatedAt, j.UpdatedAt, j.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (r *JobRepo) GetByID(ctx context.Context, id string) (*entity.Job, error) {
	j, err := scanJob(r.q.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return j, nil
}

// List newest first.
func (r *JobRepo) List(ctx context.Context, f repository.JobFilter) ([]*entity.Job, error) {
	var w where
	if f.WorkshopID != "" {
		w.add("j.workshop_id = ?", f.WorkshopID)
	}
	if f.ManagerID != "" {
		w.add("j.manager_id = ?", f.ManagerID)
	}
	if f.Status != "" {
		w.add("j.status = ?", string(f.Status))
	}
	rows, err := r.q.Query(ctx, jobSelect+w.String()+` ORDER BY j.created_at DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()
	var list []*entity.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		list = append(list, j)
	}
	return list, rows.Err()
}

// Update rewrites every mutable column. ErrNotFound when the row is gone.
func (r *JobRepo) Update(ctx context.Context, j *entity.Job) error {
	query := `
		UPDATE jobs SET customer_name = $2, phone = $3, car_model = $4, vehicle_number = $5,
		       work_description = $6, estimated_amount = $7, advance_paid = $8,
		       planned_completion_days = $9, address = $10, parts_required = $11,
		       worker_assigned = $12, internal_notes = $13, status = $14,
		       updated_at = $15, completed_at = $16
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		j.ID, j.CustomerName, j.Phone, j.CarModel, j.VehicleNumber,
		j.WorkDescription, j.EstimatedAmount, j.AdvancePaid,
		j.PlannedCompletionDays, j.Address, j.PartsRequired,
		j.WorkerAssigned, j.InternalNotes, string(j.Status),
		j.UpdatedAt, j.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *JobRepo) AddUpdate(ctx context.Context, u *entity.JobUpdate) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO job_updates (id, job_id, updated_by, update_type, description, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.JobID, u.UpdatedBy, u.UpdateType, u.Description, u.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert job update: %w", err)
	}
	return nil
}

// ListUpdates newest first.
func (r *JobRepo) ListUpdates(ctx context.Context, jobID string) ([]*entity.JobUpdate, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, job_id, updated_by, update_type, description, timestamp
		FROM job_updates WHERE job_id = $1 ORDER BY timestamp DESC`, jobID)
	if err != nil {
		return nil, fmt.Errorf("list job updates: %w", err)
	}
	defer rows.Close()
	var list []*entity.JobUpdate
	for rows.Next() {
		var u entity.JobUpdate
		if err := rows.Scan(&u.ID, &u.JobID, &u.UpdatedBy, &u.UpdateType, &u.Description, &u.Timestamp); err != nil {
			return nil, fmt.Errorf("scan job update: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

func scanJob(row pgx.Row) (*entity.Job, error) {
	var j entity.Job
	var status string
	err := row.Scan(
		&j.ID, &j.WorkshopID, &j.ManagerID, &j.ManagerName, &j.CustomerName, &j.Phone,
		&j.CarModel, &j.VehicleNumber, &j.WorkDescription, &j.EstimatedAmount, &j.AdvancePaid,
		&j.PlannedCompletionDays, &j.Address, &j.PartsRequired, &j.WorkerAssigned,
		&j.InternalNotes, &status, &j.CreatedAt, &j.UpdatedAt, &j.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	j.Status = entity.JobStatus(status)
	return &j, nil
}
