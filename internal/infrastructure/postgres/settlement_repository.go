package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/revops-api/internal/domain"
	"github.com/jhoicas/revops-api/internal/domain/entity"
	"github.com/jhoicas/revops-api/internal/domain/repository"
)

var _ repository.SettlementRepository = (*SettlementRepo)(nil)

// SettlementRepo SettlementRepository over PostgreSQL. job_ids is a TEXT[] column.
type SettlementRepo struct {
	q Querier
}

// NewSettlementRepository builds the settlement adapter.
func NewSettlementRepository(q Querier) *SettlementRepo {
	return &SettlementRepo{q: q}
}

const settlementSelect = `
	SELECT s.id, s.workshop_id, s.manager_id, COALESCE(u.name, ''), s.job_ids, s.amount, s.notes,
	       s.submitted_date, s.confirmed_by_owner, s.confirmation_date
	FROM settlements s
	LEFT JOIN users u ON u.id = s.manager_id`

func (r *SettlementRepo) Create(ctx context.Context, s *entity.Settlement) error {
	jobIDs := s.JobIDs
	if jobIDs == nil {
		jobIDs = []string{}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO settlements (id, workshop_id, manager_id, job_ids, amount, notes,
		                         submitted_date, confirmed_by_owner, confirmation_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.WorkshopID, s.ManagerID, jobIDs, s.Amount, s.Notes,
		s.SubmittedDate, s.ConfirmedByOwner, s.ConfirmationDate,
	)
	if err != nil {
		return fmt.Errorf("insert settlement: %w", err)
	}
	return nil
}

func (r *SettlementRepo) GetByID(ctx context.Context, id string) (*entity.Settlement, error) {
	s, err := scanSettlement(r.q.QueryRow(ctx, settlementSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settlement: %w", err)
	}
	return s, nil
}

// List newest first.
func (r *SettlementRepo) List(ctx context.Context, f repository.SettlementFilter) ([]*entity.Settlement, error) {
	var w where
	if f.WorkshopID != "" {
		w.add("s.workshop_id = ?", f.WorkshopID)
	}
	if f.ManagerID != "" {
		w.add("s.manager_id = ?", f.ManagerID)
	}
	if f.Confirmed != nil {
		w.add("s.confirmed_by_owner = ?", *f.Confirmed)
	}
	rows, err := r.q.Query(ctx, settlementSelect+w.String()+` ORDER BY s.submitted_date DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list settlements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Settlement
	for rows.Next() {
		s, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan settlement: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Confirm mirrors PaymentRepo.Confirm.
func (r *SettlementRepo) Confirm(ctx context.Context, id string, at time.Time) (*entity.Settlement, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE settlements SET confirmed_by_owner = TRUE, confirmation_date = COALESCE(confirmation_date, $2)
		WHERE id = $1`, id, at)
	if err != nil {
		return nil, fmt.Errorf("confirm settlement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func scanSettlement(row pgx.Row) (*entity.Settlement, error) {
	var s entity.Settlement
	err := row.Scan(
		&s.ID, &s.WorkshopID, &s.ManagerID, &s.ManagerName, &s.JobIDs, &s.Amount, &s.Notes,
		&s.SubmittedDate, &s.ConfirmedByOwner, &s.ConfirmationDate,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
