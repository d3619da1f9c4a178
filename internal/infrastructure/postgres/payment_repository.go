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

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo PaymentRepository over PostgreSQL.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository builds the payment adapter.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentSelect = `
	SELECT p.id, p.job_id, p.amount, p.payment_type, p.notes, p.collected_by, COALESCE(u.name, ''),
	       p.confirmed_by_owner, p.payment_date, p.confirmation_date, j.customer_name, j.vehicle_number
	FROM payments p
	JOIN jobs j ON j.id = p.job_id
	LEFT JOIN users u ON u.id = p.collected_by`

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO payments (id, job_id, amount, payment_type, notes, collected_by,
		                      confirmed_by_owner, payment_date, confirmation_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.JobID, p.Amount, string(p.PaymentType), p.Notes, p.CollectedBy,
		p.ConfirmedByOwner, p.PaymentDate, p.ConfirmationDate,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, paymentSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

// List newest first. A non-nil empty JobIDs matches nothing.
func (r *PaymentRepo) List(ctx context.Context, f repository.PaymentFilter) ([]*entity.Payment, error) {
	var w where
	if f.WorkshopID != "" {
		w.add("j.workshop_id = ?", f.WorkshopID)
	}
	if f.CollectedBy != "" {
		w.add("p.collected_by = ?", f.CollectedBy)
	}
	if f.JobIDs != nil {
		w.add("p.job_id = ANY(?)", f.JobIDs)
	}
	if f.Confirmed != nil {
		w.add("p.confirmed_by_owner = ?", *f.Confirmed)
	}
	rows, err := r.q.Query(ctx, paymentSelect+w.String()+` ORDER BY p.payment_date DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Confirm is one-way: the flag only goes to true and the first confirmation date sticks.
func (r *PaymentRepo) Confirm(ctx context.Context, id string, at time.Time) (*entity.Payment, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE payments SET confirmed_by_owner = TRUE, confirmation_date = COALESCE(confirmation_date, $2)
		WHERE id = $1`, id, at)
	if err != nil {
		return nil, fmt.Errorf("confirm payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	var kind string
	err := row.Scan(
		&p.ID, &p.JobID, &p.Amount, &kind, &p.Notes, &p.CollectedBy, &p.ManagerName,
		&p.ConfirmedByOwner, &p.PaymentDate, &p.ConfirmationDate, &p.CustomerName, &p.VehicleNumber,
	)
	if err != nil {
		return nil, err
	}
	p.PaymentType = entity.PaymentType(kind)
	return &p, nil
}
