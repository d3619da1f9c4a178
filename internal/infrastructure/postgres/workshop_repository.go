package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/revops-api/internal/domain"
	"github.com/jhoicas/revops-api/internal/domain/entity"
	"github.com/jhoicas/revops-api/internal/domain/repository"
)

var _ repository.WorkshopRepository = (*WorkshopRepo)(nil)

// WorkshopRepo WorkshopRepository over PostgreSQL.
type WorkshopRepo struct {
	q Querier
}

// NewWorkshopRepository builds the workshop adapter.
func NewWorkshopRepository(q Querier) *WorkshopRepo {
	return &WorkshopRepo{q: q}
}

const workshopColumns = `id, owner_id, name, address, phone, gst_number, currency_code, created_at, updated_at`

// Create inserts the workshop; a second workshop for the same owner hits workshops_owner_key.
func (r *WorkshopRepo) Create(ctx context.Context, w *entity.Workshop) error {
	query := `
		INSERT INTO workshops (` + workshopColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		w.ID, w.OwnerID, w.Name, w.Address, w.Phone, w.GSTNumber, w.CurrencyCode, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrWorkshopExists
		}
		return fmt.Errorf("insert workshop: %w", err)
	}
	return nil
}

func (r *WorkshopRepo) GetByID(ctx context.Context, id string) (*entity.Workshop, error) {
	return r.getOne(ctx, `SELECT `+workshopColumns+` FROM workshops WHERE id = $1`, id)
}

func (r *WorkshopRepo) GetByOwner(ctx context.Context, ownerID string) (*entity.Workshop, error) {
	return r.getOne(ctx, `SELECT `+workshopColumns+` FROM workshops WHERE owner_id = $1`, ownerID)
}

// Update rewrites the editable fields. ErrNotFound when the row is gone.
func (r *WorkshopRepo) Update(ctx context.Context, w *entity.Workshop) error {
	query := `
		UPDATE workshops
		SET name = $2, address = $3, phone = $4, gst_number = $5, currency_code = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		w.ID, w.Name, w.Address, w.Phone, w.GSTNumber, w.CurrencyCode, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update workshop: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *WorkshopRepo) getOne(ctx context.Context, query, arg string) (*entity.Workshop, error) {
	var w entity.Workshop
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&w.ID, &w.OwnerID, &w.Name, &w.Address, &w.Phone, &w.GSTNumber, &w.CurrencyCode,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get workshop: %w", err)
	}
	return &w, nil
}
