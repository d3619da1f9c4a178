package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/revops-api/internal/domain"
	"github.com/jhoicas/revops-api/internal/domain/entity"
	"github.com/jhoicas/revops-api/internal/domain/repository"
)

var _ repository.ManagerRepository = (*ManagerRepo)(nil)

// ManagerRepo ManagerRepository over PostgreSQL.
type ManagerRepo struct {
	q Querier
}

// NewManagerRepository builds the membership adapter.
func NewManagerRepository(q Querier) *ManagerRepo {
	return &ManagerRepo{q: q}
}

const managerColumns = `id, user_id, workshop_id, joined_at, is_active`

func (r *ManagerRepo) Create(ctx context.Context, m *entity.Manager) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO managers (`+managerColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.UserID, m.WorkshopID, m.JoinedAt, m.IsActive,
	)
	if err != nil {
		return fmt.Errorf("insert manager: %w", err)
	}
	return nil
}

func (r *ManagerRepo) GetByID(ctx context.Context, id string) (*entity.Manager, error) {
	return r.getOne(ctx, `SELECT `+managerColumns+` FROM managers WHERE id = $1`, id)
}

func (r *ManagerRepo) GetActiveByUser(ctx context.Context, userID string) (*entity.Manager, error) {
	return r.getOne(ctx,
		`SELECT `+managerColumns+` FROM managers WHERE user_id = $1 AND is_active ORDER BY joined_at DESC LIMIT 1`, userID)
}

// ListActiveByWorkshop joins users so callers can show names and contact data.
func (r *ManagerRepo) ListActiveByWorkshop(ctx context.Context, workshopID string) ([]*entity.Manager, error) {
	query := `
		SELECT m.id, m.user_id, m.workshop_id, m.joined_at, m.is_active,
		       u.id, u.name, u.email, u.phone, u.role, u.created_at
		FROM managers m
		JOIN users u ON u.id = m.user_id
		WHERE m.workshop_id = $1 AND m.is_active
		ORDER BY m.joined_at`
	rows, err := r.q.Query(ctx, query, workshopID)
	if err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Manager
	for rows.Next() {
		var m entity.Manager
		var u entity.User
		var role string
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.WorkshopID, &m.JoinedAt, &m.IsActive,
			&u.ID, &u.Name, &u.Email, &u.Phone, &role, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan manager: %w", err)
		}
		u.Role = entity.Role(role)
		u.WorkshopID = m.WorkshopID
		m.User = &u
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Deactivate clears is_active. ErrNotFound when the membership does not exist.
func (r *ManagerRepo) Deactivate(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE managers SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate manager: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ManagerRepo) getOne(ctx context.Context, query, arg string) (*entity.Manager, error) {
	var m entity.Manager
	err := r.q.QueryRow(ctx, query, arg).Scan(&m.ID, &m.UserID, &m.WorkshopID, &m.JoinedAt, &m.IsActive)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get manager: %w", err)
	}
	return &m, nil
}
