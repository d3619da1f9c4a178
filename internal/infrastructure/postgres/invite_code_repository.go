package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/revops-api/internal/domain"
	"github.com/jhoicas/revops-api/internal/domain/entity"
	"github.com/jhoicas/revops-api/internal/domain/repository"
)

var _ repository.InviteCodeRepository = (*InviteCodeRepo)(nil)

// InviteCodeRepo InviteCodeRepository over PostgreSQL.
type InviteCodeRepo struct {
	q Querier
}

// NewInviteCodeRepository builds the invite code adapter.
func NewInviteCodeRepository(q Querier) *InviteCodeRepo {
	return &InviteCodeRepo{q: q}
}

const inviteColumns = `id, code, workshop_id, created_by, is_active, used_by, used_at, created_at`

func (r *InviteCodeRepo) Create(ctx context.Context, c *entity.InviteCode) error {
	query := `
		INSERT INTO invite_codes (` + inviteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Code, c.WorkshopID, c.CreatedBy, c.IsActive, c.UsedBy, c.UsedAt, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert invite code: duplicate code %s", c.Code)
		}
		return fmt.Errorf("insert invite code: %w", err)
	}
	return nil
}

func (r *InviteCodeRepo) GetByCode(ctx context.Context, code string) (*entity.InviteCode, error) {
	var c entity.InviteCode
	err := r.q.QueryRow(ctx, `SELECT `+inviteColumns+` FROM invite_codes WHERE code = $1`, code).Scan(
		&c.ID, &c.Code, &c.WorkshopID, &c.CreatedBy, &c.IsActive, &c.UsedBy, &c.UsedAt, &c.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invite code: %w", err)
	}
	return &c, nil
}

// ListByWorkshop newest first.
func (r *InviteCodeRepo) ListByWorkshop(ctx context.Context, workshopID string) ([]*entity.InviteCode, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+inviteColumns+` FROM invite_codes WHERE workshop_id = $1 ORDER BY created_at DESC`, workshopID)
	if err != nil {
		return nil, fmt.Errorf("list invite codes: %w", err)
	}
	defer rows.Close()
	var list []*entity.InviteCode
	for rows.Next() {
		var c entity.InviteCode
		if err := rows.Scan(&c.ID, &c.Code, &c.WorkshopID, &c.CreatedBy, &c.IsActive, &c.UsedBy, &c.UsedAt, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invite code: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// MarkUsed is a conditional update: a code consumed by a concurrent
// registration matches no row and yields ErrInviteCodeUsed.
func (r *InviteCodeRepo) MarkUsed(ctx context.Context, id, userID string, at time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE invite_codes SET used_by = $2, used_at = $3
		WHERE id = $1 AND is_active AND used_by IS NULL`, id, userID, at)
	if err != nil {
		return fmt.Errorf("mark invite code used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInviteCodeUsed
	}
	return nil
}
