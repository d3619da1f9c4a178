package repository

import (
	"context"
	"time"

	"github.com/jhoicas/revops-api/internal/domain/entity"
)

// InviteCodeRepository persistence port for InviteCode.
type InviteCodeRepository interface {
	Create(ctx context.Context, code *entity.InviteCode) error
	// GetByCode returns the code regardless of state so callers can tell "invalid" from "used".
	GetByCode(ctx context.Context, code string) (*entity.InviteCode, error)
	ListByWorkshop(ctx context.Context, workshopID string) ([]*entity.InviteCode, error)
	// MarkUsed consumes an available code. It returns domain.ErrInviteCodeUsed
	// when another registration consumed it first.
	MarkUsed(ctx context.Context, id, userID string, at time.Time) error
}
