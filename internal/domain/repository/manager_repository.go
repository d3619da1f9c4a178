package repository

import (
	"context"

	"github.com/jhoicas/revops-api/internal/domain/entity"
)

// ManagerRepository persistence port for workshop memberships.
type ManagerRepository interface {
	Create(ctx context.Context, m *entity.Manager) error
	GetByID(ctx context.Context, id string) (*entity.Manager, error)
	// GetActiveByUser returns the active membership of a manager user, if any.
	GetActiveByUser(ctx context.Context, userID string) (*entity.Manager, error)
	// ListActiveByWorkshop fills Manager.User.
	ListActiveByWorkshop(ctx context.Context, workshopID string) ([]*entity.Manager, error)
	// Deactivate soft-deletes the membership.
	Deactivate(ctx context.Context, id string) error
}
