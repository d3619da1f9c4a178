package repository

import (
	"context"

	"github.com/jhoicas/revops-api/internal/domain/entity"
)

// WorkshopRepository persistence port for Workshop.
type WorkshopRepository interface {
	// Create returns domain.ErrWorkshopExists when the owner already has one.
	Create(ctx context.Context, w *entity.Workshop) error
	GetByID(ctx context.Context, id string) (*entity.Workshop, error)
	GetByOwner(ctx context.Context, ownerID string) (*entity.Workshop, error)
	Update(ctx context.Context, w *entity.Workshop) error
}
