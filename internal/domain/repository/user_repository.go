package repository

import (
	"context"

	"github.com/jhoicas/revops-api/internal/domain/entity"
)

// UserRepository persistence port for User. Lookups return (nil, nil) when nothing matches.
type UserRepository interface {
	// Create returns domain.ErrEmailAlreadyExists on a duplicate email.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByEmail matches case-insensitively.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
