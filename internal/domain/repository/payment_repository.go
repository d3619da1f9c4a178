package repository

import (
	"context"
	"time"

	"github.com/jhoicas/revops-api/internal/domain/entity"
)

// PaymentFilter narrows List. Confirmed nil means both states.
type PaymentFilter struct {
	WorkshopID  string
	CollectedBy string
	JobIDs      []string
	Confirmed   *bool
}

// PaymentRepository persistence port for Payment.
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	// List orders newest first and fills the job and manager display fields.
	List(ctx context.Context, f PaymentFilter) ([]*entity.Payment, error)
	// Confirm sets confirmed_by_owner; an existing confirmation date is kept.
	Confirm(ctx context.Context, id string, at time.Time) (*entity.Payment, error)
}

// SettlementFilter narrows settlement lists.
type SettlementFilter struct {
	WorkshopID string
	ManagerID  string
	Confirmed  *bool
}

// SettlementRepository persistence port for Settlement.
type SettlementRepository interface {
	Create(ctx context.Context, s *entity.Settlement) error
	GetByID(ctx context.Context, id string) (*entity.Settlement, error)
	List(ctx context.Context, f SettlementFilter) ([]*entity.Settlement, error)
	// Confirm has the same one-way semantics as PaymentRepository.Confirm.
	Confirm(ctx context.Context, id string, at time.Time) (*entity.Settlement, error)
}
