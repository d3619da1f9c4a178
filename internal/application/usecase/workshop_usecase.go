package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/revops-api/internal/application/auth"
	"github.com/jhoicas/revops-api/internal/application/dto"
	"github.com/jhoicas/revops-api/internal/domain"
	"github.com/jhoicas/revops-api/internal/domain/entity"
	"github.com/jhoicas/revops-api/internal/domain/repository"
	"github.com/jhoicas/revops-api/pkg/currency"
)

// DashboardInvalidator drops cached analytics of a workshop.
type DashboardInvalidator interface {
	Invalidate(ctx context.Context, workshopID string)
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context, string) {}

// WorkshopUseCase workshop setup and settings.
type WorkshopUseCase struct {
	repo        repository.WorkshopRepository
	managers    repository.ManagerRepository
	invalidator DashboardInvalidator
	now         func() time.Time
}

// NewWorkshopUseCase builds the use case. invalidator may be nil.
func NewWorkshopUseCase(repo repository.WorkshopRepository, managers repository.ManagerRepository, invalidator DashboardInvalidator) *WorkshopUseCase {
	if invalidator == nil {
		invalidator = noopInvalidator{}
	}
	return &WorkshopUseCase{repo: repo, managers: managers, invalidator: invalidator, now: time.Now}
}

// Create sets up the owner's only workshop. The currency defaults to INR.
func (uc *WorkshopUseCase) Create(ctx context.Context, actor auth.SessionUser, in dto.CreateWorkshopRequest) (*dto.WorkshopResponse, error) {
	if actor.Role != entity.RoleOwner {
		return nil, domain.ErrForbidden
	}
	name, phone := strings.TrimSpace(in.Name), strings.TrimSpace(in.Phone)
	if name == "" {
		return nil, domain.Invalid("name", "required")
	}
	if phone == "" {
		return nil, domain.Invalid("phone", "required")
	}
	code, err := currencyCode(in.CurrencyCode)
	if err != nil {
		return nil, err
	}

	existing, err := uc.repo.GetByOwner(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrWorkshopExists
	}

	now := uc.now().UTC()
	w := &entity.Workshop{
		ID:           uuid.New().String(),
		OwnerID:      actor.ID,
		Name:         name,
		Address:      strings.TrimSpace(in.Address),
		Phone:        phone,
		GSTNumber:    strings.TrimSpace(in.GSTNumber),
		CurrencyCode: code,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return ToWorkshopResponse(w), nil
}

// GetMine returns the owner's workshop or the manager's current one.
func (uc *WorkshopUseCase) GetMine(ctx context.Context, actor auth.SessionUser) (*dto.WorkshopResponse, error) {
	var (
		w   *entity.Workshop
		err error
	)
	switch actor.Role {
	case entity.RoleOwner:
		w, err = uc.repo.GetByOwner(ctx, actor.ID)
	case entity.RoleManager:
		var m *entity.Manager
		if m, err = uc.managers.GetActiveByUser(ctx, actor.ID); err == nil && m != nil {
			w, err = uc.repo.GetByID(ctx, m.WorkshopID)
		}
	default:
		return nil, domain.ErrForbidden
	}
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	return ToWorkshopResponse(w), nil
}

// Update applies the non-nil fields. Only the owning owner may update.
func (uc *WorkshopUseCase) Update(ctx context.Context, actor auth.SessionUser, id string, in dto.UpdateWorkshopRequest) (*dto.WorkshopResponse, error) {
	if actor.Role != entity.RoleOwner {
		return nil, domain.ErrForbidden
	}
	w, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	if w.OwnerID != actor.ID {
		return nil, domain.ErrForbidden
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.Invalid("name", "required")
		}
		w.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		if strings.TrimSpace(*in.Phone) == "" {
			return nil, domain.Invalid("phone", "required")
		}
		w.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		w.Address = strings.TrimSpace(*in.Address)
	}
	if in.GSTNumber != nil {
		w.GSTNumber = strings.TrimSpace(*in.GSTNumber)
	}
	if in.CurrencyCode != nil {
		if !currency.IsKnown(*in.CurrencyCode) {
			return nil, domain.Invalid("currency_code", "unknown currency "+*in.CurrencyCode)
		}
		w.CurrencyCode = currency.Resolve(*in.CurrencyCode)
	}
	w.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx, w.ID)
	return ToWorkshopResponse(w), nil
}

// currencyCode validates an optional code; empty means the default.
func currencyCode(code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return currency.DefaultCode, nil
	}
	if !currency.IsKnown(code) {
		return "", domain.Invalid("currency_code", "unknown currency "+code)
	}
	return currency.Resolve(code), nil
}

// ToWorkshopResponse maps a workshop; unknown stored codes show as the default currency.
func ToWorkshopResponse(w *entity.Workshop) *dto.WorkshopResponse {
	if w == nil {
		return nil
	}
	info := currency.ByCode(w.CurrencyCode)
	return &dto.WorkshopResponse{
		ID:           w.ID,
		OwnerID:      w.OwnerID,
		Name:         w.Name,
		Address:      w.Address,
		Phone:        w.Phone,
		GSTNumber:    w.GSTNumber,
		CurrencyCode: info.Code,
		Currency:     info,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}
