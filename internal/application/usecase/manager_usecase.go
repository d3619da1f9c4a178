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
)

// ManagerUseCase invite codes and the manager roster of a workshop.
type ManagerUseCase struct {
	workshops repository.WorkshopRepository
	invites   repository.InviteCodeRepository
	managers  repository.ManagerRepository
	now       func() time.Time
}

// NewManagerUseCase builds the use case.
func NewManagerUseCase(workshops repository.WorkshopRepository, invites repository.InviteCodeRepository, managers repository.ManagerRepository) *ManagerUseCase {
	return &ManagerUseCase{workshops: workshops, invites: invites, managers: managers, now: time.Now}
}

// NewInviteCode is the first eight characters of a random UUID, uppercased.
func NewInviteCode() string {
	return strings.ToUpper(uuid.New().String()[:8])
}

// CreateInviteCode issues a single-use code for the owner's workshop.
func (uc *ManagerUseCase) CreateInviteCode(ctx context.Context, actor auth.SessionUser, workshopID string) (*dto.InviteCodeResponse, error) {
	w, err := uc.requireOwnerOf(ctx, actor, workshopID)
	if err != nil {
		return nil, err
	}
	code := &entity.InviteCode{
		ID:         uuid.New().String(),
		Code:       NewInviteCode(),
		WorkshopID: w.ID,
		CreatedBy:  actor.ID,
		IsActive:   true,
		CreatedAt:  uc.now().UTC(),
	}
	if err := uc.invites.Create(ctx, code); err != nil {
		return nil, err
	}
	return toInviteCodeResponse(code), nil
}

// ListInviteCodes lists every code of the workshop, newest first.
func (uc *ManagerUseCase) ListInviteCodes(ctx context.Context, actor auth.SessionUser, workshopID string) ([]dto.InviteCodeResponse, error) {
	w, err := uc.requireOwnerOf(ctx, actor, workshopID)
	if err != nil {
		return nil, err
	}
	list, err := uc.invites.ListByWorkshop(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InviteCodeResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toInviteCodeResponse(c))
	}
	return out, nil
}

// ListManagers lists the active managers of the owner's workshop. An owner
// without a workshop gets an empty list.
func (uc *ManagerUseCase) ListManagers(ctx context.Context, actor auth.SessionUser) ([]dto.ManagerResponse, error) {
	if actor.Role != entity.RoleOwner {
		return nil, domain.ErrForbidden
	}
	out := []dto.ManagerResponse{}
	if actor.WorkshopID == "" {
		return out, nil
	}
	list, err := uc.managers.ListActiveByWorkshop(ctx, actor.WorkshopID)
	if err != nil {
		return nil, err
	}
	for _, m := range list {
		r := dto.ManagerResponse{
			ID:         m.ID,
			UserID:     m.UserID,
			WorkshopID: m.WorkshopID,
			JoinedAt:   m.JoinedAt,
			IsActive:   m.IsActive,
		}
		if m.User != nil {
			r.Name, r.Email, r.Phone = m.User.Name, m.User.Email, m.User.Phone
		}
		out = append(out, r)
	}
	return out, nil
}

// RemoveManager deactivates a membership of the owner's workshop.
func (uc *ManagerUseCase) RemoveManager(ctx context.Context, actor auth.SessionUser, managerID string) error {
	if actor.Role != entity.RoleOwner {
		return domain.ErrForbidden
	}
	m, err := uc.managers.GetByID(ctx, managerID)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	if m.WorkshopID != actor.WorkshopID {
		return domain.ErrForbidden
	}
	return uc.managers.Deactivate(ctx, managerID)
}

// requireOwnerOf returns the stored workshop; callers persist its ID, not the
// caller-supplied one.
func (uc *ManagerUseCase) requireOwnerOf(ctx context.Context, actor auth.SessionUser, workshopID string) (*entity.Workshop, error) {
	if actor.Role != entity.RoleOwner {
		return nil, domain.ErrForbidden
	}
	w, err := uc.workshops.GetByID(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	if w.OwnerID != actor.ID {
		return nil, domain.ErrForbidden
	}
	return w, nil
}

func toInviteCodeResponse(c *entity.InviteCode) *dto.InviteCodeResponse {
	return &dto.InviteCodeResponse{
		ID:         c.ID,
		Code:       c.Code,
		WorkshopID: c.WorkshopID,
		IsActive:   c.IsActive,
		UsedBy:     c.UsedBy,
		UsedAt:     c.UsedAt,
		Available:  c.Available(),
		CreatedAt:  c.CreatedAt,
	}
}
