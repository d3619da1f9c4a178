package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/revops-api/internal/application/auth"
	"github.com/jhoicas/revops-api/internal/application/dto"
	"github.com/jhoicas/revops-api/internal/application/usecase"
	"github.com/jhoicas/revops-api/internal/domain"
	"github.com/jhoicas/revops-api/internal/domain/entity"
	"github.com/jhoicas/revops-api/internal/infrastructure/memory"
)

var (
	owner   = auth.SessionUser{ID: "owner-1", Role: entity.RoleOwner}
	manager = auth.SessionUser{ID: "manager-1", Role: entity.RoleManager}
)

type recordingInvalidator struct {
	mu  sync.Mutex
	ids []string
}

func (r *recordingInvalidator) Invalidate(_ context.Context, workshopID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, workshopID)
}

func strPtr(s string) *string { return &s }

func TestWorkshop_CreateDefaultsCurrency(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewWorkshopUseCase(store.Workshops(), store.Managers(), nil)

	w, err := uc.Create(context.Background(), owner, dto.CreateWorkshopRequest{Name: " Main Garage ", Phone: "123"})
	require.NoError(t, err)
	assert.Equal(t, "Main Garage", w.Name)
	assert.Equal(t, "INR", w.CurrencyCode)
	assert.Equal(t, "₹", w.Currency.Symbol)

	_, err = uc.Create(context.Background(), owner, dto.CreateWorkshopRequest{Name: "Second", Phone: "123"})
	assert.ErrorIs(t, err, domain.ErrWorkshopExists, "one workshop per owner")
}

func TestWorkshop_CreateValidation(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewWorkshopUseCase(store.Workshops(), store.Managers(), nil)

	_, err := uc.Create(context.Background(), owner, dto.CreateWorkshopRequest{Phone: "123"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.Create(context.Background(), owner, dto.CreateWorkshopRequest{Name: "G", Phone: "1", CurrencyCode: "XYZ"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.Create(context.Background(), manager, dto.CreateWorkshopRequest{Name: "G", Phone: "1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestWorkshop_UpdateCurrencyInvalidatesDashboard(t *testing.T) {
	store := memory.NewStore()
	inv := &recordingInvalidator{}
	uc := usecase.NewWorkshopUseCase(store.Workshops(), store.Managers(), inv)
	w, err := uc.Create(context.Background(), owner, dto.CreateWorkshopRequest{Name: "G", Phone: "1"})
	require.NoError(t, err)

	got, err := uc.Update(context.Background(), owner, w.ID, dto.UpdateWorkshopRequest{CurrencyCode: strPtr("usd")})
	require.NoError(t, err)
	assert.Equal(t, "USD", got.CurrencyCode)
	assert.Equal(t, []string{w.ID}, inv.ids)

	_, err = uc.Update(context.Background(), owner, w.ID, dto.UpdateWorkshopRequest{CurrencyCode: strPtr("ZZZ")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	other := auth.SessionUser{ID: "owner-2", Role: entity.RoleOwner}
	_, err = uc.Update(context.Background(), other, w.ID, dto.UpdateWorkshopRequest{Name: strPtr("Mine now")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestWorkshop_GetMine(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewWorkshopUseCase(store.Workshops(), store.Managers(), nil)

	_, err := uc.GetMine(context.Background(), owner)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	w, err := uc.Create(context.Background(), owner, dto.CreateWorkshopRequest{Name: "G", Phone: "1"})
	require.NoError(t, err)
	require.NoError(t, store.Managers().Create(context.Background(), &entity.Manager{ID: "m-1", UserID: manager.ID, WorkshopID: w.ID, IsActive: true}))

	got, err := uc.GetMine(context.Background(), manager)
	require.NoError(t, err)
	assert.Equal(t, w.ID, got.ID)
}

func TestToWorkshopResponse_UnknownStoredCurrency(t *testing.T) {
	got := usecase.ToWorkshopResponse(&entity.Workshop{ID: "w", CurrencyCode: "OLD"})
	assert.Equal(t, "INR", got.CurrencyCode)
}
