package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/revops-api/internal/application/auth"
	"github.com/jhoicas/revops-api/internal/application/dto"
	"github.com/jhoicas/revops-api/internal/domain"
	"github.com/jhoicas/revops-api/internal/domain/entity"
	"github.com/jhoicas/revops-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/revops-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

type fixture struct {
	store *memory.Store
	uc    *auth.AuthUseCase
}

func newFixture() *fixture {
	store := memory.NewStore()
	uc := auth.NewAuthUseCase(store.Users(), store.Workshops(), store.Managers(), store.TxRunner(),
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "revops-test"})
	return &fixture{store: store, uc: uc}
}

func ownerRequest(email string) dto.RegisterRequest {
	return dto.RegisterRequest{Name: "Olivia Owner", Email: email, Phone: "+91 90000 00001", Password: "s3cret-pass", Role: "owner"}
}

func managerRequest(email, code string) dto.RegisterRequest {
	return dto.RegisterRequest{Name: "Manu Manager", Email: email, Phone: "+91 90000 00002", Password: "s3cret-pass", Role: "manager", InviteCode: code}
}

// seedWorkshop registers an owner with a workshop and one invite code.
func (f *fixture) seedWorkshop(t *testing.T, code string) (ownerID, workshopID string) {
	t.Helper()
	ctx := context.Background()
	resp, err := f.uc.Register(ctx, ownerRequest("owner@garage.test"))
	require.NoError(t, err)
	ownerID = resp.User.ID
	workshopID = "ws-1"
	require.NoError(t, f.store.Workshops().Create(ctx, &entity.Workshop{ID: workshopID, OwnerID: ownerID, Name: "Main Garage"}))
	require.NoError(t, f.store.Invites().Create(ctx, &entity.InviteCode{
		ID: "inv-1", Code: code, WorkshopID: workshopID, CreatedBy: ownerID, IsActive: true, CreatedAt: time.Now(),
	}))
	return ownerID, workshopID
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_OwnerWithoutWorkshop(t *testing.T) {
	f := newFixture()
	resp, err := f.uc.Register(context.Background(), ownerRequest("Owner@Garage.test"))
	require.NoError(t, err)

	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "owner@garage.test", resp.User.Email, "email is normalized")
	assert.Nil(t, resp.User.WorkshopID)

	id, err := pkgjwt.Parse(testSecret, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, id.UserID)
	assert.Equal(t, "owner", id.Role)
}

func TestRegister_ValidationErrors(t *testing.T) {
	f := newFixture()
	bad := dto.RegisterRequest{Email: "nope", Password: "short", Role: "admin"}
	_, err := f.uc.Register(context.Background(), bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	for _, field := range []string{"name", "email", "phone", "password", "role"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Register(context.Background(), ownerRequest("dup@garage.test"))
	require.NoError(t, err)
	_, err = f.uc.Register(context.Background(), ownerRequest("DUP@garage.test"))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_ManagerConsumesInvite(t *testing.T) {
	f := newFixture()
	_, workshopID := f.seedWorkshop(t, "AB12CD34")

	resp, err := f.uc.Register(context.Background(), managerRequest("m@garage.test", " ab12cd34 "))
	require.NoError(t, err)
	require.NotNil(t, resp.User.WorkshopID)
	assert.Equal(t, workshopID, *resp.User.WorkshopID)

	code, err := f.store.Invites().GetByCode(context.Background(), "AB12CD34")
	require.NoError(t, err)
	assert.False(t, code.Available(), "a used code is never available again")
	assert.Equal(t, resp.User.ID, *code.UsedBy)

	m, err := f.store.Managers().GetActiveByUser(context.Background(), resp.User.ID)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, workshopID, m.WorkshopID)
}

func TestRegister_UsedInviteCode(t *testing.T) {
	f := newFixture()
	f.seedWorkshop(t, "AB12CD34")
	_, err := f.uc.Register(context.Background(), managerRequest("first@garage.test", "AB12CD34"))
	require.NoError(t, err)

	_, err = f.uc.Register(context.Background(), managerRequest("second@garage.test", "AB12CD34"))
	assert.ErrorIs(t, err, domain.ErrInviteCodeUsed)

	u, err := f.store.Users().GetByEmail(context.Background(), "second@garage.test")
	require.NoError(t, err)
	assert.Nil(t, u, "failed registration leaves no user behind")
}

func TestRegister_UnknownInviteCodeLeavesNoState(t *testing.T) {
	f := newFixture()
	f.seedWorkshop(t, "AB12CD34")

	_, err := f.uc.Register(context.Background(), managerRequest("ghost@garage.test", "ZZZZZZZZ"))
	assert.ErrorIs(t, err, domain.ErrInviteCodeInvalid)

	u, err := f.store.Users().GetByEmail(context.Background(), "ghost@garage.test")
	require.NoError(t, err)
	assert.Nil(t, u)
	managers, err := f.store.Managers().ListActiveByWorkshop(context.Background(), "ws-1")
	require.NoError(t, err)
	assert.Empty(t, managers)
}

func TestRegister_ManagerWithoutCode(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Register(context.Background(), managerRequest("m@garage.test", ""))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login / Me
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_ResolvesWorkshop(t *testing.T) {
	f := newFixture()
	ownerID, workshopID := f.seedWorkshop(t, "AB12CD34")

	resp, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "owner@garage.test", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, ownerID, resp.User.ID)
	require.NotNil(t, resp.User.WorkshopID)
	assert.Equal(t, workshopID, *resp.User.WorkshopID)

	id, err := pkgjwt.Parse(testSecret, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, workshopID, id.WorkshopID)
}

func TestLogin_BadCredentials(t *testing.T) {
	f := newFixture()
	f.seedWorkshop(t, "AB12CD34")

	_, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "owner@garage.test", Password: "wrong-pass"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = f.uc.Login(context.Background(), dto.LoginRequest{Email: "nobody@garage.test", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestMe_RemovedManagerLosesWorkshop(t *testing.T) {
	f := newFixture()
	f.seedWorkshop(t, "AB12CD34")
	resp, err := f.uc.Register(context.Background(), managerRequest("m@garage.test", "AB12CD34"))
	require.NoError(t, err)

	m, err := f.store.Managers().GetActiveByUser(context.Background(), resp.User.ID)
	require.NoError(t, err)
	require.NoError(t, f.store.Managers().Deactivate(context.Background(), m.ID))

	me, err := f.uc.Me(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.Nil(t, me.WorkshopID)

	_, err = f.uc.Me(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSession_FromIdentity(t *testing.T) {
	f := newFixture()
	ownerID, workshopID := f.seedWorkshop(t, "AB12CD34")

	s, err := f.uc.Session(context.Background(), pkgjwt.Identity{UserID: ownerID, Role: "owner"})
	require.NoError(t, err)
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, workshopID, s.User.WorkshopID, "workshop comes from current state, not the token")

	_, err = f.uc.Session(context.Background(), pkgjwt.Identity{UserID: ownerID, Role: "root"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
