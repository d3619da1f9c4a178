package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/revops-api/internal/application/dto"
	"github.com/jhoicas/revops-api/internal/domain"
	"github.com/jhoicas/revops-api/internal/domain/entity"
	"github.com/jhoicas/revops-api/internal/domain/repository"
	"github.com/jhoicas/revops-api/pkg/jwt"
)

const minPasswordLen = 8

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registration, login and session resolution.
type AuthUseCase struct {
	userRepo     repository.UserRepository
	workshopRepo repository.WorkshopRepository
	managerRepo  repository.ManagerRepository
	txRunner     repository.TxRunner
	jwtCfg       JWTConfig
	now          func() time.Time
}

// NewAuthUseCase builds the use case.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	workshopRepo repository.WorkshopRepository,
	managerRepo repository.ManagerRepository,
	txRunner repository.TxRunner,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		workshopRepo: workshopRepo,
		managerRepo:  managerRepo,
		txRunner:     txRunner,
		jwtCfg:       jwtCfg,
		now:          time.Now,
	}
}

// Register creates an owner, or a manager bound to the workshop of a valid
// invite code. Manager registration is all-or-nothing.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.LoginResponse, error) {
	role := entity.Role(strings.ToLower(strings.TrimSpace(in.Role)))
	if err := validateRegistration(in, role); err != nil {
		return nil, err
	}
	email := normalizeEmail(in.Email)

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    uc.now().UTC(),
	}

	if role == entity.RoleOwner {
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		return uc.issue(user)
	}

	code := strings.ToUpper(strings.TrimSpace(in.InviteCode))
	err = uc.txRunner.RunRegistration(ctx, func(repos repository.RegistrationRepos) error {
		invite, err := repos.Invites.GetByCode(ctx, code)
		if err != nil {
			return err
		}
		if invite == nil || !invite.IsActive {
			return domain.ErrInviteCodeInvalid
		}
		if invite.UsedBy != nil {
			return domain.ErrInviteCodeUsed
		}
		if err := repos.Users.Create(ctx, user); err != nil {
			return err
		}
		if err := repos.Invites.MarkUsed(ctx, invite.ID, user.ID, user.CreatedAt); err != nil {
			return err
		}
		user.WorkshopID = invite.WorkshopID
		return repos.Managers.Create(ctx, &entity.Manager{
			ID:         uuid.New().String(),
			UserID:     user.ID,
			WorkshopID: invite.WorkshopID,
			JoinedAt:   user.CreatedAt,
			IsActive:   true,
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.issue(user)
}

// Login checks the credentials. Unknown email and wrong password are indistinguishable.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if user.WorkshopID, err = uc.ResolveWorkshop(ctx, user.ID, user.Role); err != nil {
		return nil, err
	}
	return uc.issue(user)
}

// Me returns the user behind a session with a freshly resolved workshop.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if user.WorkshopID, err = uc.ResolveWorkshop(ctx, user.ID, user.Role); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// ResolveWorkshop returns the owner's workshop or the manager's active
// membership workshop; "" when there is none.
func (uc *AuthUseCase) ResolveWorkshop(ctx context.Context, userID string, role entity.Role) (string, error) {
	switch role {
	case entity.RoleOwner:
		w, err := uc.workshopRepo.GetByOwner(ctx, userID)
		if err != nil || w == nil {
			return "", err
		}
		return w.ID, nil
	case entity.RoleManager:
		m, err := uc.managerRepo.GetActiveByUser(ctx, userID)
		if err != nil || m == nil {
			return "", err
		}
		return m.WorkshopID, nil
	}
	return "", nil
}

// Session builds the session token claims describe. Lets callers re-check a
// token's workshop against the current state.
func (uc *AuthUseCase) Session(ctx context.Context, id jwt.Identity) (Session, error) {
	role := entity.Role(id.Role)
	if !role.Valid() || id.UserID == "" {
		return Anonymous(), domain.ErrUnauthorized
	}
	workshopID, err := uc.ResolveWorkshop(ctx, id.UserID, role)
	if err != nil {
		return Anonymous(), err
	}
	return Authenticated(SessionUser{ID: id.UserID, Email: id.Email, Role: role, WorkshopID: workshopID}), nil
}

func (uc *AuthUseCase) issue(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Identity{
		UserID:     user.ID,
		WorkshopID: user.WorkshopID,
		Role:       string(user.Role),
		Email:      user.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        *ToUserResponse(user),
	}, nil
}

func validateRegistration(in dto.RegisterRequest, role entity.Role) error {
	var errs []error
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, domain.Invalid("name", "required"))
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(in.Email)); err != nil {
		errs = append(errs, domain.Invalid("email", "must be a valid address"))
	}
	if strings.TrimSpace(in.Phone) == "" {
		errs = append(errs, domain.Invalid("phone", "required"))
	}
	if len(in.Password) < minPasswordLen {
		errs = append(errs, domain.Invalid("password", fmt.Sprintf("at least %d characters", minPasswordLen)))
	}
	if !role.Valid() {
		errs = append(errs, domain.Invalid("role", "must be owner or manager"))
	}
	if role == entity.RoleManager && strings.TrimSpace(in.InviteCode) == "" {
		errs = append(errs, domain.Invalid("invite_code", "required for managers"))
	}
	return errors.Join(errs...)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ToUserResponse maps a user to its public shape.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	out := &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
	if u.WorkshopID != "" {
		ws := u.WorkshopID
		out.WorkshopID = &ws
	}
	return out
}
