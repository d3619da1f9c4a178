package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/revops-api/internal/application/auth"
	"github.com/jhoicas/revops-api/internal/application/dto"
	"github.com/jhoicas/revops-api/internal/domain"
	"github.com/jhoicas/revops-api/internal/domain/entity"
	"github.com/jhoicas/revops-api/pkg/jwt"
)

// LocalSession is the Locals key of the request's auth.Session.
const LocalSession = "session"

// SessionResolver rebuilds a session from token claims against current state,
// so a workshop created or a membership removed after login is honored.
type SessionResolver interface {
	Session(ctx context.Context, id jwt.Identity) (auth.Session, error)
}

// AuthMiddleware validates the Bearer token and stores the session in Locals.
// With a nil resolver the session comes from the claims alone.
func AuthMiddleware(jwtSecret string, resolver SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, code, msg := bearerToken(c)
		if code != "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "invalid or expired token"})
		}
		session, err := sessionFor(c.UserContext(), id, resolver)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token does not describe a valid user"})
			}
			return writeError(c, err)
		}
		c.Locals(LocalSession, session)
		return c.Next()
	}
}

// OptionalAuth is AuthMiddleware for public routes: without a valid token the
// session is anonymous instead of the request being rejected.
func OptionalAuth(jwtSecret string, resolver SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := auth.Anonymous()
		if tokenString, code, _ := bearerToken(c); code == "" {
			if id, err := jwt.Parse(jwtSecret, tokenString); err == nil {
				if s, err := sessionFor(c.UserContext(), id, resolver); err == nil {
					session = s
				}
			}
		}
		c.Locals(LocalSession, session)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) (token, code, msg string) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", "MISSING_TOKEN", "Authorization header required"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "INVALID_TOKEN", "format: Bearer <token>"
	}
	token = strings.TrimSpace(parts[1])
	if token == "" {
		return "", "MISSING_TOKEN", "empty token"
	}
	return token, "", ""
}

func sessionFor(ctx context.Context, id jwt.Identity, resolver SessionResolver) (auth.Session, error) {
	if resolver != nil {
		return resolver.Session(ctx, id)
	}
	return auth.Authenticated(auth.SessionUser{
		ID:         id.UserID,
		Email:      id.Email,
		Role:       entity.Role(id.Role),
		WorkshopID: id.WorkshopID,
	}), nil
}

// SessionFrom returns the request's session; anonymous when no auth middleware ran.
func SessionFrom(c *fiber.Ctx) auth.Session {
	if s, ok := c.Locals(LocalSession).(auth.Session); ok {
		return s
	}
	return auth.Anonymous()
}

// CurrentUser returns the authenticated principal. Call it after AuthMiddleware.
func CurrentUser(c *fiber.Ctx) auth.SessionUser {
	if s := SessionFrom(c); s.User != nil {
		return *s.User
	}
	return auth.SessionUser{}
}

// GetUserID is "" for anonymous requests.
func GetUserID(c *fiber.Ctx) string { return CurrentUser(c).ID }

// GetRole is "" for anonymous requests.
func GetRole(c *fiber.Ctx) string { return string(CurrentUser(c).Role) }

// GetWorkshopID is "" for anonymous requests and owners without a workshop.
func GetWorkshopID(c *fiber.Ctx) string { return CurrentUser(c).WorkshopID }

// RequireRole lets the request through only for the given roles. It runs after AuthMiddleware.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := SessionFrom(c)
		if !session.IsAuthenticated() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"})
		}
		if session.User.Role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token carries no role"})
		}
		if !session.IsAuthorized(roles...) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "role not allowed for this resource"})
		}
		return c.Next()
	}
}

// RequireWorkshop blocks owners that have not finished workshop setup and
// managers without an active membership.
func RequireWorkshop() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetWorkshopID(c) == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "WORKSHOP_REQUIRED",
				Message: "complete workshop setup first",
			})
		}
		return c.Next()
	}
}
