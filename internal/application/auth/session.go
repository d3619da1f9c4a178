package auth

import "github.com/jhoicas/revops-api/internal/domain/entity"

// SessionUser the authenticated principal of one request.
type SessionUser struct {
	ID         string
	Email      string
	Role       entity.Role
	WorkshopID string
}

// NeedsWorkshopSetup reports whether the user is an owner without a workshop.
func (u *SessionUser) NeedsWorkshopSetup() bool {
	return u != nil && u.Role == entity.RoleOwner && u.WorkshopID == ""
}

// Session explicit session state. It is built per request and passed down;
// nothing reads it from package state.
type Session struct {
	User    *SessionUser
	Loading bool
}

// Anonymous is a resolved session without a user.
func Anonymous() Session { return Session{} }

// Loading is a session whose user is still being resolved.
func Loading() Session { return Session{Loading: true} }

// Authenticated wraps u in a resolved session.
func Authenticated(u SessionUser) Session { return Session{User: &u} }

// IsAuthenticated is false while loading and when there is no user.
func (s Session) IsAuthenticated() bool {
	return !s.Loading && s.User != nil
}

// IsAuthorized is true for an authenticated user when allowed is empty or holds the user's role.
func (s Session) IsAuthorized(allowed ...entity.Role) bool {
	if !s.IsAuthenticated() {
		return false
	}
	if len(allowed) == 0 {
		return true
	}
	for _, r := range allowed {
		if r == s.User.Role {
			return true
		}
	}
	return false
}
