package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/revops-api/internal/domain/entity"
)

func TestSession_States(t *testing.T) {
	assert.False(t, Loading().IsAuthenticated(), "loading is never authenticated")
	assert.False(t, Anonymous().IsAuthenticated())

	s := Authenticated(SessionUser{ID: "u-1", Role: entity.RoleManager})
	assert.True(t, s.IsAuthenticated())
	assert.False(t, Session{User: s.User, Loading: true}.IsAuthenticated())
}

func TestSession_IsAuthorized(t *testing.T) {
	owner := Authenticated(SessionUser{ID: "u-1", Role: entity.RoleOwner})
	manager := Authenticated(SessionUser{ID: "u-2", Role: entity.RoleManager})

	assert.True(t, owner.IsAuthorized(), "no roles means any authenticated user")
	assert.True(t, owner.IsAuthorized(entity.RoleOwner))
	assert.False(t, manager.IsAuthorized(entity.RoleOwner))
	assert.True(t, manager.IsAuthorized(entity.RoleOwner, entity.RoleManager))
	assert.False(t, Anonymous().IsAuthorized())
	assert.False(t, Loading().IsAuthorized(entity.RoleOwner))
}

func TestSessionUser_NeedsWorkshopSetup(t *testing.T) {
	assert.True(t, (&SessionUser{Role: entity.RoleOwner}).NeedsWorkshopSetup())
	assert.False(t, (&SessionUser{Role: entity.RoleOwner, WorkshopID: "w"}).NeedsWorkshopSetup())
	assert.False(t, (&SessionUser{Role: entity.RoleManager}).NeedsWorkshopSetup())
	var nilUser *SessionUser
	assert.False(t, nilUser.NeedsWorkshopSetup())
}
