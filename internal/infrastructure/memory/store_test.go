package memory_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/revops-api/internal/domain/entity"
	"github.com/jhoicas/revops-api/internal/domain/repository"
	"github.com/jhoicas/revops-api/internal/infrastructure/memory"
)

var errAbort = errors.New("abort")

func TestRunRegistration_RollbackUndoesOnlyItsWrites(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Invites().Create(ctx, &entity.InviteCode{ID: "inv-1", Code: "ABCD1234", WorkshopID: "ws-1", IsActive: true}))

	err := store.TxRunner().RunRegistration(ctx, func(r repository.RegistrationRepos) error {
		require.NoError(t, r.Users.Create(ctx, &entity.User{ID: "u-1", Email: "m@g.test", Role: entity.RoleManager}))
		require.NoError(t, r.Invites.MarkUsed(ctx, "inv-1", "u-1", time.Now()))
		require.NoError(t, r.Managers.Create(ctx, &entity.Manager{ID: "m-1", UserID: "u-1", WorkshopID: "ws-1", IsActive: true}))
		// written outside the transaction while it is open
		require.NoError(t, store.Users().Create(ctx, &entity.User{ID: "owner", Email: "o@g.test", Role: entity.RoleOwner}))
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	u, err := store.Users().GetByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Nil(t, u)
	m, err := store.Managers().GetByID(ctx, "m-1")
	require.NoError(t, err)
	assert.Nil(t, m)
	code, err := store.Invites().GetByCode(ctx, "ABCD1234")
	require.NoError(t, err)
	require.NotNil(t, code)
	assert.Nil(t, code.UsedBy, "invite is usable again")

	owner, err := store.Users().GetByID(ctx, "owner")
	require.NoError(t, err)
	assert.NotNil(t, owner, "concurrent write survives the rollback")
}

func TestRunRegistration_ConcurrentOwnersSurviveFailedJoins(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	const n = 50

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Users().Create(ctx, &entity.User{ID: fmt.Sprintf("owner-%d", i), Email: fmt.Sprintf("o%d@g.test", i), Role: entity.RoleOwner})
		}()
		go func() {
			defer wg.Done()
			_ = store.TxRunner().RunRegistration(ctx, func(r repository.RegistrationRepos) error {
				if err := r.Users.Create(ctx, &entity.User{ID: fmt.Sprintf("mgr-%d", i), Email: fmt.Sprintf("m%d@g.test", i), Role: entity.RoleManager}); err != nil {
					return err
				}
				return errAbort
			})
		}()
	}
	wg.Wait()

	for i := range n {
		u, err := store.Users().GetByID(ctx, fmt.Sprintf("owner-%d", i))
		require.NoError(t, err)
		assert.NotNil(t, u, "owner-%d", i)
		m, err := store.Users().GetByID(ctx, fmt.Sprintf("mgr-%d", i))
		require.NoError(t, err)
		assert.Nil(t, m, "mgr-%d", i)
	}
}

func TestRunJob_RollbackRestoresUpdatedRow(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Jobs().Create(ctx, &entity.Job{ID: "j-1", Status: entity.JobPending, InternalNotes: "before"}))

	err := store.TxRunner().RunJob(ctx, func(r repository.JobRepos) error {
		require.NoError(t, r.Jobs.Update(ctx, &entity.Job{ID: "j-1", Status: entity.JobInProgress, InternalNotes: "after"}))
		require.NoError(t, r.Payments.Create(ctx, &entity.Payment{ID: "p-1", JobID: "j-1"}))
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	j, err := store.Jobs().GetByID(ctx, "j-1")
	require.NoError(t, err)
	require.NotNil(t, j)
	assert.Equal(t, "before", j.InternalNotes)
	assert.Equal(t, entity.JobPending, j.Status)
	p, err := store.Payments().GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Nil(t, p)

	require.NoError(t, store.TxRunner().RunJob(ctx, func(r repository.JobRepos) error {
		return r.Payments.Create(ctx, &entity.Payment{ID: "p-2", JobID: "j-1"})
	}))
	p, err = store.Payments().GetByID(ctx, "p-2")
	require.NoError(t, err)
	assert.NotNil(t, p)
}
