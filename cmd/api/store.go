package main

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/revops-api/internal/domain/repository"
	"github.com/jhoicas/revops-api/internal/infrastructure/memory"
	"github.com/jhoicas/revops-api/internal/infrastructure/postgres"
)

// repositories is the persistence the use cases are built on.
type repositories struct {
	users       repository.UserRepository
	workshops   repository.WorkshopRepository
	invites     repository.InviteCodeRepository
	managers    repository.ManagerRepository
	jobs        repository.JobRepository
	payments    repository.PaymentRepository
	settlements repository.SettlementRepository
	analytics   repository.AnalyticsRepository
	tx          repository.TxRunner
}

func postgresRepositories(pool *pgxpool.Pool) repositories {
	return repositories{
		users:       postgres.NewUserRepository(pool),
		workshops:   postgres.NewWorkshopRepository(pool),
		invites:     postgres.NewInviteCodeRepository(pool),
		managers:    postgres.NewManagerRepository(pool),
		jobs:        postgres.NewJobRepository(pool),
		payments:    postgres.NewPaymentRepository(pool),
		settlements: postgres.NewSettlementRepository(pool),
		analytics:   postgres.NewAnalyticsRepository(pool),
		tx:          postgres.NewTxRunner(pool),
	}
}

func memoryRepositories(store *memory.Store) repositories {
	return repositories{
		users:       store.Users(),
		workshops:   store.Workshops(),
		invites:     store.Invites(),
		managers:    store.Managers(),
		jobs:        store.Jobs(),
		payments:    store.Payments(),
		settlements: store.Settlements(),
		analytics:   store.Analytics(),
		tx:          store.TxRunner(),
	}
}
