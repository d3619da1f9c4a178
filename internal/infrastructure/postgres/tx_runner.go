package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/revops-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner runs callbacks inside a PostgreSQL transaction.
type TxRunner struct {
	db DB
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(db DB) *TxRunner {
	return &TxRunner{db: db}
}

// RunRegistration begins a transaction, hands fn the user, invite and manager
// repositories bound to it, and commits when fn returns nil.
func (r *TxRunner) RunRegistration(ctx context.Context, fn func(repository.RegistrationRepos) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := repository.RegistrationRepos{
		Users:    NewUserRepository(tx),
		Invites:  NewInviteCodeRepository(tx),
		Managers: NewManagerRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunJob is RunRegistration for a job or payment row and its timeline entry.
func (r *TxRunner) RunJob(ctx context.Context, fn func(repository.JobRepos) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := repository.JobRepos{
		Jobs:     NewJobRepository(tx),
		Payments: NewPaymentRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
