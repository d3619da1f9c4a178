package job

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/revops-api/internal/domain"
	"github.com/jhoicas/revops-api/internal/domain/entity"
)

// TransitionPolicy decides whether a job may move between two statuses.
type TransitionPolicy struct {
	name    string
	allowed map[entity.JobStatus][]entity.JobStatus // nil means any → any
}

// Permissive allows any status change except closing an unpaid job.
func Permissive() TransitionPolicy {
	return TransitionPolicy{name: "permissive"}
}

// Strict follows the forward flow with the credit and close side branches.
func Strict() TransitionPolicy {
	return TransitionPolicy{
		name: "strict",
		allowed: map[entity.JobStatus][]entity.JobStatus{
			entity.JobPending:         {entity.JobInProgress, entity.JobClosed},
			entity.JobInProgress:      {entity.JobWaitingForParts, entity.JobCompleted},
			entity.JobWaitingForParts: {entity.JobInProgress, entity.JobCompleted},
			entity.JobCompleted:       {entity.JobDelivered, entity.JobCreditPending, entity.JobClosed},
			entity.JobDelivered:       {entity.JobCreditPending, entity.JobClosed},
			entity.JobCreditPending:   {entity.JobClosed},
			entity.JobClosed:          {},
		},
	}
}

// PolicyFor picks Strict when strict is set.
func PolicyFor(strict bool) TransitionPolicy {
	if strict {
		return Strict()
	}
	return Permissive()
}

// Name is "permissive" or "strict".
func (p TransitionPolicy) Name() string { return p.name }

// CheckEdit rejects an edit that leaves a closed job owing more than it did
// before. A job closed from credit_pending may carry a balance; it may not grow.
func (p TransitionPolicy) CheckEdit(status entity.JobStatus, before, after decimal.Decimal) error {
	if status == entity.JobClosed && after.IsPositive() && after.GreaterThan(before) {
		return fmt.Errorf("closed job remaining %s → %s: %w", before.String(), after.String(), domain.ErrOutstandingBalance)
	}
	return nil
}

// Check validates from → to for a job with the given remaining balance.
// Same-status updates pass here; edits within a status go through CheckEdit.
func (p TransitionPolicy) Check(from, to entity.JobStatus, remaining decimal.Decimal) error {
	if from == to {
		return nil
	}
	if to == entity.JobClosed && remaining.IsPositive() && from != entity.JobCreditPending {
		return fmt.Errorf("close from %s with %s remaining: %w", from, remaining.String(), domain.ErrOutstandingBalance)
	}
	if p.allowed == nil {
		return nil
	}
	for _, next := range p.allowed[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%s → %s: %w", from, to, domain.ErrInvalidTransition)
}
