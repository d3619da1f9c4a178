// Package memory is an in-process implementation of every repository port.
// It backs the test suites and the API when no database is configured.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/revops-api/internal/domain"
	"github.com/jhoicas/revops-api/internal/domain/entity"
	"github.com/jhoicas/revops-api/internal/domain/repository"
)

// Store holds all rows. The zero value is not usable; call NewStore.
type Store struct {
	mu          sync.RWMutex
	txMu        sync.Mutex
	users       map[string]entity.User
	workshops   map[string]entity.Workshop
	invites     map[string]entity.InviteCode
	managers    map[string]entity.Manager
	jobs        map[string]entity.Job
	updates     map[string]entity.JobUpdate
	payments    map[string]entity.Payment
	settlements map[string]entity.Settlement
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:       map[string]entity.User{},
		workshops:   map[string]entity.Workshop{},
		invites:     map[string]entity.InviteCode{},
		managers:    map[string]entity.Manager{},
		jobs:        map[string]entity.Job{},
		updates:     map[string]entity.JobUpdate{},
		payments:    map[string]entity.Payment{},
		settlements: map[string]entity.Settlement{},
	}
}

// Users returns the UserRepository view.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Workshops returns the WorkshopRepository view.
func (s *Store) Workshops() *WorkshopRepo { return &WorkshopRepo{s: s} }

// Invites returns the InviteCodeRepository view.
func (s *Store) Invites() *InviteCodeRepo { return &InviteCodeRepo{s: s} }

// Managers returns the ManagerRepository view.
func (s *Store) Managers() *ManagerRepo { return &ManagerRepo{s: s} }

// Jobs returns the JobRepository view.
func (s *Store) Jobs() *JobRepo { return &JobRepo{s: s} }

// Payments returns the PaymentRepository view.
func (s *Store) Payments() *PaymentRepo { return &PaymentRepo{s: s} }

// Settlements returns the SettlementRepository view.
func (s *Store) Settlements() *SettlementRepo { return &SettlementRepo{s: s} }

// Analytics returns the AnalyticsRepository view.
func (s *Store) Analytics() *AnalyticsRepo { return &AnalyticsRepo{s: s} }

// TxRunner returns a runner that undoes a failed transaction's writes.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s} }

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner serializes transactions; a failed one undoes only its own writes.
type TxRunner struct{ s *Store }

// RunRegistration runs fn over user, invite and manager repositories bound to one journal.
func (t *TxRunner) RunRegistration(_ context.Context, fn func(repository.RegistrationRepos) error) error {
	return t.run(func(j *journal) error {
		return fn(repository.RegistrationRepos{
			Users:    &UserRepo{s: t.s, j: j},
			Invites:  &InviteCodeRepo{s: t.s, j: j},
			Managers: &ManagerRepo{s: t.s, j: j},
		})
	})
}

// RunJob runs fn over job and payment repositories bound to one journal.
func (t *TxRunner) RunJob(_ context.Context, fn func(repository.JobRepos) error) error {
	return t.run(func(j *journal) error {
		return fn(repository.JobRepos{
			Jobs:     &JobRepo{s: t.s, j: j},
			Payments: &PaymentRepo{s: t.s, j: j},
		})
	})
}

func (t *TxRunner) run(fn func(*journal) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	j := &journal{}
	err := fn(j)
	if err != nil {
		t.s.mu.Lock()
		for i := len(j.undo) - 1; i >= 0; i-- {
			j.undo[i]()
		}
		t.s.mu.Unlock()
	}
	return err
}

// journal holds the inverse of each write made inside one transaction.
type journal struct{ undo []func() }

// track records how to restore m[key]. Callers hold s.mu.
func track[V any](j *journal, m map[string]V, key string) {
	if j == nil {
		return
	}
	prev, existed := m[key]
	j.undo = append(j.undo, func() {
		if existed {
			m[key] = prev
		} else {
			delete(m, key)
		}
	})
}

// ── users ────────────────────────────────────────────────────────────────────

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo in-memory users.
type UserRepo struct {
	s *Store
	j *journal
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	row := *u
	row.WorkshopID = ""
	track(r.j, r.s.users, u.ID)
	r.s.users[u.ID] = row
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

// ── workshops ────────────────────────────────────────────────────────────────

var _ repository.WorkshopRepository = (*WorkshopRepo)(nil)

// WorkshopRepo in-memory workshops.
type WorkshopRepo struct {
	s *Store
	j *journal
}

func (r *WorkshopRepo) Create(_ context.Context, w *entity.Workshop) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.workshops {
		if existing.OwnerID == w.OwnerID {
			return domain.ErrWorkshopExists
		}
	}
	track(r.j, r.s.workshops, w.ID)
	r.s.workshops[w.ID] = *w
	return nil
}

func (r *WorkshopRepo) GetByID(_ context.Context, id string) (*entity.Workshop, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if w, ok := r.s.workshops[id]; ok {
		return &w, nil
	}
	return nil, nil
}

func (r *WorkshopRepo) GetByOwner(_ context.Context, ownerID string) (*entity.Workshop, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, w := range r.s.workshops {
		if w.OwnerID == ownerID {
			return &w, nil
		}
	}
	return nil, nil
}

func (r *WorkshopRepo) Update(_ context.Context, w *entity.Workshop) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.workshops[w.ID]; !ok {
		return domain.ErrNotFound
	}
	track(r.j, r.s.workshops, w.ID)
	r.s.workshops[w.ID] = *w
	return nil
}

// ── invite codes ─────────────────────────────────────────────────────────────

var _ repository.InviteCodeRepository = (*InviteCodeRepo)(nil)

// InviteCodeRepo in-memory invite codes.
type InviteCodeRepo struct {
	s *Store
	j *journal
}

func (r *InviteCodeRepo) Create(_ context.Context, c *entity.InviteCode) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	track(r.j, r.s.invites, c.ID)
	r.s.invites[c.ID] = *c
	return nil
}

func (r *InviteCodeRepo) GetByCode(_ context.Context, code string) (*entity.InviteCode, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.invites {
		if c.Code == code {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *InviteCodeRepo) ListByWorkshop(_ context.Context, workshopID string) ([]*entity.InviteCode, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.InviteCode
	for _, c := range r.s.invites {
		if c.WorkshopID == workshopID {
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InviteCodeRepo) MarkUsed(_ context.Context, id, userID string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.invites[id]
	if !ok || !c.IsActive {
		return domain.ErrInviteCodeInvalid
	}
	if c.UsedBy != nil {
		return domain.ErrInviteCodeUsed
	}
	c.UsedBy, c.UsedAt = &userID, &at
	track(r.j, r.s.invites, id)
	r.s.invites[id] = c
	return nil
}

// ── managers ─────────────────────────────────────────────────────────────────

var _ repository.ManagerRepository = (*ManagerRepo)(nil)

// ManagerRepo in-memory memberships.
type ManagerRepo struct {
	s *Store
	j *journal
}

func (r *ManagerRepo) Create(_ context.Context, m *entity.Manager) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row := *m
	row.User = nil
	track(r.j, r.s.managers, m.ID)
	r.s.managers[m.ID] = row
	return nil
}

func (r *ManagerRepo) GetByID(_ context.Context, id string) (*entity.Manager, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if m, ok := r.s.managers[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (r *ManagerRepo) GetActiveByUser(_ context.Context, userID string) (*entity.Manager, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.managers {
		if m.UserID == userID && m.IsActive {
			return &m, nil
		}
	}
	return nil, nil
}

func (r *ManagerRepo) ListActiveByWorkshop(_ context.Context, workshopID string) ([]*entity.Manager, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Manager
	for _, m := range r.s.managers {
		if m.WorkshopID != workshopID || !m.IsActive {
			continue
		}
		if u, ok := r.s.users[m.UserID]; ok {
			m.User = &u
		}
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JoinedAt.Before(out[j].JoinedAt) })
	return out, nil
}

func (r *ManagerRepo) Deactivate(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.managers[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.IsActive = false
	track(r.j, r.s.managers, id)
	r.s.managers[id] = m
	return nil
}
