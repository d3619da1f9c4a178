package memory

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/jhoicas/revops-api/internal/domain"
	"github.com/jhoicas/revops-api/internal/domain/entity"
	"github.com/jhoicas/revops-api/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

// JobRepo in-memory jobs and timeline.
type JobRepo struct {
	s *Store
	j *journal
}

func (r *JobRepo) Create(_ context.Context, j *entity.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row := *j
	row.ManagerName = ""
	track(r.j, r.s.jobs, j.ID)
	r.s.jobs[j.ID] = row
	return nil
}

func (r *JobRepo) GetByID(_ context.Context, id string) (*entity.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	j, ok := r.s.jobs[id]
	if !ok {
		return nil, nil
	}
	j.ManagerName = r.s.users[j.ManagerID].Name
	return &j, nil
}

func (r *JobRepo) List(_ context.Context, f repository.JobFilter) ([]*entity.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Job
	for _, j := range r.s.jobs {
		if f.WorkshopID != "" && j.WorkshopID != f.WorkshopID {
			continue
		}
		if f.ManagerID != "" && j.ManagerID != f.ManagerID {
			continue
		}
		if f.Status != "" && j.Status != f.Status {
			continue
		}
		j.ManagerName = r.s.users[j.ManagerID].Name
		out = append(out, &j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

func (r *JobRepo) Update(_ context.Context, j *entity.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.jobs[j.ID]; !ok {
		return domain.ErrNotFound
	}
	row := *j
	row.ManagerName = ""
	track(r.j, r.s.jobs, j.ID)
	r.s.jobs[j.ID] = row
	return nil
}

func (r *JobRepo) AddUpdate(_ context.Context, u *entity.JobUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	track(r.j, r.s.updates, u.ID)
	r.s.updates[u.ID] = *u
	return nil
}

func (r *JobRepo) ListUpdates(_ context.Context, jobID string) ([]*entity.JobUpdate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.JobUpdate
	for _, u := range r.s.updates {
		if u.JobID == jobID {
			out = append(out, &u)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Timestamp.After(out[k].Timestamp) })
	return out, nil
}

// ── payments ─────────────────────────────────────────────────────────────────

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo in-memory payments.
type PaymentRepo struct {
	s *Store
	j *journal
}

func (r *PaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	track(r.j, r.s.payments, p.ID)
	r.s.payments[p.ID] = *p
	return nil
}

func (r *PaymentRepo) GetByID(_ context.Context, id string) (*entity.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.payments[id]
	if !ok {
		return nil, nil
	}
	r.decorate(&p)
	return &p, nil
}

func (r *PaymentRepo) List(_ context.Context, f repository.PaymentFilter) ([]*entity.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if f.WorkshopID != "" && r.s.jobs[p.JobID].WorkshopID != f.WorkshopID {
			continue
		}
		if f.CollectedBy != "" && p.CollectedBy != f.CollectedBy {
			continue
		}
		if f.JobIDs != nil && !slices.Contains(f.JobIDs, p.JobID) {
			continue
		}
		if f.Confirmed != nil && p.ConfirmedByOwner != *f.Confirmed {
			continue
		}
		r.decorate(&p)
		out = append(out, &p)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].PaymentDate.After(out[k].PaymentDate) })
	return out, nil
}

func (r *PaymentRepo) Confirm(ctx context.Context, id string, at time.Time) (*entity.Payment, error) {
	r.s.mu.Lock()
	p, ok := r.s.payments[id]
	if ok {
		p.ConfirmedByOwner = true
		if p.ConfirmationDate == nil {
			p.ConfirmationDate = &at
		}
		track(r.j, r.s.payments, id)
		r.s.payments[id] = p
	}
	r.s.mu.Unlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PaymentRepo) decorate(p *entity.Payment) {
	j := r.s.jobs[p.JobID]
	p.CustomerName, p.VehicleNumber = j.CustomerName, j.VehicleNumber
	p.ManagerName = r.s.users[p.CollectedBy].Name
}

// ── settlements ──────────────────────────────────────────────────────────────

var _ repository.SettlementRepository = (*SettlementRepo)(nil)

// SettlementRepo in-memory settlements.
type SettlementRepo struct {
	s *Store
	j *journal
}

func (r *SettlementRepo) Create(_ context.Context, st *entity.Settlement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row := *st
	row.JobIDs = slices.Clone(st.JobIDs)
	track(r.j, r.s.settlements, st.ID)
	r.s.settlements[st.ID] = row
	return nil
}

func (r *SettlementRepo) GetByID(_ context.Context, id string) (*entity.Settlement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st, ok := r.s.settlements[id]
	if !ok {
		return nil, nil
	}
	st.ManagerName = r.s.users[st.ManagerID].Name
	return &st, nil
}

func (r *SettlementRepo) List(_ context.Context, f repository.SettlementFilter) ([]*entity.Settlement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Settlement
	for _, st := range r.s.settlements {
		if f.WorkshopID != "" && st.WorkshopID != f.WorkshopID {
			continue
		}
		if f.ManagerID != "" && st.ManagerID != f.ManagerID {
			continue
		}
		if f.Confirmed != nil && st.ConfirmedByOwner != *f.Confirmed {
			continue
		}
		st.ManagerName = r.s.users[st.ManagerID].Name
		out = append(out, &st)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].SubmittedDate.After(out[k].SubmittedDate) })
	return out, nil
}

func (r *SettlementRepo) Confirm(ctx context.Context, id string, at time.Time) (*entity.Settlement, error) {
	r.s.mu.Lock()
	st, ok := r.s.settlements[id]
	if ok {
		st.ConfirmedByOwner = true
		if st.ConfirmationDate == nil {
			st.ConfirmationDate = &at
		}
		track(r.j, r.s.settlements, id)
		r.s.settlements[id] = st
	}
	r.s.mu.Unlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}
