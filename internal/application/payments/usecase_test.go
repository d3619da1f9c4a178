package payments_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/jhoicas/revops-api/internal/application/auth"
	"github.com/jhoicas/revops-api/internal/application/dto"
	"github.com/jhoicas/revops-api/internal/application/jobs"
	"github.com/jhoicas/revops-api/internal/application/payments"
	"github.com/jhoicas/revops-api/internal/domain"
	"github.com/jhoicas/revops-api/internal/domain/entity"
	"github.com/jhoicas/revops-api/internal/domain/job"
	"github.com/jhoicas/revops-api/internal/domain/repository"
	"github.com/jhoicas/revops-api/internal/infrastructure/memory"
)

var errTimeline = errors.New("timeline unavailable")

// brokenTimeline lets the row write through and fails its timeline entry.
type brokenTimeline struct{ *memory.TxRunner }

func (b brokenTimeline) RunJob(ctx context.Context, fn func(repository.JobRepos) error) error {
	return b.TxRunner.RunJob(ctx, func(r repository.JobRepos) error {
		r.Jobs = failingUpdates{r.Jobs}
		return fn(r)
	})
}

type failingUpdates struct{ repository.JobRepository }

func (failingUpdates) AddUpdate(context.Context, *entity.JobUpdate) error { return errTimeline }

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) Invalidate(context.Context, string) { c.calls++ }

type PaymentSuite struct {
	suite.Suite
	ctx     context.Context
	store   *memory.Store
	jobs    *jobs.JobUseCase
	uc      *payments.PaymentUseCase
	inv     *countingInvalidator
	owner   auth.SessionUser
	manager auth.SessionUser
	other   auth.SessionUser
	jobID   string
}

func TestPaymentSuite(t *testing.T) {
	suite.Run(t, new(PaymentSuite))
}

func (s *PaymentSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.inv = &countingInvalidator{}
	s.owner = auth.SessionUser{ID: "owner-1", Role: entity.RoleOwner, WorkshopID: "ws-1"}
	s.manager = auth.SessionUser{ID: "manager-1", Role: entity.RoleManager, WorkshopID: "ws-1"}
	s.other = auth.SessionUser{ID: "manager-2", Role: entity.RoleManager, WorkshopID: "ws-1"}

	s.Require().NoError(s.store.Workshops().Create(s.ctx, &entity.Workshop{ID: "ws-1", OwnerID: s.owner.ID, Name: "G", CurrencyCode: "INR"}))
	s.Require().NoError(s.store.Users().Create(s.ctx, &entity.User{ID: s.manager.ID, Name: "Manu", Email: "m@g.test", Role: entity.RoleManager}))

	s.jobs = jobs.NewJobUseCase(s.store.Jobs(), s.store.Payments(), s.store.TxRunner(), job.Permissive(), nil)
	s.uc = payments.NewPaymentUseCase(payments.Deps{
		Jobs:        s.jobs,
		JobRepo:     s.store.Jobs(),
		Payments:    s.store.Payments(),
		Settlements: s.store.Settlements(),
		Workshops:   s.store.Workshops(),
		Tx:          s.store.TxRunner(),
		Invalidator: s.inv,
		Locale:      "en-US",
	})

	created, err := s.jobs.Create(s.ctx, s.manager, dto.CreateJobRequest{
		CustomerName: "Ravi", Phone: "1", CarModel: "Swift", VehicleNumber: "KA01",
		WorkDescription: "Service", EstimatedAmount: decimal.NewFromInt(5000), PlannedCompletionDays: 1,
	})
	s.Require().NoError(err)
	s.jobID = created.ID
}

func (s *PaymentSuite) record(amount int64) *dto.RecordPaymentResponse {
	resp, err := s.uc.Record(s.ctx, s.manager, dto.CreatePaymentRequest{
		JobID: s.jobID, Amount: decimal.NewFromInt(amount), PaymentType: "partial",
	})
	s.Require().NoError(err)
	return resp
}

// Job 5000, advance 0, partial 2000 → paid 2000, remaining 3000, still pending.
func (s *PaymentSuite) TestRecord_UpdatesFinancials() {
	resp := s.record(2000)
	s.True(resp.TotalPaid.Equal(decimal.NewFromInt(2000)))
	s.True(resp.RemainingAmount.Equal(decimal.NewFromInt(3000)))
	s.Equal("pending", resp.JobStatus)
	s.False(resp.Payment.ConfirmedByOwner)
	s.Equal("Manu", resp.Payment.ManagerName)
	s.Equal(1, s.inv.calls)

	detail, err := s.jobs.Get(s.ctx, s.owner, s.jobID)
	s.Require().NoError(err)
	var descs []string
	for _, u := range detail.Updates {
		descs = append(descs, u.Description)
	}
	s.Contains(descs, "Payment of ₹2,000.00 recorded (partial)")
	s.True(detail.RemainingAmount.Equal(decimal.NewFromInt(3000)))
}

func (s *PaymentSuite) TestRecord_Overpayment() {
	s.record(4000)
	resp := s.record(2500)
	s.True(resp.TotalPaid.Equal(decimal.NewFromInt(6500)))
	s.True(resp.RemainingAmount.IsZero())
}

func (s *PaymentSuite) TestRecord_Rules() {
	_, err := s.uc.Record(s.ctx, s.owner, dto.CreatePaymentRequest{JobID: s.jobID, Amount: decimal.NewFromInt(1), PaymentType: "final"})
	s.ErrorIs(err, domain.ErrForbidden)

	_, err = s.uc.Record(s.ctx, s.manager, dto.CreatePaymentRequest{JobID: s.jobID, Amount: decimal.Zero, PaymentType: "final"})
	s.ErrorIs(err, domain.ErrValidation)

	_, err = s.uc.Record(s.ctx, s.manager, dto.CreatePaymentRequest{JobID: s.jobID, Amount: decimal.NewFromInt(1), PaymentType: "barter"})
	s.ErrorIs(err, domain.ErrValidation)

	_, err = s.uc.Record(s.ctx, s.other, dto.CreatePaymentRequest{JobID: s.jobID, Amount: decimal.NewFromInt(1), PaymentType: "final"})
	s.ErrorIs(err, domain.ErrForbidden, "managers only collect on their own jobs")
}

func (s *PaymentSuite) TestRecord_TimelineFailureLeavesNoPayment() {
	uc := payments.NewPaymentUseCase(payments.Deps{
		Jobs:        s.jobs,
		JobRepo:     s.store.Jobs(),
		Payments:    s.store.Payments(),
		Settlements: s.store.Settlements(),
		Workshops:   s.store.Workshops(),
		Tx:          brokenTimeline{s.store.TxRunner()},
		Invalidator: s.inv,
	})
	_, err := uc.Record(s.ctx, s.manager, dto.CreatePaymentRequest{
		JobID: s.jobID, Amount: decimal.NewFromInt(2000), PaymentType: "partial",
	})
	s.ErrorIs(err, errTimeline)
	s.Zero(s.inv.calls)

	list, err := s.uc.List(s.ctx, s.owner, dto.PaymentListQuery{JobID: s.jobID})
	s.Require().NoError(err)
	s.Empty(list, "a retry must not double count")

	// the next attempt persists exactly one payment
	resp := s.record(2000)
	s.True(resp.TotalPaid.Equal(decimal.NewFromInt(2000)))
}

func (s *PaymentSuite) TestConfirm_PaymentOfMissingJob() {
	s.Require().NoError(s.store.Payments().Create(s.ctx, &entity.Payment{
		ID: "orphan", JobID: "gone", Amount: decimal.NewFromInt(10),
		PaymentType: entity.PaymentFinal, CollectedBy: s.manager.ID,
	}))
	_, err := s.uc.Confirm(s.ctx, s.owner, "orphan")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PaymentSuite) TestConfirm_IsMonotoneAndIdempotent() {
	resp := s.record(2000)

	first, err := s.uc.Confirm(s.ctx, s.owner, resp.Payment.ID)
	s.Require().NoError(err)
	s.True(first.ConfirmedByOwner)
	s.Require().NotNil(first.ConfirmationDate)

	again, err := s.uc.Confirm(s.ctx, s.owner, resp.Payment.ID)
	s.Require().NoError(err)
	s.True(again.ConfirmedByOwner)
	s.Equal(*first.ConfirmationDate, *again.ConfirmationDate, "original confirmation date is kept")

	detail, err := s.jobs.Get(s.ctx, s.owner, s.jobID)
	s.Require().NoError(err)
	s.True(detail.RemainingAmount.Equal(decimal.NewFromInt(3000)), "confirming does not change remaining")
	s.True(detail.ConfirmedPaid.Equal(decimal.NewFromInt(2000)))

	_, err = s.uc.Confirm(s.ctx, s.manager, resp.Payment.ID)
	s.ErrorIs(err, domain.ErrForbidden)
	_, err = s.uc.Confirm(s.ctx, auth.SessionUser{ID: "o2", Role: entity.RoleOwner, WorkshopID: "ws-2"}, resp.Payment.ID)
	s.ErrorIs(err, domain.ErrForbidden)
	_, err = s.uc.Confirm(s.ctx, s.owner, "missing")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PaymentSuite) TestList_Filters() {
	a := s.record(1000)
	s.record(500)
	_, err := s.uc.Confirm(s.ctx, s.owner, a.Payment.ID)
	s.Require().NoError(err)

	all, err := s.uc.List(s.ctx, s.owner, dto.PaymentListQuery{})
	s.Require().NoError(err)
	s.Len(all, 2)
	s.Equal("Ravi", all[0].CustomerName)

	pending, err := s.uc.List(s.ctx, s.owner, dto.PaymentListQuery{Confirmed: "false"})
	s.Require().NoError(err)
	s.Len(pending, 1)

	mine, err := s.uc.List(s.ctx, s.other, dto.PaymentListQuery{})
	s.Require().NoError(err)
	s.Empty(mine)

	_, err = s.uc.List(s.ctx, s.owner, dto.PaymentListQuery{Confirmed: "maybe"})
	s.ErrorIs(err, domain.ErrValidation)
}

func (s *PaymentSuite) TestSettlement_Lifecycle() {
	st, err := s.uc.Submit(s.ctx, s.manager, dto.CreateSettlementRequest{
		Amount: decimal.NewFromInt(2000), JobIDs: []string{s.jobID, s.jobID, " "}, Notes: "cash",
	})
	s.Require().NoError(err)
	s.Equal([]string{s.jobID}, st.JobIDs)
	s.False(st.ConfirmedByOwner)

	confirmed, err := s.uc.ConfirmSettlement(s.ctx, s.owner, st.ID)
	s.Require().NoError(err)
	s.True(confirmed.ConfirmedByOwner)
	again, err := s.uc.ConfirmSettlement(s.ctx, s.owner, st.ID)
	s.Require().NoError(err)
	s.Equal(*confirmed.ConfirmationDate, *again.ConfirmationDate)

	list, err := s.uc.ListSettlements(s.ctx, s.owner, dto.SettlementListQuery{Confirmed: "true"})
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *PaymentSuite) TestSettlement_Rules() {
	_, err := s.uc.Submit(s.ctx, s.manager, dto.CreateSettlementRequest{Amount: decimal.NewFromInt(1)})
	s.ErrorIs(err, domain.ErrValidation)
	_, err = s.uc.Submit(s.ctx, s.other, dto.CreateSettlementRequest{Amount: decimal.NewFromInt(1), JobIDs: []string{s.jobID}})
	s.ErrorIs(err, domain.ErrForbidden)
	_, err = s.uc.Submit(s.ctx, s.owner, dto.CreateSettlementRequest{Amount: decimal.NewFromInt(1), JobIDs: []string{s.jobID}})
	s.ErrorIs(err, domain.ErrForbidden)
	_, err = s.uc.Submit(s.ctx, s.manager, dto.CreateSettlementRequest{Amount: decimal.NewFromInt(1), JobIDs: []string{"missing"}})
	s.ErrorIs(err, domain.ErrNotFound)
}

func TestParseConfirmed(t *testing.T) {
	v, err := payments.ParseConfirmed("")
	require.NoError(t, err)
	assert.Nil(t, v)
	v, err = payments.ParseConfirmed("true")
	require.NoError(t, err)
	assert.True(t, *v)
	_, err = payments.ParseConfirmed("yes")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

