package documents_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/revops-api/internal/application/auth"
	"github.com/jhoicas/revops-api/internal/application/documents"
	"github.com/jhoicas/revops-api/internal/application/jobs"
	"github.com/jhoicas/revops-api/internal/domain"
	"github.com/jhoicas/revops-api/internal/domain/entity"
	"github.com/jhoicas/revops-api/internal/domain/job"
	"github.com/jhoicas/revops-api/internal/infrastructure/memory"
)

type stubRenderer struct{ last documents.JobDocument }

func (r *stubRenderer) JobCard(doc documents.JobDocument) ([]byte, error) {
	r.last = doc
	return []byte("%PDF-card"), nil
}

func (r *stubRenderer) Invoice(doc documents.JobDocument) ([]byte, error) {
	r.last = doc
	return []byte("%PDF-invoice"), nil
}

type memArchive struct {
	keys []string
	err  error
}

func (a *memArchive) Put(_ context.Context, key, _ string, _ []byte) error {
	a.keys = append(a.keys, key)
	return a.err
}

var owner = auth.SessionUser{ID: "owner-1", Role: entity.RoleOwner, WorkshopID: "ws-1"}

func setup(t *testing.T, archive *memArchive) (*documents.DocumentUseCase, *stubRenderer) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Workshops().Create(ctx, &entity.Workshop{ID: "ws-1", OwnerID: owner.ID, Name: "Main Garage", GSTNumber: "29ABCDE1234F1Z5", CurrencyCode: "USD"}))
	require.NoError(t, store.Jobs().Create(ctx, &entity.Job{
		ID: "0123456789abcdef", WorkshopID: "ws-1", ManagerID: "m-1", CustomerName: "Ravi",
		EstimatedAmount: decimal.NewFromInt(1500), Status: entity.JobCompleted, CreatedAt: time.Now(),
	}))
	require.NoError(t, store.Payments().Create(ctx, &entity.Payment{ID: "p-1", JobID: "0123456789abcdef", Amount: decimal.NewFromInt(500), PaymentDate: time.Now()}))

	jobUC := jobs.NewJobUseCase(store.Jobs(), store.Payments(), store.TxRunner(), job.Permissive(), nil)
	r := &stubRenderer{}
	var a documents.Archive
	if archive != nil {
		a = archive
	}
	return documents.NewDocumentUseCase(jobUC, store.Payments(), store.Workshops(), r, a, "en-US", nil), r
}

func TestInvoice_FormatsWithWorkshopCurrency(t *testing.T) {
	uc, r := setup(t, nil)
	f, err := uc.Invoice(context.Background(), owner, "0123456789abcdef")
	require.NoError(t, err)

	assert.Equal(t, "invoice_01234567.pdf", f.Name)
	assert.Equal(t, []byte("%PDF-invoice"), f.Content)
	assert.Equal(t, "$1,500.00", r.last.Estimated)
	assert.Equal(t, "$500.00", r.last.Paid)
	assert.Equal(t, "$1,000.00", r.last.Balance)
	assert.Equal(t, "29ABCDE1234F1Z5", r.last.GSTNumber)
}

func TestJobCard_ArchivesAndToleratesArchiveFailure(t *testing.T) {
	archive := &memArchive{err: errors.New("bucket unavailable")}
	uc, _ := setup(t, archive)

	f, err := uc.JobCard(context.Background(), owner, "0123456789abcdef")
	require.NoError(t, err, "archive failures are not returned")
	assert.Equal(t, "job_card_01234567.pdf", f.Name)
	assert.Equal(t, []string{"documents/ws-1/job_card_01234567.pdf"}, archive.keys)
}

func TestDocuments_Access(t *testing.T) {
	uc, _ := setup(t, nil)
	_, err := uc.JobCard(context.Background(), auth.SessionUser{ID: "m-2", Role: entity.RoleManager, WorkshopID: "ws-1"}, "0123456789abcdef")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Invoice(context.Background(), owner, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", documents.ShortID("abc"))
	assert.Equal(t, "abcdefgh", documents.ShortID("abcdefghijk"))
}
