package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servly/pricing-api/internal/model"
	"github.com/servly/pricing-api/internal/repository/postgres"
	apperrors "github.com/servly/pricing-api/pkg/errors"
	"github.com/servly/pricing-api/pkg/logger"
	"github.com/servly/pricing-api/pkg/metrics"
)

// Registered once; prometheus rejects duplicate collector registration
// within one process.
var testMetrics = metrics.NewMetrics("test", "pricing_service")

type stubPricingRepo struct {
	records   []*model.ServicePricingRecord
	record    *model.ServicePricingRecord
	getErr    error
	updateErr error
	exists    bool
	existsErr error
	listErr   error

	lastUpdate *model.PricingUpdate
}

func (r *stubPricingRepo) ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*model.ServicePricingRecord, error) {
	return r.records, r.listErr
}

func (r *stubPricingRepo) Get(ctx context.Context, professionalServiceID uuid.UUID) (*model.ServicePricingRecord, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.record, nil
}

func (r *stubPricingRepo) Update(ctx context.Context, professionalServiceID uuid.UUID, update *model.PricingUpdate) (*model.ServicePricingRecord, error) {
	r.lastUpdate = update
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	return r.record, nil
}

func (r *stubPricingRepo) ProfessionalExists(ctx context.Context, professionalID uuid.UUID) (bool, error) {
	return r.exists, r.existsErr
}

type stubOutboxRepo struct {
	events    []*model.OutboxEvent
	createErr error
}

func (r *stubOutboxRepo) Create(ctx context.Context, event *model.OutboxEvent) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.events = append(r.events, event)
	return nil
}

func (r *stubOutboxRepo) GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	return nil, nil
}

func (r *stubOutboxRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string) error {
	return nil
}

func (r *stubOutboxRepo) DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

func floatPtr(f float64) *float64 { return &f }

func newTestService(repo *stubPricingRepo, outbox *stubOutboxRepo) *Service {
	return NewService(repo, outbox, logger.NewLogger(nil), testMetrics)
}

func TestListPricing(t *testing.T) {
	repo := &stubPricingRepo{
		exists:  true,
		records: []*model.ServicePricingRecord{{ProfessionalServiceID: uuid.New()}},
	}
	svc := newTestService(repo, &stubOutboxRepo{})

	records, err := svc.ListPricing(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestListPricingValidatesID(t *testing.T) {
	svc := newTestService(&stubPricingRepo{}, &stubOutboxRepo{})

	_, err := svc.ListPricing(context.Background(), uuid.Nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrBadRequest, apperrors.Code(err))
}

func TestListPricingUnknownProfessional(t *testing.T) {
	svc := newTestService(&stubPricingRepo{exists: false}, &stubOutboxRepo{})

	_, err := svc.ListPricing(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetPricingNotFound(t *testing.T) {
	svc := newTestService(&stubPricingRepo{getErr: postgres.ErrRecordNotFound}, &stubOutboxRepo{})

	_, err := svc.GetPricing(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdatePricing(t *testing.T) {
	record := &model.ServicePricingRecord{
		ProfessionalServiceID: uuid.New(),
		CustomPrice:           floatPtr(75),
	}
	repo := &stubPricingRepo{record: record}
	outbox := &stubOutboxRepo{}
	svc := newTestService(repo, outbox)

	got, err := svc.UpdatePricing(context.Background(), record.ProfessionalServiceID, &model.PricingUpdate{
		CustomPrice:     floatPtr(75),
		AdditionalNotes: "includes disposal",
	})
	require.NoError(t, err)
	assert.Equal(t, record, got)
	assert.Equal(t, "includes disposal", repo.lastUpdate.AdditionalNotes)

	// The change was queued for downstream consumers.
	require.Len(t, outbox.events, 1)
	assert.Equal(t, model.EventPricingUpdated, outbox.events[0].EventType)
}

func TestUpdatePricingValidation(t *testing.T) {
	svc := newTestService(&stubPricingRepo{}, &stubOutboxRepo{})
	id := uuid.New()

	_, err := svc.UpdatePricing(context.Background(), uuid.Nil, &model.PricingUpdate{CustomPrice: floatPtr(10)})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.UpdatePricing(context.Background(), id, nil)
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.UpdatePricing(context.Background(), id, &model.PricingUpdate{})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.UpdatePricing(context.Background(), id, &model.PricingUpdate{CustomPrice: floatPtr(-1)})
	assert.True(t, apperrors.IsValidation(err))
}

func TestUpdatePricingNotFound(t *testing.T) {
	svc := newTestService(&stubPricingRepo{updateErr: postgres.ErrRecordNotFound}, &stubOutboxRepo{})

	_, err := svc.UpdatePricing(context.Background(), uuid.New(), &model.PricingUpdate{CustomPrice: floatPtr(10)})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdatePricingOutboxFailureIsNotFatal(t *testing.T) {
	record := &model.ServicePricingRecord{ProfessionalServiceID: uuid.New()}
	repo := &stubPricingRepo{record: record}
	outbox := &stubOutboxRepo{createErr: errors.New("outbox table locked")}
	svc := newTestService(repo, outbox)

	got, err := svc.UpdatePricing(context.Background(), record.ProfessionalServiceID, &model.PricingUpdate{CustomPrice: floatPtr(10)})
	require.NoError(t, err)
	assert.Equal(t, record, got)
}
