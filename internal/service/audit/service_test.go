package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servly/pricing-api/internal/model"
	apperrors "github.com/servly/pricing-api/pkg/errors"
	"github.com/servly/pricing-api/pkg/logger"
	"github.com/servly/pricing-api/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("test", "audit_service")

type stubAuditRepo struct {
	snapshots []*model.QuantificationSnapshot
	createErr error
	lastLimit int
}

func (r *stubAuditRepo) Create(ctx context.Context, snap *model.QuantificationSnapshot) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.snapshots = append(r.snapshots, snap)
	return nil
}

func (r *stubAuditRepo) ListByProfessional(ctx context.Context, professionalID uuid.UUID, limit int) ([]*model.QuantificationSnapshot, error) {
	r.lastLimit = limit
	return r.snapshots, nil
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

func snapshotFixture() *model.QuantificationSnapshot {
	return &model.QuantificationSnapshot{
		ProfessionalID: uuid.New(),
		ServiceID:      uuid.New(),
		Model:          model.ModelQuote,
	}
}

func TestWriteSnapshot(t *testing.T) {
	repo := &stubAuditRepo{}
	outbox := &stubOutboxRepo{}
	svc := NewService(repo, outbox, logger.NewLogger(nil), testMetrics)

	require.NoError(t, svc.WriteSnapshot(context.Background(), snapshotFixture()))
	assert.Len(t, repo.snapshots, 1)
	require.Len(t, outbox.events, 1)
	assert.Equal(t, model.EventQuantificationWritten, outbox.events[0].EventType)
}

func TestWriteSnapshotValidation(t *testing.T) {
	svc := NewService(&stubAuditRepo{}, &stubOutboxRepo{}, logger.NewLogger(nil), testMetrics)

	assert.True(t, apperrors.IsValidation(svc.WriteSnapshot(context.Background(), nil)))

	snap := snapshotFixture()
	snap.ProfessionalID = uuid.Nil
	assert.True(t, apperrors.IsValidation(svc.WriteSnapshot(context.Background(), snap)))

	snap = snapshotFixture()
	snap.Model = ""
	assert.True(t, apperrors.IsValidation(svc.WriteSnapshot(context.Background(), snap)))
}

func TestWriteSnapshotRepositoryError(t *testing.T) {
	repo := &stubAuditRepo{createErr: errors.New("disk full")}
	svc := NewService(repo, &stubOutboxRepo{}, logger.NewLogger(nil), testMetrics)

	assert.Error(t, svc.WriteSnapshot(context.Background(), snapshotFixture()))
}

func TestWriteSnapshotOutboxFailureIsNotFatal(t *testing.T) {
	repo := &stubAuditRepo{}
	outbox := &stubOutboxRepo{createErr: errors.New("outbox table locked")}
	svc := NewService(repo, outbox, logger.NewLogger(nil), testMetrics)

	require.NoError(t, svc.WriteSnapshot(context.Background(), snapshotFixture()))
	assert.Len(t, repo.snapshots, 1)
}

func TestListSnapshotsClampsLimit(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewService(repo, &stubOutboxRepo{}, logger.NewLogger(nil), testMetrics)
	id := uuid.New()

	_, err := svc.ListSnapshots(context.Background(), id, 0)
	require.NoError(t, err)
	assert.Equal(t, 50, repo.lastLimit)

	_, err = svc.ListSnapshots(context.Background(), id, 1000)
	require.NoError(t, err)
	assert.Equal(t, 50, repo.lastLimit)

	_, err = svc.ListSnapshots(context.Background(), id, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.lastLimit)

	_, err = svc.ListSnapshots(context.Background(), uuid.Nil, 10)
	assert.Error(t, err)
}
