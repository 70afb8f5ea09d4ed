package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/servly/pricing-api/internal/model"
	"github.com/servly/pricing-api/internal/repository"
	apperrors "github.com/servly/pricing-api/pkg/errors"
	"github.com/servly/pricing-api/pkg/logger"
	"github.com/servly/pricing-api/pkg/metrics"
)

type AuditServicer interface {
	WriteSnapshot(ctx context.Context, snap *model.QuantificationSnapshot) error
	ListSnapshots(ctx context.Context, professionalID uuid.UUID, limit int) ([]*model.QuantificationSnapshot, error)
}

// Service records quantification snapshots for analytics. Callers treat
// snapshot writes as best-effort; nothing downstream of a pricing save
// depends on them.
type Service struct {
	repo       repository.AuditRepository
	outboxRepo repository.OutboxRepository
	logger     *logger.Logger
	metrics    *metrics.Metrics
}

func NewService(repo repository.AuditRepository, outboxRepo repository.OutboxRepository, logger *logger.Logger, metrics *metrics.Metrics) *Service {
	return &Service{
		repo:       repo,
		outboxRepo: outboxRepo,
		logger:     logger,
		metrics:    metrics,
	}
}

func (s *Service) WriteSnapshot(ctx context.Context, snap *model.QuantificationSnapshot) error {
	if snap == nil {
		return apperrors.Validation("snapshot is required", nil)
	}
	if snap.ProfessionalID == uuid.Nil || snap.ServiceID == uuid.Nil {
		return apperrors.Validation("professional and service IDs are required", nil)
	}
	if snap.Model == "" {
		return apperrors.Validation("model name is required", nil)
	}

	if err := s.repo.Create(ctx, snap); err != nil {
		s.metrics.SnapshotWrites.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to write quantification snapshot: %w", err)
	}
	s.metrics.SnapshotWrites.WithLabelValues("success").Inc()

	if payload, err := json.Marshal(snap); err == nil {
		event := &model.OutboxEvent{
			EventType: model.EventQuantificationWritten,
			Payload:   payload,
		}
		if err := s.outboxRepo.Create(ctx, event); err != nil {
			s.logger.Error(err, "failed to enqueue snapshot event", "snapshot_id", snap.ID.String())
		}
	}

	return nil
}

func (s *Service) ListSnapshots(ctx context.Context, professionalID uuid.UUID, limit int) ([]*model.QuantificationSnapshot, error) {
	if professionalID == uuid.Nil {
		return nil, apperrors.BadRequest("professional ID is required", nil)
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListByProfessional(ctx, professionalID, limit)
}
