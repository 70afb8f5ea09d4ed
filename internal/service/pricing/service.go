package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/servly/pricing-api/internal/model"
	"github.com/servly/pricing-api/internal/repository"
	"github.com/servly/pricing-api/internal/repository/postgres"
	apperrors "github.com/servly/pricing-api/pkg/errors"
	"github.com/servly/pricing-api/pkg/logger"
	"github.com/servly/pricing-api/pkg/metrics"
)

type PricingServicer interface {
	ListPricing(ctx context.Context, professionalID uuid.UUID) ([]*model.ServicePricingRecord, error)
	GetPricing(ctx context.Context, professionalServiceID uuid.UUID) (*model.ServicePricingRecord, error)
	UpdatePricing(ctx context.Context, professionalServiceID uuid.UUID, update *model.PricingUpdate) (*model.ServicePricingRecord, error)
}

type Service struct {
	repo       repository.PricingRepository
	outboxRepo repository.OutboxRepository
	logger     *logger.Logger
	metrics    *metrics.Metrics
}

func NewService(repo repository.PricingRepository, outboxRepo repository.OutboxRepository, logger *logger.Logger, metrics *metrics.Metrics) *Service {
	return &Service{
		repo:       repo,
		outboxRepo: outboxRepo,
		logger:     logger,
		metrics:    metrics,
	}
}

func (s *Service) ListPricing(ctx context.Context, professionalID uuid.UUID) ([]*model.ServicePricingRecord, error) {
	if professionalID == uuid.Nil {
		return nil, apperrors.BadRequest("professional ID is required", nil)
	}

	exists, err := s.repo.ProfessionalExists(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("failed to check professional: %w", err)
	}
	if !exists {
		return nil, apperrors.NotFound("professional", nil)
	}

	records, err := s.repo.ListByProfessional(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pricing: %w", err)
	}
	return records, nil
}

func (s *Service) GetPricing(ctx context.Context, professionalServiceID uuid.UUID) (*model.ServicePricingRecord, error) {
	if professionalServiceID == uuid.Nil {
		return nil, apperrors.BadRequest("professional service ID is required", nil)
	}

	record, err := s.repo.Get(ctx, professionalServiceID)
	if errors.Is(err, postgres.ErrRecordNotFound) {
		return nil, apperrors.NotFound("pricing record", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pricing record: %w", err)
	}
	return record, nil
}

// UpdatePricing persists the mutable pricing fields for one record.
// Price is mandatory; writes are strictly update-by-identifier so a
// repeated call with the same payload overwrites with identical data.
func (s *Service) UpdatePricing(ctx context.Context, professionalServiceID uuid.UUID, update *model.PricingUpdate) (*model.ServicePricingRecord, error) {
	if professionalServiceID == uuid.Nil {
		return nil, apperrors.Validation("professional service ID is required", nil)
	}
	if update == nil || update.CustomPrice == nil {
		return nil, apperrors.Validation("custom price is required", nil)
	}
	if *update.CustomPrice < 0 {
		return nil, apperrors.Validation("custom price must not be negative", nil)
	}

	timer := prometheus.NewTimer(s.metrics.PricingUpdateLatency)
	record, err := s.repo.Update(ctx, professionalServiceID, update)
	timer.ObserveDuration()

	if errors.Is(err, postgres.ErrRecordNotFound) {
		s.metrics.PricingUpdates.WithLabelValues("not_found").Inc()
		return nil, apperrors.NotFound("pricing record", err)
	}
	if err != nil {
		s.metrics.PricingUpdates.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to update pricing: %w", err)
	}
	s.metrics.PricingUpdates.WithLabelValues("success").Inc()

	s.enqueueUpdateEvent(ctx, record)

	return record, nil
}

// enqueueUpdateEvent queues the change for downstream consumers. A queue
// failure never fails the pricing update itself.
func (s *Service) enqueueUpdateEvent(ctx context.Context, record *model.ServicePricingRecord) {
	payload, err := json.Marshal(record)
	if err != nil {
		s.logger.Error(err, "failed to marshal pricing record for event",
			"professional_service_id", record.ProfessionalServiceID.String())
		return
	}

	event := &model.OutboxEvent{
		EventType: model.EventPricingUpdated,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
	if err := s.outboxRepo.Create(ctx, event); err != nil {
		s.logger.Error(err, "failed to enqueue pricing update event",
			"professional_service_id", record.ProfessionalServiceID.String())
	}
}
