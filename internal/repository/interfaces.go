package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/servly/pricing-api/internal/model"
)

// All repository interfaces in one file
type (
	// PricingRepository handles service pricing rows. Writes are strictly
	// update-by-identifier; rows are created once when a professional
	// attaches a catalog service.
	PricingRepository interface {
		ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*model.ServicePricingRecord, error)
		Get(ctx context.Context, professionalServiceID uuid.UUID) (*model.ServicePricingRecord, error)
		Update(ctx context.Context, professionalServiceID uuid.UUID, update *model.PricingUpdate) (*model.ServicePricingRecord, error)
		ProfessionalExists(ctx context.Context, professionalID uuid.UUID) (bool, error)
	}

	// UnitRepository serves the valuation unit catalog.
	UnitRepository interface {
		ListActive(ctx context.Context) ([]model.ValuationUnit, error)
	}

	// AuditRepository stores quantification snapshots.
	AuditRepository interface {
		Create(ctx context.Context, snap *model.QuantificationSnapshot) error
		ListByProfessional(ctx context.Context, professionalID uuid.UUID, limit int) ([]*model.QuantificationSnapshot, error)
	}

	// OutboxRepository queues events for the worker to drain.
	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
