package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/servly/pricing-api/internal/model"
	"github.com/servly/pricing-api/internal/repository"
)

type auditRepository struct {
	BaseRepository
}

func NewAuditRepository(base BaseRepository) repository.AuditRepository {
	return &auditRepository{base}
}

func (r *auditRepository) Create(ctx context.Context, snap *model.QuantificationSnapshot) error {
	query := `
		INSERT INTO quantification_snapshots (
			id, professional_id, service_id, model, config,
			market_conditions, derived_figures, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	snap.ID = uuid.New()
	snap.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		snap.ID,
		snap.ProfessionalID,
		snap.ServiceID,
		snap.Model,
		snap.Config,
		snap.MarketConditions,
		snap.DerivedFigures,
		snap.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create quantification snapshot: %w", err)
	}
	return nil
}

func (r *auditRepository) ListByProfessional(ctx context.Context, professionalID uuid.UUID, limit int) ([]*model.QuantificationSnapshot, error) {
	query := `
		SELECT id, professional_id, service_id, model, config,
			market_conditions, derived_figures, created_at
		FROM quantification_snapshots
		WHERE professional_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	var snaps []*model.QuantificationSnapshot
	if err := r.db.SelectContext(ctx, &snaps, query, professionalID, limit); err != nil {
		return nil, fmt.Errorf("failed to list quantification snapshots: %w", err)
	}
	return snaps, nil
}
