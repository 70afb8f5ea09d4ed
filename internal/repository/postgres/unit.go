package postgres

import (
	"context"
	"fmt"

	"github.com/servly/pricing-api/internal/model"
	"github.com/servly/pricing-api/internal/repository"
)

type unitRepository struct {
	BaseRepository
}

func NewUnitRepository(base BaseRepository) repository.UnitRepository {
	return &unitRepository{base}
}

func (r *unitRepository) ListActive(ctx context.Context) ([]model.ValuationUnit, error) {
	query := `
		SELECT unit_id, unit_code, display_name, category, description, is_active
		FROM valuation_units
		WHERE is_active = true
		ORDER BY category, display_name
	`
	var units []model.ValuationUnit
	if err := r.db.SelectContext(ctx, &units, query); err != nil {
		return nil, fmt.Errorf("failed to list valuation units: %w", err)
	}
	return units, nil
}
