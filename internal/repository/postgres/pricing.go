package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/servly/pricing-api/internal/model"
	"github.com/servly/pricing-api/internal/repository"
)

type pricingRepository struct {
	BaseRepository
}

func NewPricingRepository(base BaseRepository) repository.PricingRepository {
	return &pricingRepository{base}
}

var ErrRecordNotFound = errors.New("pricing record not found")

// pricingRow flattens the joined shape: the record, its catalog service,
// and up to two valuation units (custom and service default).
type pricingRow struct {
	model.ServicePricingRecord

	SvcName      string  `db:"svc_name"`
	SvcCategory  string  `db:"svc_category"`
	SvcBasePrice float64 `db:"svc_base_price"`
	SvcUnitID    *string `db:"svc_valuation_unit_id"`

	CuUnitID      *string `db:"cu_unit_id"`
	CuUnitCode    *string `db:"cu_unit_code"`
	CuDisplayName *string `db:"cu_display_name"`
	CuCategory    *string `db:"cu_category"`
	CuDescription *string `db:"cu_description"`

	SuUnitID      *string `db:"su_unit_id"`
	SuUnitCode    *string `db:"su_unit_code"`
	SuDisplayName *string `db:"su_display_name"`
	SuCategory    *string `db:"su_category"`
	SuDescription *string `db:"su_description"`
}

func (row *pricingRow) toRecord() *model.ServicePricingRecord {
	rec := row.ServicePricingRecord
	rec.Service = &model.CatalogService{
		ServiceID:       rec.ServiceID,
		Name:            row.SvcName,
		Category:        row.SvcCategory,
		BasePrice:       row.SvcBasePrice,
		ValuationUnitID: row.SvcUnitID,
	}
	if row.CuUnitID != nil {
		rec.CustomValuationUnit = &model.ValuationUnit{
			UnitID:      *row.CuUnitID,
			UnitCode:    deref(row.CuUnitCode),
			DisplayName: deref(row.CuDisplayName),
			Category:    deref(row.CuCategory),
			Description: deref(row.CuDescription),
			IsActive:    true,
		}
	}
	if row.SuUnitID != nil {
		rec.Service.ValuationUnit = &model.ValuationUnit{
			UnitID:      *row.SuUnitID,
			UnitCode:    deref(row.SuUnitCode),
			DisplayName: deref(row.SuDisplayName),
			Category:    deref(row.SuCategory),
			Description: deref(row.SuDescription),
			IsActive:    true,
		}
	}
	return &rec
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

const pricingSelect = `
	SELECT
		ps.professional_service_id, ps.professional_id, ps.service_id,
		ps.custom_price, ps.custom_duration_minutes, ps.custom_valuation_unit_id,
		ps.additional_notes, ps.is_active, ps.updated_at,
		s.name AS svc_name, s.category AS svc_category,
		s.base_price AS svc_base_price, s.valuation_unit_id AS svc_valuation_unit_id,
		cu.unit_id AS cu_unit_id, cu.unit_code AS cu_unit_code,
		cu.display_name AS cu_display_name, cu.category AS cu_category,
		cu.description AS cu_description,
		su.unit_id AS su_unit_id, su.unit_code AS su_unit_code,
		su.display_name AS su_display_name, su.category AS su_category,
		su.description AS su_description
	FROM professional_services ps
	JOIN services s ON s.service_id = ps.service_id
	LEFT JOIN valuation_units cu ON cu.unit_id = ps.custom_valuation_unit_id
	LEFT JOIN valuation_units su ON su.unit_id = s.valuation_unit_id
`

func (r *pricingRepository) ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*model.ServicePricingRecord, error) {
	query := pricingSelect + `
	WHERE ps.professional_id = $1 AND ps.is_active = true
	ORDER BY ps.updated_at DESC
	`
	var rows []*pricingRow
	if err := r.db.SelectContext(ctx, &rows, query, professionalID); err != nil {
		return nil, fmt.Errorf("failed to list pricing records: %w", err)
	}

	records := make([]*model.ServicePricingRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toRecord())
	}
	return records, nil
}

func (r *pricingRepository) Get(ctx context.Context, professionalServiceID uuid.UUID) (*model.ServicePricingRecord, error) {
	query := pricingSelect + `
	WHERE ps.professional_service_id = $1
	`
	var row pricingRow
	err := r.db.GetContext(ctx, &row, query, professionalServiceID)
	if err == sql.ErrNoRows {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pricing record: %w", err)
	}
	return row.toRecord(), nil
}

func (r *pricingRepository) Update(ctx context.Context, professionalServiceID uuid.UUID, update *model.PricingUpdate) (*model.ServicePricingRecord, error) {
	query := `
		UPDATE professional_services
		SET custom_price = $1,
			custom_duration_minutes = $2,
			custom_valuation_unit_id = $3,
			additional_notes = $4,
			updated_at = $5
		WHERE professional_service_id = $6
	`
	result, err := r.db.ExecContext(ctx, query,
		update.CustomPrice,
		update.CustomDurationMinutes,
		update.CustomValuationUnitID,
		update.AdditionalNotes,
		time.Now(),
		professionalServiceID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update pricing record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return nil, ErrRecordNotFound
	}

	return r.Get(ctx, professionalServiceID)
}

func (r *pricingRepository) ProfessionalExists(ctx context.Context, professionalID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM professionals WHERE professional_id = $1)`
	if err := r.db.GetContext(ctx, &exists, query, professionalID); err != nil {
		return false, fmt.Errorf("failed to check professional: %w", err)
	}
	return exists, nil
}
