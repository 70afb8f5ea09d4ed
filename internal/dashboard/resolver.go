package dashboard

import (
	"github.com/servly/pricing-api/internal/model"
)

// ResolveDisplayedUnit determines the effective valuation unit for a record.
// Priority, highest first:
//
//  1. the optimistic overlay's custom unit (an in-flight, unconfirmed choice)
//  2. the record's populated custom unit object
//  3. the catalog service's populated default unit object
//  4. the record's custom unit id, looked up in available
//  5. the catalog service's default unit id, looked up in available
//  6. the static flat-rate fallback
//
// Pure function, no caching; callers recompute whenever any input changes.
func ResolveDisplayedUnit(rec *model.ServicePricingRecord, overlay *model.ServicePricingRecord, available []model.ValuationUnit) model.ValuationUnit {
	if overlay != nil && overlay.CustomValuationUnit != nil {
		return *overlay.CustomValuationUnit
	}
	if rec == nil {
		return model.FallbackUnit()
	}
	if rec.CustomValuationUnit != nil {
		return *rec.CustomValuationUnit
	}
	if rec.Service != nil && rec.Service.ValuationUnit != nil {
		return *rec.Service.ValuationUnit
	}
	if rec.CustomValuationUnitID != nil {
		if u, ok := model.FindUnit(available, *rec.CustomValuationUnitID); ok {
			return u
		}
	}
	if rec.Service != nil && rec.Service.ValuationUnitID != nil {
		if u, ok := model.FindUnit(available, *rec.Service.ValuationUnitID); ok {
			return u
		}
	}
	return model.FallbackUnit()
}

// resolveTargetUnit picks the unit id to persist with a save: the unit
// currently selected in config when it names a known unit, otherwise the
// record's existing custom or service-default unit id. The second return
// is the matching unit object when one is known.
func resolveTargetUnit(cfg model.PricingConfig, rec *model.ServicePricingRecord, units []model.ValuationUnit) (*string, *model.ValuationUnit) {
	if u, ok := model.FindUnit(units, cfg.ValuationUnitID); ok {
		id := u.UnitID
		unit := u
		return &id, &unit
	}
	if rec.CustomValuationUnitID != nil {
		id := *rec.CustomValuationUnitID
		if u, ok := model.FindUnit(units, id); ok {
			unit := u
			return &id, &unit
		}
		return &id, rec.CustomValuationUnit
	}
	if rec.Service != nil && rec.Service.ValuationUnitID != nil {
		id := *rec.Service.ValuationUnitID
		if u, ok := model.FindUnit(units, id); ok {
			unit := u
			return &id, &unit
		}
		return &id, rec.Service.ValuationUnit
	}
	return nil, nil
}
