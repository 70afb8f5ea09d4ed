package model

import (
	"time"

	"github.com/google/uuid"
)

// CatalogService is the immutable catalog entry a pricing record refers to.
type CatalogService struct {
	ServiceID       uuid.UUID      `db:"service_id" json:"service_id"`
	Name            string         `db:"name" json:"name"`
	Category        string         `db:"category" json:"category"`
	BasePrice       float64        `db:"base_price" json:"base_price"`
	ValuationUnitID *string        `db:"valuation_unit_id" json:"valuation_unit_id,omitempty"`
	ValuationUnit   *ValuationUnit `db:"-" json:"valuation_unit,omitempty"`
}

// ServicePricingRecord is one row per (professional, service) pairing.
// Created once when the professional attaches a catalog service; every
// later pricing save is an update by ProfessionalServiceID, never a new row.
type ServicePricingRecord struct {
	ProfessionalServiceID uuid.UUID  `db:"professional_service_id" json:"professional_service_id"`
	ProfessionalID        uuid.UUID  `db:"professional_id" json:"professional_id"`
	ServiceID             uuid.UUID  `db:"service_id" json:"service_id"`
	CustomPrice           *float64   `db:"custom_price" json:"custom_price,omitempty"`
	CustomDurationMinutes *int       `db:"custom_duration_minutes" json:"custom_duration_minutes,omitempty"`
	CustomValuationUnitID *string    `db:"custom_valuation_unit_id" json:"custom_valuation_unit_id,omitempty"`
	AdditionalNotes       string     `db:"additional_notes" json:"additional_notes"`
	IsActive              bool       `db:"is_active" json:"is_active"`
	UpdatedAt             time.Time  `db:"updated_at" json:"updated_at"`

	CustomValuationUnit *ValuationUnit  `db:"-" json:"custom_valuation_unit,omitempty"`
	Service             *CatalogService `db:"-" json:"service,omitempty"`
}

// DisplayPrice is the price shown to customers: the custom price when set,
// the catalog base price otherwise.
func (r *ServicePricingRecord) DisplayPrice() float64 {
	if r.CustomPrice != nil {
		return *r.CustomPrice
	}
	if r.Service != nil {
		return r.Service.BasePrice
	}
	return 0
}

// Clone returns a deep copy. Snapshots taken for rollback must not be
// reachable through the live record, so every pointer field is reallocated.
func (r *ServicePricingRecord) Clone() *ServicePricingRecord {
	if r == nil {
		return nil
	}
	out := *r
	if r.CustomPrice != nil {
		v := *r.CustomPrice
		out.CustomPrice = &v
	}
	if r.CustomDurationMinutes != nil {
		v := *r.CustomDurationMinutes
		out.CustomDurationMinutes = &v
	}
	if r.CustomValuationUnitID != nil {
		v := *r.CustomValuationUnitID
		out.CustomValuationUnitID = &v
	}
	if r.CustomValuationUnit != nil {
		v := *r.CustomValuationUnit
		out.CustomValuationUnit = &v
	}
	if r.Service != nil {
		svc := *r.Service
		if r.Service.ValuationUnitID != nil {
			id := *r.Service.ValuationUnitID
			svc.ValuationUnitID = &id
		}
		if r.Service.ValuationUnit != nil {
			u := *r.Service.ValuationUnit
			svc.ValuationUnit = &u
		}
		out.Service = &svc
	}
	return &out
}

// PricingUpdate is the mutable-field patch accepted by the update call.
// CustomPrice is mandatory for this call.
type PricingUpdate struct {
	CustomPrice           *float64 `json:"custom_price" binding:"required"`
	CustomDurationMinutes *int     `json:"custom_duration_minutes,omitempty"`
	CustomValuationUnitID *string  `json:"custom_valuation_unit_id,omitempty"`
	AdditionalNotes       string   `json:"additional_notes"`
}
