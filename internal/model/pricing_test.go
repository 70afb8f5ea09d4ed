package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClone(t *testing.T) {
	price := 50.0
	duration := 90
	unitID := "hour"
	svcUnitID := "fixed"
	rec := &ServicePricingRecord{
		ProfessionalServiceID: uuid.New(),
		ProfessionalID:        uuid.New(),
		ServiceID:             uuid.New(),
		CustomPrice:           &price,
		CustomDurationMinutes: &duration,
		CustomValuationUnitID: &unitID,
		AdditionalNotes:       "weekdays only",
		IsActive:              true,
		UpdatedAt:             time.Now(),
		CustomValuationUnit:   &ValuationUnit{UnitID: "hour", UnitCode: "hour"},
		Service: &CatalogService{
			ServiceID:       uuid.New(),
			Name:            "Drain cleaning",
			BasePrice:       80,
			ValuationUnitID: &svcUnitID,
			ValuationUnit:   &ValuationUnit{UnitID: "fixed", UnitCode: "fixed"},
		},
	}

	clone := rec.Clone()
	require.NotNil(t, clone)
	assert.Equal(t, rec, clone)

	// Every pointer was reallocated; mutating the clone never reaches the
	// original.
	*clone.CustomPrice = 999
	*clone.CustomDurationMinutes = 1
	*clone.CustomValuationUnitID = "room"
	clone.CustomValuationUnit.UnitCode = "room"
	clone.Service.Name = "Something else"
	*clone.Service.ValuationUnitID = "room"
	clone.Service.ValuationUnit.UnitCode = "room"

	assert.Equal(t, 50.0, *rec.CustomPrice)
	assert.Equal(t, 90, *rec.CustomDurationMinutes)
	assert.Equal(t, "hour", *rec.CustomValuationUnitID)
	assert.Equal(t, "hour", rec.CustomValuationUnit.UnitCode)
	assert.Equal(t, "Drain cleaning", rec.Service.Name)
	assert.Equal(t, "fixed", *rec.Service.ValuationUnitID)
	assert.Equal(t, "fixed", rec.Service.ValuationUnit.UnitCode)
}

func TestCloneNil(t *testing.T) {
	var rec *ServicePricingRecord
	assert.Nil(t, rec.Clone())
}

func TestDisplayPrice(t *testing.T) {
	price := 120.0
	rec := &ServicePricingRecord{
		CustomPrice: &price,
		Service:     &CatalogService{BasePrice: 80},
	}
	assert.Equal(t, 120.0, rec.DisplayPrice())

	rec.CustomPrice = nil
	assert.Equal(t, 80.0, rec.DisplayPrice())

	rec.Service = nil
	assert.Equal(t, 0.0, rec.DisplayPrice())
}

func TestFindUnit(t *testing.T) {
	units := BuiltinUnits()

	byID, ok := FindUnit(units, "square_foot")
	require.True(t, ok)
	assert.Equal(t, "per square foot", byID.DisplayName)

	_, ok = FindUnit(units, "")
	assert.False(t, ok)

	_, ok = FindUnit(units, "acre")
	assert.False(t, ok)
}
