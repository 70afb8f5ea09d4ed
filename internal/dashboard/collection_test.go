package dashboard

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servly/pricing-api/internal/model"
)

func collectionFixture(n int) []*model.ServicePricingRecord {
	records := make([]*model.ServicePricingRecord, 0, n)
	for i := 0; i < n; i++ {
		rec := recordFixture()
		rec.Service.Name = "Service " + string(rune('A'+i))
		records = append(records, rec)
	}
	return records
}

func TestMergeServiceUpdateReplacesOnlyMatchingEntry(t *testing.T) {
	records := collectionFixture(3)

	updated := records[1].Clone()
	updated.CustomPrice = floatPtr(130)

	merged := MergeServiceUpdate(records, updated)
	require.Len(t, merged, 3)

	// Unrelated entries keep their identity so downstream comparisons by
	// pointer stay cheap.
	assert.Same(t, records[0], merged[0])
	assert.Same(t, records[2], merged[2])

	assert.NotSame(t, records[1], merged[1])
	assert.Equal(t, 130.0, *merged[1].CustomPrice)

	// The input slice is untouched.
	assert.Equal(t, 50.0, *records[1].CustomPrice)
}

func TestMergeServiceUpdateMissIsNoOp(t *testing.T) {
	records := collectionFixture(2)

	stranger := recordFixture()
	merged := MergeServiceUpdate(records, stranger)

	// A miss returns the original slice itself, not a copy.
	assert.True(t, &records[0] == &merged[0])
	require.Len(t, merged, 2)
	assert.Same(t, records[0], merged[0])
	assert.Same(t, records[1], merged[1])
}

func TestMergeServiceUpdateNilUpdate(t *testing.T) {
	records := collectionFixture(1)
	assert.Len(t, MergeServiceUpdate(records, nil), 1)
	assert.Same(t, records[0], MergeServiceUpdate(records, nil)[0])
}

func TestMergeServiceUpdatePreservesCatalogSubObject(t *testing.T) {
	records := collectionFixture(1)

	// Server responses often carry only the flat pricing columns.
	updated := &model.ServicePricingRecord{
		ProfessionalServiceID: records[0].ProfessionalServiceID,
		ProfessionalID:        records[0].ProfessionalID,
		ServiceID:             records[0].ServiceID,
		CustomPrice:           floatPtr(200),
		IsActive:              true,
	}

	merged := MergeServiceUpdate(records, updated)
	require.NotNil(t, merged[0].Service)
	assert.Equal(t, records[0].Service.Name, merged[0].Service.Name)
	assert.Equal(t, 200.0, *merged[0].CustomPrice)
}

func TestMergeServiceUpdateClonesTheUpdate(t *testing.T) {
	records := collectionFixture(1)
	updated := records[0].Clone()
	updated.CustomPrice = floatPtr(99)

	merged := MergeServiceUpdate(records, updated)

	// Mutating the caller's copy afterwards must not leak into the
	// collection.
	*updated.CustomPrice = 1
	assert.Equal(t, 99.0, *merged[0].CustomPrice)
}

func TestMergeServiceUpdateEmptyCollection(t *testing.T) {
	var records []*model.ServicePricingRecord
	assert.Empty(t, MergeServiceUpdate(records, recordFixture()))
	assert.Empty(t, MergeServiceUpdate(nil, &model.ServicePricingRecord{ProfessionalServiceID: uuid.New()}))
}
