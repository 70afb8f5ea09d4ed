package dashboard

import (
	"github.com/servly/pricing-api/internal/model"
)

// MergeServiceUpdate merges one updated record back into the collection.
//
// Only the matching entry is replaced; every other entry keeps its
// identity so rendering layers can compare by pointer. The update is a
// patch against the mutable pricing fields: the existing entry's nested
// catalog sub-object is preserved unless the update supplies a
// replacement. A miss (record removed concurrently) is a silent no-op;
// the merge never inserts.
func MergeServiceUpdate(records []*model.ServicePricingRecord, updated *model.ServicePricingRecord) []*model.ServicePricingRecord {
	if updated == nil {
		return records
	}

	index := -1
	for i, rec := range records {
		if rec.ProfessionalServiceID == updated.ProfessionalServiceID {
			index = i
			break
		}
	}
	if index == -1 {
		return records
	}

	merged := updated.Clone()
	if merged.Service == nil {
		merged.Service = records[index].Service
	}

	out := make([]*model.ServicePricingRecord, len(records))
	copy(out, records)
	out[index] = merged
	return out
}
