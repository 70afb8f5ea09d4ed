package model

// ValuationUnit describes how a price is denominated.
type ValuationUnit struct {
	UnitID      string `db:"unit_id" json:"unit_id"`
	UnitCode    string `db:"unit_code" json:"unit_code"`
	DisplayName string `db:"display_name" json:"display_name"`
	Category    string `db:"category" json:"category"`
	Description string `db:"description" json:"description"`
	IsActive    bool   `db:"is_active" json:"is_active"`
}

// Valuation unit categories
const (
	UnitCategoryFixed   = "fixed"
	UnitCategoryTime    = "time"
	UnitCategoryArea    = "area"
	UnitCategoryCount   = "count"
	UnitCategoryVolume  = "volume"
	UnitCategoryWeight  = "weight"
	UnitCategoryService = "service"
)

// FallbackUnit is returned when no unit can be resolved for a record.
func FallbackUnit() ValuationUnit {
	return ValuationUnit{
		UnitID:      "fixed",
		UnitCode:    "fixed",
		DisplayName: "flat rate",
		Category:    UnitCategoryFixed,
		IsActive:    true,
	}
}

// BuiltinUnits is the static list substituted when the unit catalog
// cannot be fetched, so pickers stay usable offline.
func BuiltinUnits() []ValuationUnit {
	return []ValuationUnit{
		{UnitID: "fixed", UnitCode: "fixed", DisplayName: "flat rate", Category: UnitCategoryFixed, IsActive: true},
		{UnitID: "hour", UnitCode: "hour", DisplayName: "per hour", Category: UnitCategoryTime, IsActive: true},
		{UnitID: "square_foot", UnitCode: "square_foot", DisplayName: "per square foot", Category: UnitCategoryArea, IsActive: true},
		{UnitID: "linear_foot", UnitCode: "linear_foot", DisplayName: "per linear foot", Category: UnitCategoryArea, IsActive: true},
		{UnitID: "fixture", UnitCode: "fixture", DisplayName: "per fixture", Category: UnitCategoryCount, IsActive: true},
		{UnitID: "per_item", UnitCode: "per_item", DisplayName: "per item", Category: UnitCategoryCount, IsActive: true},
		{UnitID: "room", UnitCode: "room", DisplayName: "per room", Category: UnitCategoryCount, IsActive: true},
		{UnitID: "outlet", UnitCode: "outlet", DisplayName: "per outlet", Category: UnitCategoryCount, IsActive: true},
	}
}

// FindUnit looks a unit up by id or code.
func FindUnit(units []ValuationUnit, idOrCode string) (ValuationUnit, bool) {
	if idOrCode == "" {
		return ValuationUnit{}, false
	}
	for _, u := range units {
		if u.UnitID == idOrCode || u.UnitCode == idOrCode {
			return u, true
		}
	}
	return ValuationUnit{}, false
}
