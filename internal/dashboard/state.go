package dashboard

import (
	"sync"

	"github.com/servly/pricing-api/internal/model"
)

// ConfigPatch is a partial update to PricingConfig. Nil fields are left
// untouched by UpdateConfig.
type ConfigPatch struct {
	Model           *model.PricingModel
	ConfidenceLevel *float64
	RiskTolerance   *string
	ValuationUnitID *string
	MarkupStrategy  *string
	Rounding        *string
}

// MarketPatch is a partial update to MarketConditions.
type MarketPatch struct {
	Urgency            *string
	Demand             *string
	Season             *string
	Weather            *string
	CustomerType       *string
	Competition        *string
	EconomicIndicator  *string
	AdjustedVolatility *float64
	PriceMultiplier    *float64
}

// ConfigState holds the editable quantification parameters for one service
// instance. Both maps are only ever shallow-merged so unrelated fields
// survive every update.
type ConfigState struct {
	mu         sync.Mutex
	config     model.PricingConfig
	market     model.MarketConditions
	unitSeeded bool
}

func NewConfigState() *ConfigState {
	return &ConfigState{
		config: model.PricingConfig{
			Model:           model.ModelQuote,
			ConfidenceLevel: 0.95,
			RiskTolerance:   "moderate",
			MarkupStrategy:  "standard",
			Rounding:        "nearest",
		},
		market: model.MarketConditions{
			Urgency:         "normal",
			Demand:          "normal",
			CustomerType:    "residential",
			Competition:     "moderate",
			PriceMultiplier: 1.0,
		},
	}
}

// SeedUnit sets the initial valuation unit exactly once per service load.
// Re-seeding on later renders would clobber user edits, so repeat calls
// are ignored.
func (s *ConfigState) SeedUnit(unitID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unitSeeded {
		return
	}
	s.config.ValuationUnitID = unitID
	s.unitSeeded = true
}

func (s *ConfigState) UpdateConfig(p ConfigPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Model != nil {
		s.config.Model = *p.Model
	}
	if p.ConfidenceLevel != nil {
		s.config.ConfidenceLevel = *p.ConfidenceLevel
	}
	if p.RiskTolerance != nil {
		s.config.RiskTolerance = *p.RiskTolerance
	}
	if p.ValuationUnitID != nil {
		s.config.ValuationUnitID = *p.ValuationUnitID
	}
	if p.MarkupStrategy != nil {
		s.config.MarkupStrategy = *p.MarkupStrategy
	}
	if p.Rounding != nil {
		s.config.Rounding = *p.Rounding
	}
}

func (s *ConfigState) UpdateMarketConditions(p MarketPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Urgency != nil {
		s.market.Urgency = *p.Urgency
	}
	if p.Demand != nil {
		s.market.Demand = *p.Demand
	}
	if p.Season != nil {
		s.market.Season = *p.Season
	}
	if p.Weather != nil {
		s.market.Weather = *p.Weather
	}
	if p.CustomerType != nil {
		s.market.CustomerType = *p.CustomerType
	}
	if p.Competition != nil {
		s.market.Competition = *p.Competition
	}
	if p.EconomicIndicator != nil {
		s.market.EconomicIndicator = *p.EconomicIndicator
	}
	if p.AdjustedVolatility != nil {
		s.market.AdjustedVolatility = *p.AdjustedVolatility
	}
	if p.PriceMultiplier != nil {
		s.market.PriceMultiplier = *p.PriceMultiplier
	}
}

func (s *ConfigState) Config() model.PricingConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

func (s *ConfigState) MarketConditions() model.MarketConditions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.market
}

// CanCalculate is the minimal validity predicate gating the calculate
// action: a catalog service reference and a non-empty attribute set per
// category.
func CanCalculate(rec *model.ServicePricingRecord, attributes map[string][]string) bool {
	if rec == nil || rec.Service == nil {
		return false
	}
	if len(attributes) == 0 {
		return false
	}
	for _, values := range attributes {
		if len(values) == 0 {
			return false
		}
	}
	return true
}
