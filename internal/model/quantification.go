package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PricingModel names the model that produced a recommendation.
type PricingModel string

const (
	ModelQuote       PricingModel = "quote"
	ModelBlackSholes PricingModel = "black_scholes"
	ModelMonteCarlo  PricingModel = "monte_carlo"
)

// PricingConfig holds the editable quantification parameters for one
// service instance.
type PricingConfig struct {
	Model           PricingModel `json:"model"`
	ConfidenceLevel float64      `json:"confidence_level"`
	RiskTolerance   string       `json:"risk_tolerance"`
	ValuationUnitID string       `json:"valuation_unit_id"`
	MarkupStrategy  string       `json:"markup_strategy"`
	Rounding        string       `json:"rounding"`
}

// MarketConditions holds the market parameters fed into the pricing model,
// echoed back with results for audit.
type MarketConditions struct {
	Urgency            string  `json:"urgency"`
	Demand             string  `json:"demand"`
	Season             string  `json:"season"`
	Weather            string  `json:"weather"`
	CustomerType       string  `json:"customer_type"`
	Competition        string  `json:"competition"`
	EconomicIndicator  string  `json:"economic_indicator"`
	AdjustedVolatility float64 `json:"adjusted_volatility"`
	PriceMultiplier    float64 `json:"price_multiplier"`
}

// TradeCalculations carries figures derived alongside a recommendation.
type TradeCalculations struct {
	TotalDuration *int    `json:"total_duration,omitempty"`
	MarkupApplied float64 `json:"markup_applied"`
}

// QuantificationResult is the output of the external pricing engine.
// Instances are immutable per calculation; a nil RecommendedPrice means
// there is nothing to save.
type QuantificationResult struct {
	RecommendedPrice  *float64           `json:"recommended_price"`
	Model             PricingModel       `json:"model"`
	TradeCalculations *TradeCalculations `json:"trade_calculations,omitempty"`
	MarketConditions  *MarketConditions  `json:"market_conditions,omitempty"`
}

// QuantificationSnapshot is the best-effort audit payload written after a
// pricing save. Losing one never rolls back the save it describes.
type QuantificationSnapshot struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	ProfessionalID   uuid.UUID       `db:"professional_id" json:"professional_id"`
	ServiceID        uuid.UUID       `db:"service_id" json:"service_id"`
	Model            PricingModel    `db:"model" json:"model" binding:"required,pricing_model"`
	Config           json.RawMessage `db:"config" json:"config,omitempty"`
	MarketConditions json.RawMessage `db:"market_conditions" json:"market_conditions,omitempty"`
	DerivedFigures   json.RawMessage `db:"derived_figures" json:"derived_figures,omitempty"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
}
