// Package api - API types for the pricing engine
// The API is stateless: every request carries its own lines and overrides.
package api

import (
	"github.com/shopspring/decimal"

	"recipe-pricing/core/cost"
	"recipe-pricing/core/pricing"
	"recipe-pricing/core/profile"
	"recipe-pricing/core/rounding"
	"recipe-pricing/core/types"
	"recipe-pricing/internal/settings"
)

// ProfileInput selects the tenant profile and its overrides. Empty fields
// fall back to the server's tenant configuration.
type ProfileInput struct {
	BusinessType string                   `json:"business_type" validate:"omitempty,max=64"`
	Country      string                   `json:"country" validate:"omitempty,max=64"`
	Pricing      *settings.PricingBlock   `json:"pricing,omitempty"`
	Rounding     *settings.RoundingBlock  `json:"rounding,omitempty"`
	Intervals    *settings.IntervalsBlock `json:"intervals,omitempty"`
}

// QuoteRequest is the input to POST /v1/quote
type QuoteRequest struct {
	ProfileInput

	Lines []types.IngredientLine `json:"lines" validate:"max=500"`

	// TaxRatePercent is the article's rate. It is required: a missing rate
	// is never read as 0.
	TaxRatePercent decimal.NullDecimal `json:"tax_rate_percent"`
	Portions       int                 `json:"portions" validate:"gte=0"`

	// RecordedCost, when present, is checked against the recomputed cost
	RecordedCost decimal.NullDecimal `json:"recorded_cost"`
}

// QuoteResponse is the output of POST /v1/quote
type QuoteResponse struct {
	RequestID   string                       `json:"request_id"`
	Quote       *pricing.Quote               `json:"quote"`
	Totals      cost.RecipeTotals            `json:"totals"`
	Consistency *types.CostConsistencyResult `json:"consistency,omitempty"`
	Display     DisplayPrices                `json:"display"`
}

// DisplayPrices are prices already formatted for the tenant's country
type DisplayPrices struct {
	PreTaxPrice  string `json:"pre_tax_price"`
	FinalPrice   string `json:"final_price"`
	RoundedPrice string `json:"rounded_price"`
}

// VariantsRequest is the input to POST /v1/variants
type VariantsRequest struct {
	ProfileInput

	Lines []types.IngredientLine `json:"lines" validate:"max=500"`

	// TaxRatePercent is the article's rate. It is required: a missing rate
	// is never read as 0.
	TaxRatePercent decimal.NullDecimal `json:"tax_rate_percent"`
}

// VariantsResponse is the output of POST /v1/variants
type VariantsResponse struct {
	RequestID      string            `json:"request_id"`
	BaseCost       decimal.Decimal   `json:"base_cost"`
	SurchargedCost decimal.Decimal   `json:"surcharged_cost"`
	Variants       []pricing.Variant `json:"variants"`
}

// RoundRequest is the input to POST /v1/round
type RoundRequest struct {
	Price   string    `json:"price" validate:"required"`
	Policy  string    `json:"policy" validate:"required"`
	Step    *float64  `json:"step,omitempty"`
	Endings []float64 `json:"endings,omitempty" validate:"max=20"`
}

// RoundResponse is the output of POST /v1/round
type RoundResponse struct {
	RequestID string             `json:"request_id"`
	Price     decimal.Decimal    `json:"price"`
	Policy    rounding.PolicyKey `json:"policy"`
	Rounded   decimal.Decimal    `json:"rounded"`
}

// ConsistencyRequest is the input to POST /v1/consistency
type ConsistencyRequest struct {
	RecordedCost   *float64 `json:"recorded_cost" validate:"required"`
	CalculatedCost *float64 `json:"calculated_cost" validate:"required"`
}

// ConsistencyResponse is the output of POST /v1/consistency
type ConsistencyResponse struct {
	RequestID string                      `json:"request_id"`
	Result    types.CostConsistencyResult `json:"result"`
}

// CountryDefaultsResponse reports whether the regional fallback was used
type CountryDefaultsResponse struct {
	Requested string                   `json:"requested"`
	Fallback  bool                     `json:"fallback"`
	Defaults  profile.RegionalDefaults `json:"defaults"`
}

// BusinessTypeEntry lists a business type with its defaults
type BusinessTypeEntry struct {
	BusinessType     profile.BusinessType     `json:"business_type"`
	CanEditIntervals bool                     `json:"can_edit_intervals"`
	Defaults         profile.BusinessDefaults `json:"defaults"`
}

// ErrorBody is the canonical error payload
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}
