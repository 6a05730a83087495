package types

import (
	"strings"

	"github.com/shopspring/decimal"

	"recipe-pricing/internal/errors"
)

// MaxVariants is the number of parallel food-cost targets (PVP1..PVP5).
const MaxVariants = 5

// PricingModel selects how the pre-tax price is derived
type PricingModel string

const (
	// ModelRatio multiplies the surcharged cost by a ratio
	ModelRatio PricingModel = "ratio"

	// ModelFoodCostTarget divides the surcharged cost by a target food-cost fraction
	ModelFoodCostTarget PricingModel = "food_cost"
)

// String returns the string representation
func (m PricingModel) String() string {
	return string(m)
}

// ParsePricingModel parses a model identifier.
func ParsePricingModel(s string) (PricingModel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ratio", "racio", "rácio":
		return ModelRatio, nil
	case "food_cost", "foodcost", "food-cost", "food_cost_target":
		return ModelFoodCostTarget, nil
	}
	return "", errors.InvalidParameter("unknown pricing model %q", s)
}

// PricingParameters is the resolved configuration for one calculation
type PricingParameters struct {
	// OperationalCostPercent is the overhead uplift in [0,100]
	OperationalCostPercent decimal.Decimal `json:"operational_cost_percent"`

	// Model selects which of Ratio / FoodCostTargetPercent is authoritative
	Model PricingModel `json:"model"`

	// Ratio is used when Model == ModelRatio
	Ratio decimal.Decimal `json:"ratio"`

	// FoodCostTargetPercent is used when Model == ModelFoodCostTarget
	FoodCostTargetPercent decimal.Decimal `json:"food_cost_target_percent"`

	// TaxRatePercent comes verbatim from the article record
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
}

// Validate checks the field that is authoritative for Model, plus the tax rate.
// The operational cost percent is not checked: the aggregator clamps it.
func (p PricingParameters) Validate() error {
	switch p.Model {
	case ModelRatio:
		if !p.Ratio.IsPositive() {
			return errors.InvalidParameter("ratio must be > 0, got %s", p.Ratio)
		}
	case ModelFoodCostTarget:
		if p.FoodCostTargetPercent.IsZero() {
			return errors.DivisionByZero("food cost target must not be 0")
		}
		if p.FoodCostTargetPercent.IsNegative() {
			return errors.InvalidParameter("food cost target must be > 0, got %s", p.FoodCostTargetPercent)
		}
	default:
		return errors.InvalidParameter("unknown pricing model %q", p.Model)
	}
	if p.TaxRatePercent.IsNegative() {
		return errors.InvalidParameter("tax rate must be >= 0, got %s", p.TaxRatePercent)
	}
	return nil
}

// WithFoodCostTarget returns a copy using the food-cost model at percent.
func (p PricingParameters) WithFoodCostTarget(percent decimal.Decimal) PricingParameters {
	p.Model = ModelFoodCostTarget
	p.FoodCostTargetPercent = percent
	return p
}

// WithRatio returns a copy using the ratio model.
func (p PricingParameters) WithRatio(ratio decimal.Decimal) PricingParameters {
	p.Model = ModelRatio
	p.Ratio = ratio
	return p
}

// CostConsistencyResult compares a recorded cost to a recomputed one
type CostConsistencyResult struct {
	RecordedCost   decimal.Decimal `json:"recorded_cost"`
	CalculatedCost decimal.Decimal `json:"calculated_cost"`

	// Difference is RecordedCost - CalculatedCost
	Difference decimal.Decimal `json:"difference"`

	IsConsistent bool `json:"is_consistent"`
}
