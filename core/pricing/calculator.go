// Package pricing derives the recommended sale price (PVP) from a surcharged
// ingredient cost. The operational surcharge is applied before a pricing model
// runs; rounding is applied after tax.
package pricing

import (
	"github.com/shopspring/decimal"

	"recipe-pricing/core/types"
	"recipe-pricing/internal/errors"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// ApplyRatio returns the pre-tax price surchargedCost * ratio.
func ApplyRatio(surchargedCost, ratio decimal.Decimal) (decimal.Decimal, error) {
	if surchargedCost.IsNegative() {
		return decimal.Zero, errors.InvalidParameter("surcharged cost must be >= 0, got %s", surchargedCost)
	}
	if !ratio.IsPositive() {
		return decimal.Zero, errors.InvalidParameter("ratio must be > 0, got %s", ratio)
	}
	return surchargedCost.Mul(ratio), nil
}

// FoodCostFraction converts a target percentage to a fraction in (0,1].
// Zero is rejected here, before any division happens.
func FoodCostFraction(targetPercent decimal.Decimal) (decimal.Decimal, error) {
	if targetPercent.IsZero() {
		return decimal.Zero, errors.DivisionByZero("food cost target must not be 0")
	}
	if targetPercent.IsNegative() {
		return decimal.Zero, errors.InvalidParameter("food cost target must be > 0, got %s", targetPercent)
	}
	fraction := targetPercent.Div(hundred)
	if fraction.GreaterThan(one) {
		fraction = one
	}
	return fraction, nil
}

// ApplyFoodCostTarget returns the pre-tax price surchargedCost / (targetPercent/100).
func ApplyFoodCostTarget(surchargedCost, targetPercent decimal.Decimal) (decimal.Decimal, error) {
	if surchargedCost.IsNegative() {
		return decimal.Zero, errors.InvalidParameter("surcharged cost must be >= 0, got %s", surchargedCost)
	}
	fraction, err := FoodCostFraction(targetPercent)
	if err != nil {
		return decimal.Zero, err
	}
	return surchargedCost.Div(fraction), nil
}

// ApplyTax returns preTaxPrice * (1 + taxRatePercent/100). The rate is never
// inferred or defaulted here.
func ApplyTax(preTaxPrice, taxRatePercent decimal.Decimal) (decimal.Decimal, error) {
	if taxRatePercent.IsNegative() {
		return decimal.Zero, errors.InvalidParameter("tax rate must be >= 0, got %s", taxRatePercent)
	}
	return preTaxPrice.Mul(one.Add(taxRatePercent.Div(hundred))), nil
}

// PreTaxPrice dispatches on params.Model.
func PreTaxPrice(surchargedCost decimal.Decimal, params types.PricingParameters) (decimal.Decimal, error) {
	switch params.Model {
	case types.ModelRatio:
		return ApplyRatio(surchargedCost, params.Ratio)
	case types.ModelFoodCostTarget:
		return ApplyFoodCostTarget(surchargedCost, params.FoodCostTargetPercent)
	default:
		return decimal.Zero, errors.InvalidParameter("unknown pricing model %q", params.Model)
	}
}
