// Package cost aggregates ingredient lines into a recipe cost and checks a
// recorded cost against the recomputed one.
package cost

import (
	"github.com/shopspring/decimal"

	"recipe-pricing/core/types"
	"recipe-pricing/internal/errors"
)

var hundred = decimal.NewFromInt(100)

// ClampPercent clamps p to [0,100].
func ClampPercent(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}

// AggregateIngredientCost sums the effective line cost of every line.
// Empty input yields 0.
func AggregateIngredientCost(lines []types.IngredientLine) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, line := range lines {
		if err := line.Validate(); err != nil {
			return decimal.Zero, errors.Wrapf(errors.TypeInvalidParameter, err, "ingredient line %d", i+1)
		}
		total = total.Add(line.EffectiveLineCost())
	}
	return total, nil
}

// ApplyOperationalSurcharge returns baseCost * (1 + percent/100) with percent
// clamped to [0,100].
func ApplyOperationalSurcharge(baseCost, operationalCostPercent decimal.Decimal) (decimal.Decimal, error) {
	if baseCost.IsNegative() {
		return decimal.Zero, errors.InvalidParameter("base cost must be >= 0, got %s", baseCost)
	}
	factor := decimal.NewFromInt(1).Add(ClampPercent(operationalCostPercent).Div(hundred))
	return baseCost.Mul(factor), nil
}

// SurchargedCost aggregates lines and applies the surcharge in one step.
func SurchargedCost(lines []types.IngredientLine, operationalCostPercent decimal.Decimal) (base, surcharged decimal.Decimal, err error) {
	base, err = AggregateIngredientCost(lines)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	surcharged, err = ApplyOperationalSurcharge(base, operationalCostPercent)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return base, surcharged, nil
}
