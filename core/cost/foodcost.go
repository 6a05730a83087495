package cost

import (
	"github.com/shopspring/decimal"

	"recipe-pricing/core/profile"
	"recipe-pricing/internal/errors"
)

// FoodCostPercent is surchargedCost / preTaxPrice * 100.
func FoodCostPercent(surchargedCost, preTaxPrice decimal.Decimal) (decimal.Decimal, error) {
	if preTaxPrice.IsZero() {
		return decimal.Zero, errors.DivisionByZero("pre-tax price is 0")
	}
	if preTaxPrice.IsNegative() || surchargedCost.IsNegative() {
		return decimal.Zero, errors.InvalidParameter("food cost needs non-negative cost and price")
	}
	return surchargedCost.Div(preTaxPrice).Mul(hundred), nil
}

// ClassifyFoodCost computes the food cost of a price and places it in a band.
func ClassifyFoodCost(surchargedCost, preTaxPrice decimal.Decimal, intervals profile.FoodCostIntervals) (decimal.Decimal, profile.FoodCostBand, error) {
	percent, err := FoodCostPercent(surchargedCost, preTaxPrice)
	if err != nil {
		return decimal.Zero, "", err
	}
	return percent, intervals.Classify(percent), nil
}
