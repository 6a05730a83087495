package cost

import (
	"math"

	"github.com/shopspring/decimal"

	"recipe-pricing/core/types"
)

// Tolerance absorbs rounding noise between two independently derived totals.
// It is not a business tolerance and is not configurable.
var Tolerance = decimal.New(1, -2)

// CheckConsistency compares a recorded cost to a recomputed one. It never fails.
func CheckConsistency(recordedCost, calculatedCost decimal.Decimal) types.CostConsistencyResult {
	diff := recordedCost.Sub(calculatedCost)
	return types.CostConsistencyResult{
		RecordedCost:   recordedCost,
		CalculatedCost: calculatedCost,
		Difference:     diff,
		IsConsistent:   diff.Abs().LessThan(Tolerance),
	}
}

// CheckRecipe recomputes the cost of lines and compares it to recorded.
// A missing recorded cost takes the calculated value.
func CheckRecipe(recorded decimal.NullDecimal, lines []types.IngredientLine) (types.CostConsistencyResult, error) {
	calculated, err := AggregateIngredientCost(lines)
	if err != nil {
		return types.CostConsistencyResult{}, err
	}
	recordedCost := calculated
	if recorded.Valid {
		recordedCost = recorded.Decimal
	}
	return CheckConsistency(recordedCost, calculated), nil
}

// NormalizeCost converts a float cost for CheckConsistency, mapping NaN and
// infinities to 0.
func NormalizeCost(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}
