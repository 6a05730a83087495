package cost

import (
	"github.com/shopspring/decimal"

	"recipe-pricing/core/types"
)

// RecipeTotals are the presentation totals of a recipe
type RecipeTotals struct {
	LineCount      int             `json:"line_count"`
	CalculatedCost decimal.Decimal `json:"calculated_cost"`
	TotalWeight    decimal.Decimal `json:"total_weight"`
	Portions       int             `json:"portions"`
	CostPerPortion decimal.Decimal `json:"cost_per_portion"`
}

// Totals computes cost, weight and cost per portion. Portions below 1 count as 1.
func Totals(lines []types.IngredientLine, portions int) (RecipeTotals, error) {
	calculated, err := AggregateIngredientCost(lines)
	if err != nil {
		return RecipeTotals{}, err
	}
	if portions < 1 {
		portions = 1
	}
	weight := decimal.Zero
	for _, line := range lines {
		weight = weight.Add(line.Weight)
	}
	return RecipeTotals{
		LineCount:      len(lines),
		CalculatedCost: calculated,
		TotalWeight:    weight,
		Portions:       portions,
		CostPerPortion: calculated.Div(decimal.NewFromInt(int64(portions))),
	}, nil
}
