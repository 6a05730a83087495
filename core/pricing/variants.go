package pricing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"recipe-pricing/core/profile"
	"recipe-pricing/core/rounding"
	"recipe-pricing/core/types"
	"recipe-pricing/internal/errors"
)

// Variant is one of PVP1..PVP5
type Variant struct {
	// Index is 1-based: PVP1 has Index 1
	Index int    `json:"index"`
	Quote *Quote `json:"quote,omitempty"`
	Err   error  `json:"-"`

	// Error mirrors Err for serialization
	Error string `json:"error,omitempty"`
}

// Variants prices surchargedCost once per value. Under the food-cost model each
// value is a target percentage; under the ratio model each value is a ratio.
// Variants are independent: one failing leaves the others intact.
func Variants(surchargedCost decimal.Decimal, params types.PricingParameters, values []decimal.Decimal, policy rounding.Policy, intervals *profile.FoodCostIntervals) ([]Variant, error) {
	if len(values) == 0 || len(values) > types.MaxVariants {
		return nil, errors.InvalidParameter("between 1 and %d variants are allowed, got %d", types.MaxVariants, len(values))
	}

	out := make([]Variant, len(values))
	var g errgroup.Group
	for i, v := range values {
		i, v := i, v
		g.Go(func() error {
			p := params.WithFoodCostTarget(v)
			if params.Model == types.ModelRatio {
				p = params.WithRatio(v)
			}
			q, err := QuoteFromCost(surchargedCost, p, policy, intervals)
			out[i] = Variant{Index: i + 1, Quote: q, Err: err}
			if err != nil {
				out[i].Error = err.Error()
			}
			return nil
		})
	}
	_ = g.Wait()
	return out, nil
}
