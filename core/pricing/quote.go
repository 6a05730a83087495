package pricing

import (
	"github.com/shopspring/decimal"

	"recipe-pricing/core/cost"
	"recipe-pricing/core/profile"
	"recipe-pricing/core/rounding"
	"recipe-pricing/core/types"
)

// Quote is the priced result of one recipe under one set of parameters
type Quote struct {
	Model types.PricingModel `json:"model"`

	// Parameter actually used: the ratio or the food cost target
	Ratio                 decimal.Decimal `json:"ratio"`
	FoodCostTargetPercent decimal.Decimal `json:"food_cost_target_percent"`
	TaxRatePercent        decimal.Decimal `json:"tax_rate_percent"`

	BaseCost       decimal.Decimal `json:"base_cost"`
	SurchargedCost decimal.Decimal `json:"surcharged_cost"`

	// PreTaxPrice is the PVSI
	PreTaxPrice decimal.Decimal `json:"pre_tax_price"`

	// FinalPrice is the PVP before rounding
	FinalPrice decimal.Decimal `json:"final_price"`

	// RoundedPrice is the presented PVP
	RoundedPrice decimal.Decimal    `json:"rounded_price"`
	Policy       rounding.PolicyKey `json:"policy"`

	// FoodCostPercent is SurchargedCost / PreTaxPrice * 100; zero when PreTaxPrice is zero
	FoodCostPercent decimal.Decimal      `json:"food_cost_percent"`
	FoodCostBand    profile.FoodCostBand `json:"food_cost_band,omitempty"`
}

// Request is the input of Calculate
type Request struct {
	Lines     []types.IngredientLine
	Params    types.PricingParameters
	Policy    rounding.Policy
	Intervals *profile.FoodCostIntervals
}

// Calculate runs the full pipeline: aggregate, surcharge, price, tax, round.
// Any failure aborts the quote; no partial price is returned.
func Calculate(req Request) (*Quote, error) {
	base, surcharged, err := cost.SurchargedCost(req.Lines, req.Params.OperationalCostPercent)
	if err != nil {
		return nil, err
	}
	q, err := QuoteFromCost(surcharged, req.Params, req.Policy, req.Intervals)
	if err != nil {
		return nil, err
	}
	q.BaseCost = base
	return q, nil
}

// QuoteFromCost prices an already surcharged cost. BaseCost is left zero.
func QuoteFromCost(surchargedCost decimal.Decimal, params types.PricingParameters, policy rounding.Policy, intervals *profile.FoodCostIntervals) (*Quote, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	preTax, err := PreTaxPrice(surchargedCost, params)
	if err != nil {
		return nil, err
	}
	final, err := ApplyTax(preTax, params.TaxRatePercent)
	if err != nil {
		return nil, err
	}
	rounded, err := rounding.Apply(final, policy)
	if err != nil {
		return nil, err
	}

	q := &Quote{
		Model:          params.Model,
		TaxRatePercent: params.TaxRatePercent,
		SurchargedCost: surchargedCost,
		PreTaxPrice:    preTax,
		FinalPrice:     final,
		RoundedPrice:   rounded,
		Policy:         policy.Key,
	}
	if params.Model == types.ModelRatio {
		q.Ratio = params.Ratio
	} else {
		q.FoodCostTargetPercent = params.FoodCostTargetPercent
	}

	if preTax.IsPositive() {
		if intervals != nil {
			q.FoodCostPercent, q.FoodCostBand, err = cost.ClassifyFoodCost(surchargedCost, preTax, *intervals)
		} else {
			q.FoodCostPercent, err = cost.FoodCostPercent(surchargedCost, preTax)
		}
		if err != nil {
			return nil, err
		}
	}
	return q, nil
}
