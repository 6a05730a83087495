package profile

import (
	"github.com/shopspring/decimal"

	"recipe-pricing/core/types"
)

// Overrides are the tenant's customizations. A nil field means "use the default".
type Overrides struct {
	OperationalCostPercent *decimal.Decimal
	Model                  *types.PricingModel
	Ratio                  *decimal.Decimal
	FoodCostTargets        TargetList
}

// ResolveParameters merges overrides over d into the PricingParameters of a
// single calculation. The first food-cost target is authoritative for the
// food-cost model; the tax rate is passed through verbatim.
func ResolveParameters(d BusinessDefaults, o Overrides, taxRatePercent decimal.Decimal) types.PricingParameters {
	params := types.PricingParameters{
		OperationalCostPercent: d.OperationalCostPercent,
		Model:                  types.ModelFoodCostTarget,
		Ratio:                  d.PrimaryRatio(),
		FoodCostTargetPercent:  d.PrimaryTarget(),
		TaxRatePercent:         taxRatePercent,
	}
	if o.OperationalCostPercent != nil {
		params.OperationalCostPercent = *o.OperationalCostPercent
	}
	if o.Model != nil {
		params.Model = *o.Model
	}
	if o.Ratio != nil {
		params.Ratio = *o.Ratio
	}
	if len(o.FoodCostTargets) > 0 {
		params.FoodCostTargetPercent = o.FoodCostTargets[0]
	}
	return params
}

// ResolveTargets returns the food-cost targets for PVP1..PVP5: the overrides
// when present, otherwise the business defaults.
func ResolveTargets(d BusinessDefaults, o Overrides) TargetList {
	if len(o.FoodCostTargets) > 0 {
		out := make(TargetList, len(o.FoodCostTargets))
		copy(out, o.FoodCostTargets)
		return out
	}
	out := make(TargetList, variantCount)
	copy(out, d.FoodCostTargetPercents[:])
	return out
}

// ResolveRatios returns the ratios for PVP1..PVP5. An overridden ratio
// replaces only the first variant.
func ResolveRatios(d BusinessDefaults, o Overrides) []decimal.Decimal {
	out := make([]decimal.Decimal, variantCount)
	copy(out, d.Ratios[:])
	if o.Ratio != nil {
		out[0] = *o.Ratio
	}
	return out
}
