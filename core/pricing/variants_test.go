package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"recipe-pricing/core/profile"
	"recipe-pricing/core/rounding"
	"recipe-pricing/core/types"
	"recipe-pricing/internal/errors"
)

func TestVariantsFoodCostTargets(t *testing.T) {
	params := types.PricingParameters{Model: types.ModelFoodCostTarget, TaxRatePercent: d("0")}
	targets := []decimal.Decimal{d("20"), d("25"), d("0"), d("40"), d("50")}

	variants, err := Variants(d("10"), params, targets, rounding.NewPolicy(rounding.StrictEuro), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(variants) != len(targets) {
		t.Fatalf("Expected %d variants, got %d", len(targets), len(variants))
	}

	want := map[int]string{1: "50", 2: "40", 4: "25", 5: "20"}
	for _, v := range variants {
		if v.Index == 3 {
			if !errors.IsType(v.Err, errors.TypeDivisionByZero) {
				t.Errorf("PVP3: expected DIVISION_BY_ZERO, got %v", v.Err)
			}
			if v.Error == "" || v.Quote != nil {
				t.Error("PVP3: expected serialized error and no quote")
			}
			continue
		}
		if v.Err != nil {
			t.Fatalf("PVP%d: unexpected error %v", v.Index, v.Err)
		}
		if !v.Quote.PreTaxPrice.Equal(d(want[v.Index])) {
			t.Errorf("PVP%d: expected %s, got %s", v.Index, want[v.Index], v.Quote.PreTaxPrice)
		}
		if !v.Quote.FoodCostTargetPercent.Equal(targets[v.Index-1]) {
			t.Errorf("PVP%d: target not carried on the quote", v.Index)
		}
	}
}

func TestVariantsRatioModel(t *testing.T) {
	params := types.PricingParameters{Model: types.ModelRatio, Ratio: d("3"), TaxRatePercent: d("10")}
	ratios := []decimal.Decimal{d("2"), d("3")}

	variants, err := Variants(d("10"), params, ratios, rounding.NewPolicy(rounding.Classic), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !variants[0].Quote.FinalPrice.Equal(d("22")) {
		t.Errorf("PVP1: expected 22, got %s", variants[0].Quote.FinalPrice)
	}
	if !variants[1].Quote.FinalPrice.Equal(d("33")) {
		t.Errorf("PVP2: expected 33, got %s", variants[1].Quote.FinalPrice)
	}
}

func TestDefaultRatiosMatchTargets(t *testing.T) {
	epsilon := d("0.000000001")
	policy := rounding.NewPolicy(rounding.Classic)

	for _, bt := range profile.BusinessTypes {
		t.Run(string(bt), func(t *testing.T) {
			defaults := profile.MustBusinessDefaults(bt)
			byTarget := types.PricingParameters{Model: types.ModelFoodCostTarget, TaxRatePercent: d("23")}
			byRatio := types.PricingParameters{Model: types.ModelRatio, TaxRatePercent: d("23")}

			targets, err := Variants(d("9.2"), byTarget, profile.ResolveTargets(defaults, profile.Overrides{}), policy, nil)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			ratios, err := Variants(d("9.2"), byRatio, profile.ResolveRatios(defaults, profile.Overrides{}), policy, nil)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			for i := range targets {
				if targets[i].Err != nil || ratios[i].Err != nil {
					t.Fatalf("PVP%d: unexpected errors %v / %v", i+1, targets[i].Err, ratios[i].Err)
				}
				diff := targets[i].Quote.FinalPrice.Sub(ratios[i].Quote.FinalPrice).Abs()
				if diff.GreaterThan(epsilon) {
					t.Errorf("PVP%d: target gives %s, ratio gives %s", i+1,
						targets[i].Quote.FinalPrice, ratios[i].Quote.FinalPrice)
				}
			}
		})
	}
}

func TestVariantsCount(t *testing.T) {
	params := types.PricingParameters{Model: types.ModelFoodCostTarget}
	policy := rounding.NewPolicy(rounding.Classic)

	if _, err := Variants(d("10"), params, nil, policy, nil); err == nil {
		t.Error("Expected error for no variants")
	}
	six := make([]decimal.Decimal, types.MaxVariants+1)
	for i := range six {
		six[i] = d("30")
	}
	if _, err := Variants(d("10"), params, six, policy, nil); !errors.IsType(err, errors.TypeInvalidParameter) {
		t.Errorf("Expected INVALID_PARAMETER for %d variants, got %v", len(six), err)
	}
}
