package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"recipe-pricing/core/profile"
	"recipe-pricing/core/rounding"
	"recipe-pricing/core/types"
	"recipe-pricing/internal/errors"
	"recipe-pricing/internal/logging"
)

const sample = `
business_type = "Consultores de F&B"
country       = "Angola"

pricing {
  model                    = "ratio"
  operational_cost_percent = 140
  ratio                    = 3.2
  food_cost_targets        = [22, 26, 30]
}

rounding {
  policy  = "corporate"
  endings = [0.9, 0.5, 0]
}

intervals {
  good_max   = 21
  normal_max = 27
}
`

func TestParseAndResolve(t *testing.T) {
	f, err := Parse("tenant.hcl", []byte(sample))
	require.NoError(t, err)
	require.Equal(t, "Consultores de F&B", f.BusinessType)
	require.NotNil(t, f.Pricing)
	require.Len(t, f.Pricing.FoodCostTargets, 3)

	r, err := Resolve(f)
	require.NoError(t, err)
	require.Equal(t, profile.BusinessConsultant, r.BusinessType)
	require.Equal(t, profile.Angola, r.Country)
	require.Equal(t, rounding.Corporate, r.Policy.Key)
	require.Len(t, r.Policy.EffectiveEndings(), 3)
	require.True(t, r.Intervals.GoodMax.Equal(decimal.NewFromInt(21)))

	params := r.Parameters(decimal.NewFromInt(14))
	require.Equal(t, types.ModelRatio, params.Model)
	require.True(t, params.Ratio.Equal(decimal.RequireFromString("3.2")))
	require.True(t, params.OperationalCostPercent.Equal(decimal.NewFromInt(100)), "operational cost must be clamped")
	require.True(t, params.TaxRatePercent.Equal(decimal.NewFromInt(14)))

	require.Len(t, r.Targets(), 3)
	require.Len(t, r.Ratios(), 5)
}

func TestResolveEmptyUsesFallbacks(t *testing.T) {
	r, err := Resolve(nil)
	require.NoError(t, err)
	require.Equal(t, profile.FallbackBusinessType, r.BusinessType)
	require.Equal(t, profile.Countries[0], r.Country)
	require.Equal(t, profile.DefaultPolicyFor(profile.Countries[0]), r.Policy.Key)
	require.Equal(t, types.ModelFoodCostTarget, r.Parameters(decimal.Zero).Model)
}

func TestResolveUnknownValuesFallBack(t *testing.T) {
	r, err := Resolve(&File{BusinessType: "Padaria", Country: "Brasil"})
	require.NoError(t, err)
	require.Equal(t, profile.FallbackBusinessType, r.BusinessType)
	require.Equal(t, profile.Countries[0], r.Country)
}

func TestIntervalsIgnoredForNonConsultants(t *testing.T) {
	r, err := Resolve(&File{
		BusinessType: "Hotéis",
		Intervals:    &IntervalsBlock{GoodMax: 10, NormalMax: 12},
	})
	require.NoError(t, err)
	require.True(t, r.Intervals.GoodMax.Equal(decimal.NewFromInt(28)))
}

func TestResolveErrors(t *testing.T) {
	zero := 0.0
	bogus := "markup"
	badStep := 0.001

	tests := []struct {
		name string
		file *File
	}{
		{"zero ratio", &File{Pricing: &PricingBlock{Ratio: &zero}}},
		{"unknown model", &File{Pricing: &PricingBlock{Model: &bogus}}},
		{"target out of range", &File{Pricing: &PricingBlock{FoodCostTargets: []float64{30, 120}}}},
		{"unknown policy", &File{Rounding: &RoundingBlock{Policy: "banker"}}},
		{"sub-cent step", &File{Rounding: &RoundingBlock{Policy: "nearestMultiple", Step: &badStep}}},
		{"ending of one", &File{Rounding: &RoundingBlock{Policy: "corporate", Endings: []float64{1}}}},
		{"bad consultant intervals", &File{BusinessType: "consultant", Intervals: &IntervalsBlock{GoodMax: 30, NormalMax: 25}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.file)
			require.Error(t, err)
			require.True(t, errors.IsType(err, errors.TypeConfig), "got %v", err)
		})
	}
}

func TestMergeIsFieldByField(t *testing.T) {
	base, err := Parse("tenant.hcl", []byte(sample))
	require.NoError(t, err)

	ratio := 3.0
	step := 0.25
	merged := base.Merge(File{
		Country:  "Portugal",
		Pricing:  &PricingBlock{Ratio: &ratio},
		Rounding: &RoundingBlock{Step: &step},
	})

	require.Equal(t, "Consultores de F&B", merged.BusinessType)
	require.Equal(t, "Portugal", merged.Country)
	require.Equal(t, "ratio", *merged.Pricing.Model)
	require.Equal(t, 140.0, *merged.Pricing.OperationalCostPercent)
	require.Equal(t, 3.0, *merged.Pricing.Ratio)
	require.Equal(t, []float64{22, 26, 30}, merged.Pricing.FoodCostTargets)
	require.Equal(t, base.Rounding.Policy, merged.Rounding.Policy)
	require.Equal(t, base.Rounding.Endings, merged.Rounding.Endings)
	require.Equal(t, 0.25, *merged.Rounding.Step)
	require.Equal(t, base.Intervals, merged.Intervals)

	// The base is left untouched
	require.Equal(t, 3.2, *base.Pricing.Ratio)
	require.Equal(t, "Angola", base.Country)
}

func TestMergeOverEmptyBase(t *testing.T) {
	ratio := 4.0
	merged := File{}.Merge(File{
		Pricing:   &PricingBlock{Ratio: &ratio},
		Intervals: &IntervalsBlock{GoodMax: 20, NormalMax: 24},
	})
	require.Equal(t, 4.0, *merged.Pricing.Ratio)
	require.Nil(t, merged.Pricing.Model)
	require.Nil(t, merged.Rounding)
	require.Equal(t, IntervalsBlock{GoodMax: 20, NormalMax: 24}, *merged.Intervals)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tenant.hcl")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Angola", f.Country)

	_, err = Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestParseRejectsInvalidHCL(t *testing.T) {
	_, err := Parse("bad.hcl", []byte(`pricing { ratio = }`))
	require.True(t, errors.IsType(err, errors.TypeConfig))

	_, err = Parse("unknown.hcl", []byte(`currency = "USD"`))
	require.Error(t, err)
}

func TestFallbacksAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logging.SetLogger(zap.New(core))
	t.Cleanup(logging.InitializeDefault)

	op := -5.0
	_, err := Resolve(&File{
		BusinessType: "Padaria",
		Country:      "Brasil",
		Pricing:      &PricingBlock{OperationalCostPercent: &op},
	})
	require.NoError(t, err)
	require.Equal(t, 1, logs.FilterMessage("unknown business type, using fallback defaults").Len())
	require.Equal(t, 1, logs.FilterMessage("unknown country, using first country defaults").Len())
	require.Equal(t, 1, logs.FilterMessage("operational cost percent clamped").Len())
}
