// Package settings loads tenant pricing settings and resolves them, over the
// business and country defaults, into the values the pricing engine consumes.
//
// Settings files are HCL:
//
//	business_type = "Restauração tradicional"
//	country       = "Portugal"
//
//	pricing {
//	  model                    = "food_cost"
//	  operational_cost_percent = 15
//	  food_cost_targets        = [25, 28, 30]
//	}
//
//	rounding {
//	  policy  = "corporate"
//	  endings = [0, 0.5, 0.9]
//	}
package settings

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"recipe-pricing/core/cost"
	"recipe-pricing/core/profile"
	"recipe-pricing/core/rounding"
	"recipe-pricing/core/types"
	"recipe-pricing/internal/errors"
	"recipe-pricing/internal/logging"
)

// File is the decoded form of a settings file. Every field is optional.
type File struct {
	BusinessType string          `hcl:"business_type,optional" json:"business_type,omitempty"`
	Country      string          `hcl:"country,optional" json:"country,omitempty"`
	Pricing      *PricingBlock   `hcl:"pricing,block" json:"pricing,omitempty"`
	Rounding     *RoundingBlock  `hcl:"rounding,block" json:"rounding,omitempty"`
	Intervals    *IntervalsBlock `hcl:"intervals,block" json:"intervals,omitempty"`
}

// PricingBlock overrides the business pricing defaults
type PricingBlock struct {
	Model                  *string   `hcl:"model,optional" json:"model,omitempty"`
	OperationalCostPercent *float64  `hcl:"operational_cost_percent,optional" json:"operational_cost_percent,omitempty"`
	Ratio                  *float64  `hcl:"ratio,optional" json:"ratio,omitempty"`
	FoodCostTargets        []float64 `hcl:"food_cost_targets,optional" json:"food_cost_targets,omitempty"`
}

// RoundingBlock is the tenant's manual rounding choice
type RoundingBlock struct {
	Policy  string    `hcl:"policy,optional" json:"policy,omitempty"`
	Step    *float64  `hcl:"step,optional" json:"step,omitempty"`
	Endings []float64 `hcl:"endings,optional" json:"endings,omitempty"`
}

// IntervalsBlock customizes food-cost intervals (consultants only)
type IntervalsBlock struct {
	GoodMax   float64 `hcl:"good_max" json:"good_max"`
	NormalMax float64 `hcl:"normal_max" json:"normal_max"`
}

// Merge returns f with every field set in over laid on top. Blocks merge
// field by field; the intervals pair is replaced as a whole. f and over are
// not modified.
func (f File) Merge(over File) File {
	out := f
	if over.BusinessType != "" {
		out.BusinessType = over.BusinessType
	}
	if over.Country != "" {
		out.Country = over.Country
	}
	if over.Pricing != nil {
		p := PricingBlock{}
		if f.Pricing != nil {
			p = *f.Pricing
		}
		if over.Pricing.Model != nil {
			p.Model = over.Pricing.Model
		}
		if over.Pricing.OperationalCostPercent != nil {
			p.OperationalCostPercent = over.Pricing.OperationalCostPercent
		}
		if over.Pricing.Ratio != nil {
			p.Ratio = over.Pricing.Ratio
		}
		if over.Pricing.FoodCostTargets != nil {
			p.FoodCostTargets = over.Pricing.FoodCostTargets
		}
		out.Pricing = &p
	}
	if over.Rounding != nil {
		r := RoundingBlock{}
		if f.Rounding != nil {
			r = *f.Rounding
		}
		if over.Rounding.Policy != "" {
			r.Policy = over.Rounding.Policy
		}
		if over.Rounding.Step != nil {
			r.Step = over.Rounding.Step
		}
		if over.Rounding.Endings != nil {
			r.Endings = over.Rounding.Endings
		}
		out.Rounding = &r
	}
	if over.Intervals != nil {
		iv := *over.Intervals
		out.Intervals = &iv
	}
	return out
}

// Load decodes an HCL settings file.
func Load(path string) (*File, error) {
	var f File
	if err := hclsimple.DecodeFile(path, nil, &f); err != nil {
		return nil, errors.Config(fmt.Sprintf("failed to load settings %s", path), err)
	}
	return &f, nil
}

// Parse decodes HCL settings from memory. filename is used in diagnostics.
func Parse(filename string, src []byte) (*File, error) {
	var f File
	if err := hclsimple.Decode(filename, src, nil, &f); err != nil {
		if diags, ok := err.(hcl.Diagnostics); ok && diags.HasErrors() {
			return nil, errors.Config("invalid settings", diags)
		}
		return nil, errors.Config("invalid settings", err)
	}
	return &f, nil
}

// Resolved is a fully resolved tenant profile
type Resolved struct {
	BusinessType profile.BusinessType      `json:"business_type"`
	Country      profile.Country           `json:"country"`
	Defaults     profile.BusinessDefaults  `json:"defaults"`
	Regional     profile.RegionalDefaults  `json:"regional"`
	Overrides    profile.Overrides         `json:"-"`
	Policy       rounding.Policy           `json:"policy"`
	Intervals    profile.FoodCostIntervals `json:"intervals"`
}

// Parameters returns the PricingParameters for an article taxed at taxRatePercent.
func (r *Resolved) Parameters(taxRatePercent decimal.Decimal) types.PricingParameters {
	return profile.ResolveParameters(r.Defaults, r.Overrides, taxRatePercent)
}

// Targets returns the food-cost targets for PVP1..PVP5.
func (r *Resolved) Targets() profile.TargetList {
	return profile.ResolveTargets(r.Defaults, r.Overrides)
}

// Ratios returns the ratios for PVP1..PVP5.
func (r *Resolved) Ratios() []decimal.Decimal {
	return profile.ResolveRatios(r.Defaults, r.Overrides)
}

// Resolve merges f over the defaults. An unknown business type falls back to
// profile.FallbackBusinessType and an unknown country to the first country;
// both are logged. Out-of-range operational cost is clamped to [0,100].
func Resolve(f *File) (*Resolved, error) {
	if f == nil {
		f = &File{}
	}

	bt := profile.FallbackBusinessType
	if f.BusinessType != "" {
		parsed, err := profile.ParseBusinessType(f.BusinessType)
		if err != nil {
			logging.Warn("unknown business type, using fallback defaults",
				zap.String("business_type", f.BusinessType),
				zap.String("fallback", string(profile.FallbackBusinessType)))
		} else {
			bt = parsed
		}
	}
	defaults, err := profile.ResolveBusinessDefaults(bt)
	if err != nil {
		return nil, err
	}

	country, ok := profile.LookupCountry(f.Country)
	if !ok {
		if f.Country != "" {
			logging.Warn("unknown country, using first country defaults",
				zap.String("country", f.Country),
				zap.String("fallback", string(profile.Countries[0])))
		}
		country = profile.Countries[0]
	}
	regional := profile.ResolveRegionalDefaults(country)

	r := &Resolved{
		BusinessType: bt,
		Country:      country,
		Defaults:     defaults,
		Regional:     regional,
		Intervals:    defaults.Intervals,
	}

	if p := f.Pricing; p != nil {
		if err := r.applyPricing(p); err != nil {
			return nil, err
		}
	}

	policy, err := resolvePolicy(country, f.Rounding)
	if err != nil {
		return nil, err
	}
	r.Policy = policy

	if iv := f.Intervals; iv != nil {
		custom := profile.FoodCostIntervals{
			GoodMax:   decimal.NewFromFloat(iv.GoodMax),
			NormalMax: decimal.NewFromFloat(iv.NormalMax),
		}
		if !profile.CanEditIntervals(bt) {
			logging.Warn("custom food cost intervals ignored for business type",
				zap.String("business_type", string(bt)))
		}
		r.Intervals, err = profile.IntervalsFor(bt, &custom)
		if err != nil {
			return nil, errors.Config("invalid food cost intervals", err)
		}
	}
	return r, nil
}

func (r *Resolved) applyPricing(p *PricingBlock) error {
	if p.Model != nil {
		model, err := types.ParsePricingModel(*p.Model)
		if err != nil {
			return errors.Config("invalid pricing model", err)
		}
		r.Overrides.Model = &model
	}
	if p.OperationalCostPercent != nil {
		raw := decimal.NewFromFloat(*p.OperationalCostPercent)
		clamped := cost.ClampPercent(raw)
		if !clamped.Equal(raw) {
			logging.Warn("operational cost percent clamped",
				logging.Decimal("requested", raw), logging.Decimal("clamped", clamped))
		}
		r.Overrides.OperationalCostPercent = &clamped
	}
	if p.Ratio != nil {
		ratio := decimal.NewFromFloat(*p.Ratio)
		if !ratio.IsPositive() {
			return errors.Config("invalid ratio", errors.InvalidParameter("ratio must be > 0, got %s", ratio))
		}
		r.Overrides.Ratio = &ratio
	}
	if len(p.FoodCostTargets) > 0 {
		targets := make(profile.TargetList, len(p.FoodCostTargets))
		for i, t := range p.FoodCostTargets {
			targets[i] = decimal.NewFromFloat(t)
		}
		if err := targets.Validate(); err != nil {
			return errors.Config("invalid food cost targets", err)
		}
		r.Overrides.FoodCostTargets = targets
	}
	return nil
}

func resolvePolicy(country profile.Country, block *RoundingBlock) (rounding.Policy, error) {
	var manual rounding.PolicyKey
	if block != nil && block.Policy != "" {
		key, err := rounding.ParsePolicyKey(block.Policy)
		if err != nil {
			return rounding.Policy{}, errors.Config("invalid rounding policy", err)
		}
		manual = key
	}
	policy := rounding.NewPolicy(profile.ResolvePolicyKey(country, manual))
	if block != nil {
		if block.Step != nil {
			policy.Step = decimal.NewFromFloat(*block.Step)
		}
		for _, e := range block.Endings {
			policy.Endings = append(policy.Endings, decimal.NewFromFloat(e))
		}
	}
	if err := policy.Validate(); err != nil {
		return rounding.Policy{}, errors.Config("invalid rounding policy parameters", err)
	}
	return policy, nil
}
