// Package profile holds the business-type and country defaults tables and
// the resolver that turns them, plus caller overrides, into PricingParameters.
package profile

import (
	"strings"

	"github.com/shopspring/decimal"

	"recipe-pricing/internal/errors"
)

// BusinessType is one of a closed set of business categories.
// The values are stable identifiers persisted by tenants.
type BusinessType string

const (
	BusinessHotel       BusinessType = "Hotéis"
	BusinessTraditional BusinessType = "Restauração tradicional"
	BusinessChain       BusinessType = "Cadeias"
	BusinessConsultant  BusinessType = "Consultores de F&B"
)

// FallbackBusinessType is what callers substitute for an unknown business type.
const FallbackBusinessType = BusinessTraditional

// BusinessTypes lists the closed set in presentation order.
var BusinessTypes = []BusinessType{
	BusinessHotel,
	BusinessTraditional,
	BusinessChain,
	BusinessConsultant,
}

var businessAliases = map[string]BusinessType{
	"hotel":       BusinessHotel,
	"hotels":      BusinessHotel,
	"hoteis":      BusinessHotel,
	"traditional": BusinessTraditional,
	"restauracao": BusinessTraditional,
	"chain":       BusinessChain,
	"chains":      BusinessChain,
	"cadeias":     BusinessChain,
	"consultant":  BusinessConsultant,
	"consultants": BusinessConsultant,
	"consultores": BusinessConsultant,
}

// String returns the string representation
func (b BusinessType) String() string {
	return string(b)
}

// IsValid reports whether b belongs to the closed set.
func (b BusinessType) IsValid() bool {
	_, ok := businessTable[b]
	return ok
}

// ParseBusinessType accepts a canonical identifier or a short ASCII alias.
func ParseBusinessType(s string) (BusinessType, error) {
	trimmed := strings.TrimSpace(s)
	if bt := BusinessType(trimmed); bt.IsValid() {
		return bt, nil
	}
	if bt, ok := businessAliases[strings.ToLower(trimmed)]; ok {
		return bt, nil
	}
	return "", errors.InvalidBusinessType(s)
}

// BusinessDefaults is the default parameter set of a business type
type BusinessDefaults struct {
	BusinessType           BusinessType                  `json:"business_type"`
	OperationalCostPercent decimal.Decimal               `json:"operational_cost_percent"`
	FoodCostTargetPercents [variantCount]decimal.Decimal `json:"food_cost_target_percents"`
	Ratios                 [variantCount]decimal.Decimal `json:"ratios"`
	Intervals              FoodCostIntervals             `json:"intervals"`
}

const variantCount = 5

// PrimaryTarget is the first food-cost target, used for single-price quotes.
func (d BusinessDefaults) PrimaryTarget() decimal.Decimal {
	return d.FoodCostTargetPercents[0]
}

// PrimaryRatio is the first ratio, used for single-price quotes.
func (d BusinessDefaults) PrimaryRatio() decimal.Decimal {
	return d.Ratios[0]
}

var businessTable = map[BusinessType]BusinessDefaults{
	BusinessHotel:       newBusinessDefaults(BusinessHotel, 20, [variantCount]float64{24, 26, 28, 30, 32}, 28, 32),
	BusinessTraditional: newBusinessDefaults(BusinessTraditional, 15, [variantCount]float64{25, 28, 30, 33, 35}, 25, 30),
	BusinessChain:       newBusinessDefaults(BusinessChain, 12, [variantCount]float64{20, 23, 25, 28, 30}, 23, 28),
	BusinessConsultant:  newBusinessDefaults(BusinessConsultant, 15, [variantCount]float64{25, 28, 30, 33, 35}, 25, 30),
}

func newBusinessDefaults(bt BusinessType, opCost float64, targets [variantCount]float64, goodMax, normalMax float64) BusinessDefaults {
	d := BusinessDefaults{
		BusinessType:           bt,
		OperationalCostPercent: decimal.NewFromFloat(opCost),
		Intervals: FoodCostIntervals{
			GoodMax:   decimal.NewFromFloat(goodMax),
			NormalMax: decimal.NewFromFloat(normalMax),
		},
	}
	for i, t := range targets {
		d.FoodCostTargetPercents[i] = decimal.NewFromFloat(t)
		d.Ratios[i] = RatioForTarget(d.FoodCostTargetPercents[i])
	}
	return d
}

// RatioForTarget converts a food-cost percentage into the equivalent ratio.
// The result is not rounded, so pricing by ratio and by target agree;
// round only for display.
func RatioForTarget(percent decimal.Decimal) decimal.Decimal {
	if !percent.IsPositive() {
		return decimal.Zero
	}
	return decimal.NewFromInt(100).Div(percent)
}

// ResolveBusinessDefaults returns the defaults of a business type.
// Unknown values fail with INVALID_BUSINESS_TYPE; callers substitute
// FallbackBusinessType rather than guessing here.
func ResolveBusinessDefaults(bt BusinessType) (BusinessDefaults, error) {
	d, ok := businessTable[bt]
	if !ok {
		return BusinessDefaults{}, errors.InvalidBusinessType(string(bt))
	}
	return d, nil
}

// MustBusinessDefaults is ResolveBusinessDefaults for known constants.
func MustBusinessDefaults(bt BusinessType) BusinessDefaults {
	d, err := ResolveBusinessDefaults(bt)
	if err != nil {
		panic(err)
	}
	return d
}
