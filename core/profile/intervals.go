package profile

import (
	"github.com/shopspring/decimal"

	"recipe-pricing/internal/errors"
)

// FoodCostBand classifies an effective food-cost percentage
type FoodCostBand string

const (
	BandGood   FoodCostBand = "good"
	BandNormal FoodCostBand = "normal"
	BandHigh   FoodCostBand = "high"
)

// FoodCostIntervals are the upper limits of the good and normal bands, in percent
type FoodCostIntervals struct {
	GoodMax   decimal.Decimal `json:"good_max"`
	NormalMax decimal.Decimal `json:"normal_max"`
}

// Validate requires non-negative limits with NormalMax above GoodMax.
func (i FoodCostIntervals) Validate() error {
	if i.GoodMax.IsNegative() || i.NormalMax.IsNegative() {
		return errors.InvalidParameter("food cost limits must be >= 0")
	}
	if !i.NormalMax.GreaterThan(i.GoodMax) {
		return errors.InvalidParameter("normal limit %s must be greater than good limit %s", i.NormalMax, i.GoodMax)
	}
	return nil
}

// Classify places percent in a band. Limits are inclusive.
func (i FoodCostIntervals) Classify(percent decimal.Decimal) FoodCostBand {
	switch {
	case percent.LessThanOrEqual(i.GoodMax):
		return BandGood
	case percent.LessThanOrEqual(i.NormalMax):
		return BandNormal
	default:
		return BandHigh
	}
}

// CanEditIntervals reports whether a business type may customize its intervals.
func CanEditIntervals(bt BusinessType) bool {
	return bt == BusinessConsultant
}

// IntervalsFor returns the intervals for bt. The custom intervals apply only
// when bt allows editing; an unknown bt gets the fallback business intervals.
func IntervalsFor(bt BusinessType, custom *FoodCostIntervals) (FoodCostIntervals, error) {
	if custom != nil && CanEditIntervals(bt) {
		if err := custom.Validate(); err != nil {
			return FoodCostIntervals{}, err
		}
		return *custom, nil
	}
	d, ok := businessTable[bt]
	if !ok {
		d = businessTable[FallbackBusinessType]
	}
	return d.Intervals, nil
}
