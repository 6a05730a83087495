package profile

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"recipe-pricing/internal/errors"
)

var hundred = decimal.NewFromInt(100)

// TargetList is an ordered list of 1..5 food-cost targets, in percent
type TargetList []decimal.Decimal

// Validate checks the length and that every target is in (0,100].
func (t TargetList) Validate() error {
	if len(t) == 0 {
		return errors.InvalidParameter("target list is empty")
	}
	if len(t) > variantCount {
		return errors.InvalidParameter("at most %d targets are allowed, got %d", variantCount, len(t))
	}
	for i, target := range t {
		if !target.IsPositive() || target.GreaterThan(hundred) {
			return errors.InvalidParameter("target %d must be in (0,100], got %s", i+1, target)
		}
	}
	return nil
}

// ParseTargetList parses a stored JSON array such as `[25, "28.5", 30]`.
// It never substitutes defaults: an empty, malformed or out-of-range value
// is returned as a PARSE_ERROR and the caller chooses the fallback.
func ParseTargetList(raw string) (TargetList, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, errors.Parsing("target list is empty", nil)
	}
	var list TargetList
	if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
		return nil, errors.Parsing("target list is not a JSON array of numbers", err)
	}
	if err := list.Validate(); err != nil {
		return nil, errors.Parsing("target list is out of range", err)
	}
	return list, nil
}

// ParsePercent parses a stored single percentage such as "12.5" or "12,5".
func ParsePercent(raw string) (decimal.Decimal, error) {
	trimmed := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if trimmed == "" {
		return decimal.Zero, errors.Parsing("percentage is empty", nil)
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, errors.Parsing("percentage is not numeric", err)
	}
	return d, nil
}

type storedIntervals struct {
	GoodMax   *decimal.Decimal `json:"bomMax"`
	NormalMax *decimal.Decimal `json:"normalMax"`
}

// ParseIntervals parses stored consultant intervals `{"bomMax":25,"normalMax":30}`.
func ParseIntervals(raw string) (FoodCostIntervals, error) {
	var stored storedIntervals
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &stored); err != nil {
		return FoodCostIntervals{}, errors.Parsing("intervals are not valid JSON", err)
	}
	if stored.GoodMax == nil || stored.NormalMax == nil {
		return FoodCostIntervals{}, errors.Parsing("intervals require bomMax and normalMax", nil)
	}
	intervals := FoodCostIntervals{GoodMax: *stored.GoodMax, NormalMax: *stored.NormalMax}
	if err := intervals.Validate(); err != nil {
		return FoodCostIntervals{}, errors.Parsing("intervals are out of range", err)
	}
	return intervals, nil
}
