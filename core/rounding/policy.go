// Package rounding - Commercial rounding policies
// Each policy snaps a computed price to a commercially conventional value.
// Rounding is always the last step applied to a price.
package rounding

import (
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"recipe-pricing/internal/errors"
)

// PolicyKey identifies a rounding policy. Keys are stable identifiers.
type PolicyKey string

const (
	Classic         PolicyKey = "classic"
	Psychological   PolicyKey = "psychological"
	Premium         PolicyKey = "premium"
	StrictEuro      PolicyKey = "strictEuro"
	NearestMultiple PolicyKey = "nearestMultiple"
	MinimumMargin   PolicyKey = "minimumMargin"
	Corporate       PolicyKey = "corporate"
)

// Keys lists every policy in catalog order.
var Keys = []PolicyKey{
	Classic,
	Psychological,
	Premium,
	StrictEuro,
	NearestMultiple,
	MinimumMargin,
	Corporate,
}

var (
	// DefaultStep is the step of nearestMultiple and minimumMargin
	DefaultStep = decimal.RequireFromString("0.05")

	// DefaultCorporateEndings is the allowed-endings list of corporate
	DefaultCorporateEndings = []decimal.Decimal{
		decimal.RequireFromString("0.00"),
		decimal.RequireFromString("0.50"),
		decimal.RequireFromString("0.90"),
		decimal.RequireFromString("0.95"),
	}

	half = decimal.RequireFromString("0.5")
	one  = decimal.NewFromInt(1)
)

// String returns the string representation
func (k PolicyKey) String() string {
	return string(k)
}

// IsValid reports whether k is one of the seven policies.
func (k PolicyKey) IsValid() bool {
	for _, key := range Keys {
		if key == k {
			return true
		}
	}
	return false
}

// ParsePolicyKey parses a policy identifier, case-insensitively.
func ParsePolicyKey(s string) (PolicyKey, error) {
	trimmed := strings.TrimSpace(s)
	for _, key := range Keys {
		if strings.EqualFold(string(key), trimmed) {
			return key, nil
		}
	}
	return "", errors.InvalidParameter("unknown rounding policy %q", s)
}

// Policy is a policy key plus its policy-specific parameters
type Policy struct {
	Key PolicyKey `json:"key"`

	// Step is used by nearestMultiple and minimumMargin; zero means DefaultStep
	Step decimal.Decimal `json:"step"`

	// Endings is used by corporate; empty means DefaultCorporateEndings
	Endings []decimal.Decimal `json:"endings,omitempty"`
}

// NewPolicy returns a policy with default parameters.
func NewPolicy(key PolicyKey) Policy {
	return Policy{Key: key}
}

// EffectiveStep returns the configured step or the default.
func (p Policy) EffectiveStep() decimal.Decimal {
	if p.Step.IsZero() {
		return DefaultStep
	}
	return p.Step
}

// EffectiveEndings returns the sorted, de-duplicated endings or the defaults.
func (p Policy) EffectiveEndings() []decimal.Decimal {
	if len(p.Endings) == 0 {
		return DefaultCorporateEndings
	}
	sorted := make([]decimal.Decimal, len(p.Endings))
	copy(sorted, p.Endings)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	out := sorted[:0]
	for i, e := range sorted {
		if i > 0 && e.Equal(out[len(out)-1]) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Validate checks the policy key and the parameters it uses.
// Steps and endings must be expressible in cents so that applying a policy
// twice gives the same result.
func (p Policy) Validate() error {
	if !p.Key.IsValid() {
		return errors.InvalidParameter("unknown rounding policy %q", p.Key)
	}
	switch p.Key {
	case NearestMultiple, MinimumMargin:
		step := p.EffectiveStep()
		if !step.IsPositive() {
			return errors.InvalidParameter("rounding step must be > 0, got %s", step)
		}
		if !isCents(step) {
			return errors.InvalidParameter("rounding step must have at most 2 decimal places, got %s", step)
		}
	case Corporate:
		for _, e := range p.Endings {
			if e.IsNegative() || e.GreaterThanOrEqual(one) {
				return errors.InvalidParameter("corporate ending must be in [0,1), got %s", e)
			}
			if !isCents(e) {
				return errors.InvalidParameter("corporate ending must have at most 2 decimal places, got %s", e)
			}
		}
	}
	return nil
}

// Apply snaps price according to the policy and returns a value rounded to
// 2 decimal places. Negative prices fail with INVALID_PRICE.
func Apply(price decimal.Decimal, p Policy) (decimal.Decimal, error) {
	if price.IsNegative() {
		return decimal.Zero, errors.InvalidPrice("price must be >= 0, got %s", price)
	}
	if err := p.Validate(); err != nil {
		return decimal.Zero, err
	}

	var out decimal.Decimal
	switch p.Key {
	case Classic:
		out = roundToStep(price, half)
	case Psychological:
		out = psychological(price)
	case Premium:
		out = price.Ceil()
	case StrictEuro:
		out = price.Round(0)
	case NearestMultiple:
		out = roundToStep(price, p.EffectiveStep())
	case MinimumMargin:
		out = roundUpToStep(price, p.EffectiveStep())
	case Corporate:
		out = snapToEndings(price, p.EffectiveEndings())
	}
	return out.Round(2), nil
}

// ApplyKey applies a policy with default parameters.
func ApplyKey(price decimal.Decimal, key PolicyKey) (decimal.Decimal, error) {
	return Apply(price, NewPolicy(key))
}

// ApplyFloat applies a policy to a float price. NaN and infinities fail with
// INVALID_PRICE instead of producing a rounded number.
func ApplyFloat(price float64, p Policy) (decimal.Decimal, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return decimal.Zero, errors.InvalidPrice("price is not finite: %v", price)
	}
	return Apply(decimal.NewFromFloat(price), p)
}

// ParsePrice parses a textual price. Both "10.32" and "10,32" are accepted.
func ParsePrice(s string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if normalized == "" {
		return decimal.Zero, errors.InvalidPrice("price is empty")
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, errors.Wrap(errors.TypeInvalidPrice, "price is not numeric", err).WithContext("input", s)
	}
	return d, nil
}

func isCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}
