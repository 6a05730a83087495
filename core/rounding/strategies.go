package rounding

import "github.com/shopspring/decimal"

// psychologicalEndings are the .90 / .99 price endings
var psychologicalEndings = []decimal.Decimal{
	decimal.RequireFromString("0.90"),
	decimal.RequireFromString("0.99"),
}

// scanSteps is how many whole units past floor(price) the ending scan covers
const scanSteps = 3

// roundToStep rounds to the nearest multiple of step; ties go up.
func roundToStep(value, step decimal.Decimal) decimal.Decimal {
	return value.Div(step).Round(0).Mul(step)
}

// roundUpToStep returns the smallest multiple of step that is >= value.
// The quotient is corrected against the exact product so limited division
// precision can never move the result below value.
func roundUpToStep(value, step decimal.Decimal) decimal.Decimal {
	q := value.Div(step).Floor()
	if q.Mul(step).LessThan(value) {
		q = q.Add(one)
	}
	return q.Mul(step)
}

// firstEndingAtOrAbove scans floor(value)+offset+ending for offsets 0..2
// and returns the first candidate that is >= value.
func firstEndingAtOrAbove(value decimal.Decimal, endings []decimal.Decimal) (decimal.Decimal, bool) {
	base := value.Floor()
	for offset := int64(0); offset < scanSteps; offset++ {
		current := base.Add(decimal.NewFromInt(offset))
		for _, ending := range endings {
			candidate := current.Add(ending)
			if candidate.GreaterThanOrEqual(value) {
				return candidate, true
			}
		}
	}
	return decimal.Zero, false
}

func psychological(value decimal.Decimal) decimal.Decimal {
	if candidate, ok := firstEndingAtOrAbove(value, psychologicalEndings); ok {
		return candidate
	}
	return value.Ceil()
}

// snapToEndings expects endings sorted ascending and non-empty.
func snapToEndings(value decimal.Decimal, endings []decimal.Decimal) decimal.Decimal {
	if candidate, ok := firstEndingAtOrAbove(value, endings); ok {
		return candidate
	}
	return value.Floor().Add(one).Add(endings[len(endings)-1])
}
