package rounding

// Description documents a policy for selection screens
type Description struct {
	Key         PolicyKey `json:"key"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Examples    string    `json:"examples"`
}

var catalog = map[PolicyKey]Description{
	Classic: {
		Key:         Classic,
		Title:       "Classic commercial rounding (.00 or .50)",
		Description: "Rounds to the nearest half unit, e.g. 10.00, 10.50, 11.00.",
		Examples:    "10.32 -> 10.50, 10.66 -> 10.50, 10.76 -> 11.00",
	},
	Psychological: {
		Key:         Psychological,
		Title:       "Psychological pricing (.90 / .99)",
		Description: "Moves up to the next price ending in .90 or .99.",
		Examples:    "10.32 -> 10.90, 10.95 -> 10.99, 11.10 -> 11.90",
	},
	Premium: {
		Key:         Premium,
		Title:       "Premium rounding (ends in .00)",
		Description: "Always rounds up to the next whole currency unit.",
		Examples:    "10.32 -> 11.00, 14.71 -> 15.00",
	},
	StrictEuro: {
		Key:         StrictEuro,
		Title:       "Strict whole-unit rounding",
		Description: "Rounds to the nearest whole unit, up or down. Common in canteens.",
		Examples:    "10.32 -> 10.00, 10.66 -> 11.00",
	},
	NearestMultiple: {
		Key:         NearestMultiple,
		Title:       "Nearest multiple (0.05 or 0.10)",
		Description: "Rounds to the nearest multiple of a configurable step. Common in cafes and bars.",
		Examples:    "step 0.05: 10.32 -> 10.30, step 0.10: 10.36 -> 10.40",
	},
	MinimumMargin: {
		Key:         MinimumMargin,
		Title:       "Minimum margin guarantee",
		Description: "Rounds up to a multiple of the step so the price never falls below the cost floor.",
		Examples:    "step 0.05: 10.12 -> 10.15, 10.15 -> 10.15",
	},
	Corporate: {
		Key:         Corporate,
		Title:       "Corporate rounding (allowed endings list)",
		Description: "Moves up to the next allowed ending, e.g. .00, .50, .90, .95. Used by chains and groups.",
		Examples:    "endings {0.00, 0.50, 0.90}: 10.32 -> 10.50, 10.76 -> 10.90",
	},
}

// Describe returns the catalog entry of a policy.
func Describe(key PolicyKey) (Description, bool) {
	d, ok := catalog[key]
	return d, ok
}

// Catalog returns every policy description in catalog order.
func Catalog() []Description {
	out := make([]Description, 0, len(Keys))
	for _, key := range Keys {
		out = append(out, catalog[key])
	}
	return out
}
