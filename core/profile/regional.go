package profile

import (
	"strings"

	"recipe-pricing/core/rounding"
	"recipe-pricing/core/types"
)

// Country is one of a closed set of regional profiles
type Country string

const (
	Portugal  Country = "Portugal"
	Angola    Country = "Angola"
	CaboVerde Country = "Cabo Verde"
)

// Countries lists the closed set; the first entry is the regional fallback.
var Countries = []Country{Portugal, Angola, CaboVerde}

// String returns the string representation
func (c Country) String() string {
	return string(c)
}

// RegionalDefaults is the default presentation and policy of a country
type RegionalDefaults struct {
	Country        Country                    `json:"country"`
	RoundingPolicy rounding.PolicyKey         `json:"rounding_policy"`
	Currency       types.CurrencyPresentation `json:"currency"`
}

var regionalTable = map[Country]RegionalDefaults{
	Portugal: {
		Country:        Portugal,
		RoundingPolicy: rounding.NearestMultiple,
		Currency:       afterSymbol("€"),
	},
	Angola: {
		Country:        Angola,
		RoundingPolicy: rounding.Premium,
		Currency:       afterSymbol("Kz"),
	},
	CaboVerde: {
		Country:        CaboVerde,
		RoundingPolicy: rounding.Classic,
		Currency:       afterSymbol("CVE"),
	},
}

func afterSymbol(symbol string) types.CurrencyPresentation {
	return types.CurrencyPresentation{
		Symbol:            symbol,
		SymbolPosition:    types.SymbolAfter,
		DecimalSeparator:  ",",
		ThousandSeparator: ".",
		SymbolSpacing:     true,
	}
}

// IsKnownCountry reports whether country is in the closed set.
func IsKnownCountry(country Country) bool {
	_, ok := regionalTable[country]
	return ok
}

// LookupCountry matches a country name case-insensitively.
func LookupCountry(s string) (Country, bool) {
	trimmed := strings.TrimSpace(s)
	for _, c := range Countries {
		if strings.EqualFold(string(c), trimmed) {
			return c, true
		}
	}
	return "", false
}

// ResolveRegionalDefaults returns the defaults of a country. Unknown
// countries resolve to the first listed country without an error.
func ResolveRegionalDefaults(country Country) RegionalDefaults {
	if d, ok := regionalTable[country]; ok {
		return d
	}
	return regionalTable[Countries[0]]
}

// DefaultPolicyFor returns the country's default rounding policy.
func DefaultPolicyFor(country Country) rounding.PolicyKey {
	return ResolveRegionalDefaults(country).RoundingPolicy
}

// ResolvePolicyKey picks the tenant's manual choice when present, otherwise
// the country default.
func ResolvePolicyKey(country Country, manual rounding.PolicyKey) rounding.PolicyKey {
	if manual.IsValid() {
		return manual
	}
	return DefaultPolicyFor(country)
}
