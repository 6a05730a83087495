package rounding

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"recipe-pricing/internal/errors"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestApplyPolicies(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		price  string
		want   string
	}{
		{"classic nearest half above", NewPolicy(Classic), "10.32", "10.50"},
		{"classic nearest half below", NewPolicy(Classic), "10.66", "10.50"},
		{"classic up to unit", NewPolicy(Classic), "10.76", "11.00"},
		{"classic tie goes up", NewPolicy(Classic), "10.25", "10.50"},
		{"classic zero", NewPolicy(Classic), "0", "0"},

		{"psychological .90", NewPolicy(Psychological), "10.32", "10.90"},
		{"psychological .99", NewPolicy(Psychological), "10.95", "10.99"},
		{"psychological next unit", NewPolicy(Psychological), "10.995", "11.90"},
		{"psychological whole", NewPolicy(Psychological), "11", "11.90"},
		{"psychological already .90", NewPolicy(Psychological), "10.90", "10.90"},

		{"premium ceil", NewPolicy(Premium), "10.32", "11"},
		{"premium ceil small", NewPolicy(Premium), "14.01", "15"},
		{"premium whole", NewPolicy(Premium), "15", "15"},
		{"premium pvp", NewPolicy(Premium), "34.6533", "35"},

		{"strict down", NewPolicy(StrictEuro), "10.32", "10"},
		{"strict half up", NewPolicy(StrictEuro), "10.50", "11"},
		{"strict up", NewPolicy(StrictEuro), "10.66", "11"},

		{"nearest default step down", NewPolicy(NearestMultiple), "10.32", "10.30"},
		{"nearest default step up", NewPolicy(NearestMultiple), "10.33", "10.35"},
		{"nearest step 0.10", Policy{Key: NearestMultiple, Step: d("0.10")}, "10.36", "10.40"},
		{"nearest step 0.25", Policy{Key: NearestMultiple, Step: d("0.25")}, "12.12", "12.00"},

		{"minimum margin up", NewPolicy(MinimumMargin), "10.31", "10.35"},
		{"minimum margin exact", NewPolicy(MinimumMargin), "10.35", "10.35"},
		{"minimum margin just above", NewPolicy(MinimumMargin), "10.351", "10.40"},
		{"minimum margin step 0.10", Policy{Key: MinimumMargin, Step: d("0.10")}, "10.01", "10.10"},

		{"corporate to .50", NewPolicy(Corporate), "10.32", "10.50"},
		{"corporate to .90", NewPolicy(Corporate), "10.76", "10.90"},
		{"corporate to .95", NewPolicy(Corporate), "10.93", "10.95"},
		{"corporate next unit", NewPolicy(Corporate), "10.96", "11.00"},
		{"corporate whole", NewPolicy(Corporate), "10.00", "10.00"},
		{"corporate custom endings", Policy{Key: Corporate, Endings: []decimal.Decimal{d("0.75"), d("0.25")}}, "10.80", "11.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(d(tt.price), tt.policy)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !got.Equal(d(tt.want)) {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

var samplePrices = []string{
	"0", "0.01", "0.49", "0.5", "1", "9.99", "10", "10.01", "10.25", "10.32", "10.5",
	"10.66", "10.76", "10.899", "10.9", "10.95", "10.96", "10.99", "10.995", "39.606", "1234.567",
}

func TestApplyIsIdempotent(t *testing.T) {
	for _, key := range Keys {
		t.Run(string(key), func(t *testing.T) {
			policy := NewPolicy(key)
			for _, raw := range samplePrices {
				once, err := Apply(d(raw), policy)
				if err != nil {
					t.Fatalf("Unexpected error for %s: %v", raw, err)
				}
				twice, err := Apply(once, policy)
				if err != nil {
					t.Fatalf("Unexpected error for %s: %v", once, err)
				}
				if !once.Equal(twice) {
					t.Errorf("%s: round(%s) = %s but round(round) = %s", key, raw, once, twice)
				}
			}
		})
	}
}

func TestApplyIsMonotonic(t *testing.T) {
	for _, key := range Keys {
		t.Run(string(key), func(t *testing.T) {
			policy := NewPolicy(key)
			prev := decimal.Zero
			for _, raw := range samplePrices {
				got, err := Apply(d(raw), policy)
				if err != nil {
					t.Fatalf("Unexpected error for %s: %v", raw, err)
				}
				if got.LessThan(prev) {
					t.Errorf("%s: round(%s) = %s is below the previous result %s", key, raw, got, prev)
				}
				if got.IsNegative() {
					t.Errorf("%s: round(%s) is negative", key, raw)
				}
				prev = got
			}
		})
	}
}

func TestUpwardPoliciesNeverLowerPrice(t *testing.T) {
	upward := []PolicyKey{Psychological, Premium, MinimumMargin, Corporate}
	for _, key := range upward {
		for _, raw := range samplePrices {
			got, err := ApplyKey(d(raw), key)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got.LessThan(d(raw)) {
				t.Errorf("%s lowered %s to %s", key, raw, got)
			}
		}
	}
}

func TestApplyErrors(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		policy   Policy
		wantType errors.Type
	}{
		{"negative price", "-0.01", NewPolicy(Classic), errors.TypeInvalidPrice},
		{"unknown key", "10", NewPolicy("banker"), errors.TypeInvalidParameter},
		{"empty key", "10", Policy{}, errors.TypeInvalidParameter},
		{"negative step", "10", Policy{Key: NearestMultiple, Step: d("-0.05")}, errors.TypeInvalidParameter},
		{"sub-cent step", "10", Policy{Key: MinimumMargin, Step: d("0.001")}, errors.TypeInvalidParameter},
		{"ending of one", "10", Policy{Key: Corporate, Endings: []decimal.Decimal{d("1")}}, errors.TypeInvalidParameter},
		{"negative ending", "10", Policy{Key: Corporate, Endings: []decimal.Decimal{d("-0.1")}}, errors.TypeInvalidParameter},
		{"sub-cent ending", "10", Policy{Key: Corporate, Endings: []decimal.Decimal{d("0.125")}}, errors.TypeInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Apply(d(tt.price), tt.policy)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !errors.IsType(err, tt.wantType) {
				t.Errorf("Expected %s, got %v", tt.wantType, err)
			}
		})
	}
}

func TestApplyFloatRejectsNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := ApplyFloat(f, NewPolicy(Classic))
		if !errors.IsType(err, errors.TypeInvalidPrice) {
			t.Errorf("Expected INVALID_PRICE for %v, got %v", f, err)
		}
	}

	got, err := ApplyFloat(10.32, NewPolicy(Corporate))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !got.Equal(d("10.5")) {
		t.Errorf("Expected 10.5, got %s", got)
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"10.32", "10.32", false},
		{"10,32", "10.32", false},
		{" 7 ", "7", false},
		{"", "", true},
		{"abc", "", true},
		{"1.2.3", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePrice(tt.input)
			if tt.wantErr {
				if !errors.IsType(err, errors.TypeInvalidPrice) {
					t.Errorf("Expected INVALID_PRICE, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !got.Equal(d(tt.want)) {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParsePolicyKey(t *testing.T) {
	key, err := ParsePolicyKey("StrictEuro")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if key != StrictEuro {
		t.Errorf("Expected %s, got %s", StrictEuro, key)
	}

	if _, err := ParsePolicyKey("ceiling"); err == nil {
		t.Error("Expected error for unknown key")
	}
}

func TestEffectiveEndingsSortsAndDeduplicates(t *testing.T) {
	p := Policy{Key: Corporate, Endings: []decimal.Decimal{d("0.9"), d("0.5"), d("0.90"), d("0")}}
	got := p.EffectiveEndings()
	want := []string{"0", "0.5", "0.9"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d endings, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if !got[i].Equal(d(want[i])) {
			t.Errorf("ending %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if len(p.Endings) != 4 {
		t.Error("EffectiveEndings must not modify the policy")
	}

	if n := len(NewPolicy(Corporate).EffectiveEndings()); n != len(DefaultCorporateEndings) {
		t.Errorf("Expected default endings, got %d", n)
	}
}

func TestCatalogCoversEveryKey(t *testing.T) {
	catalog := Catalog()
	if len(catalog) != len(Keys) {
		t.Fatalf("Expected %d entries, got %d", len(Keys), len(catalog))
	}
	for i, key := range Keys {
		if catalog[i].Key != key {
			t.Errorf("entry %d: expected %s, got %s", i, key, catalog[i].Key)
		}
		if _, ok := Describe(key); !ok {
			t.Errorf("Describe(%s) not found", key)
		}
	}
}
