// Package output provides output formatting for quotes and consistency checks.
// This package produces human and machine-readable outputs.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"recipe-pricing/core/pricing"
	"recipe-pricing/core/types"
	"recipe-pricing/core/ui"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, report *Report) error
}

// Report is everything a command may want to print
type Report struct {
	Quote       *pricing.Quote               `json:"quote,omitempty"`
	Variants    []pricing.Variant            `json:"variants,omitempty"`
	Consistency *types.CostConsistencyResult `json:"consistency,omitempty"`
	Currency    types.CurrencyPresentation   `json:"currency"`
	Metadata    Metadata                     `json:"metadata"`
}

// Metadata contains execution context
type Metadata struct {
	Timestamp    string `json:"timestamp"`
	Version      string `json:"version"`
	BusinessType string `json:"business_type,omitempty"`
	Country      string `json:"country,omitempty"`
}

// NewFormatter returns the formatter for f.
func NewFormatter(f Format, noColor bool) (Formatter, error) {
	switch f {
	case FormatCLI, "":
		return &CLIFormatter{NoColor: noColor}, nil
	case FormatJSON:
		return &JSONFormatter{Indent: true}, nil
	}
	return nil, fmt.Errorf("unsupported output format %q", f)
}

// FormatMoney renders value with the presentation's separators and symbol.
func FormatMoney(value decimal.Decimal, cur types.CurrencyPresentation, decimals int32) string {
	fixed := value.StringFixed(decimals)
	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	integerPart, fractionPart, _ := strings.Cut(fixed, ".")
	number := groupThousands(integerPart, cur.ThousandSeparator)
	if decimals > 0 {
		number += cur.DecimalSeparator + fractionPart
	}
	if negative {
		number = "-" + number
	}

	if cur.Symbol == "" {
		return number
	}
	space := ""
	if cur.SymbolSpacing {
		space = " "
	}
	if cur.SymbolPosition == types.SymbolBefore {
		return cur.Symbol + space + number
	}
	return number + space + cur.Symbol
}

func groupThousands(digits, sep string) string {
	if len(digits) <= 3 || sep == "" {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatPercent renders a percentage with 2 decimal places.
func FormatPercent(value decimal.Decimal) string {
	return value.StringFixed(2) + "%"
}

// JSONFormatter renders the report as JSON
type JSONFormatter struct {
	Indent bool
}

// Format returns the format type
func (f *JSONFormatter) Format() Format { return FormatJSON }

// Render writes the report as JSON
func (f *JSONFormatter) Render(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	if f.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(report)
}

// CLIFormatter renders the report for a terminal
type CLIFormatter struct {
	NoColor bool
}

// Format returns the format type
func (f *CLIFormatter) Format() Format { return FormatCLI }

// Render writes the report as text
func (f *CLIFormatter) Render(w io.Writer, report *Report) error {
	out := ui.NewWriter(w, f.NoColor)
	money := func(d decimal.Decimal) string { return FormatMoney(d, report.Currency, 2) }

	if q := report.Quote; q != nil {
		out.Header("Price Quote")
		out.KeyValue("Model", string(q.Model))
		if q.Model == types.ModelRatio {
			out.KeyValue("Ratio", q.Ratio.String())
		} else {
			out.KeyValue("Food cost target", FormatPercent(q.FoodCostTargetPercent))
		}
		out.KeyValue("Ingredient cost", money(q.BaseCost))
		out.KeyValue("With operational cost", money(q.SurchargedCost))
		out.KeyValue("PVSI", money(q.PreTaxPrice))
		out.KeyValue("Tax rate", FormatPercent(q.TaxRatePercent))
		out.KeyValue("PVP", money(q.FinalPrice))
		out.Highlight("PVP ("+string(q.Policy)+")", money(q.RoundedPrice))
		if !q.FoodCostPercent.IsZero() {
			fc := FormatPercent(q.FoodCostPercent)
			if q.FoodCostBand != "" {
				fc += " (" + string(q.FoodCostBand) + ")"
			}
			out.KeyValue("Food cost", fc)
		}
	}

	if len(report.Variants) > 0 {
		out.Header("PVP Variants")
		table := out.NewTable("Variant", "Parameter", "PVSI", "PVP", "Rounded", "Food cost")
		for _, v := range report.Variants {
			name := fmt.Sprintf("PVP%d", v.Index)
			if v.Err != nil || v.Quote == nil {
				table.AddRow(name, "", "", "", "error: "+v.Error)
				continue
			}
			param := FormatPercent(v.Quote.FoodCostTargetPercent)
			if v.Quote.Model == types.ModelRatio {
				param = "x" + v.Quote.Ratio.String()
			}
			table.AddRow(name, param, money(v.Quote.PreTaxPrice), money(v.Quote.FinalPrice),
				money(v.Quote.RoundedPrice), FormatPercent(v.Quote.FoodCostPercent))
		}
		table.Render()
	}

	if c := report.Consistency; c != nil {
		out.Header("Cost Consistency")
		out.KeyValue("Recorded cost", money(c.RecordedCost))
		out.KeyValue("Calculated cost", money(c.CalculatedCost))
		out.KeyValue("Difference", money(c.Difference))
		if c.IsConsistent {
			out.Success("Cost is consistent")
		} else {
			out.Warning("Recorded cost differs from the calculated cost")
		}
	}
	return nil
}
