// Package cmd - quote and variants commands
package cmd

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"recipe-pricing/core/cost"
	"recipe-pricing/core/pricing"
	"recipe-pricing/core/types"
	"recipe-pricing/internal/errors"
	"recipe-pricing/internal/logging"
)

var (
	quoteProfile profileFlags
	quoteLines   lineFlags
	quoteTax     string
	quoteRecord  string

	variantsProfile profileFlags
	variantsLines   lineFlags
	variantsTax     string
)

// quoteCmd prices one recipe
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Compute the selling price of a recipe",
	Long: `Compute the pre-tax price, the final price and the rounded price of a recipe.

The ingredient cost is increased by the operational cost percent, priced with
the ratio or food-cost model, taxed, and rounded with the country policy.

Examples:
  recipe-pricing quote --line 1:5.00 --line 1:3.00 --model ratio --ratio 3.5 --tax 23 --policy classic
  recipe-pricing quote --lines-file sheet.json --business "Hotéis" --tax 13 --recorded 12.40`,
	RunE: runQuote,
}

// variantsCmd prices PVP1..PVP5
var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "Compute the PVP1..PVP5 price variants of a recipe",
	Long: `Compute one price per food-cost target (or per ratio under the ratio model).

Examples:
  recipe-pricing variants --lines-file sheet.json --business Cadeias --tax 23
  recipe-pricing variants --line 2:5 --targets "[25,30,35]" --tax 13`,
	RunE: runVariants,
}

func init() {
	quoteProfile.bind(quoteCmd)
	quoteLines.bind(quoteCmd)
	quoteCmd.Flags().StringVarP(&quoteTax, "tax", "t", "", "tax rate percent of the article (required)")
	quoteCmd.Flags().StringVar(&quoteRecord, "recorded", "", "recorded cost to check against the ingredients")

	variantsProfile.bind(variantsCmd)
	variantsLines.bind(variantsCmd)
	variantsCmd.Flags().StringVarP(&variantsTax, "tax", "t", "", "tax rate percent of the article (required)")

	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(variantsCmd)
}

// taxRate reads --tax. The rate comes from the article and has no default.
func taxRate(cmd *cobra.Command, raw string) (decimal.Decimal, error) {
	if !cmd.Flags().Changed("tax") || strings.TrimSpace(raw) == "" {
		return decimal.Zero, errors.Input("--tax is required")
	}
	return parseDecimal(raw)
}

func runQuote(cmd *cobra.Command, args []string) error {
	resolved, err := quoteProfile.resolve(cmd)
	if err != nil {
		return err
	}
	lines, err := quoteLines.load()
	if err != nil {
		return err
	}
	tax, err := taxRate(cmd, quoteTax)
	if err != nil {
		return err
	}

	params := resolved.Parameters(tax)
	logging.Debug("pricing recipe",
		zap.Int("lines", len(lines)),
		zap.String("model", string(params.Model)),
		zap.String("policy", string(resolved.Policy.Key)))

	quote, err := pricing.Calculate(pricing.Request{
		Lines:     lines,
		Params:    params,
		Policy:    resolved.Policy,
		Intervals: &resolved.Intervals,
	})
	if err != nil {
		return err
	}

	report := newReport(resolved)
	report.Quote = quote
	if quoteRecord != "" {
		recorded, err := parseDecimal(quoteRecord)
		if err != nil {
			return err
		}
		result := cost.CheckConsistency(recorded, quote.BaseCost)
		report.Consistency = &result
	}
	return render(cmd, report)
}

func runVariants(cmd *cobra.Command, args []string) error {
	resolved, err := variantsProfile.resolve(cmd)
	if err != nil {
		return err
	}
	lines, err := variantsLines.load()
	if err != nil {
		return err
	}
	tax, err := taxRate(cmd, variantsTax)
	if err != nil {
		return err
	}

	params := resolved.Parameters(tax)
	_, surcharged, err := cost.SurchargedCost(lines, params.OperationalCostPercent)
	if err != nil {
		return err
	}

	values := []decimal.Decimal(resolved.Targets())
	if params.Model == types.ModelRatio {
		values = resolved.Ratios()
	}
	variants, err := pricing.Variants(surcharged, params, values, resolved.Policy, &resolved.Intervals)
	if err != nil {
		return err
	}
	for _, v := range variants {
		if v.Err != nil {
			logging.Warn("variant failed", zap.Int("index", v.Index), zap.Error(v.Err))
		}
	}

	report := newReport(resolved)
	report.Variants = variants
	return render(cmd, report)
}
