// Package cmd - round and check commands
package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"recipe-pricing/core/cost"
	"recipe-pricing/core/output"
	"recipe-pricing/core/profile"
	"recipe-pricing/core/rounding"
	"recipe-pricing/core/ui"
)

var (
	roundPolicy  string
	roundCountry string
	roundStep    float64
	roundEndings []float64

	checkLines    lineFlags
	checkRecorded string
)

// roundCmd applies a rounding policy to a price
var roundCmd = &cobra.Command{
	Use:   "round <price>",
	Short: "Round a price with a rounding policy",
	Long: `Round a price with one of the rounding policies. Without --policy the
country default is used.

Examples:
  recipe-pricing round 10.32 --policy corporate
  recipe-pricing round 10,32 --country Angola
  recipe-pricing round 12.12 --policy nearestMultiple --step 0.25`,
	Args: cobra.ExactArgs(1),
	RunE: runRound,
}

// checkCmd compares a recorded cost with the calculated one
var checkCmd = &cobra.Command{
	Use:   "check [recorded calculated]",
	Short: "Check a recorded recipe cost against its ingredients",
	Long: `Check whether a recorded cost matches the calculated cost within 0.01.

Either pass both costs, or pass the ingredient lines and --recorded.

Examples:
  recipe-pricing check 10.00 9.991
  recipe-pricing check --lines-file sheet.json --recorded 12.40`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("expected 0 or 2 arguments, got %d", len(args))
		}
		return nil
	},
	RunE: runCheck,
}

func init() {
	roundCmd.Flags().StringVarP(&roundPolicy, "policy", "p", "", "rounding policy (see 'policies')")
	roundCmd.Flags().StringVarP(&roundCountry, "country", "c", "", "country whose default policy applies")
	roundCmd.Flags().Float64Var(&roundStep, "step", 0, "rounding step for nearestMultiple and minimumMargin")
	roundCmd.Flags().Float64SliceVar(&roundEndings, "endings", nil, "corporate price endings (e.g. 0,0.5,0.9)")

	checkLines.bind(checkCmd)
	checkCmd.Flags().StringVar(&checkRecorded, "recorded", "", "recorded cost (defaults to the calculated cost)")

	rootCmd.AddCommand(roundCmd)
	rootCmd.AddCommand(checkCmd)
}

func runRound(cmd *cobra.Command, args []string) error {
	price, err := rounding.ParsePrice(args[0])
	if err != nil {
		return err
	}

	country, ok := profile.LookupCountry(roundCountry)
	if !ok {
		country = profile.Countries[0]
	}
	var manual rounding.PolicyKey
	if roundPolicy != "" {
		if manual, err = rounding.ParsePolicyKey(roundPolicy); err != nil {
			return err
		}
	}
	policy := rounding.NewPolicy(profile.ResolvePolicyKey(country, manual))
	if cmd.Flags().Changed("step") {
		policy.Step = decimal.NewFromFloat(roundStep)
	}
	for _, e := range roundEndings {
		policy.Endings = append(policy.Endings, decimal.NewFromFloat(e))
	}

	rounded, err := rounding.Apply(price, policy)
	if err != nil {
		return err
	}

	if wantJSON() {
		return writeJSON(cmd, map[string]interface{}{
			"price":   price,
			"policy":  policy.Key,
			"rounded": rounded,
		})
	}
	cur := profile.ResolveRegionalDefaults(country).Currency
	out := ui.NewWriter(cmd.OutOrStdout(), noColor)
	out.KeyValue("Price", output.FormatMoney(price, cur, 2))
	out.Highlight("Rounded ("+string(policy.Key)+")", output.FormatMoney(rounded, cur, 2))
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	report := &output.Report{
		Currency: profile.ResolveRegionalDefaults(profile.Countries[0]).Currency,
	}
	report.Metadata.Version = Version

	if len(args) == 2 {
		recorded, err := parseDecimal(args[0])
		if err != nil {
			return err
		}
		calculated, err := parseDecimal(args[1])
		if err != nil {
			return err
		}
		result := cost.CheckConsistency(recorded, calculated)
		report.Consistency = &result
		return render(cmd, report)
	}

	lines, err := checkLines.load()
	if err != nil {
		return err
	}
	var recorded decimal.NullDecimal
	if checkRecorded != "" {
		d, err := parseDecimal(checkRecorded)
		if err != nil {
			return err
		}
		recorded = decimal.NewNullDecimal(d)
	}
	result, err := cost.CheckRecipe(recorded, lines)
	if err != nil {
		return err
	}
	report.Consistency = &result
	return render(cmd, report)
}
