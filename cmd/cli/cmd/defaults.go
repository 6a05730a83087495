// Package cmd - defaults and policies commands
package cmd

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"recipe-pricing/core/output"
	"recipe-pricing/core/profile"
	"recipe-pricing/core/rounding"
	"recipe-pricing/core/ui"
)

// example is the amount shown in the currency column
var example = decimal.NewFromFloat(1234.5)

// defaultsCmd shows the built-in defaults
var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Show business and country defaults",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var defaultsBusinessCmd = &cobra.Command{
	Use:   "business [type]",
	Short: "Show the defaults of one or every business type",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDefaultsBusiness,
}

var defaultsCountryCmd = &cobra.Command{
	Use:   "country [name]",
	Short: "Show the defaults of one or every country",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDefaultsCountry,
}

// policiesCmd lists the rounding policies
var policiesCmd = &cobra.Command{
	Use:   "policies",
	Short: "List the rounding policies",
	RunE:  runPolicies,
}

func init() {
	defaultsCmd.AddCommand(defaultsBusinessCmd)
	defaultsCmd.AddCommand(defaultsCountryCmd)
	rootCmd.AddCommand(defaultsCmd)
	rootCmd.AddCommand(policiesCmd)
}

func runDefaultsBusiness(cmd *cobra.Command, args []string) error {
	selected := profile.BusinessTypes
	if len(args) == 1 {
		bt, err := profile.ParseBusinessType(args[0])
		if err != nil {
			return err
		}
		selected = []profile.BusinessType{bt}
	}

	all := make([]profile.BusinessDefaults, 0, len(selected))
	for _, bt := range selected {
		d, err := profile.ResolveBusinessDefaults(bt)
		if err != nil {
			return err
		}
		all = append(all, d)
	}
	if wantJSON() {
		return writeJSON(cmd, all)
	}

	out := ui.NewWriter(cmd.OutOrStdout(), noColor)
	out.Header("Business Defaults")
	table := out.NewTable("Business type", "Op. cost", "Targets", "Ratios", "Good / normal max", "Edit intervals")
	for _, d := range all {
		targets := make([]string, 0, len(d.FoodCostTargetPercents))
		for _, t := range d.FoodCostTargetPercents {
			targets = append(targets, t.String())
		}
		ratios := make([]string, 0, len(d.Ratios))
		for _, r := range d.Ratios {
			ratios = append(ratios, r.StringFixed(2))
		}
		edit := "no"
		if profile.CanEditIntervals(d.BusinessType) {
			edit = "yes"
		}
		table.AddRow(
			string(d.BusinessType),
			output.FormatPercent(d.OperationalCostPercent),
			strings.Join(targets, " / "),
			strings.Join(ratios, " / "),
			d.Intervals.GoodMax.String()+" / "+d.Intervals.NormalMax.String(),
			edit,
		)
	}
	table.Render()
	return nil
}

func runDefaultsCountry(cmd *cobra.Command, args []string) error {
	countries := profile.Countries
	if len(args) == 1 {
		c, ok := profile.LookupCountry(args[0])
		if !ok {
			ui.NewWriter(cmd.ErrOrStderr(), noColor).Warning("unknown country %q, showing %s defaults", args[0], profile.Countries[0])
			c = profile.Countries[0]
		}
		countries = []profile.Country{c}
	}

	all := make([]profile.RegionalDefaults, 0, len(countries))
	for _, c := range countries {
		all = append(all, profile.ResolveRegionalDefaults(c))
	}
	if wantJSON() {
		return writeJSON(cmd, all)
	}

	out := ui.NewWriter(cmd.OutOrStdout(), noColor)
	out.Header("Country Defaults")
	table := out.NewTable("Country", "Rounding policy", "Currency", "Example")
	for _, d := range all {
		table.AddRow(string(d.Country), string(d.RoundingPolicy), d.Currency.Symbol,
			output.FormatMoney(example, d.Currency, 2))
	}
	table.Render()
	return nil
}

func runPolicies(cmd *cobra.Command, args []string) error {
	catalog := rounding.Catalog()
	if wantJSON() {
		return writeJSON(cmd, catalog)
	}

	out := ui.NewWriter(cmd.OutOrStdout(), noColor)
	out.Header("Rounding Policies")
	table := out.NewTable("Key", "Title", "Examples")
	for _, d := range catalog {
		table.AddRow(string(d.Key), d.Title, d.Examples)
	}
	table.Render()
	return nil
}
