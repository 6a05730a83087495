package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"recipe-pricing/core/output"
	"recipe-pricing/core/profile"
	"recipe-pricing/core/types"
	"recipe-pricing/internal/config"
	"recipe-pricing/internal/errors"
	"recipe-pricing/internal/logging"
	"recipe-pricing/internal/settings"
)

// profileFlags are the tenant profile overrides shared by pricing commands
type profileFlags struct {
	settingsFile string
	business     string
	country      string
	model        string
	ratio        float64
	opCost       string
	targets      string
	intervals    string
	policy       string
	step         float64
}

func (p *profileFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&p.settingsFile, "settings", "", "HCL tenant settings file")
	f.StringVarP(&p.business, "business", "b", "", "business type (e.g. \"Hotéis\", \"Cadeias\")")
	f.StringVarP(&p.country, "country", "c", "", "country (Portugal, Angola, Cabo Verde)")
	f.StringVarP(&p.model, "model", "m", "", "pricing model (ratio, food_cost)")
	f.Float64Var(&p.ratio, "ratio", 0, "ratio applied to the surcharged cost")
	f.StringVar(&p.opCost, "op-cost", "", "operational cost percent (e.g. 15 or 12,5)")
	f.StringVar(&p.targets, "targets", "", "food cost targets as a JSON array (e.g. [25,28,30])")
	f.StringVar(&p.intervals, "intervals", "", `food cost intervals as JSON (e.g. {"bomMax":25,"normalMax":30})`)
	f.StringVarP(&p.policy, "policy", "p", "", "rounding policy (see 'policies')")
	f.Float64Var(&p.step, "step", 0, "rounding step for nearestMultiple and minimumMargin")
}

// resolve layers, lowest first: built-in defaults, the config tenant, the
// settings file, then flags
func (p *profileFlags) resolve(cmd *cobra.Command) (*settings.Resolved, error) {
	cfg := config.Get()

	file := &settings.File{}
	path := p.settingsFile
	if path == "" {
		path = cfg.Tenant.SettingsFile
	}
	if path != "" {
		loaded, err := settings.Load(path)
		if err != nil {
			return nil, err
		}
		file = loaded
		logging.Debug("loaded settings", zap.String("path", path))
	}

	if file.BusinessType == "" {
		file.BusinessType = cfg.Tenant.BusinessType
	}
	if file.Country == "" {
		file.Country = cfg.Tenant.Country
	}
	if p.business != "" {
		file.BusinessType = p.business
	}
	if p.country != "" {
		file.Country = p.country
	}

	flags := cmd.Flags()
	pricing := settings.PricingBlock{}
	if file.Pricing != nil {
		pricing = *file.Pricing
	}
	if p.model != "" {
		pricing.Model = &p.model
	}
	if flags.Changed("ratio") {
		pricing.Ratio = &p.ratio
		if pricing.Model == nil {
			model := string(types.ModelRatio)
			pricing.Model = &model
		}
	}
	if p.opCost != "" {
		pct, err := profile.ParsePercent(p.opCost)
		if err != nil {
			return nil, err
		}
		v := pct.InexactFloat64()
		pricing.OperationalCostPercent = &v
	}
	if p.targets != "" {
		list, err := profile.ParseTargetList(p.targets)
		if err != nil {
			return nil, err
		}
		pricing.FoodCostTargets = nil
		for _, t := range list {
			pricing.FoodCostTargets = append(pricing.FoodCostTargets, t.InexactFloat64())
		}
	}
	file.Pricing = &pricing

	if p.policy != "" || flags.Changed("step") {
		rounding := settings.RoundingBlock{}
		if file.Rounding != nil {
			rounding = *file.Rounding
		}
		if p.policy != "" {
			rounding.Policy = p.policy
		}
		if flags.Changed("step") {
			rounding.Step = &p.step
		}
		file.Rounding = &rounding
	}

	if p.intervals != "" {
		iv, err := profile.ParseIntervals(p.intervals)
		if err != nil {
			return nil, err
		}
		file.Intervals = &settings.IntervalsBlock{
			GoodMax:   iv.GoodMax.InexactFloat64(),
			NormalMax: iv.NormalMax.InexactFloat64(),
		}
	}

	return settings.Resolve(file)
}

// lineFlags collect the recipe composition
type lineFlags struct {
	lines     []string
	linesFile string
}

func (l *lineFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&l.lines, "line", "l", nil, "ingredient line as qty:unitCost[:weight], repeatable")
	cmd.Flags().StringVar(&l.linesFile, "lines-file", "", "JSON file with an array of ingredient lines")
}

func (l *lineFlags) load() ([]types.IngredientLine, error) {
	var lines []types.IngredientLine
	if l.linesFile != "" {
		data, err := os.ReadFile(l.linesFile)
		if err != nil {
			return nil, errors.Wrapf(errors.TypeInput, err, "failed to read %s", l.linesFile)
		}
		if err := json.Unmarshal(data, &lines); err != nil {
			return nil, errors.Parsing(fmt.Sprintf("invalid lines file %s", l.linesFile), err)
		}
	}
	for i, raw := range l.lines {
		line, err := parseLine(raw)
		if err != nil {
			return nil, errors.Wrapf(errors.TypeInput, err, "--line %d", i+1)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// parseLine reads qty:unitCost[:weight]
func parseLine(raw string) (types.IngredientLine, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return types.IngredientLine{}, errors.Input(fmt.Sprintf("expected qty:unitCost[:weight], got %q", raw))
	}
	qty, err := parseDecimal(parts[0])
	if err != nil {
		return types.IngredientLine{}, err
	}
	unitCost, err := parseDecimal(parts[1])
	if err != nil {
		return types.IngredientLine{}, err
	}
	line := types.NewLine("", qty, unitCost)
	if len(parts) == 3 {
		if line.Weight, err = parseDecimal(parts[2]); err != nil {
			return types.IngredientLine{}, err
		}
	}
	return line, line.Validate()
}

// parseDecimal accepts either '.' or ',' as the decimal separator
func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.Replace(strings.TrimSpace(s), ",", ".", 1))
	if err != nil {
		return decimal.Zero, errors.Parsing(fmt.Sprintf("not a number: %q", s), err)
	}
	return d, nil
}

// render prints report in the configured format
func render(cmd *cobra.Command, report *output.Report) error {
	cfg := config.Get()
	format := outputFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	formatter, err := output.NewFormatter(output.Format(format), noColor || cfg.Output.NoColor)
	if err != nil {
		return err
	}
	return formatter.Render(cmd.OutOrStdout(), report)
}

func newReport(resolved *settings.Resolved) *output.Report {
	return &output.Report{
		Currency: resolved.Regional.Currency,
		Metadata: output.Metadata{
			Timestamp:    time.Now().Format(time.RFC3339),
			Version:      Version,
			BusinessType: string(resolved.BusinessType),
			Country:      string(resolved.Country),
		},
	}
}

func wantJSON() bool {
	format := outputFormat
	if format == "" {
		format = config.Get().Output.DefaultFormat
	}
	return output.Format(format) == output.FormatJSON
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
