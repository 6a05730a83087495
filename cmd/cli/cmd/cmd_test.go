package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"recipe-pricing/core/output"
	"recipe-pricing/internal/errors"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		raw     string
		cost    string
		weight  string
		wantErr bool
	}{
		{"2:1.5", "3", "2", false},
		{"0,5:4", "2", "0.5", false},
		{"1:2:0.25", "2", "0.25", false},
		{"1", "", "", true},
		{"1:2:3:4", "", "", true},
		{"x:2", "", "", true},
		{"-1:2", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			line, err := parseLine(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got := line.EffectiveLineCost(); !got.Equal(decimal.RequireFromString(tt.cost)) {
				t.Errorf("Expected cost %s, got %s", tt.cost, got)
			}
			if !line.Weight.Equal(decimal.RequireFromString(tt.weight)) {
				t.Errorf("Expected weight %s, got %s", tt.weight, line.Weight)
			}
		})
	}
}

func TestLinesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.json")
	data := `[{"code": "A", "quantity": "1", "line_cost": "5"}, {"code": "B", "quantity": 2, "unit_cost": 1.5}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	l := lineFlags{linesFile: path, lines: []string{"1:1"}}
	lines, err := l.load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (&lineFlags{linesFile: bad}).load(); !errors.IsType(err, errors.TypeParse) {
		t.Errorf("Expected PARSE_ERROR, got %v", err)
	}
}

func TestQuoteCommandJSON(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{
		"quote", "--format", "json",
		"--line", "1:5", "--line", "1:3",
		"--business", "traditional",
		"--model", "ratio", "--ratio", "3.5",
		"--tax", "23", "--policy", "classic",
		"--recorded", "8.00",
	})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})

	if err := Execute(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var report output.Report
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("Invalid JSON output: %v\n%s", err, buf.String())
	}
	if !report.Quote.RoundedPrice.Equal(decimal.RequireFromString("39.5")) {
		t.Errorf("Expected 39.5, got %s", report.Quote.RoundedPrice)
	}
	if report.Consistency == nil || !report.Consistency.IsConsistent {
		t.Errorf("Expected a consistent cost, got %+v", report.Consistency)
	}
	if report.Metadata.BusinessType != "Restauração tradicional" {
		t.Errorf("Unexpected business type %q", report.Metadata.BusinessType)
	}
}

func TestTaxRateIsRequired(t *testing.T) {
	cmd := &cobra.Command{Use: "quote"}
	var raw string
	cmd.Flags().StringVar(&raw, "tax", "", "")

	if _, err := taxRate(cmd, raw); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("Expected INPUT_ERROR without --tax, got %v", err)
	}

	if err := cmd.Flags().Set("tax", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := taxRate(cmd, raw); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("Expected INPUT_ERROR for an empty --tax, got %v", err)
	}

	if err := cmd.Flags().Set("tax", "0"); err != nil {
		t.Fatal(err)
	}
	got, err := taxRate(cmd, raw)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("Expected an explicit 0, got %s", got)
	}

	if err := cmd.Flags().Set("tax", "13,5"); err != nil {
		t.Fatal(err)
	}
	if got, _ := taxRate(cmd, raw); !got.Equal(decimal.RequireFromString("13.5")) {
		t.Errorf("Expected 13.5, got %s", got)
	}
}
