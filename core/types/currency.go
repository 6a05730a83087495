package types

// SymbolPosition places the currency symbol relative to the amount
type SymbolPosition string

const (
	SymbolBefore SymbolPosition = "before"
	SymbolAfter  SymbolPosition = "after"
)

// CurrencyPresentation describes how a country displays money
type CurrencyPresentation struct {
	Symbol            string         `json:"symbol"`
	SymbolPosition    SymbolPosition `json:"symbol_position"`
	DecimalSeparator  string         `json:"decimal_separator"`
	ThousandSeparator string         `json:"thousand_separator"`
	SymbolSpacing     bool           `json:"symbol_spacing"`
}
