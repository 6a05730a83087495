// Package types - Recipe pricing value types
// Every type here is a value constructed per calculation; nothing is shared.
package types

import (
	"github.com/shopspring/decimal"

	"recipe-pricing/internal/errors"
)

// AllergenRef identifies an allergen attached to an ingredient.
// It is informational and never used by pricing.
type AllergenRef struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
}

// IngredientLine is one component of a recipe's composition
type IngredientLine struct {
	// Code is the component product code
	Code string `json:"code,omitempty"`

	// Name is the component name
	Name string `json:"name,omitempty"`

	// Quantity is the amount used in the recipe
	Quantity decimal.Decimal `json:"quantity"`

	// Unit is the measure of Quantity (g, kg, l, un)
	Unit string `json:"unit,omitempty"`

	// UnitCost is the price per unit; derived from LineCost when absent
	UnitCost decimal.NullDecimal `json:"unit_cost"`

	// LineCost is Quantity * UnitCost; may be supplied directly
	LineCost decimal.NullDecimal `json:"line_cost"`

	// Weight is the mass/volume contribution
	Weight decimal.Decimal `json:"weight"`

	// Allergens carried by this component
	Allergens []AllergenRef `json:"allergens,omitempty"`
}

// Validate checks the non-negativity invariants of the line.
func (l IngredientLine) Validate() error {
	if l.Quantity.IsNegative() {
		return errors.InvalidParameter("quantity must be >= 0, got %s", l.Quantity).WithContext("code", l.Code)
	}
	if l.Weight.IsNegative() {
		return errors.InvalidParameter("weight must be >= 0, got %s", l.Weight).WithContext("code", l.Code)
	}
	if l.UnitCost.Valid && l.UnitCost.Decimal.IsNegative() {
		return errors.InvalidParameter("unit cost must be >= 0, got %s", l.UnitCost.Decimal).WithContext("code", l.Code)
	}
	if l.LineCost.Valid && l.LineCost.Decimal.IsNegative() {
		return errors.InvalidParameter("line cost must be >= 0, got %s", l.LineCost.Decimal).WithContext("code", l.Code)
	}
	return nil
}

// EffectiveLineCost returns LineCost when supplied, otherwise Quantity * UnitCost.
func (l IngredientLine) EffectiveLineCost() decimal.Decimal {
	if l.LineCost.Valid {
		return l.LineCost.Decimal
	}
	if l.UnitCost.Valid {
		return l.Quantity.Mul(l.UnitCost.Decimal)
	}
	return decimal.Zero
}

// EffectiveUnitCost returns UnitCost when supplied, otherwise LineCost / Quantity.
// A zero quantity with no unit cost yields zero.
func (l IngredientLine) EffectiveUnitCost() decimal.Decimal {
	if l.UnitCost.Valid {
		return l.UnitCost.Decimal
	}
	if l.LineCost.Valid && l.Quantity.IsPositive() {
		return l.LineCost.Decimal.Div(l.Quantity)
	}
	return decimal.Zero
}

// NewLine builds a line from quantity and unit cost.
func NewLine(code string, quantity, unitCost decimal.Decimal) IngredientLine {
	return IngredientLine{
		Code:     code,
		Quantity: quantity,
		UnitCost: decimal.NewNullDecimal(unitCost),
		Weight:   quantity,
	}
}

// NewCostLine builds a line whose cost is already known.
func NewCostLine(code string, lineCost decimal.Decimal) IngredientLine {
	return IngredientLine{
		Code:     code,
		Quantity: decimal.NewFromInt(1),
		LineCost: decimal.NewNullDecimal(lineCost),
	}
}
