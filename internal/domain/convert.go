package domain

import "github.com/shopspring/decimal"

var kgToLb = decimal.RequireFromString("2.2046226218")

// Weight units accepted for body-weight input.
const (
	UnitKg = "kg"
	UnitLb = "lb"
)

// ConvertWeight converts a weight value between "kg" and "lb".
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertWeight(v decimal.Decimal, from, to string) decimal.Decimal {
	if from == to {
		return v
	}
	if from == UnitKg && to == UnitLb {
		return v.Mul(kgToLb)
	}
	if from == UnitLb && to == UnitKg {
		return v.Div(kgToLb)
	}
	return v
}
