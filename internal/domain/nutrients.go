package domain

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Nutrients is an amount of energy (kcal) and macro-nutrients (g).
// Depending on context it is either per 100 g of a product or an absolute
// amount already scaled to a quantity.
type Nutrients struct {
	Calories decimal.Decimal `json:"calories"`
	Protein  decimal.Decimal `json:"protein"`
	Fat      decimal.Decimal `json:"fat"`
	Carbs    decimal.Decimal `json:"carbs"`
}

// Add returns the per-field sum of n and o.
func (n Nutrients) Add(o Nutrients) Nutrients {
	return Nutrients{
		Calories: n.Calories.Add(o.Calories),
		Protein:  n.Protein.Add(o.Protein),
		Fat:      n.Fat.Add(o.Fat),
		Carbs:    n.Carbs.Add(o.Carbs),
	}
}

// Scale treats n as per-100 g values and scales every field to grams.
func (n Nutrients) Scale(grams decimal.Decimal) Nutrients {
	return Nutrients{
		Calories: Scaled(n.Calories, grams),
		Protein:  Scaled(n.Protein, grams),
		Fat:      Scaled(n.Fat, grams),
		Carbs:    Scaled(n.Carbs, grams),
	}
}

// Round rounds every field to places decimal places, half to even.
func (n Nutrients) Round(places int32) Nutrients {
	return Nutrients{
		Calories: n.Calories.RoundBank(places),
		Protein:  n.Protein.RoundBank(places),
		Fat:      n.Fat.RoundBank(places),
		Carbs:    n.Carbs.RoundBank(places),
	}
}

// IsNegative reports whether any field is below zero.
func (n Nutrients) IsNegative() bool {
	return n.Calories.IsNegative() || n.Protein.IsNegative() || n.Fat.IsNegative() || n.Carbs.IsNegative()
}

// Scaled converts a per-100 g amount to the amount contained in grams,
// rounded to two decimal places.
func Scaled(per100, grams decimal.Decimal) decimal.Decimal {
	return per100.Mul(grams).Div(hundred).RoundBank(2)
}

// Portion is a quantity of something described by its per-100 g values.
type Portion struct {
	Per100 Nutrients
	Grams  decimal.Decimal
}

// SumPortions returns the total nutrients of all portions, each scaled
// individually before summing.
func SumPortions(portions []Portion) Nutrients {
	var total Nutrients
	for _, p := range portions {
		total = total.Add(p.Per100.Scale(p.Grams))
	}
	return total
}

// Share scales totals measured over totalGrams down to grams, rounding each
// field once. Returns zero nutrients when totalGrams is not positive.
func Share(totals Nutrients, totalGrams, grams decimal.Decimal) Nutrients {
	if !totalGrams.IsPositive() {
		return Nutrients{}
	}
	part := func(v decimal.Decimal) decimal.Decimal {
		return v.Mul(grams).Div(totalGrams).RoundBank(2)
	}
	return Nutrients{
		Calories: part(totals.Calories),
		Protein:  part(totals.Protein),
		Fat:      part(totals.Fat),
		Carbs:    part(totals.Carbs),
	}
}

// Per100 converts absolute totals for grams back to per-100 g values.
// Returns zero nutrients when grams is not positive.
func Per100(totals Nutrients, grams decimal.Decimal) Nutrients {
	if !grams.IsPositive() {
		return Nutrients{}
	}
	per := func(v decimal.Decimal) decimal.Decimal {
		return v.Mul(hundred).Div(grams).RoundBank(2)
	}
	return Nutrients{
		Calories: per(totals.Calories),
		Protein:  per(totals.Protein),
		Fat:      per(totals.Fat),
		Carbs:    per(totals.Carbs),
	}
}
