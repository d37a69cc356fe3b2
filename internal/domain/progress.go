package domain

import "github.com/shopspring/decimal"

// Progress holds per-nutrient completion percentages, one decimal place.
type Progress struct {
	Calories decimal.Decimal `json:"calories"`
	Protein  decimal.Decimal `json:"protein"`
	Fat      decimal.Decimal `json:"fat"`
	Carbs    decimal.Decimal `json:"carbs"`
}

// ProgressSnapshot compares consumed totals against targets. It is computed
// on demand and never stored.
type ProgressSnapshot struct {
	Totals   Nutrients `json:"totals"`
	Targets  Targets   `json:"targets"`
	Progress Progress  `json:"progress"`
}

// Aggregate sums the nutrients of entries and expresses them as a
// percentage of targets. The result does not depend on entry order.
func Aggregate(entries []LogEntry, targets Targets) ProgressSnapshot {
	var totals Nutrients
	for _, e := range entries {
		totals = totals.Add(e.Nutrients)
	}
	return Summarize(totals, targets)
}

// Summarize builds a snapshot from precomputed totals.
func Summarize(totals Nutrients, targets Targets) ProgressSnapshot {
	return ProgressSnapshot{
		Totals:  totals,
		Targets: targets,
		Progress: Progress{
			Calories: Percent(totals.Calories, targets.Calories),
			Protein:  Percent(totals.Protein, targets.Protein),
			Fat:      Percent(totals.Fat, targets.Fat),
			Carbs:    Percent(totals.Carbs, targets.Carbs),
		},
	}
}

// Percent returns total as a percentage of target rounded to one decimal
// place, or zero when target is not positive.
func Percent(total, target decimal.Decimal) decimal.Decimal {
	if !target.IsPositive() {
		return decimal.Zero
	}
	return total.Mul(hundred).Div(target).RoundBank(1)
}
