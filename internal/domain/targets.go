package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Sex selects the constant in the Mifflin-St Jeor equation.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ActivityLevel is the self-reported daily activity tier.
type ActivityLevel string

const (
	ActivityLow    ActivityLevel = "low"
	ActivityMedium ActivityLevel = "medium"
	ActivityHigh   ActivityLevel = "high"
)

// Goal is the user's stated body-composition goal.
type Goal string

const (
	GoalWeightLoss  Goal = "weight_loss"
	GoalMuscleGain  Goal = "muscle_gain"
	GoalMaintenance Goal = "maintenance"
)

var (
	// ErrInvalidWeight is returned for a non-positive body weight.
	ErrInvalidWeight = errors.New("weight must be > 0")
	// ErrInvalidHeight is returned for a non-positive height.
	ErrInvalidHeight = errors.New("height must be > 0")
	// ErrInvalidAge is returned for a negative age.
	ErrInvalidAge = errors.New("age must be >= 0")
)

var (
	activityMultipliers = map[ActivityLevel]decimal.Decimal{
		ActivityLow:    decimal.New(120, -2),
		ActivityMedium: decimal.New(155, -2),
		ActivityHigh:   decimal.New(190, -2),
	}
	goalMultipliers = map[Goal]decimal.Decimal{
		GoalWeightLoss:  decimal.New(80, -2),
		GoalMuscleGain:  decimal.New(120, -2),
		GoalMaintenance: decimal.New(100, -2),
	}

	// Energy split of the daily calories and kcal per gram of each macro.
	proteinShare = decimal.New(30, -2)
	fatShare     = decimal.New(25, -2)
	carbsShare   = decimal.New(45, -2)
	kcalProtein  = decimal.NewFromInt(4)
	kcalFat      = decimal.NewFromInt(9)
	kcalCarbs    = decimal.NewFromInt(4)
)

// Targets are the daily energy and macro-nutrient goals derived from a profile.
type Targets struct {
	Calories decimal.Decimal `json:"calories"`
	Protein  decimal.Decimal `json:"protein"`
	Fat      decimal.Decimal `json:"fat"`
	Carbs    decimal.Decimal `json:"carbs"`
}

// Normalize lower-cases and trims s.
func (s Sex) Normalize() Sex { return Sex(normalize(string(s))) }

// Normalize lower-cases and trims a.
func (a ActivityLevel) Normalize() ActivityLevel { return ActivityLevel(normalize(string(a))) }

// Normalize lower-cases and trims g.
func (g Goal) Normalize() Goal { return Goal(normalize(string(g))) }

// Valid reports whether a is one of the known activity tiers.
func (a ActivityLevel) Valid() bool {
	_, ok := activityMultipliers[a.Normalize()]
	return ok
}

// Valid reports whether g is one of the known goals.
func (g Goal) Valid() bool {
	_, ok := goalMultipliers[g.Normalize()]
	return ok
}

// Valid reports whether s is male or female.
func (s Sex) Valid() bool {
	n := s.Normalize()
	return n == SexMale || n == SexFemale
}

// ActivityMultiplier returns the TDEE multiplier for a. Unknown values fall
// back to the lowest tier.
func ActivityMultiplier(a ActivityLevel) decimal.Decimal {
	if m, ok := activityMultipliers[a.Normalize()]; ok {
		return m
	}
	return activityMultipliers[ActivityLow]
}

// GoalMultiplier returns the calorie adjustment for g. Unknown values are
// treated as maintenance.
func GoalMultiplier(g Goal) decimal.Decimal {
	if m, ok := goalMultipliers[g.Normalize()]; ok {
		return m
	}
	return goalMultipliers[GoalMaintenance]
}

// BMR estimates the basal metabolic rate in kcal/day with the Mifflin-St Jeor
// equation. Any sex other than male uses the female constant.
func BMR(p Profile) decimal.Decimal {
	bmr := decimal.NewFromInt(10).Mul(p.WeightKg).
		Add(decimal.New(625, -2).Mul(p.HeightCm)).
		Sub(decimal.NewFromInt(5).Mul(decimal.NewFromInt(int64(p.Age))))
	if p.Sex.Normalize() == SexMale {
		return bmr.Add(decimal.NewFromInt(5))
	}
	return bmr.Sub(decimal.NewFromInt(161))
}

// ComputeTargets derives daily calorie and macro targets from p.
// It fails only on a non-positive weight or height or a negative age;
// unrecognised categories fall back to their defaults.
func ComputeTargets(p Profile) (Targets, error) {
	if !p.WeightKg.IsPositive() {
		return Targets{}, ErrInvalidWeight
	}
	if !p.HeightCm.IsPositive() {
		return Targets{}, ErrInvalidHeight
	}
	if p.Age < 0 {
		return Targets{}, ErrInvalidAge
	}

	return MacroSplit(DailyCalories(BMR(p), p.Activity, p.Goal)), nil
}

// DailyCalories scales bmr by the activity and goal multipliers and rounds to
// two decimal places. Negative results clamp to zero.
func DailyCalories(bmr decimal.Decimal, a ActivityLevel, g Goal) decimal.Decimal {
	calories := bmr.Mul(ActivityMultiplier(a)).Mul(GoalMultiplier(g)).RoundBank(2)
	if calories.IsNegative() {
		return decimal.Zero
	}
	return calories
}

// MacroSplit divides calories 30/25/45 between protein, fat and carbs and
// converts each share to grams.
func MacroSplit(calories decimal.Decimal) Targets {
	return Targets{
		Calories: calories,
		Protein:  calories.Mul(proteinShare).Div(kcalProtein).RoundBank(2),
		Fat:      calories.Mul(fatShare).Div(kcalFat).RoundBank(2),
		Carbs:    calories.Mul(carbsShare).Div(kcalCarbs).RoundBank(2),
	}
}

// Nutrients returns t as a Nutrients value.
func (t Targets) Nutrients() Nutrients {
	return Nutrients{Calories: t.Calories, Protein: t.Protein, Fat: t.Fat, Carbs: t.Carbs}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
