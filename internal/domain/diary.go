package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Meal is the diary slot an entry was logged under.
type Meal string

const (
	MealBreakfast Meal = "breakfast"
	MealLunch     Meal = "lunch"
	MealDinner    Meal = "dinner"
	MealSnack     Meal = "snack"
)

// Normalize returns the canonical form of m; unknown meals become snacks.
func (m Meal) Normalize() Meal {
	switch n := Meal(normalize(string(m))); n {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return n
	default:
		return MealSnack
	}
}

// LogEntry is one consumption record in a user's diary. Nutrients are
// scaled to QuantityG when the entry is created and never recomputed.
type LogEntry struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	ProductID *int64          `json:"productId,omitempty"`
	DishID    *int64          `json:"dishId,omitempty"`
	Name      string          `json:"name"`
	Meal      Meal            `json:"meal"`
	QuantityG decimal.Decimal `json:"quantityG"`
	Nutrients
	LoggedAt time.Time `json:"loggedAt"`
}

// DiaryRepository is the port for diary persistence.
type DiaryRepository interface {
	AddLogEntry(ctx context.Context, e LogEntry) (int64, error)
	DeleteLogEntry(ctx context.Context, userID, id int64) (bool, error)
	ListLogEntries(ctx context.Context, userID int64, from, to time.Time) ([]LogEntry, error)
}
