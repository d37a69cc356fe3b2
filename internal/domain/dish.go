package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DishIngredient is a product portion inside a dish. Per100 is copied from
// the product when the ingredient is added.
type DishIngredient struct {
	ID        int64           `json:"id"`
	DishID    int64           `json:"dishId"`
	ProductID *int64          `json:"productId,omitempty"`
	Name      string          `json:"name"`
	Grams     decimal.Decimal `json:"grams"`
	Per100    Nutrients       `json:"per100g"`
	Nutrients Nutrients       `json:"nutrients"`
}

// Dish is a reusable template of ingredients whose totals are the sum of
// the individually scaled ingredients.
type Dish struct {
	ID          int64            `json:"id"`
	OwnerID     int64            `json:"ownerId"`
	Name        string           `json:"name"`
	Ingredients []DishIngredient `json:"ingredients"`
	Totals      Nutrients        `json:"totals"`
	TotalGrams  decimal.Decimal  `json:"totalGrams"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// Recompute rescales every ingredient and refreshes the dish totals.
func (d *Dish) Recompute() {
	portions := make([]Portion, 0, len(d.Ingredients))
	grams := decimal.Zero
	for i := range d.Ingredients {
		ing := &d.Ingredients[i]
		ing.Nutrients = ing.Per100.Scale(ing.Grams)
		portions = append(portions, Portion{Per100: ing.Per100, Grams: ing.Grams})
		grams = grams.Add(ing.Grams)
	}
	d.Totals = SumPortions(portions)
	d.TotalGrams = grams
}

// Per100 returns the dish nutrients per 100 g of the finished dish.
func (d Dish) Per100() Nutrients {
	return Per100(d.Totals, d.TotalGrams)
}

// Serving returns the nutrients in grams of the finished dish. A serving of
// TotalGrams equals Totals.
func (d Dish) Serving(grams decimal.Decimal) Nutrients {
	return Share(d.Totals, d.TotalGrams, grams)
}

// DishRepository is the port for dish persistence. GetDish returns the dish
// with its ingredients; ListDishes returns dishes without ingredients.
type DishRepository interface {
	CreateDish(ctx context.Context, ownerID int64, name string) (int64, error)
	GetDish(ctx context.Context, id int64) (*Dish, error)
	ListDishes(ctx context.Context, ownerID int64) ([]Dish, error)
	DeleteDish(ctx context.Context, ownerID, id int64) (bool, error)
	AddDishIngredient(ctx context.Context, ing DishIngredient) (int64, error)
	DeleteDishIngredient(ctx context.Context, dishID, ingredientID int64) (bool, error)
	UpdateDishTotals(ctx context.Context, dishID int64, totals Nutrients, grams decimal.Decimal) error
}
