package postgres

import (
	"context"
	"database/sql"
	"time"

	"dietlog/internal/domain"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
)

var dishColumns = []string{"id", "owner_id", "name", "calories", "protein", "fat", "carbs", "total_grams", "created_at", "updated_at"}

func dishDest(dish *domain.Dish) []any {
	return []any{&dish.ID, &dish.OwnerID, &dish.Name,
		&dish.Totals.Calories, &dish.Totals.Protein, &dish.Totals.Fat, &dish.Totals.Carbs,
		&dish.TotalGrams, &dish.CreatedAt, &dish.UpdatedAt}
}

// CreateDish adds an empty dish.
func (d *DB) CreateDish(ctx context.Context, ownerID int64, name string) (int64, error) {
	now := time.Now().UTC()
	var id int64
	_, err := d.scanOne(ctx, d.sb.Insert("dishes").
		Columns("owner_id", "name", "created_at", "updated_at").
		Values(ownerID, name, now, now).
		Suffix("RETURNING id"), &id)
	return id, err
}

// GetDish returns a dish with its ingredients.
func (d *DB) GetDish(ctx context.Context, id int64) (*domain.Dish, error) {
	var dish domain.Dish
	ok, err := d.scanOne(ctx, d.sb.Select(dishColumns...).From("dishes").Where(sq.Eq{"id": id}), dishDest(&dish)...)
	if err != nil || !ok {
		return nil, err
	}

	rows, err := d.query(ctx, d.sb.Select("id", "dish_id", "product_id", "name", "grams",
		"per100_calories", "per100_protein", "per100_fat", "per100_carbs",
		"calories", "protein", "fat", "carbs").
		From("dish_ingredients").Where(sq.Eq{"dish_id": id}).OrderBy("id"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dish.Ingredients = make([]domain.DishIngredient, 0)
	for rows.Next() {
		var (
			ing       domain.DishIngredient
			productID sql.NullInt64
		)
		if err := rows.Scan(&ing.ID, &ing.DishID, &productID, &ing.Name, &ing.Grams,
			&ing.Per100.Calories, &ing.Per100.Protein, &ing.Per100.Fat, &ing.Per100.Carbs,
			&ing.Nutrients.Calories, &ing.Nutrients.Protein, &ing.Nutrients.Fat, &ing.Nutrients.Carbs); err != nil {
			return nil, err
		}
		ing.ProductID = nullableID(productID)
		dish.Ingredients = append(dish.Ingredients, ing)
	}
	return &dish, rows.Err()
}

// ListDishes returns ownerID's dishes ordered by name, without ingredients.
func (d *DB) ListDishes(ctx context.Context, ownerID int64) ([]domain.Dish, error) {
	rows, err := d.query(ctx, d.sb.Select(dishColumns...).From("dishes").
		Where(sq.Eq{"owner_id": ownerID}).OrderBy("name", "id"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Dish, 0)
	for rows.Next() {
		var dish domain.Dish
		if err := rows.Scan(dishDest(&dish)...); err != nil {
			return nil, err
		}
		out = append(out, dish)
	}
	return out, rows.Err()
}

// DeleteDish removes one of ownerID's dishes.
func (d *DB) DeleteDish(ctx context.Context, ownerID, id int64) (bool, error) {
	n, err := d.exec(ctx, d.sb.Delete("dishes").Where(sq.Eq{"id": id, "owner_id": ownerID}))
	return n > 0, err
}

// AddDishIngredient appends an ingredient to a dish.
func (d *DB) AddDishIngredient(ctx context.Context, ing domain.DishIngredient) (int64, error) {
	var id int64
	_, err := d.scanOne(ctx, d.sb.Insert("dish_ingredients").
		Columns("dish_id", "product_id", "name", "grams",
			"per100_calories", "per100_protein", "per100_fat", "per100_carbs",
			"calories", "protein", "fat", "carbs").
		Values(ing.DishID, ing.ProductID, ing.Name, ing.Grams,
			ing.Per100.Calories, ing.Per100.Protein, ing.Per100.Fat, ing.Per100.Carbs,
			ing.Nutrients.Calories, ing.Nutrients.Protein, ing.Nutrients.Fat, ing.Nutrients.Carbs).
		Suffix("RETURNING id"), &id)
	return id, err
}

// DeleteDishIngredient removes an ingredient from a dish.
func (d *DB) DeleteDishIngredient(ctx context.Context, dishID, ingredientID int64) (bool, error) {
	n, err := d.exec(ctx, d.sb.Delete("dish_ingredients").Where(sq.Eq{"id": ingredientID, "dish_id": dishID}))
	return n > 0, err
}

// UpdateDishTotals stores recomputed dish totals.
func (d *DB) UpdateDishTotals(ctx context.Context, dishID int64, totals domain.Nutrients, grams decimal.Decimal) error {
	n, err := d.exec(ctx, d.sb.Update("dishes").
		Set("calories", totals.Calories).
		Set("protein", totals.Protein).
		Set("fat", totals.Fat).
		Set("carbs", totals.Carbs).
		Set("total_grams", grams).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": dishID}))
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
