package postgres

import (
	"context"
	"database/sql"
	"time"

	"dietlog/internal/domain"

	sq "github.com/Masterminds/squirrel"
)

// CreatePlan stores a plan without items.
func (d *DB) CreatePlan(ctx context.Context, p domain.MealPlan) (int64, error) {
	var id int64
	_, err := d.scanOne(ctx, d.sb.Insert("meal_plans").
		Columns("dietitian_id", "client_id", "name", "day", "created_at").
		Values(p.DietitianID, p.ClientID, p.Name, p.Day, p.CreatedAt.UTC()).
		Suffix("RETURNING id"), &id)
	return id, err
}

// GetPlan returns a plan with its items.
func (d *DB) GetPlan(ctx context.Context, id int64) (*domain.MealPlan, error) {
	plans, err := d.loadPlans(ctx, sq.Eq{"id": id})
	if err != nil || len(plans) == 0 {
		return nil, err
	}
	return &plans[0], nil
}

// ListPlansForClient returns clientID's plans with items, newest day first.
func (d *DB) ListPlansForClient(ctx context.Context, clientID int64) ([]domain.MealPlan, error) {
	return d.loadPlans(ctx, sq.Eq{"client_id": clientID})
}

func (d *DB) loadPlans(ctx context.Context, where sq.Eq) ([]domain.MealPlan, error) {
	rows, err := d.query(ctx, d.sb.Select("id", "dietitian_id", "client_id", "name", "day", "created_at").
		From("meal_plans").Where(where).OrderBy("day DESC", "id DESC"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]domain.MealPlan, 0)
	index := make(map[int64]int)
	for rows.Next() {
		var (
			p   domain.MealPlan
			day time.Time
		)
		if err := rows.Scan(&p.ID, &p.DietitianID, &p.ClientID, &p.Name, &day, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Day = day.Format(domain.DayLayout)
		p.Items = make([]domain.PlanItem, 0)
		index[p.ID] = len(plans)
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return plans, nil
	}

	ids := make([]int64, 0, len(plans))
	for id := range index {
		ids = append(ids, id)
	}
	itemRows, err := d.query(ctx, d.sb.Select("id", "plan_id", "product_id", "name", "meal", "grams",
		"calories", "protein", "fat", "carbs").
		From("plan_items").Where(sq.Eq{"plan_id": ids}).OrderBy("id"))
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			it        domain.PlanItem
			productID sql.NullInt64
		)
		if err := itemRows.Scan(&it.ID, &it.PlanID, &productID, &it.Name, &it.Meal, &it.Grams,
			&it.Nutrients.Calories, &it.Nutrients.Protein, &it.Nutrients.Fat, &it.Nutrients.Carbs); err != nil {
			return nil, err
		}
		it.ProductID = nullableID(productID)
		p := &plans[index[it.PlanID]]
		p.Items = append(p.Items, it)
	}
	return plans, itemRows.Err()
}

// AddPlanItem appends an item to a plan.
func (d *DB) AddPlanItem(ctx context.Context, item domain.PlanItem) (int64, error) {
	var id int64
	_, err := d.scanOne(ctx, d.sb.Insert("plan_items").
		Columns("plan_id", "product_id", "name", "meal", "grams", "calories", "protein", "fat", "carbs").
		Values(item.PlanID, item.ProductID, item.Name, string(item.Meal), item.Grams,
			item.Nutrients.Calories, item.Nutrients.Protein, item.Nutrients.Fat, item.Nutrients.Carbs).
		Suffix("RETURNING id"), &id)
	return id, err
}

// DeletePlanItem removes an item from a plan.
func (d *DB) DeletePlanItem(ctx context.Context, planID, itemID int64) (bool, error) {
	n, err := d.exec(ctx, d.sb.Delete("plan_items").Where(sq.Eq{"id": itemID, "plan_id": planID}))
	return n > 0, err
}
