package postgres

import (
	"context"
	"database/sql"
	"time"

	"dietlog/internal/domain"

	sq "github.com/Masterminds/squirrel"
)

// AddLogEntry stores a diary entry.
func (d *DB) AddLogEntry(ctx context.Context, e domain.LogEntry) (int64, error) {
	var id int64
	_, err := d.scanOne(ctx, d.sb.Insert("log_entries").
		Columns("user_id", "product_id", "dish_id", "name", "meal", "quantity_g",
			"calories", "protein", "fat", "carbs", "logged_at").
		Values(e.UserID, e.ProductID, e.DishID, e.Name, string(e.Meal), e.QuantityG,
			e.Calories, e.Protein, e.Fat, e.Carbs, e.LoggedAt.UTC()).
		Suffix("RETURNING id"), &id)
	return id, err
}

// DeleteLogEntry removes one of userID's entries.
func (d *DB) DeleteLogEntry(ctx context.Context, userID, id int64) (bool, error) {
	n, err := d.exec(ctx, d.sb.Delete("log_entries").Where(sq.Eq{"id": id, "user_id": userID}))
	return n > 0, err
}

// ListLogEntries returns userID's entries logged in [from, to) in log order.
func (d *DB) ListLogEntries(ctx context.Context, userID int64, from, to time.Time) ([]domain.LogEntry, error) {
	rows, err := d.query(ctx, d.sb.Select("id", "user_id", "product_id", "dish_id", "name", "meal", "quantity_g",
		"calories", "protein", "fat", "carbs", "logged_at").
		From("log_entries").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.GtOrEq{"logged_at": from.UTC()}).
		Where(sq.Lt{"logged_at": to.UTC()}).
		OrderBy("logged_at", "id"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.LogEntry, 0)
	for rows.Next() {
		var (
			e                 domain.LogEntry
			productID, dishID sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &e.UserID, &productID, &dishID, &e.Name, &e.Meal, &e.QuantityG,
			&e.Calories, &e.Protein, &e.Fat, &e.Carbs, &e.LoggedAt); err != nil {
			return nil, err
		}
		e.ProductID = nullableID(productID)
		e.DishID = nullableID(dishID)
		out = append(out, e)
	}
	return out, rows.Err()
}
