package postgres

import (
	"context"
	"time"

	"dietlog/internal/domain"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
)

// AddWaterEvent inserts a new water event.
func (d *DB) AddWaterEvent(ctx context.Context, userID int64, deltaLiters decimal.Decimal, createdAt time.Time) (int64, error) {
	var id int64
	_, err := d.scanOne(ctx, d.sb.Insert("water_events").
		Columns("user_id", "delta_liters", "created_at").
		Values(userID, deltaLiters, createdAt.UTC()).
		Suffix("RETURNING id"), &id)
	return id, err
}

// DeleteWaterEvent removes one of userID's water events.
func (d *DB) DeleteWaterEvent(ctx context.Context, userID, id int64) (bool, error) {
	n, err := d.exec(ctx, d.sb.Delete("water_events").
		Where(sq.Eq{"id": id, "user_id": userID}))
	return n > 0, err
}

// ListRecentWaterEvents returns the most recent water events of userID up to
// limit.
func (d *DB) ListRecentWaterEvents(ctx context.Context, userID int64, limit int) ([]domain.WaterEvent, error) {
	rows, err := d.query(ctx, d.sb.Select("id", "user_id", "delta_liters", "created_at").
		From("water_events").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").Limit(uint64(limit)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.WaterEvent{}
	for rows.Next() {
		var e domain.WaterEvent
		if err := rows.Scan(&e.ID, &e.UserID, &e.DeltaLiters, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// WaterTotalForLocalDay sums userID's water events within a local day.
func (d *DB) WaterTotalForLocalDay(ctx context.Context, userID int64, localDay string) (decimal.Decimal, error) {
	dayStart, dayEnd, err := domain.DayBounds(localDay)
	if err != nil {
		return decimal.Zero, err
	}

	var total decimal.Decimal
	_, err = d.scanOne(ctx, d.sb.Select("COALESCE(SUM(delta_liters), 0)").
		From("water_events").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.GtOrEq{"created_at": dayStart.UTC()}).
		Where(sq.Lt{"created_at": dayEnd.UTC()}),
		&total)
	return total, err
}
