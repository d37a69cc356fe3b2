package postgres

import (
	"context"
	"time"

	"dietlog/internal/domain"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
)

// AddWeightEvent inserts a new weight event.
func (d *DB) AddWeightEvent(ctx context.Context, userID int64, value decimal.Decimal, unit string, createdAt time.Time) (int64, error) {
	var id int64
	_, err := d.scanOne(ctx, d.sb.Insert("weight_events").
		Columns("user_id", "value", "unit", "created_at").
		Values(userID, value, unit, createdAt.UTC()).
		Suffix("RETURNING id"), &id)
	return id, err
}

// DeleteLatestWeightEvent removes the most recent weight event of userID.
func (d *DB) DeleteLatestWeightEvent(ctx context.Context, userID int64) (bool, error) {
	latest := sq.Select("id").From("weight_events").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").Limit(1)
	sub, args, err := latest.ToSql()
	if err != nil {
		return false, err
	}
	n, err := d.exec(ctx, d.sb.Delete("weight_events").Where("id = ("+sub+")", args...))
	return n > 0, err
}

// LatestWeightForLocalDay returns the most recent weight entry of userID for
// a local calendar day.
func (d *DB) LatestWeightForLocalDay(ctx context.Context, userID int64, localDay string) (*domain.WeightEntry, error) {
	dayStart, dayEnd, err := domain.DayBounds(localDay)
	if err != nil {
		return nil, err
	}

	var e domain.WeightEntry
	ok, err := d.scanOne(ctx, d.sb.Select("id", "user_id", "value", "unit", "created_at").
		From("weight_events").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.GtOrEq{"created_at": dayStart.UTC()}).
		Where(sq.Lt{"created_at": dayEnd.UTC()}).
		OrderBy("created_at DESC", "id DESC").Limit(1),
		&e.ID, &e.UserID, &e.Value, &e.Unit, &e.CreatedAt)
	if err != nil || !ok {
		return nil, err
	}
	e.Day = localDay
	return &e, nil
}

// ListRecentWeightEvents returns the most recent weight events of userID up
// to limit.
func (d *DB) ListRecentWeightEvents(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error) {
	rows, err := d.query(ctx, d.sb.Select("id", "user_id", "value", "unit", "created_at").
		From("weight_events").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").Limit(uint64(limit)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.WeightEntry{}
	for rows.Next() {
		var e domain.WeightEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Value, &e.Unit, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Day = domain.LocalDay(e.CreatedAt)
		out = append(out, e)
	}
	return out, rows.Err()
}
