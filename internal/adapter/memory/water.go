package memory

import (
	"context"
	"sort"
	"time"

	"dietlog/internal/domain"

	"github.com/shopspring/decimal"
)

// --- WaterRepository ---

// AddWaterEvent adds a water event.
func (db *DB) AddWaterEvent(ctx context.Context, userID int64, deltaLiters decimal.Decimal, createdAt time.Time) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.waterIDCounter++
	db.waterEvents = append(db.waterEvents, domain.WaterEvent{
		ID:          db.waterIDCounter,
		UserID:      userID,
		DeltaLiters: deltaLiters,
		CreatedAt:   createdAt.UTC(),
	})
	return db.waterIDCounter, nil
}

// DeleteWaterEvent deletes one of userID's water events.
func (db *DB) DeleteWaterEvent(ctx context.Context, userID, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, e := range db.waterEvents {
		if e.ID == id && e.UserID == userID {
			db.waterEvents = append(db.waterEvents[:i], db.waterEvents[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ListRecentWaterEvents lists userID's most recent water events.
func (db *DB) ListRecentWaterEvents(ctx context.Context, userID int64, limit int) ([]domain.WaterEvent, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.WaterEvent, 0)
	for _, e := range db.waterEvents {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// WaterTotalForLocalDay returns userID's water total for the given day.
func (db *DB) WaterTotalForLocalDay(ctx context.Context, userID int64, localDay string) (decimal.Decimal, error) {
	dayStart, dayEnd, err := domain.DayBounds(localDay)
	if err != nil {
		return decimal.Zero, err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	total := decimal.Zero
	for _, e := range db.waterEvents {
		if e.UserID == userID && !e.CreatedAt.Before(dayStart) && e.CreatedAt.Before(dayEnd) {
			total = total.Add(e.DeltaLiters)
		}
	}
	return total, nil
}
