package app

import (
	"context"
	"fmt"
	"time"

	"dietlog/internal/domain"

	"github.com/shopspring/decimal"
)

var maxWaterDelta = decimal.NewFromInt(10)

// WaterService encapsulates hydration-tracking use cases.
type WaterService struct {
	repo domain.WaterRepository
}

// NewWaterService creates a WaterService backed by the given repository.
func NewWaterService(repo domain.WaterRepository) *WaterService {
	return &WaterService{repo: repo}
}

// GetTodayTotal returns the total water intake in liters for the given local day.
func (s *WaterService) GetTodayTotal(ctx context.Context, userID int64, today string) (decimal.Decimal, error) {
	return s.repo.WaterTotalForLocalDay(ctx, userID, today)
}

// RecordEvent validates and stores a water intake event.
func (s *WaterService) RecordEvent(ctx context.Context, userID int64, deltaLiters decimal.Decimal) (int64, error) {
	if deltaLiters.IsZero() || deltaLiters.Abs().GreaterThan(maxWaterDelta) {
		return 0, fmt.Errorf("%w: deltaLiters must be non-zero and within [-10, 10]", domain.ErrValidation)
	}
	return s.repo.AddWaterEvent(ctx, userID, deltaLiters.RoundBank(3), time.Now())
}

// ListRecent returns the most recent water events. limit is clamped to
// [1, 200] and defaults to 30.
func (s *WaterService) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.WaterEvent, error) {
	return s.repo.ListRecentWaterEvents(ctx, userID, clampLimit(limit))
}

const (
	defaultRecentLimit = 30
	maxRecentLimit     = 200
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultRecentLimit
	}
	return min(limit, maxRecentLimit)
}

// UndoLast deletes the most recent water event.
func (s *WaterService) UndoLast(ctx context.Context, userID int64) (bool, int64, error) {
	items, err := s.repo.ListRecentWaterEvents(ctx, userID, 1)
	if err != nil {
		return false, 0, err
	}
	if len(items) == 0 {
		return false, 0, nil
	}
	ok, err := s.repo.DeleteWaterEvent(ctx, userID, items[0].ID)
	if err != nil || !ok {
		return false, 0, err
	}
	return true, items[0].ID, nil
}
