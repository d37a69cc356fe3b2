package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// WeightEntry is a single body-weight measurement.
type WeightEntry struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	Day       string          `json:"day"`
	Value     decimal.Decimal `json:"value"`
	Unit      string          `json:"unit"`
	CreatedAt time.Time       `json:"createdAt"`
}

// WeightRepository is the port for body-weight persistence.
type WeightRepository interface {
	AddWeightEvent(ctx context.Context, userID int64, value decimal.Decimal, unit string, createdAt time.Time) (int64, error)
	DeleteLatestWeightEvent(ctx context.Context, userID int64) (bool, error)
	LatestWeightForLocalDay(ctx context.Context, userID int64, localDay string) (*WeightEntry, error)
	ListRecentWeightEvents(ctx context.Context, userID int64, limit int) ([]WeightEntry, error)
}
