package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// WaterEvent is a single drink logged towards daily hydration. Negative
// deltas correct earlier over-counting.
type WaterEvent struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	DeltaLiters decimal.Decimal `json:"deltaLiters"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// WaterRepository is the port for water persistence.
type WaterRepository interface {
	AddWaterEvent(ctx context.Context, userID int64, deltaLiters decimal.Decimal, createdAt time.Time) (int64, error)
	DeleteWaterEvent(ctx context.Context, userID, id int64) (bool, error)
	ListRecentWaterEvents(ctx context.Context, userID int64, limit int) ([]WaterEvent, error)
	WaterTotalForLocalDay(ctx context.Context, userID int64, localDay string) (decimal.Decimal, error)
}
