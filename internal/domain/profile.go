package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Profile holds the anthropometric inputs for target calculation together
// with the targets last derived from them.
type Profile struct {
	UserID    int64           `json:"userId"`
	WeightKg  decimal.Decimal `json:"weightKg"`
	HeightCm  decimal.Decimal `json:"heightCm"`
	Age       int             `json:"age"`
	Sex       Sex             `json:"sex"`
	Activity  ActivityLevel   `json:"activity"`
	Goal      Goal            `json:"goal"`
	Targets   Targets         `json:"targets"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ProfileRepository is the port for profile persistence.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	SaveProfile(ctx context.Context, p Profile) error
}
