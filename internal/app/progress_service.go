package app

import (
	"context"
	"fmt"
	"time"

	"dietlog/internal/domain"

	"github.com/shopspring/decimal"
)

const maxProgressDays = 366

// ProgressService compares what users ate against their targets.
type ProgressService struct {
	diary    domain.DiaryRepository
	weights  domain.WeightRepository
	water    domain.WaterRepository
	profiles *ProfileService
}

// NewProgressService creates a ProgressService backed by the given
// repositories and profile service.
func NewProgressService(diary domain.DiaryRepository, weights domain.WeightRepository, water domain.WaterRepository, profiles *ProfileService) *ProgressService {
	return &ProgressService{diary: diary, weights: weights, water: water, profiles: profiles}
}

// DayProgress is one day of the series returned by Daily.
type DayProgress struct {
	Day string `json:"day"`
	domain.ProgressSnapshot
}

// Day returns the snapshot for the given local day against the user's
// current targets.
func (s *ProgressService) Day(ctx context.Context, userID int64, day string) (domain.ProgressSnapshot, error) {
	from, to, err := domain.DayBounds(day)
	if err != nil {
		return domain.ProgressSnapshot{}, err
	}
	targets, err := s.profiles.Targets(ctx, userID)
	if err != nil {
		return domain.ProgressSnapshot{}, err
	}
	entries, err := s.diary.ListLogEntries(ctx, userID, from, to)
	if err != nil {
		return domain.ProgressSnapshot{}, err
	}
	return domain.Aggregate(entries, targets), nil
}

// Daily returns one snapshot per local day for the last days days, oldest
// first and ending today. days is clamped to [1, 366].
func (s *ProgressService) Daily(ctx context.Context, userID int64, days int) ([]DayProgress, error) {
	days = clampDays(days)

	today := time.Now().In(time.Local)
	first := today.AddDate(0, 0, -(days - 1))
	from, _, err := domain.DayBounds(domain.LocalDay(first))
	if err != nil {
		return nil, err
	}
	_, to, err := domain.DayBounds(domain.LocalDay(today))
	if err != nil {
		return nil, err
	}

	targets, err := s.profiles.Targets(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries, err := s.diary.ListLogEntries(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string][]domain.LogEntry)
	for _, e := range entries {
		d := domain.LocalDay(e.LoggedAt)
		byDay[d] = append(byDay[d], e)
	}

	points := make([]DayProgress, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := domain.LocalDay(today.AddDate(0, 0, -i))
		points = append(points, DayProgress{Day: day, ProgressSnapshot: domain.Aggregate(byDay[day], targets)})
	}
	return points, nil
}

// BodyPoint is one day of the series returned by Body.
type BodyPoint struct {
	Day         string          `json:"day"`
	WaterLiters decimal.Decimal `json:"waterLiters"`
	Weight      *WeightPoint    `json:"weight"`
}

// WeightPoint is the optional weight value within a BodyPoint.
type WeightPoint struct {
	Value decimal.Decimal `json:"value"`
	Unit  string          `json:"unit"`
}

// Body returns per-day water totals and the last weight of each day for the
// last days days, with weights converted to unit.
func (s *ProgressService) Body(ctx context.Context, userID int64, days int, unit string) ([]BodyPoint, error) {
	if unit != domain.UnitKg && unit != domain.UnitLb {
		return nil, fmt.Errorf("%w: unit must be \"kg\" or \"lb\"", domain.ErrValidation)
	}
	days = clampDays(days)

	today := time.Now().In(time.Local)
	points := make([]BodyPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := domain.LocalDay(today.AddDate(0, 0, -i))

		liters, err := s.water.WaterTotalForLocalDay(ctx, userID, day)
		if err != nil {
			return nil, err
		}
		entry, err := s.weights.LatestWeightForLocalDay(ctx, userID, day)
		if err != nil {
			return nil, err
		}

		var wp *WeightPoint
		if entry != nil {
			wp = &WeightPoint{Value: domain.ConvertWeight(entry.Value, entry.Unit, unit).RoundBank(2), Unit: unit}
		}
		points = append(points, BodyPoint{Day: day, WaterLiters: liters, Weight: wp})
	}
	return points, nil
}

func clampDays(days int) int {
	if days < 1 {
		return 1
	}
	if days > maxProgressDays {
		return maxProgressDays
	}
	return days
}
