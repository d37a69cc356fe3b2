package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dietlog/internal/domain"

	"github.com/shopspring/decimal"
)

// WeightService records body-weight measurements. Each new measurement also
// becomes the weight of the user's profile, so targets follow the scale.
type WeightService struct {
	repo     domain.WeightRepository
	profiles *ProfileService
	log      *slog.Logger
}

// NewWeightService creates a WeightService. profiles may be nil, in which
// case measurements do not touch the profile.
func NewWeightService(repo domain.WeightRepository, profiles *ProfileService, log *slog.Logger) *WeightService {
	return &WeightService{repo: repo, profiles: profiles, log: loggerOrDefault(log)}
}

// GetTodayWeight returns the latest weight entry for the given local day.
func (s *WeightService) GetTodayWeight(ctx context.Context, userID int64, today string) (*domain.WeightEntry, error) {
	return s.repo.LatestWeightForLocalDay(ctx, userID, today)
}

// RecordWeight validates and stores a new weight measurement, returning the
// latest entry for today after the insert.
func (s *WeightService) RecordWeight(ctx context.Context, userID int64, value decimal.Decimal, unit string) (*domain.WeightEntry, string, error) {
	if !value.IsPositive() {
		return nil, "", fmt.Errorf("%w: value must be > 0", domain.ErrValidation)
	}
	if unit != domain.UnitKg && unit != domain.UnitLb {
		return nil, "", fmt.Errorf("%w: unit must be \"kg\" or \"lb\"", domain.ErrValidation)
	}
	if domain.ConvertWeight(value, unit, domain.UnitKg).GreaterThan(maxWeightKg) {
		return nil, "", fmt.Errorf("%w: value must be <= %s kg", domain.ErrValidation, maxWeightKg)
	}
	now := time.Now()
	today := domain.LocalDay(now)
	if err := s.recordBaseline(ctx, userID); err != nil {
		return nil, today, err
	}
	if _, err := s.repo.AddWeightEvent(ctx, userID, value.RoundBank(2), unit, now); err != nil {
		return nil, today, err
	}
	s.syncProfile(ctx, userID, value, unit)

	entry, err := s.repo.LatestWeightForLocalDay(ctx, userID, today)
	return entry, today, err
}

// ListRecent returns the most recent weight events. limit is clamped to
// [1, 200] and defaults to 30.
func (s *WeightService) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error) {
	return s.repo.ListRecentWeightEvents(ctx, userID, clampLimit(limit))
}

// UndoLast deletes the most recent weight event and returns the new latest
// entry for today. The profile falls back to the latest remaining
// measurement.
func (s *WeightService) UndoLast(ctx context.Context, userID int64) (bool, *domain.WeightEntry, string, error) {
	today := domain.LocalDay(time.Now())
	deleted, err := s.repo.DeleteLatestWeightEvent(ctx, userID)
	if err != nil {
		return false, nil, today, err
	}
	if deleted {
		rest, err := s.repo.ListRecentWeightEvents(ctx, userID, 1)
		if err != nil {
			return true, nil, today, err
		}
		if len(rest) > 0 {
			s.syncProfile(ctx, userID, rest[0].Value, rest[0].Unit)
		}
	}
	entry, err := s.repo.LatestWeightForLocalDay(ctx, userID, today)
	if err != nil {
		return deleted, nil, today, err
	}
	return deleted, entry, today, nil
}

// recordBaseline stores the profile weight as a measurement at the time the
// profile was saved, before the user's first recorded measurement. Undoing
// every measurement then restores the profile as it was saved.
func (s *WeightService) recordBaseline(ctx context.Context, userID int64) error {
	if s.profiles == nil {
		return nil
	}
	existing, err := s.repo.ListRecentWeightEvents(ctx, userID, 1)
	if err != nil || len(existing) > 0 {
		return err
	}
	p, err := s.profiles.repo.GetProfile(ctx, userID)
	if err != nil || p == nil {
		return err
	}
	at := p.UpdatedAt
	if at.IsZero() || at.After(time.Now()) {
		at = time.Now()
	}
	_, err = s.repo.AddWeightEvent(ctx, userID, p.WeightKg, domain.UnitKg, at)
	return err
}

func (s *WeightService) syncProfile(ctx context.Context, userID int64, value decimal.Decimal, unit string) {
	if s.profiles == nil {
		return
	}
	kg := domain.ConvertWeight(value, unit, domain.UnitKg)
	if _, err := s.profiles.UpdateWeight(ctx, userID, kg); err != nil {
		s.log.Warn("profile weight not updated", "user_id", userID, "error", err)
	}
}
