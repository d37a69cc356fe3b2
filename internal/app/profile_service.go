package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dietlog/internal/domain"

	"github.com/shopspring/decimal"
)

// ProfileInput is the user-editable part of a profile.
type ProfileInput struct {
	WeightKg decimal.Decimal      `json:"weightKg"`
	HeightCm decimal.Decimal      `json:"heightCm"`
	Age      int                  `json:"age"`
	Sex      domain.Sex           `json:"sex"`
	Activity domain.ActivityLevel `json:"activity"`
	Goal     domain.Goal          `json:"goal"`
}

var (
	maxWeightKg = decimal.NewFromInt(1000)
	maxHeightCm = decimal.NewFromInt(300)
)

const maxAge = 150

// validate rejects values beyond any human body. Non-positive values are
// left to domain.ComputeTargets.
func (in ProfileInput) validate() error {
	switch {
	case in.WeightKg.GreaterThan(maxWeightKg):
		return fmt.Errorf("%w: weight must be <= %s kg", domain.ErrValidation, maxWeightKg)
	case in.HeightCm.GreaterThan(maxHeightCm):
		return fmt.Errorf("%w: height must be <= %s cm", domain.ErrValidation, maxHeightCm)
	case in.Age > maxAge:
		return fmt.Errorf("%w: age must be <= %d", domain.ErrValidation, maxAge)
	}
	return nil
}

func (in ProfileInput) profile(userID int64) domain.Profile {
	return domain.Profile{
		UserID:   userID,
		WeightKg: in.WeightKg.RoundBank(2),
		HeightCm: in.HeightCm.RoundBank(2),
		Age:      in.Age,
		Sex:      in.Sex.Normalize(),
		Activity: in.Activity.Normalize(),
		Goal:     in.Goal.Normalize(),
	}
}

// ProfileService manages body profiles and the targets derived from them.
type ProfileService struct {
	repo domain.ProfileRepository
	log  *slog.Logger
}

// NewProfileService creates a ProfileService backed by the given repository.
func NewProfileService(repo domain.ProfileRepository, log *slog.Logger) *ProfileService {
	return &ProfileService{repo: repo, log: loggerOrDefault(log)}
}

// Get returns the stored profile of userID.
func (s *ProfileService) Get(ctx context.Context, userID int64) (*domain.Profile, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Targets returns the stored targets of userID, or zero targets when the
// user has no profile yet.
func (s *ProfileService) Targets(ctx context.Context, userID int64) (domain.Targets, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil || p == nil {
		return domain.Targets{}, err
	}
	return p.Targets, nil
}

// Preview computes targets for in without storing anything.
func (s *ProfileService) Preview(in ProfileInput) (domain.Targets, error) {
	if err := in.validate(); err != nil {
		return domain.Targets{}, err
	}
	p := in.profile(0)
	s.warnDefaults(p)
	t, err := domain.ComputeTargets(p)
	if err != nil {
		return domain.Targets{}, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return t, nil
}

// Save validates in, recomputes the targets and stores the profile.
func (s *ProfileService) Save(ctx context.Context, userID int64, in ProfileInput) (*domain.Profile, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.save(ctx, in.profile(userID))
}

// UpdateWeight replaces the weight of an existing profile and recomputes its
// targets. It is a no-op when the user has no profile.
func (s *ProfileService) UpdateWeight(ctx context.Context, userID int64, weightKg decimal.Decimal) (*domain.Profile, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil || p == nil {
		return nil, err
	}
	p.WeightKg = weightKg.RoundBank(2)
	return s.save(ctx, *p)
}

func (s *ProfileService) save(ctx context.Context, p domain.Profile) (*domain.Profile, error) {
	s.warnDefaults(p)
	t, err := domain.ComputeTargets(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	p.Targets = t
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.SaveProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	s.log.Info("profile saved", "user_id", p.UserID, "calories", t.Calories.String())
	return &p, nil
}

func (s *ProfileService) warnDefaults(p domain.Profile) {
	if !p.Activity.Valid() {
		s.log.Warn("unknown activity level, using low", "user_id", p.UserID, "activity", string(p.Activity))
	}
	if !p.Goal.Valid() {
		s.log.Warn("unknown goal, using maintenance", "user_id", p.UserID, "goal", string(p.Goal))
	}
}
