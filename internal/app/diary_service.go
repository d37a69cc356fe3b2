package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dietlog/internal/domain"

	"github.com/shopspring/decimal"
)

// DiaryService records what users eat. Nutrients are scaled once, when the
// entry is created.
type DiaryService struct {
	diary    domain.DiaryRepository
	products domain.ProductRepository
	dishes   domain.DishRepository
	log      *slog.Logger
}

// NewDiaryService creates a DiaryService backed by the given repositories.
func NewDiaryService(diary domain.DiaryRepository, products domain.ProductRepository, dishes domain.DishRepository, log *slog.Logger) *DiaryService {
	return &DiaryService{diary: diary, products: products, dishes: dishes, log: loggerOrDefault(log)}
}

// LogProduct records grams of a catalog product. A zero at means now.
func (s *DiaryService) LogProduct(ctx context.Context, userID, productID int64, grams decimal.Decimal, meal domain.Meal, at time.Time) (*domain.LogEntry, error) {
	if err := validGrams(grams); err != nil {
		return nil, err
	}
	p, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	grams = grams.RoundBank(2)
	e := domain.LogEntry{
		UserID:    userID,
		ProductID: &p.ID,
		Name:      p.Name,
		Meal:      meal.Normalize(),
		QuantityG: grams,
		Nutrients: p.Per100.Scale(grams),
		LoggedAt:  loggedAt(at),
	}
	return s.add(ctx, e)
}

// LogDish records grams of one of the user's dishes as a share of the dish
// totals.
func (s *DiaryService) LogDish(ctx context.Context, userID, dishID int64, grams decimal.Decimal, meal domain.Meal, at time.Time) (*domain.LogEntry, error) {
	if err := validGrams(grams); err != nil {
		return nil, err
	}
	d, err := s.dishes.GetDish(ctx, dishID)
	if err != nil {
		return nil, err
	}
	if d == nil || d.OwnerID != userID {
		return nil, domain.ErrNotFound
	}
	if !d.TotalGrams.IsPositive() {
		return nil, fmt.Errorf("%w: dish %q has no ingredients", domain.ErrValidation, d.Name)
	}

	grams = grams.RoundBank(2)
	e := domain.LogEntry{
		UserID:    userID,
		DishID:    &d.ID,
		Name:      d.Name,
		Meal:      meal.Normalize(),
		QuantityG: grams,
		Nutrients: d.Serving(grams),
		LoggedAt:  loggedAt(at),
	}
	return s.add(ctx, e)
}

// Delete removes one of the user's entries.
func (s *DiaryService) Delete(ctx context.Context, userID, entryID int64) error {
	ok, err := s.diary.DeleteLogEntry(ctx, userID, entryID)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// ListDay returns the user's entries logged on the given local day.
func (s *DiaryService) ListDay(ctx context.Context, userID int64, day string) ([]domain.LogEntry, error) {
	from, to, err := domain.DayBounds(day)
	if err != nil {
		return nil, err
	}
	return s.diary.ListLogEntries(ctx, userID, from, to)
}

// ListRange returns the user's entries logged in [from, to).
func (s *DiaryService) ListRange(ctx context.Context, userID int64, from, to time.Time) ([]domain.LogEntry, error) {
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: range start must be before its end", domain.ErrValidation)
	}
	return s.diary.ListLogEntries(ctx, userID, from, to)
}

func (s *DiaryService) add(ctx context.Context, e domain.LogEntry) (*domain.LogEntry, error) {
	id, err := s.diary.AddLogEntry(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("add entry: %w", err)
	}
	e.ID = id
	s.log.Debug("diary entry added", "user_id", e.UserID, "entry_id", id, "meal", string(e.Meal))
	return &e, nil
}

var maxGrams = decimal.NewFromInt(100_000)

func validGrams(grams decimal.Decimal) error {
	if !grams.IsPositive() {
		return fmt.Errorf("%w: grams must be > 0", domain.ErrValidation)
	}
	if grams.GreaterThan(maxGrams) {
		return fmt.Errorf("%w: grams must be <= %s", domain.ErrValidation, maxGrams)
	}
	return nil
}

func loggedAt(at time.Time) time.Time {
	if at.IsZero() {
		return time.Now().UTC()
	}
	return at.UTC()
}
