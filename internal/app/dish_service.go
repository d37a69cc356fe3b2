package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"dietlog/internal/domain"

	"github.com/shopspring/decimal"
)

// DishService manages user-owned dishes built from catalog products.
type DishService struct {
	dishes   domain.DishRepository
	products domain.ProductRepository
	log      *slog.Logger
}

// NewDishService creates a DishService backed by the given repositories.
func NewDishService(dishes domain.DishRepository, products domain.ProductRepository, log *slog.Logger) *DishService {
	return &DishService{dishes: dishes, products: products, log: loggerOrDefault(log)}
}

// Create adds an empty dish owned by ownerID.
func (s *DishService) Create(ctx context.Context, ownerID int64, name string) (*domain.Dish, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	id, err := s.dishes.CreateDish(ctx, ownerID, name)
	if err != nil {
		return nil, fmt.Errorf("create dish: %w", err)
	}
	return s.Get(ctx, ownerID, id)
}

// AddIngredient adds grams of a product to the dish and refreshes its totals.
func (s *DishService) AddIngredient(ctx context.Context, ownerID, dishID, productID int64, grams decimal.Decimal) (*domain.Dish, error) {
	if err := validGrams(grams); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, ownerID, dishID); err != nil {
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
	ing := domain.DishIngredient{
		DishID:    dishID,
		ProductID: &p.ID,
		Name:      p.Name,
		Grams:     grams,
		Per100:    p.Per100,
		Nutrients: p.Per100.Scale(grams),
	}
	if _, err := s.dishes.AddDishIngredient(ctx, ing); err != nil {
		return nil, fmt.Errorf("add ingredient: %w", err)
	}
	return s.refresh(ctx, ownerID, dishID)
}

// RemoveIngredient deletes an ingredient and refreshes the dish totals.
func (s *DishService) RemoveIngredient(ctx context.Context, ownerID, dishID, ingredientID int64) (*domain.Dish, error) {
	if _, err := s.Get(ctx, ownerID, dishID); err != nil {
		return nil, err
	}
	ok, err := s.dishes.DeleteDishIngredient(ctx, dishID, ingredientID)
	if err != nil {
		return nil, fmt.Errorf("remove ingredient: %w", err)
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.refresh(ctx, ownerID, dishID)
}

// Get returns one of ownerID's dishes with its ingredients. Dishes owned by
// someone else are reported as not found.
func (s *DishService) Get(ctx context.Context, ownerID, dishID int64) (*domain.Dish, error) {
	d, err := s.dishes.GetDish(ctx, dishID)
	if err != nil {
		return nil, err
	}
	if d == nil || d.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// List returns ownerID's dishes without ingredients.
func (s *DishService) List(ctx context.Context, ownerID int64) ([]domain.Dish, error) {
	return s.dishes.ListDishes(ctx, ownerID)
}

// Delete removes one of ownerID's dishes.
func (s *DishService) Delete(ctx context.Context, ownerID, dishID int64) error {
	ok, err := s.dishes.DeleteDish(ctx, ownerID, dishID)
	if err != nil {
		return fmt.Errorf("delete dish: %w", err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (s *DishService) refresh(ctx context.Context, ownerID, dishID int64) (*domain.Dish, error) {
	d, err := s.Get(ctx, ownerID, dishID)
	if err != nil {
		return nil, err
	}
	d.Recompute()
	if err := s.dishes.UpdateDishTotals(ctx, dishID, d.Totals, d.TotalGrams); err != nil {
		return nil, fmt.Errorf("update dish totals: %w", err)
	}
	s.log.Debug("dish totals updated", "dish_id", dishID, "calories", d.Totals.Calories.String())
	return d, nil
}
