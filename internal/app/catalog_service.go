package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"dietlog/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	defaultSearchLimit = 50
	maxSearchLimit     = 200
)

// Pure fat carries about 900 kcal per 100 g.
var (
	maxCaloriesPer100 = decimal.NewFromInt(1000)
	maxMacroPer100    = decimal.NewFromInt(100)
)

// ProductInput is the editable part of a catalog product.
type ProductInput struct {
	Name   string           `json:"name"`
	Brand  string           `json:"brand"`
	Per100 domain.Nutrients `json:"per100g"`
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if in.Per100.IsNegative() {
		return fmt.Errorf("%w: nutrient values must be >= 0", domain.ErrValidation)
	}
	if in.Per100.Calories.GreaterThan(maxCaloriesPer100) {
		return fmt.Errorf("%w: calories must be <= %s per 100 g", domain.ErrValidation, maxCaloriesPer100)
	}
	for _, v := range []decimal.Decimal{in.Per100.Protein, in.Per100.Fat, in.Per100.Carbs} {
		if v.GreaterThan(maxMacroPer100) {
			return fmt.Errorf("%w: macro-nutrients must be <= %s g per 100 g", domain.ErrValidation, maxMacroPer100)
		}
	}
	return nil
}

// CatalogService manages the shared product catalog. Editing a product never
// changes diary entries, dishes or plans that were built from it.
type CatalogService struct {
	repo domain.ProductRepository
	log  *slog.Logger
}

// NewCatalogService creates a CatalogService backed by the given repository.
func NewCatalogService(repo domain.ProductRepository, log *slog.Logger) *CatalogService {
	return &CatalogService{repo: repo, log: loggerOrDefault(log)}
}

// Create adds a product on behalf of actor.
func (s *CatalogService) Create(ctx context.Context, actor domain.User, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p := domain.Product{
		Name:      strings.TrimSpace(in.Name),
		Brand:     strings.TrimSpace(in.Brand),
		Per100:    in.Per100.Round(2),
		CreatedBy: actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := s.repo.CreateProduct(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	p.ID = id
	s.log.Info("product created", "product_id", id, "user_id", actor.ID)
	return &p, nil
}

// Update replaces the product fields. Only the creator or an admin may edit.
func (s *CatalogService) Update(ctx context.Context, actor domain.User, id int64, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p, err := s.editable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	p.Name = strings.TrimSpace(in.Name)
	p.Brand = strings.TrimSpace(in.Brand)
	p.Per100 = in.Per100.Round(2)
	p.UpdatedAt = time.Now().UTC()

	ok, err := s.repo.UpdateProduct(ctx, *p)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Delete removes a product. Only the creator or an admin may delete.
func (s *CatalogService) Delete(ctx context.Context, actor domain.User, id int64) error {
	if _, err := s.editable(ctx, actor, id); err != nil {
		return err
	}
	ok, err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	s.log.Info("product deleted", "product_id", id, "user_id", actor.ID)
	return nil
}

// Get returns a product by id.
func (s *CatalogService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Search finds products whose name or brand contains query. An empty query
// lists the catalog. limit is clamped to [1, 200] and defaults to 50.
func (s *CatalogService) Search(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	return s.repo.SearchProducts(ctx, strings.TrimSpace(query), limit)
}

func (s *CatalogService) editable(ctx context.Context, actor domain.User, id int64) (*domain.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.CreatedBy != actor.ID && actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return p, nil
}
