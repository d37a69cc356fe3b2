package domain

import (
	"context"
	"time"
)

// Product is a catalog food with nutrient values per 100 g.
type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Brand     string    `json:"brand"`
	Per100    Nutrients `json:"per100g"`
	CreatedBy int64     `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductRepository is the port for the product catalog.
type ProductRepository interface {
	CreateProduct(ctx context.Context, p Product) (int64, error)
	UpdateProduct(ctx context.Context, p Product) (bool, error)
	DeleteProduct(ctx context.Context, id int64) (bool, error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	SearchProducts(ctx context.Context, query string, limit int) ([]Product, error)
}
