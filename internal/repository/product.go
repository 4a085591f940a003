package repository

import (
	"context"

	"inventory-api/internal/domain"
)

// ProductRepository exposes persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (int64, error)
	// List returns products newest first.
	List(ctx context.Context, limit, offset int) ([]domain.Product, error)
	// UpdateQuantity returns domain.ErrNotFound when no product has the id.
	UpdateQuantity(ctx context.Context, id, quantity int64) (*domain.Product, error)
}
