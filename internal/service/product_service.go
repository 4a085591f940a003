package service

import (
	"context"
	"math"

	"inventory-api/internal/domain"
	"inventory-api/internal/repository"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// ProductService coordinates product operations backed by a repository.
type ProductService interface {
	Create(ctx context.Context, in domain.NewProduct) (int64, error)
	List(ctx context.Context, page, limit int) ([]domain.Product, error)
	UpdateQuantity(ctx context.Context, id, quantity int64) (*domain.Product, error)
}

// Pagination bounds the page size accepted by List.
type Pagination struct {
	DefaultLimit int
	MaxLimit     int
}

type productService struct {
	products repository.ProductRepository
	pages    Pagination
}

func NewProductService(products repository.ProductRepository, pages Pagination) ProductService {
	if pages.DefaultLimit <= 0 {
		pages.DefaultLimit = DefaultPageLimit
	}
	if pages.MaxLimit <= 0 {
		pages.MaxLimit = MaxPageLimit
	}
	if pages.DefaultLimit > pages.MaxLimit {
		pages.DefaultLimit = pages.MaxLimit
	}
	return &productService{
		products: products,
		pages:    pages,
	}
}

func (s *productService) Create(ctx context.Context, in domain.NewProduct) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	return s.products.Create(ctx, &domain.Product{
		Name:        in.Name,
		Type:        in.Type,
		SKU:         in.SKU,
		ImageURL:    in.ImageURL,
		Description: in.Description,
		Quantity:    *in.Quantity,
		Price:       *in.Price,
	})
}

// List returns one page of products, newest first. Non-positive values
// fall back to page 1 and the default limit; limit is capped at MaxLimit.
func (s *productService) List(ctx context.Context, page, limit int) ([]domain.Product, error) {
	page, limit = s.normalize(page, limit)
	if page-1 > math.MaxInt/limit {
		return []domain.Product{}, nil
	}
	return s.products.List(ctx, limit, (page-1)*limit)
}

func (s *productService) UpdateQuantity(ctx context.Context, id, quantity int64) (*domain.Product, error) {
	if quantity < 0 {
		return nil, domain.Validation("Quantity must not be negative")
	}
	return s.products.UpdateQuantity(ctx, id, quantity)
}

func (s *productService) normalize(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = s.pages.DefaultLimit
	}
	if limit > s.pages.MaxLimit {
		limit = s.pages.MaxLimit
	}
	return page, limit
}
