package repository

import (
	"context"
	"errors"

	"github.com/adaschool/product-service/internal/product/domain"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
	// SaveProduct inserts when p.ID is empty (and sets p.ID), otherwise
	// replaces the stored record with the same ID, creating it if missing.
	SaveProduct(ctx context.Context, p *domain.Product) error
	// DeleteProduct does not fail when the product is absent.
	DeleteProduct(ctx context.Context, id string) error
}
