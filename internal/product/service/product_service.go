package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/adaschool/product-service/internal/platform/logger"
	"github.com/adaschool/product-service/internal/product/domain"
	"github.com/adaschool/product-service/internal/product/repository"
)

type ProductService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, req domain.ProductRequest) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, req domain.ProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	GetProductPrice(ctx context.Context, id string) (float64, error)
	GetProductDimensions(ctx context.Context, id string) (string, error)
	GetProductStore(ctx context.Context, id string) (string, error)

	ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
	// SortProducts returns the category's products ordered by criteria
	// ("ascPrice", "descPrice" or "score"). Ties keep the store's order.
	SortProducts(ctx context.Context, criteria, category string) ([]domain.Product, error)
}

type productServiceImpl struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productServiceImpl{repo: repo}
}

func (s *productServiceImpl) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list products: %w", err)
	}
	return products, nil
}

// GetProduct returns repository.ErrProductNotFound untouched so callers can
// match it with errors.Is.
func (s *productServiceImpl) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, req domain.ProductRequest) (*domain.Product, error) {
	product := domain.NewProduct(req)
	if err := s.repo.SaveProduct(ctx, product); err != nil {
		logger.Error("CreateProduct: failed to save product in repo", err)
		return nil, fmt.Errorf("could not save product: %w", err)
	}
	return product, nil
}

func (s *productServiceImpl) UpdateProduct(ctx context.Context, id string, req domain.ProductRequest) (*domain.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Apply(req)
	if err := s.repo.SaveProduct(ctx, product); err != nil {
		logger.Error("UpdateProduct: failed to save product "+id, err)
		return nil, fmt.Errorf("could not save product: %w", err)
	}
	return product, nil
}

func (s *productServiceImpl) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("could not delete product: %w", err)
	}
	return nil
}

func (s *productServiceImpl) GetProductPrice(ctx context.Context, id string) (float64, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return product.Price, nil
}

func (s *productServiceImpl) GetProductDimensions(ctx context.Context, id string) (string, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return "", err
	}
	return product.Dimensions, nil
}

func (s *productServiceImpl) GetProductStore(ctx context.Context, id string) (string, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return "", err
	}
	return product.StoreID, nil
}

func (s *productServiceImpl) ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	products, err := s.repo.ListProductsByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("could not list products of category %q: %w", category, err)
	}
	return products, nil
}

func (s *productServiceImpl) SortProducts(ctx context.Context, criteria, category string) ([]domain.Product, error) {
	by, err := domain.ParseSortCriteria(criteria)
	if err != nil {
		return nil, err
	}

	products, err := s.ListProductsByCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	sorted := make([]domain.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return by.Less(sorted[i], sorted[j])
	})
	return sorted, nil
}
