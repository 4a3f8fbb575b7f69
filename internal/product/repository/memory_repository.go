package repository

import (
	"context"
	"sync"

	"github.com/adaschool/product-service/internal/product/domain"
	"github.com/google/uuid"
)

// memoryProductRepository keeps products in process memory, in insertion
// order. Intended for local runs and tests.
type memoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	order    []string
}

func NewMemoryProductRepository() ProductRepository {
	return &memoryProductRepository{products: make(map[string]domain.Product)}
}

func (r *memoryProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return r.filter(func(domain.Product) bool { return true }), nil
}

func (r *memoryProductRepository) ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return r.filter(func(p domain.Product) bool { return p.Category == category }), nil
}

func (r *memoryProductRepository) filter(keep func(domain.Product) bool) []domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := []domain.Product{}
	for _, id := range r.order {
		if p := r.products[id]; keep(p) {
			products = append(products, p)
		}
	}
	return products
}

func (r *memoryProductRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

func (r *memoryProductRepository) SaveProduct(ctx context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, exists := r.products[p.ID]; !exists {
		r.order = append(r.order, p.ID)
	}
	r.products[p.ID] = *p
	return nil
}

func (r *memoryProductRepository) DeleteProduct(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[id]; !exists {
		return nil
	}
	delete(r.products, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
