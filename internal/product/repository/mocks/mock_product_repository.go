package mocks

import (
	"context"

	pDomain "github.com/adaschool/product-service/internal/product/domain"

	"github.com/stretchr/testify/mock"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) ListProducts(ctx context.Context) ([]pDomain.Product, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]pDomain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, id string) (*pDomain.Product, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*pDomain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) ListProductsByCategory(ctx context.Context, category string) ([]pDomain.Product, error) {
	args := m.Called(ctx, category)
	if res := args.Get(0); res != nil {
		return res.([]pDomain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, p *pDomain.Product) error {
	args := m.Called(ctx, p)
	// Simulasikan ID yang dibuat oleh store untuk insert
	if p != nil && p.ID == "" && args.Error(0) == nil {
		p.ID = "mock-product-id"
	}
	return args.Error(0)
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
