package service

import (
	"context"
	"errors"
	"testing"

	pDomain "github.com/adaschool/product-service/internal/product/domain"
	pRepo "github.com/adaschool/product-service/internal/product/repository"
	"github.com/adaschool/product-service/internal/product/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductService_ListProducts(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	service := NewProductService(mockRepo)
	ctx := context.TODO()

	t.Run("Successful list", func(t *testing.T) {
		mockProducts := []pDomain.Product{
			{ID: "prod1", Name: "Product 1", Price: 100},
			{ID: "prod2", Name: "Product 2", Price: 200},
		}
		mockRepo.On("ListProducts", ctx).Return(mockProducts, nil).Once()

		products, err := service.ListProducts(ctx)
		assert.NoError(t, err)
		assert.Equal(t, mockProducts, products)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Repository error", func(t *testing.T) {
		mockRepo.On("ListProducts", ctx).Return(nil, errors.New("db error")).Once()

		products, err := service.ListProducts(ctx)
		assert.Error(t, err)
		assert.Nil(t, products)
		assert.Contains(t, err.Error(), "could not list products")
		mockRepo.AssertExpectations(t)
	})
}

func TestProductService_GetProduct(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	service := NewProductService(mockRepo)
	ctx := context.TODO()

	t.Run("Found", func(t *testing.T) {
		mockProduct := &pDomain.Product{ID: "prod1", Name: "Product 1", Price: 100}
		mockRepo.On("GetProductByID", ctx, "prod1").Return(mockProduct, nil).Once()

		product, err := service.GetProduct(ctx, "prod1")
		assert.NoError(t, err)
		assert.Equal(t, mockProduct, product)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Product not found", func(t *testing.T) {
		mockRepo.On("GetProductByID", ctx, "missing").Return(nil, pRepo.ErrProductNotFound).Once()

		product, err := service.GetProduct(ctx, "missing")
		assert.Nil(t, product)
		assert.ErrorIs(t, err, pRepo.ErrProductNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	service := NewProductService(mockRepo)
	ctx := context.TODO()
	req := pDomain.ProductRequest{Name: "Product1", Category: "Category1", Price: 100.0, Dimensions: "10x10", StoreID: "Store1"}

	t.Run("Successful creation", func(t *testing.T) {
		mockRepo.On("SaveProduct", ctx, mock.MatchedBy(func(p *pDomain.Product) bool {
			return p.ID == "" && p.Name == req.Name && p.Score == 0
		})).Return(nil).Once()

		product, err := service.CreateProduct(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, &pDomain.Product{
			ID: "mock-product-id", Name: "Product1", Category: "Category1", Price: 100.0, Dimensions: "10x10", StoreID: "Store1",
		}, product)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Repository error on SaveProduct", func(t *testing.T) {
		mockRepo.On("SaveProduct", ctx, mock.AnythingOfType("*domain.Product")).Return(errors.New("database error")).Once()

		product, err := service.CreateProduct(ctx, req)
		assert.Error(t, err)
		assert.Nil(t, product)
		assert.Contains(t, err.Error(), "could not save product")
		mockRepo.AssertExpectations(t)
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	service := NewProductService(mockRepo)
	ctx := context.TODO()
	req := pDomain.ProductRequest{Name: "New", Category: "Category2", Price: 150, Dimensions: "5x5", StoreID: "Store2"}

	t.Run("Overwrites all fields except id and score", func(t *testing.T) {
		existing := &pDomain.Product{ID: "prod1", Name: "Old", Category: "Category1", Price: 100, Dimensions: "10x10", StoreID: "Store1", Score: 3.5}
		mockRepo.On("GetProductByID", ctx, "prod1").Return(existing, nil).Once()
		mockRepo.On("SaveProduct", ctx, mock.AnythingOfType("*domain.Product")).Return(nil).Once()

		product, err := service.UpdateProduct(ctx, "prod1", req)
		require.NoError(t, err)
		assert.Equal(t, &pDomain.Product{
			ID: "prod1", Name: "New", Category: "Category2", Price: 150, Dimensions: "5x5", StoreID: "Store2", Score: 3.5,
		}, product)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Product not found has no side effects", func(t *testing.T) {
		mockRepo.On("GetProductByID", ctx, "missing").Return(nil, pRepo.ErrProductNotFound).Once()

		product, err := service.UpdateProduct(ctx, "missing", req)
		assert.Nil(t, product)
		assert.ErrorIs(t, err, pRepo.ErrProductNotFound)
		mockRepo.AssertExpectations(t)
		mockRepo.AssertNotCalled(t, "SaveProduct", ctx, mock.MatchedBy(func(p *pDomain.Product) bool {
			return p.ID == "missing"
		}))
	})
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	service := NewProductService(mockRepo)
	ctx := context.TODO()

	t.Run("Absent product is not an error", func(t *testing.T) {
		mockRepo.On("DeleteProduct", ctx, "missing").Return(nil).Once()

		assert.NoError(t, service.DeleteProduct(ctx, "missing"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Repository error", func(t *testing.T) {
		mockRepo.On("DeleteProduct", ctx, "prod1").Return(errors.New("db down")).Once()

		err := service.DeleteProduct(ctx, "prod1")
		assert.Error(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestProductService_Projections(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	service := NewProductService(mockRepo)
	ctx := context.TODO()
	mockProduct := &pDomain.Product{ID: "prod1", Price: 99.5, Dimensions: "10x20", StoreID: "Store7"}

	t.Run("Found", func(t *testing.T) {
		mockRepo.On("GetProductByID", ctx, "prod1").Return(mockProduct, nil).Times(3)

		price, err := service.GetProductPrice(ctx, "prod1")
		assert.NoError(t, err)
		assert.Equal(t, 99.5, price)

		dims, err := service.GetProductDimensions(ctx, "prod1")
		assert.NoError(t, err)
		assert.Equal(t, "10x20", dims)

		store, err := service.GetProductStore(ctx, "prod1")
		assert.NoError(t, err)
		assert.Equal(t, "Store7", store)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Product not found", func(t *testing.T) {
		mockRepo.On("GetProductByID", ctx, "missing").Return(nil, pRepo.ErrProductNotFound).Times(3)

		_, err := service.GetProductPrice(ctx, "missing")
		assert.ErrorIs(t, err, pRepo.ErrProductNotFound)
		_, err = service.GetProductDimensions(ctx, "missing")
		assert.ErrorIs(t, err, pRepo.ErrProductNotFound)
		_, err = service.GetProductStore(ctx, "missing")
		assert.ErrorIs(t, err, pRepo.ErrProductNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestProductService_SortProducts(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	service := NewProductService(mockRepo)
	ctx := context.TODO()

	a := pDomain.Product{ID: "A", Category: "Category1", Price: 100, Score: 2}
	b := pDomain.Product{ID: "B", Category: "Category1", Price: 200, Score: 1}
	c := pDomain.Product{ID: "C", Category: "Category1", Price: 100, Score: 2}

	ids := func(products []pDomain.Product) []string {
		out := make([]string, 0, len(products))
		for _, p := range products {
			out = append(out, p.ID)
		}
		return out
	}

	t.Run("ascPrice", func(t *testing.T) {
		mockRepo.On("ListProductsByCategory", ctx, "Category1").Return([]pDomain.Product{b, a}, nil).Once()

		products, err := service.SortProducts(ctx, "ascPrice", "Category1")
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, ids(products))
	})

	t.Run("descPrice", func(t *testing.T) {
		mockRepo.On("ListProductsByCategory", ctx, "Category1").Return([]pDomain.Product{a, b}, nil).Once()

		products, err := service.SortProducts(ctx, "descPrice", "Category1")
		require.NoError(t, err)
		assert.Equal(t, []string{"B", "A"}, ids(products))
	})

	t.Run("score", func(t *testing.T) {
		mockRepo.On("ListProductsByCategory", ctx, "Category1").Return([]pDomain.Product{a, b}, nil).Once()

		products, err := service.SortProducts(ctx, "score", "Category1")
		require.NoError(t, err)
		assert.Equal(t, []string{"B", "A"}, ids(products))
	})

	t.Run("Ties keep query order", func(t *testing.T) {
		mockRepo.On("ListProductsByCategory", ctx, "Category1").Return([]pDomain.Product{c, b, a}, nil).Twice()

		products, err := service.SortProducts(ctx, "ascPrice", "Category1")
		require.NoError(t, err)
		assert.Equal(t, []string{"C", "A", "B"}, ids(products))

		products, err = service.SortProducts(ctx, "score", "Category1")
		require.NoError(t, err)
		assert.Equal(t, []string{"B", "C", "A"}, ids(products))
	})

	t.Run("Does not reorder the fetched slice or write", func(t *testing.T) {
		fetched := []pDomain.Product{b, a}
		mockRepo.On("ListProductsByCategory", ctx, "Category1").Return(fetched, nil).Once()

		_, err := service.SortProducts(ctx, "ascPrice", "Category1")
		require.NoError(t, err)
		assert.Equal(t, []string{"B", "A"}, ids(fetched))
		mockRepo.AssertNotCalled(t, "SaveProduct", mock.Anything, mock.Anything)
	})

	t.Run("Invalid criteria", func(t *testing.T) {
		products, err := service.SortProducts(ctx, "name", "Category1")
		assert.Nil(t, products)
		assert.ErrorIs(t, err, pDomain.ErrInvalidSortCriteria)
	})

	t.Run("Repository error", func(t *testing.T) {
		mockRepo.On("ListProductsByCategory", ctx, "Broken").Return(nil, errors.New("db error")).Once()

		products, err := service.SortProducts(ctx, "ascPrice", "Broken")
		assert.Error(t, err)
		assert.Nil(t, products)
	})

	mockRepo.AssertExpectations(t)
}
