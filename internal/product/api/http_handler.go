package api

import (
	"errors"
	"net/http"

	"github.com/adaschool/product-service/internal/platform/logger"
	"github.com/adaschool/product-service/internal/product/domain"
	"github.com/adaschool/product-service/internal/product/repository"
	"github.com/adaschool/product-service/internal/product/service"
	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(ps service.ProductService) *ProductHandler {
	return &ProductHandler{productService: ps}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	productRoutes := router.Group("/products")
	{
		productRoutes.GET("", h.ListProducts)
		productRoutes.GET("/", h.ListProducts)
		productRoutes.POST("", h.CreateProduct)
		productRoutes.GET("/:id", h.GetProduct)
		productRoutes.PUT("/:id", h.UpdateProduct)
		productRoutes.DELETE("/:id", h.DeleteProduct)

		productRoutes.GET("/price/:id", h.GetPrice)
		productRoutes.GET("/dimensions/:id", h.GetDimensions)
		productRoutes.GET("/seller/:id", h.GetStore)
		productRoutes.GET("/category/:category", h.ListByCategory)
		productRoutes.GET("/sort/:criteria/:category", h.SortProducts)
	}
}

// respondError maps service errors to statuses. Not-found and unknown sort
// criteria both answer 404 with no body.
func respondError(c *gin.Context, op string, err error, publicMsg string) {
	if errors.Is(err, repository.ErrProductNotFound) || errors.Is(err, domain.ErrInvalidSortCriteria) {
		c.Status(http.StatusNotFound)
		return
	}
	logger.Error(op+": service error", err)
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": publicMsg})
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, "ListProducts", err, "Failed to retrieve products")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "GetProduct", err, "Failed to retrieve product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req domain.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		respondError(c, "CreateProduct", err, "Failed to create product")
		return
	}
	c.Header("Location", "/v1/products/"+product.ID)
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req domain.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, "UpdateProduct", err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "DeleteProduct", err, "Failed to delete product")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) GetPrice(c *gin.Context) {
	price, err := h.productService.GetProductPrice(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "GetPrice", err, "Failed to retrieve price")
		return
	}
	c.JSON(http.StatusOK, price)
}

func (h *ProductHandler) GetDimensions(c *gin.Context) {
	dimensions, err := h.productService.GetProductDimensions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "GetDimensions", err, "Failed to retrieve dimensions")
		return
	}
	c.String(http.StatusOK, dimensions)
}

func (h *ProductHandler) GetStore(c *gin.Context) {
	storeID, err := h.productService.GetProductStore(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "GetStore", err, "Failed to retrieve store")
		return
	}
	c.String(http.StatusOK, storeID)
}

func (h *ProductHandler) ListByCategory(c *gin.Context) {
	products, err := h.productService.ListProductsByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		respondError(c, "ListByCategory", err, "Failed to retrieve products")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) SortProducts(c *gin.Context) {
	products, err := h.productService.SortProducts(c.Request.Context(), c.Param("criteria"), c.Param("category"))
	if err != nil {
		respondError(c, "SortProducts", err, "Failed to sort products")
		return
	}
	c.JSON(http.StatusOK, products)
}
