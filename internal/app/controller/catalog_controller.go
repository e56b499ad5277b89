package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/app/service"
	apperrors "storefront-gateway/internal/errors"
	"storefront-gateway/internal/middleware"
)

const defaultPageSize = 20

type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// ListProducts returns the featured product list
// GET /api/v1/products?first=20
func (ctrl *CatalogController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	first := parseFirst(c, defaultPageSize)
	products, err := ctrl.catalogService.FeaturedProducts(c.Request.Context(), first)
	if err != nil {
		log.Error("Failed to fetch products", err, nil)
		apperrors.ParseAndRespond(c, http.StatusBadGateway, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct returns one product by slug
// GET /api/v1/products/:slug
func (ctrl *CatalogController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	slug := c.Param("slug")
	product, err := ctrl.catalogService.ProductBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"slug": slug,
		})
		apperrors.ParseAndRespond(c, http.StatusBadGateway, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// ListCategories returns the category list
// GET /api/v1/categories?first=20
func (ctrl *CatalogController) ListCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	first := parseFirst(c, defaultPageSize)
	categories, err := ctrl.catalogService.Categories(c.Request.Context(), first)
	if err != nil {
		log.Error("Failed to fetch categories", err, nil)
		apperrors.ParseAndRespond(c, http.StatusBadGateway, err, "category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// GetCategory returns one category with its products
// GET /api/v1/categories/:slug?first=20
func (ctrl *CatalogController) GetCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	slug := c.Param("slug")
	first := parseFirst(c, defaultPageSize)
	category, err := ctrl.catalogService.CategoryBySlug(c.Request.Context(), slug, first)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Category not found")
			return
		}
		log.Error("Failed to fetch category", err, map[string]interface{}{
			"slug": slug,
		})
		apperrors.ParseAndRespond(c, http.StatusBadGateway, err, "category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
	})
}

func parseFirst(c *gin.Context, fallback int) int {
	raw := c.Query("first")
	if raw == "" {
		return fallback
	}
	first, err := strconv.Atoi(raw)
	if err != nil || first <= 0 || first > 100 {
		return fallback
	}
	return first
}
