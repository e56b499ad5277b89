package service

import (
	"context"
	"errors"

	"storefront-gateway/internal/app/model"
	"storefront-gateway/pkg/logger"
	"storefront-gateway/pkg/saleor"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

type CatalogService interface {
	FeaturedProducts(ctx context.Context, first int) ([]model.Product, error)
	ProductBySlug(ctx context.Context, slug string) (*model.Product, error)
	Categories(ctx context.Context, first int) ([]model.Category, error)
	CategoryBySlug(ctx context.Context, slug string, first int) (*saleor.CategoryDetail, error)
	Search(ctx context.Context, query string, first int) ([]model.Product, error)
}

type catalogService struct {
	api SaleorAPI
}

func NewCatalogService(api SaleorAPI) CatalogService {
	return &catalogService{api: api}
}

func (s *catalogService) FeaturedProducts(ctx context.Context, first int) ([]model.Product, error) {
	products, err := s.api.Products(ctx, first)
	if err != nil {
		logger.Error("Failed to fetch products", err)
		return nil, err
	}

	logger.Debug("Products fetched", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (s *catalogService) ProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	product, err := s.api.ProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, saleor.ErrNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"slug": slug,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, err
	}
	return product, nil
}

func (s *catalogService) Categories(ctx context.Context, first int) ([]model.Category, error) {
	categories, err := s.api.Categories(ctx, first)
	if err != nil {
		logger.Error("Failed to fetch categories", err)
		return nil, err
	}
	return categories, nil
}

func (s *catalogService) CategoryBySlug(ctx context.Context, slug string, first int) (*saleor.CategoryDetail, error) {
	detail, err := s.api.CategoryBySlug(ctx, slug, first)
	if err != nil {
		if errors.Is(err, saleor.ErrNotFound) {
			logger.Warn("Category not found", map[string]interface{}{
				"slug": slug,
			})
			return nil, ErrCategoryNotFound
		}
		logger.Error("Failed to fetch category", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, err
	}
	return detail, nil
}

func (s *catalogService) Search(ctx context.Context, query string, first int) ([]model.Product, error) {
	products, err := s.api.SearchProducts(ctx, query, first)
	if err != nil {
		logger.Error("Search request failed", err, map[string]interface{}{
			"query": query,
		})
		return nil, err
	}

	logger.Debug("Search completed", map[string]interface{}{
		"query": query,
		"count": len(products),
	})
	return products, nil
}
