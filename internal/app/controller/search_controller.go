package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/app/search"
	"storefront-gateway/internal/app/service"
	apperrors "storefront-gateway/internal/errors"
	"storefront-gateway/internal/middleware"
)

type SearchController struct {
	catalogService service.CatalogService
	coordinator    *search.Coordinator
	pageSize       int
}

func NewSearchController(catalogService service.CatalogService, coordinator *search.Coordinator, pageSize int) *SearchController {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &SearchController{
		catalogService: catalogService,
		coordinator:    coordinator,
		pageSize:       pageSize,
	}
}

// Search runs a synchronous product search. This is the search-page
// path; the typeahead path goes through the coordinator.
// GET /api/v1/search?q=shirt
func (ctrl *SearchController) Search(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, gin.H{
			"query":    query,
			"products": []interface{}{},
			"count":    0,
		})
		return
	}

	first := parseFirst(c, ctrl.pageSize)
	products, err := ctrl.catalogService.Search(c.Request.Context(), query, first)
	if err != nil {
		log.Error("Search failed", err, map[string]interface{}{
			"query": query,
		})
		apperrors.ParseAndRespond(c, http.StatusBadGateway, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":    query,
		"products": products,
		"count":    len(products),
	})
}

type SetQueryRequest struct {
	Query string `json:"query"`
}

// SetQuery feeds a keystroke into the debounced pipeline and returns the
// current snapshot. Results arrive asynchronously; clients poll the
// state endpoint or subscribe to the event stream.
// POST /api/v1/search/query
func (ctrl *SearchController) SetQuery(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SetQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid search query")
		return
	}

	ctrl.coordinator.SetQuery(req.Query)

	log.Debug("Search query accepted", map[string]interface{}{
		"query": req.Query,
	})

	c.JSON(http.StatusOK, ctrl.coordinator.State())
}

// GetState returns the typeahead snapshot without touching the query
// GET /api/v1/search/state
func (ctrl *SearchController) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.coordinator.State())
}
