package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/app/model"
	"storefront-gateway/internal/app/store"
	apperrors "storefront-gateway/internal/errors"
	"storefront-gateway/internal/middleware"
)

type CartController struct {
	cart *store.CartStore
}

func NewCartController(cart *store.CartStore) *CartController {
	return &CartController{
		cart: cart,
	}
}

type AddCartItemRequest struct {
	ID      string          `json:"id" binding:"required"`
	Name    string          `json:"name" binding:"required"`
	Price   float64         `json:"price" binding:"gte=0"`
	Image   string          `json:"image"`
	Variant *VariantRequest `json:"variant"`
}

type VariantRequest struct {
	ID   string `json:"id" binding:"required"`
	Name string `json:"name"`
}

type UpdateCartItemRequest struct {
	Quantity  int    `json:"quantity"`
	VariantID string `json:"variantId"`
}

// GetCart returns the cart snapshot
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.cart.State())
}

// AddItem adds a product line or increments an existing one
// POST /api/v1/cart/items
func (ctrl *CartController) AddItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid cart item")
		return
	}

	item := model.CartItem{
		ID:    req.ID,
		Name:  req.Name,
		Price: req.Price,
		Image: req.Image,
	}
	if req.Variant != nil {
		item.Variant = &model.Variant{ID: req.Variant.ID, Name: req.Variant.Name}
	}

	ctrl.cart.AddItem(item)

	log.Info("Item added to cart", map[string]interface{}{
		"product_id": req.ID,
		"variant_id": item.VariantID(),
	})

	c.JSON(http.StatusOK, ctrl.cart.State())
}

// UpdateItem sets the quantity of a line; zero or below removes it
// PUT /api/v1/cart/items/:id
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid cart update request", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid quantity")
		return
	}

	ctrl.cart.UpdateQuantity(id, req.VariantID, req.Quantity)

	log.Debug("Cart line updated", map[string]interface{}{
		"product_id": id,
		"variant_id": req.VariantID,
		"quantity":   req.Quantity,
	})

	c.JSON(http.StatusOK, ctrl.cart.State())
}

// RemoveItem deletes a line regardless of quantity
// DELETE /api/v1/cart/items/:id
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")
	variantID := c.Query("variantId")

	ctrl.cart.RemoveItem(id, variantID)

	log.Debug("Cart line removed", map[string]interface{}{
		"product_id": id,
		"variant_id": variantID,
	})

	c.JSON(http.StatusOK, ctrl.cart.State())
}

// ClearCart empties the cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	ctrl.cart.Clear()
	c.JSON(http.StatusOK, ctrl.cart.State())
}

// OpenCart marks the cart drawer as open
// POST /api/v1/cart/open
func (ctrl *CartController) OpenCart(c *gin.Context) {
	ctrl.cart.Open()
	c.JSON(http.StatusOK, ctrl.cart.State())
}

// CloseCart marks the cart drawer as closed
// POST /api/v1/cart/close
func (ctrl *CartController) CloseCart(c *gin.Context) {
	ctrl.cart.Close()
	c.JSON(http.StatusOK, ctrl.cart.State())
}
