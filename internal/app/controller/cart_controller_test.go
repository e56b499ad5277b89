package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-gateway/internal/app/store"
	"storefront-gateway/internal/storage"
)

func setupCartTest(t *testing.T) (*gin.Engine, *store.CartStore) {
	gin.SetMode(gin.TestMode)

	st, err := storage.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	cart := store.NewCartStore(st)
	ctrl := NewCartController(cart)

	router := gin.New()
	router.GET("/cart", ctrl.GetCart)
	router.POST("/cart/items", ctrl.AddItem)
	router.PUT("/cart/items/:id", ctrl.UpdateItem)
	router.DELETE("/cart/items/:id", ctrl.RemoveItem)
	router.DELETE("/cart", ctrl.ClearCart)
	router.POST("/cart/open", ctrl.OpenCart)
	router.POST("/cart/close", ctrl.CloseCart)
	return router, cart
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeInto(w *httptest.ResponseRecorder, into interface{}) error {
	return json.Unmarshal(w.Body.Bytes(), into)
}

func decodeCartState(t *testing.T, w *httptest.ResponseRecorder) store.CartState {
	var state store.CartState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	return state
}

func TestCartController_GetCart_Empty(t *testing.T) {
	router, _ := setupCartTest(t)

	w := doJSON(t, router, "GET", "/cart", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	state := decodeCartState(t, w)
	assert.Empty(t, state.Items)
	assert.Zero(t, state.TotalItems)
	assert.False(t, state.IsOpen)
}

func TestCartController_AddItem(t *testing.T) {
	router, _ := setupCartTest(t)

	w := doJSON(t, router, "POST", "/cart/items", gin.H{
		"id":    "UHJvZHVjdDox",
		"name":  "Monospace Tee",
		"price": 20.5,
		"variant": gin.H{
			"id":   "VmFyaWFudDox",
			"name": "M",
		},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	state := decodeCartState(t, w)
	require.Len(t, state.Items, 1)
	assert.Equal(t, 1, state.Items[0].Quantity)
	assert.Equal(t, "VmFyaWFudDox", state.Items[0].Variant.ID)
	assert.InDelta(t, 20.5, state.TotalPrice, 0.001)
}

func TestCartController_AddItem_IncrementsExistingLine(t *testing.T) {
	router, _ := setupCartTest(t)

	item := gin.H{"id": "UHJvZHVjdDox", "name": "Monospace Tee", "price": 20.5}
	doJSON(t, router, "POST", "/cart/items", item)
	w := doJSON(t, router, "POST", "/cart/items", item)

	state := decodeCartState(t, w)
	require.Len(t, state.Items, 1)
	assert.Equal(t, 2, state.Items[0].Quantity)
	assert.Equal(t, 2, state.TotalItems)
}

func TestCartController_AddItem_InvalidBody(t *testing.T) {
	router, _ := setupCartTest(t)

	w := doJSON(t, router, "POST", "/cart/items", gin.H{"price": 20.5})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_INVALID_INPUT")
}

func TestCartController_UpdateItem(t *testing.T) {
	router, _ := setupCartTest(t)
	doJSON(t, router, "POST", "/cart/items", gin.H{"id": "UHJvZHVjdDox", "name": "Monospace Tee", "price": 20.5})

	w := doJSON(t, router, "PUT", "/cart/items/UHJvZHVjdDox", gin.H{"quantity": 5})

	state := decodeCartState(t, w)
	require.Len(t, state.Items, 1)
	assert.Equal(t, 5, state.Items[0].Quantity)
}

func TestCartController_UpdateItem_ZeroRemovesLine(t *testing.T) {
	router, _ := setupCartTest(t)
	doJSON(t, router, "POST", "/cart/items", gin.H{"id": "UHJvZHVjdDox", "name": "Monospace Tee", "price": 20.5})

	w := doJSON(t, router, "PUT", "/cart/items/UHJvZHVjdDox", gin.H{"quantity": 0})

	state := decodeCartState(t, w)
	assert.Empty(t, state.Items)
}

func TestCartController_RemoveItem_WithVariant(t *testing.T) {
	router, _ := setupCartTest(t)
	doJSON(t, router, "POST", "/cart/items", gin.H{
		"id": "UHJvZHVjdDox", "name": "Monospace Tee", "price": 20.5,
		"variant": gin.H{"id": "VmFyaWFudDox", "name": "M"},
	})
	doJSON(t, router, "POST", "/cart/items", gin.H{
		"id": "UHJvZHVjdDox", "name": "Monospace Tee", "price": 20.5,
		"variant": gin.H{"id": "VmFyaWFudDoy", "name": "L"},
	})

	w := doJSON(t, router, "DELETE", "/cart/items/UHJvZHVjdDox?variantId=VmFyaWFudDox", nil)

	state := decodeCartState(t, w)
	require.Len(t, state.Items, 1)
	assert.Equal(t, "VmFyaWFudDoy", state.Items[0].Variant.ID)
}

func TestCartController_ClearCart(t *testing.T) {
	router, cart := setupCartTest(t)
	doJSON(t, router, "POST", "/cart/items", gin.H{"id": "UHJvZHVjdDox", "name": "Monospace Tee", "price": 20.5})
	cart.Open()

	w := doJSON(t, router, "DELETE", "/cart", nil)

	state := decodeCartState(t, w)
	assert.Empty(t, state.Items)
	// Clearing contents does not close the drawer
	assert.True(t, state.IsOpen)
}

func TestCartController_OpenClose(t *testing.T) {
	router, _ := setupCartTest(t)

	w := doJSON(t, router, "POST", "/cart/open", nil)
	assert.True(t, decodeCartState(t, w).IsOpen)

	w = doJSON(t, router, "POST", "/cart/close", nil)
	assert.False(t, decodeCartState(t, w).IsOpen)
}
