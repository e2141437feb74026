package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcart "github.com/storefront/backend/internal/application/cart"
)

// CartHandler handles session-scoped cart endpoints
type CartHandler struct {
	BaseHandler
	carts *appcart.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts *appcart.Service) *CartHandler {
	return &CartHandler{carts: carts}
}

// RegisterRoutes registers cart routes. Carts are keyed by a caller-chosen
// session ID, no account required.
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	carts := rg.Group("/cart/:session_id")
	{
		carts.GET("", h.Get)
		carts.DELETE("", h.Clear)
		carts.GET("/summary", h.Summary)
		carts.POST("/items", h.AddItem)
		carts.PUT("/items/:item_id", h.UpdateItem)
		carts.DELETE("/items/:item_id", h.RemoveItem)
	}
}

func parseItemID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Get returns the cart with its items and summary
func (h *CartHandler) Get(c *gin.Context) {
	resp, err := h.carts.Get(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Cart retrieved", resp)
}

// AddItem adds a product to the cart, merging quantities when the product
// is already there
func (h *CartHandler) AddItem(c *gin.Context) {
	var req appcart.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	item, err := h.carts.AddItem(c.Request.Context(), c.Param("session_id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Item added to cart", item)
}

// UpdateItem replaces a line's quantity
func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, ok := parseItemID(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID format")
		return
	}
	var req appcart.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	item, err := h.carts.UpdateItem(c.Request.Context(), c.Param("session_id"), itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Cart item updated", item)
}

// RemoveItem deletes a line from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, ok := parseItemID(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID format")
		return
	}
	if err := h.carts.RemoveItem(c.Request.Context(), c.Param("session_id"), itemID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Item removed from cart", nil)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.carts.Clear(c.Request.Context(), c.Param("session_id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Cart cleared", nil)
}

// Summary returns cart totals computed from current product prices
func (h *CartHandler) Summary(c *gin.Context) {
	summary, err := h.carts.Summary(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Cart summary retrieved", summary)
}
