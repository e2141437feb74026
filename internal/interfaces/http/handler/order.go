package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/storefront/backend/internal/application/order"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	orders *apporder.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *apporder.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// RegisterRoutes registers order routes. Everything requires authentication;
// status changes additionally require the admin role.
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders", middleware.RequireAuthenticated())
	{
		orders.POST("", h.Place)
		orders.POST("/from-cart", h.PlaceFromCart)
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.PUT("/:id/status", middleware.RequireAdmin(), h.UpdateStatus)
	}
}

// Place creates an order from an explicit product list
func (h *OrderHandler) Place(c *gin.Context) {
	var req apporder.PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	order, err := h.orders.Place(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Order placed", order)
}

// PlaceFromCart creates an order from the session's cart and empties it
func (h *OrderHandler) PlaceFromCart(c *gin.Context) {
	var req apporder.PlaceFromCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	order, err := h.orders.PlaceFromCart(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Order placed", order)
}

// Get returns an order visible to the caller
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}
	includeProducts := true
	if v := queryBool(c, "include_products"); v != nil {
		includeProducts = *v
	}
	order, err := h.orders.Get(c.Request.Context(), middleware.GetPrincipal(c), id, includeProducts)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Order retrieved", order)
}

// List returns the caller's orders, or all orders for admins
func (h *OrderHandler) List(c *gin.Context) {
	query := apporder.ListQuery{
		Page:            queryInt(c, "page"),
		PerPage:         queryInt(c, "per_page"),
		StatusID:        c.Query("status_id"),
		IncludeProducts: queryFlag(c, "include_products"),
		SortBy:          c.Query("sort_by"),
		SortDir:         c.Query("sort_dir"),
	}
	page, err := h.orders.List(c.Request.Context(), middleware.GetPrincipal(c), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Orders retrieved", page)
}

// UpdateStatus moves an order to another status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}
	var req apporder.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	order, err := h.orders.UpdateStatus(c.Request.Context(), middleware.GetPrincipal(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Order status updated", order)
}
