package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/storefront/backend/internal/application/order"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// OrderStatusHandler handles the order status lookup table endpoints
type OrderStatusHandler struct {
	BaseHandler
	statuses *apporder.StatusService
}

// NewOrderStatusHandler creates a new OrderStatusHandler
func NewOrderStatusHandler(statuses *apporder.StatusService) *OrderStatusHandler {
	return &OrderStatusHandler{statuses: statuses}
}

// RegisterRoutes registers order status routes
func (h *OrderStatusHandler) RegisterRoutes(rg *gin.RouterGroup) {
	statuses := rg.Group("/order-statuses")
	{
		statuses.GET("", h.List)
		statuses.POST("", middleware.RequireAdmin(), h.Create)
		statuses.POST("/seed", middleware.RequireAdmin(), h.Seed)
	}
}

// List returns statuses in display order
func (h *OrderStatusHandler) List(c *gin.Context) {
	activeOnly := true
	if v := queryBool(c, "active_only"); v != nil {
		activeOnly = *v
	}
	statuses, err := h.statuses.List(c.Request.Context(), activeOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Order statuses retrieved", statuses)
}

// Create adds a new status
func (h *OrderStatusHandler) Create(c *gin.Context) {
	var req apporder.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	status, err := h.statuses.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Order status created", status)
}

// Seed inserts the default status set, skipping ones that already exist
func (h *OrderStatusHandler) Seed(c *gin.Context) {
	created, err := h.statuses.Seed(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Order statuses seeded", gin.H{"created": created})
}
