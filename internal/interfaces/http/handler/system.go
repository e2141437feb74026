package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// SystemHandler handles health and liveness endpoints
type SystemHandler struct {
	BaseHandler
	db       *persistence.Database
	sessions auth.SessionStore
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database, sessions auth.SessionStore) *SystemHandler {
	return &SystemHandler{db: db, sessions: sessions}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health reports the status of the database and the session store
func (h *SystemHandler) Health(c *gin.Context) {
	checks := gin.H{
		"database": "ok",
		"sessions": "ok",
	}
	healthy := true

	if err := h.db.Ping(); err != nil {
		checks["database"] = "unreachable"
		healthy = false
	}
	if err := h.sessions.Ping(c.Request.Context()); err != nil {
		checks["sessions"] = "unreachable"
		healthy = false
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponseWithDetails(
			dto.ErrCodeInternal, "Service degraded", checks))
		return
	}
	h.Success(c, "Service healthy", checks)
}
