package handler

import (
	"github.com/gin-gonic/gin"

	appidentity "github.com/storefront/backend/internal/application/identity"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// UserHandler handles account management endpoints
type UserHandler struct {
	BaseHandler
	users *appidentity.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users *appidentity.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRoutes registers user routes. All routes require authentication;
// access to another account additionally requires the admin role, enforced
// by the service.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users", middleware.RequireAuthenticated())
	{
		users.GET("/profile", h.GetProfile)
		users.PUT("/profile", h.UpdateProfile)
		users.GET("/:id", h.Get)
		users.PUT("/:id", h.Update)
		users.DELETE("/:id", h.Deactivate)
		users.POST("/:id/change-password", h.ChangePassword)
	}
}

// Get returns an account by ID
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID format")
		return
	}
	user, err := h.users.Get(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "User retrieved", user)
}

// Update changes an account's profile fields
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID format")
		return
	}
	var req appidentity.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	user, err := h.users.UpdateProfile(c.Request.Context(), middleware.GetPrincipal(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Profile updated", user)
}

// Deactivate soft-deletes an account
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID format")
		return
	}
	if err := h.users.Deactivate(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Account deactivated", nil)
}

// ChangePassword changes an account's password after verifying the current one
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID format")
		return
	}
	var req appidentity.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	if err := h.users.ChangePassword(c.Request.Context(), middleware.GetPrincipal(c), id, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Password changed", nil)
}

// GetProfile returns the caller's own account
func (h *UserHandler) GetProfile(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	user, err := h.users.Get(c.Request.Context(), principal, principal.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "User retrieved", user)
}

// UpdateProfile updates the caller's own account
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	var req appidentity.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	user, err := h.users.UpdateProfile(c.Request.Context(), principal, principal.UserID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Profile updated", user)
}
