package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	BaseHandler
	categories *appcatalog.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categories *appcatalog.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// RegisterRoutes registers category routes. Reads are public, writes are
// admin only.
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	{
		categories.GET("", h.List)
		categories.GET("/:id", h.Get)
		categories.POST("", middleware.RequireAdmin(), h.Create)
		categories.PUT("/:id", middleware.RequireAdmin(), h.Update)
		categories.DELETE("/:id", middleware.RequireAdmin(), h.Delete)
	}
}

// Create adds a new category
func (h *CategoryHandler) Create(c *gin.Context) {
	var req appcatalog.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	category, err := h.categories.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Category created", category)
}

// Get returns a category, optionally with its products
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid category ID format")
		return
	}
	category, err := h.categories.Get(c.Request.Context(), id, queryFlag(c, "include_products"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Category retrieved", category)
}

// List returns categories with product counts
func (h *CategoryHandler) List(c *gin.Context) {
	query := appcatalog.CategoryListQuery{
		Page:            queryInt(c, "page"),
		PerPage:         queryInt(c, "per_page"),
		Search:          c.Query("search"),
		SortBy:          c.Query("sort_by"),
		SortDir:         c.Query("sort_dir"),
		IncludeProducts: queryFlag(c, "include_products"),
	}
	page, err := h.categories.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Categories retrieved", page)
}

// Update renames a category or changes its description
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid category ID format")
		return
	}
	var req appcatalog.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	category, err := h.categories.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Category updated", category)
}

// Delete removes a category. A category with products is rejected unless
// force=true, which detaches the products first.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid category ID format")
		return
	}
	if err := h.categories.Delete(c.Request.Context(), id, queryFlag(c, "force")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Category deleted", nil)
}
