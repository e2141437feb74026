package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/catalog"
)

// CreateProductRequest is the payload for product creation and updates.
// Pointer fields distinguish absent from zero-valued.
type ProductRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Price         *string `json:"price"`
	StockQuantity *int    `json:"stock_quantity"`
	CategoryID    *string `json:"category_id"`
	ImageURL      *string `json:"image_url"`
	IsActive      *bool   `json:"is_active"`
}

// ProductListQuery carries product listing filters
type ProductListQuery struct {
	Page       int
	PerPage    int
	Search     string
	CategoryID string
	Active     *bool
	InStock    *bool
	MinPrice   string
	MaxPrice   string
	SortBy     string
	SortDir    string
}

// ProductResponse is the public view of a product
type ProductResponse struct {
	ID            uuid.UUID         `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Price         string            `json:"price"`
	StockQuantity int               `json:"stock_quantity"`
	CategoryID    *uuid.UUID        `json:"category_id"`
	Category      *CategoryResponse `json:"category,omitempty"`
	ImageURL      string            `json:"image_url"`
	IsActive      bool              `json:"is_active"`
	InStock       bool              `json:"in_stock"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// CategoryRequest is the payload for category creation and updates
type CategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CategoryListQuery carries category listing options
type CategoryListQuery struct {
	Page            int
	PerPage         int
	Search          string
	SortBy          string
	SortDir         string
	IncludeProducts bool
}

// CategoryResponse is the public view of a category
type CategoryResponse struct {
	ID           uuid.UUID          `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	ProductCount *int64             `json:"product_count,omitempty"`
	Products     []*ProductResponse `json:"products,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// ToProductResponse maps a domain product to its public view
func ToProductResponse(product *catalog.Product) *ProductResponse {
	resp := &ProductResponse{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price.StringFixed(2),
		StockQuantity: product.StockQuantity,
		CategoryID:    product.CategoryID,
		ImageURL:      product.ImageURL,
		IsActive:      product.IsActive,
		InStock:       product.IsInStock(1),
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
	if product.Category != nil {
		resp.Category = ToCategoryResponse(product.Category)
	}
	return resp
}

// ToCategoryResponse maps a domain category to its public view
func ToCategoryResponse(category *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}
