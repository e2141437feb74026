// Package validation cleans and checks inbound request payloads before they
// reach the domain layer. Each payload type has a Validate method taking a
// partial flag: with partial set, absent fields are skipped instead of
// required, which is how PATCH-style updates are expressed.
package validation

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

const (
	maxProductNameLength        = 255
	maxProductDescriptionLength = 5000
	maxImageURLLength           = 500
	maxStockQuantity            = 999999
	maxCartQuantity             = 999
	maxCategoryNameLength       = 100
	maxCategoryDescription      = 1000
	maxSessionIDLength          = 255
)

var (
	maxPrice            = decimal.RequireFromString("99999999.99")
	imageURLPattern     = regexp.MustCompile(`^https?://\S+$`)
	categoryNamePattern = regexp.MustCompile(`^[a-zA-Z0-9 \-_]+$`)
	sessionIDPattern    = regexp.MustCompile(`^[a-zA-Z0-9\-_]+$`)
)

func fieldError(field, message string) *shared.DomainError {
	return shared.NewDomainErrorf("VALIDATION_ERROR", "%s: %s", field, message)
}

// ProductPayload carries raw product fields from a create or update request.
// Nil pointers mean the field was absent.
type ProductPayload struct {
	Name          *string
	Description   *string
	Price         *string
	StockQuantity *int
	CategoryID    *string
	ImageURL      *string
	IsActive      *bool
}

// ProductFields is the cleaned result of validating a ProductPayload
type ProductFields struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	StockQuantity *int
	CategoryID    *uuid.UUID
	ClearCategory bool
	ImageURL      *string
	IsActive      *bool
}

// Validate cleans the payload. With partial=false, name and price are
// required and a missing stock quantity defaults to zero.
func (p ProductPayload) Validate(partial bool) (*ProductFields, error) {
	out := &ProductFields{}

	if p.Name == nil {
		if !partial {
			return nil, fieldError("name", "is required")
		}
	} else {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, fieldError("name", "cannot be empty")
		}
		if len(name) > maxProductNameLength {
			return nil, fieldError("name", "must be at most 255 characters")
		}
		out.Name = &name
	}

	if p.Price == nil {
		if !partial {
			return nil, fieldError("price", "is required")
		}
	} else {
		price, err := decimal.NewFromString(strings.TrimSpace(*p.Price))
		if err != nil {
			return nil, fieldError("price", "must be a decimal number")
		}
		if !price.IsPositive() {
			return nil, fieldError("price", "must be greater than zero")
		}
		if price.GreaterThan(maxPrice) {
			return nil, fieldError("price", "must be at most 99999999.99")
		}
		if price.Exponent() < -2 {
			return nil, fieldError("price", "can have at most two decimal places")
		}
		out.Price = &price
	}

	if p.Description != nil {
		if len(*p.Description) > maxProductDescriptionLength {
			return nil, fieldError("description", "must be at most 5000 characters")
		}
		out.Description = p.Description
	}

	if p.ImageURL != nil {
		url := strings.TrimSpace(*p.ImageURL)
		if url != "" {
			if len(url) > maxImageURLLength {
				return nil, fieldError("image_url", "must be at most 500 characters")
			}
			if !imageURLPattern.MatchString(url) {
				return nil, fieldError("image_url", "must be a valid HTTP or HTTPS URL")
			}
		}
		out.ImageURL = &url
	}

	if p.CategoryID != nil {
		raw := strings.TrimSpace(*p.CategoryID)
		if raw == "" {
			out.ClearCategory = true
		} else {
			id, err := uuid.Parse(raw)
			if err != nil {
				return nil, fieldError("category_id", "must be a valid UUID")
			}
			out.CategoryID = &id
		}
	}

	if p.StockQuantity == nil {
		if !partial {
			zero := 0
			out.StockQuantity = &zero
		}
	} else {
		qty := *p.StockQuantity
		if qty < 0 {
			return nil, fieldError("stock_quantity", "cannot be negative")
		}
		if qty > maxStockQuantity {
			return nil, fieldError("stock_quantity", "cannot exceed 999999")
		}
		out.StockQuantity = &qty
	}

	out.IsActive = p.IsActive
	return out, nil
}

// CartItemPayload carries raw cart line fields
type CartItemPayload struct {
	ProductID *string
	Quantity  *int
}

// CartItemFields is the cleaned result of validating a CartItemPayload
type CartItemFields struct {
	ProductID uuid.UUID
	Quantity  int
}

// Validate cleans the payload. With partial=true the product reference may
// be absent (quantity-only updates).
func (p CartItemPayload) Validate(partial bool) (*CartItemFields, error) {
	out := &CartItemFields{Quantity: 1}

	if p.ProductID == nil {
		if !partial {
			return nil, fieldError("product_id", "is required")
		}
	} else {
		id, err := uuid.Parse(strings.TrimSpace(*p.ProductID))
		if err != nil {
			return nil, fieldError("product_id", "must be a valid UUID")
		}
		out.ProductID = id
	}

	if p.Quantity == nil {
		if partial {
			return nil, fieldError("quantity", "is required")
		}
	} else {
		qty := *p.Quantity
		if qty < 1 {
			return nil, fieldError("quantity", "must be at least 1")
		}
		if qty > maxCartQuantity {
			return nil, fieldError("quantity", "cannot exceed 999")
		}
		out.Quantity = qty
	}

	return out, nil
}

// CategoryPayload carries raw category fields
type CategoryPayload struct {
	Name        *string
	Description *string
}

// CategoryFields is the cleaned result of validating a CategoryPayload
type CategoryFields struct {
	Name        *string
	Description *string
}

// Validate cleans the payload. With partial=false the name is required.
func (p CategoryPayload) Validate(partial bool) (*CategoryFields, error) {
	out := &CategoryFields{}

	if p.Name == nil {
		if !partial {
			return nil, fieldError("name", "is required")
		}
	} else {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, fieldError("name", "cannot be empty")
		}
		if len(name) > maxCategoryNameLength {
			return nil, fieldError("name", "must be at most 100 characters")
		}
		if !categoryNamePattern.MatchString(name) {
			return nil, fieldError("name", "can only contain letters, numbers, spaces, hyphens and underscores")
		}
		out.Name = &name
	}

	if p.Description != nil {
		if len(*p.Description) > maxCategoryDescription {
			return nil, fieldError("description", "must be at most 1000 characters")
		}
		out.Description = p.Description
	}

	return out, nil
}

// SessionID validates a caller-supplied cart session identifier
func SessionID(sessionID string) (string, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return "", fieldError("session_id", "is required")
	}
	if len(sessionID) > maxSessionIDLength {
		return "", fieldError("session_id", "must be at most 255 characters")
	}
	if !sessionIDPattern.MatchString(sessionID) {
		return "", fieldError("session_id", "can only contain letters, numbers, hyphens and underscores")
	}
	return sessionID, nil
}

// Pagination validates page/per_page query values against a ceiling.
// Zero values fall back to page 1 and the ceiling itself.
func Pagination(page, perPage, ceiling int) (int, int, error) {
	if ceiling < 1 {
		ceiling = 100
	}
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return 0, 0, fieldError("page", "must be at least 1")
	}
	if perPage == 0 {
		perPage = ceiling
	}
	if perPage < 1 || perPage > ceiling {
		return 0, 0, shared.NewDomainErrorf("VALIDATION_ERROR", "per_page: must be between 1 and %d", ceiling)
	}
	return page, perPage, nil
}
