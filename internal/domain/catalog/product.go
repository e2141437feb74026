package catalog

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

const (
	// MaxStockQuantity is the upper bound for a product's stock level
	MaxStockQuantity = 999999
)

var (
	maxProductPrice = decimal.RequireFromString("99999999.99")
	imageURLPattern = regexp.MustCompile(`^https?://\S+$`)
)

// Product is a sellable catalog item
type Product struct {
	shared.BaseEntity
	Name          string            `gorm:"type:varchar(255);not null" json:"name"`
	Description   string            `gorm:"type:text" json:"description"`
	Price         valueobject.Money `gorm:"type:decimal(10,2);not null" json:"price"`
	StockQuantity int               `gorm:"not null;default:0" json:"stock_quantity"`
	CategoryID    *uuid.UUID        `gorm:"type:uuid;index" json:"category_id"`
	Category      *Category         `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	ImageURL      string            `gorm:"type:varchar(500)" json:"image_url"`
	IsActive      bool              `gorm:"not null;default:true" json:"is_active"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new active product
func NewProduct(name, description string, price valueobject.Money, stockQuantity int, categoryID *uuid.UUID, imageURL string) (*Product, error) {
	name = strings.TrimSpace(name)
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := ValidatePrice(price); err != nil {
		return nil, err
	}
	if err := validateProductDescription(description); err != nil {
		return nil, err
	}
	if err := validateImageURL(imageURL); err != nil {
		return nil, err
	}
	if err := validateStockQuantity(stockQuantity); err != nil {
		return nil, err
	}
	return &Product{
		BaseEntity:    shared.NewBaseEntity(),
		Name:          name,
		Description:   description,
		Price:         price,
		StockQuantity: stockQuantity,
		CategoryID:    categoryID,
		ImageURL:      imageURL,
		IsActive:      true,
	}, nil
}

// UpdateName changes the product name
func (p *Product) UpdateName(name string) error {
	name = strings.TrimSpace(name)
	if err := validateProductName(name); err != nil {
		return err
	}
	p.Name = name
	p.Touch()
	return nil
}

// UpdateDescription changes the product description
func (p *Product) UpdateDescription(description string) error {
	if err := validateProductDescription(description); err != nil {
		return err
	}
	p.Description = description
	p.Touch()
	return nil
}

// UpdatePrice changes the product price
func (p *Product) UpdatePrice(price valueobject.Money) error {
	if err := ValidatePrice(price); err != nil {
		return err
	}
	p.Price = price
	p.Touch()
	return nil
}

// UpdateImageURL changes the product image URL
func (p *Product) UpdateImageURL(imageURL string) error {
	if err := validateImageURL(imageURL); err != nil {
		return err
	}
	p.ImageURL = imageURL
	p.Touch()
	return nil
}

// SetStock replaces the stock level
func (p *Product) SetStock(quantity int) error {
	if err := validateStockQuantity(quantity); err != nil {
		return err
	}
	p.StockQuantity = quantity
	p.Touch()
	return nil
}

// AdjustStock applies a relative stock change. A negative delta that would
// take the stock below zero fails with INSUFFICIENT_STOCK and leaves the
// level unchanged.
func (p *Product) AdjustStock(delta int) error {
	result := p.StockQuantity + delta
	if result < 0 {
		return shared.ErrInsufficientStock
	}
	if result > MaxStockQuantity {
		return shared.NewDomainErrorf("VALIDATION_ERROR", "Stock quantity cannot exceed %d", MaxStockQuantity)
	}
	p.StockQuantity = result
	p.Touch()
	return nil
}

// IsInStock reports whether the product is active and has at least the
// requested quantity available.
func (p *Product) IsInStock(quantity int) bool {
	return p.IsActive && quantity > 0 && p.StockQuantity >= quantity
}

// AssignCategory moves the product to a category (nil clears it)
func (p *Product) AssignCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.Touch()
}

// Activate makes the product purchasable
func (p *Product) Activate() {
	p.IsActive = true
	p.Touch()
}

// Deactivate hides the product from purchase
func (p *Product) Deactivate() {
	p.IsActive = false
	p.Touch()
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Product name is required")
	}
	if len(name) > 255 {
		return shared.NewDomainError("VALIDATION_ERROR", "Product name must be at most 255 characters")
	}
	return nil
}

func validateProductDescription(description string) error {
	if len(description) > 5000 {
		return shared.NewDomainError("VALIDATION_ERROR", "Product description must be at most 5000 characters")
	}
	return nil
}

// ValidatePrice enforces the price bounds: positive, at most 99,999,999.99,
// no more than two fraction digits.
func ValidatePrice(price valueobject.Money) error {
	amount := price.Amount()
	if !amount.IsPositive() {
		return shared.NewDomainError("VALIDATION_ERROR", "Price must be greater than zero")
	}
	if amount.GreaterThan(maxProductPrice) {
		return shared.NewDomainError("VALIDATION_ERROR", "Price must be at most 99999999.99")
	}
	if amount.Exponent() < -2 {
		return shared.NewDomainError("VALIDATION_ERROR", "Price can have at most two decimal places")
	}
	return nil
}

func validateImageURL(imageURL string) error {
	if imageURL == "" {
		return nil
	}
	if len(imageURL) > 500 {
		return shared.NewDomainError("VALIDATION_ERROR", "Image URL must be at most 500 characters")
	}
	if !imageURLPattern.MatchString(imageURL) {
		return shared.NewDomainError("VALIDATION_ERROR", "Image URL must be a valid HTTP or HTTPS URL")
	}
	return nil
}

func validateStockQuantity(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Stock quantity cannot be negative")
	}
	if quantity > MaxStockQuantity {
		return shared.NewDomainErrorf("VALIDATION_ERROR", "Stock quantity cannot exceed %d", MaxStockQuantity)
	}
	return nil
}
