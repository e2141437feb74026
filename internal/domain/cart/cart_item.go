package cart

import (
	"regexp"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

const (
	// MaxQuantity is the per-line quantity ceiling
	MaxQuantity = 999
	// MaxSessionIDLength bounds the caller-supplied session identifier
	MaxSessionIDLength = 255
)

var sessionIDPattern = regexp.MustCompile(`^[a-zA-Z0-9\-_]+$`)

// CartItem is one product line in a session-scoped cart.
// (session_id, product_id) is unique; adding the same product again merges
// into the existing line.
type CartItem struct {
	shared.BaseEntity
	SessionID string           `gorm:"type:varchar(255);not null;uniqueIndex:idx_cart_session_product" json:"session_id"`
	ProductID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_cart_session_product" json:"product_id"`
	Product   *catalog.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int              `gorm:"not null" json:"quantity"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// NewCartItem creates a new cart line
func NewCartItem(sessionID string, productID uuid.UUID, quantity int) (*CartItem, error) {
	if err := ValidateSessionID(sessionID); err != nil {
		return nil, err
	}
	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product ID is required")
	}
	return &CartItem{
		BaseEntity: shared.NewBaseEntity(),
		SessionID:  sessionID,
		ProductID:  productID,
		Quantity:   quantity,
	}, nil
}

// Merge adds another quantity into this line, keeping the total within the
// per-line ceiling.
func (i *CartItem) Merge(quantity int) error {
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}
	total := i.Quantity + quantity
	if total > MaxQuantity {
		total = MaxQuantity
	}
	i.Quantity = total
	i.Touch()
	return nil
}

// SetQuantity replaces the line quantity
func (i *CartItem) SetQuantity(quantity int) error {
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}
	i.Quantity = quantity
	i.Touch()
	return nil
}

// ValidateQuantity checks the per-line quantity bounds
func ValidateQuantity(quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("VALIDATION_ERROR", "Quantity must be at least 1")
	}
	if quantity > MaxQuantity {
		return shared.NewDomainErrorf("VALIDATION_ERROR", "Quantity cannot exceed %d", MaxQuantity)
	}
	return nil
}

// ValidateSessionID checks the session identifier shape
func ValidateSessionID(sessionID string) error {
	if sessionID == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Session ID is required")
	}
	if len(sessionID) > MaxSessionIDLength {
		return shared.NewDomainErrorf("VALIDATION_ERROR", "Session ID must be at most %d characters", MaxSessionIDLength)
	}
	if !sessionIDPattern.MatchString(sessionID) {
		return shared.NewDomainError("VALIDATION_ERROR", "Session ID can only contain letters, numbers, hyphens and underscores")
	}
	return nil
}
