package order

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// OrderNumberLength is the fixed length of a generated order number,
// "ORD-" + 8 date digits + "-" + 8 hex digits.
const OrderNumberLength = 21

// Order is a placed order with snapshotted line items
type Order struct {
	shared.BaseEntity
	OrderNumber    string            `gorm:"type:varchar(21);uniqueIndex;not null" json:"order_number"`
	UserID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	User           *identity.User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	StatusID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"status_id"`
	Status         *OrderStatus      `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	Subtotal       valueobject.Money `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	DiscountAmount valueobject.Money `gorm:"type:decimal(12,2);not null" json:"discount_amount"`
	TotalAmount    valueobject.Money `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Notes          string            `gorm:"type:text" json:"notes"`
	Products       []OrderProduct    `gorm:"foreignKey:OrderID" json:"products,omitempty"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates an empty order in the given status
func NewOrder(userID, statusID uuid.UUID, notes string) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "User ID is required")
	}
	if statusID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Status ID is required")
	}
	number, err := GenerateOrderNumber()
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate order number")
	}
	return &Order{
		BaseEntity:     shared.NewBaseEntity(),
		OrderNumber:    number,
		UserID:         userID,
		StatusID:       statusID,
		Subtotal:       valueobject.ZeroUSD(),
		DiscountAmount: valueobject.ZeroUSD(),
		TotalAmount:    valueobject.ZeroUSD(),
		Notes:          notes,
	}, nil
}

// GenerateOrderNumber builds a number of the form ORD-YYYYMMDD-XXXXXXXX
// where the suffix is 8 uppercase hex digits.
func GenerateOrderNumber() (string, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	suffix := strings.ToUpper(hex.EncodeToString(buf[:]))
	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102"), suffix), nil
}

// RegenerateNumber assigns a fresh order number; used when an insert hits
// the unique index.
func (o *Order) RegenerateNumber() error {
	number, err := GenerateOrderNumber()
	if err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to generate order number")
	}
	o.OrderNumber = number
	return nil
}

// AddProduct appends a snapshotted line item and recalculates totals.
// A nil unitPrice snapshots the product's current price.
func (o *Order) AddProduct(product *catalog.Product, quantity int, unitPrice *valueobject.Money) error {
	if product == nil {
		return shared.ErrNotFound
	}
	if quantity < 1 {
		return shared.NewDomainError("VALIDATION_ERROR", "Quantity must be at least 1")
	}
	price := product.Price
	if unitPrice != nil {
		price = *unitPrice
	}
	item := NewOrderProduct(o.ID, product, quantity, price)
	o.Products = append(o.Products, *item)
	o.CalculateTotal()
	return nil
}

// ApplyDiscount sets the discount amount and recalculates the total
func (o *Order) ApplyDiscount(discount valueobject.Money) error {
	if discount.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Discount amount cannot be negative")
	}
	o.DiscountAmount = discount
	o.CalculateTotal()
	return nil
}

// CalculateTotal recomputes subtotal and total from the line items.
// Idempotent: calling it repeatedly does not change the result.
func (o *Order) CalculateTotal() {
	subtotal := valueobject.ZeroUSD()
	for i := range o.Products {
		subtotal = subtotal.MustAdd(o.Products[i].LineTotal)
	}
	o.Subtotal = subtotal
	o.TotalAmount = subtotal.MustSubtract(o.DiscountAmount)
	o.Touch()
}

// ChangeStatus moves the order to another status
func (o *Order) ChangeStatus(status *OrderStatus) error {
	if status == nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid status")
	}
	if !status.IsActive {
		return shared.NewDomainError("VALIDATION_ERROR", "Cannot set order to inactive status")
	}
	o.StatusID = status.ID
	o.Status = status
	o.Touch()
	return nil
}

// BelongsTo reports whether the order is owned by the given user
func (o *Order) BelongsTo(userID uuid.UUID) bool {
	return o.UserID == userID
}
