package order

import (
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// OrderProduct is a line item snapshot. Product name, description and unit
// price are copied at order time so later catalog edits do not rewrite
// history.
type OrderProduct struct {
	shared.BaseEntity
	OrderID            uuid.UUID         `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName        string            `gorm:"type:varchar(255);not null" json:"product_name"`
	ProductDescription string            `gorm:"type:text" json:"product_description"`
	Quantity           int               `gorm:"not null" json:"quantity"`
	UnitPrice          valueobject.Money `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	LineTotal          valueobject.Money `gorm:"type:decimal(12,2);not null" json:"line_total"`
}

// TableName returns the table name for GORM
func (OrderProduct) TableName() string {
	return "order_products"
}

// NewOrderProduct snapshots a product into a line item
func NewOrderProduct(orderID uuid.UUID, product *catalog.Product, quantity int, unitPrice valueobject.Money) *OrderProduct {
	item := &OrderProduct{
		BaseEntity:         shared.NewBaseEntity(),
		OrderID:            orderID,
		ProductID:          product.ID,
		ProductName:        product.Name,
		ProductDescription: product.Description,
		Quantity:           quantity,
		UnitPrice:          unitPrice,
	}
	item.recalculate()
	return item
}

// UpdateQuantity changes the quantity and recomputes the line total
func (p *OrderProduct) UpdateQuantity(quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("VALIDATION_ERROR", "Quantity must be at least 1")
	}
	p.Quantity = quantity
	p.recalculate()
	p.Touch()
	return nil
}

// UpdateUnitPrice changes the unit price and recomputes the line total
func (p *OrderProduct) UpdateUnitPrice(unitPrice valueobject.Money) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Unit price cannot be negative")
	}
	p.UnitPrice = unitPrice
	p.recalculate()
	p.Touch()
	return nil
}

func (p *OrderProduct) recalculate() {
	p.LineTotal = p.UnitPrice.MultiplyByInt(int64(p.Quantity))
}
