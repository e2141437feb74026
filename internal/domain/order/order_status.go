package order

import (
	"strings"

	"github.com/storefront/backend/internal/domain/shared"
)

// Well-known status names seeded at install time
const (
	StatusPending    = "PENDING"
	StatusConfirmed  = "CONFIRMED"
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
	StatusRefunded   = "REFUNDED"
)

// OrderStatus is a lookup row describing an order lifecycle state
type OrderStatus struct {
	shared.BaseEntity
	Name        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:varchar(255)" json:"description"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`
	SortOrder   int    `gorm:"not null;default:0" json:"sort_order"`
}

// TableName returns the table name for GORM
func (OrderStatus) TableName() string {
	return "order_statuses"
}

// NewOrderStatus creates a new active status
func NewOrderStatus(name, description string, sortOrder int) (*OrderStatus, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Status name is required")
	}
	if len(name) > 50 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Status name must be at most 50 characters")
	}
	return &OrderStatus{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
		IsActive:    true,
		SortOrder:   sortOrder,
	}, nil
}

// SeedStatus is one entry of the default status set
type SeedStatus struct {
	Name        string
	Description string
	SortOrder   int
}

// DefaultStatuses returns the canonical status set in display order
func DefaultStatuses() []SeedStatus {
	return []SeedStatus{
		{Name: StatusPending, Description: "Order received, awaiting confirmation", SortOrder: 1},
		{Name: StatusConfirmed, Description: "Order confirmed", SortOrder: 2},
		{Name: StatusProcessing, Description: "Order is being prepared", SortOrder: 3},
		{Name: StatusCompleted, Description: "Order fulfilled", SortOrder: 4},
		{Name: StatusCancelled, Description: "Order cancelled", SortOrder: 5},
		{Name: StatusRefunded, Description: "Order refunded", SortOrder: 6},
	}
}
