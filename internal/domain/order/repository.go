package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// Repository defines persistence operations for orders
type Repository interface {
	shared.Repository[Order]
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
}

// StatusRepository defines persistence operations for order statuses
type StatusRepository interface {
	shared.Repository[OrderStatus]
	FindByName(ctx context.Context, name string) (*OrderStatus, error)
}
