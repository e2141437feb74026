package cart

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// Repository defines persistence operations for cart items
type Repository interface {
	shared.Repository[CartItem]
	FindBySession(ctx context.Context, sessionID string) ([]CartItem, error)
	FindBySessionAndProduct(ctx context.Context, sessionID string, productID uuid.UUID) (*CartItem, error)
	ClearSession(ctx context.Context, sessionID string) error
}
