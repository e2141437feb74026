package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	shared.Repository[Product]
	// DecrementStock atomically subtracts quantity from the product's stock,
	// failing with shared.ErrInsufficientStock when the remaining stock is
	// lower than the requested quantity.
	DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) error
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	shared.Repository[Category]
	FindByName(ctx context.Context, name string) (*Category, error)
	// DetachProducts clears the category reference on all products in the
	// category. Used by force delete.
	DetachProducts(ctx context.Context, categoryID uuid.UUID) error
	ProductCounts(ctx context.Context, categoryIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}
