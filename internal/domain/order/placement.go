package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// PlacementLine is one requested order line. A nil UnitPrice snapshots the
// product's current price.
type PlacementLine struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice *valueobject.Money
}

// Placer executes the order placement workflow atomically: create the
// order, snapshot every line, decrement stock, and optionally clear the
// session cart. Any failing line aborts the whole placement.
type Placer interface {
	Place(ctx context.Context, userID uuid.UUID, lines []PlacementLine, notes string, discount valueobject.Money, clearSessionID string) (*Order, error)
}
