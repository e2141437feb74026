package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// orderNumberRetries bounds retries when a generated order number collides
// with the unique index.
const orderNumberRetries = 3

// OrderPlacer implements order.Placer on top of a single GORM transaction
type OrderPlacer struct {
	db       *Database
	statuses *OrderStatusRepository
	logger   *zap.Logger
}

// NewOrderPlacer creates a new order placer
func NewOrderPlacer(db *Database, statuses *OrderStatusRepository, logger *zap.Logger) *OrderPlacer {
	return &OrderPlacer{
		db:       db,
		statuses: statuses,
		logger:   logger,
	}
}

// Place runs the placement workflow. Everything happens in one transaction:
// per line the product is loaded, checked for availability, its stock is
// conditionally decremented, and a snapshot line is appended. The commit is
// all-or-nothing; the session cart is cleared inside the same transaction.
func (p *OrderPlacer) Place(ctx context.Context, userID uuid.UUID, lines []order.PlacementLine, notes string, discount valueobject.Money, clearSessionID string) (*order.Order, error) {
	if len(lines) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "At least one product is required")
	}
	if discount.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Discount amount cannot be negative")
	}

	pending, err := p.statuses.FindByName(ctx, order.StatusPending)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Order status system not initialized")
		}
		return nil, err
	}

	var placed *order.Order
	for attempt := 0; attempt < orderNumberRetries; attempt++ {
		placed, err = p.placeOnce(ctx, userID, pending.ID, lines, notes, discount, clearSessionID)
		if err == nil {
			return placed, nil
		}
		if !errors.Is(err, shared.ErrAlreadyExists) {
			return nil, err
		}
		p.logger.Warn("order number collision, retrying", zap.Int("attempt", attempt+1))
	}
	return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to allocate a unique order number")
}

func (p *OrderPlacer) placeOnce(ctx context.Context, userID, statusID uuid.UUID, lines []order.PlacementLine, notes string, discount valueobject.Money, clearSessionID string) (*order.Order, error) {
	o, err := order.NewOrder(userID, statusID, notes)
	if err != nil {
		return nil, err
	}

	err = p.db.Transaction(func(tx *gorm.DB) error {
		products := NewProductRepository(tx)
		orders := NewOrderRepository(tx)
		carts := NewCartItemRepository(tx)

		for _, line := range lines {
			product, err := products.FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewDomainErrorf("NOT_FOUND", "Product %s not found", line.ProductID)
				}
				return err
			}
			if !product.IsActive {
				return shared.NewDomainErrorf("PRODUCT_INACTIVE", "Product %s is not available", product.Name)
			}
			if err := products.DecrementStock(ctx, product.ID, line.Quantity); err != nil {
				if errors.Is(err, shared.ErrInsufficientStock) {
					return shared.NewDomainErrorf("INSUFFICIENT_STOCK",
						"Insufficient stock for %s. Available: %d", product.Name, product.StockQuantity)
				}
				return err
			}
			if err := o.AddProduct(product, line.Quantity, line.UnitPrice); err != nil {
				return err
			}
		}

		if err := o.ApplyDiscount(discount); err != nil {
			return err
		}
		if err := orders.Create(ctx, o); err != nil {
			return err
		}
		if clearSessionID != "" {
			if err := carts.ClearSession(ctx, clearSessionID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// reload with status and line items attached
	created, err := NewOrderRepository(p.db.DB).FindByID(ctx, o.ID)
	if err != nil {
		return nil, err
	}

	p.logger.Info("order placed",
		zap.String("order_id", created.ID.String()),
		zap.String("order_number", created.OrderNumber),
		zap.String("user_id", userID.String()),
		zap.Int("lines", len(created.Products)),
		zap.String("total", created.TotalAmount.StringFixed(2)),
	)
	return created, nil
}
