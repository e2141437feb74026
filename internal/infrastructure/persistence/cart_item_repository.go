package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
)

// CartItemRepository is the GORM implementation of cart.Repository
type CartItemRepository struct {
	db *gorm.DB
}

// NewCartItemRepository creates a new cart item repository
func NewCartItemRepository(db *gorm.DB) *CartItemRepository {
	return &CartItemRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *CartItemRepository) WithTx(tx *gorm.DB) *CartItemRepository {
	return &CartItemRepository{db: tx}
}

// FindByID finds a cart item by ID with its product preloaded
func (r *CartItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.CartItem, error) {
	var item cart.CartItem
	if err := r.db.WithContext(ctx).Preload("Product").First(&item, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &item, nil
}

// FindAll returns cart items matching the filter
func (r *CartItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]cart.CartItem, error) {
	var items []cart.CartItem
	query := r.db.WithContext(ctx).Model(&cart.CartItem{}).Preload("Product")
	if sessionID, ok := filter.Filters["session_id"]; ok {
		query = query.Where("session_id = ?", sessionID)
	}
	query = applyFilter(query, filter, CartItemSortFields, "created_at")
	if err := query.Find(&items).Error; err != nil {
		return nil, translateError(err)
	}
	return items, nil
}

// Count returns the number of cart items matching the filter
func (r *CartItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&cart.CartItem{})
	if sessionID, ok := filter.Filters["session_id"]; ok {
		query = query.Where("session_id = ?", sessionID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// Save creates or updates a cart item
func (r *CartItemRepository) Save(ctx context.Context, item *cart.CartItem) error {
	if err := r.db.WithContext(ctx).Omit("Product").Save(item).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// Delete removes a cart item
func (r *CartItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&cart.CartItem{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindBySession returns all lines in a session's cart, oldest first,
// products preloaded
func (r *CartItemRepository) FindBySession(ctx context.Context, sessionID string) ([]cart.CartItem, error) {
	var items []cart.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, translateError(err)
	}
	return items, nil
}

// FindBySessionAndProduct returns the line for a product in a session's cart
func (r *CartItemRepository) FindBySessionAndProduct(ctx context.Context, sessionID string, productID uuid.UUID) (*cart.CartItem, error) {
	var item cart.CartItem
	err := r.db.WithContext(ctx).
		First(&item, "session_id = ? AND product_id = ?", sessionID, productID).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &item, nil
}

// ClearSession removes every line in a session's cart
func (r *CartItemRepository) ClearSession(ctx context.Context, sessionID string) error {
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&cart.CartItem{}).Error
	return translateError(err)
}
