package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// OrderStatusRepository is the GORM implementation of order.StatusRepository
type OrderStatusRepository struct {
	db *gorm.DB
}

// NewOrderStatusRepository creates a new order status repository
func NewOrderStatusRepository(db *gorm.DB) *OrderStatusRepository {
	return &OrderStatusRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *OrderStatusRepository) WithTx(tx *gorm.DB) *OrderStatusRepository {
	return &OrderStatusRepository{db: tx}
}

// FindByID finds a status by ID
func (r *OrderStatusRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.OrderStatus, error) {
	var status order.OrderStatus
	if err := r.db.WithContext(ctx).First(&status, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &status, nil
}

// FindByName finds a status by its uppercase name
func (r *OrderStatusRepository) FindByName(ctx context.Context, name string) (*order.OrderStatus, error) {
	var status order.OrderStatus
	if err := r.db.WithContext(ctx).First(&status, "name = ?", name).Error; err != nil {
		return nil, translateError(err)
	}
	return &status, nil
}

// FindAll returns statuses matching the filter, in display order by default
func (r *OrderStatusRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.OrderStatus, error) {
	var statuses []order.OrderStatus
	query := r.db.WithContext(ctx).Model(&order.OrderStatus{})
	if active, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", active)
	}
	if filter.OrderBy == "" {
		query = query.Order("sort_order ASC")
	} else {
		query = applyFilter(query, filter, OrderStatusSortFields, "sort_order")
	}
	if err := query.Find(&statuses).Error; err != nil {
		return nil, translateError(err)
	}
	return statuses, nil
}

// Count returns the number of statuses matching the filter
func (r *OrderStatusRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&order.OrderStatus{})
	if active, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", active)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// Save creates or updates a status
func (r *OrderStatusRepository) Save(ctx context.Context, status *order.OrderStatus) error {
	if err := r.db.WithContext(ctx).Save(status).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// Delete removes a status
func (r *OrderStatusRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&order.OrderStatus{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
