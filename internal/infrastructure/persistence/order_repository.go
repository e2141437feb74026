package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// OrderRepository is the GORM implementation of order.Repository
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{db: tx}
}

// FindByID finds an order by ID with status and line items preloaded
func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	err := r.db.WithContext(ctx).
		Preload("Status").
		Preload("Products").
		First(&o, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &o, nil
}

// FindByOrderNumber finds an order by its generated number
func (r *OrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	var o order.Order
	err := r.db.WithContext(ctx).
		Preload("Status").
		Preload("Products").
		First(&o, "order_number = ?", orderNumber).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &o, nil
}

// FindAll returns orders matching the filter
func (r *OrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.buildQuery(ctx, filter).Preload("Status")
	if include, ok := filter.Filters["include_products"]; ok {
		if in, _ := include.(bool); in {
			query = query.Preload("Products")
		}
	}
	query = applyFilter(query, filter, OrderSortFields, "created_at")
	if err := query.Find(&orders).Error; err != nil {
		return nil, translateError(err)
	}
	return orders, nil
}

// FindByUser returns a user's orders matching the filter
func (r *OrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	filter.Filters["user_id"] = userID
	return r.FindAll(ctx, filter)
}

// Count returns the number of orders matching the filter
func (r *OrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.buildQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// Save persists an order together with its line items
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Status", "User", "Products").Save(o).Error; err != nil {
			return translateError(err)
		}
		for i := range o.Products {
			o.Products[i].OrderID = o.ID
			if err := tx.Save(&o.Products[i]).Error; err != nil {
				return translateError(err)
			}
		}
		return nil
	})
}

// Create inserts a new order with its line items. Unlike Save it never
// updates existing rows, so a duplicate order number surfaces as
// shared.ErrAlreadyExists.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	for i := range o.Products {
		o.Products[i].OrderID = o.ID
	}
	err := r.db.WithContext(ctx).
		Omit("Status", "User").
		Create(o).Error
	return translateError(err)
}

// Delete removes an order and its line items
func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&order.OrderProduct{}).Error; err != nil {
			return translateError(err)
		}
		result := tx.Delete(&order.Order{}, "id = ?", id)
		if result.Error != nil {
			return translateError(result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *OrderRepository) buildQuery(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&order.Order{})
	if userID, ok := filter.Filters["user_id"]; ok {
		query = query.Where("user_id = ?", userID)
	}
	if statusID, ok := filter.Filters["status_id"]; ok {
		query = query.Where("status_id = ?", statusID)
	}
	if filter.Search != "" {
		query = query.Where("order_number ILIKE ?", "%"+filter.Search+"%")
	}
	return query
}
