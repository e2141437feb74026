package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/validation"
)

// Service handles session-scoped cart operations
type Service struct {
	items    cart.Repository
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewService creates a new cart service
func NewService(items cart.Repository, products catalog.ProductRepository, logger *zap.Logger) *Service {
	return &Service{
		items:    items,
		products: products,
		logger:   logger,
	}
}

// Get returns a session's cart with items and a fresh summary
func (s *Service) Get(ctx context.Context, sessionID string) (*CartResponse, error) {
	sessionID, err := validation.SessionID(sessionID)
	if err != nil {
		return nil, err
	}
	items, err := s.items.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(sessionID, items), nil
}

// AddItem puts a product into the cart; adding a product already in the
// cart merges quantities on the existing line. The resulting line quantity
// must be covered by available stock.
func (s *Service) AddItem(ctx context.Context, sessionID string, req AddItemRequest) (*ItemResponse, error) {
	sessionID, err := validation.SessionID(sessionID)
	if err != nil {
		return nil, err
	}
	fields, err := validation.CartItemPayload{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}.Validate(false)
	if err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, fields.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, shared.ErrProductInactive
	}

	existing, err := s.items.FindBySessionAndProduct(ctx, sessionID, fields.ProductID)
	switch {
	case err == nil:
		merged := existing.Quantity + fields.Quantity
		if merged > cart.MaxQuantity {
			merged = cart.MaxQuantity
		}
		if product.StockQuantity < merged {
			return nil, insufficientStock(product)
		}
		if err := existing.Merge(fields.Quantity); err != nil {
			return nil, err
		}
		if err := s.items.Save(ctx, existing); err != nil {
			return nil, err
		}
		existing.Product = product
		return ToItemResponse(existing), nil
	case errors.Is(err, shared.ErrNotFound):
		if product.StockQuantity < fields.Quantity {
			return nil, insufficientStock(product)
		}
		item, err := cart.NewCartItem(sessionID, fields.ProductID, fields.Quantity)
		if err != nil {
			return nil, err
		}
		if err := s.items.Save(ctx, item); err != nil {
			// Lost a race with a concurrent add for the same product; merge
			// into the row that won.
			if errors.Is(err, shared.ErrAlreadyExists) {
				return s.AddItem(ctx, sessionID, req)
			}
			return nil, err
		}
		item.Product = product
		return ToItemResponse(item), nil
	default:
		return nil, err
	}
}

// UpdateItem replaces a line's quantity. The line must belong to the session
// and the new quantity must be covered by available stock.
func (s *Service) UpdateItem(ctx context.Context, sessionID string, itemID uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	sessionID, err := validation.SessionID(sessionID)
	if err != nil {
		return nil, err
	}
	fields, err := validation.CartItemPayload{Quantity: req.Quantity}.Validate(true)
	if err != nil {
		return nil, err
	}

	item, err := s.findSessionItem(ctx, sessionID, itemID)
	if err != nil {
		return nil, err
	}
	product, err := s.products.FindByID(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if product.StockQuantity < fields.Quantity {
		return nil, insufficientStock(product)
	}
	if err := item.SetQuantity(fields.Quantity); err != nil {
		return nil, err
	}
	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}
	item.Product = product
	return ToItemResponse(item), nil
}

// RemoveItem deletes a line from the session's cart
func (s *Service) RemoveItem(ctx context.Context, sessionID string, itemID uuid.UUID) error {
	sessionID, err := validation.SessionID(sessionID)
	if err != nil {
		return err
	}
	item, err := s.findSessionItem(ctx, sessionID, itemID)
	if err != nil {
		return err
	}
	return s.items.Delete(ctx, item.ID)
}

// Clear empties the session's cart
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	sessionID, err := validation.SessionID(sessionID)
	if err != nil {
		return err
	}
	return s.items.ClearSession(ctx, sessionID)
}

// Summary returns the aggregate view of a session's cart
func (s *Service) Summary(ctx context.Context, sessionID string) (*SummaryResponse, error) {
	sessionID, err := validation.SessionID(sessionID)
	if err != nil {
		return nil, err
	}
	items, err := s.items.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	summary := buildSummary(sessionID, items)
	return &summary, nil
}

func insufficientStock(product *catalog.Product) error {
	return shared.NewDomainErrorf("INSUFFICIENT_STOCK",
		"Insufficient stock for %s. Available: %d", product.Name, product.StockQuantity)
}

// findSessionItem loads a line and hides lines of other sessions behind
// NOT_FOUND.
func (s *Service) findSessionItem(ctx context.Context, sessionID string, itemID uuid.UUID) (*cart.CartItem, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.SessionID != sessionID {
		return nil, shared.ErrNotFound
	}
	return item, nil
}

func (s *Service) buildResponse(sessionID string, items []cart.CartItem) *CartResponse {
	resp := &CartResponse{
		SessionID: sessionID,
		Items:     make([]*ItemResponse, 0, len(items)),
		Summary:   buildSummary(sessionID, items),
	}
	for i := range items {
		resp.Items = append(resp.Items, ToItemResponse(&items[i]))
	}
	return resp
}

func buildSummary(sessionID string, items []cart.CartItem) SummaryResponse {
	total := valueobject.ZeroUSD()
	totalItems := 0
	for i := range items {
		totalItems += items[i].Quantity
		if items[i].Product != nil {
			line := items[i].Product.Price.MultiplyByInt(int64(items[i].Quantity))
			total = total.MustAdd(line)
		}
	}
	return SummaryResponse{
		SessionID:      sessionID,
		TotalAmount:    total.StringFixed(2),
		TotalItems:     totalItems,
		UniqueProducts: len(items),
	}
}
