package order

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/validation"
)

const maxOrderPageSize = 100

// Service handles order placement and retrieval
type Service struct {
	orders   order.Repository
	statuses order.StatusRepository
	placer   order.Placer
	carts    cart.Repository
	logger   *zap.Logger
}

// NewService creates a new order service
func NewService(orders order.Repository, statuses order.StatusRepository, placer order.Placer, carts cart.Repository, logger *zap.Logger) *Service {
	return &Service{
		orders:   orders,
		statuses: statuses,
		placer:   placer,
		carts:    carts,
		logger:   logger,
	}
}

// Place creates an order from an explicit product list
func (s *Service) Place(ctx context.Context, principal identity.Principal, req PlaceRequest) (*Response, error) {
	if !principal.Authenticated {
		return nil, shared.ErrUnauthorized
	}
	if len(req.Products) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "At least one product is required")
	}

	lines := make([]order.PlacementLine, 0, len(req.Products))
	for _, p := range req.Products {
		productID, err := uuid.Parse(p.ProductID)
		if err != nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "product_id: must be a valid UUID")
		}
		quantity := p.Quantity
		if quantity == 0 {
			quantity = 1
		}
		if quantity < 1 {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "quantity: must be at least 1")
		}
		line := order.PlacementLine{ProductID: productID, Quantity: quantity}
		if p.UnitPrice != nil {
			price, err := valueobject.NewMoneyUSDFromString(*p.UnitPrice)
			if err != nil || price.IsNegative() {
				return nil, shared.NewDomainError("VALIDATION_ERROR", "unit_price: must be a non-negative decimal")
			}
			line.UnitPrice = &price
		}
		lines = append(lines, line)
	}

	discount, err := parseDiscount(req.DiscountAmount)
	if err != nil {
		return nil, err
	}

	clearSessionID := ""
	if req.ClearCart {
		clearSessionID, err = validation.SessionID(req.SessionID)
		if err != nil {
			return nil, err
		}
	}

	placed, err := s.placer.Place(ctx, principal.UserID, lines, req.Notes, discount, clearSessionID)
	if err != nil {
		return nil, err
	}
	return ToResponse(placed, true), nil
}

// PlaceFromCart creates an order from the session's cart, always clearing
// the cart on success.
func (s *Service) PlaceFromCart(ctx context.Context, principal identity.Principal, req PlaceFromCartRequest) (*Response, error) {
	if !principal.Authenticated {
		return nil, shared.ErrUnauthorized
	}
	sessionID, err := validation.SessionID(req.SessionID)
	if err != nil {
		return nil, err
	}

	items, err := s.carts.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, shared.ErrCartEmpty
	}

	lines := make([]order.PlacementLine, 0, len(items))
	for i := range items {
		lines = append(lines, order.PlacementLine{
			ProductID: items[i].ProductID,
			Quantity:  items[i].Quantity,
		})
	}

	discount, err := parseDiscount(req.DiscountAmount)
	if err != nil {
		return nil, err
	}

	placed, err := s.placer.Place(ctx, principal.UserID, lines, req.Notes, discount, sessionID)
	if err != nil {
		return nil, err
	}
	return ToResponse(placed, true), nil
}

// Get returns an order visible to the caller
func (s *Service) Get(ctx context.Context, principal identity.Principal, id uuid.UUID, includeProducts bool) (*Response, error) {
	if !principal.Authenticated {
		return nil, shared.ErrUnauthorized
	}
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !principal.CanAccess(o.UserID) {
		return nil, shared.ErrForbidden
	}
	return ToResponse(o, includeProducts), nil
}

// List returns orders: admins see all, everyone else their own
func (s *Service) List(ctx context.Context, principal identity.Principal, query ListQuery) (*shared.Paginated[*Response], error) {
	if !principal.Authenticated {
		return nil, shared.ErrUnauthorized
	}
	page, perPage, err := validation.Pagination(query.Page, query.PerPage, maxOrderPageSize)
	if err != nil {
		return nil, err
	}

	filter := shared.Filter{
		Page:     page,
		PageSize: perPage,
		OrderBy:  query.SortBy,
		OrderDir: query.SortDir,
		Filters:  make(map[string]interface{}),
	}
	if query.StatusID != "" {
		statusID, err := uuid.Parse(query.StatusID)
		if err != nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "status_id: must be a valid UUID")
		}
		filter.Filters["status_id"] = statusID
	}
	filter.Filters["include_products"] = query.IncludeProducts
	if !principal.IsAdmin() {
		filter.Filters["user_id"] = principal.UserID
	}

	orders, err := s.orders.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orders.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*Response, 0, len(orders))
	for i := range orders {
		items = append(items, ToResponse(&orders[i], query.IncludeProducts))
	}
	result := shared.NewPaginated(items, total, page, perPage)
	return &result, nil
}

// UpdateStatus moves an order to another active status. Admin only; the
// router enforces the role, the check here is the backstop.
func (s *Service) UpdateStatus(ctx context.Context, principal identity.Principal, orderID uuid.UUID, req UpdateStatusRequest) (*Response, error) {
	if !principal.IsAdmin() {
		return nil, shared.ErrForbidden
	}
	statusID, err := uuid.Parse(req.StatusID)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "status_id: must be a valid UUID")
	}

	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	status, err := s.statuses.FindByID(ctx, statusID)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid status ID")
	}
	if err := o.ChangeStatus(status); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("order status updated",
		zap.String("order_id", o.ID.String()),
		zap.String("status", status.Name),
	)
	return ToResponse(o, true), nil
}

func parseDiscount(raw *string) (valueobject.Money, error) {
	if raw == nil || *raw == "" {
		return valueobject.ZeroUSD(), nil
	}
	discount, err := valueobject.NewMoneyUSDFromString(*raw)
	if err != nil {
		return valueobject.Money{}, shared.NewDomainError("VALIDATION_ERROR", "discount_amount: must be a decimal number")
	}
	if discount.IsNegative() {
		return valueobject.Money{}, shared.NewDomainError("VALIDATION_ERROR", "discount_amount: cannot be negative")
	}
	return discount, nil
}
