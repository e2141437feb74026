package order

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// StatusService manages the order status lookup table
type StatusService struct {
	statuses order.StatusRepository
	logger   *zap.Logger
}

// NewStatusService creates a new status service
func NewStatusService(statuses order.StatusRepository, logger *zap.Logger) *StatusService {
	return &StatusService{statuses: statuses, logger: logger}
}

// List returns all statuses in display order
func (s *StatusService) List(ctx context.Context, activeOnly bool) ([]*StatusResponse, error) {
	filter := shared.Filter{Filters: make(map[string]interface{})}
	if activeOnly {
		filter.Filters["is_active"] = true
	}
	statuses, err := s.statuses.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]*StatusResponse, 0, len(statuses))
	for i := range statuses {
		items = append(items, ToStatusResponse(&statuses[i]))
	}
	return items, nil
}

// Create adds a new status
func (s *StatusService) Create(ctx context.Context, req StatusRequest) (*StatusResponse, error) {
	status, err := order.NewOrderStatus(req.Name, req.Description, req.SortOrder)
	if err != nil {
		return nil, err
	}
	if existing, err := s.statuses.FindByName(ctx, status.Name); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Status name is already in use")
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if err := s.statuses.Save(ctx, status); err != nil {
		return nil, err
	}
	s.logger.Info("order status created", zap.String("name", status.Name))
	return ToStatusResponse(status), nil
}

// Seed inserts the default status set. Idempotent: statuses that already
// exist are left alone. Returns the number of statuses created.
func (s *StatusService) Seed(ctx context.Context) (int, error) {
	created := 0
	for _, seed := range order.DefaultStatuses() {
		_, err := s.statuses.FindByName(ctx, seed.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return created, err
		}
		status, err := order.NewOrderStatus(seed.Name, seed.Description, seed.SortOrder)
		if err != nil {
			return created, err
		}
		if err := s.statuses.Save(ctx, status); err != nil {
			return created, err
		}
		created++
	}
	if created > 0 {
		s.logger.Info("order statuses seeded", zap.Int("created", created))
	}
	return created, nil
}
