package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/validation"
)

const maxProductPageSize = 100

// ProductService handles catalog product operations
type ProductService struct {
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
	logger     *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(products catalog.ProductRepository, categories catalog.CategoryRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		logger:     logger,
	}
}

// Create validates the payload and stores a new product
func (s *ProductService) Create(ctx context.Context, req ProductRequest) (*ProductResponse, error) {
	fields, err := validation.ProductPayload{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
		ImageURL:      req.ImageURL,
		IsActive:      req.IsActive,
	}.Validate(false)
	if err != nil {
		return nil, err
	}

	if fields.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *fields.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("NOT_FOUND", "Category not found")
			}
			return nil, err
		}
	}

	description := ""
	if fields.Description != nil {
		description = *fields.Description
	}
	imageURL := ""
	if fields.ImageURL != nil {
		imageURL = *fields.ImageURL
	}

	product, err := catalog.NewProduct(
		*fields.Name,
		description,
		valueobject.NewMoneyUSD(*fields.Price),
		*fields.StockQuantity,
		fields.CategoryID,
		imageURL,
	)
	if err != nil {
		return nil, err
	}
	if fields.IsActive != nil && !*fields.IsActive {
		product.Deactivate()
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
	)
	return ToProductResponse(product), nil
}

// Get returns a single product
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List returns products matching the query with pagination
func (s *ProductService) List(ctx context.Context, query ProductListQuery) (*shared.Paginated[*ProductResponse], error) {
	page, perPage, err := validation.Pagination(query.Page, query.PerPage, maxProductPageSize)
	if err != nil {
		return nil, err
	}

	filter := shared.Filter{
		Page:     page,
		PageSize: perPage,
		OrderBy:  query.SortBy,
		OrderDir: query.SortDir,
		Search:   query.Search,
		Filters:  make(map[string]interface{}),
	}
	if query.CategoryID != "" {
		categoryID, err := uuid.Parse(query.CategoryID)
		if err != nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "category_id: must be a valid UUID")
		}
		filter.Filters["category_id"] = categoryID
	}
	if query.Active != nil {
		filter.Filters["is_active"] = *query.Active
	}
	if query.InStock != nil {
		filter.Filters["in_stock"] = *query.InStock
	}
	if query.MinPrice != "" {
		min, err := decimal.NewFromString(query.MinPrice)
		if err != nil || min.IsNegative() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "min_price: must be a non-negative decimal")
		}
		filter.Filters["min_price"] = min
	}
	if query.MaxPrice != "" {
		max, err := decimal.NewFromString(query.MaxPrice)
		if err != nil || max.IsNegative() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "max_price: must be a non-negative decimal")
		}
		filter.Filters["max_price"] = max
	}

	products, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.products.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, ToProductResponse(&products[i]))
	}
	result := shared.NewPaginated(items, total, page, perPage)
	return &result, nil
}

// Update applies a partial update to a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req ProductRequest) (*ProductResponse, error) {
	fields, err := validation.ProductPayload{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
		ImageURL:      req.ImageURL,
		IsActive:      req.IsActive,
	}.Validate(true)
	if err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if fields.Name != nil {
		if err := product.UpdateName(*fields.Name); err != nil {
			return nil, err
		}
	}
	if fields.Description != nil {
		if err := product.UpdateDescription(*fields.Description); err != nil {
			return nil, err
		}
	}
	if fields.Price != nil {
		if err := product.UpdatePrice(valueobject.NewMoneyUSD(*fields.Price)); err != nil {
			return nil, err
		}
	}
	if fields.ImageURL != nil {
		if err := product.UpdateImageURL(*fields.ImageURL); err != nil {
			return nil, err
		}
	}
	if fields.StockQuantity != nil {
		if err := product.SetStock(*fields.StockQuantity); err != nil {
			return nil, err
		}
	}
	if fields.ClearCategory {
		product.AssignCategory(nil)
	} else if fields.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *fields.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("NOT_FOUND", "Category not found")
			}
			return nil, err
		}
		product.AssignCategory(fields.CategoryID)
	}
	if fields.IsActive != nil {
		if *fields.IsActive {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.String("product_id", id.String()))
	return nil
}
