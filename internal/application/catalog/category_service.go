package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/validation"
)

const maxCategoryPageSize = 100

// CategoryService handles category operations
type CategoryService struct {
	categories catalog.CategoryRepository
	products   catalog.ProductRepository
	logger     *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(categories catalog.CategoryRepository, products catalog.ProductRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		products:   products,
		logger:     logger,
	}
}

// Create validates the payload and stores a new category
func (s *CategoryService) Create(ctx context.Context, req CategoryRequest) (*CategoryResponse, error) {
	fields, err := validation.CategoryPayload{
		Name:        req.Name,
		Description: req.Description,
	}.Validate(false)
	if err != nil {
		return nil, err
	}

	if existing, err := s.categories.FindByName(ctx, *fields.Name); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category name is already in use")
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	description := ""
	if fields.Description != nil {
		description = *fields.Description
	}
	category, err := catalog.NewCategory(*fields.Name, description)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("category created",
		zap.String("category_id", category.ID.String()),
		zap.String("name", category.Name),
	)
	return ToCategoryResponse(category), nil
}

// Get returns a single category, optionally with its products
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID, includeProducts bool) (*CategoryResponse, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)

	count, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	resp.ProductCount = &count

	if includeProducts {
		filter := shared.DefaultFilter()
		filter.PageSize = 0 // all products in the category
		filter.Filters["category_id"] = id
		products, err := s.products.FindAll(ctx, filter)
		if err != nil {
			return nil, err
		}
		resp.Products = make([]*ProductResponse, 0, len(products))
		for i := range products {
			resp.Products = append(resp.Products, ToProductResponse(&products[i]))
		}
	}
	return resp, nil
}

// List returns categories with product counts
func (s *CategoryService) List(ctx context.Context, query CategoryListQuery) (*shared.Paginated[*CategoryResponse], error) {
	page, perPage, err := validation.Pagination(query.Page, query.PerPage, maxCategoryPageSize)
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

	categories, err := s.categories.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.categories.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(categories))
	for i := range categories {
		ids = append(ids, categories[i].ID)
	}
	counts, err := s.categories.ProductCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]*CategoryResponse, 0, len(categories))
	for i := range categories {
		resp := ToCategoryResponse(&categories[i])
		count := counts[categories[i].ID]
		resp.ProductCount = &count
		items = append(items, resp)
	}
	result := shared.NewPaginated(items, total, page, perPage)
	return &result, nil
}

// Update applies a partial update to a category
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req CategoryRequest) (*CategoryResponse, error) {
	fields, err := validation.CategoryPayload{
		Name:        req.Name,
		Description: req.Description,
	}.Validate(true)
	if err != nil {
		return nil, err
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if fields.Name != nil && *fields.Name != category.Name {
		if existing, err := s.categories.FindByName(ctx, *fields.Name); err == nil && existing != nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Category name is already in use")
		} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	name := ""
	if fields.Name != nil {
		name = *fields.Name
	}
	description := ""
	if fields.Description != nil {
		description = *fields.Description
	}
	if err := category.Update(name, description, fields.Description != nil); err != nil {
		return nil, err
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// Delete removes a category. A category that still has products conflicts
// unless force is set, in which case its products are detached first.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID, force bool) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		if !force {
			return shared.NewDomainErrorf("CONFLICT", "Category has %d products; pass force=true to delete anyway", count)
		}
		if err := s.categories.DetachProducts(ctx, id); err != nil {
			return err
		}
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("category deleted",
		zap.String("category_id", id.String()),
		zap.Bool("force", force),
		zap.Int64("detached_products", count),
	)
	return nil
}
