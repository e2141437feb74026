package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

type mockItemRepo struct {
	mock.Mock
}

func (m *mockItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*cart.CartItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

func (m *mockItemRepo) FindAll(ctx context.Context, filter shared.Filter) ([]cart.CartItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.CartItem), args.Error(1)
}

func (m *mockItemRepo) Save(ctx context.Context, item *cart.CartItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockItemRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockItemRepo) FindBySession(ctx context.Context, sessionID string) ([]cart.CartItem, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.CartItem), args.Error(1)
}

func (m *mockItemRepo) FindBySessionAndProduct(ctx context.Context, sessionID string, productID uuid.UUID) (*cart.CartItem, error) {
	args := m.Called(ctx, sessionID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

func (m *mockItemRepo) ClearSession(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *mockProductRepo) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *mockProductRepo) Save(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProductRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProductRepo) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	return m.Called(ctx, productID, quantity).Error(0)
}

func (m *mockProductRepo) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService() (*Service, *mockItemRepo, *mockProductRepo) {
	items := new(mockItemRepo)
	products := new(mockProductRepo)
	return NewService(items, products, zap.NewNop()), items, products
}

func activeProduct(t *testing.T, price string, stock int) *catalog.Product {
	t.Helper()
	money, err := valueobject.NewMoneyUSDFromString(price)
	require.NoError(t, err)
	product, err := catalog.NewProduct("Widget", "", money, stock, nil, "")
	require.NoError(t, err)
	return product
}

func ptr[T any](v T) *T { return &v }

func TestService_AddItem_NewLine(t *testing.T) {
	svc, items, products := newTestService()
	product := activeProduct(t, "19.99", 10)

	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	items.On("FindBySessionAndProduct", mock.Anything, "sess-1", product.ID).Return(nil, shared.ErrNotFound)
	items.On("Save", mock.Anything, mock.AnythingOfType("*cart.CartItem")).Return(nil)

	resp, err := svc.AddItem(context.Background(), "sess-1", AddItemRequest{
		ProductID: ptr(product.ID.String()),
		Quantity:  ptr(3),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Quantity)
	assert.Equal(t, "59.97", resp.LineTotal)
	items.AssertExpectations(t)
}

func TestService_AddItem_MergesExisting(t *testing.T) {
	svc, items, products := newTestService()
	product := activeProduct(t, "5.00", 10)
	existing, err := cart.NewCartItem("sess-1", product.ID, 2)
	require.NoError(t, err)

	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	items.On("FindBySessionAndProduct", mock.Anything, "sess-1", product.ID).Return(existing, nil)
	items.On("Save", mock.Anything, existing).Return(nil)

	resp, err := svc.AddItem(context.Background(), "sess-1", AddItemRequest{
		ProductID: ptr(product.ID.String()),
		Quantity:  ptr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, 6, resp.Quantity)
}

func TestService_AddItem_DefaultsQuantity(t *testing.T) {
	svc, items, products := newTestService()
	product := activeProduct(t, "5.00", 10)

	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	items.On("FindBySessionAndProduct", mock.Anything, "sess-1", product.ID).Return(nil, shared.ErrNotFound)
	items.On("Save", mock.Anything, mock.AnythingOfType("*cart.CartItem")).Return(nil)

	resp, err := svc.AddItem(context.Background(), "sess-1", AddItemRequest{
		ProductID: ptr(product.ID.String()),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Quantity)
}

func TestService_AddItem_InactiveProduct(t *testing.T) {
	svc, _, products := newTestService()
	product := activeProduct(t, "5.00", 10)
	product.Deactivate()

	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	_, err := svc.AddItem(context.Background(), "sess-1", AddItemRequest{
		ProductID: ptr(product.ID.String()),
		Quantity:  ptr(1),
	})
	require.ErrorIs(t, err, shared.ErrProductInactive)
}

func TestService_AddItem_ExceedsStock(t *testing.T) {
	svc, items, products := newTestService()
	product := activeProduct(t, "5.00", 1)

	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	items.On("FindBySessionAndProduct", mock.Anything, "sess-1", product.ID).Return(nil, shared.ErrNotFound)

	_, err := svc.AddItem(context.Background(), "sess-1", AddItemRequest{
		ProductID: ptr(product.ID.String()),
		Quantity:  ptr(5),
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	items.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_AddItem_MergeExceedsStock(t *testing.T) {
	svc, items, products := newTestService()
	product := activeProduct(t, "5.00", 3)
	existing, err := cart.NewCartItem("sess-1", product.ID, 2)
	require.NoError(t, err)

	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	items.On("FindBySessionAndProduct", mock.Anything, "sess-1", product.ID).Return(existing, nil)

	_, err = svc.AddItem(context.Background(), "sess-1", AddItemRequest{
		ProductID: ptr(product.ID.String()),
		Quantity:  ptr(2),
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	assert.Equal(t, 2, existing.Quantity, "rejected merge must leave the line unchanged")
	items.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_AddItem_UnknownProduct(t *testing.T) {
	svc, _, products := newTestService()
	missing := uuid.New()

	products.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)

	_, err := svc.AddItem(context.Background(), "sess-1", AddItemRequest{
		ProductID: ptr(missing.String()),
		Quantity:  ptr(1),
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestService_UpdateItem_OtherSessionHidden(t *testing.T) {
	svc, items, _ := newTestService()
	item, err := cart.NewCartItem("sess-other", uuid.New(), 2)
	require.NoError(t, err)

	items.On("FindByID", mock.Anything, item.ID).Return(item, nil)

	_, err = svc.UpdateItem(context.Background(), "sess-1", item.ID, UpdateItemRequest{Quantity: ptr(5)})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestService_UpdateItem_ExceedsStock(t *testing.T) {
	svc, items, products := newTestService()
	product := activeProduct(t, "5.00", 2)
	item, err := cart.NewCartItem("sess-1", product.ID, 1)
	require.NoError(t, err)

	items.On("FindByID", mock.Anything, item.ID).Return(item, nil)
	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	_, err = svc.UpdateItem(context.Background(), "sess-1", item.ID, UpdateItemRequest{Quantity: ptr(5)})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	items.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_UpdateItem_WithinStock(t *testing.T) {
	svc, items, products := newTestService()
	product := activeProduct(t, "5.00", 10)
	item, err := cart.NewCartItem("sess-1", product.ID, 1)
	require.NoError(t, err)

	items.On("FindByID", mock.Anything, item.ID).Return(item, nil)
	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	items.On("Save", mock.Anything, item).Return(nil)

	resp, err := svc.UpdateItem(context.Background(), "sess-1", item.ID, UpdateItemRequest{Quantity: ptr(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Quantity)
	assert.Equal(t, "20.00", resp.LineTotal)
	items.AssertExpectations(t)
}

func TestService_UpdateItem_QuantityRequired(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateItem(context.Background(), "sess-1", uuid.New(), UpdateItemRequest{})
	require.Error(t, err)
}

func TestService_RemoveItem(t *testing.T) {
	svc, items, _ := newTestService()
	item, err := cart.NewCartItem("sess-1", uuid.New(), 2)
	require.NoError(t, err)

	items.On("FindByID", mock.Anything, item.ID).Return(item, nil)
	items.On("Delete", mock.Anything, item.ID).Return(nil)

	require.NoError(t, svc.RemoveItem(context.Background(), "sess-1", item.ID))
	items.AssertExpectations(t)
}

func TestService_Summary(t *testing.T) {
	svc, items, _ := newTestService()
	productA := activeProduct(t, "10.00", 5)
	productB := activeProduct(t, "2.50", 5)

	itemA, err := cart.NewCartItem("sess-1", productA.ID, 2)
	require.NoError(t, err)
	itemA.Product = productA
	itemB, err := cart.NewCartItem("sess-1", productB.ID, 3)
	require.NoError(t, err)
	itemB.Product = productB

	items.On("FindBySession", mock.Anything, "sess-1").Return([]cart.CartItem{*itemA, *itemB}, nil)

	summary, err := svc.Summary(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "27.50", summary.TotalAmount)
	assert.Equal(t, 5, summary.TotalItems)
	assert.Equal(t, 2, summary.UniqueProducts)
}

func TestService_Get_InvalidSessionID(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Get(context.Background(), "bad session id!")
	require.Error(t, err)
}
