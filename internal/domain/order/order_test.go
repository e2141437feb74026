package order

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

var orderNumberPattern = regexp.MustCompile(`^ORD-\d{8}-[0-9A-F]{8}$`)

func testProduct(t *testing.T, name, price string, stock int) *catalog.Product {
	t.Helper()
	money, err := valueobject.NewMoneyUSDFromString(price)
	require.NoError(t, err)
	product, err := catalog.NewProduct(name, "test product", money, stock, nil, "")
	require.NoError(t, err)
	return product
}

func testOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder(uuid.New(), uuid.New(), "")
	require.NoError(t, err)
	return o
}

func TestGenerateOrderNumber(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		number, err := GenerateOrderNumber()
		require.NoError(t, err)
		assert.Len(t, number, OrderNumberLength)
		assert.Regexp(t, orderNumberPattern, number)
		seen[number] = true
	}
	assert.Greater(t, len(seen), 90, "generated numbers should be effectively unique")
}

func TestNewOrder(t *testing.T) {
	o, err := NewOrder(uuid.New(), uuid.New(), "leave at the door")
	require.NoError(t, err)

	assert.Regexp(t, orderNumberPattern, o.OrderNumber)
	assert.Equal(t, "leave at the door", o.Notes)
	assert.True(t, o.Subtotal.IsZero())
	assert.True(t, o.TotalAmount.IsZero())
	assert.Empty(t, o.Products)

	_, err = NewOrder(uuid.Nil, uuid.New(), "")
	require.Error(t, err)
	_, err = NewOrder(uuid.New(), uuid.Nil, "")
	require.Error(t, err)
}

func TestOrder_AddProduct(t *testing.T) {
	o := testOrder(t)
	product := testProduct(t, "Widget", "50.00", 10)

	require.NoError(t, o.AddProduct(product, 2, nil))
	require.Len(t, o.Products, 1)

	line := o.Products[0]
	assert.Equal(t, product.ID, line.ProductID)
	assert.Equal(t, "Widget", line.ProductName)
	assert.Equal(t, "test product", line.ProductDescription)
	assert.Equal(t, "50.00", line.UnitPrice.StringFixed(2))
	assert.Equal(t, "100.00", line.LineTotal.StringFixed(2))
	assert.Equal(t, "100.00", o.Subtotal.StringFixed(2))
	assert.Equal(t, "100.00", o.TotalAmount.StringFixed(2))
}

func TestOrder_AddProduct_ExplicitUnitPrice(t *testing.T) {
	o := testOrder(t)
	product := testProduct(t, "Widget", "50.00", 10)
	override, err := valueobject.NewMoneyUSDFromString("45.00")
	require.NoError(t, err)

	require.NoError(t, o.AddProduct(product, 2, &override))
	assert.Equal(t, "45.00", o.Products[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "90.00", o.TotalAmount.StringFixed(2))
}

func TestOrder_CalculateTotal_Idempotent(t *testing.T) {
	o := testOrder(t)
	require.NoError(t, o.AddProduct(testProduct(t, "A", "10.00", 5), 1, nil))
	require.NoError(t, o.AddProduct(testProduct(t, "B", "25.00", 5), 2, nil))

	o.CalculateTotal()
	first := o.TotalAmount
	o.CalculateTotal()
	o.CalculateTotal()
	assert.True(t, first.Equals(o.TotalAmount))
	assert.Equal(t, "60.00", o.TotalAmount.StringFixed(2))
}

func TestOrder_ApplyDiscount(t *testing.T) {
	o := testOrder(t)
	require.NoError(t, o.AddProduct(testProduct(t, "Widget", "50.00", 10), 2, nil))

	discount, err := valueobject.NewMoneyUSDFromString("15.00")
	require.NoError(t, err)
	require.NoError(t, o.ApplyDiscount(discount))
	assert.Equal(t, "100.00", o.Subtotal.StringFixed(2))
	assert.Equal(t, "85.00", o.TotalAmount.StringFixed(2))

	negative, err := valueobject.NewMoneyUSDFromString("-1.00")
	require.NoError(t, err)
	require.Error(t, o.ApplyDiscount(negative))
}

func TestOrder_ChangeStatus(t *testing.T) {
	o := testOrder(t)

	confirmed, err := NewOrderStatus(StatusConfirmed, "confirmed", 2)
	require.NoError(t, err)
	require.NoError(t, o.ChangeStatus(confirmed))
	assert.Equal(t, confirmed.ID, o.StatusID)

	inactive, err := NewOrderStatus("ARCHIVED", "", 99)
	require.NoError(t, err)
	inactive.IsActive = false
	require.Error(t, o.ChangeStatus(inactive))
	assert.Equal(t, confirmed.ID, o.StatusID)

	require.Error(t, o.ChangeStatus(nil))
}

func TestOrderProduct_Recalculation(t *testing.T) {
	product := testProduct(t, "Widget", "50.00", 10)
	item := NewOrderProduct(uuid.New(), product, 2, product.Price)
	assert.Equal(t, "100.00", item.LineTotal.StringFixed(2))

	require.NoError(t, item.UpdateQuantity(3))
	assert.Equal(t, "150.00", item.LineTotal.StringFixed(2))

	newPrice, err := valueobject.NewMoneyUSDFromString("60.00")
	require.NoError(t, err)
	require.NoError(t, item.UpdateUnitPrice(newPrice))
	assert.Equal(t, "180.00", item.LineTotal.StringFixed(2))

	require.Error(t, item.UpdateQuantity(0))
}

func TestDefaultStatuses(t *testing.T) {
	statuses := DefaultStatuses()
	require.Len(t, statuses, 6)
	assert.Equal(t, StatusPending, statuses[0].Name)
	for i, s := range statuses {
		assert.Equal(t, i+1, s.SortOrder)
	}
}
