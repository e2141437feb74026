package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

func mustPrice(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyUSDFromString(s)
	require.NoError(t, err)
	return m
}

func TestNewProduct(t *testing.T) {
	tests := []struct {
		name        string
		productName string
		price       string
		description string
		imageURL    string
		stock       int
		wantErr     bool
	}{
		{
			name:        "valid product",
			productName: "Widget",
			price:       "19.99",
			stock:       10,
			wantErr:     false,
		},
		{
			name:        "empty name",
			productName: "   ",
			price:       "19.99",
			wantErr:     true,
		},
		{
			name:        "name too long",
			productName: strings.Repeat("a", 256),
			price:       "19.99",
			wantErr:     true,
		},
		{
			name:        "zero price",
			productName: "Widget",
			price:       "0",
			wantErr:     true,
		},
		{
			name:        "negative price",
			productName: "Widget",
			price:       "-1.00",
			wantErr:     true,
		},
		{
			name:        "price above ceiling",
			productName: "Widget",
			price:       "100000000.00",
			wantErr:     true,
		},
		{
			name:        "price with three decimals",
			productName: "Widget",
			price:       "19.999",
			wantErr:     true,
		},
		{
			name:        "description too long",
			productName: "Widget",
			price:       "19.99",
			description: strings.Repeat("d", 5001),
			wantErr:     true,
		},
		{
			name:        "invalid image url",
			productName: "Widget",
			price:       "19.99",
			imageURL:    "ftp://example.com/img.png",
			wantErr:     true,
		},
		{
			name:        "valid https image url",
			productName: "Widget",
			price:       "19.99",
			imageURL:    "https://example.com/img.png",
			wantErr:     false,
		},
		{
			name:        "negative stock",
			productName: "Widget",
			price:       "19.99",
			stock:       -1,
			wantErr:     true,
		},
		{
			name:        "stock above ceiling",
			productName: "Widget",
			price:       "19.99",
			stock:       1000000,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := NewProduct(tt.productName, tt.description, mustPrice(t, tt.price), tt.stock, nil, tt.imageURL)
			if tt.wantErr {
				require.Error(t, err)
				var domainErr *shared.DomainError
				require.ErrorAs(t, err, &domainErr)
				assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
				return
			}
			require.NoError(t, err)
			assert.True(t, product.IsActive)
			assert.Equal(t, tt.stock, product.StockQuantity)
		})
	}
}

func TestProduct_AdjustStock(t *testing.T) {
	product, err := NewProduct("Widget", "", mustPrice(t, "19.99"), 10, nil, "")
	require.NoError(t, err)

	require.NoError(t, product.AdjustStock(-4))
	assert.Equal(t, 6, product.StockQuantity)

	require.NoError(t, product.AdjustStock(5))
	assert.Equal(t, 11, product.StockQuantity)

	err = product.AdjustStock(-12)
	require.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.Equal(t, 11, product.StockQuantity, "failed adjustment must not change stock")
}

func TestProduct_IsInStock(t *testing.T) {
	product, err := NewProduct("Widget", "", mustPrice(t, "19.99"), 5, nil, "")
	require.NoError(t, err)

	assert.True(t, product.IsInStock(5))
	assert.True(t, product.IsInStock(1))
	assert.False(t, product.IsInStock(6))
	assert.False(t, product.IsInStock(0))

	product.Deactivate()
	assert.False(t, product.IsInStock(1), "inactive products are never in stock")
}

func TestProduct_UpdatePrice(t *testing.T) {
	product, err := NewProduct("Widget", "", mustPrice(t, "19.99"), 5, nil, "")
	require.NoError(t, err)

	require.NoError(t, product.UpdatePrice(mustPrice(t, "25.00")))
	assert.Equal(t, "25.00", product.Price.StringFixed(2))

	err = product.UpdatePrice(mustPrice(t, "0"))
	require.Error(t, err)
	assert.Equal(t, "25.00", product.Price.StringFixed(2))
}
