package cart

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCartItem(t *testing.T) {
	productID := uuid.New()

	tests := []struct {
		name      string
		sessionID string
		productID uuid.UUID
		quantity  int
		wantErr   bool
	}{
		{name: "valid", sessionID: "sess-abc_123", productID: productID, quantity: 2, wantErr: false},
		{name: "empty session", sessionID: "", productID: productID, quantity: 1, wantErr: true},
		{name: "session too long", sessionID: strings.Repeat("s", 256), productID: productID, quantity: 1, wantErr: true},
		{name: "session with illegal chars", sessionID: "sess/../etc", productID: productID, quantity: 1, wantErr: true},
		{name: "zero quantity", sessionID: "sess-1", productID: productID, quantity: 0, wantErr: true},
		{name: "quantity above ceiling", sessionID: "sess-1", productID: productID, quantity: 1000, wantErr: true},
		{name: "nil product", sessionID: "sess-1", productID: uuid.Nil, quantity: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := NewCartItem(tt.sessionID, tt.productID, tt.quantity)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.quantity, item.Quantity)
		})
	}
}

func TestCartItem_Merge(t *testing.T) {
	item, err := NewCartItem("sess-1", uuid.New(), 2)
	require.NoError(t, err)

	require.NoError(t, item.Merge(2))
	assert.Equal(t, 4, item.Quantity)

	require.NoError(t, item.Merge(998))
	assert.Equal(t, MaxQuantity, item.Quantity, "merge caps at the ceiling")

	err = item.Merge(0)
	require.Error(t, err)
	assert.Equal(t, MaxQuantity, item.Quantity)
}

func TestCartItem_SetQuantity(t *testing.T) {
	item, err := NewCartItem("sess-1", uuid.New(), 2)
	require.NoError(t, err)

	require.NoError(t, item.SetQuantity(7))
	assert.Equal(t, 7, item.Quantity)

	require.Error(t, item.SetQuantity(0))
	require.Error(t, item.SetQuantity(1000))
	assert.Equal(t, 7, item.Quantity)
}
