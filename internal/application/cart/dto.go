package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/cart"
	appcatalog "github.com/storefront/backend/internal/application/catalog"
)

// AddItemRequest is the payload for adding a product to a cart
type AddItemRequest struct {
	ProductID *string `json:"product_id"`
	Quantity  *int    `json:"quantity"`
}

// UpdateItemRequest is the payload for changing a line's quantity
type UpdateItemRequest struct {
	Quantity *int `json:"quantity"`
}

// ItemResponse is the public view of a cart line
type ItemResponse struct {
	ID        uuid.UUID                   `json:"id"`
	SessionID string                      `json:"session_id"`
	ProductID uuid.UUID                   `json:"product_id"`
	Product   *appcatalog.ProductResponse `json:"product,omitempty"`
	Quantity  int                         `json:"quantity"`
	LineTotal string                      `json:"line_total"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

// SummaryResponse aggregates a session's cart, always computed from live
// product prices
type SummaryResponse struct {
	SessionID      string `json:"session_id"`
	TotalAmount    string `json:"total_amount"`
	TotalItems     int    `json:"total_items"`
	UniqueProducts int    `json:"unique_products"`
}

// CartResponse is the full view of a session's cart
type CartResponse struct {
	SessionID string          `json:"session_id"`
	Items     []*ItemResponse `json:"items"`
	Summary   SummaryResponse `json:"summary"`
}

// ToItemResponse maps a cart line to its public view
func ToItemResponse(item *cart.CartItem) *ItemResponse {
	resp := &ItemResponse{
		ID:        item.ID,
		SessionID: item.SessionID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		LineTotal: decimal.Zero.StringFixed(2),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
	if item.Product != nil {
		resp.Product = appcatalog.ToProductResponse(item.Product)
		resp.LineTotal = item.Product.Price.MultiplyByInt(int64(item.Quantity)).StringFixed(2)
	}
	return resp
}
