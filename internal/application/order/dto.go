package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/order"
)

// LineRequest is one requested product line in a placement
type LineRequest struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice *string `json:"unit_price"`
}

// PlaceRequest is the payload for direct order placement
type PlaceRequest struct {
	Products       []LineRequest `json:"products"`
	Notes          string        `json:"notes"`
	DiscountAmount *string       `json:"discount_amount"`
	ClearCart      bool          `json:"clear_cart"`
	SessionID      string        `json:"session_id"`
}

// PlaceFromCartRequest is the payload for placing an order from a session cart
type PlaceFromCartRequest struct {
	SessionID      string  `json:"session_id"`
	Notes          string  `json:"notes"`
	DiscountAmount *string `json:"discount_amount"`
}

// UpdateStatusRequest is the payload for an admin status change
type UpdateStatusRequest struct {
	StatusID string `json:"status_id" binding:"required"`
}

// ListQuery carries order listing filters
type ListQuery struct {
	Page            int
	PerPage         int
	StatusID        string
	IncludeProducts bool
	SortBy          string
	SortDir         string
}

// StatusRequest is the payload for creating an order status
type StatusRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

// LineResponse is the public view of a snapshot line item
type LineResponse struct {
	ID                 uuid.UUID `json:"id"`
	ProductID          uuid.UUID `json:"product_id"`
	ProductName        string    `json:"product_name"`
	ProductDescription string    `json:"product_description"`
	Quantity           int       `json:"quantity"`
	UnitPrice          string    `json:"unit_price"`
	LineTotal          string    `json:"line_total"`
}

// StatusResponse is the public view of an order status
type StatusResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int       `json:"sort_order"`
}

// Response is the public view of an order
type Response struct {
	ID             uuid.UUID       `json:"id"`
	OrderNumber    string          `json:"order_number"`
	UserID         uuid.UUID       `json:"user_id"`
	Status         *StatusResponse `json:"status,omitempty"`
	StatusID       uuid.UUID       `json:"status_id"`
	Subtotal       string          `json:"subtotal"`
	DiscountAmount string          `json:"discount_amount"`
	TotalAmount    string          `json:"total_amount"`
	Notes          string          `json:"notes"`
	Products       []*LineResponse `json:"products,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToLineResponse maps a line item to its public view
func ToLineResponse(item *order.OrderProduct) *LineResponse {
	return &LineResponse{
		ID:                 item.ID,
		ProductID:          item.ProductID,
		ProductName:        item.ProductName,
		ProductDescription: item.ProductDescription,
		Quantity:           item.Quantity,
		UnitPrice:          item.UnitPrice.StringFixed(2),
		LineTotal:          item.LineTotal.StringFixed(2),
	}
}

// ToStatusResponse maps a status to its public view
func ToStatusResponse(status *order.OrderStatus) *StatusResponse {
	return &StatusResponse{
		ID:          status.ID,
		Name:        status.Name,
		Description: status.Description,
		IsActive:    status.IsActive,
		SortOrder:   status.SortOrder,
	}
}

// ToResponse maps an order to its public view
func ToResponse(o *order.Order, includeProducts bool) *Response {
	resp := &Response{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		UserID:         o.UserID,
		StatusID:       o.StatusID,
		Subtotal:       o.Subtotal.StringFixed(2),
		DiscountAmount: o.DiscountAmount.StringFixed(2),
		TotalAmount:    o.TotalAmount.StringFixed(2),
		Notes:          o.Notes,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if o.Status != nil {
		resp.Status = ToStatusResponse(o.Status)
	}
	if includeProducts {
		resp.Products = make([]*LineResponse, 0, len(o.Products))
		for i := range o.Products {
			resp.Products = append(resp.Products, ToLineResponse(&o.Products[i]))
		}
	}
	return resp
}
