package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// OrderItem is a single item of an order as it travels over the wire,
// both in the create-order request and in the server's echo.
type OrderItem struct {
	MenuItemID   int64           `json:"menu_item_id"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	PriceAtOrder decimal.Decimal `json:"price_at_order"`
}

type CreateOrderRequest struct {
	Items []OrderItem     `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// OrderReceipt is the server's authoritative confirmation of a placed
// order. Its total may legitimately differ from the locally computed one;
// the server's value is the one shown to the user.
type OrderReceipt struct {
	OrderID   int64           `json:"order_id"`
	Items     []OrderItem     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Timestamp time.Time       `json:"timestamp"`
}

// Order is a display-cache copy of a server-side order. The client never
// mutates it locally; after a status change it re-fetches the list.
type Order struct {
	ID        int64           `json:"id"`
	Customer  string          `json:"username"`
	Items     []OrderItem     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    OrderStatus     `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status"`
}
