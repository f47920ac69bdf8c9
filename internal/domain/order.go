package domain

import "time"

// OrderType selects how an order is fulfilled and paid.
type OrderType string

const (
	// OrderTypeCOD is cash on delivery. It adds a fixed surcharge and
	// requires a full shipping address.
	OrderTypeCOD OrderType = "COD"
	// OrderTypePickup is store pickup. No surcharge, contact details only.
	OrderTypePickup OrderType = "PICKUP"
	// OrderTypeUPI is a placeholder. Submissions are rejected before any
	// pricing is computed for it.
	OrderTypeUPI OrderType = "UPI"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order is a historical order as reported by the upstream API. A zero
// CreatedAt means the upstream timestamp could not be parsed; such orders are
// excluded from date-bucketed views but still counted in status tallies.
type Order struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	OrderType OrderType   `json:"orderType"`
	Status    OrderStatus `json:"status"`
	Address   string      `json:"address,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	Items     []OrderItem `json:"orderItems"`
}

type OrderItem struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	PricePaise  int64  `json:"pricePaise"`
}
