package upstream

import (
	"context"
	"net/http"
	"net/url"

	"metalmarket-storefront/internal/domain"
)

type wireOrder struct {
	ID        wireID          `json:"id"`
	UserID    wireID          `json:"userId"`
	OrderType string          `json:"orderType"`
	Status    string          `json:"status"`
	Address   string          `json:"address"`
	CreatedAt string          `json:"createdAt"`
	Items     []wireOrderItem `json:"orderItems"`
}

type wireOrderItem struct {
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

func (c *Client) orderToDomain(w wireOrder) domain.Order {
	items := make([]domain.OrderItem, 0, len(w.Items))
	for _, it := range w.Items {
		items = append(items, domain.OrderItem{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			PricePaise:  domain.PaiseFromRupees(it.Price),
		})
	}
	return domain.Order{
		ID:        string(w.ID),
		UserID:    string(w.UserID),
		OrderType: domain.OrderType(w.OrderType),
		Status:    domain.OrderStatus(w.Status),
		Address:   w.Address,
		CreatedAt: c.parseTimestamp(w.CreatedAt),
		Items:     items,
	}
}

func (c *Client) ordersToDomain(wire []wireOrder) []domain.Order {
	orders := make([]domain.Order, 0, len(wire))
	for _, w := range wire {
		orders = append(orders, c.orderToDomain(w))
	}
	return orders
}

// ListOrders fetches every order; the upstream restricts it to admins.
func (c *Client) ListOrders(ctx context.Context, token string) ([]domain.Order, error) {
	var wire []wireOrder
	if err := c.do(ctx, http.MethodGet, "/orders", token, nil, &wire); err != nil {
		return nil, err
	}
	return c.ordersToDomain(wire), nil
}

func (c *Client) ListUserOrders(ctx context.Context, token, userID string) ([]domain.Order, error) {
	var wire []wireOrder
	if err := c.do(ctx, http.MethodGet, "/orders/user/"+userID, token, nil, &wire); err != nil {
		return nil, err
	}
	return c.ordersToDomain(wire), nil
}

// OrderLine references a catalog product in an order submission.
type OrderLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// PlaceOrderInput is the order submission payload. Address is present only
// for COD orders.
type PlaceOrderInput struct {
	UserID    string           `json:"userId"`
	OrderType domain.OrderType `json:"orderType"`
	Items     []OrderLine      `json:"items"`
	Address   string           `json:"address,omitempty"`
}

func (c *Client) PlaceOrder(ctx context.Context, token string, in PlaceOrderInput) error {
	return c.do(ctx, http.MethodPost, "/orders", token, in, nil)
}

func (c *Client) UpdateOrderStatus(ctx context.Context, token, id string, status domain.OrderStatus) error {
	q := url.Values{"status": {string(status)}}
	return c.do(ctx, http.MethodPut, "/orders/"+id+"/status?"+q.Encode(), token, nil, nil)
}

func (c *Client) CancelOrder(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodPut, "/orders/"+id+"/cancel", token, nil, nil)
}
