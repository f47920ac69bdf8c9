package httpserver

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"metalmarket-storefront/internal/domain"
	"metalmarket-storefront/internal/service/checkout"
	"metalmarket-storefront/internal/service/pricing"
	"metalmarket-storefront/internal/service/revenue"
	"metalmarket-storefront/internal/upstream"
)

// Views carry both paise and rupee amounts: paise for arithmetic on the
// consumer side, rupees for direct display.

type cartItemView struct {
	ProductID      string  `json:"productId"`
	Name           string  `json:"name"`
	ImageURL       string  `json:"imageUrl,omitempty"`
	Category       string  `json:"category,omitempty"`
	UnitPricePaise int64   `json:"unitPricePaise"`
	UnitPrice      float64 `json:"unitPrice"`
	StockLimit     int     `json:"stockLimit"`
	Quantity       int     `json:"quantity"`
	LineTotalPaise int64   `json:"lineTotalPaise"`
	LineTotal      float64 `json:"lineTotal"`
}

type cartView struct {
	Items            []cartItemView `json:"items"`
	SubtotalPaise    int64          `json:"subtotalPaise"`
	Subtotal         float64        `json:"subtotal"`
	CODTotalPaise    int64          `json:"codTotalPaise"`
	CODTotal         float64        `json:"codTotal"`
	PickupTotalPaise int64          `json:"pickupTotalPaise"`
	PickupTotal      float64        `json:"pickupTotal"`
}

func toCartView(cart domain.Cart) cartView {
	items := make([]cartItemView, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		lineTotal := pricing.LineTotal(line)
		items = append(items, cartItemView{
			ProductID:      line.ProductID,
			Name:           line.Name,
			ImageURL:       line.ImageURL,
			Category:       line.Category,
			UnitPricePaise: line.UnitPricePaise,
			UnitPrice:      domain.RupeesFromPaise(line.UnitPricePaise),
			StockLimit:     line.StockLimit,
			Quantity:       line.Quantity,
			LineTotalPaise: lineTotal,
			LineTotal:      domain.RupeesFromPaise(lineTotal),
		})
	}
	subtotal := pricing.CartSubtotal(cart)
	codTotal := subtotal + domain.CODSurchargePaise
	return cartView{
		Items:            items,
		SubtotalPaise:    subtotal,
		Subtotal:         domain.RupeesFromPaise(subtotal),
		CODTotalPaise:    codTotal,
		CODTotal:         domain.RupeesFromPaise(codTotal),
		PickupTotalPaise: subtotal,
		PickupTotal:      domain.RupeesFromPaise(subtotal),
	}
}

type productView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Price       float64 `json:"price"`
	PricePaise  int64   `json:"pricePaise"`
	Stock       int     `json:"stock"`
}

func toProductView(p domain.Product) productView {
	return productView{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Price:       domain.RupeesFromPaise(p.PricePaise),
		PricePaise:  p.PricePaise,
		Stock:       p.Stock,
	}
}

func toProductViews(products []domain.Product) []productView {
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, toProductView(p))
	}
	return out
}

type orderItemView struct {
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	LineTotal   float64 `json:"lineTotal"`
}

type orderView struct {
	ID         string          `json:"id"`
	CreatedAt  string          `json:"createdAt,omitempty"`
	UserID     string          `json:"userId,omitempty"`
	OrderType  string          `json:"orderType"`
	Status     string          `json:"status"`
	Address    string          `json:"address,omitempty"`
	Items      []orderItemView `json:"orderItems"`
	Total      float64         `json:"total"`
	TotalPaise int64           `json:"totalPaise"`
}

// toOrderView renders an order with its canonical recomputed total.
func toOrderView(o domain.Order) orderView {
	items := make([]orderItemView, 0, len(o.Items))
	for _, it := range o.Items {
		lineTotal := it.PricePaise * int64(it.Quantity)
		items = append(items, orderItemView{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       domain.RupeesFromPaise(it.PricePaise),
			LineTotal:   domain.RupeesFromPaise(lineTotal),
		})
	}
	createdAt := ""
	if !o.CreatedAt.IsZero() {
		createdAt = o.CreatedAt.Format(time.RFC3339)
	}
	total := revenue.OrderTotal(o)
	return orderView{
		ID:         o.ID,
		CreatedAt:  createdAt,
		UserID:     o.UserID,
		OrderType:  string(o.OrderType),
		Status:     string(o.Status),
		Address:    o.Address,
		Items:      items,
		Total:      domain.RupeesFromPaise(total),
		TotalPaise: total,
	}
}

func toOrderViews(orders []domain.Order) []orderView {
	out := make([]orderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderView(o))
	}
	return out
}

// renderError maps service errors onto HTTP statuses. Anything unrecognized
// is logged and reported as a generic upstream failure.
func renderError(c *gin.Context, logger *log.Logger, err error) {
	var verr *checkout.ValidationError
	var apiErr *upstream.APIError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrOutOfStock):
		c.JSON(http.StatusConflict, gin.H{"error": "product is out of stock"})
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, pricing.ErrOrderTypeUnavailable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, checkout.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &apiErr):
		c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Error()})
	default:
		logger.Printf("request failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "service temporarily unavailable"})
	}
}
