package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"metalmarket-storefront/internal/domain"
	"metalmarket-storefront/internal/service/revenue"
)

type revenuePointView struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

type dashboardView struct {
	DeliveredOrders     int                     `json:"deliveredOrders"`
	PendingOrders       int                     `json:"pendingOrders"`
	CancelledOrders     int                     `json:"cancelledOrders"`
	UnknownOrders       int                     `json:"unknownOrders,omitempty"`
	TotalRevenue        float64                 `json:"totalRevenue"`
	RevenueToday        float64                 `json:"revenueToday"`
	RevenueLast7Days    float64                 `json:"revenueLast7Days"`
	RevenueLast30Days   float64                 `json:"revenueLast30Days"`
	RevenueByDate       []revenuePointView      `json:"revenueByDate"`
	ProductsPerCategory []revenue.CategoryCount `json:"productsPerCategory"`
}

// dashboard aggregates order and catalog views. Either upstream fetch failing
// degrades that half to empty so the page still renders.
func (h *handlers) dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	token := h.deps.Sessions.Token(ctx, ownerID(c))

	orders, err := h.deps.Upstream.ListOrders(ctx, token)
	if err != nil {
		h.logger.Printf("dashboard orders: %v", err)
		orders = nil
	}
	products, err := h.deps.Upstream.ListProducts(ctx, token)
	if err != nil {
		h.logger.Printf("dashboard products: %v", err)
		products = nil
	}

	now := time.Now()
	counts := revenue.CountByStatus(orders)

	byDate := revenue.RevenueByDate(orders)
	points := make([]revenuePointView, 0, len(byDate))
	for _, p := range byDate {
		points = append(points, revenuePointView{
			Date:    p.Date,
			Revenue: domain.RupeesFromPaise(p.RevenuePaise),
		})
	}

	c.JSON(http.StatusOK, dashboardView{
		DeliveredOrders:     counts.Delivered,
		PendingOrders:       counts.Pending,
		CancelledOrders:     counts.Cancelled,
		UnknownOrders:       counts.Unknown,
		TotalRevenue:        domain.RupeesFromPaise(revenue.TotalRevenue(orders)),
		RevenueToday:        domain.RupeesFromPaise(revenue.RevenueInWindow(orders, now, 0)),
		RevenueLast7Days:    domain.RupeesFromPaise(revenue.RevenueInWindow(orders, now, 7)),
		RevenueLast30Days:   domain.RupeesFromPaise(revenue.RevenueInWindow(orders, now, 30)),
		RevenueByDate:       points,
		ProductsPerCategory: revenue.ProductsPerCategory(products),
	})
}
