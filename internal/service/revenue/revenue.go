// Package revenue computes the admin dashboard roll-ups from historical
// orders. It is the single source of truth for order totals: any total the
// upstream stores alongside an order is ignored and recomputed from the
// order items, so every display surface agrees.
package revenue

import (
	"sort"
	"time"

	"metalmarket-storefront/internal/domain"
)

// StatusCounts buckets orders for the dashboard. PENDING and CONFIRMED share
// the pending bucket; statuses outside the known set land in Unknown rather
// than disappearing from the tally.
type StatusCounts struct {
	Delivered int `json:"delivered"`
	Pending   int `json:"pending"`
	Cancelled int `json:"cancelled"`
	Unknown   int `json:"unknown,omitempty"`
}

// DateRevenue is one point of the revenue-over-time series.
type DateRevenue struct {
	Date         string `json:"date"`
	RevenuePaise int64  `json:"revenuePaise"`
}

// CategoryCount is one bar of the products-per-category chart.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

const uncategorized = "Uncategorized"

// OrderTotal recomputes the canonical order total: item prices times
// quantities plus the COD surcharge when applicable. An order with no items
// contributes only its surcharge-free zero.
func OrderTotal(o domain.Order) int64 {
	var sum int64
	for _, it := range o.Items {
		sum += it.PricePaise * int64(it.Quantity)
	}
	if o.OrderType == domain.OrderTypeCOD {
		sum += domain.CODSurchargePaise
	}
	return sum
}

// CountByStatus tallies orders into dashboard buckets. Orders with an
// unparsable timestamp still count here.
func CountByStatus(orders []domain.Order) StatusCounts {
	var counts StatusCounts
	for _, o := range orders {
		switch o.Status {
		case domain.OrderStatusDelivered:
			counts.Delivered++
		case domain.OrderStatusPending, domain.OrderStatusConfirmed:
			counts.Pending++
		case domain.OrderStatusCancelled:
			counts.Cancelled++
		default:
			counts.Unknown++
		}
	}
	return counts
}

// TotalRevenue sums canonical totals over delivered orders only. Pending,
// confirmed and cancelled orders contribute nothing.
func TotalRevenue(orders []domain.Order) int64 {
	var sum int64
	for _, o := range orders {
		if o.Status == domain.OrderStatusDelivered {
			sum += OrderTotal(o)
		}
	}
	return sum
}

// RevenueByDate buckets delivered-order revenue by the calendar date of
// creation, ascending. Orders without a usable timestamp are skipped.
func RevenueByDate(orders []domain.Order) []DateRevenue {
	byDate := make(map[string]int64)
	for _, o := range orders {
		if o.Status != domain.OrderStatusDelivered || o.CreatedAt.IsZero() {
			continue
		}
		byDate[o.CreatedAt.Format("2006-01-02")] += OrderTotal(o)
	}

	out := make([]DateRevenue, 0, len(byDate))
	for date, paise := range byDate {
		out = append(out, DateRevenue{Date: date, RevenuePaise: paise})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// RevenueInWindow sums delivered revenue within a trailing window ending at
// now. days == 0 means the same calendar day as now, an exact date match,
// while days > 0 is a rolling cutoff of now minus days*24h. The two
// semantics differ on purpose: the "today" figure and the 7/30-day figures
// have always been computed this way.
func RevenueInWindow(orders []domain.Order, now time.Time, days int) int64 {
	var sum int64
	for _, o := range orders {
		if o.Status != domain.OrderStatusDelivered || o.CreatedAt.IsZero() {
			continue
		}
		if days == 0 {
			if sameDay(now, o.CreatedAt.In(now.Location())) {
				sum += OrderTotal(o)
			}
			continue
		}
		if now.Sub(o.CreatedAt) <= time.Duration(days)*24*time.Hour {
			sum += OrderTotal(o)
		}
	}
	return sum
}

// ProductsPerCategory counts catalog entries per category, with blank
// categories grouped under "Uncategorized". Output is sorted by category
// name for stable rendering.
func ProductsPerCategory(products []domain.Product) []CategoryCount {
	byCategory := make(map[string]int)
	for _, p := range products {
		c := p.Category
		if c == "" {
			c = uncategorized
		}
		byCategory[c]++
	}

	out := make([]CategoryCount, 0, len(byCategory))
	for c, n := range byCategory {
		out = append(out, CategoryCount{Category: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
