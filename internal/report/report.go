// Package report computes the admin dashboard's sales, inventory, customer
// and order-status aggregates. Every function is a pure reduction over
// already-fetched records: malformed fields are coerced to defaults instead
// of failing, ratios are guarded against zero denominators, and nothing here
// mutates its inputs or touches I/O.
package report

import (
	"fmt"
	"time"

	"github.com/rogerio-castellano/commerce-admin/internal/models"
)

type SalesReport struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalOrders       int     `json:"totalOrders"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	TopSellingProduct string  `json:"topSellingProduct"`
	PeriodStart       string  `json:"periodStart"`
	PeriodEnd         string  `json:"periodEnd"`
}

type InventoryReport struct {
	TotalProducts      int     `json:"totalProducts"`
	LowStockProducts   int     `json:"lowStockProducts"`
	OutOfStockProducts int     `json:"outOfStockProducts"`
	TotalValue         float64 `json:"totalValue"`
}

type CustomerReport struct {
	TotalCustomers     int    `json:"totalCustomers"`
	NewCustomers       int    `json:"newCustomers"`
	ReturningCustomers int    `json:"returningCustomers"`
	ConversionRate     string `json:"conversionRate"`
}

type OrderStatusReport struct {
	Pending        int `json:"pending"`
	Processing     int `json:"processing"`
	Shipped        int `json:"shipped"`
	OutForDelivery int `json:"outForDelivery"`
	Delivered      int `json:"delivered"`
	Cancelled      int `json:"cancelled"`
}

// Report is the full four-section report served by /api/reports.
type Report struct {
	Sales     SalesReport       `json:"salesReport"`
	Inventory InventoryReport   `json:"inventoryReport"`
	Customers CustomerReport    `json:"customerReport"`
	Orders    OrderStatusReport `json:"orderReport"`
}

// Aggregator carries the few report policies that are configurable.
type Aggregator struct {
	// FallbackToAllTime keeps period sales reports non-empty: when the
	// requested window has no fulfilled orders, sales figures are computed
	// over all fulfilled orders instead. The period fields still reflect
	// the requested window. Pending confirmation with stakeholders whether
	// this stays permanent behavior.
	FallbackToAllTime bool
}

// Full assembles the complete report for a range selector.
func (a Aggregator) Full(orders []models.Order, users []models.User, products []models.Product, r Range, now time.Time) (Report, error) {
	start, end, err := Window(r, now)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Sales:     a.Sales(orders, start, end),
		Inventory: Inventory(products),
		Customers: Customers(users, orders, start, end),
		Orders:    OrderStatuses(orders),
	}, nil
}

// Sales reduces fulfilled orders inside [start, end] to revenue figures.
// Revenue only counts delivered and shipped orders (legacy statuses folded
// first); everything else is excluded here but still shows up in the status
// breakdown.
func (a Aggregator) Sales(orders []models.Order, start, end time.Time) SalesReport {
	var fulfilled, windowed []models.Order
	for _, o := range orders {
		if !models.IsFulfilled(o.Status) {
			continue
		}
		fulfilled = append(fulfilled, o)
		if inWindow(o.CreatedAt, start, end) {
			windowed = append(windowed, o)
		}
	}

	selected := windowed
	if len(selected) == 0 && a.FallbackToAllTime {
		selected = fulfilled
	}

	var revenue float64
	for _, o := range selected {
		revenue += OrderTotal(o)
	}

	avg := 0.0
	if len(selected) > 0 {
		avg = revenue / float64(len(selected))
	}

	return SalesReport{
		TotalRevenue:      revenue,
		TotalOrders:       len(selected),
		AverageOrderValue: avg,
		TopSellingProduct: TopSellingProduct(selected),
		PeriodStart:       start.Format(time.RFC3339),
		PeriodEnd:         end.Format(time.RFC3339),
	}
}

// TopSellingProduct flattens the orders' line items, groups them by product
// reference and returns the name of the group with the highest summed
// quantity. Ties go to the group encountered first. "N/A" when there are no
// line items at all.
func TopSellingProduct(orders []models.Order) string {
	type accumulator struct {
		name     string
		quantity int
	}
	groups := make(map[string]*accumulator)
	var order []string

	for _, o := range orders {
		for _, it := range o.Items {
			key := itemKey(it)
			acc, ok := groups[key]
			if !ok {
				acc = &accumulator{name: itemName(it)}
				groups[key] = acc
				order = append(order, key)
			}
			acc.quantity += ParseQuantity(it.Quantity)
		}
	}

	if len(order) == 0 {
		return "N/A"
	}

	best := groups[order[0]]
	for _, key := range order[1:] {
		if groups[key].quantity > best.quantity {
			best = groups[key]
		}
	}
	return best.name
}

// Inventory reduces the product catalog to stock counts and valuation.
func Inventory(products []models.Product) InventoryReport {
	rep := InventoryReport{TotalProducts: len(products)}
	for _, p := range products {
		stock := p.Stock.Total()
		switch {
		case stock == 0:
			rep.OutOfStockProducts++
		case stock <= models.LowStockThreshold:
			rep.LowStockProducts++
		}
		rep.TotalValue += ParseMoney(&p.Price) * float64(stock)
	}
	return rep
}

// Customers reduces the user base against order history. ReturningCustomers
// counts users with at least one order; the name is inherited from the old
// storefront and kept for API compatibility.
func Customers(users []models.User, orders []models.Order, start, end time.Time) CustomerReport {
	rep := CustomerReport{TotalCustomers: len(users)}
	for _, u := range users {
		if inWindow(u.CreatedAt, start, end) {
			rep.NewCustomers++
		}
	}

	seen := make(map[string]struct{})
	for _, o := range orders {
		if o.UserID == "" {
			continue
		}
		seen[o.UserID] = struct{}{}
	}
	rep.ReturningCustomers = len(seen)

	if rep.TotalCustomers == 0 {
		rep.ConversionRate = "0.0"
	} else {
		rep.ConversionRate = fmt.Sprintf("%.1f",
			float64(rep.ReturningCustomers)/float64(rep.TotalCustomers)*100)
	}
	return rep
}

// OrderStatuses partitions all orders into exact-match buckets for the six
// canonical statuses. Date ranges never apply here, and unrecognized status
// strings fall into no bucket.
func OrderStatuses(orders []models.Order) OrderStatusReport {
	var rep OrderStatusReport
	for _, o := range orders {
		switch o.Status {
		case models.StatusPending:
			rep.Pending++
		case models.StatusProcessing:
			rep.Processing++
		case models.StatusShipped:
			rep.Shipped++
		case models.StatusOutForDelivery:
			rep.OutForDelivery++
		case models.StatusDelivered:
			rep.Delivered++
		case models.StatusCancelled:
			rep.Cancelled++
		}
	}
	return rep
}

// Growth is the period-over-period growth percentage between two windows of
// equal length.
func Growth(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}
