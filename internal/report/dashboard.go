package report

import (
	"sort"
	"strings"
	"time"

	"github.com/rogerio-castellano/commerce-admin/internal/models"
)

// UserLookup resolves an order's owning user for the recent-orders widget.
// repo.UserRepository satisfies it; a nil lookup skips resolution and falls
// straight to the order's embedded customer fields.
type UserLookup interface {
	GetByID(id string) (models.User, error)
}

// EnrichedOrder is a recent order augmented with its customer's display
// name and email.
type EnrichedOrder struct {
	ID            string  `json:"id"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	Total         float64 `json:"total"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
}

// DashboardSummary backs the landing-page widget served by
// /api/dashboard/stats.
type DashboardSummary struct {
	TotalSales         float64           `json:"totalSales"`
	TotalOrders        int               `json:"totalOrders"`
	SalesGrowth        float64           `json:"salesGrowth"`
	OrdersGrowth       float64           `json:"ordersGrowth"`
	CustomersGrowth    float64           `json:"customersGrowth"`
	PendingOrdersCount int               `json:"pendingOrdersCount"`
	TopProduct         string            `json:"topProduct"`
	StatusBreakdown    OrderStatusReport `json:"statusBreakdown"`
	RecentOrders       []EnrichedOrder   `json:"recentOrders"`
}

const recentOrdersLimit = 10

// Dashboard computes the landing-page summary: all-time totals, rolling
// 30-day growth against the 30 days before that, a calendar-month top
// product, the full status breakdown, and the ten most recent orders with
// customer details resolved through lookup.
func (a Aggregator) Dashboard(orders []models.Order, users []models.User, now time.Time, lookup UserLookup) DashboardSummary {
	var totalSales float64
	for _, o := range orders {
		if models.IsFulfilled(o.Status) {
			totalSales += OrderTotal(o)
		}
	}

	curStart := now.AddDate(0, 0, -30)
	prevStart := now.AddDate(0, 0, -60)

	var curSales, prevSales float64
	var curOrders, prevOrders int
	for _, o := range orders {
		switch {
		case inWindow(o.CreatedAt, curStart, now):
			curOrders++
			if models.IsFulfilled(o.Status) {
				curSales += OrderTotal(o)
			}
		case inWindow(o.CreatedAt, prevStart, curStart.Add(-time.Nanosecond)):
			prevOrders++
			if models.IsFulfilled(o.Status) {
				prevSales += OrderTotal(o)
			}
		}
	}

	var curUsers, prevUsers int
	for _, u := range users {
		switch {
		case inWindow(u.CreatedAt, curStart, now):
			curUsers++
		case inWindow(u.CreatedAt, prevStart, curStart.Add(-time.Nanosecond)):
			prevUsers++
		}
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var monthOrders []models.Order
	for _, o := range orders {
		if !o.CreatedAt.Before(monthStart) && !o.CreatedAt.After(now) {
			monthOrders = append(monthOrders, o)
		}
	}

	return DashboardSummary{
		TotalSales:         totalSales,
		TotalOrders:        len(orders),
		SalesGrowth:        Growth(curSales, prevSales),
		OrdersGrowth:       Growth(float64(curOrders), float64(prevOrders)),
		CustomersGrowth:    Growth(float64(curUsers), float64(prevUsers)),
		PendingOrdersCount: pendingCount(orders),
		TopProduct:         TopSellingProduct(monthOrders),
		StatusBreakdown:    OrderStatuses(orders),
		RecentOrders:       recentOrders(orders, lookup),
	}
}

// pendingCount counts orders still in flight. The match is case-insensitive
// on purpose: imported documents are inconsistent about casing.
func pendingCount(orders []models.Order) int {
	count := 0
	for _, o := range orders {
		switch strings.ToLower(strings.TrimSpace(o.Status)) {
		case models.StatusPending, models.StatusProcessing, models.StatusOutForDelivery:
			count++
		}
	}
	return count
}

func recentOrders(orders []models.Order, lookup UserLookup) []EnrichedOrder {
	sorted := make([]models.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > recentOrdersLimit {
		sorted = sorted[:recentOrdersLimit]
	}

	enriched := make([]EnrichedOrder, len(sorted))
	for i, o := range sorted {
		name, email := o.CustomerName, o.CustomerEmail
		if lookup != nil && o.UserID != "" {
			if u, err := lookup.GetByID(o.UserID); err == nil {
				if u.Name != "" {
					name = u.Name
				}
				if u.Email != "" {
					email = u.Email
				}
			}
		}
		if name == "" {
			name = "N/A"
		}
		if email == "" {
			email = "N/A"
		}
		enriched[i] = EnrichedOrder{
			ID:            o.ID,
			CustomerName:  name,
			CustomerEmail: email,
			Total:         OrderTotal(o),
			Status:        o.Status,
			CreatedAt:     o.CreatedAt.Format(time.RFC3339),
		}
	}
	return enriched
}
