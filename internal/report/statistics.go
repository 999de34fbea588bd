package report

import (
	"time"

	"github.com/rogerio-castellano/commerce-admin/internal/models"
)

// MonthlyRevenue is one point of the revenue-per-month chart.
type MonthlyRevenue struct {
	Month       string  `json:"month"`
	MonthNumber int     `json:"monthNumber"`
	Revenue     float64 `json:"revenue"`
}

// Statistics backs /api/statistics: storefront-wide totals plus a monthly
// revenue series for the current year.
type Statistics struct {
	TotalRevenue   float64           `json:"totalRevenue"`
	TotalOrders    int               `json:"totalOrders"`
	TotalCustomers int               `json:"totalCustomers"`
	TotalProducts  int               `json:"totalProducts"`
	OrderStatus    OrderStatusReport `json:"orderStatus"`
	MonthlyRevenue []MonthlyRevenue  `json:"monthlyRevenue"`
}

// BuildStatistics reduces the three collections to overview numbers and the
// current year's per-month fulfilled revenue. All twelve months are present,
// zero-filled where no sales happened.
func BuildStatistics(orders []models.Order, users []models.User, products []models.Product, now time.Time) Statistics {
	stats := Statistics{
		TotalOrders:    len(orders),
		TotalCustomers: len(users),
		TotalProducts:  len(products),
		OrderStatus:    OrderStatuses(orders),
	}

	var byMonth [12]float64
	for _, o := range orders {
		if !models.IsFulfilled(o.Status) {
			continue
		}
		total := OrderTotal(o)
		stats.TotalRevenue += total
		if o.CreatedAt.Year() == now.Year() {
			byMonth[o.CreatedAt.Month()-1] += total
		}
	}

	stats.MonthlyRevenue = make([]MonthlyRevenue, 12)
	for i := range byMonth {
		month := time.Month(i + 1)
		stats.MonthlyRevenue[i] = MonthlyRevenue{
			Month:       month.String()[:3],
			MonthNumber: i + 1,
			Revenue:     byMonth[i],
		}
	}
	return stats
}
