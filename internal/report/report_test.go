package report

import (
	"testing"
	"time"

	"github.com/rogerio-castellano/commerce-admin/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func order(id, status string, total float64, createdAt time.Time, items ...models.OrderItem) models.Order {
	return models.Order{
		ID:        id,
		UserID:    "u-" + id,
		Total:     money(total),
		Status:    status,
		Items:     items,
		CreatedAt: createdAt,
	}
}

func TestGrowth(t *testing.T) {
	assert.Equal(t, 100.0, Growth(50, 0))
	assert.Equal(t, 0.0, Growth(0, 0))
	assert.Equal(t, -50.0, Growth(100, 200))
	assert.Equal(t, 25.0, Growth(125, 100))
}

func TestWindow(t *testing.T) {
	start, end, err := Window(Range7Days, testNow)
	require.NoError(t, err)
	assert.Equal(t, testNow.AddDate(0, 0, -7), start)
	assert.Equal(t, testNow, end)

	start, _, err = Window("", testNow)
	require.NoError(t, err)
	assert.Equal(t, testNow.AddDate(0, 0, -30), start)

	start, _, err = Window(RangeAll, testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Unix(0, 0).UTC(), start)

	_, _, err = Window("fortnight", testNow)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestSalesCountsOnlyFulfilledOrders(t *testing.T) {
	orders := []models.Order{
		order("1", models.StatusDelivered, 100, testNow.AddDate(0, 0, -1)),
		order("2", models.StatusPending, 50, testNow.AddDate(0, 0, -1)),
		order("3", models.StatusShipped, 30, testNow.AddDate(0, 0, -2)),
		order("4", models.StatusCancelled, 999, testNow.AddDate(0, 0, -2)),
	}

	rep := Aggregator{}.Sales(orders, testNow.AddDate(0, 0, -7), testNow)
	assert.Equal(t, 130.0, rep.TotalRevenue)
	assert.Equal(t, 2, rep.TotalOrders)
	assert.Equal(t, 65.0, rep.AverageOrderValue)
}

func TestSalesFoldsLegacyStatuses(t *testing.T) {
	orders := []models.Order{
		order("1", "paid", 100, testNow.AddDate(0, 0, -1)),
		order("2", "completed", 50, testNow.AddDate(0, 0, -1)),
		order("3", "confirmed", 25, testNow.AddDate(0, 0, -1)),
	}

	rep := Aggregator{}.Sales(orders, testNow.AddDate(0, 0, -7), testNow)
	assert.Equal(t, 150.0, rep.TotalRevenue)
	assert.Equal(t, 2, rep.TotalOrders)
}

func TestSalesEmptyWindowWithoutFallback(t *testing.T) {
	orders := []models.Order{
		order("1", models.StatusDelivered, 100, testNow.AddDate(0, -6, 0)),
	}

	rep := Aggregator{}.Sales(orders, testNow.AddDate(0, 0, -7), testNow)
	assert.Equal(t, 0.0, rep.TotalRevenue)
	assert.Equal(t, 0, rep.TotalOrders)
	assert.Equal(t, 0.0, rep.AverageOrderValue)
	assert.Equal(t, "N/A", rep.TopSellingProduct)
}

func TestSalesEmptyWindowFallsBackToAllTime(t *testing.T) {
	old := testNow.AddDate(0, -6, 0)
	orders := []models.Order{
		order("1", models.StatusDelivered, 100, old),
		order("2", models.StatusDelivered, 200, old.AddDate(0, 0, 1)),
		order("3", models.StatusShipped, 60, old.AddDate(0, 0, 2)),
		order("4", models.StatusPending, 500, old),
	}

	start, end := testNow.AddDate(0, 0, -7), testNow
	rep := Aggregator{FallbackToAllTime: true}.Sales(orders, start, end)

	assert.Equal(t, 3, rep.TotalOrders)
	assert.Equal(t, 360.0, rep.TotalRevenue)
	// the period fields still describe the requested window
	assert.Equal(t, start.Format(time.RFC3339), rep.PeriodStart)
	assert.Equal(t, end.Format(time.RFC3339), rep.PeriodEnd)
}

func TestTopSellingProduct(t *testing.T) {
	orders := []models.Order{
		order("1", models.StatusDelivered, 0, testNow,
			models.OrderItem{ProductID: "p1", Name: "Sneakers", Quantity: 3},
			models.OrderItem{ProductID: "p2", Name: "Socks", Quantity: 2},
		),
		order("2", models.StatusDelivered, 0, testNow,
			models.OrderItem{ProductID: "p2", Name: "Socks", Quantity: 2},
		),
	}
	assert.Equal(t, "Socks", TopSellingProduct(orders))
}

func TestTopSellingProductTieGoesToFirstEncountered(t *testing.T) {
	orders := []models.Order{
		order("1", models.StatusDelivered, 0, testNow,
			models.OrderItem{ProductID: "p1", Name: "Sneakers", Quantity: 2},
			models.OrderItem{ProductID: "p2", Name: "Socks", Quantity: 2},
		),
	}
	assert.Equal(t, "Sneakers", TopSellingProduct(orders))
}

func TestTopSellingProductKeyAndNameFallbacks(t *testing.T) {
	// missing quantity counts as 1, sku groups when product id is absent,
	// legacy product_name backs a missing name
	orders := []models.Order{
		order("1", models.StatusDelivered, 0, testNow,
			models.OrderItem{SKU: "sku-9", ProductName: "Legacy Hat"},
			models.OrderItem{SKU: "sku-9", ProductName: "Legacy Hat"},
			models.OrderItem{ProductID: "p1", Name: "Scarf", Quantity: 1},
		),
	}
	assert.Equal(t, "Legacy Hat", TopSellingProduct(orders))

	assert.Equal(t, UnknownProduct, TopSellingProduct([]models.Order{
		order("2", models.StatusDelivered, 0, testNow, models.OrderItem{Quantity: 5}),
	}))

	assert.Equal(t, "N/A", TopSellingProduct(nil))
}

func TestInventory(t *testing.T) {
	five := 5
	products := []models.Product{
		{Name: "a", Price: 10, Stock: models.Stock{Sizes: []int{3, 0, 7}}}, // 10, low boundary is inclusive
		{Name: "b", Price: 4, Stock: models.Stock{Sizes: []int{0, 0}}},    // out of stock
		{Name: "c", Price: 2, Stock: models.Stock{Count: &five}},          // low
		{Name: "d", Price: 1, Stock: models.StockOf(50)},                  // healthy
	}

	rep := Inventory(products)
	assert.Equal(t, 4, rep.TotalProducts)
	assert.Equal(t, 2, rep.LowStockProducts)
	assert.Equal(t, 1, rep.OutOfStockProducts)
	assert.Equal(t, 10.0*10+2*5+1*50, rep.TotalValue)
}

func TestCustomers(t *testing.T) {
	users := []models.User{
		{ID: "u1", CreatedAt: testNow.AddDate(0, 0, -2)},
		{ID: "u2", CreatedAt: testNow.AddDate(0, -3, 0)},
		{ID: "u3", CreatedAt: testNow.AddDate(0, -3, 0)},
		{ID: "u4", CreatedAt: testNow.AddDate(0, -3, 0)},
	}
	orders := []models.Order{
		{UserID: "u1", CreatedAt: testNow},
		{UserID: "u1", CreatedAt: testNow},
		{UserID: "u2", CreatedAt: testNow.AddDate(0, -1, 0)},
		{UserID: "", CreatedAt: testNow}, // guest checkout, not counted
	}

	rep := Customers(users, orders, testNow.AddDate(0, 0, -7), testNow)
	assert.Equal(t, 4, rep.TotalCustomers)
	assert.Equal(t, 1, rep.NewCustomers)
	assert.Equal(t, 2, rep.ReturningCustomers)
	assert.Equal(t, "50.0", rep.ConversionRate)
}

func TestCustomersEmptyBase(t *testing.T) {
	rep := Customers(nil, nil, testNow.AddDate(0, 0, -7), testNow)
	assert.Equal(t, "0.0", rep.ConversionRate)
}

func TestOrderStatusesExactMatchOnly(t *testing.T) {
	orders := []models.Order{
		{Status: models.StatusPending},
		{Status: models.StatusOutForDelivery},
		{Status: models.StatusDelivered},
		{Status: "paid"},      // legacy alias, not an exact bucket
		{Status: "Delivered"}, // wrong casing, not an exact bucket
		{Status: "mystery"},
	}

	rep := OrderStatuses(orders)
	assert.Equal(t, 1, rep.Pending)
	assert.Equal(t, 1, rep.OutForDelivery)
	assert.Equal(t, 1, rep.Delivered)
	assert.Equal(t, 0, rep.Processing)

	bucketed := rep.Pending + rep.Processing + rep.Shipped +
		rep.OutForDelivery + rep.Delivered + rep.Cancelled
	assert.LessOrEqual(t, bucketed, len(orders))
}

func TestFullReport(t *testing.T) {
	users := []models.User{{ID: "u-1", CreatedAt: testNow.AddDate(0, 0, -3)}}
	orders := []models.Order{
		order("1", models.StatusDelivered, 100, testNow.AddDate(0, 0, -1),
			models.OrderItem{ProductID: "p1", Name: "Sneakers", Quantity: 2}),
		order("2", models.StatusPending, 50, testNow.AddDate(0, 0, -1)),
	}
	products := []models.Product{{Name: "Sneakers", Price: 50, Stock: models.StockOf(20)}}

	rep, err := Aggregator{}.Full(orders, users, products, Range30Days, testNow)
	require.NoError(t, err)

	assert.Equal(t, 100.0, rep.Sales.TotalRevenue)
	assert.Equal(t, 1, rep.Sales.TotalOrders)
	assert.Equal(t, "Sneakers", rep.Sales.TopSellingProduct)
	assert.Equal(t, 1, rep.Inventory.TotalProducts)
	assert.Equal(t, 1, rep.Orders.Pending)
	assert.Equal(t, 1, rep.Orders.Delivered)

	_, err = Aggregator{}.Full(orders, users, products, "bogus", testNow)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestFullReportIsIdempotent(t *testing.T) {
	orders := []models.Order{
		order("1", models.StatusDelivered, 100, testNow.AddDate(0, 0, -1),
			models.OrderItem{ProductID: "p1", Name: "Sneakers", Quantity: 2}),
	}
	first, err := Aggregator{}.Full(orders, nil, nil, Range30Days, testNow)
	require.NoError(t, err)
	second, err := Aggregator{}.Full(orders, nil, nil, Range30Days, testNow)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
