package report

import (
	"github.com/rogerio-castellano/commerce-admin/internal/models"
)

// UnknownProduct labels line items whose documents carry neither a name nor
// a legacy product_name field.
const UnknownProduct = "Unknown Product"

// ParseMoney coerces an optional monetary field to a non-negative float.
// Absent or negative values count as 0; a malformed field never aborts a
// report.
func ParseMoney(m *models.Money) float64 {
	if m == nil || *m < 0 {
		return 0
	}
	return float64(*m)
}

// ParseQuantity coerces a line-item quantity to a positive integer. Missing
// or non-positive quantities default to 1, matching how the storefront
// treated falsy quantities.
func ParseQuantity(q models.Quantity) int {
	if q <= 0 {
		return 1
	}
	return int(q)
}

// OrderTotal resolves an order's monetary total: the current total field
// wins, then the legacy total_amount field, then 0.
func OrderTotal(o models.Order) float64 {
	if o.Total != nil {
		return ParseMoney(o.Total)
	}
	return ParseMoney(o.TotalAmount)
}

// itemName resolves a line item's display name, preferring the current name
// field over the legacy product_name one.
func itemName(it models.OrderItem) string {
	if it.Name != "" {
		return it.Name
	}
	if it.ProductName != "" {
		return it.ProductName
	}
	return UnknownProduct
}

// itemKey resolves the grouping key for top-product aggregation: product id,
// then the alternate SKU reference, then the display name.
func itemKey(it models.OrderItem) string {
	if it.ProductID != "" {
		return it.ProductID
	}
	if it.SKU != "" {
		return it.SKU
	}
	return itemName(it)
}
