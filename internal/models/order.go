package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Canonical order statuses. Imported storefront documents may still carry
// legacy statuses (paid, confirmed, completed); NormalizeStatus folds those
// onto the canonical set.
const (
	StatusPending        = "pending"
	StatusProcessing     = "processing"
	StatusShipped        = "shipped"
	StatusOutForDelivery = "out for delivery"
	StatusDelivered      = "delivered"
	StatusCancelled      = "cancelled"
)

var statusAliases = map[string]string{
	"paid":      StatusDelivered,
	"completed": StatusDelivered,
	"confirmed": StatusProcessing,
}

// CanonicalStatuses returns the six recognized statuses in display order.
func CanonicalStatuses() []string {
	return []string{
		StatusPending,
		StatusProcessing,
		StatusShipped,
		StatusOutForDelivery,
		StatusDelivered,
		StatusCancelled,
	}
}

// NormalizeStatus lowercases a raw status and folds legacy aliases onto the
// canonical set. Unrecognized values come back lowercased as-is.
func NormalizeStatus(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if c, ok := statusAliases[s]; ok {
		return c
	}
	return s
}

// IsCanonicalStatus reports whether s is (exactly) one of the six canonical
// status strings.
func IsCanonicalStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// IsFulfilled reports whether an order's status counts toward revenue.
// Only delivered and shipped orders (after alias folding) do.
func IsFulfilled(status string) bool {
	s := NormalizeStatus(status)
	return s == StatusDelivered || s == StatusShipped
}

// Money decodes loosely-typed monetary fields from imported storefront
// documents. Numbers and numeric strings are accepted; null, absent or
// garbage values decode to 0 instead of failing the whole document.
type Money float64

func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*m = 0
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*m = 0
			return nil
		}
		*m = Money(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*m = 0
		return nil
	}
	*m = Money(v)
	return nil
}

// Quantity decodes loosely-typed quantity fields the same way. Defaulting of
// missing/zero quantities to 1 happens in the report package, not here.
type Quantity int

func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*q = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*q = 0
			return nil
		}
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			*q = 0
			return nil
		}
		*q = Quantity(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*q = 0
		return nil
	}
	*q = Quantity(int(v))
	return nil
}

// OrderItem is a single order line. Name/ProductName and ProductID/SKU pairs
// exist because older storefront exports used different field names; the
// report package resolves the fallbacks in one place.
type OrderItem struct {
	ProductID   string   `json:"product_id,omitempty"`
	SKU         string   `json:"sku,omitempty"`
	Name        string   `json:"name,omitempty"`
	ProductName string   `json:"product_name,omitempty"`
	Price       Money    `json:"price"`
	Quantity    Quantity `json:"quantity"`
}

// Order is a customer order as stored. Total is the current field;
// TotalAmount survives on documents imported from the old storefront. Both
// are optional on the wire, hence the pointers.
type Order struct {
	ID            string      `json:"id"`
	UserID        string      `json:"user_id"`
	Total         *Money      `json:"total,omitempty"`
	TotalAmount   *Money      `json:"total_amount,omitempty"`
	Status        string      `json:"status"`
	CustomerName  string      `json:"customer_name,omitempty"`
	CustomerEmail string      `json:"customer_email,omitempty"`
	Items         []OrderItem `json:"items"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at,omitempty"`
}
