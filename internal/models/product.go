package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Stock holds a product's stock, which storefront documents encode either as
// a single count or as a per-size array. At most one of Sizes/Count is set;
// neither means the document carried no usable stock field.
type Stock struct {
	Sizes []int
	Count *int
}

func (s *Stock) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*s = Stock{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '[' {
		var sizes []int
		if err := json.Unmarshal(data, &sizes); err != nil {
			return nil
		}
		s.Sizes = sizes
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return nil
	}
	c := int(n)
	s.Count = &c
	return nil
}

func (s Stock) MarshalJSON() ([]byte, error) {
	if s.Sizes != nil {
		return json.Marshal(s.Sizes)
	}
	if s.Count != nil {
		return json.Marshal(*s.Count)
	}
	return []byte("0"), nil
}

// Total collapses either representation to a single non-negative count.
func (s Stock) Total() int {
	if s.Sizes != nil {
		total := 0
		for _, v := range s.Sizes {
			if v > 0 {
				total += v
			}
		}
		return total
	}
	if s.Count != nil && *s.Count > 0 {
		return *s.Count
	}
	return 0
}

// StockOf builds a scalar Stock, mostly for tests and seed data.
func StockOf(count int) Stock {
	return Stock{Count: &count}
}

// Product represents a catalog product.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     Money     `json:"price"`
	Stock     Stock     `json:"stock"`
	Category  string    `json:"category,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// LowStockThreshold is the inclusive upper bound for a product to count as
// low stock. Zero stock counts as out of stock, not low stock.
const LowStockThreshold = 10
