package repo

import (
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/commerce-admin/internal/models"
)

// InMemoryOrderRepository is an in-memory implementation of OrderRepository.
type InMemoryOrderRepository struct {
	orders []models.Order
}

// NewInMemoryOrderRepository creates a new instance of InMemoryOrderRepository.
func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{orders: []models.Order{}}
}

func (r *InMemoryOrderRepository) Create(o models.Order) (models.Order, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	r.orders = append(r.orders, o)
	return o, nil
}

func (r *InMemoryOrderRepository) GetAll() ([]models.Order, error) {
	return r.orders, nil
}

func (r *InMemoryOrderRepository) GetByID(id string) (models.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Order{}, ErrOrderNotFound
}

func (r *InMemoryOrderRepository) UpdateStatus(id string, status string) (models.Order, error) {
	for i, o := range r.orders {
		if o.ID == id {
			r.orders[i].Status = status
			r.orders[i].UpdatedAt = time.Now().UTC()
			return r.orders[i], nil
		}
	}
	return models.Order{}, ErrOrderNotFound
}

func (r *InMemoryOrderRepository) Delete(id string) error {
	for i, o := range r.orders {
		if o.ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return ErrOrderNotFound
}

func (r *InMemoryOrderRepository) Filter(f OrderFilter) ([]models.Order, int, error) {
	var filtered []models.Order
	for _, o := range r.orders {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.Since != nil && o.CreatedAt.Before(*f.Since) {
			continue
		}
		if f.Until != nil && o.CreatedAt.After(*f.Until) {
			continue
		}
		filtered = append(filtered, o)
	}

	if f.Offset != nil && *f.Offset > len(filtered) {
		return []models.Order{}, len(filtered), nil
	}

	start := 0
	if f.Offset != nil {
		start = clamp(*f.Offset, 0, len(filtered))
	}
	end := len(filtered)
	if f.Limit != nil && *f.Limit > 0 {
		end = clamp(start+*f.Limit, start, len(filtered))
	}
	return filtered[start:end], len(filtered), nil
}

func (r *InMemoryOrderRepository) Clear() {
	r.orders = []models.Order{}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
