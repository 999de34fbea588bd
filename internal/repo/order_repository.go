package repo

import (
	"errors"
	"time"

	"github.com/rogerio-castellano/commerce-admin/internal/models"
)

// OrderFilter narrows and paginates order listings.
type OrderFilter struct {
	Status string
	Since  *time.Time
	Until  *time.Time
	Offset *int
	Limit  *int
}

// OrderRepository defines the interface for order data operations. GetAll
// returns the unfiltered collection; the report layer does its own windowing
// in memory.
type OrderRepository interface {
	Create(order models.Order) (models.Order, error)
	GetAll() ([]models.Order, error)
	GetByID(id string) (models.Order, error)
	UpdateStatus(id string, status string) (models.Order, error)
	Delete(id string) error
	Filter(f OrderFilter) ([]models.Order, int, error)
}

var ErrOrderNotFound = errors.New("order not found")
