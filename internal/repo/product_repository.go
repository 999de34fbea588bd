package repo

import (
	"errors"

	"github.com/rogerio-castellano/commerce-admin/internal/models"
)

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	GetAll() ([]models.Product, error)
	GetByID(id string) (models.Product, error)
	Update(product models.Product) (models.Product, error)
	Delete(id string) error
	Filter(f ProductFilter) ([]models.Product, int, error)
}

var (
	ErrProductNotFound       = errors.New("product not found")
	ErrDuplicatedValueUnique = errors.New("duplicated value in unique column")
)
