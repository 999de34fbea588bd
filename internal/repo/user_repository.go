package repo

import (
	"errors"

	"github.com/rogerio-castellano/commerce-admin/internal/models"
)

// UserRepository defines the interface for user data operations. GetByID is
// what the dashboard's recent-orders enrichment uses.
type UserRepository interface {
	CreateUser(user models.User) (models.User, error)
	GetAll() ([]models.User, error)
	GetByID(id string) (models.User, error)
	GetByEmail(email string) (models.User, error)
}

var ErrUserNotFound = errors.New("user not found")
