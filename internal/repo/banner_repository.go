package repo

import (
	"errors"

	"github.com/rogerio-castellano/commerce-admin/internal/models"
)

// BannerRepository defines the interface for promo banner data operations.
type BannerRepository interface {
	Create(banner models.Banner) (models.Banner, error)
	GetAll() ([]models.Banner, error)
	GetByID(id string) (models.Banner, error)
	Update(banner models.Banner) (models.Banner, error)
	Delete(id string) error
}

var ErrBannerNotFound = errors.New("banner not found")
