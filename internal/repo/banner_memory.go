package repo

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/commerce-admin/internal/models"
)

// InMemoryBannerRepository is an in-memory implementation of BannerRepository.
type InMemoryBannerRepository struct {
	banners []models.Banner
}

func NewInMemoryBannerRepository() *InMemoryBannerRepository {
	return &InMemoryBannerRepository{banners: []models.Banner{}}
}

func (r *InMemoryBannerRepository) Create(b models.Banner) (models.Banner, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	r.banners = append(r.banners, b)
	return b, nil
}

func (r *InMemoryBannerRepository) GetAll() ([]models.Banner, error) {
	sorted := make([]models.Banner, len(r.banners))
	copy(sorted, r.banners)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	return sorted, nil
}

func (r *InMemoryBannerRepository) GetByID(id string) (models.Banner, error) {
	for _, b := range r.banners {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Banner{}, ErrBannerNotFound
}

func (r *InMemoryBannerRepository) Update(banner models.Banner) (models.Banner, error) {
	for i, b := range r.banners {
		if b.ID == banner.ID {
			r.banners[i] = banner
			return banner, nil
		}
	}
	return models.Banner{}, ErrBannerNotFound
}

func (r *InMemoryBannerRepository) Delete(id string) error {
	for i, b := range r.banners {
		if b.ID == id {
			r.banners = append(r.banners[:i], r.banners[i+1:]...)
			return nil
		}
	}
	return ErrBannerNotFound
}

func (r *InMemoryBannerRepository) Clear() {
	r.banners = []models.Banner{}
}
