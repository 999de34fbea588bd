package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/commerce-admin/internal/models"
)

type PostgresBannerRepository struct {
	db *sql.DB
}

func NewPostgresBannerRepository(db *sql.DB) *PostgresBannerRepository {
	return &PostgresBannerRepository{db: db}
}

func (r *PostgresBannerRepository) Create(b models.Banner) (models.Banner, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	query := `INSERT INTO banners (id, title, image_url, link, active, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.Title, b.ImageURL, b.Link, b.Active, b.Position, b.CreatedAt, b.UpdatedAt)
	return b, err
}

func (r *PostgresBannerRepository) GetAll() ([]models.Banner, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, image_url, link, active, position, created_at FROM banners ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var banners []models.Banner
	for rows.Next() {
		var b models.Banner
		if err := rows.Scan(&b.ID, &b.Title, &b.ImageURL, &b.Link, &b.Active, &b.Position, &b.CreatedAt); err != nil {
			return nil, err
		}
		banners = append(banners, b)
	}
	return banners, rows.Err()
}

func (r *PostgresBannerRepository) GetByID(id string) (models.Banner, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var b models.Banner
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, image_url, link, active, position, created_at FROM banners WHERE id = $1`, id).
		Scan(&b.ID, &b.Title, &b.ImageURL, &b.Link, &b.Active, &b.Position, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Banner{}, ErrBannerNotFound
	}
	return b, err
}

func (r *PostgresBannerRepository) Update(b models.Banner) (models.Banner, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	query := `UPDATE banners SET title = $1, image_url = $2, link = $3, active = $4, position = $5, updated_at = $6 WHERE id = $7`
	res, err := r.db.ExecContext(ctx, query,
		b.Title, b.ImageURL, b.Link, b.Active, b.Position, b.UpdatedAt, b.ID)
	if err != nil {
		return models.Banner{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Banner{}, ErrBannerNotFound
	}
	return b, nil
}

func (r *PostgresBannerRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrBannerNotFound
	}
	return nil
}
