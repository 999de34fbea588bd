package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/commerce-admin/internal/models"
)

type PostgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

const orderColumns = `id, user_id, total, total_amount, status, customer_name, customer_email, items, created_at`

func (r *PostgresOrderRepository) Create(o models.Order) (models.Order, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	items, err := json.Marshal(o.Items)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to encode order items: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	query := `INSERT INTO orders (id, user_id, total, total_amount, status, customer_name, customer_email, items, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.db.ExecContext(ctx, query,
		o.ID, o.UserID, moneyArg(o.Total), moneyArg(o.TotalAmount), o.Status,
		o.CustomerName, o.CustomerEmail, items, o.CreatedAt, o.UpdatedAt)
	return o, err
}

func (r *PostgresOrderRepository) GetAll() ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r *PostgresOrderRepository) GetByID(id string) (models.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, ErrOrderNotFound
	}
	return o, err
}

func (r *PostgresOrderRepository) UpdateStatus(id string, status string) (models.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id)
	if err != nil {
		return models.Order{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Order{}, ErrOrderNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresOrderRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *PostgresOrderRepository) Filter(f OrderFilter) ([]models.Order, int, error) {
	conditions := ""
	args := []any{}
	argIdx := 1

	if f.Status != "" {
		conditions += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, f.Status)
		argIdx++
	}
	if f.Since != nil {
		conditions += fmt.Sprintf(" AND created_at >= $%d", argIdx)
		args = append(args, *f.Since)
		argIdx++
	}
	if f.Until != nil {
		conditions += fmt.Sprintf(" AND created_at <= $%d", argIdx)
		args = append(args, *f.Until)
		argIdx++
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var totalCount int
	row := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders WHERE 1=1"+conditions, args...)
	if err := row.Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1` + conditions + ` ORDER BY created_at DESC`
	if f.Limit != nil && *f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *f.Limit)
		argIdx++
	}
	if f.Offset != nil && *f.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	return orders, totalCount, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (models.Order, error) {
	var (
		o           models.Order
		total       sql.NullFloat64
		totalAmount sql.NullFloat64
		items       []byte
	)
	err := row.Scan(&o.ID, &o.UserID, &total, &totalAmount, &o.Status,
		&o.CustomerName, &o.CustomerEmail, &items, &o.CreatedAt)
	if err != nil {
		return models.Order{}, err
	}
	if total.Valid {
		m := models.Money(total.Float64)
		o.Total = &m
	}
	if totalAmount.Valid {
		m := models.Money(totalAmount.Float64)
		o.TotalAmount = &m
	}
	if len(items) > 0 {
		// item fields are loosely typed on purpose, a bad element decodes
		// to defaults rather than failing the row
		_ = json.Unmarshal(items, &o.Items)
	}
	return o, nil
}

func scanOrders(rows *sql.Rows) ([]models.Order, error) {
	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func moneyArg(m *models.Money) any {
	if m == nil {
		return nil
	}
	return float64(*m)
}
