package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/domain"
	apperrors "github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/errors"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/pagination"
)

// OrderRepository implements repository.OrderRepository using PostgreSQL.
// Line items and shipping details are frozen snapshots stored as JSONB so an
// order survives later catalog edits unchanged.
type OrderRepository struct {
	db DB
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(db DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts a new order into the database.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}

	shippingJSON, err := json.Marshal(o.ShippingDetails)
	if err != nil {
		return fmt.Errorf("marshal shipping details: %w", err)
	}

	query := `
		INSERT INTO orders (id, user_id, items, total_price, shipping_details, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.db.Exec(ctx, query,
		o.ID,
		o.UserID,
		itemsJSON,
		o.TotalPrice,
		shippingJSON,
		o.Status,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

// GetByID retrieves an order by its ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, user_id, items, total_price, shipping_details, status, created_at, updated_at
		FROM orders
		WHERE id = $1`

	return r.scanOrder(ctx, query, id)
}

// List returns a page of orders newest first with the total count.
func (r *OrderRepository) List(ctx context.Context, params pagination.Params) ([]*domain.Order, int, error) {
	query := `
		SELECT id, user_id, items, total_price, shipping_details, status, created_at, updated_at,
			   count(*) OVER() AS total_count
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, params.PerPage, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var totalCount int
	orders := []*domain.Order{}
	for rows.Next() {
		o, err := scanOrderRow(rows, &totalCount)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, totalCount, nil
}

// ListByUser returns one user's orders newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	query := `
		SELECT id, user_id, items, total_price, shipping_details, status, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list user orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		o, err := scanOrderRow(rows, nil)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}

// UpdateStatus changes an order's status and returns the updated order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	query := `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING id, user_id, items, total_price, shipping_details, status, created_at, updated_at`

	o, err := r.scanOrder(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("order", id)
		}
		return nil, err
	}

	return o, nil
}

// Delete removes an order by its ID.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM orders WHERE id = $1`

	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("order", id)
	}

	return nil
}

// scanOrder executes a query expected to return a single order row.
func (r *OrderRepository) scanOrder(ctx context.Context, query string, args ...any) (*domain.Order, error) {
	var (
		o            domain.Order
		itemsJSON    []byte
		shippingJSON []byte
	)

	err := r.db.QueryRow(ctx, query, args...).Scan(
		&o.ID,
		&o.UserID,
		&itemsJSON,
		&o.TotalPrice,
		&shippingJSON,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}

	if err := unmarshalOrderDocs(&o, itemsJSON, shippingJSON); err != nil {
		return nil, err
	}

	return &o, nil
}

// scanOrderRow scans one row from a multi-row order query. totalCount is
// non-nil when the query selects count(*) OVER() as its last column.
func scanOrderRow(rows pgx.Rows, totalCount *int) (*domain.Order, error) {
	var (
		o            domain.Order
		itemsJSON    []byte
		shippingJSON []byte
	)

	dest := []any{
		&o.ID,
		&o.UserID,
		&itemsJSON,
		&o.TotalPrice,
		&shippingJSON,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	}
	if totalCount != nil {
		dest = append(dest, totalCount)
	}

	if err := rows.Scan(dest...); err != nil {
		return nil, fmt.Errorf("scan order row: %w", err)
	}

	if err := unmarshalOrderDocs(&o, itemsJSON, shippingJSON); err != nil {
		return nil, err
	}

	return &o, nil
}

func unmarshalOrderDocs(o *domain.Order, itemsJSON, shippingJSON []byte) error {
	if itemsJSON != nil {
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			return fmt.Errorf("unmarshal order items: %w", err)
		}
	}
	if o.Items == nil {
		o.Items = []domain.OrderItem{}
	}

	if shippingJSON != nil {
		if err := json.Unmarshal(shippingJSON, &o.ShippingDetails); err != nil {
			return fmt.Errorf("unmarshal shipping details: %w", err)
		}
	}

	return nil
}
