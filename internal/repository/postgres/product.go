package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/domain"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/database"
	apperrors "github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/errors"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/pagination"
)

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	db DB
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product into the database.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (err error) {
	specsJSON, err := json.Marshal(p.Specifications)
	if err != nil {
		return fmt.Errorf("marshal specifications: %w", err)
	}

	query := `
		INSERT INTO products (id, name, slug, description, price, category, images, specifications, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	ctx, end := database.TraceQuery(ctx, "CreateProduct", query)
	defer func() { end(err) }()

	_, err = r.db.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Slug,
		p.Description,
		p.Price,
		p.Category,
		p.Images,
		specsJSON,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "slug", p.Slug)
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT id, name, slug, description, price, category, images, specifications, created_at, updated_at
		FROM products
		WHERE id = $1`

	return r.scanProduct(ctx, query, id)
}

// List returns a page of products newest first with the total count.
func (r *ProductRepository) List(ctx context.Context, params pagination.Params) (products []*domain.Product, totalCount int, err error) {
	// count(*) OVER() returns the total in the same query.
	query := `
		SELECT id, name, slug, description, price, category, images, specifications, created_at, updated_at,
			   count(*) OVER() AS total_count
		FROM products
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	ctx, end := database.TraceQuery(ctx, "ListProducts", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, params.PerPage, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products = []*domain.Product{}
	for rows.Next() {
		var (
			p         domain.Product
			specsJSON []byte
		)

		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Slug,
			&p.Description,
			&p.Price,
			&p.Category,
			&p.Images,
			&specsJSON,
			&p.CreatedAt,
			&p.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}

		if specsJSON != nil {
			if err := json.Unmarshal(specsJSON, &p.Specifications); err != nil {
				return nil, 0, fmt.Errorf("unmarshal specifications: %w", err)
			}
		}

		products = append(products, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, totalCount, nil
}

// Categories returns the distinct product categories in alphabetical order.
func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT category
		FROM products
		WHERE category <> ''
		ORDER BY category`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}

	return categories, nil
}

// Update modifies an existing product.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	specsJSON, err := json.Marshal(p.Specifications)
	if err != nil {
		return fmt.Errorf("marshal specifications: %w", err)
	}

	p.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE products
		SET name = $1, slug = $2, description = $3, price = $4, category = $5,
		    images = $6, specifications = $7, updated_at = $8
		WHERE id = $9`

	ct, err := r.db.Exec(ctx, query,
		p.Name,
		p.Slug,
		p.Description,
		p.Price,
		p.Category,
		p.Images,
		specsJSON,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "slug", p.Slug)
		}
		return fmt.Errorf("update product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", p.ID)
	}

	return nil
}

// Delete removes a product by its ID.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM products WHERE id = $1`

	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", id)
	}

	return nil
}

// scanProduct executes a query expected to return a single product row.
func (r *ProductRepository) scanProduct(ctx context.Context, query string, args ...any) (*domain.Product, error) {
	var (
		p         domain.Product
		specsJSON []byte
	)

	err := r.db.QueryRow(ctx, query, args...).Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.Price,
		&p.Category,
		&p.Images,
		&specsJSON,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	if specsJSON != nil {
		if err := json.Unmarshal(specsJSON, &p.Specifications); err != nil {
			return nil, fmt.Errorf("unmarshal specifications: %w", err)
		}
	}

	return &p, nil
}
