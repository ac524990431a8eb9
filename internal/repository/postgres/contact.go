package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/domain"
	apperrors "github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/errors"
)

// ContactMessageRepository implements repository.ContactMessageRepository using PostgreSQL.
type ContactMessageRepository struct {
	db DB
}

// NewContactMessageRepository creates a new PostgreSQL-backed contact message repository.
func NewContactMessageRepository(db DB) *ContactMessageRepository {
	return &ContactMessageRepository{db: db}
}

// Create inserts a new contact message.
func (r *ContactMessageRepository) Create(ctx context.Context, m *domain.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, full_name, email, subject, message, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		m.ID,
		m.FullName,
		m.Email,
		m.Subject,
		m.Message,
		m.CreatedBy,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}

	return nil
}

// GetByID retrieves a contact message by ID.
func (r *ContactMessageRepository) GetByID(ctx context.Context, id string) (*domain.ContactMessage, error) {
	query := `
		SELECT id, full_name, email, subject, message, created_by, created_at
		FROM contact_messages
		WHERE id = $1`

	var m domain.ContactMessage
	err := r.db.QueryRow(ctx, query, id).Scan(
		&m.ID,
		&m.FullName,
		&m.Email,
		&m.Subject,
		&m.Message,
		&m.CreatedBy,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("contact message", id)
		}
		return nil, fmt.Errorf("scan contact message: %w", err)
	}

	return &m, nil
}

// List returns all contact messages newest first.
func (r *ContactMessageRepository) List(ctx context.Context) ([]*domain.ContactMessage, error) {
	query := `
		SELECT id, full_name, email, subject, message, created_by, created_at
		FROM contact_messages
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	messages := []*domain.ContactMessage{}
	for rows.Next() {
		var m domain.ContactMessage
		if err := rows.Scan(
			&m.ID,
			&m.FullName,
			&m.Email,
			&m.Subject,
			&m.Message,
			&m.CreatedBy,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan contact message row: %w", err)
		}
		messages = append(messages, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contact message rows: %w", err)
	}

	return messages, nil
}

// Delete removes a contact message by ID.
func (r *ContactMessageRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM contact_messages WHERE id = $1`

	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete contact message: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("contact message", id)
	}

	return nil
}
