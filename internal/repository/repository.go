package repository

import (
	"context"

	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/domain"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/pagination"
)

// CartRepository persists carts keyed by owner identity.
type CartRepository interface {
	// Get retrieves the cart filed under the owner key. Returns a NotFound
	// error if no cart exists.
	Get(ctx context.Context, owner domain.CartOwner) (*domain.Cart, error)

	// SaveIfVersion persists the cart only if the stored version still equals
	// expectedVersion (a missing cart counts as version 0). Returns false
	// without error when another writer got there first.
	SaveIfVersion(ctx context.Context, cart *domain.Cart, expectedVersion int) (bool, error)

	// Delete removes the owner's cart. Deleting a missing cart is not an error.
	Delete(ctx context.Context, owner domain.CartOwner) error
}

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
}

// ProductRepository persists catalog entries.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, params pagination.Params) ([]*domain.Product, int, error)
	Categories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
}

// OrderRepository persists order snapshots.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// List returns orders newest first along with the total count.
	List(ctx context.Context, params pagination.Params) ([]*domain.Order, int, error)
	// ListByUser returns one user's orders newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

// ContactMessageRepository persists contact form submissions.
type ContactMessageRepository interface {
	Create(ctx context.Context, m *domain.ContactMessage) error
	GetByID(ctx context.Context, id string) (*domain.ContactMessage, error)
	// List returns messages newest first.
	List(ctx context.Context) ([]*domain.ContactMessage, error)
	Delete(ctx context.Context, id string) error
}
