package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/domain"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/event"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/repository"
	apperrors "github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/errors"
)

// Cart operation upper-bound limits to prevent abuse.
const (
	// MaxQuantityPerItem is the maximum quantity allowed for a single cart line.
	MaxQuantityPerItem = 100
	// MaxItemsPerCart is the maximum number of distinct lines allowed in a cart.
	MaxItemsPerCart = 50
)

// AddItemInput holds the parameters for adding an item to a cart. Name, Price
// and Thumbnail are optional; when absent they are resolved from the catalog.
type AddItemInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Thumbnail string `json:"thumbnail"`
}

// CartService implements the business logic for cart operations. Both the
// REST and GraphQL transports drive this one service, so the two surfaces
// can never drift apart on cart semantics.
type CartService struct {
	repo     repository.CartRepository
	products repository.ProductRepository
	producer *event.Producer
	logger   *slog.Logger
	cartTTL  time.Duration
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, products repository.ProductRepository, producer *event.Producer, logger *slog.Logger, cartTTL time.Duration) *CartService {
	return &CartService{
		repo:     repo,
		products: products,
		producer: producer,
		logger:   logger,
		cartTTL:  cartTTL,
	}
}

// GetCart retrieves the owner's cart. If no cart exists, returns an empty cart
// without persisting it.
func (s *CartService) GetCart(ctx context.Context, owner domain.CartOwner) (*domain.Cart, error) {
	if owner.IsZero() {
		return nil, apperrors.InvalidInput("cart owner is required")
	}

	cart, err := s.repo.Get(ctx, owner)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.newEmptyCart(owner), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return cart, nil
}

// GetCartResolved retrieves the owner's cart with each line refreshed against
// the current catalog entry. Lines whose product has since been deleted keep
// their stored snapshot.
func (s *CartService) GetCartResolved(ctx context.Context, owner domain.CartOwner) (*domain.Cart, error) {
	cart, err := s.GetCart(ctx, owner)
	if err != nil {
		return nil, err
	}

	for i := range cart.Items {
		product, err := s.products.GetByID(ctx, cart.Items[i].ProductID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("resolve cart item: %w", err)
		}
		cart.Items[i].Name = product.Name
		cart.Items[i].Price = product.Price
		cart.Items[i].Thumbnail = product.Thumbnail()
	}

	return cart, nil
}

// AddItem adds a product to the owner's cart, creating the cart if needed.
// Adding a product already in the cart accumulates its quantity. A zero
// quantity defaults to one. Uses optimistic locking so concurrent
// modifications surface as a conflict instead of silently losing a write.
func (s *CartService) AddItem(ctx context.Context, owner domain.CartOwner, input AddItemInput) (*domain.Cart, error) {
	if owner.IsZero() {
		return nil, apperrors.InvalidInput("cart owner is required")
	}
	if input.ProductID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if input.Quantity < 0 {
		return nil, apperrors.InvalidInput("quantity must not be negative")
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	// Fill in product data the caller did not supply.
	if input.Name == "" || input.Price == 0 {
		product, err := s.products.GetByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NotFound("product", input.ProductID)
			}
			return nil, fmt.Errorf("lookup product: %w", err)
		}
		input.Name = product.Name
		input.Price = product.Price
		if input.Thumbnail == "" {
			input.Thumbnail = product.Thumbnail()
		}
	}

	cart, err := s.getOrCreateCart(ctx, owner)
	if err != nil {
		return nil, err
	}

	expectedVersion := cart.Version

	if i := cart.FindItem(input.ProductID); i >= 0 {
		newQty := cart.Items[i].Quantity + input.Quantity
		if newQty > MaxQuantityPerItem {
			return nil, apperrors.InvalidInput(fmt.Sprintf("combined quantity must not exceed %d", MaxQuantityPerItem))
		}
		cart.Items[i].Quantity = newQty
		// Refresh the snapshot in case the catalog entry changed.
		cart.Items[i].Name = input.Name
		cart.Items[i].Price = input.Price
		cart.Items[i].Thumbnail = input.Thumbnail
	} else {
		if len(cart.Items) >= MaxItemsPerCart {
			return nil, apperrors.InvalidInput(fmt.Sprintf("cart must not contain more than %d items", MaxItemsPerCart))
		}
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID: input.ProductID,
			Name:      input.Name,
			Price:     input.Price,
			Quantity:  input.Quantity,
			Thumbnail: input.Thumbnail,
		})
	}

	if err := s.save(ctx, cart, expectedVersion); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("owner_key", owner.Key()),
		slog.String("product_id", input.ProductID),
		slog.Int("quantity", input.Quantity),
	)

	return cart, nil
}

// UpdateQuantity sets the quantity of a cart line. Quantities below one are
// rejected; removal goes through RemoveItem.
func (s *CartService) UpdateQuantity(ctx context.Context, owner domain.CartOwner, productID string, quantity int) (*domain.Cart, error) {
	if owner.IsZero() {
		return nil, apperrors.InvalidInput("cart owner is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if quantity < 1 {
		return nil, apperrors.InvalidInput("quantity must be at least 1")
	}
	if quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	cart, err := s.repo.Get(ctx, owner)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("cart", owner.Key())
		}
		return nil, fmt.Errorf("get cart for update: %w", err)
	}

	expectedVersion := cart.Version

	i := cart.FindItem(productID)
	if i < 0 {
		return nil, apperrors.NotFound("cart item", productID)
	}
	cart.Items[i].Quantity = quantity

	if err := s.save(ctx, cart, expectedVersion); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "cart item quantity updated",
		slog.String("owner_key", owner.Key()),
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// RemoveItem removes a product line from the cart. Removing a line that is
// not there, or from a cart that does not exist, is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, owner domain.CartOwner, productID string) (*domain.Cart, error) {
	if owner.IsZero() {
		return nil, apperrors.InvalidInput("cart owner is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	cart, err := s.repo.Get(ctx, owner)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.newEmptyCart(owner), nil
		}
		return nil, fmt.Errorf("get cart for remove: %w", err)
	}

	expectedVersion := cart.Version

	i := cart.FindItem(productID)
	if i < 0 {
		return cart, nil
	}
	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)

	if err := s.save(ctx, cart, expectedVersion); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("owner_key", owner.Key()),
		slog.String("product_id", productID),
	)

	return cart, nil
}

// ClearCart deletes the owner's cart. Clearing an absent cart is not an error.
func (s *CartService) ClearCart(ctx context.Context, owner domain.CartOwner) error {
	if owner.IsZero() {
		return apperrors.InvalidInput("cart owner is required")
	}

	if err := s.repo.Delete(ctx, owner); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}

	if err := s.producer.PublishCartCleared(ctx, owner); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("owner_key", owner.Key()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("owner_key", owner.Key()),
	)

	return nil
}

// MergeCarts folds an anonymous cart into a user's cart on sign-in. Lines for
// the same product accumulate quantity, other lines carry over, and the
// anonymous cart is deleted afterwards. A missing anonymous cart is a no-op.
func (s *CartService) MergeCarts(ctx context.Context, anon, user domain.CartOwner) (*domain.Cart, error) {
	if !anon.Anonymous() {
		return nil, apperrors.InvalidInput("merge source must be an anonymous cart")
	}
	if user.UserID == "" {
		return nil, apperrors.InvalidInput("merge target must be a user cart")
	}

	anonCart, err := s.repo.Get(ctx, anon)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.GetCart(ctx, user)
		}
		return nil, fmt.Errorf("get anonymous cart: %w", err)
	}

	cart, err := s.getOrCreateCart(ctx, user)
	if err != nil {
		return nil, err
	}

	expectedVersion := cart.Version

	for _, item := range anonCart.Items {
		if i := cart.FindItem(item.ProductID); i >= 0 {
			newQty := cart.Items[i].Quantity + item.Quantity
			if newQty > MaxQuantityPerItem {
				newQty = MaxQuantityPerItem
			}
			cart.Items[i].Quantity = newQty
			continue
		}
		if len(cart.Items) >= MaxItemsPerCart {
			break
		}
		cart.Items = append(cart.Items, item)
	}

	if err := s.save(ctx, cart, expectedVersion); err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, anon); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete merged anonymous cart",
			slog.String("owner_key", anon.Key()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "anonymous cart merged into user cart",
		slog.String("anon_key", anon.Key()),
		slog.String("user_key", user.Key()),
		slog.Int("lines", len(cart.Items)),
	)

	return cart, nil
}

// save stamps timestamps, persists under optimistic locking and publishes the
// cart.updated event. A lost version race surfaces as a conflict.
func (s *CartService) save(ctx context.Context, cart *domain.Cart, expectedVersion int) error {
	now := time.Now().UTC()
	cart.UpdatedAt = now
	cart.ExpiresAt = now.Add(s.cartTTL)

	ok, err := s.repo.SaveIfVersion(ctx, cart, expectedVersion)
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	if !ok {
		return apperrors.Conflict("cart was modified concurrently, please retry")
	}

	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("owner_key", cart.Owner().Key()),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

// getOrCreateCart retrieves the owner's cart, building an empty one if it
// does not exist yet.
func (s *CartService) getOrCreateCart(ctx context.Context, owner domain.CartOwner) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, owner)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.newEmptyCart(owner), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

// newEmptyCart creates a new empty cart for the given owner.
func (s *CartService) newEmptyCart(owner domain.CartOwner) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		ID:        uuid.New().String(),
		UserID:    owner.UserID,
		CartID:    owner.CartID,
		Items:     []domain.CartItem{},
		Version:   0,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.cartTTL),
	}
}
