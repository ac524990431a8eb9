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
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/pagination"
)

// OrderItemInput is one line of a new order.
type OrderItemInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Price     int64  `json:"price" validate:"gte=0"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
}

// CreateOrderInput holds the parameters for placing an order. UserID is empty
// for guest checkout.
type CreateOrderInput struct {
	UserID          string                 `json:"user_id"`
	Items           []OrderItemInput       `json:"items" validate:"required,min=1,dive"`
	TotalPrice      int64                  `json:"total_price" validate:"gte=0"`
	ShippingDetails domain.ShippingDetails `json:"shipping_details"`
}

// OrderService implements the business logic for orders.
type OrderService struct {
	repo     repository.OrderRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(repo repository.OrderRepository, producer *event.Producer, logger *slog.Logger) *OrderService {
	return &OrderService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// CreateOrder places a new order in the Pending state. The line items are
// frozen as submitted; later catalog edits do not touch them.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperrors.InvalidInput("order must contain at least one item")
	}
	if input.TotalPrice < 0 {
		return nil, apperrors.InvalidInput("total price must not be negative")
	}
	if input.ShippingDetails.FullName == "" || input.ShippingDetails.Address == "" {
		return nil, apperrors.InvalidInput("shipping details are required")
	}

	items := make([]domain.OrderItem, len(input.Items))
	for i, item := range input.Items {
		if item.ProductID == "" {
			return nil, apperrors.InvalidInput("order item product id is required")
		}
		if item.Quantity < 1 {
			return nil, apperrors.InvalidInput("order item quantity must be at least 1")
		}
		if item.Price < 0 {
			return nil, apperrors.InvalidInput("order item price must not be negative")
		}
		items[i] = domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:              uuid.New().String(),
		UserID:          input.UserID,
		Items:           items,
		TotalPrice:      input.TotalPrice,
		ShippingDetails: input.ShippingDetails,
		Status:          domain.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.producer.PublishOrderCreated(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.created event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order created",
		slog.String("order_id", order.ID),
		slog.String("user_id", order.UserID),
		slog.Int64("total_price", order.TotalPrice),
	)

	return order, nil
}

// GetOrder retrieves an order by ID.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("order id is required")
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("order", id)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	return order, nil
}

// ListOrders returns a page of all orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, page, perPage int) (pagination.Result[*domain.Order], error) {
	params := pagination.New(page, perPage)

	orders, total, err := s.repo.List(ctx, params)
	if err != nil {
		return pagination.Result[*domain.Order]{}, fmt.Errorf("list orders: %w", err)
	}

	return pagination.NewResult(orders, total, params), nil
}

// ListUserOrders returns one user's orders, newest first.
func (s *OrderService) ListUserOrders(ctx context.Context, userID string) ([]*domain.Order, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus changes an order's status. Any non-empty status is accepted;
// the storefront treats the value as display text.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("order id is required")
	}
	if status == "" {
		return nil, apperrors.InvalidInput("status is required")
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("order", id)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	oldStatus := current.Status

	order, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	if err := s.producer.PublishOrderStatusChanged(ctx, id, oldStatus, status); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.status_changed event",
			slog.String("order_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order status updated",
		slog.String("order_id", id),
		slog.String("old_status", oldStatus),
		slog.String("new_status", status),
	)

	return order, nil
}

// DeleteOrder removes an order.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("order id is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	s.logger.InfoContext(ctx, "order deleted",
		slog.String("order_id", id),
	)

	return nil
}
