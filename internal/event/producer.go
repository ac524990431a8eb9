package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/domain"
	pkgkafka "github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/kafka"
)

// Kafka topic constants for storefront domain events.
const (
	TopicUserRegistered     = "storefront.user.registered"
	TopicCartUpdated        = "storefront.cart.updated"
	TopicCartCleared        = "storefront.cart.cleared"
	TopicOrderCreated       = "storefront.order.created"
	TopicOrderStatusChanged = "storefront.order.status_changed"
	TopicContactReceived    = "storefront.contact.received"
)

// Aggregate type constants.
const (
	AggregateTypeUser    = "user"
	AggregateTypeCart    = "cart"
	AggregateTypeOrder   = "order"
	AggregateTypeContact = "contact"
)

// Source identifier for events originating from the storefront backend.
const SourceStorefront = "storefront"

// Publisher is the Kafka surface the producer needs. *pkgkafka.Producer
// satisfies it; tests swap in a no-op.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	UserID   string `json:"user_id"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	OwnerKey   string `json:"owner_key"`
	ItemCount  int    `json:"item_count"`
	TotalPrice int64  `json:"total_price"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	OwnerKey string `json:"owner_key"`
}

// OrderCreatedData is the payload for an order.created event (full order snapshot).
type OrderCreatedData struct {
	ID         string             `json:"id"`
	UserID     string             `json:"user_id"`
	Status     string             `json:"status"`
	Items      []domain.OrderItem `json:"items"`
	TotalPrice int64              `json:"total_price"`
}

// OrderStatusChangedData is the payload for an order.status_changed event.
type OrderStatusChangedData struct {
	OrderID   string `json:"order_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// ContactReceivedData is the payload for a contact.received event.
type ContactReceivedData struct {
	MessageID string `json:"message_id"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  Publisher
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, u *domain.User) error {
	data := UserRegisteredData{
		UserID:   u.ID,
		Fullname: u.Fullname,
		Email:    u.Email,
		Role:     u.Role,
	}

	event, err := pkgkafka.NewEvent(TopicUserRegistered, u.ID, AggregateTypeUser, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create user.registered event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserRegistered, event); err != nil {
		return fmt.Errorf("publish user.registered event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.registered event",
		slog.String("user_id", u.ID),
	)

	return nil
}

// PublishCartUpdated publishes a cart.updated event with the cart totals.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	ownerKey := cart.Owner().Key()

	data := CartUpdatedData{
		OwnerKey:   ownerKey,
		ItemCount:  cart.ItemCount(),
		TotalPrice: cart.TotalPrice(),
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, ownerKey, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("owner_key", ownerKey),
		slog.Int("item_count", data.ItemCount),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, owner domain.CartOwner) error {
	ownerKey := owner.Key()

	event, err := pkgkafka.NewEvent(TopicCartCleared, ownerKey, AggregateTypeCart, SourceStorefront, CartClearedData{OwnerKey: ownerKey})
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("owner_key", ownerKey),
	)

	return nil
}

// PublishOrderCreated publishes an order.created event with the full order snapshot.
func (p *Producer) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	data := OrderCreatedData{
		ID:         order.ID,
		UserID:     order.UserID,
		Status:     order.Status,
		Items:      order.Items,
		TotalPrice: order.TotalPrice,
	}

	event, err := pkgkafka.NewEvent(TopicOrderCreated, order.ID, AggregateTypeOrder, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create order.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderCreated, event); err != nil {
		return fmt.Errorf("publish order.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.created event",
		slog.String("order_id", order.ID),
		slog.String("user_id", order.UserID),
	)

	return nil
}

// PublishOrderStatusChanged publishes an order.status_changed event.
func (p *Producer) PublishOrderStatusChanged(ctx context.Context, orderID, oldStatus, newStatus string) error {
	data := OrderStatusChangedData{
		OrderID:   orderID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	}

	event, err := pkgkafka.NewEvent(TopicOrderStatusChanged, orderID, AggregateTypeOrder, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create order.status_changed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderStatusChanged, event); err != nil {
		return fmt.Errorf("publish order.status_changed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.status_changed event",
		slog.String("order_id", orderID),
		slog.String("old_status", oldStatus),
		slog.String("new_status", newStatus),
	)

	return nil
}

// PublishContactReceived publishes a contact.received event.
func (p *Producer) PublishContactReceived(ctx context.Context, m *domain.ContactMessage) error {
	data := ContactReceivedData{
		MessageID: m.ID,
		Email:     m.Email,
		Subject:   m.Subject,
	}

	event, err := pkgkafka.NewEvent(TopicContactReceived, m.ID, AggregateTypeContact, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create contact.received event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicContactReceived, event); err != nil {
		return fmt.Errorf("publish contact.received event: %w", err)
	}

	p.logger.DebugContext(ctx, "published contact.received event",
		slog.String("message_id", m.ID),
	)

	return nil
}
