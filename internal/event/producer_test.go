package event

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/domain"
	pkgkafka "github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/kafka"
)

// capturePublisher records everything published so tests can inspect topics
// and envelopes without a broker.
type capturePublisher struct {
	topics []string
	events []*pkgkafka.Event
}

func (c *capturePublisher) Publish(ctx context.Context, topic string, event *pkgkafka.Event) error {
	c.topics = append(c.topics, topic)
	c.events = append(c.events, event)
	return nil
}

// failingPublisher simulates an unreachable broker.
type failingPublisher struct{}

func (failingPublisher) Publish(ctx context.Context, topic string, event *pkgkafka.Event) error {
	return errors.New("broker unreachable")
}

func eventTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testCart() *domain.Cart {
	return &domain.Cart{
		ID:     "cart-1",
		UserID: "user-1",
		Items: []domain.CartItem{
			{ProductID: "prod-1", Name: "Gaming Laptop", Price: 199900, Quantity: 2},
		},
		Version:   1,
		UpdatedAt: time.Now().UTC(),
	}
}

func TestPublishUserRegistered(t *testing.T) {
	capture := &capturePublisher{}
	producer := NewProducer(capture, eventTestLogger())

	user := &domain.User{ID: "user-1", Fullname: "Test User", Email: "test@example.com", Role: domain.RoleCustomer}
	require.NoError(t, producer.PublishUserRegistered(context.Background(), user))

	require.Len(t, capture.events, 1)
	assert.Equal(t, []string{TopicUserRegistered}, capture.topics)

	event := capture.events[0]
	assert.Equal(t, TopicUserRegistered, event.EventType)
	assert.Equal(t, "user-1", event.AggregateID)
	assert.Equal(t, AggregateTypeUser, event.AggregateType)
	assert.Equal(t, SourceStorefront, event.Source)

	var data UserRegisteredData
	require.NoError(t, event.UnmarshalData(&data))
	assert.Equal(t, "test@example.com", data.Email)
	assert.Equal(t, domain.RoleCustomer, data.Role)
}

func TestPublishCartUpdated(t *testing.T) {
	capture := &capturePublisher{}
	producer := NewProducer(capture, eventTestLogger())

	cart := testCart()
	require.NoError(t, producer.PublishCartUpdated(context.Background(), cart))

	require.Len(t, capture.events, 1)
	assert.Equal(t, []string{TopicCartUpdated}, capture.topics)

	event := capture.events[0]
	assert.Equal(t, cart.Owner().Key(), event.AggregateID)
	assert.Equal(t, AggregateTypeCart, event.AggregateType)

	var data CartUpdatedData
	require.NoError(t, event.UnmarshalData(&data))
	assert.Equal(t, cart.Owner().Key(), data.OwnerKey)
	assert.Equal(t, 2, data.ItemCount)
	assert.Equal(t, int64(399800), data.TotalPrice)
}

func TestPublishCartCleared(t *testing.T) {
	capture := &capturePublisher{}
	producer := NewProducer(capture, eventTestLogger())

	owner := domain.OwnerForUser("user-1")
	require.NoError(t, producer.PublishCartCleared(context.Background(), owner))

	require.Len(t, capture.events, 1)
	assert.Equal(t, []string{TopicCartCleared}, capture.topics)

	var data CartClearedData
	require.NoError(t, capture.events[0].UnmarshalData(&data))
	assert.Equal(t, owner.Key(), data.OwnerKey)
}

func TestPublishOrderCreated(t *testing.T) {
	capture := &capturePublisher{}
	producer := NewProducer(capture, eventTestLogger())

	order := &domain.Order{
		ID:     "order-1",
		UserID: "user-1",
		Status: domain.OrderStatusPending,
		Items: []domain.OrderItem{
			{ProductID: "prod-1", Name: "Gaming Laptop", Price: 199900, Quantity: 1},
		},
		TotalPrice: 199900,
	}
	require.NoError(t, producer.PublishOrderCreated(context.Background(), order))

	require.Len(t, capture.events, 1)
	assert.Equal(t, []string{TopicOrderCreated}, capture.topics)

	var data OrderCreatedData
	require.NoError(t, capture.events[0].UnmarshalData(&data))
	assert.Equal(t, "order-1", data.ID)
	assert.Equal(t, domain.OrderStatusPending, data.Status)
	assert.Len(t, data.Items, 1)
	assert.Equal(t, int64(199900), data.TotalPrice)
}

func TestPublishOrderStatusChanged(t *testing.T) {
	capture := &capturePublisher{}
	producer := NewProducer(capture, eventTestLogger())

	require.NoError(t, producer.PublishOrderStatusChanged(context.Background(), "order-1", "Pending", "Shipped"))

	require.Len(t, capture.events, 1)
	assert.Equal(t, []string{TopicOrderStatusChanged}, capture.topics)

	var data OrderStatusChangedData
	require.NoError(t, capture.events[0].UnmarshalData(&data))
	assert.Equal(t, "order-1", data.OrderID)
	assert.Equal(t, "Pending", data.OldStatus)
	assert.Equal(t, "Shipped", data.NewStatus)
}

func TestPublishContactReceived(t *testing.T) {
	capture := &capturePublisher{}
	producer := NewProducer(capture, eventTestLogger())

	msg := &domain.ContactMessage{ID: "msg-1", Email: "test@example.com", Subject: "Hello"}
	require.NoError(t, producer.PublishContactReceived(context.Background(), msg))

	require.Len(t, capture.events, 1)
	assert.Equal(t, []string{TopicContactReceived}, capture.topics)

	var data ContactReceivedData
	require.NoError(t, capture.events[0].UnmarshalData(&data))
	assert.Equal(t, "msg-1", data.MessageID)
	assert.Equal(t, "Hello", data.Subject)
}

func TestPublish_BrokerFailureSurfacesError(t *testing.T) {
	producer := NewProducer(failingPublisher{}, eventTestLogger())

	err := producer.PublishCartUpdated(context.Background(), testCart())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart.updated")

	err = producer.PublishUserRegistered(context.Background(), &domain.User{ID: "user-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user.registered")
}
