package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Event tests ---

func TestNewEvent_Fields(t *testing.T) {
	type OrderData struct {
		OrderID string `json:"order_id"`
		Amount  int64  `json:"amount"`
	}

	data := OrderData{OrderID: "ord-123", Amount: 4999}
	event, err := NewEvent("order.created", "ord-123", "order", "storefront", data)
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID, "EventID should be a non-empty UUID")
	assert.Equal(t, "order.created", event.EventType)
	assert.Equal(t, "ord-123", event.AggregateID)
	assert.Equal(t, "order", event.AggregateType)
	assert.Equal(t, "storefront", event.Source)
	assert.WithinDuration(t, time.Now().UTC(), event.Timestamp, 2*time.Second)
	assert.NotNil(t, event.Data)

	// Verify the data was marshaled correctly.
	var roundTripped OrderData
	require.NoError(t, json.Unmarshal(event.Data, &roundTripped))
	assert.Equal(t, data, roundTripped)
}

func TestNewEvent_InvalidData(t *testing.T) {
	// Channels are not serializable to JSON.
	_, err := NewEvent("test.event", "agg-1", "test", "storefront", make(chan int))
	require.Error(t, err)
}

func TestEvent_Marshal(t *testing.T) {
	original, err := NewEvent("cart.updated", "user:u-1", "cart", "storefront", map[string]string{"owner_key": "user:u-1"})
	require.NoError(t, err)
	original.CorrelationID = "corr-abc"

	data, err := original.Marshal()
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	var restored Event
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, original.EventID, restored.EventID)
	assert.Equal(t, original.EventType, restored.EventType)
	assert.Equal(t, original.AggregateID, restored.AggregateID)
	assert.Equal(t, original.CorrelationID, restored.CorrelationID)
	assert.JSONEq(t, string(original.Data), string(restored.Data))
}

func TestEvent_WithCorrelationID(t *testing.T) {
	event, err := NewEvent("test.event", "agg-1", "test", "storefront", nil)
	require.NoError(t, err)

	// Verify chaining returns the same pointer.
	result := event.WithCorrelationID("corr-xyz")
	assert.Same(t, event, result, "WithCorrelationID should return the same event for chaining")
	assert.Equal(t, "corr-xyz", event.CorrelationID)
}

func TestEvent_UnmarshalData(t *testing.T) {
	type ContactPayload struct {
		MessageID string `json:"message_id"`
		Subject   string `json:"subject"`
	}

	payload := ContactPayload{MessageID: "msg-1", Subject: "Hello"}
	event, err := NewEvent("contact.received", "msg-1", "contact", "storefront", payload)
	require.NoError(t, err)

	var target ContactPayload
	require.NoError(t, event.UnmarshalData(&target))
	assert.Equal(t, payload, target)
}

// --- Producer tests ---

func kafkaTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestDefaultProducerConfig(t *testing.T) {
	cfg := DefaultProducerConfig([]string{"localhost:9092", "localhost:9093"})

	assert.Equal(t, []string{"localhost:9092", "localhost:9093"}, cfg.Brokers)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 10*time.Millisecond, cfg.BatchTimeout)
}

func TestPing_NoBrokers(t *testing.T) {
	p := NewProducer(DefaultProducerConfig(nil), kafkaTestLogger())

	err := p.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no brokers configured")
}

func TestPing_UnreachableBroker(t *testing.T) {
	// Port 1 is never a Kafka broker; the dial must fail fast.
	p := NewProducer(DefaultProducerConfig([]string{"127.0.0.1:1"}), kafkaTestLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := p.Ping(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all brokers unreachable")
}
