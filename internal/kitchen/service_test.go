package kitchen

import (
	"context"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kafkax "github.com/slicehouse/go-pizza-orders/internal/kafka"
	"github.com/slicehouse/go-pizza-orders/internal/orders"
	"github.com/slicehouse/go-pizza-orders/internal/redisx"
)

// Redis at a dead address: cache operations soft-fail, dedup degrades to
// at-least-once, and the handler still makes its accept/reject decisions.
func testService() *Service {
	return &Service{Redis: redisx.New("127.0.0.1:1"), ServiceName: "test-kitchen"}
}

func envelope(eventType string, payload any) kafkago.Message {
	env := orders.Envelope{
		EventID:      "e-1",
		EventType:    eventType,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     "test-api",
		Payload:      kafkax.MustMarshal(payload),
	}
	return kafkago.Message{Value: kafkax.MustMarshal(env)}
}

func TestHandleEventIgnoresForeignTypes(t *testing.T) {
	s := testService()
	err := s.HandleEvent(context.Background(), envelope("SomethingElse", map[string]string{}))
	assert.NoError(t, err)
}

func TestHandleEventMalformedEnvelope(t *testing.T) {
	s := testService()
	err := s.HandleEvent(context.Background(), kafkago.Message{Value: []byte(`{"event_id":`)})
	assert.Error(t, err)
}

func TestHandleEventMalformedPayload(t *testing.T) {
	s := testService()
	// The malformed payload cannot pass through json.Marshal (it validates
	// RawMessage), so the envelope is written out as literal JSON.
	value := []byte(`{"event_id":"e-2","event_type":"` + orders.EventOrderPlaced + `","payload":{"reference_id":}`)
	err := s.HandleEvent(context.Background(), kafkago.Message{Value: value})
	require.Error(t, err)
}

func TestHandleEventPlacedSucceeds(t *testing.T) {
	s := testService()
	msg := envelope(orders.EventOrderPlaced, orders.OrderPlacedPayload{
		ReferenceID: "ab12cd34",
		UserID:      7,
		Items:       []orders.CartLine{{PizzaTypeID: 1, Quantity: 2}},
	})
	assert.NoError(t, s.HandleEvent(context.Background(), msg))
}

func TestHandleEventStatusChangeSucceeds(t *testing.T) {
	s := testService()
	msg := envelope(orders.EventStatusChanged, orders.StatusChangedPayload{
		OrderID:     3,
		ReferenceID: "ab12cd34",
		Status:      orders.StatusDispatched,
	})
	assert.NoError(t, s.HandleEvent(context.Background(), msg))
}
