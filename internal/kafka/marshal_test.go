package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slicehouse/go-pizza-orders/internal/orders"
)

func TestUnwrapPayloadRoundtrip(t *testing.T) {
	payload := orders.OrderPlacedPayload{
		ReferenceID: "ab12cd34",
		UserID:      7,
		Items:       []orders.CartLine{{PizzaTypeID: 1, Quantity: 2}},
	}
	raw := json.RawMessage(MustMarshal(payload))

	got, err := UnwrapPayload[orders.OrderPlacedPayload](raw)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestUnwrapPayloadMalformed(t *testing.T) {
	_, err := UnwrapPayload[orders.StatusChangedPayload](json.RawMessage(`{"order_id":`))
	assert.Error(t, err)
}

func TestEnvelopeFieldNames(t *testing.T) {
	env := orders.Envelope{
		EventID:      "e1",
		EventType:    orders.EventOrderPlaced,
		EventVersion: 1,
		Payload:      json.RawMessage(`{}`),
	}
	b := MustMarshal(env)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, k := range []string{"event_id", "event_type", "event_version", "occurred_at", "producer", "payload"} {
		assert.Contains(t, m, k)
	}
}
