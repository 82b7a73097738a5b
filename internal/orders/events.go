package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderPlaced   = "OrderPlaced"
	EventStatusChanged = "OrderStatusChanged"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // the order's reference id
	Payload       json.RawMessage `json:"payload"`
}

type OrderPlacedPayload struct {
	ReferenceID string     `json:"reference_id"`
	UserID      int64      `json:"user_id"`
	Items       []CartLine `json:"items"`
}

type StatusChangedPayload struct {
	OrderID     int64  `json:"order_id"`
	ReferenceID string `json:"reference_id"`
	Status      Status `json:"status"`
}
