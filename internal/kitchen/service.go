package kitchen

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/slicehouse/go-pizza-orders/internal/kafka"
	"github.com/slicehouse/go-pizza-orders/internal/orders"
	"github.com/slicehouse/go-pizza-orders/internal/redisx"
)

// FeedEntry is one row in the owner dashboard's recent-activity feed.
type FeedEntry struct {
	Event       string        `json:"event"` // placed | status
	ReferenceID string        `json:"reference_id"`
	Status      orders.Status `json:"status"`
	At          time.Time     `json:"at"`
}

// Service consumes order events and keeps the kitchen feed and the
// tracking cache fresh. It is a sink: it publishes nothing.
type Service struct {
	Redis       *redis.Client
	ServiceName string
}

func (s *Service) HandleEvent(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	switch env.EventType {
	case orders.EventOrderPlaced, orders.EventStatusChanged:
	default:
		return nil // ignore
	}

	// dedup by event_id; a Redis failure degrades to at-least-once
	dkey := fmt.Sprintf(redisx.KeyDedup, "kitchen", env.EventID)
	if exists, _ := redisx.Exists(ctx, s.Redis, dkey); exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	var entry FeedEntry
	switch env.EventType {
	case orders.EventOrderPlaced:
		p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
		if err != nil {
			return err
		}
		entry = FeedEntry{Event: "placed", ReferenceID: p.ReferenceID, Status: orders.StatusPlaced, At: env.OccurredAt}
	case orders.EventStatusChanged:
		p, err := kafkax.UnwrapPayload[orders.StatusChangedPayload](env.Payload)
		if err != nil {
			return err
		}
		entry = FeedEntry{Event: "status", ReferenceID: p.ReferenceID, Status: p.Status, At: env.OccurredAt}
		// the public tracking cache is stale now
		_ = s.Redis.Del(ctx, fmt.Sprintf(redisx.KeyTrack, p.ReferenceID)).Err()
	}

	pipe := s.Redis.Pipeline()
	pipe.LPush(ctx, redisx.KeyKitchenFeed, kafkax.MustMarshal(entry))
	pipe.LTrim(ctx, redisx.KeyKitchenFeed, 0, redisx.KitchenFeedMax-1)
	_, _ = pipe.Exec(ctx)
	return nil
}
