package redisx

import "time"

const (
	// Public tracking cache: track:{reference_id} -> serialized tracking response
	KeyTrack = "track:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"

	// Recent order activity for the owner dashboard (capped list, newest first)
	KeyKitchenFeed = "kitchen:feed"
)

// KitchenFeedMax caps the feed length; older entries are trimmed away.
const KitchenFeedMax = 100

var (
	TTLTrackCache = 5 * time.Minute
	TTLDedup      = 48 * time.Hour
)
