package orders

type Status string

// The fulfillment pipeline reads placed -> preparing -> dispatched -> delivered.
// Updates are accepted in any order; only membership in the value set is
// enforced. The owner dashboard is trusted to move orders sensibly.
const (
	StatusPlaced     Status = "placed"
	StatusPreparing  Status = "preparing"
	StatusDispatched Status = "dispatched"
	StatusDelivered  Status = "delivered"
)

var allStatuses = map[Status]bool{
	StatusPlaced:     true,
	StatusPreparing:  true,
	StatusDispatched: true,
	StatusDelivered:  true,
}

func (s Status) Valid() bool { return allStatuses[s] }
