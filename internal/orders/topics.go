package orders

const (
	TopicOrderPlaced = "pizza.order.placed"
	TopicOrderStatus = "pizza.order.status"
)

// Partition key = reference_id, so all events for one order keep their order.
func PartitionKey(refID string) []byte { return []byte(refID) }
