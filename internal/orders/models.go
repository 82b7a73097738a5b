package orders

import "time"

type Order struct {
	ID          int64
	ReferenceID string
	UserID      int64
	Status      Status
	CreatedAt   time.Time
}

type OrderItem struct {
	OrderID     int64
	PizzaTypeID int64
	Quantity    int
}

// CartLine is one requested pizza-type/quantity pair in a placement request.
type CartLine struct {
	PizzaTypeID int64 `json:"pizzaTypeId"`
	Quantity    int   `json:"quantity"`
}

type TrackedItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Tracking is the public (unauthenticated) view of an order.
type Tracking struct {
	Status    Status        `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	Items     []TrackedItem `json:"items"`
}

// CustomerOrder is one entry in a customer's order history.
type CustomerOrder struct {
	ReferenceID string        `json:"reference_id"`
	Status      Status        `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	Items       []TrackedItem `json:"items"`
}

// AdminOrder is the owner-dashboard view, with the customer named.
type AdminOrder struct {
	ID           int64     `json:"id"`
	ReferenceID  string    `json:"reference_id"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	CustomerName string    `json:"customer_name"`
}
