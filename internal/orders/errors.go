package orders

import "errors"

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid status")
)

// InsufficientStockError names the first ingredient whose cumulative
// demand overshot its stock; placement stops there.
type InsufficientStockError struct {
	Ingredient string
}

func (e *InsufficientStockError) Error() string {
	return "insufficient stock for ingredient: " + e.Ingredient
}
