package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

// NewReferenceID returns the short opaque customer-facing order id.
// Collision probability over 8 chars of a v4 UUID is treated as
// negligible; there is no uniqueness retry.
func NewReferenceID() string {
	return uuid.NewString()[:8]
}

// PlaceOrder validates the cart's aggregate ingredient demand against
// stock and, only if fully satisfiable, creates the order, its items,
// and decrements each touched ingredient's stock.
//
// Everything runs in one transaction with the ingredient rows locked,
// so concurrent placements against overlapping ingredients serialize
// instead of over-drawing the shared pool. A cart line referencing an
// unknown pizza type requires zero ingredients and only fails later on
// the order_items foreign key.
func (r *Repo) PlaceOrder(ctx context.Context, customerID int64, cart []CartLine) (string, error) {
	lines := dropEmptyLines(cart)
	if len(lines) == 0 {
		return "", ErrEmptyCart
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// distinct pizza ids -> IN-list params
	seen := make(map[int64]bool, len(lines))
	ids := make([]any, 0, len(lines))
	params := ""
	for _, l := range lines {
		if seen[l.PizzaTypeID] {
			continue
		}
		seen[l.PizzaTypeID] = true
		if len(ids) > 0 {
			params += ","
		}
		params += fmt.Sprintf("$%d", len(ids)+1)
		ids = append(ids, l.PizzaTypeID)
	}

	rows, err := tx.Query(ctx, `
		SELECT pi.pizza_type_id, pi.ingredient_id, i.name, i.stock_quantity, pi.quantity_required
		FROM pizza_ingredients pi
		JOIN ingredients i ON i.id = pi.ingredient_id
		WHERE pi.pizza_type_id IN (`+params+`)
		ORDER BY pi.pizza_type_id, pi.ingredient_id
		FOR UPDATE OF i`, ids...)
	if err != nil {
		return "", err
	}
	defer rows.Close()
	var bom []bomRow
	for rows.Next() {
		var b bomRow
		if err := rows.Scan(&b.PizzaTypeID, &b.IngredientID, &b.IngredientName, &b.Stock, &b.QuantityRequired); err != nil {
			return "", err
		}
		bom = append(bom, b)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	demand, short := computeDemand(lines, bom)
	if short != nil {
		return "", short // rollback via defer, nothing written
	}

	refID := NewReferenceID()
	var orderID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO orders(user_id, reference_id, status)
		VALUES ($1, $2, 'placed')
		RETURNING id`, customerID, refID).Scan(&orderID)
	if err != nil {
		return "", err
	}

	for _, l := range lines {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items(order_id, pizza_type_id, quantity)
			VALUES ($1, $2, $3)`, orderID, l.PizzaTypeID, l.Quantity); err != nil {
			return "", err
		}
	}

	// one decrement per ingredient, in bill-of-materials order
	decremented := make(map[int64]bool, len(demand))
	for _, b := range bom {
		qty, ok := demand[b.IngredientID]
		if !ok || decremented[b.IngredientID] {
			continue
		}
		decremented[b.IngredientID] = true
		if _, err := tx.Exec(ctx, `
			UPDATE ingredients SET stock_quantity = stock_quantity - $2
			WHERE id = $1`, b.IngredientID, qty); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return refID, nil
}
