package orders

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

// TrackByReference is the public lookup: status, creation time and the
// full item list for one order. The reference id is the only identifier
// exposed without a credential.
func (r *Repo) TrackByReference(ctx context.Context, refID string) (*Tracking, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT o.status, o.created_at, p.name, oi.quantity
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN pizza_types p ON p.id = oi.pizza_type_id
		WHERE o.reference_id = $1
		ORDER BY oi.pizza_type_id`, refID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var t *Tracking
	for rows.Next() {
		var (
			status    Status
			createdAt time.Time
			item      TrackedItem
		)
		if err := rows.Scan(&status, &createdAt, &item.Name, &item.Quantity); err != nil {
			return nil, err
		}
		if t == nil {
			t = &Tracking{Status: status, CreatedAt: createdAt}
		}
		t.Items = append(t.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrOrderNotFound
	}
	return t, nil
}

// ListByCustomer returns the customer's orders, newest first, grouped
// from the item join rows.
func (r *Repo) ListByCustomer(ctx context.Context, userID int64) ([]CustomerOrder, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT o.reference_id, o.status, o.created_at, pt.name, oi.quantity
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN pizza_types pt ON pt.id = oi.pizza_type_id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC, o.id DESC, oi.pizza_type_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CustomerOrder{}
	index := map[string]int{}
	for rows.Next() {
		var (
			ref       string
			status    Status
			createdAt time.Time
			item      TrackedItem
		)
		if err := rows.Scan(&ref, &status, &createdAt, &item.Name, &item.Quantity); err != nil {
			return nil, err
		}
		i, ok := index[ref]
		if !ok {
			i = len(out)
			index[ref] = i
			out = append(out, CustomerOrder{ReferenceID: ref, Status: status, CreatedAt: createdAt})
		}
		out[i].Items = append(out[i].Items, item)
	}
	return out, rows.Err()
}

// ListAll is the owner view: every order with its customer's name.
func (r *Repo) ListAll(ctx context.Context) ([]AdminOrder, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT o.id, o.reference_id, o.status, o.created_at, u.name
		FROM orders o
		JOIN users u ON o.user_id = u.id
		ORDER BY o.created_at DESC, o.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []AdminOrder{}
	for rows.Next() {
		var a AdminOrder
		if err := rows.Scan(&a.ID, &a.ReferenceID, &a.Status, &a.CreatedAt, &a.CustomerName); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateStatus overwrites an order's status. Only membership in the
// status value set is checked; ordering along the pipeline is not.
// An unknown order id updates nothing and still reports success; the
// returned reference id is empty in that case.
func (r *Repo) UpdateStatus(ctx context.Context, orderID int64, status Status) (string, error) {
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	var refID string
	err := r.DB.QueryRow(ctx, `
		UPDATE orders SET status = $1 WHERE id = $2
		RETURNING reference_id`, status, orderID).Scan(&refID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return refID, nil
}
