package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNoIngredients = errors.New("pizza type requires at least one ingredient")
	ErrInvalidPrice  = errors.New("price must not be negative")
)

type Repo struct{ DB *pgxpool.Pool }

// qualify keeps the bill-of-materials entries that actually consume
// something. A pizza type with none of those is invalid.
func qualify(entries []BOMEntry) []BOMEntry {
	out := make([]BOMEntry, 0, len(entries))
	for _, e := range entries {
		if e.QuantityRequired > 0 {
			out = append(out, e)
		}
	}
	return out
}

// CreatePizzaType inserts the pizza type and its bill of materials in
// one transaction.
func (r *Repo) CreatePizzaType(ctx context.Context, name string, price float64, entries []BOMEntry) (int64, error) {
	if price < 0 {
		return 0, ErrInvalidPrice
	}
	bom := qualify(entries)
	if len(bom) == 0 {
		return 0, ErrNoIngredients
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO pizza_types(name, price) VALUES ($1, $2)
		RETURNING id`, name, price).Scan(&id)
	if err != nil {
		return 0, err
	}
	for _, e := range bom {
		if _, err := tx.Exec(ctx, `
			INSERT INTO pizza_ingredients(pizza_type_id, ingredient_id, quantity_required)
			VALUES ($1, $2, $3)`, id, e.IngredientID, e.QuantityRequired); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repo) ListPizzaTypes(ctx context.Context) ([]PizzaType, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name, price FROM pizza_types ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []PizzaType{}
	for rows.Next() {
		var p PizzaType
		if err := rows.Scan(&p.ID, &p.Name, &p.Price); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeletePizzaType removes the type and its bill of materials. Historic
// order items keep referencing the type, so deletion fails while any
// order item points at it.
func (r *Repo) DeletePizzaType(ctx context.Context, id int64) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM pizza_ingredients WHERE pizza_type_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM pizza_types WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *Repo) ListIngredients(ctx context.Context) ([]Ingredient, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name, stock_quantity FROM ingredients ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Ingredient{}
	for rows.Next() {
		var i Ingredient
		if err := rows.Scan(&i.ID, &i.Name, &i.StockQuantity); err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (r *Repo) AddIngredient(ctx context.Context, name string, stock int) error {
	_, err := r.DB.Exec(ctx, `INSERT INTO ingredients(name, stock_quantity) VALUES ($1, $2)`, name, stock)
	return err
}

// UpdateIngredient renames and/or restocks. This is the only stock
// increment path; decrements stay inside order placement.
func (r *Repo) UpdateIngredient(ctx context.Context, id int64, name string, stock int) error {
	_, err := r.DB.Exec(ctx, `UPDATE ingredients SET name = $2, stock_quantity = $3 WHERE id = $1`, id, name, stock)
	return err
}

func (r *Repo) PizzaSales(ctx context.Context) ([]PizzaSales, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT pt.name, COALESCE(SUM(oi.quantity), 0)
		FROM order_items oi
		JOIN pizza_types pt ON pt.id = oi.pizza_type_id
		GROUP BY pt.name
		ORDER BY 2 DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []PizzaSales{}
	for rows.Next() {
		var s PizzaSales
		if err := rows.Scan(&s.Name, &s.Total); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) StockLevels(ctx context.Context) ([]StockLevel, error) {
	rows, err := r.DB.Query(ctx, `SELECT name, stock_quantity FROM ingredients ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []StockLevel{}
	for rows.Next() {
		var s StockLevel
		if err := rows.Scan(&s.Name, &s.StockQuantity); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
