package orders

// bomRow is one bill-of-materials row joined with the ingredient's
// current stock, as fetched for the cart's pizza types.
type bomRow struct {
	PizzaTypeID      int64
	IngredientID     int64
	IngredientName   string
	Stock            int
	QuantityRequired int
}

// computeDemand accumulates per-ingredient demand across the whole cart:
// demand for the same ingredient pulled by different pizzas is summed,
// not checked independently. It fails fast, in cart-line/bill-of-materials
// iteration order, on the first ingredient whose cumulative demand exceeds
// its stock. Cart lines whose pizza type has no bill-of-materials rows
// contribute zero demand and pass.
func computeDemand(cart []CartLine, rows []bomRow) (map[int64]int, *InsufficientStockError) {
	stock := make(map[int64]int, len(rows))
	for _, r := range rows {
		stock[r.IngredientID] = r.Stock
	}

	demand := make(map[int64]int)
	for _, line := range cart {
		for _, r := range rows {
			if r.PizzaTypeID != line.PizzaTypeID {
				continue
			}
			demand[r.IngredientID] += r.QuantityRequired * line.Quantity
			if demand[r.IngredientID] > stock[r.IngredientID] {
				return nil, &InsufficientStockError{Ingredient: r.IngredientName}
			}
		}
	}
	return demand, nil
}

// dropEmptyLines discards cart entries with non-positive quantity.
func dropEmptyLines(cart []CartLine) []CartLine {
	out := make([]CartLine, 0, len(cart))
	for _, l := range cart {
		if l.Quantity > 0 {
			out = append(out, l)
		}
	}
	return out
}
