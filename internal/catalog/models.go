package catalog

type PizzaType struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// BOMEntry is one bill-of-materials row: how much of an ingredient one
// unit of a pizza type consumes.
type BOMEntry struct {
	IngredientID     int64 `json:"ingredient_id"`
	QuantityRequired int   `json:"quantity_required"`
}

type Ingredient struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	StockQuantity int    `json:"stock_quantity"`
}

type PizzaSales struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
}

type StockLevel struct {
	Name          string `json:"name"`
	StockQuantity int    `json:"stock_quantity"`
}
