package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	pizzaA = int64(1)
	pizzaB = int64(2)

	ingCheese = int64(10)
	ingDough  = int64(11)
)

// Cheese stock 10; pizza A needs 4 cheese/unit, pizza B needs 5.
func cheeseBOM(stock int) []bomRow {
	return []bomRow{
		{PizzaTypeID: pizzaA, IngredientID: ingCheese, IngredientName: "Cheese", Stock: stock, QuantityRequired: 4},
		{PizzaTypeID: pizzaB, IngredientID: ingCheese, IngredientName: "Cheese", Stock: stock, QuantityRequired: 5},
	}
}

func TestComputeDemandSumsAcrossPizzas(t *testing.T) {
	cart := []CartLine{{PizzaTypeID: pizzaA, Quantity: 1}, {PizzaTypeID: pizzaB, Quantity: 1}}

	demand, short := computeDemand(cart, cheeseBOM(10))
	require.Nil(t, short)
	assert.Equal(t, 9, demand[ingCheese]) // 4*1 + 5*1, summed not independent
}

func TestComputeDemandOvershootNamesIngredient(t *testing.T) {
	cart := []CartLine{{PizzaTypeID: pizzaA, Quantity: 2}, {PizzaTypeID: pizzaB, Quantity: 1}}

	demand, short := computeDemand(cart, cheeseBOM(10))
	require.NotNil(t, short) // 4*2 + 5*1 = 13 > 10
	assert.Equal(t, "Cheese", short.Ingredient)
	assert.Nil(t, demand)
}

func TestComputeDemandFailsFastOnFirstOvershoot(t *testing.T) {
	rows := []bomRow{
		{PizzaTypeID: pizzaA, IngredientID: ingCheese, IngredientName: "Cheese", Stock: 100, QuantityRequired: 1},
		{PizzaTypeID: pizzaA, IngredientID: ingDough, IngredientName: "Dough", Stock: 1, QuantityRequired: 2},
		{PizzaTypeID: pizzaB, IngredientID: ingCheese, IngredientName: "Cheese", Stock: 100, QuantityRequired: 500},
	}
	cart := []CartLine{
		{PizzaTypeID: pizzaA, Quantity: 1}, // dough overshoots here, before B's cheese demand
		{PizzaTypeID: pizzaB, Quantity: 1},
	}

	_, short := computeDemand(cart, rows)
	require.NotNil(t, short)
	assert.Equal(t, "Dough", short.Ingredient)
}

func TestComputeDemandExactStockSucceeds(t *testing.T) {
	cart := []CartLine{{PizzaTypeID: pizzaA, Quantity: 1}, {PizzaTypeID: pizzaB, Quantity: 1}}

	demand, short := computeDemand(cart, cheeseBOM(9))
	require.Nil(t, short)
	assert.Equal(t, 9, demand[ingCheese])
}

// A cart line whose pizza type has no bill-of-materials rows requires
// nothing and passes validation. Accepted behavior, not a rejection.
func TestComputeDemandNoBOMLinePasses(t *testing.T) {
	cart := []CartLine{
		{PizzaTypeID: 999, Quantity: 3},
		{PizzaTypeID: pizzaA, Quantity: 1},
	}

	demand, short := computeDemand(cart, cheeseBOM(10))
	require.Nil(t, short)
	assert.Equal(t, 4, demand[ingCheese])
}

func TestDropEmptyLines(t *testing.T) {
	cart := []CartLine{
		{PizzaTypeID: pizzaA, Quantity: 0},
		{PizzaTypeID: pizzaB, Quantity: -2},
		{PizzaTypeID: pizzaA, Quantity: 1},
	}

	got := dropEmptyLines(cart)
	require.Len(t, got, 1)
	assert.Equal(t, pizzaA, got[0].PizzaTypeID)

	assert.Empty(t, dropEmptyLines([]CartLine{{PizzaTypeID: pizzaA, Quantity: 0}}))
}
