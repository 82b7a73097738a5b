package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReferenceID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		ref := NewReferenceID()
		require.Len(t, ref, 8)
		assert.False(t, seen[ref], "reference id repeated: %s", ref)
		seen[ref] = true
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPlaced, StatusPreparing, StatusDispatched, StatusDelivered} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Status("cancelled").Valid())
	assert.False(t, Status("").Valid())
	assert.False(t, Status("PLACED").Valid())
}

func TestInsufficientStockErrorMessage(t *testing.T) {
	err := &InsufficientStockError{Ingredient: "Cheese"}
	assert.Equal(t, "insufficient stock for ingredient: Cheese", err.Error())
}
