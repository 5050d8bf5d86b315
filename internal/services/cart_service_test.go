package services

import (
	"cafe_pos/internal/models"
	"cafe_pos/internal/storage"
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddSameItemIncrementsQuantity(t *testing.T) {
	ctx := context.Background()
	cart := NewOrderCart(storage.NewMemoryGateway(), nil)

	for i := 0; i < 5; i++ {
		require.NoError(t, cart.AddItem(ctx, espresso()))
	}

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, "Espresso", lines[0].Name)
}

func TestCartTotalAndItemCount(t *testing.T) {
	ctx := context.Background()
	cart := NewOrderCart(storage.NewMemoryGateway(), nil)
	assert.True(t, cart.Total().IsZero())
	assert.True(t, cart.IsEmpty())

	require.NoError(t, cart.AddItem(ctx, espresso()))
	require.NoError(t, cart.AddItem(ctx, espresso()))
	require.NoError(t, cart.AddItem(ctx, latte()))

	assert.True(t, cart.Total().Equal(price("85.00")), "total %s", cart.Total())
	assert.Equal(t, 3, cart.ItemCount())
	assert.Len(t, cart.Lines(), 2)
}

func TestCartSnapshotsMenuPrice(t *testing.T) {
	ctx := context.Background()
	cart := NewOrderCart(storage.NewMemoryGateway(), nil)
	item := espresso()
	require.NoError(t, cart.AddItem(ctx, item))

	item.Price = price("99")
	item.Name = "Renamed"
	require.NoError(t, cart.AddItem(ctx, item))

	lines := cart.Lines()
	assert.Equal(t, "Espresso", lines[0].Name)
	assert.True(t, lines[0].Price.Equal(price("25")))
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestCartChangeQuantity(t *testing.T) {
	ctx := context.Background()
	cart := NewOrderCart(storage.NewMemoryGateway(), nil)
	require.NoError(t, cart.AddItem(ctx, espresso()))
	require.NoError(t, cart.AddItem(ctx, latte()))

	require.NoError(t, cart.ChangeQuantity(ctx, 1, 2))
	assert.Equal(t, 3, cart.Lines()[0].Quantity)

	require.NoError(t, cart.ChangeQuantity(ctx, 1, -3))
	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(3), lines[0].ItemID)

	require.NoError(t, cart.ChangeQuantity(ctx, 3, -10))
	assert.True(t, cart.IsEmpty())

	require.NoError(t, cart.ChangeQuantity(ctx, 42, 1))
	assert.True(t, cart.IsEmpty())
}

func TestCartRejectsOverflowingQuantity(t *testing.T) {
	ctx := context.Background()
	gw := newFlakyGateway()
	cart := NewOrderCart(gw, nil)
	require.NoError(t, cart.AddItem(ctx, espresso()))
	saves := gw.saveCount()

	err := cart.ChangeQuantity(ctx, 1, math.MaxInt)
	assert.True(t, IsValidation(err))
	require.Len(t, cart.Lines(), 1)
	assert.Equal(t, 1, cart.Lines()[0].Quantity)
	assert.Equal(t, saves, gw.saveCount())

	require.NoError(t, cart.ChangeQuantity(ctx, 1, math.MaxInt-1))
	assert.Equal(t, math.MaxInt, cart.ItemCount())
}

func TestCartNeverHoldsNonPositiveQuantities(t *testing.T) {
	ctx := context.Background()
	cart := NewOrderCart(storage.NewMemoryGateway(), nil)
	deltas := []int{1, -1, 3, -2, -2, 5, 0, -4, -1}
	for _, delta := range deltas {
		require.NoError(t, cart.AddItem(ctx, latte()))
		require.NoError(t, cart.ChangeQuantity(ctx, latte().ID, delta))
		for _, line := range cart.Lines() {
			assert.Positive(t, line.Quantity)
		}
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	gw := newFlakyGateway()
	cart := NewOrderCart(gw, nil)
	require.NoError(t, cart.AddItem(ctx, espresso()))
	require.NoError(t, cart.AddItem(ctx, latte()))

	saves := gw.saveCount()
	require.NoError(t, cart.RemoveItem(ctx, 42))
	assert.Equal(t, saves, gw.saveCount())

	require.NoError(t, cart.RemoveItem(ctx, 1))
	assert.Len(t, cart.Lines(), 1)

	require.NoError(t, cart.Clear(ctx))
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, "[]", loadBlob(t, gw, storage.KeyCurrentOrder))
}

func TestCartPersistsWireShape(t *testing.T) {
	ctx := context.Background()
	gw := storage.NewMemoryGateway()
	cart := NewOrderCart(gw, nil)
	require.NoError(t, cart.AddItem(ctx, espresso()))

	assert.JSONEq(t, `[{"id":1,"name":"Espresso","price":25,"quantity":1}]`, loadBlob(t, gw, storage.KeyCurrentOrder))

	restored := NewOrderCart(gw, nil)
	require.NoError(t, restored.Load(ctx))
	assert.Equal(t, 1, restored.ItemCount())
}

func TestCartLoadDropsInvalidLines(t *testing.T) {
	ctx := context.Background()
	gw := storage.NewMemoryGateway()
	lines := []models.OrderLine{
		{ItemID: 1, Name: "Espresso", Price: price("25"), Quantity: 0},
		{ItemID: 3, Name: "Latte", Price: price("35"), Quantity: 2},
	}
	blob, err := json.Marshal(lines)
	require.NoError(t, err)
	require.NoError(t, gw.Save(ctx, storage.KeyCurrentOrder, blob))

	cart := NewOrderCart(gw, nil)
	require.NoError(t, cart.Load(ctx))
	got := cart.Lines()
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ItemID)
}

func TestCartKeepsStateWhenSaveFails(t *testing.T) {
	ctx := context.Background()
	gw := newFlakyGateway()
	cart := NewOrderCart(gw, nil)
	require.NoError(t, cart.AddItem(ctx, espresso()))
	gw.setFailing(true)

	assert.ErrorIs(t, cart.AddItem(ctx, espresso()), errDiskFull)
	assert.ErrorIs(t, cart.Clear(ctx), errDiskFull)
	assert.Equal(t, 1, cart.ItemCount())
}

func TestCartLinesAreCopies(t *testing.T) {
	ctx := context.Background()
	cart := NewOrderCart(storage.NewMemoryGateway(), nil)
	require.NoError(t, cart.AddItem(ctx, espresso()))

	lines := cart.Lines()
	lines[0].Quantity = 100
	assert.Equal(t, 1, cart.ItemCount())
}
