package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(productID string, quantity int) CartItem {
	return CartItem{
		ProductID: productID,
		Name:      "Product " + productID,
		Price:     100,
		Quantity:  quantity,
	}
}

func TestUpsertItemSumsQuantities(t *testing.T) {
	items := UpsertItem(nil, line("p1", 1))
	items = UpsertItem(items, line("p1", 1))
	items = UpsertItem(items, line("p1", 3))

	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestUpsertItemAppendsNewLine(t *testing.T) {
	items := UpsertItem(nil, line("p1", 2))
	items = UpsertItem(items, line("p2", 1))

	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, "p2", items[1].ProductID)
}

func TestUpsertItemTreatsNonPositiveQuantityAsOne(t *testing.T) {
	items := UpsertItem(nil, line("p1", 0))
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)

	items = UpsertItem(nil, line("p1", -3))
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestUpsertItemDoesNotMutateInput(t *testing.T) {
	original := []CartItem{line("p1", 1)}
	_ = UpsertItem(original, line("p1", 4))
	assert.Equal(t, 1, original[0].Quantity)
}

func TestSetItemQuantityAbsoluteSet(t *testing.T) {
	items := []CartItem{line("p1", 2)}
	updated, found := SetItemQuantity(items, "p1", 7)

	require.True(t, found)
	assert.Equal(t, 7, updated[0].Quantity)
}

func TestSetItemQuantityZeroEqualsRemove(t *testing.T) {
	items := []CartItem{line("p1", 2), line("p2", 1)}

	viaSet, found := SetItemQuantity(items, "p1", 0)
	require.True(t, found)

	viaRemove := RemoveItem(items, "p1")
	assert.Equal(t, viaRemove, viaSet)
	for _, it := range viaSet {
		assert.NotEqual(t, "p1", it.ProductID)
	}
}

func TestSetItemQuantityAbsentLine(t *testing.T) {
	items := []CartItem{line("p1", 2)}
	_, found := SetItemQuantity(items, "missing", 3)
	assert.False(t, found)
}

func TestRemoveItemAbsentIsNoOp(t *testing.T) {
	items := []CartItem{line("p1", 2)}
	updated := RemoveItem(items, "missing")
	assert.Equal(t, items, updated)
}

func TestMergeItemsSumsAndAppends(t *testing.T) {
	server := []CartItem{line("A", 1), line("C", 3)}
	guest := []CartItem{line("A", 2), line("B", 1)}

	merged := MergeItems(server, guest)

	byID := map[string]int{}
	for _, it := range merged {
		byID[it.ProductID] = it.Quantity
	}
	assert.Equal(t, map[string]int{"A": 3, "B": 1, "C": 3}, byID)
}

func TestMergeItemsOrderIndependent(t *testing.T) {
	server := []CartItem{line("A", 1), line("C", 3)}
	forward := MergeItems(server, []CartItem{line("A", 2), line("B", 1)})
	reversed := MergeItems(server, []CartItem{line("B", 1), line("A", 2)})

	quantities := func(items []CartItem) map[string]int {
		m := map[string]int{}
		for _, it := range items {
			m[it.ProductID] = it.Quantity
		}
		return m
	}
	assert.Equal(t, quantities(forward), quantities(reversed))
}

func TestMergeItemsEmptyGuest(t *testing.T) {
	server := []CartItem{line("A", 1)}
	merged := MergeItems(server, nil)
	assert.Equal(t, server, merged)
}

func TestItemCount(t *testing.T) {
	items := []CartItem{line("A", 2), line("B", 3)}
	assert.Equal(t, 5, ItemCount(items))
	assert.Equal(t, 0, ItemCount(nil))
}
