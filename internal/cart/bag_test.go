package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kurta(qty, stock int) Line {
	return Line{
		ProductID: 1, VariantID: 10, SizeID: 100,
		Name: "Silk Kurta", Price: 1299, Color: "Maroon", Size: "M",
		Quantity: qty, Stock: stock,
	}
}

func TestBagAddNewLine(t *testing.T) {
	var b Bag
	res := b.Add(kurta(1, 5))
	assert.Equal(t, Applied, res.Outcome)
	assert.Equal(t, 1, res.Quantity)
	require.Len(t, b.Lines, 1)
}

func TestBagAddDefaultsSizeAndColor(t *testing.T) {
	var b Bag
	b.Add(Line{ProductID: 2, VariantID: 20, Price: 500, Quantity: 1, Stock: 3})
	require.Len(t, b.Lines, 1)
	assert.Equal(t, "Standard", b.Lines[0].Size)
	assert.Equal(t, "Default", b.Lines[0].Color)
}

func TestBagAddIncrementsExisting(t *testing.T) {
	var b Bag
	b.Add(kurta(1, 3))
	res := b.Add(kurta(1, 3))
	assert.Equal(t, Applied, res.Outcome)
	assert.Equal(t, 2, res.Quantity)
	require.Len(t, b.Lines, 1)
}

func TestBagAddRefreshesStockCeiling(t *testing.T) {
	var b Bag
	b.Add(kurta(1, 1))
	res := b.Add(kurta(1, 1))
	assert.Equal(t, Rejected, res.Outcome)

	// Restocked: the re-add carries the new ceiling and increments.
	res = b.Add(kurta(1, 3))
	assert.Equal(t, Applied, res.Outcome)
	assert.Equal(t, 2, res.Quantity)
	assert.Equal(t, 3, b.Lines[0].Stock)

	// Stock dropped since the line was added: further adds are refused.
	res = b.Add(kurta(1, 2))
	assert.Equal(t, Rejected, res.Outcome)
	assert.Equal(t, 2, res.Quantity)
}

func TestBagAddRejectsAtStockCeiling(t *testing.T) {
	var b Bag
	b.Add(kurta(2, 2))
	res := b.Add(kurta(1, 2))
	assert.Equal(t, Rejected, res.Outcome)
	assert.Equal(t, 2, res.Quantity)
	assert.Equal(t, 2, b.Lines[0].Quantity)
}

func TestBagAddRejectsOutOfStock(t *testing.T) {
	var b Bag
	res := b.Add(kurta(1, 0))
	assert.Equal(t, Rejected, res.Outcome)
	assert.Empty(t, b.Lines)
}

func TestBagAddClampsOversizedQuantity(t *testing.T) {
	var b Bag
	res := b.Add(kurta(10, 4))
	assert.Equal(t, Clamped, res.Outcome)
	assert.Equal(t, 4, res.Quantity)
}

func TestBagDistinctSizesAreDistinctLines(t *testing.T) {
	var b Bag
	m := kurta(1, 5)
	l := kurta(1, 5)
	l.SizeID = 101
	l.Size = "L"
	b.Add(m)
	b.Add(l)
	assert.Len(t, b.Lines, 2)
}

func TestBagSetQuantityClamps(t *testing.T) {
	var b Bag
	b.Add(kurta(1, 5))

	res := b.SetQuantity(10, 100, 99)
	assert.Equal(t, Clamped, res.Outcome)
	assert.Equal(t, 5, res.Quantity)

	res = b.SetQuantity(10, 100, 0)
	assert.Equal(t, Clamped, res.Outcome)
	assert.Equal(t, 1, res.Quantity)

	res = b.SetQuantity(10, 100, 3)
	assert.Equal(t, Applied, res.Outcome)
	assert.Equal(t, 3, res.Quantity)
}

func TestBagSetQuantityMissingLine(t *testing.T) {
	var b Bag
	res := b.SetQuantity(99, 0, 2)
	assert.Equal(t, Rejected, res.Outcome)
}

func TestBagRemove(t *testing.T) {
	var b Bag
	b.Add(kurta(1, 5))
	assert.Equal(t, Applied, b.Remove(10, 100).Outcome)
	assert.True(t, b.Empty())
	assert.Equal(t, Rejected, b.Remove(10, 100).Outcome)
}

func TestBagSubtotal(t *testing.T) {
	var b Bag
	b.Add(kurta(2, 5))
	saree := Line{ProductID: 3, VariantID: 30, Price: 2499, Quantity: 1, Stock: 2}
	b.Add(saree)
	assert.Equal(t, 1299*2+2499, b.Subtotal())
}

func TestBagToggleAndClear(t *testing.T) {
	var b Bag
	assert.True(t, b.Toggle())
	assert.False(t, b.Toggle())

	b.Add(kurta(1, 5))
	b.Toggle()
	b.Clear()
	assert.True(t, b.Empty())
	assert.False(t, b.IsOpen)
}
