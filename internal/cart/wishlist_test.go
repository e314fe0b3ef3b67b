package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWishlistAddIsSetLike(t *testing.T) {
	var w Wishlist
	assert.True(t, w.Add(7))
	assert.False(t, w.Add(7))
	assert.Equal(t, []int64{7}, w.ProductIDs)
}

func TestWishlistRemove(t *testing.T) {
	w := Wishlist{ProductIDs: []int64{1, 2, 3}}
	assert.True(t, w.Remove(2))
	assert.False(t, w.Remove(2))
	assert.Equal(t, []int64{1, 3}, w.ProductIDs)
}

func TestWishlistReconcileDropsCartedProducts(t *testing.T) {
	w := Wishlist{ProductIDs: []int64{1, 2, 3}}
	var b Bag
	b.Add(Line{ProductID: 2, VariantID: 20, Price: 100, Quantity: 1, Stock: 5})

	moved := w.Reconcile(&b)
	assert.Equal(t, []int64{2}, moved)
	assert.Equal(t, []int64{1, 3}, w.ProductIDs)

	// Level-triggered: a second pass over the same state moves nothing.
	assert.Empty(t, w.Reconcile(&b))
	assert.Equal(t, []int64{1, 3}, w.ProductIDs)
}

func TestWishlistReconcileEmptyBag(t *testing.T) {
	w := Wishlist{ProductIDs: []int64{5}}
	var b Bag
	assert.Empty(t, w.Reconcile(&b))
	assert.Equal(t, []int64{5}, w.ProductIDs)
}
