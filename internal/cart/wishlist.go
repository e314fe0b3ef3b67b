package cart

// Wishlist is a saved-products set keyed by product id. Uniqueness is the
// only invariant it enforces itself; cart supersession is handled by
// Reconcile.
type Wishlist struct {
	ProductIDs []int64 `json:"product_ids"`
}

// Add is a no-op when the product is already saved.
func (w *Wishlist) Add(productID int64) bool {
	if w.Contains(productID) {
		return false
	}
	w.ProductIDs = append(w.ProductIDs, productID)
	return true
}

func (w *Wishlist) Remove(productID int64) bool {
	for i, id := range w.ProductIDs {
		if id == productID {
			w.ProductIDs = append(w.ProductIDs[:i], w.ProductIDs[i+1:]...)
			return true
		}
	}
	return false
}

func (w *Wishlist) Contains(productID int64) bool {
	for _, id := range w.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

func (w *Wishlist) Clear() { w.ProductIDs = nil }

// Reconcile drops every product that is now in the bag: presence in the cart
// supersedes wishlist membership. Level-triggered, so it is idempotent and
// cheap to re-run on every read. Returns the ids that moved.
func (w *Wishlist) Reconcile(b *Bag) []int64 {
	var moved []int64
	kept := w.ProductIDs[:0]
	for _, id := range w.ProductIDs {
		if b.HasProduct(id) {
			moved = append(moved, id)
			continue
		}
		kept = append(kept, id)
	}
	w.ProductIDs = kept
	return moved
}
