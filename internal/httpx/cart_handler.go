package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nandanicollection/storefront/internal/cart"
)

type CartHandler struct {
	Carts *cart.Service
}

func (h *CartHandler) Register(r *chi.Mux) {
	r.Get("/cart", h.getBag)
	r.Post("/cart/items", h.addItem)
	r.Patch("/cart/items", h.updateQuantity)
	r.Delete("/cart/items", h.removeItem)
	r.Post("/cart/toggle", h.toggleDrawer)
	r.Delete("/cart", h.clearBag)

	r.Get("/wishlist", h.getWishlist)
	r.Post("/wishlist", h.addToWishlist)
	r.Delete("/wishlist/{productID}", h.removeFromWishlist)
	r.Delete("/wishlist", h.clearWishlist)
}

type bagResponse struct {
	Lines    []cart.Line `json:"lines"`
	IsOpen   bool        `json:"is_open"`
	Subtotal int         `json:"subtotal"`
}

func bagBody(b *cart.Bag) bagResponse {
	lines := b.Lines
	if lines == nil {
		lines = []cart.Line{}
	}
	return bagResponse{Lines: lines, IsOpen: b.IsOpen, Subtotal: b.Subtotal()}
}

func (h *CartHandler) getBag(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r)
	defer cancel()

	b, err := h.Carts.Bag(ctx, SessionID(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "cart unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, bagBody(b))
}

func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	var item cart.Line
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if item.ProductID == 0 || item.VariantID == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing product or variant id"})
		return
	}

	ctx, cancel := reqCtx(r)
	defer cancel()

	res, err := h.Carts.AddItem(ctx, SessionID(r), item)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "cart unavailable"})
		return
	}
	if res.Outcome == cart.Rejected {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":    "max stock reached",
			"outcome":  res.Outcome.String(),
			"quantity": res.Quantity,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"outcome":  res.Outcome.String(),
		"quantity": res.Quantity,
	})
}

type lineRef struct {
	VariantID int64 `json:"variant_id"`
	SizeID    int64 `json:"size_id"`
	Quantity  int   `json:"quantity"`
}

func (h *CartHandler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	var req lineRef
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := reqCtx(r)
	defer cancel()

	res, err := h.Carts.UpdateQuantity(ctx, SessionID(r), req.VariantID, req.SizeID, req.Quantity)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "cart unavailable"})
		return
	}
	if res.Outcome == cart.Rejected {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not in cart"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"outcome":  res.Outcome.String(),
		"quantity": res.Quantity,
	})
}

func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	var req lineRef
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := reqCtx(r)
	defer cancel()

	// Removal of an absent line is a no-op, not an error.
	if _, err := h.Carts.RemoveItem(ctx, SessionID(r), req.VariantID, req.SizeID); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "cart unavailable"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) toggleDrawer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r)
	defer cancel()

	open, err := h.Carts.ToggleDrawer(ctx, SessionID(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "cart unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"is_open": open})
}

func (h *CartHandler) clearBag(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r)
	defer cancel()

	if err := h.Carts.ClearBag(ctx, SessionID(r)); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "cart unavailable"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) getWishlist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r)
	defer cancel()

	wl, moved, err := h.Carts.Wishlist(ctx, SessionID(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "wishlist unavailable"})
		return
	}
	ids := wl.ProductIDs
	if ids == nil {
		ids = []int64{}
	}
	if moved == nil {
		moved = []int64{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"product_ids":  ids,
		"moved_to_bag": moved,
	})
}

func (h *CartHandler) addToWishlist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID int64 `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing product id"})
		return
	}

	ctx, cancel := reqCtx(r)
	defer cancel()

	added, err := h.Carts.AddToWishlist(ctx, SessionID(r), req.ProductID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "wishlist unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"added": added})
}

func (h *CartHandler) removeFromWishlist(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "productID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}

	ctx, cancel := reqCtx(r)
	defer cancel()

	if err := h.Carts.RemoveFromWishlist(ctx, SessionID(r), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "wishlist unavailable"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) clearWishlist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r)
	defer cancel()

	if err := h.Carts.ClearWishlist(ctx, SessionID(r)); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "wishlist unavailable"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func reqCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 5*time.Second)
}
