package httpx

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nandanicollection/storefront/internal/commerce"
)

// ReviewsHandler proxies product reviews. Listing is public; creating one
// relays the caller's bearer token so the commerce API owns who may review.
type ReviewsHandler struct {
	Client *commerce.Client
}

func (h *ReviewsHandler) Register(r *chi.Mux) {
	r.Get("/reviews/{productID}", h.list)
	r.Post("/reviews/{productID}", h.create)
}

func (h *ReviewsHandler) list(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "productID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	raw, err := h.Client.Reviews(r.Context(), id)
	h.respond(w, raw, err)
}

func (h *ReviewsHandler) create(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "productID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	token := bearer(r)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable body"})
		return
	}
	raw, err := h.Client.CreateReview(r.Context(), token, id, body)
	h.respond(w, raw, err)
}

func (h *ReviewsHandler) respond(w http.ResponseWriter, raw json.RawMessage, err error) {
	if err != nil {
		log.Printf("reviews upstream: %v", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "reviews unavailable"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}
