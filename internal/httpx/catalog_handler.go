package httpx

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nandanicollection/storefront/internal/commerce"
)

// CatalogHandler proxies read-only catalog endpoints through the cached
// commerce client. Payloads pass through untouched.
type CatalogHandler struct {
	Catalog *commerce.Catalog
}

func (h *CatalogHandler) Register(r *chi.Mux) {
	r.Get("/shop/products", h.products)
	r.Get("/shop/products/{id}", h.product)
	r.Get("/shop/categories", h.categories)
	r.Get("/shop/banners", h.banners)
	r.Get("/shop/announcements", h.announcements)
}

func (h *CatalogHandler) products(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	raw, err := h.Catalog.Products(r.Context(), q.Get("category"), q.Get("search"), q.Get("sort"))
	h.respond(w, raw, err)
}

func (h *CatalogHandler) product(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	raw, err := h.Catalog.Product(r.Context(), id)
	h.respond(w, raw, err)
}

func (h *CatalogHandler) categories(w http.ResponseWriter, r *http.Request) {
	raw, err := h.Catalog.Categories(r.Context())
	h.respond(w, raw, err)
}

func (h *CatalogHandler) banners(w http.ResponseWriter, r *http.Request) {
	raw, err := h.Catalog.Banners(r.Context())
	h.respond(w, raw, err)
}

func (h *CatalogHandler) announcements(w http.ResponseWriter, r *http.Request) {
	raw, err := h.Catalog.Announcements(r.Context())
	h.respond(w, raw, err)
}

func (h *CatalogHandler) respond(w http.ResponseWriter, raw json.RawMessage, err error) {
	if err != nil {
		log.Printf("catalog upstream: %v", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "catalog unavailable"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}
