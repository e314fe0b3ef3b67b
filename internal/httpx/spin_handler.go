package httpx

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nandanicollection/storefront/internal/spin"
)

type SpinHandler struct {
	Flows *spin.Manager
}

func (h *SpinHandler) Register(r *chi.Mux) {
	r.Get("/spin/{orderID}", h.load)
	r.Post("/spin/{orderID}", h.spin)
}

func (h *SpinHandler) load(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	if orderID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing order id"})
		return
	}

	res, err := h.Flows.Flow(orderID).Load(r.Context())
	if err != nil {
		// Status check failed: no spin offer, surfaced as unavailable.
		log.Printf("spin load %s: %v", orderID, err)
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error": "spin unavailable",
			"phase": res.Phase,
		})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *SpinHandler) spin(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	if orderID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing order id"})
		return
	}

	out, err := h.Flows.Flow(orderID).Spin(r.Context())
	if errors.Is(err, spin.ErrNotReady) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": spin.ErrNotReady.Error()})
		return
	}
	if err != nil {
		log.Printf("spin %s: %v", orderID, err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "spin failed"})
		return
	}
	writeJSON(w, http.StatusOK, out)
}
