package httpx

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nandanicollection/storefront/internal/commerce"
)

// AccountsHandler forwards auth-scoped calls to the commerce API. Tokens are
// relayed per request; nothing is stored here.
type AccountsHandler struct {
	Client *commerce.Client
}

func (h *AccountsHandler) Register(r *chi.Mux) {
	r.Post("/accounts/firebase-login", h.firebaseLogin)
	r.Post("/accounts/update-profile", h.updateProfile)
	r.Get("/orders/my-orders", h.myOrders)
}

func (h *AccountsHandler) firebaseLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDToken string `json:"id_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IDToken == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing id token"})
		return
	}
	raw, err := h.Client.FirebaseLogin(r.Context(), req.IDToken)
	h.respond(w, raw, err)
}

func (h *AccountsHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
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
	raw, err := h.Client.UpdateProfile(r.Context(), token, body)
	h.respond(w, raw, err)
}

func (h *AccountsHandler) myOrders(w http.ResponseWriter, r *http.Request) {
	token := bearer(r)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
		return
	}
	raw, err := h.Client.MyOrders(r.Context(), token)
	h.respond(w, raw, err)
}

func (h *AccountsHandler) respond(w http.ResponseWriter, raw json.RawMessage, err error) {
	if err != nil {
		log.Printf("accounts upstream: %v", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "accounts unavailable"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}
