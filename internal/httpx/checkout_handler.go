package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nandanicollection/storefront/internal/checkout"
	"github.com/nandanicollection/storefront/internal/coupon"
	"github.com/nandanicollection/storefront/internal/pricing"
)

type CheckoutHandler struct {
	Flow    *checkout.Orchestrator
	Coupons *coupon.Engine
}

func (h *CheckoutHandler) Register(r *chi.Mux) {
	r.Get("/checkout/quote", h.quote)
	r.Post("/checkout/coupon", h.applyCoupon)
	r.Delete("/checkout/coupon", h.removeCoupon)
	r.Post("/checkout", h.submit)
}

type quoteResponse struct {
	Empty  bool            `json:"empty"`
	Quote  pricing.Quote   `json:"quote"`
	Coupon *coupon.Applied `json:"coupon,omitempty"`
}

func (h *CheckoutHandler) quote(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := checkoutCtx(r)
	defer cancel()

	q, applied, err := h.Flow.Quote(ctx, SessionID(r))
	if errors.Is(err, checkout.ErrEmptyCart) {
		writeJSON(w, http.StatusOK, quoteResponse{Empty: true})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "quote unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, quoteResponse{Quote: q, Coupon: applied})
}

func (h *CheckoutHandler) applyCoupon(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing coupon code"})
		return
	}

	ctx, cancel := checkoutCtx(r)
	defer cancel()

	sid := SessionID(r)
	bag, err := h.Flow.Carts.Bag(ctx, sid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "cart unavailable"})
		return
	}

	applied, err := h.Coupons.Apply(ctx, sid, req.Code, bag.Subtotal())
	if err != nil {
		var rej *coupon.RejectedError
		if errors.As(err, &rej) {
			// Server rejection message passes through verbatim.
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": rej.Message})
			return
		}
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": coupon.ErrCheckFailed.Error()})
		return
	}
	writeJSON(w, http.StatusOK, applied)
}

func (h *CheckoutHandler) removeCoupon(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := checkoutCtx(r)
	defer cancel()

	if err := h.Coupons.Remove(ctx, SessionID(r)); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "coupon removal failed"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type submitRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Pincode       string `json:"pincode"`
	PaymentMethod string `json:"payment_method"`
}

func (h *CheckoutHandler) submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	form := checkout.Form{
		Name:    req.Name,
		Phone:   checkout.SanitizePhone(req.Phone),
		Address: req.Address,
		Pincode: checkout.SanitizePincode(req.Pincode),
	}

	ctx, cancel := checkoutCtx(r)
	defer cancel()

	out, err := h.Flow.Submit(ctx, SessionID(r), form, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart),
			errors.Is(err, checkout.ErrInvalidForm):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			var rej *checkout.RemoteError
			if errors.As(err, &rej) {
				writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": rej.Message})
				return
			}
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		}
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Submission crosses two remote services (order creation plus payment
// initiation), so it gets a longer leash than cart reads.
func checkoutCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 25*time.Second)
}
