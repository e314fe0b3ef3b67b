package payment

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/nandanicollection/storefront/internal/events"
	kafkax "github.com/nandanicollection/storefront/internal/kafka"
)

// Gateway abstracts the provider so bridge handlers can be tested without
// hitting PhonePe.
type Gateway interface {
	Initiate(ctx context.Context, req InitiateRequest, callbackURL string) (string, error)
	OrderStatus(ctx context.Context, transactionID string) (string, error)
}

type Ledger interface {
	RecordInitiated(ctx context.Context, transactionID string, amountMinor int64) error
	Resolve(ctx context.Context, transactionID, state string) error
}

type EventSink interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// Bridge exposes the two server-side payment routes. All provider failures
// are normalized into {success:false, error} for the pay route and into a
// failure-page redirect for the status route; nothing propagates raw.
type Bridge struct {
	Gateway  Gateway
	Ledger   Ledger
	Producer EventSink
	BaseURL  string // public base for callback URLs and result pages
	Service  string
}

func (b *Bridge) Register(r *chi.Mux) {
	r.Post("/payment/pay", b.pay)
	// Reachable by both verbs: GET is the gateway-initiated browser
	// redirect, POST the server-to-server callback. Same logic.
	r.Get("/payment/status", b.status)
	r.Post("/payment/status", b.status)
}

type payResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (b *Bridge) pay(w http.ResponseWriter, r *http.Request) {
	var req InitiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, payResponse{Success: false, Error: "invalid json"})
		return
	}
	if req.TransactionID == "" || req.Amount <= 0 {
		writeJSON(w, http.StatusBadRequest, payResponse{Success: false, Error: "missing amount or transaction id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	url, err := b.InitiateSession(ctx, req)
	if err != nil {
		log.Printf("payment initiate %s: %v", req.TransactionID, err)
		writeJSON(w, http.StatusOK, payResponse{Success: false, Error: "payment initiation failed"})
		return
	}
	writeJSON(w, http.StatusOK, payResponse{Success: true, URL: url})
}

// InitiateSession obtains a hosted-checkout URL and records the session in
// the ledger. Also called in-process by the checkout orchestrator.
func (b *Bridge) InitiateSession(ctx context.Context, req InitiateRequest) (string, error) {
	callback := b.BaseURL + "/payment/status?id=" + req.TransactionID
	url, err := b.Gateway.Initiate(ctx, req, callback)
	if err != nil {
		return "", err
	}
	if b.Ledger != nil {
		if err := b.Ledger.RecordInitiated(ctx, req.TransactionID, int64(req.Amount)*100); err != nil {
			log.Printf("payment ledger record %s: %v", req.TransactionID, err)
		}
	}
	return url, nil
}

func (b *Bridge) status(w http.ResponseWriter, r *http.Request) {
	transactionID := r.URL.Query().Get("id")
	if transactionID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "transaction id missing"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	state, err := b.Gateway.OrderStatus(ctx, transactionID)
	if err != nil {
		log.Printf("payment status %s: %v", transactionID, err)
		http.Redirect(w, r, b.BaseURL+"/checkout/failed", http.StatusSeeOther)
		return
	}

	if b.Ledger != nil {
		if err := b.Ledger.Resolve(ctx, transactionID, state); err != nil {
			log.Printf("payment ledger resolve %s: %v", transactionID, err)
		}
	}
	b.publishResolved(transactionID, state)

	if state == StateCompleted {
		http.Redirect(w, r, b.BaseURL+"/checkout/success?id="+transactionID, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, b.BaseURL+"/checkout/failed", http.StatusSeeOther)
}

func (b *Bridge) publishResolved(transactionID, state string) {
	if b.Producer == nil {
		return
	}
	ev := events.Envelope{
		EventID:       uuid.NewString(),
		EventType:     events.EventPaymentResolved,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      b.Service,
		CorrelationID: transactionID,
		Payload: kafkax.MustMarshal(events.PaymentResolvedPayload{
			TransactionID: transactionID,
			State:         state,
		}),
	}
	b.Producer.Publish(events.PartitionKey(transactionID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(events.EventPaymentResolved)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
