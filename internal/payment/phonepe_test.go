package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProvider(t *testing.T, handler http.Handler) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewProvider("MID1", "CID1", "secret", "1",
		srv.URL+"/oauth/token", srv.URL+"/pay", srv.URL+"/order")
}

func TestProviderInitiate(t *testing.T) {
	var payPayload map[string]any
	var payAuth string

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		q := r.URL.Query()
		assert.Equal(t, "client_credentials", q.Get("grant_type"))
		assert.Equal(t, "CID1", q.Get("client_id"))
		assert.Equal(t, "secret", q.Get("client_secret"))
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok123"})
	})
	mux.HandleFunc("/pay", func(w http.ResponseWriter, r *http.Request) {
		payAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payPayload))
		_ = json.NewEncoder(w).Encode(map[string]string{"redirectUrl": "https://pay.example/s1"})
	})

	p := testProvider(t, mux)
	url, err := p.Initiate(context.Background(), InitiateRequest{
		Amount: 1700, TransactionID: "NDN-55", Name: "Asha", Mobile: "9876543210",
	}, "https://shop.example/payment/status?id=NDN-55")

	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/s1", url)
	assert.Equal(t, "O-Bearer tok123", payAuth)

	assert.Equal(t, "MID1", payPayload["merchantId"])
	assert.Equal(t, "NDN-55", payPayload["merchantOrderId"])
	// Rupees cross the boundary as paise.
	assert.Equal(t, float64(170000), payPayload["amount"])

	flow := payPayload["paymentFlow"].(map[string]any)
	assert.Equal(t, "PG_CHECKOUT", flow["type"])
	urls := flow["merchantUrls"].(map[string]any)
	assert.Equal(t, "https://shop.example/payment/status?id=NDN-55", urls["redirectUrl"])
	assert.Equal(t, "https://shop.example/payment/status?id=NDN-55", urls["callbackUrl"])
}

func TestProviderInitiateNoRedirectURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok"})
	})
	mux.HandleFunc("/pay", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "declined"})
	})

	p := testProvider(t, mux)
	_, err := p.Initiate(context.Background(), InitiateRequest{Amount: 100, TransactionID: "NDN-1"}, "cb")
	assert.ErrorIs(t, err, ErrNoRedirectURL)
}

func TestProviderInitiateAuthFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "bad credentials"})
	})

	p := testProvider(t, mux)
	_, err := p.Initiate(context.Background(), InitiateRequest{Amount: 100, TransactionID: "NDN-1"}, "cb")
	assert.Error(t, err)
}

func TestProviderOrderStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok"})
	})
	mux.HandleFunc("/order/NDN-55/status", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "O-Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]string{"state": "COMPLETED"})
	})

	p := testProvider(t, mux)
	state, err := p.OrderStatus(context.Background(), "NDN-55")
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, state)
}
