package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// StateCompleted is the only provider order state treated as success; every
// other state, and every request error, resolves as failure.
const StateCompleted = "COMPLETED"

var ErrNoRedirectURL = errors.New("no redirect url in provider response")

// Provider speaks the PhonePe v2 hosted-checkout API: client-credentials
// OAuth, checkout-session creation, order-status query. Credentials never
// leave this process; browsers only ever see the hosted-checkout URL.
type Provider struct {
	MerchantID    string
	ClientID      string
	ClientSecret  string
	ClientVersion string

	AuthURL   string
	PayURL    string
	StatusURL string // base; order status is {StatusURL}/{txn}/status

	HTTP *http.Client
}

func NewProvider(merchantID, clientID, clientSecret, clientVersion, authURL, payURL, statusURL string) *Provider {
	return &Provider{
		MerchantID:    merchantID,
		ClientID:      clientID,
		ClientSecret:  clientSecret,
		ClientVersion: clientVersion,
		AuthURL:       authURL,
		PayURL:        payURL,
		StatusURL:     statusURL,
		HTTP:          &http.Client{Timeout: 15 * time.Second},
	}
}

type InitiateRequest struct {
	Amount        int    `json:"amount"` // rupees
	TransactionID string `json:"transactionId"`
	Name          string `json:"name"`
	Mobile        string `json:"mobile"`
}

func (p *Provider) token(ctx context.Context) (string, error) {
	q := url.Values{}
	q.Set("grant_type", "client_credentials")
	q.Set("client_id", p.ClientID)
	q.Set("client_secret", p.ClientSecret)
	q.Set("client_version", p.ClientVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.AuthURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode auth response: %w", err)
	}
	if out.AccessToken == "" {
		return "", errors.New("auth failed with payment provider")
	}
	return out.AccessToken, nil
}

// Initiate creates a hosted-checkout session and returns the redirect URL.
// The amount crosses the gateway boundary in paise.
func (p *Provider) Initiate(ctx context.Context, req InitiateRequest, callbackURL string) (string, error) {
	token, err := p.token(ctx)
	if err != nil {
		return "", err
	}

	payload := map[string]any{
		"merchantId":      p.MerchantID,
		"merchantOrderId": req.TransactionID,
		"amount":          int64(req.Amount) * 100,
		"paymentFlow": map[string]any{
			"type":    "PG_CHECKOUT",
			"message": "Nandani Collection Order",
			"merchantUrls": map[string]any{
				"redirectUrl": callbackURL,
				"callbackUrl": callbackURL,
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.PayURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	hreq.Header.Set("accept", "application/json")
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("Authorization", "O-Bearer "+token)

	resp, err := p.HTTP.Do(hreq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	var out struct {
		RedirectURL string `json:"redirectUrl"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode pay response: %w", err)
	}
	if out.RedirectURL == "" {
		return "", ErrNoRedirectURL
	}
	return out.RedirectURL, nil
}

// OrderStatus queries the provider for the terminal state of a transaction.
// Read-only against the provider, so safe to call repeatedly.
func (p *Provider) OrderStatus(ctx context.Context, transactionID string) (string, error) {
	token, err := p.token(ctx)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/%s/status", p.StatusURL, transactionID), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("Authorization", "O-Bearer "+token)

	resp, err := p.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out struct {
		State string `json:"state"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode status response: %w", err)
	}
	return out.State, nil
}
