package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client speaks to the remote commerce API. It owns request shaping and
// decoding only; validity rules, stock decrement and payment reconciliation
// live server-side.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// --- catalog (raw passthrough) ---

func (c *Client) Products(ctx context.Context, category, search, sort string) (json.RawMessage, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if search != "" {
		q.Set("search", search)
	}
	if sort != "" {
		q.Set("sort", sort)
	}
	return c.getRaw(ctx, "/shop/products", q)
}

func (c *Client) Product(ctx context.Context, id int64) (json.RawMessage, error) {
	return c.getRaw(ctx, "/shop/products/"+strconv.FormatInt(id, 10), nil)
}

func (c *Client) Categories(ctx context.Context) (json.RawMessage, error) {
	return c.getRaw(ctx, "/shop/categories", nil)
}

func (c *Client) Banners(ctx context.Context) (json.RawMessage, error) {
	return c.getRaw(ctx, "/shop/banners", nil)
}

func (c *Client) Announcements(ctx context.Context) (json.RawMessage, error) {
	return c.getRaw(ctx, "/shop/announcements", nil)
}

// --- reviews ---

func (c *Client) Reviews(ctx context.Context, productID int64) (json.RawMessage, error) {
	return c.getRaw(ctx, "/reviews/"+strconv.FormatInt(productID, 10), nil)
}

func (c *Client) CreateReview(ctx context.Context, bearer string, productID int64, review json.RawMessage) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/reviews/"+strconv.FormatInt(productID, 10), nil, bearer, review)
}

// --- coupons ---

func (c *Client) ValidateCoupon(ctx context.Context, code string, cartTotal int) (*CouponResult, error) {
	body := map[string]any{"code": code, "cart_total": cartTotal}
	var out CouponResult
	if err := c.postJSON(ctx, "/coupons/validate-coupon", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) WheelItems(ctx context.Context) ([]WheelSegment, error) {
	raw, err := c.getRaw(ctx, "/coupons/wheel-items", nil)
	if err != nil {
		return nil, err
	}
	var segments []WheelSegment
	if err := json.Unmarshal(raw, &segments); err != nil {
		return nil, fmt.Errorf("decode wheel items: %w", err)
	}
	return segments, nil
}

func (c *Client) SpinResult(ctx context.Context, orderID string) (*SpinResult, error) {
	var out SpinResult
	if err := c.postJSON(ctx, "/coupons/spin-result", "", map[string]string{"order_id": orderID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- orders ---

func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*OrderResult, error) {
	var out OrderResult
	if err := c.postJSON(ctx, "/orders/create", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyOrders(ctx context.Context, bearer string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/orders/my-orders", nil, bearer, nil)
}

// --- accounts ---

func (c *Client) FirebaseLogin(ctx context.Context, idToken string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/accounts/firebase-login", nil, "",
		map[string]string{"id_token": idToken})
}

func (c *Client) UpdateProfile(ctx context.Context, bearer string, profile json.RawMessage) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/accounts/update-profile", nil, bearer, profile)
}

// --- plumbing ---

func (c *Client) getRaw(ctx context.Context, path string, q url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, q, "", nil)
}

func (c *Client) postJSON(ctx context.Context, path, bearer string, body, out any) error {
	raw, err := c.do(ctx, http.MethodPost, path, nil, bearer, body)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, bearer string, body any) (json.RawMessage, error) {
	u := c.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	// The commerce API reports business-rule failures as 200/400 bodies with
	// {"success": false, "message": ...}; those decode fine. Anything past
	// 4xx is a transport-level failure.
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("commerce api %s %s: status %d", method, path, resp.StatusCode)
	}
	return raw, nil
}
