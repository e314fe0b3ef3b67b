package commerce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL)
}

func TestValidateCouponRequestShape(t *testing.T) {
	var got map[string]any
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coupons/validate-coupon", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(CouponResult{Success: true, DiscountAmount: 200, CouponCode: "FESTIVE200"})
	}))

	res, err := c.ValidateCoupon(context.Background(), "FESTIVE200", 1800)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, float64(200), res.DiscountAmount)
	assert.Equal(t, "FESTIVE200", got["code"])
	assert.Equal(t, float64(1800), got["cart_total"])
}

func TestValidateCouponBusinessRejectionDecodes(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Business-rule failures arrive as 400 bodies, not transport errors.
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(CouponResult{Success: false, Message: "Coupon expired"})
	}))

	res, err := c.ValidateCoupon(context.Background(), "EXPIRED10", 500)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Coupon expired", res.Message)
}

func TestServerErrorIsTransportFailure(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := c.ValidateCoupon(context.Background(), "ANY", 100)
	assert.Error(t, err)
}

func TestCreateOrder(t *testing.T) {
	var got OrderRequest
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/create", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(OrderResult{Success: true, OrderID: 55})
	}))

	res, err := c.CreateOrder(context.Background(), OrderRequest{
		FullName:    "Asha",
		PhoneNumber: "+919876543210",
		TotalAmount: 1700,
		Items:       []OrderItem{{ProductID: 1, VariantID: 10, Quantity: 1, Price: 1700}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(55), res.OrderID)
	assert.Equal(t, "+919876543210", got.PhoneNumber)
}

func TestMyOrdersSendsBearer(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/my-orders", r.URL.Path)
		assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"order_id":1}]`))
	}))

	raw, err := c.MyOrders(context.Background(), "tok123")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"order_id":1}]`, string(raw))
}

func TestProductsQueryParams(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shop/products", r.URL.Path)
		assert.Equal(t, "sarees", r.URL.Query().Get("category"))
		assert.Equal(t, "silk", r.URL.Query().Get("search"))
		_, _ = w.Write([]byte(`[]`))
	}))

	raw, err := c.Products(context.Background(), "sarees", "silk", "")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestReviewsList(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reviews/7", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`[{"rating":5,"comment":"lovely saree"}]`))
	}))

	raw, err := c.Reviews(context.Background(), 7)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"rating":5,"comment":"lovely saree"}]`, string(raw))
}

func TestCreateReviewSendsBearer(t *testing.T) {
	var got map[string]any
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reviews/7", r.URL.Path)
		assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"success":true}`))
	}))

	raw, err := c.CreateReview(context.Background(), "tok123", 7,
		[]byte(`{"rating":4,"comment":"good fit"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true}`, string(raw))
	assert.Equal(t, float64(4), got["rating"])
}

func TestWheelItemsDecodes(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"label":"5% OFF","color":"#800000"}]`))
	}))

	segs, err := c.WheelItems(context.Background())
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, "5% OFF", segs[0].Label)
}
