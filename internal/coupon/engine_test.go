package coupon

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nandanicollection/storefront/internal/commerce"
)

type fakeValidator struct {
	res   *commerce.CouponResult
	err   error
	calls int
}

func (f *fakeValidator) ValidateCoupon(_ context.Context, _ string, _ int) (*commerce.CouponResult, error) {
	f.calls++
	return f.res, f.err
}

type memStore struct {
	applied map[string]*Applied
}

func newMemStore() *memStore { return &memStore{applied: map[string]*Applied{}} }

func (s *memStore) Load(_ context.Context, sid string) (*Applied, error) {
	return s.applied[sid], nil
}

func (s *memStore) Save(_ context.Context, sid string, a *Applied) error {
	s.applied[sid] = a
	return nil
}

func (s *memStore) Delete(_ context.Context, sid string) error {
	delete(s.applied, sid)
	return nil
}

func TestEngineApplySuccess(t *testing.T) {
	store := newMemStore()
	eng := &Engine{
		Validator: &fakeValidator{res: &commerce.CouponResult{
			Success: true, DiscountAmount: 200, CouponCode: "FESTIVE200",
		}},
		Store: store,
	}

	a, err := eng.Apply(context.Background(), "s1", "FESTIVE200", 1800)
	require.NoError(t, err)
	assert.Equal(t, "FESTIVE200", a.Code)
	assert.Equal(t, 200, a.DiscountAmount)
	assert.Equal(t, 1800, a.Subtotal)
	assert.NotNil(t, store.applied["s1"])
}

func TestEngineApplyRejectionPassesMessageVerbatim(t *testing.T) {
	store := newMemStore()
	store.applied["s1"] = &Applied{Code: "OLD10", DiscountAmount: 10, Subtotal: 500}
	eng := &Engine{
		Validator: &fakeValidator{res: &commerce.CouponResult{
			Success: false, Message: "Coupon expired",
		}},
		Store: store,
	}

	_, err := eng.Apply(context.Background(), "s1", "EXPIRED10", 500)
	var rej *RejectedError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "Coupon expired", rej.Message)
	// Replace semantics: a failed apply leaves no coupon at all.
	assert.Nil(t, store.applied["s1"])
}

func TestEngineApplyTransportFailure(t *testing.T) {
	store := newMemStore()
	eng := &Engine{
		Validator: &fakeValidator{err: errors.New("dial timeout")},
		Store:     store,
	}

	_, err := eng.Apply(context.Background(), "s1", "ANY", 500)
	assert.ErrorIs(t, err, ErrCheckFailed)
	assert.Nil(t, store.applied["s1"])
}

func TestEngineRevalidateSameSubtotalSkipsNetwork(t *testing.T) {
	store := newMemStore()
	store.applied["s1"] = &Applied{Code: "FESTIVE200", DiscountAmount: 200, Subtotal: 1800}
	v := &fakeValidator{}
	eng := &Engine{Validator: v, Store: store}

	a, err := eng.Revalidate(context.Background(), "s1", 1800)
	require.NoError(t, err)
	assert.Equal(t, 200, a.DiscountAmount)
	assert.Zero(t, v.calls)
}

func TestEngineRevalidateClearsNowInvalidCoupon(t *testing.T) {
	store := newMemStore()
	store.applied["s1"] = &Applied{Code: "MIN1500", DiscountAmount: 150, Subtotal: 1800}
	eng := &Engine{
		Validator: &fakeValidator{res: &commerce.CouponResult{
			Success: false, Message: "Minimum order value is ₹1500",
		}},
		Store: store,
	}

	a, err := eng.Revalidate(context.Background(), "s1", 900)
	require.NoError(t, err)
	assert.Nil(t, a)
	assert.Nil(t, store.applied["s1"])
}

func TestEngineRevalidateUpdatesDiscountOnNewSubtotal(t *testing.T) {
	store := newMemStore()
	store.applied["s1"] = &Applied{Code: "PCT10", DiscountAmount: 180, Subtotal: 1800}
	eng := &Engine{
		Validator: &fakeValidator{res: &commerce.CouponResult{
			Success: true, DiscountAmount: 250, CouponCode: "PCT10",
		}},
		Store: store,
	}

	a, err := eng.Revalidate(context.Background(), "s1", 2500)
	require.NoError(t, err)
	assert.Equal(t, 250, a.DiscountAmount)
	assert.Equal(t, 2500, a.Subtotal)
}

func TestEngineRevalidateKeepsCouponOnTransportFailure(t *testing.T) {
	store := newMemStore()
	store.applied["s1"] = &Applied{Code: "FESTIVE200", DiscountAmount: 200, Subtotal: 1800}
	eng := &Engine{
		Validator: &fakeValidator{err: errors.New("dial timeout")},
		Store:     store,
	}

	a, err := eng.Revalidate(context.Background(), "s1", 2100)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "FESTIVE200", a.Code)
	assert.NotNil(t, store.applied["s1"])
}

func TestEngineRevalidateNoCoupon(t *testing.T) {
	eng := &Engine{Validator: &fakeValidator{}, Store: newMemStore()}
	a, err := eng.Revalidate(context.Background(), "s1", 1000)
	require.NoError(t, err)
	assert.Nil(t, a)
}
