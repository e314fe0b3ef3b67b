package coupon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/nandanicollection/storefront/internal/commerce"
	"github.com/nandanicollection/storefront/internal/redisx"
)

// ErrCheckFailed is the generic transport-failure signal, deliberately
// distinct from a server-rejected code whose message is passed through
// verbatim.
var ErrCheckFailed = errors.New("coupon check failed")

// RejectedError carries the server's rejection message untouched
// ("Coupon expired", minimum-order hints, and so on).
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string { return e.Message }

// Applied is the at-most-one coupon on a checkout session. The discount is
// server-computed and trusted as-is; Subtotal records the snapshot it was
// validated against.
type Applied struct {
	Code           string                `json:"code"`
	DiscountAmount int                   `json:"discount_amount"`
	Subtotal       int                   `json:"subtotal"`
	Response       commerce.CouponResult `json:"response"`
}

type Validator interface {
	ValidateCoupon(ctx context.Context, code string, cartTotal int) (*commerce.CouponResult, error)
}

// Store persists the applied coupon per session. Load returns nil when no
// coupon is applied.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Applied, error)
	Save(ctx context.Context, sessionID string, a *Applied) error
	Delete(ctx context.Context, sessionID string) error
}

type Engine struct {
	Validator Validator
	Store     Store
}

// Apply validates the code against the current subtotal snapshot. Replace
// semantics: success overwrites any prior coupon, failure leaves none
// applied.
func (e *Engine) Apply(ctx context.Context, sessionID, code string, subtotal int) (*Applied, error) {
	res, err := e.Validator.ValidateCoupon(ctx, code, subtotal)
	if err != nil {
		_ = e.Store.Delete(ctx, sessionID)
		return nil, fmt.Errorf("%w: %v", ErrCheckFailed, err)
	}
	if !res.Success {
		_ = e.Store.Delete(ctx, sessionID)
		return nil, &RejectedError{Message: res.Message}
	}
	a := &Applied{
		Code:           res.CouponCode,
		DiscountAmount: int(res.DiscountAmount),
		Subtotal:       subtotal,
		Response:       *res,
	}
	if err := e.Store.Save(ctx, sessionID, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (e *Engine) Remove(ctx context.Context, sessionID string) error {
	return e.Store.Delete(ctx, sessionID)
}

func (e *Engine) Applied(ctx context.Context, sessionID string) (*Applied, error) {
	return e.Store.Load(ctx, sessionID)
}

// Revalidate re-runs validation when the subtotal has moved since the coupon
// was applied, clearing the coupon if the server now rejects it. A transport
// failure keeps the previously validated coupon rather than dropping a
// discount over a flaky network.
func (e *Engine) Revalidate(ctx context.Context, sessionID string, subtotal int) (*Applied, error) {
	a, err := e.Store.Load(ctx, sessionID)
	if err != nil || a == nil {
		return nil, err
	}
	if a.Subtotal == subtotal {
		return a, nil
	}
	res, err := e.Validator.ValidateCoupon(ctx, a.Code, subtotal)
	if err != nil {
		return a, nil
	}
	if !res.Success {
		_ = e.Store.Delete(ctx, sessionID)
		return nil, nil
	}
	a = &Applied{
		Code:           res.CouponCode,
		DiscountAmount: int(res.DiscountAmount),
		Subtotal:       subtotal,
		Response:       *res,
	}
	if err := e.Store.Save(ctx, sessionID, a); err != nil {
		return nil, err
	}
	return a, nil
}

// RedisStore keeps the applied coupon under a versioned session key.
type RedisStore struct {
	RDB *redis.Client
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (*Applied, error) {
	raw, err := s.RDB.Get(ctx, fmt.Sprintf(redisx.KeyCoupon, sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var a Applied
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, a *Applied) error {
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return s.RDB.Set(ctx, fmt.Sprintf(redisx.KeyCoupon, sessionID), b, redisx.TTLCoupon).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.RDB.Del(ctx, fmt.Sprintf(redisx.KeyCoupon, sessionID)).Err()
}
