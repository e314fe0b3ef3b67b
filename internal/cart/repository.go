package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/nandanicollection/storefront/internal/redisx"
)

// Repository persists the whole bag/wishlist per session. A missing record
// loads as an empty collection. Concurrent writers (two tabs on the same
// session) are last-write-wins at the storage layer; that is accepted,
// documented behavior.
type Repository interface {
	LoadBag(ctx context.Context, sessionID string) (*Bag, error)
	SaveBag(ctx context.Context, sessionID string, b *Bag) error
	LoadWishlist(ctx context.Context, sessionID string) (*Wishlist, error)
	SaveWishlist(ctx context.Context, sessionID string, w *Wishlist) error
}

type RedisRepository struct {
	RDB *redis.Client
}

func (r *RedisRepository) LoadBag(ctx context.Context, sessionID string) (*Bag, error) {
	var b Bag
	if err := r.load(ctx, fmt.Sprintf(redisx.KeyCart, sessionID), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *RedisRepository) SaveBag(ctx context.Context, sessionID string, b *Bag) error {
	return r.save(ctx, fmt.Sprintf(redisx.KeyCart, sessionID), b)
}

func (r *RedisRepository) LoadWishlist(ctx context.Context, sessionID string) (*Wishlist, error) {
	var w Wishlist
	if err := r.load(ctx, fmt.Sprintf(redisx.KeyWishlist, sessionID), &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *RedisRepository) SaveWishlist(ctx context.Context, sessionID string, w *Wishlist) error {
	return r.save(ctx, fmt.Sprintf(redisx.KeyWishlist, sessionID), w)
}

func (r *RedisRepository) load(ctx context.Context, key string, out any) error {
	s, err := r.RDB.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(s), out)
}

func (r *RedisRepository) save(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.RDB.Set(ctx, key, b, redisx.TTLSession).Err()
}
