package commerce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/nandanicollection/storefront/internal/redisx"
)

// Catalog fronts the read-only catalog endpoints with a short Redis cache.
// Singleflight collapses concurrent misses for the same key so a cold cache
// does not stampede the upstream API.
type Catalog struct {
	Client *Client
	RDB    *redis.Client
	sfg    singleflight.Group
}

func (c *Catalog) Products(ctx context.Context, category, search, sort string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("category", category)
	q.Set("search", search)
	q.Set("sort", sort)
	key := fmt.Sprintf(redisx.KeyCatalog, "products?"+q.Encode())
	return c.fetch(ctx, key, func(ctx context.Context) (json.RawMessage, error) {
		return c.Client.Products(ctx, category, search, sort)
	})
}

func (c *Catalog) Product(ctx context.Context, id int64) (json.RawMessage, error) {
	key := fmt.Sprintf(redisx.KeyCatalog, fmt.Sprintf("product:%d", id))
	return c.fetch(ctx, key, func(ctx context.Context) (json.RawMessage, error) {
		return c.Client.Product(ctx, id)
	})
}

func (c *Catalog) Categories(ctx context.Context) (json.RawMessage, error) {
	return c.fetch(ctx, fmt.Sprintf(redisx.KeyCatalog, "categories"), func(ctx context.Context) (json.RawMessage, error) {
		return c.Client.Categories(ctx)
	})
}

func (c *Catalog) Banners(ctx context.Context) (json.RawMessage, error) {
	return c.fetch(ctx, fmt.Sprintf(redisx.KeyCatalog, "banners"), func(ctx context.Context) (json.RawMessage, error) {
		return c.Client.Banners(ctx)
	})
}

func (c *Catalog) Announcements(ctx context.Context) (json.RawMessage, error) {
	return c.fetch(ctx, fmt.Sprintf(redisx.KeyCatalog, "announcements"), func(ctx context.Context) (json.RawMessage, error) {
		return c.Client.Announcements(ctx)
	})
}

// WheelItems caches the spin-wheel segment config under a short TTL so the
// success page does not refetch on every mount.
func (c *Catalog) WheelItems(ctx context.Context) ([]WheelSegment, error) {
	raw, err := c.fetchTTL(ctx, redisx.KeyWheelItems, redisx.TTLWheel, func(ctx context.Context) (json.RawMessage, error) {
		segments, err := c.Client.WheelItems(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(segments)
	})
	if err != nil {
		return nil, err
	}
	var segments []WheelSegment
	if err := json.Unmarshal(raw, &segments); err != nil {
		return nil, err
	}
	return segments, nil
}

func (c *Catalog) fetch(ctx context.Context, key string, load func(context.Context) (json.RawMessage, error)) (json.RawMessage, error) {
	return c.fetchTTL(ctx, key, redisx.TTLCatalog, load)
}

func (c *Catalog) fetchTTL(ctx context.Context, key string, ttl time.Duration, load func(context.Context) (json.RawMessage, error)) (json.RawMessage, error) {
	v, err, _ := c.sfg.Do(key, func() (any, error) {
		// Collapsed peers share this one flight; detach it from the first
		// caller's context so one cancelled request cannot fail them all.
		ctx := context.WithoutCancel(ctx)
		if c.RDB != nil {
			s, err := c.RDB.Get(ctx, key).Result()
			if err == nil && s != "" {
				return json.RawMessage(s), nil
			}
			if err != nil && !errors.Is(err, redis.Nil) {
				log.Printf("catalog cache get: %v", err)
			}
		}
		raw, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if c.RDB != nil {
			if err := c.RDB.Set(ctx, key, []byte(raw), ttl).Err(); err != nil {
				log.Printf("catalog cache set: %v", err)
			}
		}
		return raw, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(json.RawMessage), nil
}
