package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shopify-qr-codes/internal/domain/ports/adapter"
	"shopify-qr-codes/internal/infra/metrics"
	red "shopify-qr-codes/internal/infra/redis"
)

var _ adapter.ProductDataAdapter = (*productCacheDecorator)(nil)

// cachedProduct distinguishes "cached as deleted" from a plain miss so a
// deleted product doesn't trigger a remote call on every listing.
type cachedProduct struct {
	Missing bool                 `json:"missing"`
	Data    *adapter.ProductData `json:"data,omitempty"`
}

type productCacheDecorator struct {
	inner adapter.ProductDataAdapter
	cache red.RedisClient
	ttl   time.Duration
}

// NewProductCacheDecorator wraps a product adapter with a read-through redis
// cache. Listing views issue one remote query per record; the short TTL keeps
// repeat renders of the same list from hammering the Admin API.
func NewProductCacheDecorator(inner adapter.ProductDataAdapter, cache red.RedisClient, ttl time.Duration) adapter.ProductDataAdapter {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &productCacheDecorator{inner: inner, cache: cache, ttl: ttl}
}

func (d *productCacheDecorator) FetchProduct(ctx context.Context, shop, productID, variantID string) (*adapter.ProductData, error) {
	key := fmt.Sprintf("product:%s:%s:%s", shop, productID, variantID)
	if val, err := d.cache.Get(ctx, key); err == nil {
		var c cachedProduct
		if json.Unmarshal([]byte(val), &c) == nil {
			metrics.IncCacheRequest("product", "hit")
			return c.Data, nil
		}
	}

	metrics.IncCacheRequest("product", "miss")
	data, err := d.inner.FetchProduct(ctx, shop, productID, variantID)
	if err != nil {
		// Remote failures are not cached; the next render retries.
		return nil, err
	}
	bytes, _ := json.Marshal(cachedProduct{Missing: data == nil, Data: data})
	d.cache.Set(ctx, key, bytes, d.ttl)
	return data, nil
}
