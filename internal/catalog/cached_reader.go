package catalog

import (
	"context"
	"slices"
	"strings"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/platform/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CachedReader serves products from cache and falls back to next for misses.
// Concurrent misses for the same id set share one catalog query.
type CachedReader struct {
	next  Reader
	cache Cache
	sfg   singleflight.Group
	log   *zap.Logger
}

func NewCachedReader(next Reader, cache Cache, log *zap.Logger) *CachedReader {
	return &CachedReader{
		next:  next,
		cache: cache,
		log:   logger.OrNop(log).Named("catalog_cache"),
	}
}

func (c *CachedReader) GetProducts(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	found, missing, err := c.cache.GetMany(ctx, ids)
	if err != nil {
		c.log.Warn("cache get error", zap.Error(err))
		found, missing = make(map[string]domain.Product, len(ids)), ids
	}
	if len(missing) == 0 {
		return found, nil
	}

	key := slices.Clone(missing)
	slices.Sort(key)
	v, err, _ := c.sfg.Do(strings.Join(key, ","), func() (interface{}, error) {
		loaded, err := c.next.GetProducts(ctx, missing)
		if err != nil {
			return nil, err
		}
		if err := c.cache.SetMany(ctx, loaded); err != nil {
			c.log.Warn("cache set error", zap.Error(err))
		}
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	for id, p := range v.(map[string]domain.Product) {
		found[id] = p
	}
	return found, nil
}

func (c *CachedReader) Invalidate(ctx context.Context, ids ...string) error {
	return c.cache.Delete(ctx, ids...)
}
