package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Cache stores resolved products. Missing ids are never cached, so a deleted
// product disappears once its entry expires or is invalidated.
type Cache interface {
	GetMany(ctx context.Context, ids []string) (found map[string]domain.Product, missing []string, err error)
	SetMany(ctx context.Context, products map[string]domain.Product) error
	Delete(ctx context.Context, ids ...string) error
}

func NewRedisCache(client *redis.Client, baseTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: baseTTL,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisCache) GetMany(ctx context.Context, ids []string) (map[string]domain.Product, []string, error) {
	found := make(map[string]domain.Product, len(ids))
	if len(ids) == 0 {
		return found, nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = cacheKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, nil, fmt.Errorf("redis mget failed: %w", err)
	}

	var missing []string
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			missing = append(missing, ids[i])
			continue
		}
		var p domain.Product
		if err := json.Unmarshal([]byte(s), &p); err != nil {
			missing = append(missing, ids[i])
			continue
		}
		found[ids[i]] = p
	}
	return found, missing, nil
}

func (r *RedisCache) SetMany(ctx context.Context, products map[string]domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()
	for id, p := range products {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshal product failed: %w", err)
		}
		jitter := time.Duration(rand.Intn(5)) * time.Minute
		pipe.Set(ctx, cacheKey(id), data, r.baseTTL+jitter)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = cacheKey(id)
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cacheKey(productID string) string {
	return fmt.Sprintf("product:%s", productID)
}
