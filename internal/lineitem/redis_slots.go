package lineitem

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSlots keeps anonymous cart payloads in Redis. Every write refreshes
// the TTL so abandoned visitor carts expire on their own.
type RedisSlots struct {
	client     *redis.Client
	ttl        time.Duration
	maxRetries int
}

// ErrSlotContended is returned by Modify when concurrent writers kept
// changing the slot for every attempt.
var ErrSlotContended = errors.New("slot changed concurrently too many times")

func NewRedisSlots(client *redis.Client, ttl time.Duration) *RedisSlots {
	return &RedisSlots{client: client, ttl: ttl, maxRetries: 10}
}

func (r *RedisSlots) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, slotKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (r *RedisSlots) Write(ctx context.Context, key string, payload []byte) error {
	if err := r.client.Set(ctx, slotKey(key), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Modify runs fn inside an optimistic WATCH/MULTI transaction, so replicas
// sharing a slot never overwrite each other's rows.
func (r *RedisSlots) Modify(ctx context.Context, key string, fn func([]byte) ([]byte, error)) error {
	k := slotKey(key)
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			current = nil
		} else if err != nil {
			return fmt.Errorf("redis get failed: %w", err)
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, next, r.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < r.maxRetries; i++ {
		err := r.client.Watch(ctx, txf, k)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("%w: %s", ErrSlotContended, key)
}

func (r *RedisSlots) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, slotKey(key)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func slotKey(key string) string {
	return fmt.Sprintf("cart:slot:%s", key)
}
