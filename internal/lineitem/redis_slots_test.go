package lineitem

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisSlots, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisSlots(client, 30*time.Minute), mr
}

func TestRedisSlots_ReadEmpty(t *testing.T) {
	slots, _ := setupTestRedis(t)

	_, err := slots.Read(context.Background(), "demo-cart")
	assert.ErrorIs(t, err, ErrSlotEmpty)
}

func TestRedisSlots_WriteSetsTTL(t *testing.T) {
	slots, mr := setupTestRedis(t)

	require.NoError(t, slots.Write(context.Background(), "demo-cart:v1", []byte(`[]`)))

	assert.True(t, mr.Exists("cart:slot:demo-cart:v1"))
	assert.Equal(t, 30*time.Minute, mr.TTL("cart:slot:demo-cart:v1"))
}

func TestRedisSlots_Remove(t *testing.T) {
	slots, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, slots.Write(ctx, "k", []byte(`[]`)))
	require.NoError(t, slots.Remove(ctx, "k"))
	require.NoError(t, slots.Remove(ctx, "k"))

	assert.False(t, mr.Exists("cart:slot:k"))
}

func TestRedisSlots_BackingLocalStore(t *testing.T) {
	slots, _ := setupTestRedis(t)
	store := NewLocalStore(slots, nil)
	ctx := context.Background()
	mode := domain.AnonymousIn("demo-cart:visitor")

	row, err := store.Insert(ctx, mode, "sku-9", 4)
	require.NoError(t, err)

	rows, err := store.List(ctx, mode)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, row.ID, rows[0].ID)
}

func TestRedisSlots_Unavailable(t *testing.T) {
	slots, mr := setupTestRedis(t)
	store := NewLocalStore(slots, nil)
	mr.Close()

	_, err := store.List(context.Background(), domain.Anonymous())
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestRedisSlots_ModifyConcurrentInserts(t *testing.T) {
	slots, mr := setupTestRedis(t)
	ctx := context.Background()
	mode := domain.AnonymousIn("demo-cart:visitor")

	// two stores over one Redis stand in for two replicas
	replicas := []*LocalStore{NewLocalStore(slots, nil), NewLocalStore(slots, nil)}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		for _, store := range replicas {
			wg.Add(1)
			go func(store *LocalStore) {
				defer wg.Done()
				_, err := store.Insert(ctx, mode, "sku-1", 1)
				if err != nil {
					assert.ErrorIs(t, err, domain.ErrDuplicateItem)
				}
			}(store)
		}
	}
	wg.Wait()

	rows, err := replicas[0].List(ctx, mode)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 30*time.Minute, mr.TTL("cart:slot:demo-cart:visitor"))
}

func TestRedisSlots_ModifyEmptySlot(t *testing.T) {
	slots, _ := setupTestRedis(t)
	ctx := context.Background()

	err := slots.Modify(ctx, "fresh", func(current []byte) ([]byte, error) {
		assert.Nil(t, current)
		return []byte(`[]`), nil
	})
	require.NoError(t, err)

	got, err := slots.Read(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}
