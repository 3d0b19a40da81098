package lineitem

import (
	"context"
	"testing"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByMode_RoutesByMode(t *testing.T) {
	local := NewLocalStore(NewMemorySlots(), nil)
	remote := NewLocalStore(NewMemorySlots(), nil)
	store := ByMode{Local: local, Remote: remote}
	ctx := context.Background()

	_, err := store.Insert(ctx, domain.Anonymous(), "sku-1", 1)
	require.NoError(t, err)
	_, err = store.Insert(ctx, domain.Authenticated("u1"), "sku-2", 1)
	require.NoError(t, err)

	localRows, err := local.List(ctx, domain.Anonymous())
	require.NoError(t, err)
	require.Len(t, localRows, 1)
	assert.Equal(t, "sku-1", localRows[0].ProductID)

	remoteRows, err := remote.List(ctx, domain.Authenticated("u1"))
	require.NoError(t, err)
	require.Len(t, remoteRows, 1)
	assert.Equal(t, "sku-2", remoteRows[0].ProductID)

	require.NoError(t, store.Clear(ctx, domain.Authenticated("u1")))
	rows, err := store.List(ctx, domain.Anonymous())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
