package cart

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/identity"
	"github.com/fjod/go_cart/storefront/internal/lineitem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func fixedUser(id string) identity.Fixed {
	return identity.Fixed(domain.Authenticated(id))
}

func TestManager_OpenSharesStores(t *testing.T) {
	catalog := newFakeCatalog(lamp, pillow)
	store := lineitem.ByMode{
		Local:  lineitem.NewLocalStore(lineitem.NewMemorySlots(), nil),
		Remote: newFakeRemote(catalog),
	}
	m := NewManager(store, catalog)
	ctx := context.Background()

	first, err := m.Open(ctx, domain.AnonymousIn("demo-cart:visitor-a"))
	require.NoError(t, err)
	defer first.Close()
	_, err = first.AddToCart(ctx, "sku-1", 2)
	require.NoError(t, err)

	rec := &Recorder{}
	second, err := m.Open(ctx, domain.AnonymousIn("demo-cart:visitor-a"), WithNotifier(rec))
	require.NoError(t, err)
	defer second.Close()
	assert.Equal(t, 2, second.Snapshot().TotalItems())

	other, err := m.Open(ctx, domain.AnonymousIn("demo-cart:visitor-b"))
	require.NoError(t, err)
	defer other.Close()
	assert.True(t, other.Snapshot().IsEmpty())

	_, err = second.ClearCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, rec.Notices())

	assert.Same(t, catalog, m.Catalog())
	assert.Equal(t, store, m.Store())
}

func TestManager_OpenReturnsUsableSessionOnLoadFailure(t *testing.T) {
	catalog := newFakeCatalog(lamp)
	remote := newFakeRemote(catalog)
	remote.failLists(fmt.Errorf("%w: down", domain.ErrRemoteUnavailable))
	rec := &Recorder{}

	m := NewManager(lineitem.ByMode{Remote: remote}, catalog)
	s, err := m.Open(context.Background(), domain.Authenticated("u1"), WithNotifier(rec))
	require.NotNil(t, s)
	defer s.Close()

	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	assert.Equal(t, StateReady, s.State())
	assert.True(t, s.Snapshot().IsEmpty())
	assert.Equal(t, []Notice{failureNotice(msgLoadFailed)}, rec.Notices())
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	n := LogNotifier{Log: zap.New(core)}
	ctx := context.Background()

	n.Notify(ctx, Notice{Title: "Added to cart", Variant: VariantDefault})
	n.Notify(ctx, failureNotice(msgClearFailed))
	LogNotifier{}.Notify(ctx, failureNotice(msgClearFailed))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.DebugLevel, entries[0].Level)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, msgClearFailed, entries[1].ContextMap()["description"])
}

func TestWithLogger_LogsFailures(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	catalog := newFakeCatalog(lamp)
	remote := newFakeRemote(catalog)
	s := NewSession(remote, catalog, fixedUser("u1"), WithLogger(zap.New(core)))
	defer s.Close()

	remote.failWrites(domain.ErrRemoteUnavailable)
	_, err := s.ClearCart(context.Background())
	require.Error(t, err)

	failures := logs.FilterMessage("cart operation failed").All()
	require.Len(t, failures, 1)
	assert.Equal(t, "clear", failures[0].ContextMap()["op"])
	assert.Equal(t, "cart", failures[0].LoggerName)
}

func TestManager_OverlappingRequestsKeepOneLinePerProduct(t *testing.T) {
	catalog := newFakeCatalog(lamp)
	m := NewManager(lineitem.ByMode{Local: lineitem.NewLocalStore(lineitem.NewMemorySlots(), nil)}, catalog)
	ctx := context.Background()
	mode := domain.AnonymousIn("demo-cart:v")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := m.Open(ctx, mode)
			defer s.Close()
			if !assert.NoError(t, err) {
				return
			}
			_, err = s.AddToCart(ctx, "sku-1", 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	s, err := m.Open(ctx, mode)
	require.NoError(t, err)
	defer s.Close()
	snap := s.Snapshot()
	require.Equal(t, 1, snap.Len())
	assert.Equal(t, 20, snap.TotalItems())
}

// staleStore answers one List with an empty cart, as a reader racing
// another writer would see it.
type staleStore struct {
	lineitem.Store
	mu    sync.Mutex
	stale bool
}

func (s *staleStore) List(ctx context.Context, mode domain.Mode) ([]domain.Row, error) {
	s.mu.Lock()
	stale := s.stale
	s.stale = false
	s.mu.Unlock()
	if stale {
		return nil, nil
	}
	return s.Store.List(ctx, mode)
}

func TestSession_LocalDuplicateInsertFolds(t *testing.T) {
	catalog := newFakeCatalog(lamp)
	local := lineitem.NewLocalStore(lineitem.NewMemorySlots(), nil)
	store := &staleStore{Store: local}
	s := NewSession(lineitem.ByMode{Local: store}, catalog, identity.Fixed(domain.Anonymous()))
	defer s.Close()
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	// another session inserted the product after our read
	_, err := local.Insert(ctx, domain.Anonymous(), "sku-1", 2)
	require.NoError(t, err)
	store.mu.Lock()
	store.stale = true
	store.mu.Unlock()

	snap, err := s.AddToCart(ctx, "sku-1", 1)
	require.NoError(t, err)
	require.Equal(t, 1, snap.Len())
	assert.Equal(t, 3, snap.Items()[0].Quantity)
}
