package cart

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/fjod/go_cart/storefront/internal/catalog"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/identity"
	"github.com/fjod/go_cart/storefront/internal/lineitem"
)

const lockStripes = 64

// Manager opens short-lived sessions for request-scoped callers such as the
// HTTP and gRPC handlers. Options given to NewManager apply to every session.
// Sessions of the same cart share a lock stripe, so overlapping requests of
// one visitor run their operations one after the other.
type Manager struct {
	store   lineitem.Store
	catalog catalog.Reader
	opts    []Option
	locks   [lockStripes]sync.Mutex
}

func NewManager(store lineitem.Store, products catalog.Reader, opts ...Option) *Manager {
	return &Manager{
		store:   store,
		catalog: products,
		opts:    opts,
	}
}

// Open returns a loaded session pinned to mode. The session is usable even
// when the load error is non-nil; its snapshot is then empty.
func (m *Manager) Open(ctx context.Context, mode domain.Mode, extra ...Option) (*Session, error) {
	opts := make([]Option, 0, len(m.opts)+len(extra)+1)
	opts = append(opts, withOperationLock(m.lockFor(mode)))
	opts = append(opts, m.opts...)
	opts = append(opts, extra...)

	s := NewSession(m.store, m.catalog, identity.Fixed(mode), opts...)
	return s, s.Load(ctx)
}

func (m *Manager) lockFor(mode domain.Mode) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(mode.Key()))
	return &m.locks[h.Sum32()%lockStripes]
}

// Catalog exposes the reader the sessions denormalize against.
func (m *Manager) Catalog() catalog.Reader {
	return m.catalog
}

// Store exposes the line-item store, e.g. for out-of-band clears.
func (m *Manager) Store() lineitem.Store {
	return m.store
}
