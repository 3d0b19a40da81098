// Package cart is the session facade over the line-item store: it resolves the
// active mode, applies mutations, re-reads and denormalizes the cart against the
// catalog and publishes immutable snapshots.
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fjod/go_cart/storefront/internal/catalog"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/identity"
	"github.com/fjod/go_cart/storefront/internal/lineitem"
	"go.uber.org/zap"
)

var ErrSessionClosed = errors.New("cart session is closed")

type State int

const (
	StateLoading State = iota
	StateReady
)

func (s State) String() string {
	if s == StateReady {
		return "ready"
	}
	return "loading"
}

const (
	opLoad    = "load"
	opAdd     = "add"
	opUpdate  = "update"
	opRemove  = "remove"
	opClear   = "clear"
	opRefresh = "refresh"
)

// Session owns the in-memory snapshot of one cart. Operations run one at a
// time and each completes the whole mutate, re-read, publish cycle before the
// next starts.
type Session struct {
	store     lineitem.Store
	catalog   catalog.Reader
	identity  identity.Provider
	log       *zap.Logger
	notifiers []Notifier
	observer  Observer

	opMu *sync.Mutex

	mu          sync.RWMutex
	mode        domain.Mode
	state       State
	snapshot    domain.Snapshot
	subs        map[int]func(domain.Snapshot)
	nextSub     int
	closed      bool
	unsubscribe func()
}

// NewSession creates a session in the Loading state. Call Load to read the
// cart; after that the session reloads itself whenever the identity changes.
func NewSession(store lineitem.Store, products catalog.Reader, id identity.Provider, opts ...Option) *Session {
	mode := id.Current()
	s := &Session{
		store:    store,
		catalog:  products,
		identity: id,
		opMu:     &sync.Mutex{},
		log:      zap.NewNop(),
		observer: nopObserver{},
		mode:     mode,
		state:    StateLoading,
		snapshot: domain.EmptySnapshot(mode),
		subs:     make(map[int]func(domain.Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.unsubscribe = id.Subscribe(s.modeChanged)
	return s
}

type operation struct {
	name    string
	failure string
	success func(domain.Mode) (Notice, bool)
	mutate  func(ctx context.Context, mode domain.Mode) error
}

// Load reads the cart for the current mode. On failure the session still ends
// up Ready, with the previous snapshot, and the error is returned.
func (s *Session) Load(ctx context.Context) error {
	_, err := s.applyAndResync(ctx, operation{name: opLoad, failure: msgLoadFailed})
	return err
}

// AddToCart adds quantity of productID, folding into an existing line item
// for the same product.
func (s *Session) AddToCart(ctx context.Context, productID string, quantity int) (domain.Snapshot, error) {
	if productID == "" {
		return s.Snapshot(), fmt.Errorf("%w: product id is required", domain.ErrValidation)
	}
	if quantity <= 0 {
		return s.Snapshot(), fmt.Errorf("%w: quantity must be greater than 0", domain.ErrValidation)
	}

	return s.applyAndResync(ctx, operation{
		name:    opAdd,
		failure: msgAddFailed,
		success: addedNotice,
		mutate: func(ctx context.Context, mode domain.Mode) error {
			return s.addOrFold(ctx, mode, productID, quantity)
		},
	})
}

func (s *Session) addOrFold(ctx context.Context, mode domain.Mode, productID string, quantity int) error {
	rows, err := s.listRows(ctx, mode)
	if err != nil {
		return err
	}
	if row, ok := findRow(rows, productID); ok {
		return s.store.Update(ctx, mode, row.ID, row.Quantity+quantity)
	}

	_, err = s.store.Insert(ctx, mode, productID, quantity)
	if !errors.Is(err, domain.ErrDuplicateItem) {
		return err
	}

	// another writer inserted the product first
	s.log.Info("line item appeared concurrently, folding quantity",
		zap.Stringer("mode", mode), zap.String("product_id", productID))
	rows, err = s.listRows(ctx, mode)
	if err != nil {
		return err
	}
	row, ok := findRow(rows, productID)
	if !ok {
		return fmt.Errorf("line item for %s vanished after duplicate insert: %w", productID, storeUnavailable(mode))
	}
	return s.store.Update(ctx, mode, row.ID, row.Quantity+quantity)
}

func storeUnavailable(mode domain.Mode) error {
	if mode.IsAnonymous() {
		return domain.ErrStorageUnavailable
	}
	return domain.ErrRemoteUnavailable
}

func findRow(rows []domain.Row, productID string) (domain.Row, bool) {
	for _, r := range rows {
		if r.ProductID == productID {
			return r, true
		}
	}
	return domain.Row{}, false
}

// UpdateQuantity overwrites the quantity of itemID. A quantity of zero or less
// removes the item.
func (s *Session) UpdateQuantity(ctx context.Context, itemID string, quantity int) (domain.Snapshot, error) {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, itemID)
	}
	if itemID == "" {
		return s.Snapshot(), fmt.Errorf("%w: item id is required", domain.ErrValidation)
	}

	return s.applyAndResync(ctx, operation{
		name:    opUpdate,
		failure: msgUpdateFailed,
		mutate: func(ctx context.Context, mode domain.Mode) error {
			return s.store.Update(ctx, mode, itemID, quantity)
		},
	})
}

// RemoveFromCart deletes itemID. Removing an absent item still republishes.
func (s *Session) RemoveFromCart(ctx context.Context, itemID string) (domain.Snapshot, error) {
	if itemID == "" {
		return s.Snapshot(), fmt.Errorf("%w: item id is required", domain.ErrValidation)
	}

	return s.applyAndResync(ctx, operation{
		name:    opRemove,
		failure: msgRemoveFailed,
		success: removedNotice,
		mutate: func(ctx context.Context, mode domain.Mode) error {
			return s.store.Delete(ctx, mode, itemID)
		},
	})
}

// ClearCart empties the cart of the active mode.
func (s *Session) ClearCart(ctx context.Context) (domain.Snapshot, error) {
	return s.applyAndResync(ctx, operation{
		name:    opClear,
		failure: msgClearFailed,
		mutate: func(ctx context.Context, mode domain.Mode) error {
			return s.store.Clear(ctx, mode)
		},
	})
}

// RefreshCart drops cached catalog rows for the products in the cart and
// re-reads everything, so price and stock changes become visible.
func (s *Session) RefreshCart(ctx context.Context) (domain.Snapshot, error) {
	return s.applyAndResync(ctx, operation{
		name:    opRefresh,
		failure: msgLoadFailed,
		mutate: func(ctx context.Context, mode domain.Mode) error {
			s.invalidateCatalog(ctx, mode)
			return nil
		},
	})
}

func (s *Session) invalidateCatalog(ctx context.Context, mode domain.Mode) {
	inv, ok := s.catalog.(catalog.Invalidator)
	if !ok {
		return
	}

	ids := make(map[string]struct{})
	for _, it := range s.Snapshot().Items() {
		ids[it.ProductID] = struct{}{}
	}
	if rows, err := s.listRows(ctx, mode); err == nil {
		for _, r := range rows {
			ids[r.ProductID] = struct{}{}
		}
	}
	if len(ids) == 0 {
		return
	}

	list := make([]string, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}
	if err := inv.Invalidate(ctx, list...); err != nil {
		s.log.Warn("catalog invalidation failed", zap.Stringer("mode", mode), zap.Error(err))
	}
}

// applyAndResync is the only path that changes the snapshot: resolve the mode,
// run the mutation, re-list the rows, denormalize and publish. On failure the
// last snapshot of the same mode is kept and a destructive notice is emitted.
func (s *Session) applyAndResync(ctx context.Context, op operation) (domain.Snapshot, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if s.isClosed() {
		return s.Snapshot(), ErrSessionClosed
	}

	// a started operation always completes, even if the caller goes away
	ctx = context.WithoutCancel(ctx)

	start := time.Now()
	mode := s.identity.Current()
	s.setLoading(mode)

	var err error
	if op.mutate != nil {
		err = op.mutate(ctx, mode)
	}
	var snap domain.Snapshot
	if err == nil {
		snap, err = s.resync(ctx, mode)
	}
	s.observer.OperationDone(op.name, mode, err, time.Since(start))

	if err != nil {
		s.log.Error("cart operation failed",
			zap.String("op", op.name), zap.Stringer("mode", mode), zap.Error(err))
		snap = s.settleAfterFailure(mode)
		s.notify(ctx, failureNotice(op.failure))
		return snap, err
	}

	s.publish(mode, snap)
	if op.success != nil {
		if n, ok := op.success(mode); ok {
			s.notify(ctx, n)
		}
	}
	return snap, nil
}

// resync reads the full row set for mode and joins it with the catalog.
func (s *Session) resync(ctx context.Context, mode domain.Mode) (domain.Snapshot, error) {
	rows, err := s.listRows(ctx, mode)
	if err != nil {
		return domain.Snapshot{}, err
	}
	items, err := s.denormalize(ctx, mode, rows)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return domain.NewSnapshot(mode, items), nil
}

// listRows treats a corrupt local payload as an empty cart; the next local
// write replaces it.
func (s *Session) listRows(ctx context.Context, mode domain.Mode) ([]domain.Row, error) {
	rows, err := s.store.List(ctx, mode)
	if err != nil && mode.IsAnonymous() && errors.Is(err, domain.ErrLocalCorrupt) {
		s.log.Warn("local cart is corrupt, treating as empty", zap.Stringer("mode", mode), zap.Error(err))
		return nil, nil
	}
	return rows, err
}

// denormalize attaches catalog attributes to rows. Anonymous rows are looked up
// in the catalog; authenticated rows arrive joined by the remote store. Rows
// whose product does not resolve are pruned.
func (s *Session) denormalize(ctx context.Context, mode domain.Mode, rows []domain.Row) ([]domain.LineItem, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	var products map[string]domain.Product
	if mode.IsAnonymous() {
		ids := make([]string, 0, len(rows))
		seen := make(map[string]struct{}, len(rows))
		for _, r := range rows {
			if _, ok := seen[r.ProductID]; ok {
				continue
			}
			seen[r.ProductID] = struct{}{}
			ids = append(ids, r.ProductID)
		}
		var err error
		products, err = s.catalog.GetProducts(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("catalog lookup failed: %w", err)
		}
	}

	items := make([]domain.LineItem, 0, len(rows))
	for _, r := range rows {
		var product *domain.Product
		if mode.IsAnonymous() {
			if p, ok := products[r.ProductID]; ok {
				product = &p
			}
		} else {
			product = r.Product
		}
		if product == nil {
			s.log.Debug("pruning line item",
				zap.Stringer("mode", mode),
				zap.String("item_id", r.ID),
				zap.String("product_id", r.ProductID),
				zap.Error(domain.ErrProductMissing))
			continue
		}
		items = append(items, domain.NewLineItem(r, *product))
	}
	return items, nil
}

func (s *Session) setLoading(mode domain.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateLoading
	s.mode = mode
}

// settleAfterFailure returns to Ready. The previous snapshot survives only if
// it belongs to the same mode; carts of different modes are never shown mixed.
func (s *Session) settleAfterFailure(mode domain.Mode) domain.Snapshot {
	s.mu.Lock()
	if s.snapshot.Mode() == mode {
		s.state = StateReady
		snap := s.snapshot
		s.mu.Unlock()
		return snap
	}
	s.mu.Unlock()

	empty := domain.EmptySnapshot(mode)
	s.publish(mode, empty)
	return empty
}

func (s *Session) publish(mode domain.Mode, snap domain.Snapshot) {
	s.mu.Lock()
	s.mode = mode
	s.snapshot = snap
	s.state = StateReady
	subs := make([]func(domain.Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	s.observer.SnapshotPublished(snap)
	for _, fn := range subs {
		fn(snap)
	}
}

func (s *Session) notify(ctx context.Context, n Notice) {
	for _, nt := range s.notifiers {
		nt.Notify(ctx, n)
	}
}

// modeChanged reloads the cart from the new mode's store. The two carts are
// not merged.
func (s *Session) modeChanged(mode domain.Mode) {
	s.log.Info("cart mode changed, reloading", zap.Stringer("mode", mode))
	if _, err := s.applyAndResync(context.Background(), operation{name: opLoad, failure: msgLoadFailed}); err != nil && !errors.Is(err, ErrSessionClosed) {
		s.log.Warn("reload after mode change failed", zap.Stringer("mode", mode), zap.Error(err))
	}
}

// Snapshot returns the last published snapshot.
func (s *Session) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Mode is the mode of the operation in flight, or of the last one.
func (s *Session) Mode() domain.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Subscribe registers fn for every published snapshot. fn runs synchronously
// and must not call back into the session.
func (s *Session) Subscribe(fn func(domain.Snapshot)) (cancel func()) {
	id := s.addSubscriber(fn)
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Session) addSubscriber(fn func(domain.Snapshot)) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return id
}

func (s *Session) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Close waits for the operation in flight, detaches from the identity provider
// and drops all subscribers. Later operations fail with ErrSessionClosed.
func (s *Session) Close() {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.subs = make(map[int]func(domain.Snapshot))
	unsubscribe := s.unsubscribe
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}
