package cart

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/identity"
	"github.com/fjod/go_cart/storefront/internal/lineitem"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	lamp   = domain.Product{ID: "sku-1", Name: "Walnut Desk Lamp", Price: 49.99, ImageURL: "/img/lamp.jpg", Stock: 25}
	pillow = domain.Product{ID: "sku-2", Name: "Linen Throw Pillow", Price: 24.50, ImageURL: "/img/pillow.jpg", Stock: 40}
)

type fakeCatalog struct {
	mu          sync.Mutex
	products    map[string]domain.Product
	err         error
	invalidated []string
}

func newFakeCatalog(products ...domain.Product) *fakeCatalog {
	c := &fakeCatalog{products: make(map[string]domain.Product)}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *fakeCatalog) GetProducts(_ context.Context, ids []string) (map[string]domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	out := make(map[string]domain.Product, len(ids))
	for _, id := range ids {
		if p, ok := c.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (c *fakeCatalog) Invalidate(_ context.Context, ids ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, ids...)
	return nil
}

func (c *fakeCatalog) remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.products, id)
}

func (c *fakeCatalog) setPrice(id string, price float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.products[id]
	p.Price = price
	c.products[id] = p
}

func (c *fakeCatalog) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// fakeRemote is a per-user store that joins the catalog on List, the way the
// Mongo store does.
type fakeRemote struct {
	mu       sync.Mutex
	rows     map[string][]domain.Row
	catalog  *fakeCatalog
	seq      int
	listErr  error
	writeErr error
	raceAdd  int
}

func newFakeRemote(c *fakeCatalog) *fakeRemote {
	return &fakeRemote{rows: make(map[string][]domain.Row), catalog: c}
}

func (f *fakeRemote) List(ctx context.Context, mode domain.Mode) ([]domain.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRemoteUnavailable, err)
	}
	f.mu.Lock()
	if f.listErr != nil {
		err := f.listErr
		f.mu.Unlock()
		return nil, err
	}
	rows := append([]domain.Row(nil), f.rows[mode.UserID]...)
	f.mu.Unlock()

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ProductID)
	}
	products, err := f.catalog.GetProducts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRemoteUnavailable, err)
	}
	for i := range rows {
		if p, ok := products[rows[i].ProductID]; ok {
			rows[i].Product = &p
		}
	}
	return rows, nil
}

func (f *fakeRemote) Insert(ctx context.Context, mode domain.Mode, productID string, quantity int) (domain.Row, error) {
	if err := ctx.Err(); err != nil {
		return domain.Row{}, fmt.Errorf("%w: %w", domain.ErrRemoteUnavailable, err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return domain.Row{}, f.writeErr
	}
	if f.raceAdd > 0 {
		f.rows[mode.UserID] = append(f.rows[mode.UserID], f.newRow(productID, f.raceAdd))
		f.raceAdd = 0
	}
	for _, r := range f.rows[mode.UserID] {
		if r.ProductID == productID {
			return domain.Row{}, domain.ErrDuplicateItem
		}
	}
	row := f.newRow(productID, quantity)
	f.rows[mode.UserID] = append(f.rows[mode.UserID], row)
	return row, nil
}

func (f *fakeRemote) newRow(productID string, quantity int) domain.Row {
	f.seq++
	return domain.Row{ID: fmt.Sprintf("r-%d", f.seq), ProductID: productID, Quantity: quantity}
}

func (f *fakeRemote) Update(ctx context.Context, mode domain.Mode, id string, quantity int) error {
	if quantity <= 0 {
		return f.Delete(ctx, mode, id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	rows := f.rows[mode.UserID]
	for i := range rows {
		if rows[i].ID == id {
			rows[i].Quantity = quantity
		}
	}
	return nil
}

func (f *fakeRemote) Delete(_ context.Context, mode domain.Mode, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	rows := f.rows[mode.UserID]
	kept := rows[:0]
	for _, r := range rows {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.rows[mode.UserID] = kept
	return nil
}

func (f *fakeRemote) Clear(_ context.Context, mode domain.Mode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	delete(f.rows, mode.UserID)
	return nil
}

func (f *fakeRemote) failWrites(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeErr = err
}

func (f *fakeRemote) failLists(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listErr = err
}

type recordingObserver struct {
	mu        sync.Mutex
	ops       []string
	failed    []string
	published int
}

func (o *recordingObserver) OperationDone(op string, _ domain.Mode, err error, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ops = append(o.ops, op)
	if err != nil {
		o.failed = append(o.failed, op)
	}
}

func (o *recordingObserver) SnapshotPublished(domain.Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.published++
}

type fixture struct {
	slots    *lineitem.MemorySlots
	local    *lineitem.LocalStore
	remote   *fakeRemote
	catalog  *fakeCatalog
	identity *identity.Switch
	notices  *Recorder
	observer *recordingObserver
	session  *Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		slots:    lineitem.NewMemorySlots(),
		catalog:  newFakeCatalog(lamp, pillow),
		identity: identity.NewSwitch(domain.Anonymous()),
		notices:  &Recorder{},
		observer: &recordingObserver{},
	}
	f.local = lineitem.NewLocalStore(f.slots, nil)
	f.remote = newFakeRemote(f.catalog)
	f.session = NewSession(
		lineitem.ByMode{Local: f.local, Remote: f.remote},
		f.catalog,
		f.identity,
		WithNotifier(f.notices),
		WithObserver(f.observer),
	)
	t.Cleanup(f.session.Close)
	return f
}

func (f *fixture) lastNotice(t *testing.T) Notice {
	t.Helper()
	notices := f.notices.Notices()
	if len(notices) == 0 {
		t.Fatal("no notice emitted")
	}
	return notices[len(notices)-1]
}
