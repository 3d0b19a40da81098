package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

type chanReader struct {
	msgs   chan kafka.Message
	errs   chan error
	closed bool
}

func newChanReader() *chanReader {
	return &chanReader{msgs: make(chan kafka.Message, 8), errs: make(chan error, 8)}
}

func (r *chanReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	case err := <-r.errs:
		return kafka.Message{}, err
	case m := <-r.msgs:
		return m, nil
	}
}

func (r *chanReader) Close() error {
	r.closed = true
	return nil
}

type recordingClearer struct {
	mu      sync.Mutex
	cleared []domain.Mode
	err     error
}

func (c *recordingClearer) Clear(_ context.Context, mode domain.Mode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.cleared = append(c.cleared, mode)
	return nil
}

func (c *recordingClearer) modes() []domain.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Mode(nil), c.cleared...)
}

func TestSnapshotPublisher_Publish(t *testing.T) {
	w := &recordingWriter{}
	p := NewSnapshotPublisherWithWriter(w, nil)
	p.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	snap := domain.NewSnapshot(domain.Authenticated("u1"), []domain.LineItem{
		{ID: "r-1", ProductID: "sku-1", Quantity: 2, Name: "Lamp", UnitPrice: 10},
	})
	require.NoError(t, p.Publish(context.Background(), snap))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "user:u1", string(msg.Key))
	assert.Equal(t, "cart_snapshot", string(msg.Headers[0].Value))

	var got struct {
		CartKey  string `json:"cart_key"`
		UserID   string `json:"user_id"`
		Snapshot struct {
			TotalItems int     `json:"total_items"`
			TotalPrice float64 `json:"total_price"`
			Mode       string  `json:"mode"`
		} `json:"snapshot"`
		PublishedAt time.Time `json:"published_at"`
	}
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "user:u1", got.CartKey)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, 2, got.Snapshot.TotalItems)
	assert.InDelta(t, 20.0, got.Snapshot.TotalPrice, 1e-9)
	assert.Equal(t, "authenticated", got.Snapshot.Mode)
	assert.True(t, got.PublishedAt.Equal(p.now()))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestSnapshotPublisher_SubscriberSwallowsErrors(t *testing.T) {
	w := &recordingWriter{err: errors.New("broker down")}
	p := NewSnapshotPublisherWithWriter(w, nil)

	assert.Error(t, p.Publish(context.Background(), domain.EmptySnapshot(domain.Anonymous())))
	assert.NotPanics(t, func() { p.Subscriber()(domain.EmptySnapshot(domain.Anonymous())) })

	w.err = nil
	p.Subscriber()(domain.EmptySnapshot(domain.AnonymousIn("demo-cart:v1")))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "demo-cart:v1", string(w.msgs[0].Key))
}

func TestCheckoutConsumer_ClearsUserCart(t *testing.T) {
	r := newChanReader()
	carts := &recordingClearer{}
	c := NewCheckoutConsumerWithReader(r, carts, nil)
	c.backoff = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	r.msgs <- kafka.Message{Value: []byte(`{not json`)}
	r.msgs <- kafka.Message{Value: []byte(`{"checkout_id":"c0"}`)}
	r.errs <- errors.New("rebalance in progress")
	r.msgs <- kafka.Message{Value: []byte(`{"checkout_id":"c1","user_id":"123","total_amount":"1"}`)}

	require.Eventually(t, func() bool {
		return len(carts.modes()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []domain.Mode{domain.Authenticated("123")}, carts.modes())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop")
	}

	require.NoError(t, c.Close())
	assert.True(t, r.closed)
}

func TestCheckoutConsumer_HandleClearError(t *testing.T) {
	c := NewCheckoutConsumerWithReader(newChanReader(), &recordingClearer{err: domain.ErrRemoteUnavailable}, nil)

	err := c.handle(context.Background(), kafka.Message{Value: []byte(`{"user_id":"u1"}`)})
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
}
