package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lampItem = domain.LineItem{ID: "r-1", ProductID: "sku-1", Quantity: 2, Name: "Walnut Desk Lamp", UnitPrice: 49.99, StockAvailable: 25}

func TestHTTPClient_CreateSession(t *testing.T) {
	var got sessionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(sessionResponse{URL: "https://pay.example/s/123"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second, nil)
	url, err := c.CreateSession(context.Background(), Request{
		Mode:       domain.Authenticated("u1"),
		Items:      []domain.LineItem{lampItem},
		SuccessURL: "https://shop.example/checkout/success",
		CancelURL:  "https://shop.example/cart",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/s/123", url)

	assert.Equal(t, "u1", got.UserID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "sku-1", got.Items[0].ProductID)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.InDelta(t, 99.98, got.Items[0].Subtotal, 1e-9)
	assert.InDelta(t, 99.98, got.TotalAmount, 1e-9)
	assert.Equal(t, "https://shop.example/cart", got.CancelURL)
}

func TestHTTPClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusBadGateway) }, ErrPaymentUnavailable},
		{"rejected", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "currency not supported", http.StatusUnprocessableEntity)
		}, ErrRejected},
		{"no url", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(`{}`)) }, ErrPaymentUnavailable},
		{"bad json", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(`<html>`)) }, ErrPaymentUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewHTTPClient(srv.URL, time.Second, nil).CreateSession(context.Background(), Request{Items: []domain.LineItem{lampItem}})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestHTTPClient_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second, nil)
	for i := 0; i < 5; i++ {
		_, err := c.CreateSession(context.Background(), Request{})
		require.ErrorIs(t, err, ErrPaymentUnavailable)
	}

	_, err := c.CreateSession(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrPaymentUnavailable)
	assert.EqualValues(t, 5, hits.Load(), "open breaker must not reach the endpoint")
}

func TestHTTPClient_RejectionsDoNotTripBreaker(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second, nil)
	for i := 0; i < 7; i++ {
		_, err := c.CreateSession(context.Background(), Request{})
		require.ErrorIs(t, err, ErrRejected)
	}
	assert.EqualValues(t, 7, hits.Load())
}

type stubClient struct {
	req Request
	url string
	err error
}

func (s *stubClient) CreateSession(_ context.Context, req Request) (string, error) {
	s.req = req
	return s.url, s.err
}

type stubCart struct {
	snap       domain.Snapshot
	refreshErr error
	cleared    bool
}

func (c *stubCart) Snapshot() domain.Snapshot { return c.snap }

func (c *stubCart) RefreshCart(context.Context) (domain.Snapshot, error) {
	return c.snap, c.refreshErr
}

func (c *stubCart) ClearCart(context.Context) (domain.Snapshot, error) {
	c.cleared = true
	c.snap = domain.EmptySnapshot(c.snap.Mode())
	return c.snap, nil
}

func TestService_Begin(t *testing.T) {
	client := &stubClient{url: "https://pay.example/s/1"}
	svc := NewService(client, "https://shop/ok", "https://shop/cancel", nil)
	c := &stubCart{snap: domain.NewSnapshot(domain.Authenticated("u1"), []domain.LineItem{lampItem})}

	url, err := svc.Begin(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/s/1", url)
	assert.Equal(t, domain.Authenticated("u1"), client.req.Mode)
	assert.Equal(t, []domain.LineItem{lampItem}, client.req.Items)
	assert.Equal(t, "https://shop/ok", client.req.SuccessURL)
	assert.False(t, c.cleared, "the cart is cleared only when the shopper returns")
}

func TestService_BeginRejectsEmptyCart(t *testing.T) {
	client := &stubClient{}
	svc := NewService(client, "", "", nil)

	_, err := svc.Begin(context.Background(), &stubCart{snap: domain.EmptySnapshot(domain.Anonymous())})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, client.req.Items)
}

func TestService_BeginPropagatesErrors(t *testing.T) {
	snap := domain.NewSnapshot(domain.Anonymous(), []domain.LineItem{lampItem})

	_, err := NewService(&stubClient{}, "", "", nil).Begin(context.Background(), &stubCart{snap: snap, refreshErr: domain.ErrRemoteUnavailable})
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)

	_, err = NewService(&stubClient{err: ErrPaymentUnavailable}, "", "", nil).Begin(context.Background(), &stubCart{snap: snap})
	assert.ErrorIs(t, err, ErrPaymentUnavailable)
	assert.False(t, errors.Is(err, ErrEmptyCart))
}

func TestService_Complete(t *testing.T) {
	c := &stubCart{snap: domain.NewSnapshot(domain.Anonymous(), []domain.LineItem{lampItem})}

	snap, err := NewService(&stubClient{}, "", "", nil).Complete(context.Background(), c)
	require.NoError(t, err)
	assert.True(t, c.cleared)
	assert.True(t, snap.IsEmpty())
}
