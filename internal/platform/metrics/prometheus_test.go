package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_OperationDone(t *testing.T) {
	m := NewManager("storefront-test")

	m.OperationDone("add", domain.Anonymous(), nil, 10*time.Millisecond)
	m.OperationDone("add", domain.Anonymous(), nil, 20*time.Millisecond)
	m.OperationDone("add", domain.Authenticated("u1"), errors.New("boom"), time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CartOpsTotal.WithLabelValues("add", "anonymous", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CartOpsTotal.WithLabelValues("add", "authenticated", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.CartOpLatency))
}

func TestManager_SnapshotPublished(t *testing.T) {
	m := NewManager("storefront")

	m.SnapshotPublished(domain.NewSnapshot(domain.Anonymous(), []domain.LineItem{{ProductID: "sku-1", Quantity: 3}}))
	m.SnapshotPublished(domain.EmptySnapshot(domain.Anonymous()))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SnapshotsTotal))
}

func TestNewServer(t *testing.T) {
	assert.Nil(t, NewServer("", nil))

	m := NewManager("storefront")
	m.CheckoutsStarted.Inc()
	srv := NewServer("9093", m.Registry)
	require.NotNil(t, srv)
	assert.Equal(t, ":9093", srv.Addr)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "storefront_checkouts_started_total 1")
}
