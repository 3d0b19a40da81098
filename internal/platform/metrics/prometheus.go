package metrics

import (
	"net/http"
	"strings"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager holds the service's Prometheus metrics. It satisfies cart.Observer.
type Manager struct {
	Registry          *prometheus.Registry
	CartOpsTotal      *prometheus.CounterVec
	CartOpLatency     *prometheus.HistogramVec
	SnapshotItems     prometheus.Histogram
	SnapshotsTotal    prometheus.Counter
	APIRequestsTotal  *prometheus.CounterVec
	CheckoutsStarted  prometheus.Counter
	CheckoutsFinished prometheus.Counter
}

func NewManager(serviceName string) *Manager {
	namespace := strings.ReplaceAll(serviceName, "-", "_")
	registry := prometheus.NewRegistry()

	cartOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_operations_total",
		Help:      "Cart operations by operation, mode and outcome.",
	}, []string{"op", "mode", "outcome"})

	cartLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "cart_operation_duration_seconds",
		Help:      "Duration of the mutate and resync cycle by operation and mode.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op", "mode"})

	snapshotItems := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "cart_snapshot_items",
		Help:      "Total item quantity of published cart snapshots.",
		Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
	})

	snapshots := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_snapshots_published_total",
		Help:      "Total number of cart snapshots published.",
	})

	apiRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "API requests by transport, route and status.",
	}, []string{"transport", "route", "status"})

	checkoutsStarted := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_started_total",
		Help:      "Payment sessions created.",
	})

	checkoutsFinished := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_completed_total",
		Help:      "Checkouts completed and carts cleared.",
	})

	registry.MustRegister(
		cartOps,
		cartLatency,
		snapshotItems,
		snapshots,
		apiRequests,
		checkoutsStarted,
		checkoutsFinished,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Manager{
		Registry:          registry,
		CartOpsTotal:      cartOps,
		CartOpLatency:     cartLatency,
		SnapshotItems:     snapshotItems,
		SnapshotsTotal:    snapshots,
		APIRequestsTotal:  apiRequests,
		CheckoutsStarted:  checkoutsStarted,
		CheckoutsFinished: checkoutsFinished,
	}
}

func modeLabel(mode domain.Mode) string {
	if mode.IsAnonymous() {
		return "anonymous"
	}
	return "authenticated"
}

func (m *Manager) OperationDone(op string, mode domain.Mode, err error, elapsed time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.CartOpsTotal.WithLabelValues(op, modeLabel(mode), outcome).Inc()
	m.CartOpLatency.WithLabelValues(op, modeLabel(mode)).Observe(elapsed.Seconds())
}

func (m *Manager) SnapshotPublished(s domain.Snapshot) {
	m.SnapshotsTotal.Inc()
	m.SnapshotItems.Observe(float64(s.TotalItems()))
}

// NewServer returns the /metrics server; an empty port means no server.
func NewServer(port string, registry *prometheus.Registry) *http.Server {
	if port == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
