package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fjod/go_cart/storefront/internal/cart"
	"github.com/fjod/go_cart/storefront/internal/checkout"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/platform/logger"
	"github.com/fjod/go_cart/storefront/internal/platform/metrics"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	carts    *cart.Manager
	checkout *checkout.Service
	metrics  *metrics.Manager
	timeout  time.Duration
	log      *zap.Logger
}

func NewCheckoutHandler(carts *cart.Manager, svc *checkout.Service, m *metrics.Manager, timeout time.Duration, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		carts:    carts,
		checkout: svc,
		metrics:  m,
		timeout:  timeout,
		log:      logger.OrNop(log),
	}
}

type CheckoutResponseDTO struct {
	CheckoutURL string          `json:"checkout_url"`
	Cart        domain.Snapshot `json:"cart"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) InitiateCheckout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	mode, ok := ModeFromContext(r.Context())
	if !ok {
		respondError(h.log, w, http.StatusUnauthorized, "unauthenticated", "cart mode could not be resolved")
		return
	}

	rec := &cart.Recorder{}
	s, err := h.carts.Open(ctx, mode, cart.WithNotifier(rec))
	defer s.Close()
	if err != nil {
		respondCartError(h.log, w, err, s.Snapshot(), rec)
		return
	}

	url, err := h.checkout.Begin(ctx, s)
	if err != nil {
		respondCartError(h.log, w, err, s.Snapshot(), rec)
		return
	}
	if h.metrics != nil {
		h.metrics.CheckoutsStarted.Inc()
	}

	respondJSON(h.log, w, http.StatusCreated, CheckoutResponseDTO{
		CheckoutURL: url,
		Cart:        s.Snapshot(),
	})
}

// POST /api/v1/checkout/complete
func (h *CheckoutHandler) CompleteCheckout(w http.ResponseWriter, r *http.Request) {
	mode, ok := ModeFromContext(r.Context())
	if !ok {
		respondError(h.log, w, http.StatusUnauthorized, "unauthenticated", "cart mode could not be resolved")
		return
	}

	rec := &cart.Recorder{}
	s, err := h.carts.Open(r.Context(), mode, cart.WithNotifier(rec))
	defer s.Close()
	if err != nil {
		respondCartError(h.log, w, err, s.Snapshot(), rec)
		return
	}

	snap, err := h.checkout.Complete(r.Context(), s)
	if err != nil {
		respondCartError(h.log, w, err, snap, rec)
		return
	}
	if h.metrics != nil {
		h.metrics.CheckoutsFinished.Inc()
	}
	respondCart(h.log, w, http.StatusOK, snap, rec)
}
