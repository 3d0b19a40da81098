package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/fjod/go_cart/storefront/internal/cart"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/platform/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxQuantity = 99

type CartHandler struct {
	carts *cart.Manager
	log   *zap.Logger
}

func NewCartHandler(carts *cart.Manager, log *zap.Logger) *CartHandler {
	return &CartHandler{
		carts: carts,
		log:   logger.OrNop(log),
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  *int   `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity *int `json:"quantity"`
}

// cartOp is one facade call against the session of the request.
type cartOp func(r *http.Request, s *cart.Session) (domain.Snapshot, error)

// serve opens the request's cart session, runs op and writes the snapshot
// together with the notices the session emitted.
func (h *CartHandler) serve(w http.ResponseWriter, r *http.Request, status int, op cartOp) {
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

	if op == nil {
		respondCart(h.log, w, status, s.Snapshot(), rec)
		return
	}

	snap, err := op(r, s)
	if err != nil {
		h.log.Debug("cart operation rejected", zap.Stringer("mode", mode), zap.Error(err))
		respondCartError(h.log, w, err, snap, rec)
		return
	}
	respondCart(h.log, w, status, snap, rec)
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, http.StatusOK, nil)
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.log, w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(h.log, w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity <= 0 || quantity > maxQuantity {
		respondError(h.log, w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	h.serve(w, r, http.StatusCreated, func(r *http.Request, s *cart.Session) (domain.Snapshot, error) {
		return s.AddToCart(r.Context(), req.ProductID, quantity)
	})
}

// PUT /api/v1/cart/items/{item_id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(h.log, w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity == nil {
		respondError(h.log, w, http.StatusBadRequest, "invalid_quantity", "quantity is required")
		return
	}
	if *req.Quantity > maxQuantity {
		respondError(h.log, w, http.StatusBadRequest, "invalid_quantity", "quantity must not exceed 99")
		return
	}

	h.serve(w, r, http.StatusOK, func(r *http.Request, s *cart.Session) (domain.Snapshot, error) {
		return s.UpdateQuantity(r.Context(), itemID, *req.Quantity)
	})
}

// DELETE /api/v1/cart/items/{item_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")
	h.serve(w, r, http.StatusOK, func(r *http.Request, s *cart.Session) (domain.Snapshot, error) {
		return s.RemoveFromCart(r.Context(), itemID)
	})
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, http.StatusOK, func(r *http.Request, s *cart.Session) (domain.Snapshot, error) {
		return s.ClearCart(r.Context())
	})
}

// POST /api/v1/cart/refresh
func (h *CartHandler) RefreshCart(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, http.StatusOK, func(r *http.Request, s *cart.Session) (domain.Snapshot, error) {
		return s.RefreshCart(r.Context())
	})
}
