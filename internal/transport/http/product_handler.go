package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/platform/logger"
	"go.uber.org/zap"
)

// ProductLister is the catalog listing the storefront shows.
type ProductLister interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

type ProductHandler struct {
	products ProductLister
	timeout  time.Duration
	log      *zap.Logger
}

func NewProductHandler(products ProductLister, timeout time.Duration, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		timeout:  timeout,
		log:      logger.OrNop(log),
	}
}

type ProductsResponseDTO struct {
	Products []domain.Product `json:"products"`
}

// GET /api/v1/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.products.ListProducts(ctx)
	if err != nil {
		h.log.Error("failed to list products", zap.Error(err))
		respondError(h.log, w, http.StatusInternalServerError, "internal_error", "failed to list products")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	respondJSON(h.log, w, http.StatusOK, ProductsResponseDTO{Products: products})
}
