package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fjod/go_cart/storefront/internal/cart"
	"github.com/fjod/go_cart/storefront/internal/checkout"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error   string           `json:"error"`
	Code    string           `json:"code,omitempty"`
	Details string           `json:"details,omitempty"`
	Cart    *domain.Snapshot `json:"cart,omitempty"`
	Notices []cart.Notice    `json:"notices,omitempty"`
}

type CartResponse struct {
	Cart    domain.Snapshot `json:"cart"`
	Notices []cart.Notice   `json:"notices"`
}

func respondJSON(log *zap.Logger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warn("failed to encode response", zap.Int("status", status), zap.Error(err))
	}
}

func respondError(log *zap.Logger, w http.ResponseWriter, status int, code, message string) {
	respondJSON(log, w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func respondCart(log *zap.Logger, w http.ResponseWriter, status int, snap domain.Snapshot, rec *cart.Recorder) {
	notices := rec.Notices()
	if notices == nil {
		notices = []cart.Notice{}
	}
	respondJSON(log, w, status, CartResponse{Cart: snap, Notices: notices})
}

// respondCartError reports err together with the cart as it still stands.
func respondCartError(log *zap.Logger, w http.ResponseWriter, err error, snap domain.Snapshot, rec *cart.Recorder) {
	status, code := statusFor(err)
	respondJSON(log, w, status, ErrorResponse{
		Error:   err.Error(),
		Code:    code,
		Cart:    &snap,
		Notices: rec.Notices(),
	})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden, "permission_denied"
	case errors.Is(err, domain.ErrDuplicateItem):
		return http.StatusConflict, "already_exists"
	case errors.Is(err, checkout.ErrEmptyCart):
		return http.StatusConflict, "cart_empty"
	case errors.Is(err, checkout.ErrRejected):
		return http.StatusBadGateway, "payment_rejected"
	case errors.Is(err, domain.ErrRemoteUnavailable),
		errors.Is(err, domain.ErrStorageUnavailable),
		errors.Is(err, checkout.ErrPaymentUnavailable):
		return http.StatusServiceUnavailable, "service_unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
