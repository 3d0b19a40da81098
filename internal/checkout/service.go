// Package checkout hands the cart over to a payment processor and clears it
// when the shopper comes back.
package checkout

import (
	"context"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/platform/logger"
	"go.uber.org/zap"
)

// Cart is the part of a cart session checkout needs.
type Cart interface {
	Snapshot() domain.Snapshot
	RefreshCart(ctx context.Context) (domain.Snapshot, error)
	ClearCart(ctx context.Context) (domain.Snapshot, error)
}

type Service struct {
	client     Client
	successURL string
	cancelURL  string
	log        *zap.Logger
}

func NewService(client Client, successURL, cancelURL string, log *zap.Logger) *Service {
	return &Service{
		client:     client,
		successURL: successURL,
		cancelURL:  cancelURL,
		log:        logger.OrNop(log).Named("checkout"),
	}
}

// Begin refreshes the cart so the processor sees current prices, then opens a
// payment session and returns its redirect URL.
func (s *Service) Begin(ctx context.Context, c Cart) (string, error) {
	snap, err := c.RefreshCart(ctx)
	if err != nil {
		return "", err
	}
	if snap.IsEmpty() {
		return "", ErrEmptyCart
	}

	url, err := s.client.CreateSession(ctx, Request{
		Mode:       snap.Mode(),
		Items:      snap.Items(),
		SuccessURL: s.successURL,
		CancelURL:  s.cancelURL,
	})
	if err != nil {
		s.log.Error("failed to create payment session", zap.Stringer("mode", snap.Mode()), zap.Error(err))
		return "", err
	}

	s.log.Info("payment session created",
		zap.Stringer("mode", snap.Mode()),
		zap.Int("total_items", snap.TotalItems()),
		zap.Float64("total_price", snap.TotalPrice()))
	return url, nil
}

// Complete is called when the shopper returns from a successful payment.
func (s *Service) Complete(ctx context.Context, c Cart) (domain.Snapshot, error) {
	return c.ClearCart(ctx)
}
