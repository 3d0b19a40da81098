package catalog

import (
	"context"
	"errors"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// Reader resolves product ids. Ids that do not resolve are absent from the result.
type Reader interface {
	GetProducts(ctx context.Context, ids []string) (map[string]domain.Product, error)
}

// Invalidator is implemented by readers that keep copies of catalog rows.
type Invalidator interface {
	Invalidate(ctx context.Context, ids ...string) error
}
