package lineitem

import (
	"context"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

// Store persists {id, product_id, quantity} rows scoped by mode.
// Update with a non-positive quantity deletes the row, and Delete of an
// unknown id is not an error.
type Store interface {
	List(ctx context.Context, mode domain.Mode) ([]domain.Row, error)
	Insert(ctx context.Context, mode domain.Mode, productID string, quantity int) (domain.Row, error)
	Update(ctx context.Context, mode domain.Mode, id string, quantity int) error
	Delete(ctx context.Context, mode domain.Mode, id string) error
	Clear(ctx context.Context, mode domain.Mode) error
}

// ByMode routes anonymous modes to Local and authenticated modes to Remote.
type ByMode struct {
	Local  Store
	Remote Store
}

func (b ByMode) pick(mode domain.Mode) Store {
	if mode.IsAnonymous() {
		return b.Local
	}
	return b.Remote
}

func (b ByMode) List(ctx context.Context, mode domain.Mode) ([]domain.Row, error) {
	return b.pick(mode).List(ctx, mode)
}

func (b ByMode) Insert(ctx context.Context, mode domain.Mode, productID string, quantity int) (domain.Row, error) {
	return b.pick(mode).Insert(ctx, mode, productID, quantity)
}

func (b ByMode) Update(ctx context.Context, mode domain.Mode, id string, quantity int) error {
	return b.pick(mode).Update(ctx, mode, id, quantity)
}

func (b ByMode) Delete(ctx context.Context, mode domain.Mode, id string) error {
	return b.pick(mode).Delete(ctx, mode, id)
}

func (b ByMode) Clear(ctx context.Context, mode domain.Mode) error {
	return b.pick(mode).Clear(ctx, mode)
}
