package lineitem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/platform/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// localRow is the payload element of a local slot: [{"id","product_id","quantity"}].
type localRow struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// LocalStore keeps anonymous carts as a JSON array in a single slot per mode key.
// Every write is one atomic Modify of the slot, so a product appears at most
// once per cart even when requests or replicas overlap.
type LocalStore struct {
	slots Slots
	log   *zap.Logger
	newID func() string
}

func NewLocalStore(slots Slots, log *zap.Logger) *LocalStore {
	return &LocalStore{
		slots: slots,
		log:   logger.OrNop(log).Named("local_store"),
		newID: func() string { return "demo-" + uuid.NewString() },
	}
}

func (s *LocalStore) List(ctx context.Context, mode domain.Mode) ([]domain.Row, error) {
	rows, err := s.load(ctx, mode)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Row{ID: r.ID, ProductID: r.ProductID, Quantity: r.Quantity})
	}
	return out, nil
}

// Insert adds a row for productID. It fails with domain.ErrDuplicateItem when
// the cart already holds that product.
func (s *LocalStore) Insert(ctx context.Context, mode domain.Mode, productID string, quantity int) (domain.Row, error) {
	if quantity <= 0 {
		return domain.Row{}, fmt.Errorf("%w: quantity must be greater than 0", domain.ErrValidation)
	}

	row := localRow{ID: s.newID(), ProductID: productID, Quantity: quantity}
	err := s.modify(ctx, mode, func(rows []localRow) ([]localRow, error) {
		for _, r := range rows {
			if r.ProductID == productID {
				return nil, domain.ErrDuplicateItem
			}
		}
		return append(rows, row), nil
	})
	if err != nil {
		return domain.Row{}, err
	}
	return domain.Row{ID: row.ID, ProductID: row.ProductID, Quantity: row.Quantity}, nil
}

func (s *LocalStore) Update(ctx context.Context, mode domain.Mode, id string, quantity int) error {
	if quantity <= 0 {
		return s.Delete(ctx, mode, id)
	}

	return s.modify(ctx, mode, func(rows []localRow) ([]localRow, error) {
		for i := range rows {
			if rows[i].ID == id {
				rows[i].Quantity = quantity
				return rows, nil
			}
		}
		return nil, errUnchanged
	})
}

func (s *LocalStore) Delete(ctx context.Context, mode domain.Mode, id string) error {
	return s.modify(ctx, mode, func(rows []localRow) ([]localRow, error) {
		kept := rows[:0]
		for _, r := range rows {
			if r.ID != id {
				kept = append(kept, r)
			}
		}
		if len(kept) == len(rows) {
			return nil, errUnchanged
		}
		return kept, nil
	})
}

func (s *LocalStore) Clear(ctx context.Context, mode domain.Mode) error {
	if err := s.slots.Remove(ctx, mode.Key()); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// errUnchanged aborts a modify without writing.
var errUnchanged = errors.New("slot unchanged")

// modify applies fn to the decoded rows of the slot and writes the result
// back atomically. A corrupt payload is treated as empty and overwritten.
func (s *LocalStore) modify(ctx context.Context, mode domain.Mode, fn func([]localRow) ([]localRow, error)) error {
	var fnErr error
	err := s.slots.Modify(ctx, mode.Key(), func(current []byte) ([]byte, error) {
		rows, err := decodeRows(current)
		if err != nil {
			s.log.Warn("discarding corrupt local cart", zap.String("mode", mode.Key()), zap.Error(err))
			rows = nil
		}
		rows = s.dedupe(mode, rows)

		next, err := fn(rows)
		if err != nil {
			fnErr = err
			return nil, err
		}
		if next == nil {
			next = []localRow{}
		}
		data, err := json.Marshal(next)
		if err != nil {
			fnErr = fmt.Errorf("failed to marshal local cart: %w", err)
			return nil, fnErr
		}
		return data, nil
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(fnErr, errUnchanged):
		return nil
	case fnErr != nil:
		return fnErr
	default:
		return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
}

func (s *LocalStore) load(ctx context.Context, mode domain.Mode) ([]localRow, error) {
	data, err := s.slots.Read(ctx, mode.Key())
	if errors.Is(err, ErrSlotEmpty) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}

	rows, err := decodeRows(data)
	if err != nil {
		return nil, err
	}
	return s.dedupe(mode, rows), nil
}

// decodeRows parses a slot payload and drops rows that cannot be valid.
// A nil payload is an empty cart.
func decodeRows(data []byte) ([]localRow, error) {
	if data == nil {
		return nil, nil
	}
	var rows []localRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLocalCorrupt, err)
	}

	valid := rows[:0]
	for _, r := range rows {
		if r.ID == "" || r.ProductID == "" || r.Quantity <= 0 {
			continue
		}
		valid = append(valid, r)
	}
	return valid, nil
}

// dedupe keeps the first row of every product. Payloads written before
// inserts were checked can hold more than one.
func (s *LocalStore) dedupe(mode domain.Mode, rows []localRow) []localRow {
	seen := make(map[string]struct{}, len(rows))
	kept := rows[:0]
	for _, r := range rows {
		if _, ok := seen[r.ProductID]; ok {
			s.log.Warn("dropping duplicate local line item",
				zap.String("mode", mode.Key()), zap.String("item_id", r.ID), zap.String("product_id", r.ProductID))
			continue
		}
		seen[r.ProductID] = struct{}{}
		kept = append(kept, r)
	}
	return kept
}
