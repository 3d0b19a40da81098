package cart

import (
	"context"
	"sync"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"go.uber.org/zap"
)

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notice is a user-facing acknowledgment of a cart operation (a toast).
type Notice struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

// Notifier delivers notices out of band from the snapshot.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

type NotifierFunc func(ctx context.Context, n Notice)

func (f NotifierFunc) Notify(ctx context.Context, n Notice) { f(ctx, n) }

const (
	msgLoadFailed   = "Failed to load cart items"
	msgAddFailed    = "Failed to add item to cart"
	msgUpdateFailed = "Failed to update quantity"
	msgRemoveFailed = "Failed to remove item from cart"
	msgClearFailed  = "Failed to clear cart"
)

func failureNotice(description string) Notice {
	return Notice{Title: "Error", Description: description, Variant: VariantDestructive}
}

func addedNotice(mode domain.Mode) (Notice, bool) {
	if mode.IsAnonymous() {
		return Notice{
			Title:       "Added to cart (Demo Mode)",
			Description: "Item has been added to your demo cart",
			Variant:     VariantDefault,
		}, true
	}
	return Notice{
		Title:       "Added to cart",
		Description: "Item has been added to your cart",
		Variant:     VariantDefault,
	}, true
}

func removedNotice(mode domain.Mode) (Notice, bool) {
	if mode.IsAnonymous() {
		return Notice{
			Title:       "Item removed (Demo Mode)",
			Description: "Item has been removed from your demo cart",
			Variant:     VariantDefault,
		}, true
	}
	return Notice{
		Title:       "Item removed",
		Description: "Item has been removed from your cart",
		Variant:     VariantDefault,
	}, true
}

// LogNotifier writes notices to the service log.
type LogNotifier struct {
	Log *zap.Logger
}

func (l LogNotifier) Notify(_ context.Context, n Notice) {
	if l.Log == nil {
		return
	}
	fields := []zap.Field{zap.String("title", n.Title), zap.String("description", n.Description)}
	if n.Variant == VariantDestructive {
		l.Log.Warn("cart notice", fields...)
		return
	}
	l.Log.Debug("cart notice", fields...)
}

// Recorder collects notices, e.g. for the duration of one API request.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(_ context.Context, n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns the recorded notices in emission order.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}
