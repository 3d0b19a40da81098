package cart

import (
	"sync"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"go.uber.org/zap"
)

// Observer receives operation outcomes, e.g. to export metrics.
type Observer interface {
	OperationDone(op string, mode domain.Mode, err error, elapsed time.Duration)
	SnapshotPublished(s domain.Snapshot)
}

type nopObserver struct{}

func (nopObserver) OperationDone(string, domain.Mode, error, time.Duration) {}

func (nopObserver) SnapshotPublished(domain.Snapshot) {}

type Option func(*Session)

func WithLogger(log *zap.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log.Named("cart")
		}
	}
}

// WithNotifier adds a notice sink; it may be given more than once.
func WithNotifier(n Notifier) Option {
	return func(s *Session) {
		if n != nil {
			s.notifiers = append(s.notifiers, n)
		}
	}
}

func WithObserver(o Observer) Option {
	return func(s *Session) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithSubscriber subscribes fn for the whole lifetime of the session.
func WithSubscriber(fn func(domain.Snapshot)) Option {
	return func(s *Session) {
		if fn != nil {
			s.addSubscriber(fn)
		}
	}
}

// withOperationLock makes the session share mu with other sessions of the
// same cart, so their operations never interleave.
func withOperationLock(mu *sync.Mutex) Option {
	return func(s *Session) {
		if mu != nil {
			s.opMu = mu
		}
	}
}
