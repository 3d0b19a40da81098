// Package identity tells a cart session which mode it is operating in and
// notifies it when the signed-in user changes.
package identity

import (
	"sync"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

// Provider reports the current cart mode. Subscribers are called after the
// mode changes; the returned func stops the subscription.
type Provider interface {
	Current() domain.Mode
	Subscribe(fn func(domain.Mode)) (cancel func())
}

// Fixed is a Provider whose mode never changes, e.g. one per HTTP request.
type Fixed domain.Mode

func (f Fixed) Current() domain.Mode { return domain.Mode(f) }

func (Fixed) Subscribe(func(domain.Mode)) func() { return func() {} }

// Switch is a Provider driven by explicit sign-in and sign-out calls.
// Listeners run synchronously on the goroutine that changed the mode.
type Switch struct {
	mu        sync.Mutex
	anonymous domain.Mode
	current   domain.Mode
	nextID    int
	listeners map[int]func(domain.Mode)
}

// NewSwitch starts signed out; anonymous is the mode used while signed out.
func NewSwitch(anonymous domain.Mode) *Switch {
	return &Switch{
		anonymous: anonymous,
		current:   anonymous,
		listeners: make(map[int]func(domain.Mode)),
	}
}

func (s *Switch) Current() domain.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Switch) Subscribe(fn func(domain.Mode)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// SignIn switches to the authenticated mode of userID. An empty id signs out.
func (s *Switch) SignIn(userID string) {
	if userID == "" {
		s.SignOut()
		return
	}
	s.set(domain.Authenticated(userID))
}

func (s *Switch) SignOut() {
	s.set(s.anonymous)
}

func (s *Switch) set(mode domain.Mode) {
	s.mu.Lock()
	if s.current == mode {
		s.mu.Unlock()
		return
	}
	s.current = mode
	listeners := make([]func(domain.Mode), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(mode)
	}
}
