// Package pos owns the application State and the in-progress cart. Every
// mutation runs under one lock and is persisted before the lock is released.
package pos

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"khanmedical/m/domain"
	"khanmedical/m/internal/billing"
	"khanmedical/m/internal/catalog"
	"khanmedical/m/internal/storage"
)

var (
	// ErrInvalidCredentials is returned when login receives a blank username or password.
	ErrInvalidCredentials = errors.New("pos: username and password are required")
	// ErrNotLoggedIn is returned by operations that need an active session.
	ErrNotLoggedIn = errors.New("pos: not logged in")
)

// Options tune a Store. The zero value is usable.
type Options struct {
	Manager    *catalog.Manager
	Now        func() time.Time
	OnCheckout func(domain.Bill)
	OnReject   func(error)
}

// Store is the single owner of the State.
type Store struct {
	mu      sync.Mutex
	gateway storage.Gateway
	logger  *slog.Logger
	manager *catalog.Manager
	now     func() time.Time

	onCheckout func(domain.Bill)
	onReject   func(error)

	state domain.State
	cart  billing.Cart
}

// Open loads the persisted State. Unreadable data has already been replaced
// with the default State by the gateway.
func Open(ctx context.Context, gateway storage.Gateway, logger *slog.Logger, opts Options) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Manager == nil {
		opts.Manager = catalog.NewManager(nil, nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Store{
		gateway:    gateway,
		logger:     logger,
		manager:    opts.Manager,
		now:        opts.Now,
		onCheckout: opts.OnCheckout,
		onReject:   opts.OnReject,
		state:      gateway.Load(ctx),
	}
	logger.Info("state loaded",
		slog.Int("medicines", len(s.state.Medicines)),
		slog.Int("bills", len(s.state.Bills)))
	return s
}

// Snapshot returns a deep copy of the State.
func (s *Store) Snapshot() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// persist must be called with s.mu held. A failed save is logged and the
// in-memory change is kept.
func (s *Store) persist(ctx context.Context) {
	if err := s.gateway.Save(ctx, s.state); err != nil {
		s.logger.Error("failed to save state", slog.Any("error", err))
	}
}

// Login opens a session for any non-blank username and password.
func (s *Store) Login(ctx context.Context, username, password string) (domain.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return domain.Session{}, ErrInvalidCredentials
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = &domain.Session{Username: username, IsLoggedIn: true}
	s.persist(ctx)
	return *s.state.User, nil
}

// Logout ends the session and abandons the cart.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = nil
	s.cart = billing.Cart{}
	s.persist(ctx)
}

// Session returns the active session.
func (s *Store) Session() (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.User == nil || !s.state.User.IsLoggedIn {
		return domain.Session{}, ErrNotLoggedIn
	}
	return *s.state.User, nil
}

// Reset clears persisted data and returns to the default State.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.gateway.Clear(ctx); err != nil {
		return err
	}
	s.state = domain.NewState()
	s.cart = billing.Cart{}
	return nil
}
