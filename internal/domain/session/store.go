package session

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Slot is the durable key/value slot the token survives restarts in.
// Load returns "" when the slot is empty.
type Slot interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Store is the single owner of session state. It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	token     string
	profile   *Profile
	slot      Slot
	adminRole string
	logger    *zap.Logger
}

// StoreOption customises a Store.
type StoreOption func(*Store)

// WithAdminRole overrides the administrator role string.
func WithAdminRole(role string) StoreOption {
	return func(s *Store) {
		if role != "" {
			s.adminRole = role
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a Store initialised from slot.
func NewStore(ctx context.Context, slot Slot, opts ...StoreOption) (*Store, error) {
	s := &Store{
		slot:      slot,
		adminRole: DefaultAdminRole,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	token, err := slot.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	s.token = token
	return s, nil
}

// Token returns the current token, if any.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// SetToken replaces the token. An empty token logs out: the profile is
// dropped and the slot cleared. Memory is updated before the slot, so a
// slot error leaves the in-memory session already changed.
func (s *Store) SetToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.token {
		s.profile = nil
	}
	s.token = token

	if token == "" {
		if err := s.slot.Clear(ctx); err != nil {
			return fmt.Errorf("clearing persisted token: %w", err)
		}
		return nil
	}
	if err := s.slot.Save(ctx, token); err != nil {
		return fmt.Errorf("persisting token: %w", err)
	}
	return nil
}

// SetProfile caches p. It is ignored without a token.
func (s *Store) SetProfile(p *Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return
	}
	s.profile = p
}

// Profile returns a copy of the cached profile, or nil.
func (s *Store) Profile() *Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// IsLoggedIn reports whether a token is present.
func (s *Store) IsLoggedIn() bool {
	_, ok := s.Token()
	return ok
}

// IsAdmin reports whether the cached profile has the administrator role.
// It is false while the profile has not been fetched yet.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile != nil && s.profile.Role == s.adminRole
}

// Snapshot returns a copy of the session.
func (s *Store) Snapshot() Snapshot {
	token, _ := s.Token()
	return Snapshot{Token: token, Profile: s.Profile()}
}

// ClearSession drops the token and profile. Slot errors are logged; the
// in-memory session is cleared regardless.
func (s *Store) ClearSession(ctx context.Context) {
	if err := s.SetToken(ctx, ""); err != nil {
		s.logger.Warn("failed to clear persisted session", zap.Error(err))
	}
}
