package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/secondhand/console/internal/domain/shared"
)

// ErrLoginFailed is the only error Login and AdminLogin return. Whether
// the backend rejected the credentials or could not be reached is logged,
// not returned.
var ErrLoginFailed = shared.ErrLoginFailed

// Authenticator is the part of the user API the session flows need.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
	AdminLogin(ctx context.Context, username, password string) (string, error)
	GetUserInfo(ctx context.Context) (*Profile, error)
}

// Manager runs the login, profile and logout flows against a Store.
type Manager struct {
	*Store
	auth   Authenticator
	logger *zap.Logger
}

// NewManager creates a Manager.
func NewManager(store *Store, auth Authenticator, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{Store: store, auth: auth, logger: logger}
}

// Login signs in through the user endpoint.
func (m *Manager) Login(ctx context.Context, username, password string) (Snapshot, error) {
	return m.login(ctx, "user", username, password, m.auth.Login)
}

// AdminLogin signs in through the administrator endpoint.
func (m *Manager) AdminLogin(ctx context.Context, username, password string) (Snapshot, error) {
	return m.login(ctx, "admin", username, password, m.auth.AdminLogin)
}

func (m *Manager) login(ctx context.Context, kind, username, password string,
	call func(context.Context, string, string) (string, error)) (Snapshot, error) {
	log := m.logger.With(zap.String("kind", kind), zap.String("username", username))

	token, err := call(ctx, username, password)
	if err != nil {
		log.Debug("login rejected", zap.Error(err))
		return Snapshot{}, ErrLoginFailed
	}
	if token == "" {
		log.Debug("login returned no token")
		return Snapshot{}, ErrLoginFailed
	}

	if err := m.SetToken(ctx, token); err != nil {
		log.Warn("session will not survive a restart", zap.Error(err))
	}
	m.FetchProfile(ctx)

	log.Info("logged in")
	return m.Snapshot(), nil
}

// FetchProfile refreshes the cached profile. It returns nil without a token
// or when the fetch fails; a failed fetch keeps the token.
func (m *Manager) FetchProfile(ctx context.Context) *Profile {
	if !m.IsLoggedIn() {
		return nil
	}

	p, err := m.auth.GetUserInfo(shared.WithSilent(ctx))
	if err != nil || p == nil {
		m.logger.Debug("profile fetch failed", zap.Error(err))
		return nil
	}
	m.SetProfile(p)
	return m.Profile()
}

// Logout clears the session. It makes no backend call.
func (m *Manager) Logout(ctx context.Context) {
	m.ClearSession(ctx)
	m.logger.Info("logged out")
}
