package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pweza/pweza-admin/pkg/client"
	"github.com/pweza/pweza-admin/pkg/domain"
)

// DefaultLogoutTimeout bounds the best-effort backend logout.
const DefaultLogoutTimeout = 5 * time.Second

// Manager creates sessions from a login or from the stored token.
type Manager struct {
	store         CredentialStore
	client        *client.Client
	log           *zap.Logger
	logoutTimeout time.Duration
}

// NewManager returns a manager. c is the unauthenticated client; sessions
// get their own copy carrying the token.
func NewManager(store CredentialStore, c *client.Client, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		store:         store,
		client:        c,
		log:           logger,
		logoutTimeout: DefaultLogoutTimeout,
	}
}

// SetLogoutTimeout changes the bound on the backend logout call.
func (m *Manager) SetLogoutTimeout(d time.Duration) {
	m.logoutTimeout = d
}

// Login authenticates with the backend and stores the token.
func (m *Manager) Login(ctx context.Context, phone, password string) (*Session, error) {
	resp, err := m.client.Login(ctx, phone, password)
	if err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}
	if resp.Token == "" {
		return nil, errors.New("auth.Login: backend returned no token")
	}
	if err := m.store.Set(ctx, TokenKey, resp.Token); err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}
	m.log.Info("logged in", zap.Int64("user_id", resp.User.ID))
	return m.newSession(resp.User, resp.Token), nil
}

// Restore rebuilds the session from the stored token. A token the backend
// rejects is cleared, and ErrNoSession is returned either way.
func (m *Manager) Restore(ctx context.Context) (*Session, error) {
	token, err := m.store.Get(ctx, TokenKey)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("auth.Restore: %w", err)
	}

	user, err := m.client.WithToken(token).GetMe(ctx)
	if err != nil {
		m.log.Warn("stored session rejected", zap.Error(err))
		if derr := m.store.Delete(ctx, TokenKey); derr != nil {
			m.log.Error("clear stored token", zap.Error(derr))
		}
		return nil, fmt.Errorf("auth.Restore: %w: %w", ErrNoSession, err)
	}
	return m.newSession(*user, token), nil
}

func (m *Manager) newSession(user domain.User, token string) *Session {
	return &Session{
		User:          user,
		Client:        m.client.WithToken(token),
		store:         m.store,
		log:           m.log.With(zap.Int64("user_id", user.ID)),
		logoutTimeout: m.logoutTimeout,
		ended:         make(chan struct{}),
		loggedOut:     make(chan struct{}),
	}
}

// Session is one authenticated admin.
type Session struct {
	User   domain.User
	Client *client.Client

	store         CredentialStore
	log           *zap.Logger
	logoutTimeout time.Duration

	once      sync.Once
	ended     chan struct{}
	loggedOut chan struct{}
}

// Terminate ends the session. The stored token is cleared before it
// returns; the backend is told in the background and a failure there is
// only logged. Calls after the first do nothing.
func (s *Session) Terminate() {
	s.once.Do(func() {
		if err := s.store.Delete(context.Background(), TokenKey); err != nil {
			s.log.Error("clear stored token", zap.Error(err))
		}
		close(s.ended)

		go func() {
			defer close(s.loggedOut)
			ctx, cancel := context.WithTimeout(context.Background(), s.logoutTimeout)
			defer cancel()
			if err := s.Client.Logout(ctx); err != nil {
				s.log.Warn("backend logout failed", zap.Error(err))
				return
			}
			s.log.Info("logged out")
		}()
	})
}

// Ended is closed once Terminate has cleared local state.
func (s *Session) Ended() <-chan struct{} { return s.ended }

// LoggedOut is closed once the backend logout call has finished, whether
// or not it succeeded.
func (s *Session) LoggedOut() <-chan struct{} { return s.loggedOut }
