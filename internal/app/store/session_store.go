package store

import (
	"errors"
	"sync"

	"storefront-gateway/internal/app/model"
	"storefront-gateway/internal/storage"
	"storefront-gateway/pkg/logger"
)

const sessionRecordName = "auth-storage"

// SessionState is a point-in-time snapshot of the auth session.
type SessionState struct {
	User            *model.User `json:"user"`
	Token           string      `json:"token,omitempty"`
	RefreshToken    string      `json:"refreshToken,omitempty"`
	IsAuthenticated bool        `json:"isAuthenticated"`
	IsLoading       bool        `json:"isLoading"`
}

// sessionRecord is the persisted shape of the session. The transient
// loading flag is deliberately not part of it.
type sessionRecord struct {
	User            *model.User `json:"user"`
	Token           string      `json:"token"`
	RefreshToken    string      `json:"refreshToken"`
	IsAuthenticated bool        `json:"isAuthenticated"`
}

// SessionStore holds the authenticated-user session. Invariant: the
// session is authenticated only while both user and token are set;
// SetAuth establishes them together and Logout clears them together.
type SessionStore struct {
	mu              sync.RWMutex
	user            *model.User
	token           string
	refreshToken    string
	isAuthenticated bool
	isLoading       bool
	storage         storage.Storage
	onChange        func(SessionState)
}

// NewSessionStore builds the store, restoring any persisted session.
func NewSessionStore(st storage.Storage) *SessionStore {
	s := &SessionStore{storage: st}

	var rec sessionRecord
	err := st.Load(sessionRecordName, &rec)
	switch {
	case err == nil:
		s.user = rec.User
		s.token = rec.Token
		s.refreshToken = rec.RefreshToken
		s.isAuthenticated = rec.IsAuthenticated && rec.User != nil && rec.Token != ""
		if s.isAuthenticated {
			logger.Info("Session restored from storage", map[string]interface{}{
				"email": rec.User.Email,
			})
		}
	case errors.Is(err, storage.ErrNotFound):
		// first use, anonymous session
	default:
		logger.Warn("Failed to restore session, starting anonymous", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return s
}

// OnChange registers the listener invoked with a snapshot after every
// mutation.
func (s *SessionStore) OnChange(fn func(SessionState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// SetAuth marks the session authenticated with the given user and access
// token. An empty refreshToken preserves the previously stored refresh
// token; a partial update never silently clears it.
func (s *SessionStore) SetAuth(user *model.User, token, refreshToken string) {
	s.mu.Lock()
	s.user = user
	s.token = token
	if refreshToken != "" {
		s.refreshToken = refreshToken
	}
	s.isAuthenticated = true
	s.isLoading = false
	notify := s.commitLocked()
	s.mu.Unlock()
	notify()

	fields := map[string]interface{}{}
	if user != nil {
		fields["email"] = user.Email
	}
	logger.Info("Session authenticated", fields)
}

// SetUser replaces the profile only, leaving tokens and flags untouched.
// Used when the profile is re-fetched without re-authenticating.
func (s *SessionStore) SetUser(user *model.User) {
	s.mu.Lock()
	s.user = user
	notify := s.commitLocked()
	s.mu.Unlock()
	notify()
}

// Logout resets the session to anonymous. Idempotent.
func (s *SessionStore) Logout() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.refreshToken = ""
	s.isAuthenticated = false
	s.isLoading = false
	notify := s.commitLocked()
	s.mu.Unlock()
	notify()

	logger.Info("Session logged out")
}

// SetLoading sets the transient in-flight flag.
func (s *SessionStore) SetLoading(loading bool) {
	s.mu.Lock()
	s.isLoading = loading
	notify := s.commitLocked()
	s.mu.Unlock()
	notify()
}

// User returns the current profile, nil while anonymous.
func (s *SessionStore) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Token returns the current access token, empty while anonymous.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// RefreshToken returns the stored refresh token.
func (s *SessionStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// IsAuthenticated reports whether a successful authentication populated
// the session.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isAuthenticated
}

// IsLoading reports whether an auth operation is in flight.
func (s *SessionStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isLoading
}

// State returns a full snapshot of the session.
func (s *SessionStore) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *SessionStore) stateLocked() SessionState {
	return SessionState{
		User:            s.user,
		Token:           s.token,
		RefreshToken:    s.refreshToken,
		IsAuthenticated: s.isAuthenticated,
		IsLoading:       s.isLoading,
	}
}

// commitLocked writes the partialized session through to storage and
// returns the change notification to run once the lock is released.
func (s *SessionStore) commitLocked() func() {
	rec := sessionRecord{
		User:            s.user,
		Token:           s.token,
		RefreshToken:    s.refreshToken,
		IsAuthenticated: s.isAuthenticated,
	}
	if err := s.storage.Save(sessionRecordName, rec); err != nil {
		logger.Warn("Failed to persist session", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if s.onChange == nil {
		return func() {}
	}
	state := s.stateLocked()
	fn := s.onChange
	return func() { fn(state) }
}
