package client

import (
	"context"
	"sync"
)

// State is the session cache's three-valued view. Consumers must treat
// StateLoading as distinct from both authenticated and anonymous and must
// not render role-gated content until loading completes.
type State int

const (
	StateLoading State = iota
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// SessionCache is the single source of truth for the current principal on
// the client, across restarts and login/logout transitions. At most one
// principal is cached at a time; a successful login or register atomically
// replaces any prior one.
type SessionCache struct {
	mu        sync.Mutex
	api       *Client
	store     SessionStore
	state     State
	principal *Principal
	lastErr   *Error
}

// NewSessionCache builds a cache over the given transport and store. The
// cache starts in StateLoading until Initialize resolves it.
func NewSessionCache(api *Client, store SessionStore) *SessionCache {
	return &SessionCache{api: api, store: store, state: StateLoading}
}

// Initialize eagerly re-validates any durable token against the server.
// With no stored token the cache resolves to anonymous immediately. A token
// the server rejects is cleared; a token that could not be validated at all
// (server unreachable, transient failure) is kept so going offline does not
// destroy the session.
func (s *SessionCache) Initialize(ctx context.Context) {
	if _, ok := s.store.Token(); !ok {
		s.mu.Lock()
		s.state = StateAnonymous
		s.mu.Unlock()
		return
	}

	principal, err := s.api.Me(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if err.Class == ClassSessionExpired {
			_ = s.store.ClearToken()
		}
		s.principal = nil
		s.lastErr = err
		s.state = StateAnonymous
		return
	}
	s.principal = principal
	s.lastErr = nil
	s.state = StateAuthenticated
}

// Login authenticates and caches the principal. Failures are recorded and
// returned to the caller unchanged, never swallowed.
func (s *SessionCache) Login(ctx context.Context, email, password string) (*Principal, *Error) {
	result, err := s.api.Login(ctx, email, password)
	return s.resolve(result, err, email)
}

// SellerLogin is Login against the seller endpoint.
func (s *SessionCache) SellerLogin(ctx context.Context, email, password string) (*Principal, *Error) {
	result, err := s.api.SellerLogin(ctx, email, password)
	return s.resolve(result, err, email)
}

// Register creates an account; on success the new principal is treated as
// logged in immediately.
func (s *SessionCache) Register(ctx context.Context, req RegisterRequest) (*Principal, *Error) {
	result, err := s.api.Register(ctx, req)
	return s.resolve(result, err, req.Email)
}

func (s *SessionCache) resolve(result *AuthResult, err *Error, email string) (*Principal, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.lastErr = err
		if s.state == StateLoading {
			// a failed first login still resolves the cache so guard
			// consumers are not stuck waiting
			s.state = StateAnonymous
		}
		return nil, err
	}

	if storeErr := s.store.SetToken(result.Token); storeErr != nil {
		classified := &Error{Class: ClassUnknown, Message: msgUnknown}
		s.lastErr = classified
		return nil, classified
	}
	_ = s.store.SetRememberedEmail(email)

	principal := result.User
	s.principal = &principal
	s.lastErr = nil
	s.state = StateAuthenticated
	return s.principal, nil
}

// Logout clears the durable token and cached principal synchronously. No
// network call is made; calling it twice leaves the same cleared state.
func (s *SessionCache) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.store.ClearToken()
	s.principal = nil
	s.lastErr = nil
	s.state = StateAnonymous
}

// Current returns the cached principal, if any.
func (s *SessionCache) Current() (*Principal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.principal, s.principal != nil
}

// State reports the cache's resolution state.
func (s *SessionCache) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastError returns the most recent recorded failure, if any.
func (s *SessionCache) LastError() *Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
