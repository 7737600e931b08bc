package client

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/portoo/portoo-backend/internal/usecase/auth"
)

var ErrSessionNotReady = errors.New("session is not loaded yet")

// TokenSource yields the caller's access token; an empty token means signed out.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed token
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) { return string(t), nil }

// EnvToken reads the token from an environment variable
type EnvToken string

func (e EnvToken) Token(context.Context) (string, error) { return os.Getenv(string(e)), nil }

// SessionState is a snapshot passed to subscribers
type SessionState struct {
	Ready bool
	Token string
	Email string
}

func (s SessionState) LoggedIn() bool {
	return s.Token != "" && s.Email != ""
}

// Session is the authentication state of one client. It starts unloaded,
// becomes ready after Load and notifies subscribers on every change.
type Session struct {
	mu    sync.RWMutex
	state SessionState
	subs  map[int]func(SessionState)
	next  int
	ready chan struct{}
	once  sync.Once
}

func NewSession() *Session {
	return &Session{
		subs:  make(map[int]func(SessionState)),
		ready: make(chan struct{}),
	}
}

// Load reads the token once and marks the session ready, even when no token is available.
func (s *Session) Load(ctx context.Context, src TokenSource) error {
	token, err := src.Token(ctx)
	if err != nil {
		return err
	}
	s.set(token)
	return nil
}

// SetToken replaces the token, e.g. after signing in
func (s *Session) SetToken(token string) {
	s.set(token)
}

// Clear signs out
func (s *Session) Clear() {
	s.set("")
}

func (s *Session) set(token string) {
	token = strings.TrimSpace(token)
	s.mu.Lock()
	s.state = SessionState{Ready: true, Token: token, Email: emailFromToken(token)}
	state := s.state
	subs := make([]func(SessionState), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	s.once.Do(func() { close(s.ready) })
	for _, fn := range subs {
		fn(state)
	}
}

func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Ready is closed once the session has been loaded
func (s *Session) Ready() <-chan struct{} {
	return s.ready
}

// Wait blocks until the session is ready or ctx is done.
func (s *Session) Wait(ctx context.Context) (SessionState, error) {
	select {
	case <-s.ready:
		return s.State(), nil
	case <-ctx.Done():
		return SessionState{}, ctx.Err()
	}
}

// Subscribe registers fn for future changes and returns the function that removes it.
func (s *Session) Subscribe(fn func(SessionState)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// emailFromToken reads the email claim without verifying the signature;
// the server verifies every request.
func emailFromToken(token string) string {
	if token == "" {
		return ""
	}
	claims := &auth.Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	return strings.TrimSpace(claims.Email)
}
