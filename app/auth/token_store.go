package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned by token stores for unknown, expired or
// revoked tokens.
var ErrSessionNotFound = errors.New("auth: session not found")

// TokenStore is the server-side session table: opaque token to identity,
// with a bounded lifetime. Implementations exist over badger and redis.
type TokenStore interface {
	Save(ctx context.Context, token string, identity Identity, ttl time.Duration) error
	Lookup(ctx context.Context, token string) (Identity, error)
	Delete(ctx context.Context, token string) error
	Close() error
}

// StoreManager is the revocable session backend: the cookie carries only a
// random token and the identity lives server-side.
type StoreManager struct {
	tokens TokenStore
	ttl    time.Duration
}

func NewStoreManager(tokens TokenStore, ttl time.Duration) *StoreManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &StoreManager{tokens: tokens, ttl: ttl}
}

func (m *StoreManager) Begin(w http.ResponseWriter, r *http.Request, identity Identity) error {
	token := uuid.NewString()
	if err := m.tokens.Save(r.Context(), token, identity, m.ttl); err != nil {
		return err
	}
	setSessionCookie(w, token, m.ttl)
	return nil
}

func (m *StoreManager) Resolve(r *http.Request) State {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return Anonymous
	}
	identity, err := m.tokens.Lookup(r.Context(), cookie.Value)
	if err != nil {
		return Anonymous
	}
	return State{Identity: identity}
}

// End revokes the token server-side and clears the cookie, so the old cookie
// value resolves to Anonymous immediately.
func (m *StoreManager) End(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		_ = m.tokens.Delete(r.Context(), cookie.Value)
	}
	clearSessionCookie(w)
}
