// Package auth implements password verification and the session manager.
//
// A session is carried in a cookie. Two families of backend exist behind the
// same Manager interface: a stateless signed token (CookieManager) and
// server-side token stores (StoreManager over badger or redis). Stateless
// tokens cannot be revoked individually before expiry; switching to a token
// store buys revocation at the cost of a lookup per request.
package auth

import (
	"context"
	"net/http"
	"time"
)

// CookieName is the session cookie set on login.
const CookieName = "oasis_session"

// Identity is the strongly-typed reference to a user threaded through the
// guard and the content model.
type Identity struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// State is the per-request session state: Anonymous or Authenticated.
type State struct {
	Identity Identity
}

// Anonymous is the state every invalid, missing or forged session resolves to.
var Anonymous = State{}

// Authenticated reports whether the state carries a verified identity.
func (s State) Authenticated() bool {
	return s.Identity.UserID != 0
}

// Manager issues, resolves and revokes sessions.
type Manager interface {
	// Begin sets a session cookie for the identity on the response.
	Begin(w http.ResponseWriter, r *http.Request, identity Identity) error
	// Resolve derives the session state from the request. It never fails
	// loudly: an invalid session is equivalent to no session.
	Resolve(r *http.Request) State
	// End clears the cookie and, where the backend supports it, revokes
	// the token so subsequent requests carrying it resolve to Anonymous.
	End(w http.ResponseWriter, r *http.Request)
}

func setSessionCookie(w http.ResponseWriter, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

type ctxKeyState struct{}

// WithState stashes the resolved session state in a request context.
func WithState(ctx context.Context, s State) context.Context {
	return context.WithValue(ctx, ctxKeyState{}, s)
}

// StateFrom returns the session state resolved for this request, or
// Anonymous when no middleware has run.
func StateFrom(ctx context.Context) State {
	if s, ok := ctx.Value(ctxKeyState{}).(State); ok {
		return s
	}
	return Anonymous
}
