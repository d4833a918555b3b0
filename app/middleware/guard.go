package middleware

import (
	"errors"
	"net/http"

	"oasis/app/auth"
	"oasis/app/repositories"
	"oasis/app/services"
)

// Session resolves the request's session cookie once and stashes the state
// in the context. Resolution never fails loudly: a missing, malformed or
// forged cookie simply yields Anonymous.
func Session(sessions auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := sessions.Resolve(r)
			next.ServeHTTP(w, r.WithContext(auth.WithState(r.Context(), state)))
		})
	}
}

// Guard converts a resolved session into a concrete user identity or an
// authorization failure.
type Guard struct {
	auth *services.AuthService
}

func NewGuard(authService *services.AuthService) *Guard {
	return &Guard{auth: authService}
}

// RequireLogin rejects anonymous requests with 401 before the wrapped
// handler runs. A session naming a deleted user is Unauthorized too.
func (g *Guard) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := auth.StateFrom(r.Context())
		if !state.Authenticated() {
			writeJSONError(w, http.StatusUnauthorized, "not logged in")
			return
		}

		user, err := g.auth.ResolveIdentity(r.Context(), state.Identity)
		switch {
		case errors.Is(err, services.ErrUnauthorized):
			writeJSONError(w, http.StatusUnauthorized, "not logged in")
			return
		case errors.Is(err, repositories.ErrStoreUnavailable):
			writeJSONError(w, http.StatusServiceUnavailable, "store unavailable")
			return
		case err != nil:
			writeJSONError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		// Refresh the username from the store in case it drifted from the
		// value embedded in a long-lived stateless token.
		state.Identity.Username = user.Username
		next.ServeHTTP(w, r.WithContext(auth.WithState(r.Context(), state)))
	})
}
