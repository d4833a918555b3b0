package controllers

import (
	"net/http"

	"oasis/app/auth"
	"oasis/app/metrics"
	"oasis/app/models"
	"oasis/app/services"
)

// AuthController handles signup, login and logout.
type AuthController struct {
	authService *services.AuthService
	sessions    auth.Manager
}

func NewAuthController(authService *services.AuthService, sessions auth.Manager) *AuthController {
	return &AuthController{authService: authService, sessions: sessions}
}

// SignupForm serves the signup page data.
func (ac *AuthController) SignupForm(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]any{
		"title":     "Sign Up",
		"logged_in": auth.StateFrom(r.Context()).Authenticated(),
	})
}

// Signup registers a new account.
func (ac *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := decodeBody(r, &creds, func(r *http.Request) {
		creds.Username = r.FormValue("username")
		creds.Email = r.FormValue("email")
		creds.Password = r.FormValue("password")
	}); err != nil {
		sendError(w, r, err)
		return
	}

	user, err := ac.authService.Signup(r.Context(), creds)
	if err != nil {
		metrics.SignupsTotal.WithLabelValues(signupResult(err)).Inc()
		sendError(w, r, err)
		return
	}
	metrics.SignupsTotal.WithLabelValues("ok").Inc()

	if wantsJSON(r) {
		sendJSON(w, http.StatusCreated, map[string]any{
			"id":       user.ID,
			"username": user.Username,
		})
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// LoginForm serves the login page data.
func (ac *AuthController) LoginForm(w http.ResponseWriter, r *http.Request) {
	state := auth.StateFrom(r.Context())
	if state.Authenticated() {
		sendJSON(w, http.StatusOK, map[string]any{
			"title":     "Login",
			"logged_in": true,
			"message":   "already logged in",
		})
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{
		"title":     "Login",
		"logged_in": false,
	})
}

// Login verifies credentials and begins a session. The rejection message is
// identical for an unknown username and a wrong password.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := decodeBody(r, &creds, func(r *http.Request) {
		creds.Username = r.FormValue("username")
		creds.Password = r.FormValue("password")
	}); err != nil {
		sendError(w, r, err)
		return
	}

	user, err := ac.authService.Login(r.Context(), creds.Username, creds.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		sendError(w, r, err)
		return
	}

	identity := auth.Identity{UserID: user.ID, Username: user.Username}
	if err := ac.sessions.Begin(w, r, identity); err != nil {
		sendError(w, r, err)
		return
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()

	if wantsJSON(r) {
		sendJSON(w, http.StatusOK, map[string]any{
			"id":       user.ID,
			"username": user.Username,
		})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout ends the session; subsequent requests with the old cookie resolve
// to Anonymous.
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	ac.sessions.End(w, r)
	sendJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func signupResult(err error) string {
	if status, _ := resolveError(err); status == http.StatusConflict {
		return "duplicate"
	}
	return "rejected"
}
