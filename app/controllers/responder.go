package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"oasis/app/repositories"
	"oasis/app/services"
	"oasis/pkg/logger"
)

// sendJSON writes data as the response body. The core only produces the data
// structure; JSON is the rendering collaborator wired in here.
func sendJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// sendError maps a domain error onto its HTTP status and a safe message.
// Unexpected errors are logged with their real cause and surfaced
// generically.
func sendError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := resolveError(err)
	if status == http.StatusInternalServerError {
		log := logger.Get()
		log.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("unhandled error")
	}
	sendJSON(w, status, map[string]string{"error": message})
}

func resolveError(err error) (int, string) {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		return http.StatusBadRequest, "invalid input: " + verr.Error()
	}

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, services.ErrInvalidCredentials.Error()
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized, "not logged in"
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, repositories.ErrDuplicateUsername):
		return http.StatusConflict, repositories.ErrDuplicateUsername.Error()
	case errors.Is(err, services.ErrInvalidParent):
		return http.StatusUnprocessableEntity, services.ErrInvalidParent.Error()
	case errors.Is(err, repositories.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "store unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// wantsJSON reports whether the client asked for a JSON response rather
// than the browser redirect flow.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	return strings.Contains(r.Header.Get("Content-Type"), "application/json")
}

// decodeBody fills dst from a JSON body or an HTML form, whichever the
// request carries.
func decodeBody(r *http.Request, dst any, fromForm func(r *http.Request)) error {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return json.NewDecoder(r.Body).Decode(dst)
	}
	if err := r.ParseForm(); err != nil {
		return err
	}
	fromForm(r)
	return nil
}
