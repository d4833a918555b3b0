package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"oasis/app/repositories"
	"oasis/app/services"
)

func TestResolveError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unauthorized", services.ErrUnauthorized, http.StatusUnauthorized},
		{"not found", repositories.ErrNotFound, http.StatusNotFound},
		{"duplicate username", repositories.ErrDuplicateUsername, http.StatusConflict},
		{"invalid parent", services.ErrInvalidParent, http.StatusUnprocessableEntity},
		{"store unavailable", repositories.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{
			// mapError wraps the driver failure around the sentinel.
			name:   "wrapped store unavailable",
			err:    fmt.Errorf("%w: context deadline exceeded", repositories.ErrStoreUnavailable),
			status: http.StatusServiceUnavailable,
		},
		{"unexpected error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := resolveError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.NotEmpty(t, message)
		})
	}
}

func TestResolveErrorHidesInternalDetail(t *testing.T) {
	status, message := resolveError(errors.New("dial tcp 10.0.0.5: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.NotContains(t, message, "10.0.0.5", "internal error detail must not leak to clients")
}
