package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"oasis/app/auth"
	"oasis/app/repositories"
	"oasis/app/routes"
)

// Boots the real router over a real listener and shuts it down gracefully.
func TestServerGracefulShutdown(t *testing.T) {
	listener, err := net.Listen("tcp", "localhost:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	store, err := repositories.Open(filepath.Join(t.TempDir(), "forum.db"), 5*time.Second)
	require.NoError(t, err)
	defer store.Close()

	sessions, err := auth.NewCookieManager([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	require.NoError(t, err)

	srv := &http.Server{
		Addr:    fmt.Sprintf("localhost:%d", port),
		Handler: routes.Setup(store, sessions, zerolog.Nop()),
	}

	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			t.Errorf("server error: %v", err)
		}
	}()

	// Allow the server time to start, then confirm it answers.
	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get(fmt.Sprintf("http://localhost:%d/health", port))
		return err == nil
	}, 2*time.Second, 50*time.Millisecond)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
}
