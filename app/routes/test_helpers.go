package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"oasis/app/auth"
	"oasis/app/repositories"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// testServer runs the full router over a temp database with the stateless
// cookie backend, plus a client that carries cookies between requests.
type testServer struct {
	*httptest.Server
	client *http.Client
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := repositories.Open(filepath.Join(t.TempDir(), "forum.db"), 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	sessions, err := auth.NewCookieManager([]byte(testSecret), time.Hour)
	require.NoError(t, err)

	router := Setup(store, sessions, zerolog.Nop())
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &testServer{Server: server, client: client}
}

// postForm submits form values with a JSON Accept header so handlers answer
// with their data structure instead of a redirect.
func (s *testServer) postForm(t *testing.T, path string, form url.Values) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, s.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func (s *testServer) get(t *testing.T, path string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, s.URL+path, nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) == 0 {
		return nil
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		// Redirect bodies are not JSON; that is fine.
		return nil
	}
	return body
}

func (s *testServer) signup(t *testing.T, username, email, password string) map[string]any {
	t.Helper()
	resp, body := s.postForm(t, "/signup", url.Values{
		"username": {username},
		"email":    {email},
		"password": {password},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return body
}

func (s *testServer) login(t *testing.T, username, password string) map[string]any {
	t.Helper()
	resp, body := s.postForm(t, "/login", url.Values{
		"username": {username},
		"password": {password},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return body
}
