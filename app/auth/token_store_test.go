package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBadgerStore(t *testing.T) *BadgerStore {
	t.Helper()
	store, err := OpenBadgerStore("")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBadgerStoreRoundTrip(t *testing.T) {
	store := newTestBadgerStore(t)
	ctx := context.Background()
	identity := Identity{UserID: 7, Username: "alice"}

	require.NoError(t, store.Save(ctx, "tok-1", identity, time.Hour))

	got, err := store.Lookup(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, identity, got)

	_, err = store.Lookup(ctx, "tok-unknown")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, store.Delete(ctx, "tok-1"))
	_, err = store.Lookup(ctx, "tok-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStoreManagerBeginResolveEnd(t *testing.T) {
	store := newTestBadgerStore(t)
	mgr := NewStoreManager(store, time.Hour)
	identity := Identity{UserID: 7, Username: "alice"}

	cookie := beginSession(t, mgr, identity)

	state := mgr.Resolve(requestWithCookie(cookie.Value))
	assert.True(t, state.Authenticated())
	assert.Equal(t, identity, state.Identity)

	// End revokes the token: the same cookie value is Anonymous afterwards.
	rec := httptest.NewRecorder()
	mgr.End(rec, requestWithCookie(cookie.Value))

	state = mgr.Resolve(requestWithCookie(cookie.Value))
	assert.Equal(t, Anonymous, state)
}

func TestStoreManagerUnknownToken(t *testing.T) {
	store := newTestBadgerStore(t)
	mgr := NewStoreManager(store, time.Hour)

	state := mgr.Resolve(requestWithCookie("never-issued"))
	assert.Equal(t, Anonymous, state)
}

func TestStoreManagerTokensAreOpaque(t *testing.T) {
	store := newTestBadgerStore(t)
	mgr := NewStoreManager(store, time.Hour)

	first := beginSession(t, mgr, Identity{UserID: 1, Username: "alice"})
	second := beginSession(t, mgr, Identity{UserID: 1, Username: "alice"})
	assert.NotEqual(t, first.Value, second.Value, "tokens must be random per session")
	assert.NotContains(t, first.Value, "alice", "token must not embed the identity")
}
