package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransportAttachesBearerWhenTokenPresent(t *testing.T) {
	var seenAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenAuth = r.Header.Get("Authorization")
		writeData(w, http.StatusOK, fixtureUser)
	}))
	t.Cleanup(server.Close)

	store := NewMemoryStore()
	require.NoError(t, store.SetToken("tok-1"))
	api := New(server.URL, store)

	_, err := api.Me(context.Background())
	require.Nil(t, err)
	require.Equal(t, "Bearer tok-1", seenAuth)
}

func TestTransportSendsUnauthenticatedWithoutToken(t *testing.T) {
	var seenAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenAuth = r.Header.Get("Authorization")
		writeData(w, http.StatusOK, fixtureUser)
	}))
	t.Cleanup(server.Close)

	api := New(server.URL, NewMemoryStore())
	_, err := api.Me(context.Background())
	require.Nil(t, err)
	require.Empty(t, seenAuth)
}

func TestLogin401DoesNotClearTokenOrFireHook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	}))
	t.Cleanup(server.Close)

	store := NewMemoryStore()
	require.NoError(t, store.SetToken("existing"))

	hookFired := false
	api := New(server.URL, store, WithSessionExpiredHook(func() { hookFired = true }))

	_, err := api.Login(context.Background(), "a@example.com", "pw")
	require.NotNil(t, err)
	require.Equal(t, ClassBadCredentials, err.Class)

	token, ok := store.Token()
	require.True(t, ok)
	require.Equal(t, "existing", token)
	require.False(t, hookFired, "only the SessionExpired branch may trigger side effects")
}

func TestNonLogin401ClearsTokenAndFiresHookOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusUnauthorized, "Token is invalid or expired.")
	}))
	t.Cleanup(server.Close)

	store := NewMemoryStore()
	require.NoError(t, store.SetToken("stale"))

	hookCount := 0
	api := New(server.URL, store, WithSessionExpiredHook(func() { hookCount++ }))

	_, err := api.Me(context.Background())
	require.NotNil(t, err)
	require.Equal(t, ClassSessionExpired, err.Class)

	_, ok := store.Token()
	require.False(t, ok)
	require.Equal(t, 1, hookCount)
}

func TestTransportClassifies429And500(t *testing.T) {
	status := http.StatusTooManyRequests
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, status, "whatever the server says")
	}))
	t.Cleanup(server.Close)

	api := New(server.URL, NewMemoryStore())

	_, err := api.Me(context.Background())
	require.NotNil(t, err)
	require.Equal(t, ClassRateLimited, err.Class)

	status = http.StatusInternalServerError
	_, err = api.Me(context.Background())
	require.NotNil(t, err)
	require.Equal(t, ClassServerError, err.Class)
}
