package tenant

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*Handler, *Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := NewStore(client)
	return NewHandler(store, nil), store
}

func TestGetConfigReturnsDefaultsForUnknownTenant(t *testing.T) {
	h, _ := newTestHandler(t)
	srv := httptest.NewServer(h.Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/t1/config")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUpdateConfigPartialUpdate(t *testing.T) {
	h, store := newTestHandler(t)
	srv := httptest.NewServer(h.Routes())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/t1/config", strings.NewReader(`{"category":"event","contact_phone":"+5511988887777"}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cfg, err := store.Get(req.Context(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "event", cfg.Category)
	assert.Equal(t, "+5511988887777", cfg.ContactPhone)
	// Untouched fields keep their defaults.
	assert.Equal(t, 30, cfg.SlotStepMinutes)
}

func TestUpdateConfigRejectsBadJSON(t *testing.T) {
	h, _ := newTestHandler(t)
	srv := httptest.NewServer(h.Routes())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/t1/config", strings.NewReader(`{broken`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
