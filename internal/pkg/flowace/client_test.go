package flowace

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, tokenRequests *int32) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(tokenRequests, 1)
		user, pass, ok := r.BasicAuth()
		if !ok || user != "client" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "tok-123",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/v1/activity/daily", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("date") == "2025-01-01" {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream down"))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("cursor") == "" {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"date":        r.URL.Query().Get("date"),
				"data":        []Activity{{UserID: "fa-1", ActiveMinutes: 300}},
				"next_cursor": "page-2",
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"date": r.URL.Query().Get("date"),
			"data": []Activity{{UserID: "fa-2", ActiveMinutes: 45}},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, srv *httptest.Server) *ClientImpl {
	return NewClient(t.Context(), Config{
		BaseURL:      srv.URL + "/",
		TokenURL:     srv.URL + "/oauth/token",
		ClientID:     "client",
		ClientSecret: "secret",
	})
}

func TestClient_DailyActivity_FollowsPages(t *testing.T) {
	var tokenRequests int32
	srv := newTestServer(t, &tokenRequests)
	client := newTestClient(t, srv)

	got, err := client.DailyActivity(t.Context(), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "fa-1", got[0].UserID)
	assert.Equal(t, 300, got[0].ActiveMinutes)
	assert.Equal(t, "fa-2", got[1].UserID)
	// token is cached across pages
	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenRequests))
}

func TestClient_DailyActivity_UnexpectedStatus(t *testing.T) {
	var tokenRequests int32
	srv := newTestServer(t, &tokenRequests)
	client := newTestClient(t, srv)

	_, err := client.DailyActivity(t.Context(), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_DailyActivity_BadCredentials(t *testing.T) {
	var tokenRequests int32
	srv := newTestServer(t, &tokenRequests)
	client := NewClient(t.Context(), Config{
		BaseURL:      srv.URL,
		TokenURL:     srv.URL + "/oauth/token",
		ClientID:     "client",
		ClientSecret: "wrong",
	})

	_, err := client.DailyActivity(t.Context(), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	assert.Error(t, err)
}
