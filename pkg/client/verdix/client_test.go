package verdix

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLeaderboard(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Token") != "admin123" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"ok":false,"error":"Invalid token"}`))
			return
		}
		assert.Equal(t, "Fintech", r.URL.Query().Get("track"))
		_, _ = w.Write([]byte(`{"ok":true,"leaderboard":{"criteria":["A"],"entries":[{"rank":1,"team_name":"Rocket Labs","mean_total":4.5,"submissions":2,"criterion_means":[4.5]}],"submissions":2}}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "admin123")
	require.NoError(t, err)
	leaderboard, err := client.LoadLeaderboard("Fintech")
	require.NoError(t, err)
	require.NotNil(t, leaderboard)
	assert.Equal(t, "Rocket Labs", leaderboard.Top().TeamName)
	assert.Equal(t, 4.5, leaderboard.HighestScore())

	client, err = NewClient(server.URL, "wrong")
	require.NoError(t, err)
	_, err = client.LoadLeaderboard("Fintech")
	assert.EqualError(t, err, "failed to fetch leaderboard: Invalid token")
}

func TestLoadCountdown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"deadline":"2026-03-15 23:59:00","remaining":{"days":1,"hours":2,"minutes":3,"seconds":4,"expired":false},"humanized":"27 hours"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "")
	require.NoError(t, err)
	countdown, err := client.LoadCountdown()
	require.NoError(t, err)
	assert.Equal(t, 3, countdown.Remaining.Minutes)
	assert.Equal(t, "2026-03-15 23:59:00", countdown.Deadline)
}
