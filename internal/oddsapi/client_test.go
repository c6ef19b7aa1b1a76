package oddsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	httpClient := NewRateLimitedHTTPClient(HTTPClientConfig{
		Timeout:           5 * time.Second,
		MaxRetries:        1,
		RetryWaitMin:      time.Millisecond,
		RetryWaitMax:      10 * time.Millisecond,
		RateLimit:         100,
		CircuitBreakerMax: 3,
	}, nil)

	return NewClient(ClientConfig{BaseURL: server.URL, APIKey: "test-key"}, httpClient, nil)
}

func TestGetEvents(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sports/americanfootball_nfl/events", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		assert.NotEmpty(t, r.URL.Query().Get("commenceTimeTo"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{
				"id": "evt-1",
				"sport_key": "americanfootball_nfl",
				"sport_title": "NFL",
				"commence_time": "2026-09-13T17:00:00Z",
				"home_team": "Buffalo Bills",
				"away_team": "Miami Dolphins"
			}
		]`))
	}))

	events, err := client.GetEvents(context.Background(), SportNFL, time.Now().Add(7*24*time.Hour))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "evt-1", events[0].ID)
	assert.Equal(t, "Buffalo Bills", events[0].HomeTeam)
}

func TestGetEventOddsTracksQuota(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sports/americanfootball_nfl/events/evt-1/odds", r.URL.Path)
		assert.Equal(t, "decimal", r.URL.Query().Get("oddsFormat"))
		assert.Equal(t, "player_pass_yds", r.URL.Query().Get("markets"))
		assert.Equal(t, "fanduel,prizepicks", r.URL.Query().Get("bookmakers"))

		w.Header().Set("X-Requests-Remaining", "480")
		w.Header().Set("X-Requests-Used", "20")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "evt-1",
			"sport_key": "americanfootball_nfl",
			"bookmakers": [
				{
					"key": "fanduel",
					"title": "FanDuel",
					"markets": [
						{
							"key": "player_pass_yds",
							"last_update": "2026-09-12T10:00:00Z",
							"outcomes": [
								{"name": "Over", "description": "Josh Allen", "price": 1.85, "point": 280.5},
								{"name": "Under", "description": "Josh Allen", "price": 1.95, "point": 280.5}
							]
						}
					]
				}
			]
		}`))
	}))

	odds, err := client.GetEventOdds(context.Background(), SportNFL, "evt-1",
		[]string{"player_pass_yds"}, []string{"fanduel", "prizepicks"})
	require.NoError(t, err)

	require.Len(t, odds.Bookmakers, 1)
	require.Len(t, odds.Bookmakers[0].Markets, 1)
	assert.Len(t, odds.Bookmakers[0].Markets[0].Outcomes, 2)

	quota := client.Quota()
	assert.Equal(t, "480", quota.Remaining)
	assert.Equal(t, "20", quota.Used)
}

func TestGetEventOddsServerError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))

	_, err := client.GetEventOdds(context.Background(), SportNFL, "evt-1",
		[]string{"player_pass_yds"}, []string{"fanduel"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
