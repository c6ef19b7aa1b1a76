// Package oddsapi is the client for the remote odds provider
// (the-odds-api.com v4): upcoming events per sport and per-event player
// prop odds across a configured set of bookmakers.
package oddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Sport keys recognized by the provider.
const (
	SportNFL = "americanfootball_nfl"
	SportNBA = "basketball_nba"
)

// Client talks to the odds provider REST API.
type Client struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	regions    string
	oddsFormat string
	logger     *logrus.Logger

	lastQuota Quota
}

// ClientConfig holds provider client settings.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Regions string
}

// NewClient creates a provider client. Decimal odds are requested
// unconditionally; the engine's price math assumes them.
func NewClient(cfg ClientConfig, httpClient *RateLimitedHTTPClient, logger *logrus.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.the-odds-api.com/v4"
	}
	regions := cfg.Regions
	if regions == "" {
		regions = "us"
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.APIKey,
		regions:    regions,
		oddsFormat: "decimal",
		logger:     logger,
	}
}

// GetEvents lists upcoming events for a sport commencing before the given
// cutoff.
func (c *Client) GetEvents(ctx context.Context, sport string, commenceTimeTo time.Time) ([]Event, error) {
	query := url.Values{}
	query.Set("apiKey", c.apiKey)
	query.Set("commenceTimeTo", commenceTimeTo.UTC().Format("2006-01-02T15:04:05Z"))

	endpoint := fmt.Sprintf("%s/sports/%s/events?%s", c.baseURL, sport, query.Encode())

	var events []Event
	if err := c.getJSON(ctx, endpoint, &events); err != nil {
		return nil, fmt.Errorf("failed to get events for %s: %w", sport, err)
	}
	return events, nil
}

// GetEventOdds fetches one event's odds for the given prop markets and
// bookmakers.
func (c *Client) GetEventOdds(ctx context.Context, sport, eventID string, markets, bookmakers []string) (*EventOdds, error) {
	query := url.Values{}
	query.Set("apiKey", c.apiKey)
	query.Set("regions", c.regions)
	query.Set("markets", strings.Join(markets, ","))
	query.Set("oddsFormat", c.oddsFormat)
	query.Set("bookmakers", strings.Join(bookmakers, ","))

	endpoint := fmt.Sprintf("%s/sports/%s/events/%s/odds?%s", c.baseURL, sport, eventID, query.Encode())

	var odds EventOdds
	if err := c.getJSON(ctx, endpoint, &odds); err != nil {
		return nil, fmt.Errorf("failed to get odds for event %s: %w", eventID, err)
	}
	return &odds, nil
}

// Quota returns the provider's request metering from the most recent call.
func (c *Client) Quota() Quota {
	return c.lastQuota
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	resp, err := c.httpClient.Get(ctx, endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.trackQuota(resp)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("provider returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode provider response: %w", err)
	}
	return nil
}

// trackQuota records the provider's metering headers for observability.
func (c *Client) trackQuota(resp *http.Response) {
	remaining := resp.Header.Get("X-Requests-Remaining")
	used := resp.Header.Get("X-Requests-Used")
	if remaining == "" && used == "" {
		return
	}
	c.lastQuota = Quota{Remaining: remaining, Used: used}
	if c.logger != nil {
		c.logger.WithFields(logrus.Fields{
			"requests_remaining": remaining,
			"requests_used":      used,
		}).Debug("Provider request quota")
	}
}
