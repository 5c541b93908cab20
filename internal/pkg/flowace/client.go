// Package flowace is a small client for the Flowace activity-monitor API.
package flowace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

var ErrUnexpectedStatus = errors.New("flowace: unexpected response status")

// Activity is the active time Flowace tracked for one user on one day.
type Activity struct {
	UserID        string `json:"user_id"`
	Email         string `json:"email"`
	ActiveMinutes int    `json:"active_minutes"`
}

type Client interface {
	// DailyActivity returns the activity of every tracked user for date.
	DailyActivity(ctx context.Context, date time.Time) ([]Activity, error)
}

type Config struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
}

type ClientImpl struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client that authenticates with the OAuth2 client
// credentials grant. Tokens are cached and refreshed by the transport.
func NewClient(ctx context.Context, cfg Config) *ClientImpl {
	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       cfg.Scopes,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	httpClient := cc.Client(ctx)
	httpClient.Timeout = 30 * time.Second

	return &ClientImpl{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}
}

type dailyActivityResponse struct {
	Date string     `json:"date"`
	Data []Activity `json:"data"`
	Next string     `json:"next_cursor"`
}

func (c *ClientImpl) DailyActivity(ctx context.Context, date time.Time) ([]Activity, error) {
	var all []Activity
	cursor := ""

	for {
		page, err := c.fetchPage(ctx, date, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Data...)
		if page.Next == "" {
			return all, nil
		}
		cursor = page.Next
	}
}

func (c *ClientImpl) fetchPage(ctx context.Context, date time.Time, cursor string) (dailyActivityResponse, error) {
	q := url.Values{}
	q.Set("date", date.Format("2006-01-02"))
	if cursor != "" {
		q.Set("cursor", cursor)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/activity/daily?"+q.Encode(), nil)
	if err != nil {
		return dailyActivityResponse{}, fmt.Errorf("failed to build activity request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return dailyActivityResponse{}, fmt.Errorf("failed to fetch activity: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return dailyActivityResponse{}, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var page dailyActivityResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return dailyActivityResponse{}, fmt.Errorf("failed to decode activity response: %w", err)
	}
	return page, nil
}
