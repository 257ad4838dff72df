package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultStatsBaseURL = "https://stats.nba.com/stats"
	DefaultLiveBaseURL  = "https://cdn.nba.com/static/json/liveData"

	// stats.nba.com drops connections from clients that don't look like a browser.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

type Client struct {
	HTTP         *http.Client
	StatsBaseURL string
	LiveBaseURL  string
	UserAgent    string
	Logger       *slog.Logger
}

func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		HTTP:         &http.Client{Timeout: timeout},
		StatsBaseURL: DefaultStatsBaseURL,
		LiveBaseURL:  DefaultLiveBaseURL,
		UserAgent:    DefaultUserAgent,
		Logger:       logger,
	}
}

// FetchRaw GETs baseURL+urlPath (like "/playerawards") and returns the raw JSON body.
// A non-2xx status or a body that is not JSON is an error.
func (c *Client) FetchRaw(ctx context.Context, baseURL string, urlPath string, params url.Values) ([]byte, error) {
	u := baseURL + urlPath
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Origin", "https://www.nba.com")
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("x-nba-stats-origin", "stats")
	req.Header.Set("x-nba-stats-token", "true")

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", urlPath, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: read body: %w", urlPath, err)
	}
	c.Logger.Debug("provider request",
		"path", urlPath,
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s failed: %d body=%s", urlPath, resp.StatusCode, truncate(body, 200))
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("GET %s: response is not valid JSON: %s", urlPath, truncate(body, 200))
	}
	return body, nil
}

func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
