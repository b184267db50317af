package newsapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"thewire/internal/htmlutil"
	"thewire/internal/metrics"
)

const (
	defaultBaseURL = "https://newsapi.org/v2/everything"
	pageSize       = 100
	requestTimeout = 15 * time.Second
)

// Window is the shared date range for one fetch batch.
type Window struct {
	From time.Time
	To   time.Time
}

// Client fetches one topic's articles from the everything-search
// endpoint, falling through the credential chain on failure.
type Client struct {
	httpClient *http.Client
	pool       *CredentialPool
	baseURL    string
}

func NewClient(pool *CredentialPool) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		pool:       pool,
		baseURL:    defaultBaseURL,
	}
}

// NewClientWithBaseURL exists for tests that point the client at a stub
// server.
func NewClientWithBaseURL(pool *CredentialPool, baseURL string) *Client {
	c := NewClient(pool)
	c.baseURL = baseURL
	return c
}

// FetchTopic runs one topic query against the provider, once per viable
// credential in priority order. Every failure mode degrades to an empty
// result; the caller never sees an error.
func (c *Client) FetchTopic(ctx context.Context, query string, sourceIDs []string, window Window) []Article {
	if query == "" {
		return nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("searchIn", "title,description")
	params.Set("sources", strings.Join(sourceIDs, ","))
	params.Set("from", window.From.Format("2006-01-02"))
	params.Set("to", window.To.Format("2006-01-02"))
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(pageSize))

	for _, key := range c.pool.Viable() {
		if ctx.Err() != nil {
			return nil
		}

		articles, err := c.call(ctx, params, key)
		if err != nil {
			metrics.Global.AddProviderFailures(1)
			c.pool.MarkDead(key)
			slog.Debug("provider call failed, rotating key", "error", err)
			continue
		}
		return articles
	}

	slog.Warn("all credentials exhausted for query", "query", query)
	return nil
}

func (c *Client) call(ctx context.Context, params url.Values, apiKey string) ([]Article, error) {
	metrics.Global.AddProviderCalls(1)

	keyed := url.Values{}
	for k, v := range params {
		keyed[k] = v
	}
	keyed.Set("apiKey", apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+keyed.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var decoded response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	if decoded.Status != "ok" {
		return nil, &providerError{Code: decoded.Code, Message: decoded.Message}
	}

	articles := make([]Article, 0, len(decoded.Articles))
	for _, raw := range decoded.Articles {
		articles = append(articles, Article{
			Title:       strings.TrimSpace(raw.Title),
			Description: htmlutil.StripMarkup(raw.Description),
			Content:     htmlutil.StripMarkup(raw.Content),
			URL:         raw.URL,
			ImageURL:    raw.URLToImage,
			PublishedAt: parsePublished(raw.PublishedAt),
			SourceID:    raw.Source.ID,
			SourceName:  raw.Source.Name,
		})
	}
	return articles, nil
}

func parsePublished(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02T15:04:05Z0700", raw); err == nil {
		return t
	}
	return time.Time{}
}

type providerError struct {
	Code    string
	Message string
}

func (e *providerError) Error() string {
	if e.Message == "" {
		return "provider returned status != ok"
	}
	return "provider error " + e.Code + ": " + e.Message
}
