package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/watchdeck/watchdeck/internal/domain"
	"github.com/watchdeck/watchdeck/internal/utils"
)

const defaultOEmbedBaseURL = "https://www.youtube.com"

// OEmbedClient looks up video metadata through YouTube's public oEmbed
// endpoint. It needs no API key, which makes it the cheap path for title
// backfills.
type OEmbedClient struct {
	baseURL    string
	httpClient HTTPClient
}

// OEmbedOption configures the OEmbedClient.
type OEmbedOption func(*OEmbedClient)

// WithOEmbedBaseURL sets a custom base URL (useful for testing).
func WithOEmbedBaseURL(url string) OEmbedOption {
	return func(c *OEmbedClient) {
		c.baseURL = url
	}
}

// WithOEmbedHTTPClient sets a custom HTTP client.
func WithOEmbedHTTPClient(httpClient HTTPClient) OEmbedOption {
	return func(c *OEmbedClient) {
		c.httpClient = httpClient
	}
}

func NewOEmbedClient(opts ...OEmbedOption) *OEmbedClient {
	c := &OEmbedClient{
		baseURL:    defaultOEmbedBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// VideoTitle returns the title of a video. Satisfies the ledgers' title
// fetcher contract.
func (c *OEmbedClient) VideoTitle(ctx context.Context, videoID string) (string, error) {
	q := url.Values{}
	q.Set("url", domain.WatchURL(videoID))
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/oembed?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest {
		return "", fmt.Errorf("video %s: %w", videoID, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("youtube: oembed error (status %d)", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed oembedResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse oembed response: %w", err)
	}
	return parsed.Title, nil
}
