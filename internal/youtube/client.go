// Package youtube talks to the YouTube Data API v3 and the public oEmbed
// endpoint. Channel lookups and feed fetches use an API key; oEmbed title
// lookups need no credentials at all.
package youtube

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

	"github.com/watchdeck/watchdeck/internal/domain"
	"github.com/watchdeck/watchdeck/internal/utils"
)

const defaultBaseURL = "https://www.googleapis.com"

var (
	// ErrNoAPIKey means the client was built without a Data API key.
	ErrNoAPIKey = errors.New("youtube: no API key configured")
	// ErrAuthFailed means the API key was rejected.
	ErrAuthFailed = errors.New("youtube: authentication failed")
	// ErrQuotaExceeded means the daily quota or rate limit was hit.
	ErrQuotaExceeded = errors.New("youtube: quota exceeded")
	// ErrNotFound means the requested channel or video does not exist.
	ErrNotFound = errors.New("youtube: not found")
)

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// Client is a YouTube Data API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPClient
}

// NewClient creates a client authenticated with a Data API key.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SearchChannels finds channels matching a free-text query.
func (c *Client) SearchChannels(ctx context.Context, query string, limit int) ([]domain.Channel, error) {
	if limit <= 0 || limit > 50 {
		limit = 25
	}
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("type", "channel")
	q.Set("q", query)
	q.Set("maxResults", fmt.Sprint(limit))

	body, err := c.doRequest(ctx, "/youtube/v3/search", q)
	if err != nil {
		return nil, err
	}

	var resp channelSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse channel search response: %w", err)
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.ChannelID != "" {
			ids = append(ids, item.ID.ChannelID)
		}
	}
	if len(ids) == 0 {
		return []domain.Channel{}, nil
	}

	// Search snippets lack statistics; hydrate through the channels endpoint.
	return c.channelsByID(ctx, ids)
}

// GetChannelByID fetches a single channel.
func (c *Client) GetChannelByID(ctx context.Context, channelID string) (domain.Channel, error) {
	channels, err := c.channelsByID(ctx, []string{channelID})
	if err != nil {
		return domain.Channel{}, err
	}
	if len(channels) == 0 {
		return domain.Channel{}, fmt.Errorf("channel %s: %w", channelID, ErrNotFound)
	}
	return channels[0], nil
}

// ResolveChannelURL turns any channel URL form (/channel/UC..., /@handle,
// /c/Name, /user/Name) into a resolved channel. Non-id forms go through
// search.
func (c *Client) ResolveChannelURL(ctx context.Context, rawURL string) (domain.Channel, error) {
	if id := domain.ChannelPathID(rawURL); id != "" {
		return c.GetChannelByID(ctx, id)
	}
	query := domain.ChannelURLQuery(rawURL)
	if query == "" {
		return domain.Channel{}, fmt.Errorf("unrecognized channel url %q: %w", rawURL, ErrNotFound)
	}

	channels, err := c.SearchChannels(ctx, query, 5)
	if err != nil {
		return domain.Channel{}, err
	}
	if len(channels) == 0 {
		return domain.Channel{}, fmt.Errorf("no channel matches %q: %w", query, ErrNotFound)
	}
	return channels[0], nil
}

// GetChannelVideos fetches a channel's uploads published within the trailing
// lookback window, newest first.
func (c *Client) GetChannelVideos(ctx context.Context, channelID string, lookbackDays int) ([]domain.ChannelVideo, error) {
	lookbackDays = domain.ClampLookback(lookbackDays)
	publishedAfter := time.Now().AddDate(0, 0, -lookbackDays).UTC().Format(time.RFC3339)

	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("channelId", channelID)
	q.Set("type", "video")
	q.Set("order", "date")
	q.Set("maxResults", "50")
	q.Set("publishedAfter", publishedAfter)

	body, err := c.doRequest(ctx, "/youtube/v3/search", q)
	if err != nil {
		return nil, err
	}

	var resp videoSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse video search response: %w", err)
	}
	if len(resp.Items) == 0 {
		return []domain.ChannelVideo{}, nil
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	details, err := c.videoDetails(ctx, ids)
	if err != nil {
		return nil, err
	}

	videos := make([]domain.ChannelVideo, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.VideoID == "" {
			continue
		}
		publishedAt, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		v := domain.ChannelVideo{
			ID:           item.ID.VideoID,
			Title:        item.Snippet.Title,
			ChannelID:    item.Snippet.ChannelID,
			ChannelName:  item.Snippet.ChannelTitle,
			PublishedAt:  publishedAt,
			ThumbnailURL: item.Snippet.Thumbnails.Medium.URL,
		}
		if v.ThumbnailURL == "" {
			v.ThumbnailURL = item.Snippet.Thumbnails.Default.URL
		}
		if d, ok := details[item.ID.VideoID]; ok {
			v.Duration = FormatDuration(ParseISO8601Duration(d.duration))
			v.ViewCount = FormatViewCount(d.viewCount)
		}
		videos = append(videos, v)
	}

	return videos, nil
}

func (c *Client) channelsByID(ctx context.Context, ids []string) ([]domain.Channel, error) {
	q := url.Values{}
	q.Set("part", "snippet,statistics")
	q.Set("id", strings.Join(ids, ","))

	body, err := c.doRequest(ctx, "/youtube/v3/channels", q)
	if err != nil {
		return nil, err
	}

	var resp channelsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse channels response: %w", err)
	}

	channels := make([]domain.Channel, 0, len(resp.Items))
	for _, item := range resp.Items {
		ch := domain.Channel{
			ID:           item.ID,
			Name:         item.Snippet.Title,
			Handle:       item.Snippet.CustomURL,
			Description:  item.Snippet.Description,
			ThumbnailURL: item.Snippet.Thumbnails.Medium.URL,
			LookbackDays: domain.DefaultLookbackDays,
			IsActive:     true,
		}
		if ch.ThumbnailURL == "" {
			ch.ThumbnailURL = item.Snippet.Thumbnails.Default.URL
		}
		if !item.Statistics.HiddenSubscriberCount {
			ch.SubscriberCount = FormatSubscriberCount(item.Statistics.SubscriberCount)
		}
		channels = append(channels, ch)
	}
	return channels, nil
}

type videoDetail struct {
	duration  string
	viewCount string
}

func (c *Client) videoDetails(ctx context.Context, ids []string) (map[string]videoDetail, error) {
	q := url.Values{}
	q.Set("part", "contentDetails,statistics")
	q.Set("id", strings.Join(ids, ","))

	body, err := c.doRequest(ctx, "/youtube/v3/videos", q)
	if err != nil {
		return nil, err
	}

	var resp videosResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse videos response: %w", err)
	}

	details := make(map[string]videoDetail, len(resp.Items))
	for _, item := range resp.Items {
		details[item.ID] = videoDetail{
			duration:  item.ContentDetails.Duration,
			viewCount: item.Statistics.ViewCount,
		}
	}
	return details, nil
}

func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	query.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer utils.Close(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleAPIError(resp.StatusCode)
	}

	return body, nil
}

func (c *Client) handleAPIError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusBadRequest:
		return ErrAuthFailed
	case http.StatusForbidden, http.StatusTooManyRequests:
		return ErrQuotaExceeded
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("youtube: api error (status %d)", statusCode)
	}
}
