package wiki

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
)

const DefaultBaseURL = "https://en.wikipedia.org"

// UnknownAvatar is shown when no portrait can be found.
const UnknownAvatar = "https://upload.wikimedia.org/wikipedia/commons/b/bc/Unknown_person.jpg"

var ErrNoPortrait = errors.New("wiki: no portrait available")

type summary struct {
	Type          string `json:"type"`
	OriginalImage *image `json:"originalimage"`
	Thumbnail     *image `json:"thumbnail"`
}

type image struct {
	Source string `json:"source"`
}

// Client looks up page summaries on the Wikipedia REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		userAgent:  "cameo/1.0 (character portrait lookup)",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Portrait returns the best image URL for the page titled name: the original
// image if present, else the thumbnail. Disambiguation pages have none.
func (c *Client) Portrait(ctx context.Context, name string) (string, error) {
	title := strings.TrimSpace(name)
	if title == "" {
		return "", ErrNoPortrait
	}

	endpoint := c.baseURL + "/api/rest_v1/page/summary/" + url.PathEscape(title)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("wiki: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("wiki: request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode == http.StatusNotFound {
		return "", ErrNoPortrait
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("wiki: unexpected status %d from %s", res.StatusCode, endpoint)
	}

	var s summary
	if err := json.NewDecoder(io.LimitReader(res.Body, 1<<20)).Decode(&s); err != nil {
		return "", fmt.Errorf("wiki: decode summary: %w", err)
	}
	if s.Type == "disambiguation" {
		return "", ErrNoPortrait
	}
	if s.OriginalImage != nil && s.OriginalImage.Source != "" {
		return s.OriginalImage.Source, nil
	}
	if s.Thumbnail != nil && s.Thumbnail.Source != "" {
		return s.Thumbnail.Source, nil
	}
	return "", ErrNoPortrait
}
