// Package searchclient calls the blog's /api/search-notion endpoint.
//
// Results are memoized by query string for a short window and concurrent
// calls for the same query share a single request. Failed requests are never
// memoized.
package searchclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/khoahotran/notion-blog/internal/domain/search"
	"github.com/khoahotran/notion-blog/pkg/expiry"
)

const (
	DefaultTTL  = 10 * time.Second
	DefaultPath = "/api/search-notion"
)

type (
	SearchParams  = search.SearchParams
	SearchResults = search.SearchResults
	SearchResult  = search.SearchResult
	Filters       = search.Filters
)

// ResponseError is returned for every non-2xx answer. Response is the
// original response; its body has already been read into Body.
type ResponseError struct {
	Message    string
	StatusCode int
	Response   *http.Response
	Body       []byte
}

func (e *ResponseError) Error() string {
	return e.Message
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

func WithTTL(ttl time.Duration) Option {
	return func(cl *Client) { cl.ttl = ttl }
}

func WithClock(now func() time.Time) Option {
	return func(cl *Client) { cl.now = now }
}

type Client struct {
	endpoint   string
	httpClient *http.Client
	ttl        time.Duration
	now        func() time.Time

	cache *expiry.Map[*SearchResults]
	group singleflight.Group
}

// New returns a client posting to endpoint, the full URL of the search API.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
		ttl:        DefaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cache = expiry.NewWithClock[*SearchResults](c.ttl, c.now)
	return c
}

// NewForBaseURL builds the endpoint from the site root, e.g. https://blog.example.com.
func NewForBaseURL(baseURL string, opts ...Option) *Client {
	return New(strings.TrimSuffix(baseURL, "/")+DefaultPath, opts...)
}

// Search is keyed on params.Query alone. Calls that differ only in ancestor,
// filters or cursor within the TTL get the first call's results.
func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchResults, error) {
	key := params.Query
	if cached, ok := c.cache.Get(key); ok {
		return cached, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		if cached, ok := c.cache.Get(key); ok {
			return cached, nil
		}
		res, err := c.do(ctx, params)
		if err != nil {
			return nil, err
		}
		c.cache.Set(key, res)
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*SearchResults), nil
}

func (c *Client) do(ctx context.Context, params SearchParams) (*SearchResults, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal search params: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ResponseError{
			Message:    errorMessage(resp, respBody),
			StatusCode: resp.StatusCode,
			Response:   resp,
			Body:       respBody,
		}
	}

	var results SearchResults
	if err := json.Unmarshal(respBody, &results); err != nil {
		return nil, fmt.Errorf("unmarshal search results: %w", err)
	}
	return &results, nil
}

// errorMessage prefers a JSON string body, then its "error" field, then its
// "details" field. A body that is not JSON yields the status text.
func errorMessage(resp *http.Response, body []byte) string {
	msg := fmt.Sprintf("Search request failed with status %d", resp.StatusCode)

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		if text := statusText(resp); text != "" {
			return text
		}
		return msg
	}

	switch v := payload.(type) {
	case string:
		if v != "" {
			return v
		}
	case map[string]any:
		if s, ok := v["error"].(string); ok && s != "" {
			return s
		}
		if s, ok := v["details"].(string); ok && s != "" {
			return s
		}
	}
	return msg
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
