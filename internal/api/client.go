package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rickdex/internal/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBaseURL is the public Rick and Morty API.
const DefaultBaseURL = "https://rickandmortyapi.com/api"

// DefaultTimeout bounds a single request.
const DefaultTimeout = 15 * time.Second

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 4 << 10

// Client issues read requests against the character API.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a client for baseURL. An empty baseURL selects
// DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// ListCharacters fetches one page of characters matching f. Only non-empty
// filter fields are sent.
func (c *Client) ListCharacters(ctx context.Context, page int, f Filters) (*CharacterPage, error) {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	for _, field := range Fields {
		if v := f.Get(field); v != "" {
			q.Set(string(field), v)
		}
	}
	endpoint := c.baseURL + "/character?" + q.Encode()

	var out CharacterPage
	if err := c.get(ctx, "list", endpoint, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCharacter fetches a single character by id.
func (c *Client) GetCharacter(ctx context.Context, id int) (*Character, error) {
	endpoint := c.baseURL + "/character/" + strconv.Itoa(id)

	var out Character
	if err := c.get(ctx, "get", endpoint, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// get performs a GET and decodes a successful JSON body into out.
func (c *Client) get(ctx context.Context, op, endpoint string, out any) error {
	log := logging.Get(logging.CategoryAPI).With(
		zap.String("op", op),
		zap.String("request_id", uuid.NewString()),
		zap.String("url", endpoint),
	)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return c.fail(log, &NetworkError{Op: op, URL: endpoint, Err: fmt.Errorf("failed to create request: %w", err)})
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(log, &NetworkError{Op: op, URL: endpoint, Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ne := &NetworkError{Op: op, URL: endpoint, StatusCode: resp.StatusCode}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil {
			ne.Message = apiErr.Error
		}
		return c.fail(log, ne)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return c.fail(log, &NetworkError{Op: op, URL: endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)})
	}

	log.Debug("request completed",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (c *Client) fail(log *zap.Logger, err *NetworkError) error {
	log.Warn("request failed", zap.Int("status", err.StatusCode), zap.Error(err))
	return err
}
