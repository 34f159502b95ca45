package swapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/holonet/internal/domain"
)

const (
	// DefaultBaseURL is the public catalog mirror
	DefaultBaseURL = "https://swapi-api.hbtn.io/api"

	defaultTimeout = 30 * time.Second
	userAgent      = "Holonet/1.0"
)

// RequestObserver receives one call per finished request.
// status is 0 when the request never got an answer.
type RequestObserver interface {
	ObserveRequest(kind domain.Kind, op string, status int, elapsed time.Duration)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithObserver attaches a request observer (metrics).
func WithObserver(o RequestObserver) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// Client is a thin, stateless GET client for the catalog API.
// It never caches and never retries; that lives one layer up.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	observer   RequestObserver
}

// NewClient creates a catalog client for baseURL (e.g. https://host/api).
func NewClient(baseURL string, logger *slog.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("swapi: base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("swapi: invalid base URL: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized base url.
func (c *Client) BaseURL() string { return c.baseURL }

// doRequest performs a GET and returns the body of a 2xx answer
func (c *Client) doRequest(ctx context.Context, kind domain.Kind, op, path string, query url.Values) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/%s", c.baseURL, strings.TrimLeft(path, "/"))
	if len(query) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)

	c.logger.Debug("catalog request", "url", reqURL, "request_id", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(kind, op, 0, start)
		c.logger.Error("catalog request failed", "error", err, "request_id", requestID)
		return nil, &RequestError{Method: http.MethodGet, URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	c.observe(kind, op, resp.StatusCode, start)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("catalog request error", "status", resp.StatusCode, "request_id", requestID, "bodyLen", len(body))
		return nil, newResponseError(resp.StatusCode, body)
	}

	return body, nil
}

func (c *Client) observe(kind domain.Kind, op string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveRequest(kind, op, status, time.Since(start))
	}
}

// fetchResources fetches one page of an endpoint, with optional search
func fetchResources[T domain.Resource](ctx context.Context, c *Client, kind domain.Kind, page int, search string) (domain.Page[T], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	if s := strings.TrimSpace(search); s != "" {
		query.Set("search", s)
	}

	body, err := c.doRequest(ctx, kind, "many", kind.Endpoint()+"/", query)
	if err != nil {
		return domain.Page[T]{}, classify(err)
	}

	var resp domain.Page[T]
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return domain.Page[T]{}, classify(fmt.Errorf("failed to parse response: %w", err))
	}
	return resp, nil
}

// fetchResourceByID fetches a single resource
func fetchResourceByID[T domain.Resource](ctx context.Context, c *Client, kind domain.Kind, id int) (T, error) {
	var zero T

	path := fmt.Sprintf("%s/%d/", kind.Endpoint(), id)
	body, err := c.doRequest(ctx, kind, "one", path, nil)
	if err != nil {
		return zero, classify(err)
	}

	var item T
	if err := json.Unmarshal(body, &item); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return zero, classify(fmt.Errorf("failed to parse response: %w", err))
	}
	return item, nil
}
