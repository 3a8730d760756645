package api

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

	"github.com/ledmatrix/onboard/internal/cache"
	"github.com/ledmatrix/onboard/internal/logging"
	"github.com/ledmatrix/onboard/internal/models"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultCacheTTL = 90 * time.Second
)

// Cache interface for caching HTTP responses
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
}

// Client is the API client for the display controller's configuration API
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      Cache
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL points the client at another controller
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithCache enables caching with the provided cache implementation
func WithCache(cache Cache) ClientOption {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithCacheTTL keeps GET responses in memory for ttl. A non-positive ttl
// falls back to the default lifetime.
func WithCacheTTL(ttl time.Duration) ClientOption {
	return func(c *Client) {
		if ttl <= 0 {
			ttl = defaultCacheTTL
		}
		c.cache = cache.NewMemoryCache(ttl)
	}
}

// NewClient creates a new API client
func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: BaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid base URL %q", ErrInvalidRequest, c.baseURL)
	}

	return c, nil
}

// BaseURL returns the controller API address the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SearchStopAreas searches stop areas whose name matches query
func (c *Client) SearchStopAreas(ctx context.Context, query string) ([]models.StopArea, error) {
	body, err := c.SearchStopAreasRaw(ctx, query)
	if err != nil {
		return nil, err
	}

	var resp []models.StopAreaResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse stop areas response: %w", err)
	}

	stops := make([]models.StopArea, 0, len(resp))
	for i := range resp {
		stops = append(stops, *resp[i].ToStopArea())
	}

	return stops, nil
}

// SearchStopAreasRaw searches stop areas and returns raw JSON
func (c *Client) SearchStopAreasRaw(ctx context.Context, query string) (json.RawMessage, error) {
	reqURL := c.baseURL + EndpointStopAreas + "?filter=" + escapeFilter(query)

	return c.doRequest(ctx, http.MethodGet, reqURL)
}

// GetDirections lists the directions served from a stop area
func (c *Client) GetDirections(ctx context.Context, stopAreaID string) ([]models.Direction, error) {
	body, err := c.GetDirectionsRaw(ctx, stopAreaID)
	if err != nil {
		return nil, err
	}

	var resp []models.DirectionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse directions response: %w", err)
	}

	directions := make([]models.Direction, 0, len(resp))
	for i := range resp {
		directions = append(directions, *resp[i].ToDirection())
	}

	return directions, nil
}

// GetDirectionsRaw lists directions and returns raw JSON
func (c *Client) GetDirectionsRaw(ctx context.Context, stopAreaID string) (json.RawMessage, error) {
	if stopAreaID == "" {
		return nil, ErrMissingField("stopAreaId")
	}

	reqURL := c.baseURL + DirectionsPath(stopAreaID)

	return c.doRequest(ctx, http.MethodGet, reqURL)
}

// SetConfiguration pushes a stop area and route to the display.
// Any 2xx status is success; the response body is ignored.
func (c *Client) SetConfiguration(ctx context.Context, stopAreaID, routeID string) error {
	if stopAreaID == "" {
		return ErrMissingField("stopAreaId")
	}
	if routeID == "" {
		return ErrMissingField("routeId")
	}

	reqURL := c.baseURL + SetConfigurationPath(stopAreaID, routeID)

	_, err := c.doRequest(ctx, http.MethodPost, reqURL)
	return err
}

// doRequest performs an HTTP request. GET responses go through the cache.
func (c *Client) doRequest(ctx context.Context, method, reqURL string) ([]byte, error) {
	cacheable := method == http.MethodGet && c.cache != nil
	if cacheable {
		if data, ok := c.cache.Get(reqURL); ok {
			return data, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	endpoint := extractEndpoint(reqURL)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			err = fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
		case ctx.Err() != nil:
			err = fmt.Errorf("request abandoned: %w", ctx.Err())
		default:
			err = fmt.Errorf("%w: %w", ErrNetwork, err)
		}
		logging.LogRequest(method, endpoint, 0, time.Since(start), err)
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := NewAPIError(resp.StatusCode, resp.Status, endpoint)
		apiErr.Detail = readDetail(resp.Body)
		logging.LogRequest(method, endpoint, resp.StatusCode, time.Since(start), apiErr)
		return nil, apiErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("%w: failed to read response body: %w", ErrNetwork, err)
		logging.LogRequest(method, endpoint, resp.StatusCode, time.Since(start), err)
		return nil, err
	}

	logging.LogRequest(method, endpoint, resp.StatusCode, time.Since(start), nil)

	if cacheable {
		_ = c.cache.Set(reqURL, body)
	}

	return body, nil
}

// escapeFilter query-escapes s with spaces as %20, since the controller
// does not decode '+' back to a space.
func escapeFilter(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// extractEndpoint extracts the endpoint path from a full URL
func extractEndpoint(fullURL string) string {
	u, err := url.Parse(fullURL)
	if err != nil {
		return fullURL
	}
	return u.Path
}
