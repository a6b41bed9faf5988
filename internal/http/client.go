// Package http is the default transport of the pipelines client: it
// issues authenticated JSON requests against absolute URLs with optional
// retries and response caching.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/concourse-client/internal/cache"
	"github.com/fivetwenty-io/concourse-client/internal/constants"
	"github.com/fivetwenty-io/concourse-client/pkg/concourse"
)

// Client implements concourse.Caller and concourse.HeaderProvider.
type Client struct {
	httpClient *retryablehttp.Client
	headers    http.Header
	userAgent  string
	logger     concourse.Logger
	debug      bool
	cache      *cache.Manager
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger concourse.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithRetryConfig enables retries of 5xx, 429 and connection failures.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		if waitMin > 0 {
			c.httpClient.RetryWaitMin = waitMin
		}

		if waitMax > 0 {
			c.httpClient.RetryWaitMax = waitMax
		}
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithCache serves repeated GETs from manager until they expire. A
// successful DELETE invalidates the deleted URL and its collection.
func WithCache(manager *cache.Manager) Option {
	return func(c *Client) {
		c.cache = manager
	}
}

// WithHTTPClient replaces the underlying *http.Client, e.g. to supply a
// custom TLS configuration.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// NewClient creates a transport that authenticates with token. An empty
// token sends no Authorization header.
func NewClient(token string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.CheckRetry = retryablehttp.DefaultRetryPolicy
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	client := &Client{
		httpClient: retryClient,
		headers:    make(http.Header),
		userAgent:  constants.DefaultUserAgent,
	}

	if token != "" {
		client.headers.Set(constants.HeaderAuthorization, constants.BearerPrefix+token)
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.debug && client.logger != nil {
		client.httpClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

// DefaultHeaders returns a copy of the headers sent with every request.
func (c *Client) DefaultHeaders() http.Header {
	return c.headers.Clone()
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string, headers http.Header) (*concourse.Response, error) {
	return c.Do(ctx, http.MethodGet, url, headers)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, url string, headers http.Header) (*concourse.Response, error) {
	return c.Do(ctx, http.MethodDelete, url, headers)
}

// Do executes method against url. headers are applied on top of the
// client defaults. Responses outside the 2xx range are returned together
// with a *concourse.HTTPError.
func (c *Client) Do(ctx context.Context, method, url string, headers http.Header) (*concourse.Response, error) {
	authorization := headers.Get(constants.HeaderAuthorization)
	if authorization == "" {
		authorization = c.headers.Get(constants.HeaderAuthorization)
	}

	cacheKey := ""
	if c.cache != nil && method == http.MethodGet {
		cacheKey = c.cache.GetCacheKey(method, url, authorization)

		body, err := c.cache.Get(ctx, cacheKey)
		if err == nil {
			c.log("Cache hit", map[string]interface{}{"method": method, "url": url})

			return &concourse.Response{StatusCode: http.StatusOK, Headers: make(http.Header), Body: body}, nil
		}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set(constants.HeaderAccept, constants.MediaTypeJSON)
	req.Header.Set(constants.HeaderUserAgent, c.userAgent)

	for key, values := range c.headers {
		req.Header[key] = append([]string(nil), values...)
	}

	for key, values := range headers {
		req.Header[key] = append([]string(nil), values...)
	}

	c.log("HTTP Request", map[string]interface{}{"method": method, "url": url})

	start := time.Now()

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	c.log("HTTP Response", map[string]interface{}{
		"method":   method,
		"url":      url,
		"status":   httpResp.StatusCode,
		"duration": time.Since(start).String(),
	})

	resp := &concourse.Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		return resp, &concourse.HTTPError{
			Method:     method,
			URL:        url,
			StatusCode: httpResp.StatusCode,
			Status:     httpResp.Status,
			Body:       string(body),
		}
	}

	c.updateCache(ctx, method, url, authorization, cacheKey, body)

	return resp, nil
}

// updateCache stores GET bodies and, after a DELETE, drops the entries
// of the same credential for the URL and its collection.
func (c *Client) updateCache(ctx context.Context, method, url, authorization, cacheKey string, body []byte) {
	if c.cache == nil {
		return
	}

	switch method {
	case http.MethodGet:
		_ = c.cache.Set(ctx, cacheKey, body)
	case http.MethodDelete:
		keys := []string{c.cache.GetCacheKey(http.MethodGet, url, authorization)}
		if idx := strings.LastIndex(url, "/"); idx > 0 {
			keys = append(keys, c.cache.GetCacheKey(http.MethodGet, url[:idx], authorization))
		}

		err := c.cache.Invalidate(ctx, keys...)
		if err != nil && c.logger != nil {
			c.logger.Warn("Cache invalidation failed", map[string]interface{}{"url": url, "error": err.Error()})
		}
	}
}

func (c *Client) log(msg string, fields map[string]interface{}) {
	if c.debug && c.logger != nil {
		c.logger.Debug(msg, fields)
	}
}
