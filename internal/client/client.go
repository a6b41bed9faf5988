// Package client implements concourse.TeamPipelinesClient.
package client

import (
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/concourse-client/internal/cache"
	internalhttp "github.com/fivetwenty-io/concourse-client/internal/http"
	"github.com/fivetwenty-io/concourse-client/internal/request"
	"github.com/fivetwenty-io/concourse-client/internal/validation"
	"github.com/fivetwenty-io/concourse-client/pkg/concourse"
)

// Client is a pipelines client bound to one team.
type Client struct {
	caller  concourse.Caller
	builder *request.Builder
	team    concourse.Team
	closer  func() error
}

// New validates config and builds a client. Without a configured
// Caller the default transport is created from the remaining fields.
func New(config *concourse.Config) (*Client, error) {
	if config == nil {
		return nil, concourse.ErrConfigRequired
	}

	err := validation.ValidateConfig(config)
	if err != nil {
		return nil, err
	}

	client := &Client{
		team:   *config.Team,
		caller: config.Caller,
		closer: func() error { return nil },
	}

	if client.caller == nil {
		manager, err := createCacheManager(config.Cache)
		if err != nil {
			return nil, err
		}

		opts := createHTTPClientOptions(config)
		if manager != nil {
			opts = append(opts, internalhttp.WithCache(manager))
			client.closer = manager.Close
		}

		client.caller = internalhttp.NewClient(config.Token, opts...)
	}

	client.builder = request.NewBuilder(config.APIURL, authHeaders(config.Token, client.caller))

	return client, nil
}

// Team returns the team every request is scoped to.
func (c *Client) Team() concourse.Team {
	return c.team
}

// Close releases the response cache of the default transport, if any.
func (c *Client) Close() error {
	return c.closer()
}

// authHeaders fixes the bearer header: an explicit token wins, otherwise
// the caller's own default headers are used.
func authHeaders(token string, caller concourse.Caller) http.Header {
	if token != "" {
		return request.BearerHeaders(token)
	}

	if provider, ok := caller.(concourse.HeaderProvider); ok {
		return provider.DefaultHeaders()
	}

	return make(http.Header)
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *concourse.Config) []internalhttp.Option {
	var httpOpts []internalhttp.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, internalhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 {
		httpOpts = append(httpOpts, internalhttp.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, internalhttp.WithTimeout(config.HTTPTimeout))
	}

	return httpOpts
}

// createCacheManager returns nil when caching is disabled.
func createCacheManager(config *concourse.CacheConfig) (*cache.Manager, error) {
	if config == nil || config.Type == concourse.CacheTypeNone || config.Type == "" {
		return nil, nil
	}

	backend, err := cache.NewFromConfig(config)
	if err != nil {
		return nil, fmt.Errorf("creating response cache: %w", err)
	}

	return cache.NewManager(backend, config.TTL), nil
}
