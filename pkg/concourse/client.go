package concourse

import (
	"context"
	"net/http"
	"time"
)

// TeamPipelinesClient manages the pipelines of a single team.
type TeamPipelinesClient interface {
	// Team returns the team every request is scoped to.
	Team() Team
	ListPipelines(ctx context.Context) ([]Pipeline, error)
	GetPipeline(ctx context.Context, pipelineName string) (*Pipeline, error)
	DeletePipeline(ctx context.Context, pipelineName string) error
	// Close releases resources held by the default transport.
	Close() error
}

// Caller executes authenticated HTTP calls against absolute URLs.
//
// Implementations return an error for network failures and for any
// response outside the 2xx range; the pipelines client hands those
// errors back to its own caller without modification.
type Caller interface {
	Get(ctx context.Context, url string, headers http.Header) (*Response, error)
	Delete(ctx context.Context, url string, headers http.Header) (*Response, error)
}

// HeaderProvider is implemented by callers that carry default headers,
// typically the bearer Authorization header.
type HeaderProvider interface {
	DefaultHeaders() http.Header
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// CacheType represents the type of response cache backend.
type CacheType string

const (
	// CacheTypeNone disables response caching.
	CacheTypeNone CacheType = "none"

	// CacheTypeMemory keeps responses in process memory.
	CacheTypeMemory CacheType = "memory"

	// CacheTypeNATS keeps responses in a NATS JetStream key-value bucket.
	CacheTypeNATS CacheType = "nats"
)

// CacheConfig configures the optional response cache of the default transport.
type CacheConfig struct {
	Type CacheType
	// TTL bounds how long a cached GET response is served.
	TTL time.Duration
	// MaxSize caps the number of entries of the memory backend.
	MaxSize int
	// NATSURL and NATSBucket select the JetStream KV bucket of the nats backend.
	NATSURL    string
	NATSBucket string
}

// Config represents client configuration for building a TeamPipelinesClient.
//
// # Transport
//
// When Caller is nil, teamclient.New builds the default transport from
// Token, Logger, Debug, UserAgent, the retry settings, HTTPTimeout and
// Cache. When Caller is set those fields are ignored except Token, which
// still supplies the bearer header if the caller does not provide one.
//
// # Authorization
//
// The bearer header is fixed when the client is constructed: it is taken
// from Token ("Authorization: Bearer <Token>") or, if Token is empty, from
// the Caller's DefaultHeaders. It is sent unmodified on every request.
type Config struct {
	// APIURL: absolute base URL of the API (e.g. "https://ci.example.com/api/v1").
	APIURL string
	// Caller: optional HTTP capability. A default transport is used when nil.
	Caller Caller
	// Team: the team all pipelines belong to. Required.
	Team *Team
	// Token: bearer token for the Authorization header.
	Token string

	// Logger: optional structured logger used by the default transport.
	Logger Logger
	// Debug: enables request/response logging when a Logger is provided.
	Debug bool
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// RetryMax: transport retries for 5xx, 429 and connection errors. 0 disables retries.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries.
	RetryWaitMax time.Duration
	// HTTPTimeout: per-attempt timeout of the default transport. Contexts still apply.
	HTTPTimeout time.Duration
	// Cache: optional response cache for the default transport. Nil disables caching.
	Cache *CacheConfig
}
