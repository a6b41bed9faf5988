package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Configuration file location.
const (
	// ConfigDirName is the directory under $HOME holding the CLI config.
	ConfigDirName = ".concourse"

	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"

	// ConfigFileType is the config file format.
	ConfigFileType = "yaml"

	// EnvPrefix prefixes environment variables read by the CLI.
	EnvPrefix = "CONCOURSE"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry limits. Retries are off unless configured.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Concurrency limits.
const (
	// DefaultConcurrencyLimit limits concurrent operations issued by the CLI.
	DefaultConcurrencyLimit = 3
)

// Cache defaults.
const (
	// DefaultCacheSize is the default cache size limit.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is the default cache time-to-live.
	DefaultCacheTTL = 5 * time.Minute

	// DefaultNATSBucket is the JetStream key-value bucket used for caching.
	DefaultNATSBucket = "concourse-client-cache"

	// MaxCacheValueSize is the maximum size for cached values (1MB).
	MaxCacheValueSize = 1024 * 1024
)

// HTTP headers.
const (
	// HeaderAuthorization carries the bearer token.
	HeaderAuthorization = "Authorization"

	// HeaderAccept is sent with every request.
	HeaderAccept = "Accept"

	// HeaderUserAgent identifies the client.
	HeaderUserAgent = "User-Agent"

	// MediaTypeJSON is the only media type the API speaks.
	MediaTypeJSON = "application/json"

	// BearerPrefix precedes the token in the Authorization header.
	BearerPrefix = "Bearer "

	// DefaultUserAgent is sent when none is configured.
	DefaultUserAgent = "concourse-client-go/1.0.0"
)

// API paths.
const (
	// APIPathTeams is the first segment of every team-scoped path.
	APIPathTeams = "teams"

	// APIPathPipelines is the pipelines collection below a team.
	APIPathPipelines = "pipelines"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// BooleanTrue string representation.
	BooleanTrue = "true"

	// BooleanFalse string representation.
	BooleanFalse = "false"

	// TimeFormat renders timestamps in tables.
	TimeFormat = "2006-01-02 15:04:05"
)

// Format constants.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2
)

// Confirmation constants.
const (
	// ConfirmationYes for positive confirmations.
	ConfirmationYes = "yes"
)
