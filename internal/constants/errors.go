package constants

import "errors"

// CLI errors.
var (
	ErrNotAuthenticated        = errors.New("not authenticated, use 'concourse login' first")
	ErrNoTokenProvided         = errors.New("no token provided, pass --token or set CONCOURSE_TOKEN")
	ErrUnsupportedOutputFormat = errors.New("unsupported output format")
)
