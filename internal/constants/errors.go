package constants

import "errors"

// Configuration errors.
var (
	ErrNoEndpoint        = errors.New("endpoint is required")
	ErrNoConfiguredNodes = errors.New("no nodes to probe")
)

// Validation errors.
var (
	ErrInvalidPort         = errors.New("port must be between 1 and 65535")
	ErrEmptyName           = errors.New("name must not be empty")
	ErrInvalidOutputFormat = errors.New("invalid output format, expected json, yaml or table")
	ErrInvalidLimitKind    = errors.New("unsupported limit kind")
)
