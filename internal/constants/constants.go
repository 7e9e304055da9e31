package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for management API requests.
	DefaultHTTPTimeout = 60 * time.Second
)

// Concurrency limits.
const (
	// DefaultConcurrencyLimit bounds concurrent node probes.
	DefaultConcurrencyLimit = 5
)

// Endpoint defaults.
const (
	// DefaultEndpoint is the management API endpoint of a local node.
	DefaultEndpoint = "http://localhost:15672/api"

	// DefaultUsername is the default administrative username of a fresh node.
	DefaultUsername = "guest"

	// DefaultPassword is the default administrative password of a fresh node.
	DefaultPassword = "guest"

	// DefaultVirtualHost is the name of the default virtual host.
	DefaultVirtualHost = "/"
)

// Display and output formatting.
const (
	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2

	// MaxDisplayWidth limits column width in table output.
	MaxDisplayWidth = 60

	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for tabular output format.
	FormatTable = "table"
)

// Argument counts.
const (
	// TwoArgumentsMax for commands that take exactly two positional arguments.
	TwoArgumentsMax = 2
)
