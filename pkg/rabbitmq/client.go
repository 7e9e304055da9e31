package rabbitmq

import (
	"context"
	"crypto/tls"
	"net/http"
	"time"
)

// Defaults used when a Config omits the corresponding field. The default
// credentials are limited to local connections by the broker itself.
const (
	DefaultEndpoint = "http://localhost:15672/api"
	DefaultUsername = "guest"
	DefaultPassword = "guest"
)

// TopologyClients provides access to the clients for named topology objects.
type TopologyClients interface {
	VirtualHosts() VirtualHostsClient
	Users() UsersClient
	Permissions() PermissionsClient
	Queues() QueuesClient
	Exchanges() ExchangesClient
	Bindings() BindingsClient
}

// MonitoringClients provides access to the clients that observe a running
// cluster without modifying it.
type MonitoringClients interface {
	Cluster() ClusterClient
	Nodes() NodesClient
	Connections() ConnectionsClient
	Channels() ChannelsClient
	Consumers() ConsumersClient
}

// PolicyAndParameterClients provides access to the clients for policies and
// the runtime parameters behind federation and shovels.
type PolicyAndParameterClients interface {
	Policies() PoliciesClient
	Parameters() ParametersClient
	Federation() FederationClient
	Shovels() ShovelsClient
}

// OperationsClients provides access to the clients used for cluster
// operations: definition export and import, feature flags, limits.
type OperationsClients interface {
	Definitions() DefinitionsClient
	FeatureFlags() FeatureFlagsClient
	DeprecatedFeatures() DeprecatedFeaturesClient
	Limits() LimitsClient
}

// DiagnosticsClients provides access to the clients for health checks and
// other diagnostic endpoints.
type DiagnosticsClients interface {
	Health() HealthClient
	Auth() AuthClient
	Messages() MessagesClient
}

// ResourceClients provides access to all resource-specific clients.
type ResourceClients interface {
	// Composite interfaces for resource groups
	TopologyClients
	MonitoringClients
	PolicyAndParameterClients
	OperationsClients
	DiagnosticsClients
}

type Client interface {
	// Composite interfaces for related resource groups
	ResourceClients

	// ProbeReachability reports whether the target node accepts the
	// client's credentials, using GET /api/whoami. It does not check node
	// health or resource alarms; compose those separately after a
	// successful probe.
	ProbeReachability(ctx context.Context) *ReachabilityProbeOutcome

	// Endpoint returns the normalized endpoint the client sends
	// requests to.
	Endpoint() string

	// Close wipes the credentials held by the client. The client must not
	// be used after Close returns.
	Close() error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a rabbitmq.Client.
//
// # Authentication
//
// Every request carries HTTP Basic credentials derived from Username and
// Password. The secret is copied into a wipeable container at construction
// time and zeroed when the client is closed; see Client.Close.
//
// # Retries
//
// A request that fails, with a transport error or any status the operation
// does not accept, is retried up to MaxRetries additional times with a
// fixed RetryDelay between attempts. The default is no retries with one
// second between attempts when retries are configured.
//
// # TLS
//
// TLSConfig applies to the default transport only. When HTTPClient is set,
// configure TLS on that client instead.
type Config struct {
	// Required fields
	// Endpoint: base URL for the HTTP API, for example
	// "http://localhost:15672". rmqclient.New normalizes this value by
	// trimming a trailing slash and appending "/api" if it is missing.
	Endpoint string

	// Credentials
	// Username: the management API username. Defaults to "guest".
	Username string
	// Password: the management API password. Defaults to "guest".
	Password string

	// Optional configurations
	// HTTPClient: a pre-configured HTTP client to dispatch requests with.
	// When set, RequestTimeout and TLSConfig are ignored.
	HTTPClient *http.Client
	// TLSConfig: TLS settings for the default transport.
	TLSConfig *tls.Config
	// RequestTimeout: timeout covering the entire request/response cycle.
	RequestTimeout time.Duration
	// MaxRetries: the number of additional attempts after the initial
	// call. 0 disables retries.
	MaxRetries int
	// RetryDelay: fixed spacing between attempts. Defaults to one second.
	RetryDelay time.Duration
	// Debug: enables verbose HTTP request/response logging when a Logger
	// is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent: overrides the default User-Agent header sent by the
	// client.
	UserAgent string
	// Interceptors: optional chain of request/response interceptors
	// applied to every request. See InterceptorChain.
	Interceptors *InterceptorChain
}
