// Package client assembles the per-resource API clients around a shared
// HTTP transport and implements the rabbitmq.Client interface.
package client

import (
	"context"
	"time"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/auth"
	"github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

// Client implements the rabbitmq.Client interface.
type Client struct {
	httpClient *http.Client
	endpoint   string

	// Resource clients
	virtualHosts       rabbitmq.VirtualHostsClient
	users              rabbitmq.UsersClient
	permissions        rabbitmq.PermissionsClient
	queues             rabbitmq.QueuesClient
	exchanges          rabbitmq.ExchangesClient
	bindings           rabbitmq.BindingsClient
	cluster            rabbitmq.ClusterClient
	nodes              rabbitmq.NodesClient
	connections        rabbitmq.ConnectionsClient
	channels           rabbitmq.ChannelsClient
	consumers          rabbitmq.ConsumersClient
	policies           rabbitmq.PoliciesClient
	parameters         rabbitmq.ParametersClient
	federation         rabbitmq.FederationClient
	shovels            rabbitmq.ShovelsClient
	definitions        rabbitmq.DefinitionsClient
	featureFlags       rabbitmq.FeatureFlagsClient
	deprecatedFeatures rabbitmq.DeprecatedFeaturesClient
	limits             rabbitmq.LimitsClient
	health             rabbitmq.HealthClient
	authInfo           rabbitmq.AuthClient
	messages           rabbitmq.MessagesClient
}

// New creates a new management API client. The endpoint in the config is
// used as given, base path included.
func New(config *rabbitmq.Config) (*Client, error) {
	if config == nil {
		return nil, rabbitmq.ErrConfigRequired
	}

	if config.Endpoint == "" {
		return nil, rabbitmq.ErrEndpointRequired
	}

	if config.Username == "" {
		return nil, rabbitmq.ErrCredentialsRequired
	}

	credentials := auth.NewCredentials(config.Username, config.Password)
	httpClient := http.NewClient(config.Endpoint, credentials, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient: httpClient,
		endpoint:   config.Endpoint,
	}

	client.initializeResourceClients()

	return client, nil
}

// createHTTPClientOptions builds HTTP transport options from config.
func createHTTPClientOptions(config *rabbitmq.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.MaxRetries > 0 {
		retryDelay := 1 * time.Second
		if config.RetryDelay > 0 {
			retryDelay = config.RetryDelay
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.MaxRetries, retryDelay))
	}

	if config.RequestTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.RequestTimeout))
	}

	if config.TLSConfig != nil {
		httpOpts = append(httpOpts, http.WithTLSConfig(config.TLSConfig))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	return httpOpts
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.virtualHosts = NewVirtualHostsClient(c.httpClient)
	c.users = NewUsersClient(c.httpClient)
	c.permissions = NewPermissionsClient(c.httpClient)
	c.queues = NewQueuesClient(c.httpClient)
	c.exchanges = NewExchangesClient(c.httpClient)
	c.bindings = NewBindingsClient(c.httpClient)
	c.cluster = NewClusterClient(c.httpClient)
	c.nodes = NewNodesClient(c.httpClient)
	c.connections = NewConnectionsClient(c.httpClient)
	c.channels = NewChannelsClient(c.httpClient)
	c.consumers = NewConsumersClient(c.httpClient)
	c.policies = NewPoliciesClient(c.httpClient)
	c.parameters = NewParametersClient(c.httpClient)
	c.federation = NewFederationClient(c.httpClient)
	c.shovels = NewShovelsClient(c.httpClient)
	c.definitions = NewDefinitionsClient(c.httpClient)
	c.featureFlags = NewFeatureFlagsClient(c.httpClient)
	c.deprecatedFeatures = NewDeprecatedFeaturesClient(c.httpClient)
	c.limits = NewLimitsClient(c.httpClient)
	c.health = NewHealthClient(c.httpClient)
	c.authInfo = NewAuthClient(c.httpClient)
	c.messages = NewMessagesClient(c.httpClient)
}

// ProbeReachability implements rabbitmq.Client.ProbeReachability.
func (c *Client) ProbeReachability(ctx context.Context) *rabbitmq.ReachabilityProbeOutcome {
	start := time.Now()

	currentUser, err := c.users.Current(ctx)
	if err != nil {
		return &rabbitmq.ReachabilityProbeOutcome{Err: err}
	}

	return &rabbitmq.ReachabilityProbeOutcome{
		Details: &rabbitmq.ReachabilityProbeDetails{
			CurrentUser: *currentUser,
			Duration:    time.Since(start),
		},
	}
}

// Close implements rabbitmq.Client.Close. It wipes the credentials held
// by the transport; requests issued after Close fail.
func (c *Client) Close() error {
	return c.httpClient.Close()
}

// Endpoint returns the endpoint this client talks to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Resource client accessors

// VirtualHosts implements rabbitmq.Client.VirtualHosts.
func (c *Client) VirtualHosts() rabbitmq.VirtualHostsClient {
	return c.virtualHosts
}

// Users implements rabbitmq.Client.Users.
func (c *Client) Users() rabbitmq.UsersClient {
	return c.users
}

// Permissions implements rabbitmq.Client.Permissions.
func (c *Client) Permissions() rabbitmq.PermissionsClient {
	return c.permissions
}

// Queues implements rabbitmq.Client.Queues.
func (c *Client) Queues() rabbitmq.QueuesClient {
	return c.queues
}

// Exchanges implements rabbitmq.Client.Exchanges.
func (c *Client) Exchanges() rabbitmq.ExchangesClient {
	return c.exchanges
}

// Bindings implements rabbitmq.Client.Bindings.
func (c *Client) Bindings() rabbitmq.BindingsClient {
	return c.bindings
}

// Cluster implements rabbitmq.Client.Cluster.
func (c *Client) Cluster() rabbitmq.ClusterClient {
	return c.cluster
}

// Nodes implements rabbitmq.Client.Nodes.
func (c *Client) Nodes() rabbitmq.NodesClient {
	return c.nodes
}

// Connections implements rabbitmq.Client.Connections.
func (c *Client) Connections() rabbitmq.ConnectionsClient {
	return c.connections
}

// Channels implements rabbitmq.Client.Channels.
func (c *Client) Channels() rabbitmq.ChannelsClient {
	return c.channels
}

// Consumers implements rabbitmq.Client.Consumers.
func (c *Client) Consumers() rabbitmq.ConsumersClient {
	return c.consumers
}

// Policies implements rabbitmq.Client.Policies.
func (c *Client) Policies() rabbitmq.PoliciesClient {
	return c.policies
}

// Parameters implements rabbitmq.Client.Parameters.
func (c *Client) Parameters() rabbitmq.ParametersClient {
	return c.parameters
}

// Federation implements rabbitmq.Client.Federation.
func (c *Client) Federation() rabbitmq.FederationClient {
	return c.federation
}

// Shovels implements rabbitmq.Client.Shovels.
func (c *Client) Shovels() rabbitmq.ShovelsClient {
	return c.shovels
}

// Definitions implements rabbitmq.Client.Definitions.
func (c *Client) Definitions() rabbitmq.DefinitionsClient {
	return c.definitions
}

// FeatureFlags implements rabbitmq.Client.FeatureFlags.
func (c *Client) FeatureFlags() rabbitmq.FeatureFlagsClient {
	return c.featureFlags
}

// DeprecatedFeatures implements rabbitmq.Client.DeprecatedFeatures.
func (c *Client) DeprecatedFeatures() rabbitmq.DeprecatedFeaturesClient {
	return c.deprecatedFeatures
}

// Limits implements rabbitmq.Client.Limits.
func (c *Client) Limits() rabbitmq.LimitsClient {
	return c.limits
}

// Health implements rabbitmq.Client.Health.
func (c *Client) Health() rabbitmq.HealthClient {
	return c.health
}

// Auth implements rabbitmq.Client.Auth.
func (c *Client) Auth() rabbitmq.AuthClient {
	return c.authInfo
}

// Messages implements rabbitmq.Client.Messages.
func (c *Client) Messages() rabbitmq.MessagesClient {
	return c.messages
}
