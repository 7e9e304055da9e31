package rabbitmq

import "context"

// VirtualHostsClient manages virtual hosts.
type VirtualHostsClient interface {
	List(ctx context.Context) ([]VirtualHost, error)
	ListPaged(ctx context.Context, params PaginationParams) (*PaginatedResponse[VirtualHost], error)
	Get(ctx context.Context, name string) (*VirtualHost, error)
	Create(ctx context.Context, params *VirtualHostParams) error
	Update(ctx context.Context, params *VirtualHostParams) error
	Delete(ctx context.Context, name string, idempotently bool) error
	// EnableDeletionProtection makes the broker reject deletion of the
	// virtual host until protection is disabled again.
	EnableDeletionProtection(ctx context.Context, name string) error
	DisableDeletionProtection(ctx context.Context, name string) error
}

// UsersClient manages users in the internal data store.
type UsersClient interface {
	List(ctx context.Context) ([]User, error)
	ListPaged(ctx context.Context, params PaginationParams) (*PaginatedResponse[User], error)
	ListWithoutPermissions(ctx context.Context) ([]User, error)
	Get(ctx context.Context, name string) (*User, error)
	// Current returns the user whose credentials the client was
	// configured with, as reported by GET /api/whoami.
	Current(ctx context.Context) (*CurrentUser, error)
	Create(ctx context.Context, params *UserParams) error
	Delete(ctx context.Context, username string, idempotently bool) error
	BulkDelete(ctx context.Context, usernames []string) error
}

// PermissionsClient manages user permissions, including permissions on
// topic exchanges.
type PermissionsClient interface {
	List(ctx context.Context) ([]Permissions, error)
	ListIn(ctx context.Context, vhost string) ([]Permissions, error)
	ListOf(ctx context.Context, username string) ([]Permissions, error)
	Get(ctx context.Context, vhost, username string) (*Permissions, error)
	Declare(ctx context.Context, params *PermissionsParams) error
	// GrantFull grants the user full permissions (".*" for configure,
	// read and write) in the virtual host.
	GrantFull(ctx context.Context, username, vhost string) error
	Clear(ctx context.Context, vhost, username string, idempotently bool) error

	ListTopicPermissions(ctx context.Context) ([]TopicPermission, error)
	ListTopicPermissionsIn(ctx context.Context, vhost string) ([]TopicPermission, error)
	ListTopicPermissionsOf(ctx context.Context, username string) ([]TopicPermission, error)
	GetTopicPermissionsOf(ctx context.Context, vhost, username string) ([]TopicPermission, error)
	DeclareTopicPermissions(ctx context.Context, params *TopicPermissionsParams) error
	ClearTopicPermissions(ctx context.Context, vhost, username string, idempotently bool) error
}

// QueuesClient manages queues and streams.
type QueuesClient interface {
	List(ctx context.Context) ([]QueueInfo, error)
	ListPaged(ctx context.Context, params PaginationParams) (*PaginatedResponse[QueueInfo], error)
	ListIn(ctx context.Context, vhost string) ([]QueueInfo, error)
	ListInPaged(ctx context.Context, vhost string, params PaginationParams) (*PaginatedResponse[QueueInfo], error)
	ListWithDetails(ctx context.Context) ([]DetailedQueueInfo, error)
	Get(ctx context.Context, vhost, name string) (*QueueInfo, error)
	GetStream(ctx context.Context, vhost, name string) (*QueueInfo, error)
	Declare(ctx context.Context, vhost string, params *QueueParams) error
	DeclareStream(ctx context.Context, vhost string, params *StreamParams) error
	Delete(ctx context.Context, vhost, name string, idempotently bool) error
	DeleteStream(ctx context.Context, vhost, name string, idempotently bool) error
	// Purge removes all messages in ready state from the queue. Messages
	// pending acknowledgement are not removed.
	Purge(ctx context.Context, vhost, name string) error
	// RebalanceLeaders triggers a cluster-wide rebalancing of queue
	// leader replicas.
	RebalanceLeaders(ctx context.Context) error
}

// ExchangesClient manages exchanges.
type ExchangesClient interface {
	List(ctx context.Context) ([]ExchangeInfo, error)
	ListPaged(ctx context.Context, params PaginationParams) (*PaginatedResponse[ExchangeInfo], error)
	ListIn(ctx context.Context, vhost string) ([]ExchangeInfo, error)
	ListInPaged(ctx context.Context, vhost string, params PaginationParams) (*PaginatedResponse[ExchangeInfo], error)
	Get(ctx context.Context, vhost, name string) (*ExchangeInfo, error)
	Declare(ctx context.Context, vhost string, params *ExchangeParams) error
	Delete(ctx context.Context, vhost, name string, idempotently bool) error
}

// BindingsClient manages bindings between exchanges and queues, streams or
// other exchanges.
type BindingsClient interface {
	List(ctx context.Context) ([]BindingInfo, error)
	ListIn(ctx context.Context, vhost string) ([]BindingInfo, error)
	ListQueueBindings(ctx context.Context, vhost, queue string) ([]BindingInfo, error)
	ListExchangeBindingsWithSource(ctx context.Context, vhost, exchange string) ([]BindingInfo, error)
	ListExchangeBindingsWithDestination(ctx context.Context, vhost, exchange string) ([]BindingInfo, error)
	// BindQueue binds a queue or stream to an exchange. An empty routing
	// key is not sent to the broker.
	BindQueue(ctx context.Context, vhost, queue, exchange, routingKey string, arguments XArguments) error
	// BindExchange creates an exchange-to-exchange binding.
	BindExchange(ctx context.Context, vhost, destination, source, routingKey string, arguments XArguments) error
	// Recreate declares a binding equal to the given one, typically
	// obtained from a listing before a topology change.
	Recreate(ctx context.Context, binding *BindingInfo) error
	// Delete resolves the binding's properties key by listing and
	// filtering, then deletes it. See MultipleMatchingBindingsError for
	// the ambiguous case.
	Delete(ctx context.Context, params *BindingDeletionParams, idempotently bool) error
}

// ClusterClient reports cluster-wide state and identity.
type ClusterClient interface {
	Overview(ctx context.Context) (*Overview, error)
	ServerVersion(ctx context.Context) (string, error)
	GetName(ctx context.Context) (*ClusterIdentity, error)
	SetName(ctx context.Context, name string) error
	GetTags(ctx context.Context) (TagMap, error)
	SetTags(ctx context.Context, tags TagMap) error
	ClearTags(ctx context.Context) error
}

// NodesClient reports cluster member information.
type NodesClient interface {
	List(ctx context.Context) ([]ClusterNode, error)
	Get(ctx context.Context, name string) (*ClusterNode, error)
	GetMemoryFootprint(ctx context.Context, name string) (*NodeMemoryFootprint, error)
}

// ConnectionsClient lists and closes client connections.
type ConnectionsClient interface {
	List(ctx context.Context) ([]Connection, error)
	ListPaged(ctx context.Context, params PaginationParams) (*PaginatedResponse[Connection], error)
	ListIn(ctx context.Context, vhost string) ([]Connection, error)
	ListOfUser(ctx context.Context, username string) ([]UserConnection, error)
	ListStream(ctx context.Context) ([]Connection, error)
	ListStreamIn(ctx context.Context, vhost string) ([]Connection, error)
	Get(ctx context.Context, name string) (*Connection, error)
	GetStream(ctx context.Context, vhost, name string) (*Connection, error)
	// Close closes a connection. The optional reason is passed to the
	// client in the connection error and logged by the broker.
	Close(ctx context.Context, name, reason string, idempotently bool) error
	// CloseOfUser closes all connections of a user.
	CloseOfUser(ctx context.Context, username, reason string, idempotently bool) error
}

// ChannelsClient lists channels.
type ChannelsClient interface {
	List(ctx context.Context) ([]Channel, error)
	ListPaged(ctx context.Context, params PaginationParams) (*PaginatedResponse[Channel], error)
	ListIn(ctx context.Context, vhost string) ([]Channel, error)
	ListInPaged(ctx context.Context, vhost string, params PaginationParams) (*PaginatedResponse[Channel], error)
	ListOnConnection(ctx context.Context, connectionName string) ([]Channel, error)
	Get(ctx context.Context, name string) (*Channel, error)
}

// ConsumersClient lists consumers as well as stream publishers and stream
// consumers.
type ConsumersClient interface {
	List(ctx context.Context) ([]Consumer, error)
	ListIn(ctx context.Context, vhost string) ([]Consumer, error)

	ListStreamPublishers(ctx context.Context) ([]StreamPublisher, error)
	ListStreamPublishersIn(ctx context.Context, vhost string) ([]StreamPublisher, error)
	ListStreamPublishersOf(ctx context.Context, vhost, stream string) ([]StreamPublisher, error)
	ListStreamPublishersOnConnection(ctx context.Context, vhost, name string) ([]StreamPublisher, error)

	ListStreamConsumers(ctx context.Context) ([]StreamConsumer, error)
	ListStreamConsumersIn(ctx context.Context, vhost string) ([]StreamConsumer, error)
	ListStreamConsumersOnConnection(ctx context.Context, vhost, name string) ([]StreamConsumer, error)
}

// PoliciesClient manages policies and operator policies.
type PoliciesClient interface {
	List(ctx context.Context) ([]Policy, error)
	ListIn(ctx context.Context, vhost string) ([]Policy, error)
	Get(ctx context.Context, vhost, name string) (*Policy, error)
	Declare(ctx context.Context, params *PolicyParams) error
	// DeclareMultiple declares the given policies one by one, stopping at
	// the first failure.
	DeclareMultiple(ctx context.Context, params []*PolicyParams) error
	Delete(ctx context.Context, vhost, name string, idempotently bool) error
	DeleteMultipleIn(ctx context.Context, vhost string, names []string) error

	ListOperator(ctx context.Context) ([]Policy, error)
	ListOperatorIn(ctx context.Context, vhost string) ([]Policy, error)
	GetOperator(ctx context.Context, vhost, name string) (*Policy, error)
	DeclareOperator(ctx context.Context, params *PolicyParams) error
	DeclareMultipleOperator(ctx context.Context, params []*PolicyParams) error
	DeleteOperator(ctx context.Context, vhost, name string, idempotently bool) error
	DeleteMultipleOperatorIn(ctx context.Context, vhost string, names []string) error
}

// ParametersClient manages runtime parameters, both virtual host-scoped and
// global ones.
type ParametersClient interface {
	List(ctx context.Context) ([]RuntimeParameter, error)
	ListOfComponent(ctx context.Context, component string) ([]RuntimeParameter, error)
	ListOfComponentIn(ctx context.Context, component, vhost string) ([]RuntimeParameter, error)
	Get(ctx context.Context, component, vhost, name string) (*RuntimeParameter, error)
	Upsert(ctx context.Context, param *RuntimeParameterDefinition) error
	Clear(ctx context.Context, component, vhost, name string, idempotently bool) error
	ClearAll(ctx context.Context) error
	ClearAllOfComponent(ctx context.Context, component string) error

	ListGlobal(ctx context.Context) ([]GlobalRuntimeParameter, error)
	GetGlobal(ctx context.Context, name string) (*GlobalRuntimeParameter, error)
	UpsertGlobal(ctx context.Context, param *GlobalRuntimeParameterDefinition) error
	ClearGlobal(ctx context.Context, name string, idempotently bool) error
}

// FederationClient manages federation upstreams and reports federation
// link state.
type FederationClient interface {
	ListUpstreams(ctx context.Context) ([]FederationUpstream, error)
	GetUpstream(ctx context.Context, vhost, name string) (*FederationUpstream, error)
	DeclareUpstream(ctx context.Context, params FederationUpstreamParams) error
	DeleteUpstream(ctx context.Context, vhost, name string, idempotently bool) error
	ListLinks(ctx context.Context) ([]FederationLink, error)
}

// ShovelsClient manages dynamic shovels.
type ShovelsClient interface {
	ListAll(ctx context.Context) ([]Shovel, error)
	ListIn(ctx context.Context, vhost string) ([]Shovel, error)
	DeclareAmqp091(ctx context.Context, params Amqp091ShovelParams) error
	DeclareAmqp10(ctx context.Context, params Amqp10ShovelParams) error
	Delete(ctx context.Context, vhost, name string, idempotently bool) error
}

// DefinitionsClient exports and imports definitions, both cluster-wide and
// for a single virtual host.
type DefinitionsClient interface {
	Export(ctx context.Context) (*ClusterDefinitionSet, error)
	ExportAsString(ctx context.Context) (string, error)
	// ExportTransformed exports cluster-wide definitions and applies the
	// given transformation chain to the result.
	ExportTransformed(ctx context.Context, chain *TransformationChain) (*ClusterDefinitionSet, error)
	ExportVirtualHost(ctx context.Context, vhost string) (*VirtualHostDefinitionSet, error)
	ExportVirtualHostAsString(ctx context.Context, vhost string) (string, error)
	Import(ctx context.Context, defs *ClusterDefinitionSet) error
	ImportRaw(ctx context.Context, defs []byte) error
	ImportVirtualHost(ctx context.Context, vhost string, defs *VirtualHostDefinitionSet) error
	ImportVirtualHostRaw(ctx context.Context, vhost string, defs []byte) error
}

// FeatureFlagsClient lists and enables feature flags.
type FeatureFlagsClient interface {
	List(ctx context.Context) ([]FeatureFlag, error)
	Enable(ctx context.Context, name string) error
	// EnableAllStable enables every stable feature flag that is still
	// disabled, one by one.
	EnableAllStable(ctx context.Context) error
}

// DeprecatedFeaturesClient lists deprecated features.
type DeprecatedFeaturesClient interface {
	List(ctx context.Context) ([]DeprecatedFeature, error)
	ListUsed(ctx context.Context) ([]DeprecatedFeature, error)
}

// LimitsClient manages per-user and per-virtual host limits.
type LimitsClient interface {
	SetUserLimit(ctx context.Context, username string, limit EnforcedLimitParams[UserLimitTarget]) error
	ClearUserLimit(ctx context.Context, username string, kind UserLimitTarget) error
	ListAllUserLimits(ctx context.Context) ([]UserLimits, error)
	ListUserLimits(ctx context.Context, username string) ([]UserLimits, error)

	SetVirtualHostLimit(ctx context.Context, vhost string, limit EnforcedLimitParams[VirtualHostLimitTarget]) error
	ClearVirtualHostLimit(ctx context.Context, vhost string, kind VirtualHostLimitTarget) error
	ListAllVirtualHostLimits(ctx context.Context) ([]VirtualHostLimits, error)
	ListVirtualHostLimits(ctx context.Context, vhost string) ([]VirtualHostLimits, error)
}

// HealthClient runs health checks. A failed check returns a
// HealthCheckFailedError carrying the typed failure details.
type HealthClient interface {
	ClusterWideAlarms(ctx context.Context) error
	LocalAlarms(ctx context.Context) error
	// NodeIsQuorumCritical fails if the target node hosts replicas that
	// some quorum queues, streams or the metadata store would lose their
	// quorum without.
	NodeIsQuorumCritical(ctx context.Context) error
	PortListener(ctx context.Context, port uint16) error
	ProtocolListener(ctx context.Context, protocol SupportedProtocol) error
}

// AuthClient reports authentication-related broker state.
type AuthClient interface {
	// OAuthConfiguration reports whether the broker advertises OAuth 2
	// for management UI and API access.
	OAuthConfiguration(ctx context.Context) (*OAuthConfiguration, error)
	AuthenticationAttemptStatistics(ctx context.Context, node string) ([]AuthenticationAttemptStatistics, error)
}

// MessagesClient publishes and fetches individual messages. These
// operations exist for tests and troubleshooting; use a messaging protocol
// client for production traffic.
type MessagesClient interface {
	Publish(ctx context.Context, vhost, exchange, routingKey, payload string, properties MessageProperties) (*MessageRouted, error)
	Get(ctx context.Context, vhost, queue string, count uint32, ackMode string) ([]GetMessage, error)
}
