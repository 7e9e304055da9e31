package rabbitmq

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// TagList is a list of tags on a user or virtual host.
type TagList []string

// Contains reports whether the list includes the given tag.
func (l TagList) Contains(tag string) bool {
	for _, t := range l {
		if t == tag {
			return true
		}
	}

	return false
}

// PluginList is a set of plugin names, sorted and deduplicated on decoding.
type PluginList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *PluginList) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(raw))
	unique := make([]string, 0, len(raw))

	for _, name := range raw {
		if _, ok := seen[name]; ok {
			continue
		}

		seen[name] = struct{}{}
		unique = append(unique, name)
	}

	sort.Strings(unique)
	*l = unique

	return nil
}

// Contains reports whether the list includes the given plugin.
func (l PluginList) Contains(name string) bool {
	for _, n := range l {
		if n == name {
			return true
		}
	}

	return false
}

// XArguments holds optional arguments ("x-arguments") of a queue, exchange
// or binding.
type XArguments map[string]interface{}

// Optional argument keys with special meaning to the client.
const (
	XArgumentQueueType                 = "x-queue-type"
	XArgumentExpires                   = "x-expires"
	XArgumentMessageTTL                = "x-message-ttl"
	XArgumentMaxLength                 = "x-max-length"
	XArgumentMaxLengthBytes            = "x-max-length-bytes"
	XArgumentOverflow                  = "x-overflow"
	XArgumentDeadLetterExchange        = "x-dead-letter-exchange"
	XArgumentDeadLetterRoutingKey      = "x-dead-letter-routing-key"
	XArgumentDeadLetterStrategy        = "x-dead-letter-strategy"
	XArgumentSingleActiveConsumer      = "x-single-active-consumer"
	XArgumentMaxPriority               = "x-max-priority"
	XArgumentQuorumInitialGroupSize    = "x-quorum-initial-group-size"
	XArgumentQuorumTargetGroupSize     = "x-quorum-target-group-size"
	XArgumentDeliveryLimit             = "x-delivery-limit"
	XArgumentQueueLeaderLocator        = "x-queue-leader-locator"
	XArgumentInitialClusterSize        = "x-initial-cluster-size"
	XArgumentMaxAge                    = "x-max-age"
	XArgumentStreamMaxSegmentSizeBytes = "x-stream-max-segment-size-bytes"
	XArgumentStreamFilterSizeBytes     = "x-stream-filter-size-bytes"
)

// CMQXArgumentKeys are the classic queue mirroring x-arguments. The feature
// was removed in RabbitMQ 4.0.
var CMQXArgumentKeys = []string{
	"x-ha-mode",
	"x-ha-params",
	"x-ha-promote-on-shutdown",
	"x-ha-promote-on-failure",
	"x-ha-sync-mode",
	"x-ha-sync-batch-size",
}

// QuorumQueueIncompatibleXArgumentKeys are the x-arguments that quorum
// queues do not support.
var QuorumQueueIncompatibleXArgumentKeys = []string{
	"x-ha-mode",
	"x-ha-params",
	"x-ha-promote-on-shutdown",
	"x-ha-promote-on-failure",
	"x-ha-sync-mode",
	"x-ha-sync-batch-size",
	"x-queue-mode",
	"x-max-priority",
}

// ContainsAnyKeysOf reports whether any of the given keys is present.
func (args XArguments) ContainsAnyKeysOf(keys []string) bool {
	for _, k := range keys {
		if _, ok := args[k]; ok {
			return true
		}
	}

	return false
}

// HasCMQKeys reports whether any classic queue mirroring argument is present.
func (args XArguments) HasCMQKeys() bool {
	return args.ContainsAnyKeysOf(CMQXArgumentKeys)
}

// HasQuorumQueueIncompatibleKeys reports whether any argument unsupported by
// quorum queues is present.
func (args XArguments) HasQuorumQueueIncompatibleKeys() bool {
	return args.ContainsAnyKeysOf(QuorumQueueIncompatibleXArgumentKeys)
}

// WithoutKeys returns a copy with the given keys removed.
func (args XArguments) WithoutKeys(keys []string) XArguments {
	copied := make(XArguments, len(args))

	for k, v := range args {
		copied[k] = v
	}

	for _, k := range keys {
		delete(copied, k)
	}

	return copied
}

// WithoutCMQKeys returns a copy with all classic queue mirroring arguments
// removed.
func (args XArguments) WithoutCMQKeys() XArguments {
	return args.WithoutKeys(CMQXArgumentKeys)
}

// WithoutQuorumQueueIncompatibleKeys returns a copy with all arguments
// unsupported by quorum queues removed.
func (args XArguments) WithoutQuorumQueueIncompatibleKeys() XArguments {
	return args.WithoutKeys(QuorumQueueIncompatibleXArgumentKeys)
}

// Merge overlays the other argument map's keys onto this one.
func (args XArguments) Merge(other XArguments) {
	for k, v := range other {
		args[k] = v
	}
}

// QueueTypeArgument returns the effective queue type from the x-queue-type
// argument, defaulting to classic when the argument is absent.
func (args XArguments) QueueTypeArgument() QueueType {
	if v, ok := args[XArgumentQueueType]; ok {
		if s, ok := v.(string); ok {
			return QueueType(s)
		}
	}

	return QueueTypeClassic
}

// NameAndVirtualHost identifies an object by name in a specific virtual host.
type NameAndVirtualHost struct {
	Name        string `json:"name"  yaml:"name"`
	VirtualHost string `json:"vhost" yaml:"vhost"`
}

// User represents a user in the internal data store.
type User struct {
	Name         string  `json:"name"          yaml:"name"`
	Tags         TagList `json:"tags"          yaml:"tags"`
	PasswordHash string  `json:"password_hash" yaml:"password_hash"`
}

// CurrentUser represents the user this client authenticated as.
type CurrentUser struct {
	Name string  `json:"name" yaml:"name"`
	Tags TagList `json:"tags" yaml:"tags"`
}

// EnforcedLimits is a map of limit names to their enforced values.
type EnforcedLimits map[string]interface{}

// UserLimits represents the limits enforced for a user, such as the maximum
// number of concurrent connections or channels.
type UserLimits struct {
	Username string         `json:"user"  yaml:"user"`
	Limits   EnforcedLimits `json:"value" yaml:"value"`
}

// VirtualHostMetadata groups the optional settings of a virtual host.
type VirtualHostMetadata struct {
	Description      *string    `json:"description,omitempty"        yaml:"description,omitempty"`
	Tags             *TagList   `json:"tags,omitempty"               yaml:"tags,omitempty"`
	DefaultQueueType *QueueType `json:"default_queue_type,omitempty" yaml:"default_queue_type,omitempty"`
}

// VirtualHost represents a virtual host.
type VirtualHost struct {
	Name             string               `json:"name"                         yaml:"name"`
	Description      *string              `json:"description,omitempty"        yaml:"description,omitempty"`
	Tags             *TagList             `json:"tags,omitempty"               yaml:"tags,omitempty"`
	DefaultQueueType *QueueType           `json:"default_queue_type,omitempty" yaml:"default_queue_type,omitempty"`
	Metadata         *VirtualHostMetadata `json:"metadata,omitempty"           yaml:"metadata,omitempty"`
}

// VirtualHostLimits represents the limits enforced in a virtual host.
type VirtualHostLimits struct {
	VirtualHost string         `json:"vhost" yaml:"vhost"`
	Limits      EnforcedLimits `json:"value" yaml:"value"`
}

// Permissions represents a user's permissions in a particular virtual host.
// The configure, write and read fields are regular expressions matched
// against object names.
type Permissions struct {
	User        string `json:"user"      yaml:"user"`
	VirtualHost string `json:"vhost"     yaml:"vhost"`
	Configure   string `json:"configure" yaml:"configure"`
	Read        string `json:"read"      yaml:"read"`
	Write       string `json:"write"     yaml:"write"`
}

// TopicPermission represents a user's permissions for a topic exchange in a
// particular virtual host.
type TopicPermission struct {
	User        string `json:"user"     yaml:"user"`
	VirtualHost string `json:"vhost"    yaml:"vhost"`
	Exchange    string `json:"exchange" yaml:"exchange"`
	Read        string `json:"read"     yaml:"read"`
	Write       string `json:"write"    yaml:"write"`
}

// OAuthConfiguration reports whether the broker advertises OAuth 2 support
// for the management API, and the relevant provider settings if so.
type OAuthConfiguration struct {
	OAuthEnabled     bool    `json:"oauth_enabled"                yaml:"oauth_enabled"`
	OAuthClientID    *string `json:"oauth_client_id,omitempty"    yaml:"oauth_client_id,omitempty"`
	OAuthProviderURL *string `json:"oauth_provider_url,omitempty" yaml:"oauth_provider_url,omitempty"`
}

// QueueInfo represents a queue or stream with its current metrics.
type QueueInfo struct {
	Name        string     `json:"name"       yaml:"name"`
	VirtualHost string     `json:"vhost"      yaml:"vhost"`
	Type        QueueType  `json:"type"       yaml:"type"`
	Durable     bool       `json:"durable"    yaml:"durable"`
	AutoDelete  bool       `json:"auto_delete" yaml:"auto_delete"`
	Exclusive   bool       `json:"exclusive"  yaml:"exclusive"`
	Arguments   XArguments `json:"arguments"  yaml:"arguments"`

	Node   string `json:"node"  yaml:"node"`
	State  string `json:"state" yaml:"state"`
	Policy string `json:"policy,omitempty" yaml:"policy,omitempty"`

	// Only quorum queues and streams report these.
	Leader  *string  `json:"leader,omitempty"  yaml:"leader,omitempty"`
	Members []string `json:"members,omitempty" yaml:"members,omitempty"`
	Online  []string `json:"online,omitempty"  yaml:"online,omitempty"`

	Memory               uint64  `json:"memory"               yaml:"memory"`
	ConsumerCount        uint32  `json:"consumers"            yaml:"consumers"`
	ConsumerUtilisation  float32 `json:"consumer_utilisation" yaml:"consumer_utilisation"`
	ExclusiveConsumerTag *string `json:"exclusive_consumer_tag,omitempty" yaml:"exclusive_consumer_tag,omitempty"`

	MessageBytes               uint64 `json:"message_bytes"                yaml:"message_bytes"`
	MessageBytesPersistent     uint64 `json:"message_bytes_persistent"     yaml:"message_bytes_persistent"`
	MessageBytesRAM            uint64 `json:"message_bytes_ram"            yaml:"message_bytes_ram"`
	MessageBytesReady          uint64 `json:"message_bytes_ready"          yaml:"message_bytes_ready"`
	MessageBytesUnacknowledged uint64 `json:"message_bytes_unacknowledged" yaml:"message_bytes_unacknowledged"`

	MessageCount               uint64 `json:"messages"                yaml:"messages"`
	OnDiskMessageCount         uint64 `json:"messages_persistent"     yaml:"messages_persistent"`
	InMemoryMessageCount       uint64 `json:"messages_ram"            yaml:"messages_ram"`
	UnacknowledgedMessageCount uint64 `json:"messages_unacknowledged" yaml:"messages_unacknowledged"`
}

// PolicyTargetType returns the policy target category this queue belongs to.
func (q *QueueInfo) PolicyTargetType() PolicyTarget {
	return q.Type.PolicyTargetType()
}

// DoesMatch reports whether the given policy applies to this queue.
func (q *QueueInfo) DoesMatch(policy *Policy) bool {
	return policy.DoesMatchObject(q.VirtualHost, q.Name, q.PolicyTargetType())
}

// IsServerNamed reports whether the queue was declared with a
// server-generated name.
func (q *QueueInfo) IsServerNamed() bool {
	return q.Name == "" || strings.HasPrefix(q.Name, "amq.")
}

// HasQueueTTLArgument reports whether the queue has an expiration
// ("x-expires") optional argument.
func (q *QueueInfo) HasQueueTTLArgument() bool {
	_, ok := q.Arguments[XArgumentExpires]

	return ok
}

// DetailedQueueInfo extends QueueInfo with the extra metrics reported by
// the detailed queues endpoint, such as garbage collection settings and
// I/O statistics.
type DetailedQueueInfo struct {
	QueueInfo `yaml:",inline"`

	GarbageCollection *GarbageCollectionDetails `json:"garbage_collection,omitempty" yaml:"garbage_collection,omitempty"`

	IOBatchSize        *uint32  `json:"io_batch_size,omitempty"         yaml:"io_batch_size,omitempty"`
	IOBatchSizeAvg     *float64 `json:"io_batch_size_avg,omitempty"     yaml:"io_batch_size_avg,omitempty"`
	IOBatchSizeDetails *Rate    `json:"io_batch_size_details,omitempty" yaml:"io_batch_size_details,omitempty"`

	IOReadBytes        *uint64  `json:"io_read_bytes,omitempty"         yaml:"io_read_bytes,omitempty"`
	IOReadBytesDetails *Rate    `json:"io_read_bytes_details,omitempty" yaml:"io_read_bytes_details,omitempty"`
	IOReadCount        *uint64  `json:"io_read_count,omitempty"         yaml:"io_read_count,omitempty"`
	IOReadCountDetails *Rate    `json:"io_read_count_details,omitempty" yaml:"io_read_count_details,omitempty"`
	IOReadAvgTime      *float64 `json:"io_read_avg_time,omitempty"      yaml:"io_read_avg_time,omitempty"`

	IOWriteBytes        *uint64  `json:"io_write_bytes,omitempty"         yaml:"io_write_bytes,omitempty"`
	IOWriteBytesDetails *Rate    `json:"io_write_bytes_details,omitempty" yaml:"io_write_bytes_details,omitempty"`
	IOWriteCount        *uint64  `json:"io_write_count,omitempty"         yaml:"io_write_count,omitempty"`
	IOWriteCountDetails *Rate    `json:"io_write_count_details,omitempty" yaml:"io_write_count_details,omitempty"`
	IOWriteAvgTime      *float64 `json:"io_write_avg_time,omitempty"      yaml:"io_write_avg_time,omitempty"`

	IOSeekCount   *uint64  `json:"io_seek_count,omitempty"    yaml:"io_seek_count,omitempty"`
	IOSeekAvgTime *float64 `json:"io_seek_avg_time,omitempty" yaml:"io_seek_avg_time,omitempty"`
	IOSyncCount   *uint64  `json:"io_sync_count,omitempty"    yaml:"io_sync_count,omitempty"`
	IOSyncAvgTime *float64 `json:"io_sync_avg_time,omitempty" yaml:"io_sync_avg_time,omitempty"`

	IOReopenCount           *uint64  `json:"io_reopen_count,omitempty"                      yaml:"io_reopen_count,omitempty"`
	IOFileHandleOpenAvgTime *float64 `json:"io_file_handle_open_attempt_avg_time,omitempty" yaml:"io_file_handle_open_attempt_avg_time,omitempty"`
}

// StreamPublisher represents a publisher on a stream.
type StreamPublisher struct {
	ConnectionDetails ConnectionDetails  `json:"connection_details" yaml:"connection_details"`
	Queue             NameAndVirtualHost `json:"queue"              yaml:"queue"`
	Reference         string             `json:"reference"          yaml:"reference"`
	PublisherID       uint32             `json:"publisher_id"       yaml:"publisher_id"`
	Published         uint64             `json:"published"          yaml:"published"`
	Confirmed         uint64             `json:"confirmed"          yaml:"confirmed"`
	Errored           uint64             `json:"errored"            yaml:"errored"`
}

// StreamConsumer represents a consumer on a stream.
type StreamConsumer struct {
	ConnectionDetails ConnectionDetails  `json:"connection_details" yaml:"connection_details"`
	Queue             NameAndVirtualHost `json:"queue"              yaml:"queue"`
	SubscriptionID    uint32             `json:"subscription_id"    yaml:"subscription_id"`
	Credits           uint64             `json:"credits"            yaml:"credits"`
	Consumed          uint64             `json:"consumed"           yaml:"consumed"`
	OffsetLag         uint64             `json:"offset_lag"         yaml:"offset_lag"`
	Offset            uint64             `json:"offset"             yaml:"offset"`
	Properties        XArguments         `json:"properties"         yaml:"properties"`
}

// ClientCapabilities lists the protocol extensions a client advertised at
// connection time.
type ClientCapabilities struct {
	AuthenticationFailureClose bool `json:"authentication_failure_close" yaml:"authentication_failure_close"`
	BasicNack                  bool `json:"basic.nack"                   yaml:"basic.nack"`
	ConnectionBlocked          bool `json:"connection.blocked"           yaml:"connection.blocked"`
	ConsumerCancelNotify       bool `json:"consumer_cancel_notify"       yaml:"consumer_cancel_notify"`
	ExchangeToExchangeBindings bool `json:"exchange_exchange_bindings"   yaml:"exchange_exchange_bindings"`
	PublisherConfirms          bool `json:"publisher_confirms"           yaml:"publisher_confirms"`
}

// ClientProperties is the client-provided connection metadata.
type ClientProperties struct {
	ConnectionName string              `json:"connection_name" yaml:"connection_name"`
	Platform       string              `json:"platform"        yaml:"platform"`
	Product        string              `json:"product"         yaml:"product"`
	Version        string              `json:"version"         yaml:"version"`
	Capabilities   *ClientCapabilities `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
}

// Connection represents a client connection.
type Connection struct {
	// Name uniquely identifies this connection. Use it to close the connection.
	Name string `json:"name" yaml:"name"`
	// Node is the cluster node the client is connected to.
	Node string `json:"node" yaml:"node"`
	// State is reported for network connections. Direct Erlang client
	// connections do not have one.
	State    *string `json:"state,omitempty" yaml:"state,omitempty"`
	Protocol string  `json:"protocol"        yaml:"protocol"`
	Username string  `json:"user"            yaml:"user"`
	// ConnectedAt is a timestamp in milliseconds since the Unix epoch.
	ConnectedAt      uint64           `json:"connected_at"     yaml:"connected_at"`
	ServerHostname   *string          `json:"host,omitempty"   yaml:"host,omitempty"`
	ServerPort       *uint32          `json:"port,omitempty"   yaml:"port,omitempty"`
	ClientHostname   *string          `json:"peer_host,omitempty" yaml:"peer_host,omitempty"`
	ClientPort       *uint32          `json:"peer_port,omitempty" yaml:"peer_port,omitempty"`
	ChannelMax       *uint16          `json:"channel_max,omitempty" yaml:"channel_max,omitempty"`
	ChannelCount     uint16           `json:"channels"         yaml:"channels"`
	ClientProperties ClientProperties `json:"client_properties" yaml:"client_properties"`
}

// UserConnection is a connection entry scoped to a specific user.
type UserConnection struct {
	Name        string `json:"name"  yaml:"name"`
	Node        string `json:"node"  yaml:"node"`
	Username    string `json:"user"  yaml:"user"`
	VirtualHost string `json:"vhost" yaml:"vhost"`
}

// ConnectionDetails is an abridged connection identifier embedded in other
// objects such as channels and stream publishers.
type ConnectionDetails struct {
	Name           string `json:"name"      yaml:"name"`
	ClientHostname string `json:"peer_host" yaml:"peer_host"`
	ClientPort     uint32 `json:"peer_port" yaml:"peer_port"`
}

// Channel represents an AMQP 0-9-1 channel.
type Channel struct {
	ID                          uint16            `json:"number"  yaml:"number"`
	Name                        string            `json:"name"    yaml:"name"`
	ConnectionDetails           ConnectionDetails `json:"connection_details" yaml:"connection_details"`
	VirtualHost                 string            `json:"vhost"   yaml:"vhost"`
	State                       ChannelState      `json:"state"   yaml:"state"`
	ConsumerCount               uint32            `json:"consumer_count" yaml:"consumer_count"`
	HasPublisherConfirmsEnabled bool              `json:"confirm" yaml:"confirm"`
	PrefetchCount               uint32            `json:"prefetch_count" yaml:"prefetch_count"`
	MessagesUnacknowledged      uint32            `json:"messages_unacknowledged" yaml:"messages_unacknowledged"`
	MessagesUnconfirmed         uint32            `json:"messages_unconfirmed"    yaml:"messages_unconfirmed"`
}

// ChannelDetails is an abridged channel identifier embedded in other
// objects such as consumers.
type ChannelDetails struct {
	ID             uint16 `json:"number"          yaml:"number"`
	Name           string `json:"name"            yaml:"name"`
	ConnectionName string `json:"connection_name" yaml:"connection_name"`
	Node           string `json:"node"            yaml:"node"`
	ClientHostname string `json:"peer_host"       yaml:"peer_host"`
	ClientPort     uint32 `json:"peer_port"       yaml:"peer_port"`
	Username       string `json:"user"            yaml:"user"`
}

// Consumer represents a consumer on a queue or stream.
type Consumer struct {
	ConsumerTag   string     `json:"consumer_tag"   yaml:"consumer_tag"`
	Active        bool       `json:"active"         yaml:"active"`
	ManualAck     bool       `json:"ack_required"   yaml:"ack_required"`
	PrefetchCount uint32     `json:"prefetch_count" yaml:"prefetch_count"`
	Exclusive     bool       `json:"exclusive"      yaml:"exclusive"`
	Arguments     XArguments `json:"arguments"      yaml:"arguments"`
	// DeliveryAckTimeout is the consumer timeout in milliseconds.
	DeliveryAckTimeout uint64             `json:"consumer_timeout" yaml:"consumer_timeout"`
	Queue              NameAndVirtualHost `json:"queue"            yaml:"queue"`
	// ChannelDetails is nil when the API returns an empty object in its place.
	ChannelDetails *ChannelDetails `json:"channel_details,omitempty" yaml:"channel_details,omitempty"`
}

// UnmarshalJSON tolerates the empty object the API reports in place of
// channel details for consumers whose channel is gone.
func (c *Consumer) UnmarshalJSON(data []byte) error {
	type alias Consumer

	aux := struct {
		ChannelDetails json.RawMessage `json:"channel_details"`
		*alias
	}{alias: (*alias)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	details, err := decodeOptionalObject[ChannelDetails](aux.ChannelDetails)
	if err != nil {
		return err
	}

	c.ChannelDetails = details

	return nil
}

// decodeOptionalObject decodes a JSON object into T, mapping null, absent
// and empty objects to nil.
func decodeOptionalObject[T any](data json.RawMessage) (*T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("{}")) {
		return nil, nil
	}

	var value T
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return nil, err
	}

	return &value, nil
}

// MessageProperties holds the properties of a published or fetched message.
type MessageProperties map[string]interface{}

// UnmarshalJSON tolerates the empty array the API reports in place of an
// empty property map.
func (p *MessageProperties) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		*p = MessageProperties{}

		return nil
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}

	*p = raw

	return nil
}

// GetMessage is a message fetched from a queue via polling.
//
// Polling is strictly a troubleshooting mechanism. Use a messaging protocol
// client to consume messages in applications.
type GetMessage struct {
	PayloadBytes    uint32            `json:"payload_bytes"    yaml:"payload_bytes"`
	Redelivered     bool              `json:"redelivered"      yaml:"redelivered"`
	Exchange        string            `json:"exchange"         yaml:"exchange"`
	RoutingKey      string            `json:"routing_key"      yaml:"routing_key"`
	MessageCount    uint32            `json:"message_count"    yaml:"message_count"`
	Properties      MessageProperties `json:"properties"       yaml:"properties"`
	Payload         string            `json:"payload"          yaml:"payload"`
	PayloadEncoding string            `json:"payload_encoding" yaml:"payload_encoding"`
}

// MessageRouted is the outcome of publishing a message over the HTTP API:
// whether the broker could route it to at least one queue.
type MessageRouted struct {
	Routed bool `json:"routed" yaml:"routed"`
}

// FeatureFlag represents a feature flag and its current state.
type FeatureFlag struct {
	Name        string               `json:"name"        yaml:"name"`
	State       FeatureFlagState     `json:"state"       yaml:"state"`
	Description string               `json:"desc"        yaml:"desc"`
	DocURL      string               `json:"doc_url"     yaml:"doc_url"`
	Stability   FeatureFlagStability `json:"stability"   yaml:"stability"`
	ProvidedBy  string               `json:"provided_by" yaml:"provided_by"`
}

// DeprecatedFeature represents a deprecated feature and the deprecation
// phase it is currently in.
type DeprecatedFeature struct {
	Name             string           `json:"name"              yaml:"name"`
	Description      string           `json:"desc"              yaml:"desc"`
	DeprecationPhase DeprecationPhase `json:"deprecation_phase" yaml:"deprecation_phase"`
	DocURL           string           `json:"doc_url,omitempty" yaml:"doc_url,omitempty"`
	ProvidedBy       string           `json:"provided_by,omitempty" yaml:"provided_by,omitempty"`
}

// ExchangeInfo represents an exchange.
type ExchangeInfo struct {
	Name        string     `json:"name"        yaml:"name"`
	VirtualHost string     `json:"vhost"       yaml:"vhost"`
	Type        string     `json:"type"        yaml:"type"`
	Durable     bool       `json:"durable"     yaml:"durable"`
	AutoDelete  bool       `json:"auto_delete" yaml:"auto_delete"`
	Arguments   XArguments `json:"arguments"   yaml:"arguments"`
}

// DoesMatch reports whether the given policy applies to this exchange.
func (x *ExchangeInfo) DoesMatch(policy *Policy) bool {
	return policy.DoesMatchObject(x.VirtualHost, x.Name, PolicyTargetExchanges)
}

// BindingInfo represents a binding between an exchange and a queue, or
// between two exchanges.
type BindingInfo struct {
	VirtualHost     string                 `json:"vhost"            yaml:"vhost"`
	Source          string                 `json:"source"           yaml:"source"`
	Destination     string                 `json:"destination"      yaml:"destination"`
	DestinationType BindingDestinationType `json:"destination_type" yaml:"destination_type"`
	RoutingKey      string                 `json:"routing_key"      yaml:"routing_key"`
	Arguments       XArguments             `json:"arguments"        yaml:"arguments"`
	// PropertiesKey identifies this binding among all bindings between the
	// same source and destination. Needed to delete a specific binding.
	PropertiesKey *string `json:"properties_key,omitempty" yaml:"properties_key,omitempty"`
}
