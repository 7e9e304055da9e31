package rabbitmq

// QueueType identifies the type of a queue or stream. Values other than the
// listed constants are preserved as-is, so queue types introduced by plugins
// or future broker versions decode losslessly.
type QueueType string

// Queue types supported by modern RabbitMQ distributions.
const (
	QueueTypeClassic QueueType = "classic"
	QueueTypeQuorum  QueueType = "quorum"
	QueueTypeStream  QueueType = "stream"
	QueueTypeDelayed QueueType = "delayed"
)

// String implements fmt.Stringer.
func (t QueueType) String() string {
	return string(t)
}

// PolicyTargetType returns the policy target category objects of this queue
// type belong to. Types without a dedicated category fall back to "queues".
func (t QueueType) PolicyTargetType() PolicyTarget {
	switch t {
	case QueueTypeClassic:
		return PolicyTargetClassicQueues
	case QueueTypeQuorum:
		return PolicyTargetQuorumQueues
	case QueueTypeStream:
		return PolicyTargetStreams
	default:
		return PolicyTargetQueues
	}
}

// OverflowBehavior controls what happens when a queue reaches its maximum
// length, the "x-overflow" optional argument.
type OverflowBehavior string

// Overflow behaviors.
const (
	OverflowDropHead         OverflowBehavior = "drop-head"
	OverflowRejectPublish    OverflowBehavior = "reject-publish"
	OverflowRejectPublishDlx OverflowBehavior = "reject-publish-dlx"
)

// String implements fmt.Stringer.
func (b OverflowBehavior) String() string {
	return string(b)
}

// NormalizedOverflowBehavior maps a raw value to an overflow behavior,
// falling back to "drop-head", the broker default.
func NormalizedOverflowBehavior(value string) OverflowBehavior {
	switch OverflowBehavior(value) {
	case OverflowRejectPublish:
		return OverflowRejectPublish
	case OverflowRejectPublishDlx:
		return OverflowRejectPublishDlx
	default:
		return OverflowDropHead
	}
}

// DeadLetterStrategy is the "x-dead-letter-strategy" optional argument of
// quorum queues.
type DeadLetterStrategy string

// Dead letter strategies.
const (
	DeadLetterStrategyAtMostOnce  DeadLetterStrategy = "at-most-once"
	DeadLetterStrategyAtLeastOnce DeadLetterStrategy = "at-least-once"
)

// String implements fmt.Stringer.
func (s DeadLetterStrategy) String() string {
	return string(s)
}

// QueueLeaderLocator controls the node a new queue's leader replica will be
// placed on, the "x-queue-leader-locator" optional argument.
type QueueLeaderLocator string

// Queue leader locators.
const (
	QueueLeaderLocatorClientLocal QueueLeaderLocator = "client-local"
	QueueLeaderLocatorBalanced    QueueLeaderLocator = "balanced"
)

// String implements fmt.Stringer.
func (l QueueLeaderLocator) String() string {
	return string(l)
}

// ExchangeType identifies the type of an exchange. Most constants cover the
// types that ship with modern RabbitMQ distributions; types provided by 3rd
// party plugins are preserved as-is.
type ExchangeType string

// Exchange types.
const (
	ExchangeTypeFanout               ExchangeType = "fanout"
	ExchangeTypeTopic                ExchangeType = "topic"
	ExchangeTypeDirect               ExchangeType = "direct"
	ExchangeTypeHeaders              ExchangeType = "headers"
	ExchangeTypeConsistentHashing    ExchangeType = "x-consistent-hash"
	ExchangeTypeModulusHash          ExchangeType = "x-modulus-hash"
	ExchangeTypeRandom               ExchangeType = "x-random"
	ExchangeTypeLocalRandom          ExchangeType = "x-local-random"
	ExchangeTypeJmsTopic             ExchangeType = "x-jms-topic"
	ExchangeTypeRecentHistory        ExchangeType = "x-recent-history"
	ExchangeTypeDelayedMessage       ExchangeType = "x-delayed-message"
	ExchangeTypeMessageDeduplication ExchangeType = "x-message-deduplication"
)

// String implements fmt.Stringer.
func (t ExchangeType) String() string {
	return string(t)
}

// PolicyTarget is the kind of object a policy applies to, the "apply-to"
// field of a policy definition.
type PolicyTarget string

// Policy targets.
const (
	PolicyTargetQueues        PolicyTarget = "queues"
	PolicyTargetClassicQueues PolicyTarget = "classic_queues"
	PolicyTargetQuorumQueues  PolicyTarget = "quorum_queues"
	PolicyTargetStreams       PolicyTarget = "streams"
	PolicyTargetExchanges     PolicyTarget = "exchanges"
	PolicyTargetAll           PolicyTarget = "all"
)

// String implements fmt.Stringer.
func (t PolicyTarget) String() string {
	return string(t)
}

// Matches reports whether a policy with this target applies to objects of
// the other target kind. "all" matches everything, "queues" matches every
// queue kind, the remaining targets only match themselves.
func (t PolicyTarget) Matches(other PolicyTarget) bool {
	switch {
	case t == other:
		return true
	case t == PolicyTargetAll || other == PolicyTargetAll:
		return true
	case t == PolicyTargetQueues:
		return other == PolicyTargetClassicQueues ||
			other == PolicyTargetQuorumQueues ||
			other == PolicyTargetStreams
	default:
		return false
	}
}

// BindingDestinationType is the kind of object a binding routes to: a queue
// or, for exchange-to-exchange bindings, another exchange.
type BindingDestinationType string

// Binding destination types.
const (
	BindingDestinationQueue    BindingDestinationType = "queue"
	BindingDestinationExchange BindingDestinationType = "exchange"
)

// String implements fmt.Stringer.
func (t BindingDestinationType) String() string {
	return string(t)
}

// PathAbbreviation returns the one-letter form used in binding-specific
// API paths: "q" for queues, "e" for exchanges.
func (t BindingDestinationType) PathAbbreviation() string {
	if t == BindingDestinationExchange {
		return "e"
	}

	return "q"
}

// BindingVertex is the position of an exchange in a binding, used when
// listing the bindings of an exchange.
type BindingVertex string

// Binding vertices.
const (
	BindingVertexSource      BindingVertex = "source"
	BindingVertexDestination BindingVertex = "destination"
)

// String implements fmt.Stringer.
func (v BindingVertex) String() string {
	return string(v)
}

// VirtualHostLimitTarget is the kind of a virtual host limit.
type VirtualHostLimitTarget string

// Virtual host limit kinds.
const (
	VirtualHostLimitMaxConnections VirtualHostLimitTarget = "max-connections"
	VirtualHostLimitMaxQueues      VirtualHostLimitTarget = "max-queues"
)

// String implements fmt.Stringer.
func (t VirtualHostLimitTarget) String() string {
	return string(t)
}

// UserLimitTarget is the kind of a per-user limit.
type UserLimitTarget string

// User limit kinds.
const (
	UserLimitMaxConnections UserLimitTarget = "max-connections"
	UserLimitMaxChannels    UserLimitTarget = "max-channels"
)

// String implements fmt.Stringer.
func (t UserLimitTarget) String() string {
	return string(t)
}

// MessageTransferAcknowledgementMode controls when a shovel or federation
// link considers a transferred message to be safely handled.
type MessageTransferAcknowledgementMode string

// Acknowledgement modes.
const (
	// TransferAcknowledgementImmediate forwards messages without acknowledgements.
	TransferAcknowledgementImmediate MessageTransferAcknowledgementMode = "no-ack"
	// TransferAcknowledgementWhenPublished acknowledges after publishing downstream.
	TransferAcknowledgementWhenPublished MessageTransferAcknowledgementMode = "on-publish"
	// TransferAcknowledgementWhenConfirmed acknowledges after a publisher confirm.
	// This is the safest mode and the default.
	TransferAcknowledgementWhenConfirmed MessageTransferAcknowledgementMode = "on-confirm"
)

// String implements fmt.Stringer.
func (m MessageTransferAcknowledgementMode) String() string {
	return string(m)
}

// NormalizedAcknowledgementMode maps unrecognized wire values to the
// default acknowledgement mode, on-confirm.
func NormalizedAcknowledgementMode(value string) MessageTransferAcknowledgementMode {
	switch MessageTransferAcknowledgementMode(value) {
	case TransferAcknowledgementImmediate, TransferAcknowledgementWhenPublished, TransferAcknowledgementWhenConfirmed:
		return MessageTransferAcknowledgementMode(value)
	default:
		return TransferAcknowledgementWhenConfirmed
	}
}

// MessagingProtocol identifies a protocol used by a shovel endpoint.
type MessagingProtocol string

// Messaging protocols.
const (
	MessagingProtocolAmqp091 MessagingProtocol = "amqp091"
	MessagingProtocolAmqp10  MessagingProtocol = "amqp10"
	MessagingProtocolLocal   MessagingProtocol = "local"
)

// String implements fmt.Stringer.
func (p MessagingProtocol) String() string {
	return string(p)
}

// ChannelUseMode controls how many channels a federation link uses.
type ChannelUseMode string

// Channel use modes.
const (
	ChannelUseModeSingle   ChannelUseMode = "single"
	ChannelUseModeMultiple ChannelUseMode = "multiple"
)

// NormalizedChannelUseMode maps unrecognized wire values to the default,
// multiple.
func NormalizedChannelUseMode(value string) ChannelUseMode {
	if ChannelUseMode(value) == ChannelUseModeSingle {
		return ChannelUseModeSingle
	}

	return ChannelUseModeMultiple
}

// FederationResourceCleanupMode controls whether a federation link cleans up
// the resources it declared when it stops.
type FederationResourceCleanupMode string

// Federation resource cleanup modes.
const (
	FederationCleanupModeDefault FederationResourceCleanupMode = "default"
	FederationCleanupModeNever   FederationResourceCleanupMode = "never"
)

// NormalizedFederationCleanupMode maps unrecognized wire values to the
// default cleanup mode.
func NormalizedFederationCleanupMode(value string) FederationResourceCleanupMode {
	if FederationResourceCleanupMode(value) == FederationCleanupModeNever {
		return FederationCleanupModeNever
	}

	return FederationCleanupModeDefault
}

// FederationType distinguishes queue federation links from exchange
// federation links.
type FederationType string

// Federation link types.
const (
	FederationTypeExchange FederationType = "exchange"
	FederationTypeQueue    FederationType = "queue"
)

// ShovelType distinguishes dynamic shovels, defined via runtime parameters,
// from static ones defined in the broker configuration file.
type ShovelType string

// Shovel types.
const (
	ShovelTypeDynamic ShovelType = "dynamic"
	ShovelTypeStatic  ShovelType = "static"
)

// ShovelState is the reported state of a shovel.
type ShovelState string

// Shovel states.
const (
	ShovelStateStarting   ShovelState = "starting"
	ShovelStateRunning    ShovelState = "running"
	ShovelStateTerminated ShovelState = "terminated"
	ShovelStateUnknown    ShovelState = "unknown"
)

// ShovelPublishingState is the reported publishing state of a shovel.
type ShovelPublishingState string

// Shovel publishing states.
const (
	ShovelPublishingStateRunning ShovelPublishingState = "running"
	ShovelPublishingStateBlocked ShovelPublishingState = "blocked"
	ShovelPublishingStateUnknown ShovelPublishingState = "unknown"
)

// ChannelState is the reported state of an AMQP 0-9-1 channel. Values other
// than the listed constants are preserved as-is.
type ChannelState string

// Channel states.
const (
	ChannelStateStarting ChannelState = "starting"
	ChannelStateRunning  ChannelState = "running"
	ChannelStateClosing  ChannelState = "closing"
)

// FeatureFlagState is the reported state of a feature flag.
type FeatureFlagState string

// Feature flag states.
const (
	FeatureFlagStateEnabled       FeatureFlagState = "enabled"
	FeatureFlagStateDisabled      FeatureFlagState = "disabled"
	FeatureFlagStateStateChanging FeatureFlagState = "state_changing"
	FeatureFlagStateUnavailable   FeatureFlagState = "unavailable"
)

// FeatureFlagStability is the stability classification of a feature flag.
type FeatureFlagStability string

// Feature flag stability levels.
const (
	FeatureFlagStabilityRequired     FeatureFlagStability = "required"
	FeatureFlagStabilityStable       FeatureFlagStability = "stable"
	FeatureFlagStabilityExperimental FeatureFlagStability = "experimental"
)

// DeprecationPhase is the phase a deprecated feature is currently in.
// Values other than the listed constants are preserved as-is.
type DeprecationPhase string

// Deprecation phases.
const (
	DeprecationPhasePermittedByDefault DeprecationPhase = "permitted_by_default"
	DeprecationPhaseDeniedByDefault    DeprecationPhase = "denied_by_default"
	DeprecationPhaseDisconnected       DeprecationPhase = "disconnected"
	DeprecationPhaseRemoved            DeprecationPhase = "removed"
	DeprecationPhaseUndefined          DeprecationPhase = "undefined"
)
