package rabbitmq

// XArgumentsBuilder accumulates optional queue arguments ("x-arguments")
// for queue declaration.
type XArgumentsBuilder struct {
	args XArguments
}

// NewXArgumentsBuilder returns an empty optional argument builder.
func NewXArgumentsBuilder() *XArgumentsBuilder {
	return &XArgumentsBuilder{args: XArguments{}}
}

// MessageTTL sets the x-message-ttl argument, in milliseconds.
func (b *XArgumentsBuilder) MessageTTL(millis uint64) *XArgumentsBuilder {
	return b.Custom(XArgumentMessageTTL, millis)
}

// QueueTTL sets the x-expires argument, in milliseconds.
func (b *XArgumentsBuilder) QueueTTL(millis uint64) *XArgumentsBuilder {
	return b.Custom(XArgumentExpires, millis)
}

// MaxLength sets the x-max-length argument.
func (b *XArgumentsBuilder) MaxLength(maxLength uint64) *XArgumentsBuilder {
	return b.Custom(XArgumentMaxLength, maxLength)
}

// MaxLengthBytes sets the x-max-length-bytes argument.
func (b *XArgumentsBuilder) MaxLengthBytes(bytes uint64) *XArgumentsBuilder {
	return b.Custom(XArgumentMaxLengthBytes, bytes)
}

// DeadLetterExchange sets the x-dead-letter-exchange argument.
func (b *XArgumentsBuilder) DeadLetterExchange(exchange string) *XArgumentsBuilder {
	return b.Custom(XArgumentDeadLetterExchange, exchange)
}

// DeadLetterRoutingKey sets the x-dead-letter-routing-key argument.
func (b *XArgumentsBuilder) DeadLetterRoutingKey(routingKey string) *XArgumentsBuilder {
	return b.Custom(XArgumentDeadLetterRoutingKey, routingKey)
}

// OverflowDropHead makes the queue drop the oldest messages when full.
func (b *XArgumentsBuilder) OverflowDropHead() *XArgumentsBuilder {
	return b.Custom(XArgumentOverflow, string(OverflowDropHead))
}

// OverflowRejectPublish makes the queue reject new publishes when full.
func (b *XArgumentsBuilder) OverflowRejectPublish() *XArgumentsBuilder {
	return b.Custom(XArgumentOverflow, string(OverflowRejectPublish))
}

// OverflowRejectPublishDlx makes the queue reject new publishes when full
// and dead-letter them.
func (b *XArgumentsBuilder) OverflowRejectPublishDlx() *XArgumentsBuilder {
	return b.Custom(XArgumentOverflow, string(OverflowRejectPublishDlx))
}

// MaxPriority sets the x-max-priority argument of classic queues.
func (b *XArgumentsBuilder) MaxPriority(priority uint8) *XArgumentsBuilder {
	return b.Custom(XArgumentMaxPriority, priority)
}

// QuorumInitialGroupSize sets the x-quorum-initial-group-size argument.
func (b *XArgumentsBuilder) QuorumInitialGroupSize(size uint32) *XArgumentsBuilder {
	return b.Custom(XArgumentQuorumInitialGroupSize, size)
}

// DeliveryLimit sets the x-delivery-limit argument of quorum queues.
func (b *XArgumentsBuilder) DeliveryLimit(limit uint32) *XArgumentsBuilder {
	return b.Custom(XArgumentDeliveryLimit, limit)
}

// SingleActiveConsumer sets the x-single-active-consumer argument.
func (b *XArgumentsBuilder) SingleActiveConsumer(enabled bool) *XArgumentsBuilder {
	return b.Custom(XArgumentSingleActiveConsumer, enabled)
}

// Custom sets an arbitrary argument.
func (b *XArgumentsBuilder) Custom(key string, value interface{}) *XArgumentsBuilder {
	b.args[key] = value

	return b
}

// Build returns the accumulated arguments, nil when none were set.
func (b *XArgumentsBuilder) Build() XArguments {
	if len(b.args) == 0 {
		return nil
	}

	return b.args
}

// PolicyDefinitionBuilder accumulates policy definition keys. Unlike
// optional queue arguments, policy definition keys carry no "x-" prefix.
type PolicyDefinitionBuilder struct {
	definition PolicyDefinition
}

// NewPolicyDefinitionBuilder returns an empty policy definition builder.
func NewPolicyDefinitionBuilder() *PolicyDefinitionBuilder {
	return &PolicyDefinitionBuilder{definition: PolicyDefinition{}}
}

// MessageTTL sets the message-ttl key, in milliseconds.
func (b *PolicyDefinitionBuilder) MessageTTL(millis uint64) *PolicyDefinitionBuilder {
	return b.Custom("message-ttl", millis)
}

// Expires sets the expires key, the queue TTL in milliseconds.
func (b *PolicyDefinitionBuilder) Expires(millis uint64) *PolicyDefinitionBuilder {
	return b.Custom("expires", millis)
}

// MaxLength sets the max-length key.
func (b *PolicyDefinitionBuilder) MaxLength(maxLength uint64) *PolicyDefinitionBuilder {
	return b.Custom("max-length", maxLength)
}

// MaxLengthBytes sets the max-length-bytes key.
func (b *PolicyDefinitionBuilder) MaxLengthBytes(bytes uint64) *PolicyDefinitionBuilder {
	return b.Custom("max-length-bytes", bytes)
}

// OverflowDropHead makes matching queues drop the oldest messages when
// full.
func (b *PolicyDefinitionBuilder) OverflowDropHead() *PolicyDefinitionBuilder {
	return b.Custom("overflow", string(OverflowDropHead))
}

// OverflowRejectPublish makes matching queues reject new publishes when
// full.
func (b *PolicyDefinitionBuilder) OverflowRejectPublish() *PolicyDefinitionBuilder {
	return b.Custom("overflow", string(OverflowRejectPublish))
}

// OverflowRejectPublishDlx makes matching queues reject new publishes
// when full and dead-letter them.
func (b *PolicyDefinitionBuilder) OverflowRejectPublishDlx() *PolicyDefinitionBuilder {
	return b.Custom("overflow", string(OverflowRejectPublishDlx))
}

// DeadLetterExchange sets the dead-letter-exchange key.
func (b *PolicyDefinitionBuilder) DeadLetterExchange(exchange string) *PolicyDefinitionBuilder {
	return b.Custom("dead-letter-exchange", exchange)
}

// DeadLetterRoutingKey sets the dead-letter-routing-key key.
func (b *PolicyDefinitionBuilder) DeadLetterRoutingKey(routingKey string) *PolicyDefinitionBuilder {
	return b.Custom("dead-letter-routing-key", routingKey)
}

// DeliveryLimit sets the delivery-limit key of quorum queues.
func (b *PolicyDefinitionBuilder) DeliveryLimit(limit uint32) *PolicyDefinitionBuilder {
	return b.Custom("delivery-limit", limit)
}

// QuorumGroupSize sets the target-group-size key of quorum queues.
func (b *PolicyDefinitionBuilder) QuorumGroupSize(size uint32) *PolicyDefinitionBuilder {
	return b.Custom("target-group-size", size)
}

// QuorumInitialGroupSize sets the initial-cluster-size key of quorum
// queues.
func (b *PolicyDefinitionBuilder) QuorumInitialGroupSize(size uint32) *PolicyDefinitionBuilder {
	return b.Custom("initial-cluster-size", size)
}

// MaxAge sets the max-age key of streams, in RabbitMQ duration format,
// for example "1D" or "12h".
func (b *PolicyDefinitionBuilder) MaxAge(age string) *PolicyDefinitionBuilder {
	return b.Custom("max-age", age)
}

// StreamMaxSegmentSizeBytes sets the stream-max-segment-size-bytes key.
func (b *PolicyDefinitionBuilder) StreamMaxSegmentSizeBytes(bytes uint64) *PolicyDefinitionBuilder {
	return b.Custom("stream-max-segment-size-bytes", bytes)
}

// FederationUpstream sets the federation-upstream key, federating the
// matching objects with a single named upstream.
func (b *PolicyDefinitionBuilder) FederationUpstream(name string) *PolicyDefinitionBuilder {
	return b.Custom("federation-upstream", name)
}

// FederationUpstreamSet sets the federation-upstream-set key, usually to
// "all".
func (b *PolicyDefinitionBuilder) FederationUpstreamSet(name string) *PolicyDefinitionBuilder {
	return b.Custom("federation-upstream-set", name)
}

// Custom sets an arbitrary definition key.
func (b *PolicyDefinitionBuilder) Custom(key string, value interface{}) *PolicyDefinitionBuilder {
	b.definition[key] = value

	return b
}

// Build returns the accumulated definition.
func (b *PolicyDefinitionBuilder) Build() PolicyDefinition {
	return b.definition
}
