package rabbitmq

// VirtualHostParams are the properties of a virtual host to be created or
// updated.
type VirtualHostParams struct {
	Name             string    `json:"name"                         yaml:"name"`
	Description      string    `json:"description,omitempty"        yaml:"description,omitempty"`
	Tags             []string  `json:"tags,omitempty"               yaml:"tags,omitempty"`
	DefaultQueueType QueueType `json:"default_queue_type,omitempty" yaml:"default_queue_type,omitempty"`
	Tracing          bool      `json:"tracing"                      yaml:"tracing"`
}

// NewVirtualHostParams returns minimal virtual host parameters with just a
// name.
func NewVirtualHostParams(name string) *VirtualHostParams {
	return &VirtualHostParams{Name: name}
}

// WithDescription sets the description.
func (p *VirtualHostParams) WithDescription(description string) *VirtualHostParams {
	p.Description = description

	return p
}

// WithTags sets the tags.
func (p *VirtualHostParams) WithTags(tags ...string) *VirtualHostParams {
	p.Tags = tags

	return p
}

// WithDefaultQueueType sets the default queue type for new queues in the
// virtual host.
func (p *VirtualHostParams) WithDefaultQueueType(queueType QueueType) *VirtualHostParams {
	p.DefaultQueueType = queueType

	return p
}

// WithTracing enables message tracing.
func (p *VirtualHostParams) WithTracing() *VirtualHostParams {
	p.Tracing = true

	return p
}

// AsParams converts a virtual host response back into declaration
// parameters, for example to re-create the virtual host elsewhere. Tracing
// is an inherently transient setting and is not carried over.
func (v *VirtualHost) AsParams() *VirtualHostParams {
	params := &VirtualHostParams{Name: v.Name}

	if v.Description != nil {
		params.Description = *v.Description
	}

	if v.Tags != nil {
		params.Tags = *v.Tags
	}

	if v.DefaultQueueType != nil {
		params.DefaultQueueType = *v.DefaultQueueType
	}

	return params
}

// UserParams are the properties of a user to be created or updated.
//
// PasswordHash must be a pre-hashed salted password. Use the password
// hashing functions in this package to produce one.
type UserParams struct {
	Name         string `json:"name"          yaml:"name"`
	PasswordHash string `json:"password_hash" yaml:"password_hash"`
	// Tags is a comma-separated list of user tags, such as
	// "administrator" or "monitoring,management".
	Tags string `json:"tags" yaml:"tags"`
}

// NewAdministratorUserParams returns parameters for a user tagged as
// "administrator".
func NewAdministratorUserParams(name, passwordHash string) *UserParams {
	return &UserParams{Name: name, PasswordHash: passwordHash, Tags: "administrator"}
}

// NewMonitoringUserParams returns parameters for a user tagged as
// "monitoring".
func NewMonitoringUserParams(name, passwordHash string) *UserParams {
	return &UserParams{Name: name, PasswordHash: passwordHash, Tags: "monitoring"}
}

// NewManagementUserParams returns parameters for a user tagged as
// "management".
func NewManagementUserParams(name, passwordHash string) *UserParams {
	return &UserParams{Name: name, PasswordHash: passwordHash, Tags: "management"}
}

// BulkUserDelete is the payload of the endpoint that deletes multiple
// users in a single operation.
type BulkUserDelete struct {
	Usernames []string `json:"users" yaml:"users"`
}

// PermissionsParams grant a user permissions in a virtual host. The three
// patterns are regular expressions matched against resource names: use
// ".*" to grant full access and "" to deny access for an operation group.
type PermissionsParams struct {
	User        string `json:"user"      yaml:"user"`
	VirtualHost string `json:"vhost"     yaml:"vhost"`
	Configure   string `json:"configure" yaml:"configure"`
	Read        string `json:"read"      yaml:"read"`
	Write       string `json:"write"     yaml:"write"`
}

// TopicPermissionsParams grant a user topic permissions on a topic
// exchange in a virtual host.
type TopicPermissionsParams struct {
	User        string `json:"user"     yaml:"user"`
	VirtualHost string `json:"vhost"    yaml:"vhost"`
	Exchange    string `json:"exchange" yaml:"exchange"`
	Write       string `json:"write"    yaml:"write"`
	Read        string `json:"read"     yaml:"read"`
}

// QueueParams are queue properties used at declaration time.
//
// Prefer the type-specific constructors over manual instantiation: they
// make sure the x-queue-type argument agrees with the queue type.
type QueueParams struct {
	Name string `json:"name" yaml:"name"`
	// QueueType is carried in the x-queue-type argument, not as a body
	// field of its own.
	QueueType  QueueType `json:"-"           yaml:"-"`
	Durable    bool      `json:"durable"     yaml:"durable"`
	AutoDelete bool      `json:"auto_delete" yaml:"auto_delete"`
	// Exclusive queues cannot be declared over the HTTP API due to the
	// short-lived transactional nature of its connections.
	Exclusive bool       `json:"exclusive"           yaml:"exclusive"`
	Arguments XArguments `json:"arguments,omitempty" yaml:"arguments,omitempty"`
}

// NewQueueParams returns declaration parameters with every property under
// the caller's control.
func NewQueueParams(name string, queueType QueueType, durable, autoDelete bool, optionalArgs XArguments) *QueueParams {
	return &QueueParams{
		Name:       name,
		QueueType:  queueType,
		Durable:    durable,
		AutoDelete: autoDelete,
		Arguments:  combinedQueueArguments(optionalArgs, queueType),
	}
}

// NewQuorumQueueParams returns declaration parameters for a quorum queue.
// Quorum queues are replicated and always durable.
func NewQuorumQueueParams(name string, optionalArgs XArguments) *QueueParams {
	return NewQueueParams(name, QueueTypeQuorum, true, false, optionalArgs)
}

// NewStreamQueueParams returns declaration parameters for a stream.
func NewStreamQueueParams(name string, optionalArgs XArguments) *QueueParams {
	return NewQueueParams(name, QueueTypeStream, true, false, optionalArgs)
}

// NewDurableClassicQueueParams returns declaration parameters for a
// durable classic queue.
func NewDurableClassicQueueParams(name string, optionalArgs XArguments) *QueueParams {
	return NewQueueParams(name, QueueTypeClassic, true, false, optionalArgs)
}

// NewTransientAutoDeleteQueueParams returns declaration parameters for a
// transient classic queue that is deleted when its last consumer
// disconnects.
func NewTransientAutoDeleteQueueParams(name string, optionalArgs XArguments) *QueueParams {
	return NewQueueParams(name, QueueTypeClassic, false, true, optionalArgs)
}

func combinedQueueArguments(optionalArgs XArguments, queueType QueueType) XArguments {
	combined := XArguments{XArgumentQueueType: string(queueType)}
	combined.Merge(optionalArgs)

	return combined
}

// WithMessageTTL sets the x-message-ttl argument, in milliseconds.
func (p *QueueParams) WithMessageTTL(millis uint64) *QueueParams {
	return p.WithArgument(XArgumentMessageTTL, millis)
}

// WithQueueTTL sets the x-expires argument, in milliseconds.
func (p *QueueParams) WithQueueTTL(millis uint64) *QueueParams {
	return p.WithArgument(XArgumentExpires, millis)
}

// WithMaxLength sets the x-max-length argument.
func (p *QueueParams) WithMaxLength(maxLength uint64) *QueueParams {
	return p.WithArgument(XArgumentMaxLength, maxLength)
}

// WithMaxLengthBytes sets the x-max-length-bytes argument.
func (p *QueueParams) WithMaxLengthBytes(maxLengthBytes uint64) *QueueParams {
	return p.WithArgument(XArgumentMaxLengthBytes, maxLengthBytes)
}

// WithDeadLetterExchange sets the x-dead-letter-exchange argument.
func (p *QueueParams) WithDeadLetterExchange(exchange string) *QueueParams {
	return p.WithArgument(XArgumentDeadLetterExchange, exchange)
}

// WithDeadLetterRoutingKey sets the x-dead-letter-routing-key argument.
func (p *QueueParams) WithDeadLetterRoutingKey(routingKey string) *QueueParams {
	return p.WithArgument(XArgumentDeadLetterRoutingKey, routingKey)
}

// WithArgument sets an optional argument.
func (p *QueueParams) WithArgument(key string, value interface{}) *QueueParams {
	if p.Arguments == nil {
		p.Arguments = XArguments{}
	}

	p.Arguments[key] = value

	return p
}

// AsParams converts a queue response back into declaration parameters.
func (q *QueueInfo) AsParams() *QueueParams {
	var args XArguments
	if len(q.Arguments) > 0 {
		args = XArguments{}
		args.Merge(q.Arguments)
	}

	return &QueueParams{
		Name:       q.Name,
		QueueType:  q.Type,
		Durable:    q.Durable,
		AutoDelete: q.AutoDelete,
		Exclusive:  q.Exclusive,
		Arguments:  args,
	}
}

// StreamParams are stream properties used at declaration time.
type StreamParams struct {
	Name string `json:"name" yaml:"name"`
	// Expiration is the retention time in RabbitMQ duration format, for
	// example "7D", "1h30m" or "300s". Empty disables expiration.
	Expiration            string     `json:"expiration"               yaml:"expiration"`
	MaxLengthBytes        *uint64    `json:"max_length_bytes"         yaml:"max_length_bytes"`
	MaxSegmentLengthBytes *uint64    `json:"max_segment_length_bytes" yaml:"max_segment_length_bytes"`
	Arguments             XArguments `json:"arguments,omitempty"      yaml:"arguments,omitempty"`
}

// NewStreamParams returns stream parameters with just a name and a
// retention time.
func NewStreamParams(name, expiration string) *StreamParams {
	return &StreamParams{Name: name, Expiration: expiration}
}

// NewStreamParamsWithLengthLimit returns stream parameters with a
// retention time and a total size limit in bytes.
func NewStreamParamsWithLengthLimit(name, expiration string, maxLengthBytes uint64) *StreamParams {
	return &StreamParams{
		Name:           name,
		Expiration:     expiration,
		MaxLengthBytes: &maxLengthBytes,
	}
}

// WithMaxLengthBytes sets the total size limit in bytes. The oldest
// segments are removed when it is exceeded.
func (p *StreamParams) WithMaxLengthBytes(bytes uint64) *StreamParams {
	p.MaxLengthBytes = &bytes

	return p
}

// WithMaxSegmentLengthBytes sets the size limit of individual stream
// segments.
func (p *StreamParams) WithMaxSegmentLengthBytes(bytes uint64) *StreamParams {
	p.MaxSegmentLengthBytes = &bytes

	return p
}

// WithArgument sets an optional argument.
func (p *StreamParams) WithArgument(key string, value interface{}) *StreamParams {
	if p.Arguments == nil {
		p.Arguments = XArguments{}
	}

	p.Arguments[key] = value

	return p
}

// ExchangeParams are exchange properties used at declaration time.
type ExchangeParams struct {
	// Name is carried in the request path, not the body.
	Name       string       `json:"-"                   yaml:"-"`
	Type       ExchangeType `json:"type"                yaml:"type"`
	Durable    bool         `json:"durable"             yaml:"durable"`
	AutoDelete bool         `json:"auto_delete"         yaml:"auto_delete"`
	Arguments  XArguments   `json:"arguments,omitempty" yaml:"arguments,omitempty"`
}

// NewExchangeParams returns declaration parameters for an exchange of any
// type.
func NewExchangeParams(name string, exchangeType ExchangeType, durable, autoDelete bool, optionalArgs XArguments) *ExchangeParams {
	return &ExchangeParams{
		Name:       name,
		Type:       exchangeType,
		Durable:    durable,
		AutoDelete: autoDelete,
		Arguments:  optionalArgs,
	}
}

// NewDurableExchangeParams returns declaration parameters for a durable,
// non-auto-delete exchange of any type.
func NewDurableExchangeParams(name string, exchangeType ExchangeType, optionalArgs XArguments) *ExchangeParams {
	return NewExchangeParams(name, exchangeType, true, false, optionalArgs)
}

// NewFanoutExchangeParams returns declaration parameters for a fanout
// exchange.
func NewFanoutExchangeParams(name string, durable, autoDelete bool, optionalArgs XArguments) *ExchangeParams {
	return NewExchangeParams(name, ExchangeTypeFanout, durable, autoDelete, optionalArgs)
}

// NewDurableFanoutExchangeParams returns declaration parameters for a
// durable fanout exchange.
func NewDurableFanoutExchangeParams(name string, optionalArgs XArguments) *ExchangeParams {
	return NewExchangeParams(name, ExchangeTypeFanout, true, false, optionalArgs)
}

// NewTopicExchangeParams returns declaration parameters for a topic
// exchange.
func NewTopicExchangeParams(name string, durable, autoDelete bool, optionalArgs XArguments) *ExchangeParams {
	return NewExchangeParams(name, ExchangeTypeTopic, durable, autoDelete, optionalArgs)
}

// NewDurableTopicExchangeParams returns declaration parameters for a
// durable topic exchange.
func NewDurableTopicExchangeParams(name string, optionalArgs XArguments) *ExchangeParams {
	return NewExchangeParams(name, ExchangeTypeTopic, true, false, optionalArgs)
}

// NewDirectExchangeParams returns declaration parameters for a direct
// exchange.
func NewDirectExchangeParams(name string, durable, autoDelete bool, optionalArgs XArguments) *ExchangeParams {
	return NewExchangeParams(name, ExchangeTypeDirect, durable, autoDelete, optionalArgs)
}

// NewDurableDirectExchangeParams returns declaration parameters for a
// durable direct exchange.
func NewDurableDirectExchangeParams(name string, optionalArgs XArguments) *ExchangeParams {
	return NewExchangeParams(name, ExchangeTypeDirect, true, false, optionalArgs)
}

// NewHeadersExchangeParams returns declaration parameters for a headers
// exchange, which routes on header attributes rather than routing keys.
func NewHeadersExchangeParams(name string, durable, autoDelete bool, optionalArgs XArguments) *ExchangeParams {
	return NewExchangeParams(name, ExchangeTypeHeaders, durable, autoDelete, optionalArgs)
}

// NewDurableHeadersExchangeParams returns declaration parameters for a
// durable headers exchange.
func NewDurableHeadersExchangeParams(name string, optionalArgs XArguments) *ExchangeParams {
	return NewExchangeParams(name, ExchangeTypeHeaders, true, false, optionalArgs)
}

// NewLocalRandomExchangeParams returns declaration parameters for a
// local-random exchange, a plugin-provided type that picks one random
// bound queue per message.
func NewLocalRandomExchangeParams(name string, durable, autoDelete bool, optionalArgs XArguments) *ExchangeParams {
	return NewExchangeParams(name, ExchangeTypeLocalRandom, durable, autoDelete, optionalArgs)
}

// NewDurableLocalRandomExchangeParams returns declaration parameters for a
// durable local-random exchange.
func NewDurableLocalRandomExchangeParams(name string, optionalArgs XArguments) *ExchangeParams {
	return NewExchangeParams(name, ExchangeTypeLocalRandom, true, false, optionalArgs)
}

// WithArgument sets an optional argument.
func (p *ExchangeParams) WithArgument(key string, value interface{}) *ExchangeParams {
	if p.Arguments == nil {
		p.Arguments = XArguments{}
	}

	p.Arguments[key] = value

	return p
}

// AsParams converts an exchange response back into declaration parameters.
func (x *ExchangeInfo) AsParams() *ExchangeParams {
	var args XArguments
	if len(x.Arguments) > 0 {
		args = XArguments{}
		args.Merge(x.Arguments)
	}

	return &ExchangeParams{
		Name:       x.Name,
		Type:       ExchangeType(x.Type),
		Durable:    x.Durable,
		AutoDelete: x.AutoDelete,
		Arguments:  args,
	}
}

// PolicyParams are the properties of a policy or an operator policy to be
// declared.
type PolicyParams struct {
	VirtualHost string           `json:"vhost"      yaml:"vhost"`
	Name        string           `json:"name"       yaml:"name"`
	Pattern     string           `json:"pattern"    yaml:"pattern"`
	ApplyTo     PolicyTarget     `json:"apply-to"   yaml:"apply-to"`
	Priority    int32            `json:"priority"   yaml:"priority"`
	Definition  PolicyDefinition `json:"definition" yaml:"definition"`
}

// NewPolicyParams returns policy parameters that apply to all object kinds
// with priority 0.
func NewPolicyParams(vhost, name, pattern string, definition PolicyDefinition) *PolicyParams {
	return &PolicyParams{
		VirtualHost: vhost,
		Name:        name,
		Pattern:     pattern,
		ApplyTo:     PolicyTargetAll,
		Definition:  definition,
	}
}

// WithApplyTo sets the kind of objects the policy applies to.
func (p *PolicyParams) WithApplyTo(target PolicyTarget) *PolicyParams {
	p.ApplyTo = target

	return p
}

// WithPriority sets the policy priority.
func (p *PolicyParams) WithPriority(priority int32) *PolicyParams {
	p.Priority = priority

	return p
}

// AsParams converts a policy response back into declaration parameters.
func (p *Policy) AsParams() *PolicyParams {
	definition := p.Definition
	if definition == nil {
		definition = PolicyDefinition{}
	}

	return &PolicyParams{
		VirtualHost: p.VirtualHost,
		Name:        p.Name,
		Pattern:     p.Pattern,
		ApplyTo:     p.ApplyTo,
		Priority:    p.Priority,
		Definition:  definition,
	}
}

// RuntimeParameterDefinition is a runtime parameter to be set: a value
// under a component and name in a virtual host. Components include
// "federation-upstream" and "shovel".
type RuntimeParameterDefinition struct {
	Name        string                `json:"name"      yaml:"name"`
	VirtualHost string                `json:"vhost"     yaml:"vhost"`
	Component   string                `json:"component" yaml:"component"`
	Value       RuntimeParameterValue `json:"value"     yaml:"value"`
}

// AsDefinition converts a runtime parameter response back into a
// definition that can be set.
func (p *RuntimeParameter) AsDefinition() RuntimeParameterDefinition {
	return RuntimeParameterDefinition{
		Name:        p.Name,
		VirtualHost: p.VirtualHost,
		Component:   p.Component,
		Value:       p.Value,
	}
}

// GlobalRuntimeParameterDefinition is a cluster-wide runtime parameter to
// be set, for example "cluster_name".
type GlobalRuntimeParameterDefinition struct {
	Name  string      `json:"name"  yaml:"name"`
	Value interface{} `json:"value" yaml:"value"`
}

// EnforcedLimitParams is a resource limit to be enforced on a virtual host
// or a user. The kind is one of the VirtualHostLimitTarget or
// UserLimitTarget constants.
type EnforcedLimitParams[T ~string] struct {
	Kind  T     `json:"kind"  yaml:"kind"`
	Value int64 `json:"value" yaml:"value"`
}

// NewEnforcedLimitParams returns a limit of the given kind and value.
func NewEnforcedLimitParams[T ~string](kind T, value int64) EnforcedLimitParams[T] {
	return EnforcedLimitParams[T]{Kind: kind, Value: value}
}

// BindingDeletionParams identify a binding to be deleted: the endpoints,
// the routing key and the arguments it was declared with.
type BindingDeletionParams struct {
	VirtualHost     string
	Source          string
	Destination     string
	DestinationType BindingDestinationType
	RoutingKey      string
	Arguments       XArguments
}
