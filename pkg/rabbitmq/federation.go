package rabbitmq

// FederationUpstreamComponent is the runtime parameter component used by
// federation upstreams.
const FederationUpstreamComponent = "federation-upstream"

// Defaults used by the federation plugin.
const (
	DefaultFederationPrefetch       uint32 = 1000
	DefaultFederationReconnectDelay uint32 = 5
)

// FederationUpstream represents a federation upstream: a runtime parameter
// that tells the federation plugin where to federate from and how.
type FederationUpstream struct {
	Name                string                             `json:"name"                  yaml:"name"`
	VirtualHost         string                             `json:"vhost"                 yaml:"vhost"`
	URI                 string                             `json:"uri"                   yaml:"uri"`
	AckMode             MessageTransferAcknowledgementMode `json:"ack-mode"              yaml:"ack-mode"`
	PrefetchCount       *uint32                            `json:"prefetch-count,omitempty"        yaml:"prefetch-count,omitempty"`
	TrustUserID         *bool                              `json:"trust-user-id,omitempty"         yaml:"trust-user-id,omitempty"`
	ReconnectDelay      *uint32                            `json:"reconnect-delay,omitempty"       yaml:"reconnect-delay,omitempty"`
	Queue               *string                            `json:"queue,omitempty"                 yaml:"queue,omitempty"`
	ConsumerTag         *string                            `json:"consumer-tag,omitempty"          yaml:"consumer-tag,omitempty"`
	Exchange            *string                            `json:"exchange,omitempty"              yaml:"exchange,omitempty"`
	MaxHops             *uint8                             `json:"max-hops,omitempty"              yaml:"max-hops,omitempty"`
	QueueType           *QueueType                         `json:"queue-type,omitempty"            yaml:"queue-type,omitempty"`
	Expires             *uint32                            `json:"expires,omitempty"               yaml:"expires,omitempty"`
	MessageTTL          *uint32                            `json:"message-ttl,omitempty"           yaml:"message-ttl,omitempty"`
	ResourceCleanupMode FederationResourceCleanupMode      `json:"resource-cleanup-mode,omitempty" yaml:"resource-cleanup-mode,omitempty"`
	BindUsingNowait     bool                               `json:"bind-using-nowait"     yaml:"bind-using-nowait"`
	ChannelUseMode      ChannelUseMode                     `json:"channel-use-mode"      yaml:"channel-use-mode"`
}

// FederationUpstreamFromRuntimeParameter converts a "federation-upstream"
// runtime parameter to a typed upstream. The parameter value must carry a
// "uri" key.
func FederationUpstreamFromRuntimeParameter(param *RuntimeParameter) (*FederationUpstream, error) {
	uri, ok := param.Value.GetString("uri")
	if !ok {
		return nil, &ConversionError{Kind: "FederationUpstream", Property: "uri"}
	}

	upstream := &FederationUpstream{
		Name:        param.Name,
		VirtualHost: param.VirtualHost,
		URI:         uri,
	}

	if v, found := param.Value.GetString("ack-mode"); found {
		upstream.AckMode = NormalizedAcknowledgementMode(v)
	} else {
		upstream.AckMode = TransferAcknowledgementWhenConfirmed
	}

	if v, found := param.Value.GetUint("prefetch-count"); found {
		count := uint32(v)
		upstream.PrefetchCount = &count
	}

	if v, found := param.Value.GetBool("trust-user-id"); found {
		trust := v
		upstream.TrustUserID = &trust
	}

	if v, found := param.Value.GetUint("reconnect-delay"); found {
		delay := uint32(v)
		upstream.ReconnectDelay = &delay
	}

	if v, found := param.Value.GetString("queue"); found {
		queue := v
		upstream.Queue = &queue
	}

	if v, found := param.Value.GetString("consumer-tag"); found {
		tag := v
		upstream.ConsumerTag = &tag
	}

	if v, found := param.Value.GetString("exchange"); found {
		exchange := v
		upstream.Exchange = &exchange
	}

	if v, found := param.Value.GetUint("max-hops"); found {
		hops := uint8(v)
		upstream.MaxHops = &hops
	}

	if v, found := param.Value.GetString("queue-type"); found {
		queueType := QueueType(v)
		upstream.QueueType = &queueType
	}

	if v, found := param.Value.GetUint("expires"); found {
		expires := uint32(v)
		upstream.Expires = &expires
	}

	if v, found := param.Value.GetUint("message-ttl"); found {
		ttl := uint32(v)
		upstream.MessageTTL = &ttl
	}

	if v, found := param.Value.GetString("resource-cleanup-mode"); found {
		upstream.ResourceCleanupMode = NormalizedFederationCleanupMode(v)
	} else {
		upstream.ResourceCleanupMode = FederationCleanupModeDefault
	}

	if v, found := param.Value.GetBool("bind-nowait"); found {
		upstream.BindUsingNowait = v
	}

	if v, found := param.Value.GetString("channel-use-mode"); found {
		upstream.ChannelUseMode = NormalizedChannelUseMode(v)
	} else {
		upstream.ChannelUseMode = ChannelUseModeMultiple
	}

	return upstream, nil
}

// AsParams converts the upstream back to declarable parameters, for example
// to re-declare it with adjustments.
func (u *FederationUpstream) AsParams() FederationUpstreamParams {
	params := FederationUpstreamParams{
		Name:            u.Name,
		VirtualHost:     u.VirtualHost,
		URI:             u.URI,
		AckMode:         u.AckMode,
		BindUsingNowait: u.BindUsingNowait,
		ChannelUseMode:  u.ChannelUseMode,
		ReconnectDelay:  DefaultFederationReconnectDelay,
		PrefetchCount:   DefaultFederationPrefetch,
	}

	if u.ReconnectDelay != nil {
		params.ReconnectDelay = *u.ReconnectDelay
	}

	if u.PrefetchCount != nil {
		params.PrefetchCount = *u.PrefetchCount
	}

	if u.TrustUserID != nil {
		params.TrustUserID = *u.TrustUserID
	}

	if u.Queue != nil || u.ConsumerTag != nil {
		qf := &QueueFederationParams{}
		if u.Queue != nil {
			qf.Queue = *u.Queue
		}

		if u.ConsumerTag != nil {
			qf.ConsumerTag = *u.ConsumerTag
		}

		params.QueueFederation = qf
	}

	if u.Exchange != nil || u.MaxHops != nil || u.QueueType != nil ||
		u.Expires != nil || u.MessageTTL != nil ||
		(u.ResourceCleanupMode != "" && u.ResourceCleanupMode != FederationCleanupModeDefault) {
		ef := &ExchangeFederationParams{
			ResourceCleanupMode: u.ResourceCleanupMode,
		}

		if u.Exchange != nil {
			ef.Exchange = *u.Exchange
		}

		if u.MaxHops != nil {
			ef.MaxHops = *u.MaxHops
		}

		if u.QueueType != nil {
			ef.QueueType = *u.QueueType
		}

		if u.Expires != nil {
			ef.TTL = *u.Expires
		}

		if u.MessageTTL != nil {
			ef.MessageTTL = *u.MessageTTL
		}

		params.ExchangeFederation = ef
	}

	return params
}

// QueueFederationParams are the parameters specific to queue federation.
// An empty Queue federates the queue with the same name as the downstream
// one.
type QueueFederationParams struct {
	Queue       string
	ConsumerTag string
}

// ExchangeFederationParams are the parameters specific to exchange
// federation. Zero values for MaxHops, TTL and MessageTTL leave the
// corresponding upstream keys unset.
type ExchangeFederationParams struct {
	Exchange            string
	MaxHops             uint8
	QueueType           QueueType
	TTL                 uint32
	MessageTTL          uint32
	ResourceCleanupMode FederationResourceCleanupMode
}

// FederationUpstreamParams define a federation upstream to be declared,
// including the federation type-specific (queue, exchange) parameters.
type FederationUpstreamParams struct {
	Name            string
	VirtualHost     string
	URI             string
	ReconnectDelay  uint32
	TrustUserID     bool
	PrefetchCount   uint32
	AckMode         MessageTransferAcknowledgementMode
	BindUsingNowait bool
	ChannelUseMode  ChannelUseMode

	QueueFederation    *QueueFederationParams
	ExchangeFederation *ExchangeFederationParams
}

// NewQueueFederationUpstreamParams returns upstream parameters for queue
// federation with the defaults used by the federation plugin.
func NewQueueFederationUpstreamParams(vhost, name, uri string, params QueueFederationParams) FederationUpstreamParams {
	return FederationUpstreamParams{
		Name:            name,
		VirtualHost:     vhost,
		URI:             uri,
		AckMode:         TransferAcknowledgementWhenConfirmed,
		ReconnectDelay:  DefaultFederationReconnectDelay,
		PrefetchCount:   DefaultFederationPrefetch,
		ChannelUseMode:  ChannelUseModeMultiple,
		QueueFederation: &params,
	}
}

// NewExchangeFederationUpstreamParams returns upstream parameters for
// exchange federation with the defaults used by the federation plugin.
func NewExchangeFederationUpstreamParams(vhost, name, uri string, params ExchangeFederationParams) FederationUpstreamParams {
	return FederationUpstreamParams{
		Name:               name,
		VirtualHost:        vhost,
		URI:                uri,
		AckMode:            TransferAcknowledgementWhenConfirmed,
		ReconnectDelay:     DefaultFederationReconnectDelay,
		PrefetchCount:      DefaultFederationPrefetch,
		ChannelUseMode:     ChannelUseModeMultiple,
		ExchangeFederation: &params,
	}
}

// AsRuntimeParameterDefinition converts the parameters to the runtime
// parameter that declares the upstream.
func (p FederationUpstreamParams) AsRuntimeParameterDefinition() RuntimeParameterDefinition {
	value := RuntimeParameterValue{
		"uri":              p.URI,
		"prefetch-count":   p.PrefetchCount,
		"trust-user-id":    p.TrustUserID,
		"reconnect-delay":  p.ReconnectDelay,
		"ack-mode":         p.AckMode,
		"bind-nowait":      p.BindUsingNowait,
		"channel-use-mode": p.ChannelUseMode,
	}

	if qf := p.QueueFederation; qf != nil {
		if qf.Queue == "" {
			value["queue"] = nil
		} else {
			value["queue"] = qf.Queue
		}

		if qf.ConsumerTag != "" {
			value["consumer-tag"] = qf.ConsumerTag
		}
	}

	if ef := p.ExchangeFederation; ef != nil {
		value["queue-type"] = ef.QueueType
		value["resource-cleanup-mode"] = ef.ResourceCleanupMode

		if ef.Exchange != "" {
			value["exchange"] = ef.Exchange
		}

		if ef.MaxHops != 0 {
			value["max-hops"] = ef.MaxHops
		}

		if ef.TTL != 0 {
			value["expires"] = ef.TTL
		}

		if ef.MessageTTL != 0 {
			value["message-ttl"] = ef.MessageTTL
		}
	}

	return RuntimeParameterDefinition{
		Name:        p.Name,
		VirtualHost: p.VirtualHost,
		Component:   FederationUpstreamComponent,
		Value:       value,
	}
}

// FederationLink represents a running federation link.
type FederationLink struct {
	Node        string         `json:"node"     yaml:"node"`
	VirtualHost string         `json:"vhost"    yaml:"vhost"`
	ID          string         `json:"id"       yaml:"id"`
	URI         string         `json:"uri"      yaml:"uri"`
	Status      string         `json:"status"   yaml:"status"`
	Type        FederationType `json:"type"     yaml:"type"`
	Upstream    string         `json:"upstream" yaml:"upstream"`
	ConsumerTag *string        `json:"consumer_tag,omitempty" yaml:"consumer_tag,omitempty"`
}
