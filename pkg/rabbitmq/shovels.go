package rabbitmq

// ShovelComponent is the runtime parameter component used by dynamic
// shovels.
const ShovelComponent = "shovel"

// Shovel represents a dynamic or static shovel and its reported state.
type Shovel struct {
	Node                string             `json:"node"  yaml:"node"`
	Name                string             `json:"name"  yaml:"name"`
	VirtualHost         *string            `json:"vhost,omitempty" yaml:"vhost,omitempty"`
	Type                ShovelType         `json:"type"  yaml:"type"`
	State               ShovelState        `json:"state" yaml:"state"`
	SourceURI           *string            `json:"src_uri,omitempty"       yaml:"src_uri,omitempty"`
	DestinationURI      *string            `json:"dest_uri,omitempty"      yaml:"dest_uri,omitempty"`
	Source              *string            `json:"src_queue,omitempty"     yaml:"src_queue,omitempty"`
	Destination         *string            `json:"dest_queue,omitempty"    yaml:"dest_queue,omitempty"`
	SourceAddress       *string            `json:"src_address,omitempty"   yaml:"src_address,omitempty"`
	DestinationAddress  *string            `json:"dest_address,omitempty"  yaml:"dest_address,omitempty"`
	SourceProtocol      *MessagingProtocol `json:"src_protocol,omitempty"  yaml:"src_protocol,omitempty"`
	DestinationProtocol *MessagingProtocol `json:"dest_protocol,omitempty" yaml:"dest_protocol,omitempty"`
}

// Amqp091ShovelSourceParams describe the source endpoint of a shovel that
// consumes over AMQP 0-9-1. Exactly one of SourceQueue and SourceExchange
// is set.
type Amqp091ShovelSourceParams struct {
	SourceURI                string
	SourceQueue              string
	SourceExchange           string
	SourceExchangeRoutingKey string
	// When true the shovel will not try to declare its source topology.
	Predeclared bool
}

// Amqp091QueueSource returns source parameters for a shovel that consumes
// from a queue.
func Amqp091QueueSource(uri, queue string) Amqp091ShovelSourceParams {
	return Amqp091ShovelSourceParams{
		SourceURI:   uri,
		SourceQueue: queue,
	}
}

// Amqp091PredeclaredQueueSource returns source parameters for a shovel
// that consumes from a pre-declared queue.
func Amqp091PredeclaredQueueSource(uri, queue string) Amqp091ShovelSourceParams {
	return Amqp091ShovelSourceParams{
		SourceURI:   uri,
		SourceQueue: queue,
		Predeclared: true,
	}
}

// Amqp091ExchangeSource returns source parameters for a shovel that binds
// a temporary queue to an exchange. An empty routing key binds without
// one.
func Amqp091ExchangeSource(uri, exchange, routingKey string) Amqp091ShovelSourceParams {
	return Amqp091ShovelSourceParams{
		SourceURI:                uri,
		SourceExchange:           exchange,
		SourceExchangeRoutingKey: routingKey,
	}
}

// Amqp091PredeclaredExchangeSource returns source parameters for a shovel
// that consumes via a pre-declared exchange.
func Amqp091PredeclaredExchangeSource(uri, exchange, routingKey string) Amqp091ShovelSourceParams {
	return Amqp091ShovelSourceParams{
		SourceURI:                uri,
		SourceExchange:           exchange,
		SourceExchangeRoutingKey: routingKey,
		Predeclared:              true,
	}
}

// Amqp091ShovelDestinationParams describe the destination endpoint of a
// shovel that publishes over AMQP 0-9-1. Exactly one of DestinationQueue
// and DestinationExchange is set.
type Amqp091ShovelDestinationParams struct {
	DestinationURI                string
	DestinationQueue              string
	DestinationExchange           string
	DestinationExchangeRoutingKey string
	// When true the shovel will not try to declare its destination topology.
	Predeclared bool
}

// Amqp091QueueDestination returns destination parameters for a shovel
// that publishes to a queue.
func Amqp091QueueDestination(uri, queue string) Amqp091ShovelDestinationParams {
	return Amqp091ShovelDestinationParams{
		DestinationURI:   uri,
		DestinationQueue: queue,
	}
}

// Amqp091PredeclaredQueueDestination returns destination parameters for a
// shovel that publishes to a pre-declared queue.
func Amqp091PredeclaredQueueDestination(uri, queue string) Amqp091ShovelDestinationParams {
	return Amqp091ShovelDestinationParams{
		DestinationURI:   uri,
		DestinationQueue: queue,
		Predeclared:      true,
	}
}

// Amqp091ExchangeDestination returns destination parameters for a shovel
// that publishes to an exchange.
func Amqp091ExchangeDestination(uri, exchange, routingKey string) Amqp091ShovelDestinationParams {
	return Amqp091ShovelDestinationParams{
		DestinationURI:                uri,
		DestinationExchange:           exchange,
		DestinationExchangeRoutingKey: routingKey,
	}
}

// Amqp091PredeclaredExchangeDestination returns destination parameters
// for a shovel that publishes via a pre-declared exchange.
func Amqp091PredeclaredExchangeDestination(uri, exchange, routingKey string) Amqp091ShovelDestinationParams {
	return Amqp091ShovelDestinationParams{
		DestinationURI:                uri,
		DestinationExchange:           exchange,
		DestinationExchangeRoutingKey: routingKey,
		Predeclared:                   true,
	}
}

// Amqp091ShovelParams define a dynamic shovel that uses AMQP 0-9-1 for
// both its source and destination connections.
type Amqp091ShovelParams struct {
	Name        string
	VirtualHost string

	AcknowledgementMode MessageTransferAcknowledgementMode
	ReconnectDelay      *uint32

	Source      Amqp091ShovelSourceParams
	Destination Amqp091ShovelDestinationParams
}

// AsRuntimeParameterDefinition converts the parameters to the runtime
// parameter that declares the shovel.
func (p Amqp091ShovelParams) AsRuntimeParameterDefinition() RuntimeParameterDefinition {
	value := RuntimeParameterValue{
		"src-protocol":  MessagingProtocolAmqp091,
		"dest-protocol": MessagingProtocolAmqp091,
		"src-uri":       p.Source.SourceURI,
		"dest-uri":      p.Destination.DestinationURI,
		"ack-mode":      p.AcknowledgementMode,
	}

	if p.Source.SourceQueue != "" {
		value["src-queue"] = p.Source.SourceQueue
	}

	if p.Source.SourceExchange != "" {
		value["src-exchange"] = p.Source.SourceExchange
	}

	if p.Source.SourceExchangeRoutingKey != "" {
		value["src-exchange-key"] = p.Source.SourceExchangeRoutingKey
	}

	if p.Destination.DestinationQueue != "" {
		value["dest-queue"] = p.Destination.DestinationQueue
	}

	if p.Destination.DestinationExchange != "" {
		value["dest-exchange"] = p.Destination.DestinationExchange
	}

	if p.Destination.DestinationExchangeRoutingKey != "" {
		value["dest-exchange-key"] = p.Destination.DestinationExchangeRoutingKey
	}

	if p.Source.Predeclared {
		value["src-predeclared"] = true
	}

	if p.Destination.Predeclared {
		value["dest-predeclared"] = true
	}

	if p.ReconnectDelay != nil {
		value["reconnect-delay"] = *p.ReconnectDelay
	}

	return RuntimeParameterDefinition{
		Name:        p.Name,
		VirtualHost: p.VirtualHost,
		Component:   ShovelComponent,
		Value:       value,
	}
}

// Amqp10ShovelSourceParams describe the source endpoint of a shovel that
// consumes over AMQP 1.0. The address is a queue name or topic pattern.
type Amqp10ShovelSourceParams struct {
	SourceURI     string
	SourceAddress string
}

// Amqp10Source returns source parameters for an AMQP 1.0 shovel.
func Amqp10Source(uri, address string) Amqp10ShovelSourceParams {
	return Amqp10ShovelSourceParams{
		SourceURI:     uri,
		SourceAddress: address,
	}
}

// Amqp10ShovelDestinationParams describe the destination endpoint of a
// shovel that publishes over AMQP 1.0.
type Amqp10ShovelDestinationParams struct {
	DestinationURI     string
	DestinationAddress string
}

// Amqp10Destination returns destination parameters for an AMQP 1.0
// shovel.
func Amqp10Destination(uri, address string) Amqp10ShovelDestinationParams {
	return Amqp10ShovelDestinationParams{
		DestinationURI:     uri,
		DestinationAddress: address,
	}
}

// Amqp10ShovelParams define a dynamic shovel that uses AMQP 1.0 for both
// its source and destination connections.
type Amqp10ShovelParams struct {
	Name        string
	VirtualHost string

	AcknowledgementMode MessageTransferAcknowledgementMode
	ReconnectDelay      *uint32

	Source      Amqp10ShovelSourceParams
	Destination Amqp10ShovelDestinationParams
}

// AsRuntimeParameterDefinition converts the parameters to the runtime
// parameter that declares the shovel.
func (p Amqp10ShovelParams) AsRuntimeParameterDefinition() RuntimeParameterDefinition {
	value := RuntimeParameterValue{
		"src-protocol":  MessagingProtocolAmqp10,
		"dest-protocol": MessagingProtocolAmqp10,
		"src-uri":       p.Source.SourceURI,
		"src-address":   p.Source.SourceAddress,
		"dest-uri":      p.Destination.DestinationURI,
		"dest-address":  p.Destination.DestinationAddress,
		"ack-mode":      p.AcknowledgementMode,
	}

	if p.ReconnectDelay != nil {
		value["reconnect-delay"] = *p.ReconnectDelay
	}

	return RuntimeParameterDefinition{
		Name:        p.Name,
		VirtualHost: p.VirtualHost,
		Component:   ShovelComponent,
		Value:       value,
	}
}

// ShovelParams is a protocol-agnostic counterpart of the typed shovel
// parameters above. It is primarily used for read-modify-redeclare
// workflows such as rotating shovel URIs.
type ShovelParams struct {
	Name                string
	VirtualHost         string
	SourceProtocol      string
	DestinationProtocol string
	AcknowledgementMode MessageTransferAcknowledgementMode
	ReconnectDelay      *uint32

	SourceURI                string
	SourceQueue              string
	SourceExchange           string
	SourceExchangeRoutingKey string
	SourceAddress            string
	SourcePredeclared        *bool

	DestinationURI                string
	DestinationQueue              string
	DestinationExchange           string
	DestinationExchangeRoutingKey string
	DestinationAddress            string
	DestinationPredeclared        *bool
}

// WithSourceURI returns a copy with the source URI replaced.
func (p ShovelParams) WithSourceURI(uri string) ShovelParams {
	p.SourceURI = uri

	return p
}

// WithDestinationURI returns a copy with the destination URI replaced.
func (p ShovelParams) WithDestinationURI(uri string) ShovelParams {
	p.DestinationURI = uri

	return p
}

// ShovelParamsFromRuntimeParameter converts a "shovel" runtime parameter
// to shovel parameters. The parameter value must carry the protocol and
// URI keys for both ends.
func ShovelParamsFromRuntimeParameter(param *RuntimeParameter) (*ShovelParams, error) {
	sourceProtocol, ok := param.Value.GetString("src-protocol")
	if !ok {
		return nil, &ConversionError{Kind: "ShovelParams", Property: "src-protocol"}
	}

	destinationProtocol, ok := param.Value.GetString("dest-protocol")
	if !ok {
		return nil, &ConversionError{Kind: "ShovelParams", Property: "dest-protocol"}
	}

	sourceURI, ok := param.Value.GetString("src-uri")
	if !ok {
		return nil, &ConversionError{Kind: "ShovelParams", Property: "src-uri"}
	}

	destinationURI, ok := param.Value.GetString("dest-uri")
	if !ok {
		return nil, &ConversionError{Kind: "ShovelParams", Property: "dest-uri"}
	}

	params := &ShovelParams{
		Name:                param.Name,
		VirtualHost:         param.VirtualHost,
		SourceProtocol:      sourceProtocol,
		DestinationProtocol: destinationProtocol,
		SourceURI:           sourceURI,
		DestinationURI:      destinationURI,
		AcknowledgementMode: TransferAcknowledgementWhenConfirmed,
	}

	if v, found := param.Value.GetString("ack-mode"); found {
		params.AcknowledgementMode = NormalizedAcknowledgementMode(v)
	}

	if v, found := param.Value.GetUint("reconnect-delay"); found {
		delay := uint32(v)
		params.ReconnectDelay = &delay
	}

	params.SourceQueue, _ = param.Value.GetString("src-queue")
	params.SourceExchange, _ = param.Value.GetString("src-exchange")
	params.SourceExchangeRoutingKey, _ = param.Value.GetString("src-exchange-key")
	params.SourceAddress, _ = param.Value.GetString("src-address")

	if v, found := param.Value.GetBool("src-predeclared"); found {
		predeclared := v
		params.SourcePredeclared = &predeclared
	}

	params.DestinationQueue, _ = param.Value.GetString("dest-queue")
	params.DestinationExchange, _ = param.Value.GetString("dest-exchange")
	params.DestinationExchangeRoutingKey, _ = param.Value.GetString("dest-exchange-key")
	params.DestinationAddress, _ = param.Value.GetString("dest-address")

	if v, found := param.Value.GetBool("dest-predeclared"); found {
		predeclared := v
		params.DestinationPredeclared = &predeclared
	}

	return params, nil
}

// AsRuntimeParameterDefinition converts the parameters back to the
// runtime parameter that declares the shovel.
func (p *ShovelParams) AsRuntimeParameterDefinition() RuntimeParameterDefinition {
	value := RuntimeParameterValue{
		"src-protocol":  p.SourceProtocol,
		"dest-protocol": p.DestinationProtocol,
		"src-uri":       p.SourceURI,
		"dest-uri":      p.DestinationURI,
		"ack-mode":      p.AcknowledgementMode,
	}

	if p.ReconnectDelay != nil {
		value["reconnect-delay"] = *p.ReconnectDelay
	}

	if p.SourceQueue != "" {
		value["src-queue"] = p.SourceQueue
	}

	if p.SourceExchange != "" {
		value["src-exchange"] = p.SourceExchange
	}

	if p.SourceExchangeRoutingKey != "" {
		value["src-exchange-key"] = p.SourceExchangeRoutingKey
	}

	if p.SourceAddress != "" {
		value["src-address"] = p.SourceAddress
	}

	if p.SourcePredeclared != nil {
		value["src-predeclared"] = *p.SourcePredeclared
	}

	if p.DestinationQueue != "" {
		value["dest-queue"] = p.DestinationQueue
	}

	if p.DestinationExchange != "" {
		value["dest-exchange"] = p.DestinationExchange
	}

	if p.DestinationExchangeRoutingKey != "" {
		value["dest-exchange-key"] = p.DestinationExchangeRoutingKey
	}

	if p.DestinationAddress != "" {
		value["dest-address"] = p.DestinationAddress
	}

	if p.DestinationPredeclared != nil {
		value["dest-predeclared"] = *p.DestinationPredeclared
	}

	return RuntimeParameterDefinition{
		Name:        p.Name,
		VirtualHost: p.VirtualHost,
		Component:   ShovelComponent,
		Value:       value,
	}
}
