package rabbitmq

// SupportedProtocol names a protocol listener that the protocol listener
// health check can probe for.
type SupportedProtocol string

// Protocol listener names understood by the health check endpoint.
const (
	SupportedProtocolAMQP091             SupportedProtocol = "amqp091"
	SupportedProtocolAMQP10              SupportedProtocol = "amqp10"
	SupportedProtocolMQTT                SupportedProtocol = "mqtt"
	SupportedProtocolSTOMP               SupportedProtocol = "stomp"
	SupportedProtocolStream              SupportedProtocol = "stream"
	SupportedProtocolMQTTOverWebSockets  SupportedProtocol = "web-mqtt"
	SupportedProtocolSTOMPOverWebSockets SupportedProtocol = "web-stomp"
	SupportedProtocolHTTP                SupportedProtocol = "http"
	SupportedProtocolHTTPWithTLS         SupportedProtocol = "https"
	SupportedProtocolPrometheus          SupportedProtocol = "prometheus"
	SupportedProtocolClustering          SupportedProtocol = "clustering"
)

// String implements fmt.Stringer.
func (p SupportedProtocol) String() string {
	return string(p)
}

// HealthCheckFailureDetails is implemented by the typed payloads a failed
// health check reports with its 503 response.
type HealthCheckFailureDetails interface {
	// FailureReason is the human-readable explanation reported by the node.
	FailureReason() string
}

// ResourceAlarm is a resource alarm in effect on a node.
type ResourceAlarm struct {
	Node     string `json:"node"     yaml:"node"`
	Resource string `json:"resource" yaml:"resource"`
}

// ClusterAlarmCheckDetails reports the resource alarms that failed an alarm
// health check.
type ClusterAlarmCheckDetails struct {
	Reason string          `json:"reason" yaml:"reason"`
	Alarms []ResourceAlarm `json:"alarms" yaml:"alarms"`
}

// FailureReason implements HealthCheckFailureDetails.
func (d *ClusterAlarmCheckDetails) FailureReason() string {
	return d.Reason
}

// QuorumEndangeredQueue is a quorum queue or stream that would lose its
// quorum if the target node shut down.
type QuorumEndangeredQueue struct {
	Name         string `json:"name"          yaml:"name"`
	ReadableName string `json:"readable_name" yaml:"readable_name"`
	VirtualHost  string `json:"virtual_host"  yaml:"virtual_host"`
	Type         string `json:"type"          yaml:"type"`
}

// QuorumCriticalityCheckDetails reports the queues that failed a quorum
// criticality health check.
type QuorumCriticalityCheckDetails struct {
	Reason string                  `json:"reason" yaml:"reason"`
	Queues []QuorumEndangeredQueue `json:"queues" yaml:"queues"`
}

// FailureReason implements HealthCheckFailureDetails.
func (d *QuorumCriticalityCheckDetails) FailureReason() string {
	return d.Reason
}

// NoActivePortListenerDetails reports a port with no active listener.
type NoActivePortListenerDetails struct {
	Status       string `json:"status"  yaml:"status"`
	Reason       string `json:"reason"  yaml:"reason"`
	InactivePort uint16 `json:"missing" yaml:"missing"`
}

// FailureReason implements HealthCheckFailureDetails.
func (d *NoActivePortListenerDetails) FailureReason() string {
	return d.Reason
}

// NoActiveProtocolListenerDetailsPre41 is the protocol listener check
// payload reported by nodes before RabbitMQ 4.1: a single missing protocol.
type NoActiveProtocolListenerDetailsPre41 struct {
	Status           string   `json:"status"    yaml:"status"`
	Reason           string   `json:"reason"    yaml:"reason"`
	ActiveProtocols  []string `json:"protocols" yaml:"protocols"`
	InactiveProtocol string   `json:"missing"   yaml:"missing"`
}

// FailureReason implements HealthCheckFailureDetails.
func (d *NoActiveProtocolListenerDetailsPre41) FailureReason() string {
	return d.Reason
}

// NoActiveProtocolListenerDetails41AndLater is the protocol listener check
// payload reported by RabbitMQ 4.1+ nodes: a list of missing protocols.
type NoActiveProtocolListenerDetails41AndLater struct {
	Status            string   `json:"status"    yaml:"status"`
	Reason            string   `json:"reason"    yaml:"reason"`
	ActiveProtocols   []string `json:"protocols" yaml:"protocols"`
	InactiveProtocols []string `json:"missing"   yaml:"missing"`
}

// FailureReason implements HealthCheckFailureDetails.
func (d *NoActiveProtocolListenerDetails41AndLater) FailureReason() string {
	return d.Reason
}
