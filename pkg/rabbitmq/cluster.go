package rabbitmq

import "strings"

// TagMap is a map of tags with arbitrary values, used for cluster and node
// tags.
type TagMap map[string]interface{}

// Rate is a moving rate of some metric.
type Rate struct {
	Rate float64 `json:"rate" yaml:"rate"`
}

// ChurnRates groups connection, channel and queue churn metrics.
type ChurnRates struct {
	ConnectionCreated uint32 `json:"connection_created" yaml:"connection_created"`
	ConnectionClosed  uint32 `json:"connection_closed"  yaml:"connection_closed"`
	QueueDeclared     uint32 `json:"queue_declared"     yaml:"queue_declared"`
	QueueCreated      uint32 `json:"queue_created"      yaml:"queue_created"`
	QueueDeleted      uint32 `json:"queue_deleted"      yaml:"queue_deleted"`
	ChannelCreated    uint32 `json:"channel_created"    yaml:"channel_created"`
	ChannelClosed     uint32 `json:"channel_closed"     yaml:"channel_closed"`
}

// ObjectTotals counts the key object kinds in a cluster.
type ObjectTotals struct {
	Connections uint64 `json:"connections" yaml:"connections"`
	Channels    uint64 `json:"channels"    yaml:"channels"`
	Queues      uint64 `json:"queues"      yaml:"queues"`
	Exchanges   uint64 `json:"exchanges"   yaml:"exchanges"`
	Consumers   uint64 `json:"consumers"   yaml:"consumers"`
}

// QueueTotals aggregates message counts across all queues.
type QueueTotals struct {
	Messages               uint64 `json:"messages"                yaml:"messages"`
	MessagesReady          uint64 `json:"messages_ready"          yaml:"messages_ready"`
	MessagesUnacknowledged uint64 `json:"messages_unacknowledged" yaml:"messages_unacknowledged"`
	MessagesDetails        Rate   `json:"messages_details"        yaml:"messages_details"`
	MessagesReadyDetails   Rate   `json:"messages_ready_details"  yaml:"messages_ready_details"`
	MessagesUnackedDetails Rate   `json:"messages_unacknowledged_details" yaml:"messages_unacknowledged_details"`
}

// MessageStats groups cluster-wide message movement rates. Individual rates
// are nil when the broker does not report them.
type MessageStats struct {
	DeliveryDetails             *Rate `json:"deliver_get_details,omitempty"      yaml:"deliver_get_details,omitempty"`
	PublishingDetails           *Rate `json:"publish_details,omitempty"          yaml:"publish_details,omitempty"`
	DeliveryWithAutoAckDetails  *Rate `json:"deliver_no_ack_details,omitempty"   yaml:"deliver_no_ack_details,omitempty"`
	RedeliveryDetails           *Rate `json:"redeliver_details,omitempty"        yaml:"redeliver_details,omitempty"`
	PublisherConfirmDetails     *Rate `json:"confirm_details,omitempty"          yaml:"confirm_details,omitempty"`
	ConsumerAckDetails          *Rate `json:"ack_details,omitempty"              yaml:"ack_details,omitempty"`
	UnroutableDroppedDetails    *Rate `json:"drop_unroutable_details,omitempty"  yaml:"drop_unroutable_details,omitempty"`
	UnroutableReturnedDetails   *Rate `json:"return_unroutable_details,omitempty" yaml:"return_unroutable_details,omitempty"`
}

// Overview is the cluster overview: versions, totals, churn and message
// rates as reported by the node that served the request.
type Overview struct {
	ClusterName string `json:"cluster_name" yaml:"cluster_name"`
	Node        string `json:"node"         yaml:"node"`

	ErlangFullVersion string `json:"erlang_full_version" yaml:"erlang_full_version"`
	ErlangVersion     string `json:"erlang_version"      yaml:"erlang_version"`
	RabbitMQVersion   string `json:"rabbitmq_version"    yaml:"rabbitmq_version"`
	ProductName       string `json:"product_name"        yaml:"product_name"`
	ProductVersion    string `json:"product_version"     yaml:"product_version"`

	// Not reported by 3.13.x nodes.
	ClusterTags *TagMap `json:"cluster_tags,omitempty" yaml:"cluster_tags,omitempty"`
	NodeTags    *TagMap `json:"node_tags,omitempty"    yaml:"node_tags,omitempty"`

	StatisticsDBEventQueue uint64       `json:"statistics_db_event_queue" yaml:"statistics_db_event_queue"`
	ChurnRates             ChurnRates   `json:"churn_rates"               yaml:"churn_rates"`
	QueueTotals            QueueTotals  `json:"queue_totals"              yaml:"queue_totals"`
	ObjectTotals           ObjectTotals `json:"object_totals"             yaml:"object_totals"`
	MessageStats           MessageStats `json:"message_stats"             yaml:"message_stats"`
}

// HasJITEnabled reports whether the node's Erlang runtime uses the JIT.
func (o *Overview) HasJITEnabled() bool {
	return strings.Contains(o.ErlangFullVersion, "[jit]")
}

// ClusterNode represents a cluster member.
type ClusterNode struct {
	Name       string `json:"name"       yaml:"name"`
	Uptime     uint64 `json:"uptime"     yaml:"uptime"`
	RunQueue   uint32 `json:"run_queue"  yaml:"run_queue"`
	Processors uint32 `json:"processors" yaml:"processors"`
	OSPid      string `json:"os_pid"     yaml:"os_pid"`
	FDTotal    uint32 `json:"fd_total"   yaml:"fd_total"`

	TotalErlangProcesses uint32 `json:"proc_total" yaml:"proc_total"`

	MemoryHighWatermark       uint64 `json:"mem_limit"  yaml:"mem_limit"`
	HasMemoryAlarmInEffect    bool   `json:"mem_alarm"  yaml:"mem_alarm"`
	FreeDiskSpaceLowWatermark uint64 `json:"disk_free_limit" yaml:"disk_free_limit"`
	HasFreeDiskSpaceAlarm     bool   `json:"disk_free_alarm" yaml:"disk_free_alarm"`

	RatesMode      string     `json:"rates_mode"      yaml:"rates_mode"`
	EnabledPlugins PluginList `json:"enabled_plugins" yaml:"enabled_plugins"`
	BeingDrained   bool       `json:"being_drained"   yaml:"being_drained"`
}

// ClusterIdentity is the name the cluster identifies itself as to clients.
type ClusterIdentity struct {
	Name string `json:"name" yaml:"name"`
}

// GarbageCollectionDetails reports Erlang VM garbage collection settings
// and counters for a process (a queue, channel or connection process).
type GarbageCollectionDetails struct {
	FullSweepAfter  uint32 `json:"fullsweep_after"    yaml:"fullsweep_after"`
	MaxHeapSize     uint32 `json:"max_heap_size"      yaml:"max_heap_size"`
	MinBinVHeapSize uint32 `json:"min_bin_vheap_size" yaml:"min_bin_vheap_size"`
	MinHeapSize     uint32 `json:"min_heap_size"      yaml:"min_heap_size"`
	MinorGCs        uint32 `json:"minor_gcs"          yaml:"minor_gcs"`
}

// NodeMemoryTotals reports a node's memory use as computed by different
// strategies.
type NodeMemoryTotals struct {
	RSS           uint64 `json:"rss"       yaml:"rss"`
	Allocated     uint64 `json:"allocated" yaml:"allocated"`
	UsedByRuntime uint64 `json:"erlang"    yaml:"erlang"`
}

// Max returns the greatest value among the totals computed with different
// strategies.
func (t *NodeMemoryTotals) Max() uint64 {
	maximum := t.RSS

	if t.Allocated > maximum {
		maximum = t.Allocated
	}

	if t.UsedByRuntime > maximum {
		maximum = t.UsedByRuntime
	}

	return maximum
}

// NodeMemoryBreakdown itemizes a node's memory footprint.
type NodeMemoryBreakdown struct {
	ConnectionReaders  uint64 `json:"connection_readers"  yaml:"connection_readers"`
	ConnectionWriters  uint64 `json:"connection_writers"  yaml:"connection_writers"`
	ConnectionChannels uint64 `json:"connection_channels" yaml:"connection_channels"`
	ConnectionOther    uint64 `json:"connection_other"    yaml:"connection_other"`

	ClassicQueueProcs             uint64 `json:"queue_procs"        yaml:"queue_procs"`
	QuorumQueueProcs              uint64 `json:"quorum_queue_procs" yaml:"quorum_queue_procs"`
	StreamQueueProcs              uint64 `json:"stream_queue_procs" yaml:"stream_queue_procs"`
	StreamQueueReplicaReaderProcs uint64 `json:"stream_queue_replica_reader_procs" yaml:"stream_queue_replica_reader_procs"`
	StreamQueueCoordinatorProcs   uint64 `json:"stream_queue_coordinator_procs"    yaml:"stream_queue_coordinator_procs"`

	Plugins                uint64 `json:"plugins"            yaml:"plugins"`
	MetadataStore          uint64 `json:"metadata_store"     yaml:"metadata_store"`
	OtherProcs             uint64 `json:"other_proc"         yaml:"other_proc"`
	Metrics                uint64 `json:"metrics"            yaml:"metrics"`
	ManagementDB           uint64 `json:"mgmt_db"            yaml:"mgmt_db"`
	Mnesia                 uint64 `json:"mnesia"             yaml:"mnesia"`
	QuorumQueueETSTables   uint64 `json:"quorum_ets"         yaml:"quorum_ets"`
	MetadataStoreETSTables uint64 `json:"metadata_store_ets" yaml:"metadata_store_ets"`
	OtherETSTables         uint64 `json:"other_ets"          yaml:"other_ets"`

	BinaryHeap     uint64 `json:"binary"    yaml:"binary"`
	MessageIndices uint64 `json:"msg_index" yaml:"msg_index"`
	Code           uint64 `json:"code"      yaml:"code"`
	AtomTable      uint64 `json:"atom"      yaml:"atom"`
	OtherSystem    uint64 `json:"other_system" yaml:"other_system"`

	AllocatedButUnused     uint64 `json:"allocated_unused"      yaml:"allocated_unused"`
	ReservedButUnallocated uint64 `json:"reserved_unallocated"  yaml:"reserved_unallocated"`
	CalculationStrategy    string `json:"strategy"              yaml:"strategy"`

	Total NodeMemoryTotals `json:"total" yaml:"total"`
}

// NodeMemoryFootprint is the per-node memory footprint report.
type NodeMemoryFootprint struct {
	Breakdown *NodeMemoryBreakdown `json:"memory,omitempty" yaml:"memory,omitempty"`
}

// AuthenticationAttemptStatistics reports the authentication attempts made
// to a node, per protocol.
type AuthenticationAttemptStatistics struct {
	Protocol        string `json:"protocol"                yaml:"protocol"`
	AllAttemptCount uint64 `json:"auth_attempts"           yaml:"auth_attempts"`
	FailureCount    uint64 `json:"auth_attempts_failed"    yaml:"auth_attempts_failed"`
	SuccessCount    uint64 `json:"auth_attempts_succeeded" yaml:"auth_attempts_succeeded"`
}

// Listener represents a protocol listener on a node.
type Listener struct {
	Node      string `json:"node"       yaml:"node"`
	Protocol  string `json:"protocol"   yaml:"protocol"`
	Port      uint32 `json:"port"       yaml:"port"`
	Interface string `json:"ip_address" yaml:"ip_address"`
}
