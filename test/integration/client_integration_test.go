//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestClient_OverviewAndNodes exercises the read-only cluster endpoints
func TestClient_OverviewAndNodes(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client := NewLibraryClient(t, config)
	ctx := context.Background()

	overview, err := client.Cluster().Overview(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, overview.ClusterName)
	assert.NotEmpty(t, overview.RabbitMQVersion)

	version, err := client.Cluster().ServerVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, overview.RabbitMQVersion, version)

	nodes, err := client.Nodes().List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, nodes)

	footprint, err := client.Nodes().GetMemoryFootprint(ctx, nodes[0].Name)
	require.NoError(t, err)
	require.NotNil(t, footprint.Breakdown)
	assert.Positive(t, footprint.Breakdown.Total.Max())
}

// TestClient_VirtualHostLifecycle creates, inspects, protects and deletes
// a virtual host
func TestClient_VirtualHostLifecycle(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client := NewLibraryClient(t, config)
	ctx := context.Background()

	name := GenerateTestName("it-vhost")

	t.Cleanup(func() {
		_ = client.VirtualHosts().DisableDeletionProtection(ctx, name)
		_ = client.VirtualHosts().Delete(ctx, name, true)
	})

	params := rabbitmq.NewVirtualHostParams(name).
		WithDescription("created by an integration test").
		WithDefaultQueueType(rabbitmq.QueueTypeQuorum)

	require.NoError(t, client.VirtualHosts().Create(ctx, params))

	vhost, err := client.VirtualHosts().Get(ctx, name)
	require.NoError(t, err)
	require.NotNil(t, vhost.Description)
	assert.Equal(t, "created by an integration test", *vhost.Description)

	// A protected virtual host refuses deletion until unprotected
	require.NoError(t, client.VirtualHosts().EnableDeletionProtection(ctx, name))

	err = client.VirtualHosts().Delete(ctx, name, false)
	require.Error(t, err)

	require.NoError(t, client.VirtualHosts().DisableDeletionProtection(ctx, name))
	require.NoError(t, client.VirtualHosts().Delete(ctx, name, false))

	// Idempotent deletion tolerates the absence
	require.NoError(t, client.VirtualHosts().Delete(ctx, name, true))
}

// TestClient_QueueLifecycle declares queues and a stream, inspects and
// deletes them
func TestClient_QueueLifecycle(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client := NewLibraryClient(t, config)
	ctx := context.Background()

	queueName := GenerateTestName("it-queue")
	streamName := GenerateTestName("it-stream")

	t.Cleanup(func() {
		_ = client.Queues().Delete(ctx, "/", queueName, true)
		_ = client.Queues().DeleteStream(ctx, "/", streamName, true)
	})

	args := rabbitmq.NewXArgumentsBuilder().
		MaxLength(1000).
		Build()

	require.NoError(t, client.Queues().Declare(ctx, "/", rabbitmq.NewQuorumQueueParams(queueName, args)))

	queue, err := client.Queues().Get(ctx, "/", queueName)
	require.NoError(t, err)
	assert.Equal(t, rabbitmq.QueueTypeQuorum, queue.Type)
	assert.True(t, queue.Durable)
	assert.EqualValues(t, 1000, queue.Arguments[rabbitmq.XArgumentMaxLength])

	require.NoError(t, client.Queues().DeclareStream(ctx, "/", rabbitmq.NewStreamParams(streamName, "1D")))

	stream, err := client.Queues().GetStream(ctx, "/", streamName)
	require.NoError(t, err)
	assert.Equal(t, rabbitmq.QueueTypeStream, stream.Type)

	queues, err := client.Queues().ListIn(ctx, "/")
	require.NoError(t, err)

	names := make([]string, 0, len(queues))
	for _, q := range queues {
		names = append(names, q.Name)
	}

	assert.Contains(t, names, queueName)
	assert.Contains(t, names, streamName)

	require.NoError(t, client.Queues().Purge(ctx, "/", queueName))
	require.NoError(t, client.Queues().Delete(ctx, "/", queueName, false))
	require.NoError(t, client.Queues().DeleteStream(ctx, "/", streamName, false))
}

// TestClient_MessagesRoundTrip publishes a message through the default
// exchange and fetches it back
func TestClient_MessagesRoundTrip(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client := NewLibraryClient(t, config)
	ctx := context.Background()

	queueName := GenerateTestName("it-messages")

	t.Cleanup(func() {
		_ = client.Queues().Delete(ctx, "/", queueName, true)
	})

	require.NoError(t, client.Queues().Declare(ctx, "/", rabbitmq.NewDurableClassicQueueParams(queueName, nil)))

	// Publishing to the default exchange with the queue name as the
	// routing key routes straight to the queue
	routed, err := client.Messages().Publish(ctx, "/", "", queueName, "round trip payload",
		rabbitmq.MessageProperties{"delivery_mode": 2})
	require.NoError(t, err)
	assert.True(t, routed.Routed)

	messages, err := client.Messages().Get(ctx, "/", queueName, 1, "ack_requeue_false")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "round trip payload", messages[0].Payload)
}

// TestClient_UsersAndPermissions pre-seeds a user with a salted password
// hash and grants it permissions
func TestClient_UsersAndPermissions(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client := NewLibraryClient(t, config)
	ctx := context.Background()

	username := GenerateTestName("it-user")

	t.Cleanup(func() {
		_ = client.Users().Delete(ctx, username, true)
	})

	salt, err := rabbitmq.GenerateSalt()
	require.NoError(t, err)

	hash := rabbitmq.Base64EncodedSaltedPasswordHashSHA256(salt, "integration-s3cret")

	require.NoError(t, client.Users().Create(ctx, rabbitmq.NewMonitoringUserParams(username, hash)))

	user, err := client.Users().Get(ctx, username)
	require.NoError(t, err)
	assert.Contains(t, user.Tags, "monitoring")

	require.NoError(t, client.Permissions().GrantFull(ctx, username, "/"))

	permissions, err := client.Permissions().Get(ctx, "/", username)
	require.NoError(t, err)
	assert.Equal(t, ".*", permissions.Configure)
	assert.Equal(t, ".*", permissions.Read)
	assert.Equal(t, ".*", permissions.Write)

	require.NoError(t, client.Permissions().Clear(ctx, "/", username, false))
	require.NoError(t, client.Users().Delete(ctx, username, false))
}

// TestClient_LimitsRoundTrip sets, lists and clears a virtual host limit
func TestClient_LimitsRoundTrip(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client := NewLibraryClient(t, config)
	ctx := context.Background()

	limit := rabbitmq.NewEnforcedLimitParams(rabbitmq.VirtualHostLimitMaxQueues, 12345)

	t.Cleanup(func() {
		_ = client.Limits().ClearVirtualHostLimit(ctx, "/", rabbitmq.VirtualHostLimitMaxQueues)
	})

	require.NoError(t, client.Limits().SetVirtualHostLimit(ctx, "/", limit))

	limits, err := client.Limits().ListVirtualHostLimits(ctx, "/")
	require.NoError(t, err)
	require.Len(t, limits, 1)
	assert.EqualValues(t, 12345, limits[0].Limits[string(rabbitmq.VirtualHostLimitMaxQueues)])

	require.NoError(t, client.Limits().ClearVirtualHostLimit(ctx, "/", rabbitmq.VirtualHostLimitMaxQueues))
}

// TestClient_DefinitionsExport exports cluster-wide and per-vhost
// definition sets
func TestClient_DefinitionsExport(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client := NewLibraryClient(t, config)
	ctx := context.Background()

	defs, err := client.Definitions().Export(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, defs.VirtualHosts)
	assert.NotEmpty(t, defs.Users)

	vhostDefs, err := client.Definitions().ExportVirtualHost(ctx, "/")
	require.NoError(t, err)
	assert.NotNil(t, vhostDefs)
}

// TestClient_HealthChecks runs the health checks against a healthy broker
func TestClient_HealthChecks(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client := NewLibraryClient(t, config)
	ctx := context.Background()

	require.NoError(t, client.Health().ClusterWideAlarms(ctx))
	require.NoError(t, client.Health().LocalAlarms(ctx))

	// The management API itself listens on an HTTP listener
	require.NoError(t, client.Health().ProtocolListener(ctx, rabbitmq.SupportedProtocolHTTP))

	err := client.Health().PortListener(ctx, 47777)
	require.Error(t, err)
	assert.True(t, rabbitmq.IsHealthCheckFailure(err))
}

// TestClient_FeatureFlags lists feature flags and enables the stable ones
func TestClient_FeatureFlags(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client := NewLibraryClient(t, config)
	ctx := context.Background()

	flags, err := client.FeatureFlags().List(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, flags)

	require.NoError(t, client.FeatureFlags().EnableAllStable(ctx))
}
