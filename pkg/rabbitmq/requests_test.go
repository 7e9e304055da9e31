package rabbitmq_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

func TestNewQuorumQueueParams(t *testing.T) {
	t.Parallel()

	params := rabbitmq.NewQuorumQueueParams("qq.orders", nil)

	assert.Equal(t, "qq.orders", params.Name)
	assert.Equal(t, rabbitmq.QueueTypeQuorum, params.QueueType)
	assert.True(t, params.Durable)
	assert.False(t, params.AutoDelete)
	assert.Equal(t, "quorum", params.Arguments[rabbitmq.XArgumentQueueType])
}

// The queue type travels as the x-queue-type argument, not as a body
// field of its own.
func TestQueueParams_QueueTypeSerialization(t *testing.T) {
	t.Parallel()

	params := rabbitmq.NewStreamQueueParams("events.ingress", nil)

	body, err := json.Marshal(params)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"durable": true,
		"auto_delete": false,
		"exclusive": false,
		"name": "events.ingress",
		"arguments": {"x-queue-type": "stream"}
	}`, string(body))
}

func TestQueueParams_ArgumentBuilders(t *testing.T) {
	t.Parallel()

	params := rabbitmq.NewDurableClassicQueueParams("orders", nil).
		WithMessageTTL(60_000).
		WithMaxLength(100_000).
		WithDeadLetterExchange("dlx").
		WithDeadLetterRoutingKey("expired")

	assert.Equal(t, rabbitmq.XArguments{
		rabbitmq.XArgumentQueueType:            "classic",
		rabbitmq.XArgumentMessageTTL:           uint64(60_000),
		rabbitmq.XArgumentMaxLength:            uint64(100_000),
		rabbitmq.XArgumentDeadLetterExchange:   "dlx",
		rabbitmq.XArgumentDeadLetterRoutingKey: "expired",
	}, params.Arguments)
}

func TestNewTransientAutoDeleteQueueParams(t *testing.T) {
	t.Parallel()

	params := rabbitmq.NewTransientAutoDeleteQueueParams("replies", nil)

	assert.False(t, params.Durable)
	assert.True(t, params.AutoDelete)
	assert.Equal(t, "classic", params.Arguments[rabbitmq.XArgumentQueueType])
}

func TestQueueInfo_AsParams(t *testing.T) {
	t.Parallel()

	info := rabbitmq.QueueInfo{
		Name:        "qq.orders",
		VirtualHost: "/",
		Type:        rabbitmq.QueueTypeQuorum,
		Durable:     true,
		Arguments: rabbitmq.XArguments{
			rabbitmq.XArgumentQueueType: "quorum",
			rabbitmq.XArgumentMaxLength: float64(100_000),
		},
	}

	params := info.AsParams()

	assert.Equal(t, "qq.orders", params.Name)
	assert.Equal(t, rabbitmq.QueueTypeQuorum, params.QueueType)
	assert.True(t, params.Durable)

	// The arguments are copied, not aliased.
	params.Arguments[rabbitmq.XArgumentExpires] = 120_000
	assert.NotContains(t, info.Arguments, rabbitmq.XArgumentExpires)
}

func TestStreamParams_Serialization(t *testing.T) {
	t.Parallel()

	params := rabbitmq.NewStreamParams("events.ingress", "7D")

	body, err := json.Marshal(params)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"name": "events.ingress",
		"expiration": "7D",
		"max_length_bytes": null,
		"max_segment_length_bytes": null
	}`, string(body))
}

func TestStreamParams_WithLimits(t *testing.T) {
	t.Parallel()

	params := rabbitmq.NewStreamParamsWithLengthLimit("events.ingress", "7D", 20_000_000_000).
		WithMaxSegmentLengthBytes(500_000_000)

	body, err := json.Marshal(params)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"name": "events.ingress",
		"expiration": "7D",
		"max_length_bytes": 20000000000,
		"max_segment_length_bytes": 500000000
	}`, string(body))
}

// User tags are a single comma-separated string on the wire, unlike the
// tag lists in responses.
func TestUserParams_Serialization(t *testing.T) {
	t.Parallel()

	params := rabbitmq.NewAdministratorUserParams("ops", "kI3GCqW5JLMJa4iX1lo7X4D6XbYqlLgxIs30+P6tENUV2POR")

	body, err := json.Marshal(params)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"name": "ops",
		"password_hash": "kI3GCqW5JLMJa4iX1lo7X4D6XbYqlLgxIs30+P6tENUV2POR",
		"tags": "administrator"
	}`, string(body))

	assert.Equal(t, "monitoring", rabbitmq.NewMonitoringUserParams("mon", "h").Tags)
	assert.Equal(t, "management", rabbitmq.NewManagementUserParams("mgmt", "h").Tags)
}

// The exchange name travels in the request path, not the body.
func TestExchangeParams_Serialization(t *testing.T) {
	t.Parallel()

	params := rabbitmq.NewDurableTopicExchangeParams("events", nil)

	body, err := json.Marshal(params)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"type": "topic",
		"durable": true,
		"auto_delete": false
	}`, string(body))
}

func TestExchangeInfo_AsParams(t *testing.T) {
	t.Parallel()

	info := rabbitmq.ExchangeInfo{
		Name:        "events",
		VirtualHost: "/",
		Type:        "x-delayed-message",
		Durable:     true,
		Arguments:   rabbitmq.XArguments{"x-delayed-type": "topic"},
	}

	params := info.AsParams()

	assert.Equal(t, "events", params.Name)
	assert.Equal(t, rabbitmq.ExchangeTypeDelayedMessage, params.Type)
	assert.True(t, params.Durable)

	params.Arguments["x-delayed-type"] = "direct"
	assert.Equal(t, "topic", info.Arguments["x-delayed-type"])
}

func TestVirtualHostParams_Builders(t *testing.T) {
	t.Parallel()

	params := rabbitmq.NewVirtualHostParams("team-a").
		WithDescription("Team A services").
		WithDefaultQueueType(rabbitmq.QueueTypeQuorum).
		WithTags("production", "team-a")

	body, err := json.Marshal(params)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"name": "team-a",
		"description": "Team A services",
		"default_queue_type": "quorum",
		"tags": ["production", "team-a"],
		"tracing": false
	}`, string(body))
}

func TestVirtualHost_AsParams(t *testing.T) {
	t.Parallel()

	description := "Team A services"
	queueType := rabbitmq.QueueTypeQuorum
	tags := rabbitmq.TagList{"production"}

	vhost := rabbitmq.VirtualHost{
		Name:             "team-a",
		Description:      &description,
		Tags:             &tags,
		DefaultQueueType: &queueType,
	}

	params := vhost.AsParams()

	assert.Equal(t, "team-a", params.Name)
	assert.Equal(t, "Team A services", params.Description)
	assert.Equal(t, []string{"production"}, params.Tags)
	assert.Equal(t, rabbitmq.QueueTypeQuorum, params.DefaultQueueType)
	assert.False(t, params.Tracing)

	bare := rabbitmq.VirtualHost{Name: "team-b"}
	assert.Equal(t, rabbitmq.NewVirtualHostParams("team-b"), bare.AsParams())
}

func TestNewPolicyParams(t *testing.T) {
	t.Parallel()

	params := rabbitmq.NewPolicyParams("/", "qq-overrides", `^qq\.`, rabbitmq.PolicyDefinition{
		"delivery-limit": 20,
	}).WithApplyTo(rabbitmq.PolicyTargetQuorumQueues).WithPriority(5)

	assert.Equal(t, rabbitmq.PolicyTargetQuorumQueues, params.ApplyTo)
	assert.Equal(t, int32(5), params.Priority)

	body, err := json.Marshal(params)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"vhost": "/",
		"name": "qq-overrides",
		"pattern": "^qq\\.",
		"apply-to": "quorum_queues",
		"priority": 5,
		"definition": {"delivery-limit": 20}
	}`, string(body))
}

// A policy with a nil definition still serializes as {}, not null. The
// broker rejects a null definition.
func TestPolicy_AsParams(t *testing.T) {
	t.Parallel()

	policy := rabbitmq.Policy{
		Name:        "empty",
		VirtualHost: "/",
		Pattern:     ".*",
		ApplyTo:     rabbitmq.PolicyTargetQueues,
	}

	params := policy.AsParams()
	require.NotNil(t, params.Definition)

	body, err := json.Marshal(params)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"definition":{}`)
}

func TestNewEnforcedLimitParams(t *testing.T) {
	t.Parallel()

	vhostLimit := rabbitmq.NewEnforcedLimitParams(rabbitmq.VirtualHostLimitMaxConnections, 500)

	body, err := json.Marshal(vhostLimit)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind": "max-connections", "value": 500}`, string(body))

	userLimit := rabbitmq.NewEnforcedLimitParams(rabbitmq.UserLimitMaxChannels, 100)

	body, err = json.Marshal(userLimit)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind": "max-channels", "value": 100}`, string(body))
}

func TestRuntimeParameter_AsDefinition(t *testing.T) {
	t.Parallel()

	param := rabbitmq.RuntimeParameter{
		Name:        "upstream.eu-west",
		VirtualHost: "/",
		Component:   "federation-upstream",
		Value: rabbitmq.RuntimeParameterValue{
			"uri": "amqps://rmq.eu-west.example.com:5671",
		},
	}

	definition := param.AsDefinition()

	assert.Equal(t, "upstream.eu-west", definition.Name)
	assert.Equal(t, "/", definition.VirtualHost)
	assert.Equal(t, "federation-upstream", definition.Component)
	assert.Equal(t, "amqps://rmq.eu-west.example.com:5671", definition.Value["uri"])
}
