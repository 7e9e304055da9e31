package rabbitmq_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

func TestFederationUpstreamFromRuntimeParameter(t *testing.T) {
	t.Parallel()

	// Numbers arrive as float64, the way encoding/json decodes them.
	param := &rabbitmq.RuntimeParameter{
		Name:        "upstream.us-east",
		VirtualHost: "/",
		Component:   rabbitmq.FederationUpstreamComponent,
		Value: rabbitmq.RuntimeParameterValue{
			"uri":                   "amqps://rmq.us-east.example.com:5671",
			"exchange":              "events",
			"max-hops":              float64(2),
			"queue-type":            "quorum",
			"expires":               float64(3_600_000),
			"message-ttl":           float64(60_000),
			"resource-cleanup-mode": "never",
			"ack-mode":              "no-ack",
			"channel-use-mode":      "single",
			"prefetch-count":        float64(500),
			"reconnect-delay":       float64(8),
			"trust-user-id":         true,
		},
	}

	upstream, err := rabbitmq.FederationUpstreamFromRuntimeParameter(param)
	require.NoError(t, err)

	assert.Equal(t, "upstream.us-east", upstream.Name)
	assert.Equal(t, "/", upstream.VirtualHost)
	assert.Equal(t, "amqps://rmq.us-east.example.com:5671", upstream.URI)
	assert.Equal(t, rabbitmq.TransferAcknowledgementImmediate, upstream.AckMode)
	assert.Equal(t, rabbitmq.ChannelUseModeSingle, upstream.ChannelUseMode)
	assert.Equal(t, rabbitmq.FederationCleanupModeNever, upstream.ResourceCleanupMode)

	require.NotNil(t, upstream.Exchange)
	assert.Equal(t, "events", *upstream.Exchange)
	require.NotNil(t, upstream.MaxHops)
	assert.Equal(t, uint8(2), *upstream.MaxHops)
	require.NotNil(t, upstream.QueueType)
	assert.Equal(t, rabbitmq.QueueTypeQuorum, *upstream.QueueType)
	require.NotNil(t, upstream.Expires)
	assert.Equal(t, uint32(3_600_000), *upstream.Expires)
	require.NotNil(t, upstream.MessageTTL)
	assert.Equal(t, uint32(60_000), *upstream.MessageTTL)
	require.NotNil(t, upstream.PrefetchCount)
	assert.Equal(t, uint32(500), *upstream.PrefetchCount)
	require.NotNil(t, upstream.ReconnectDelay)
	assert.Equal(t, uint32(8), *upstream.ReconnectDelay)
	require.NotNil(t, upstream.TrustUserID)
	assert.True(t, *upstream.TrustUserID)
}

func TestFederationUpstreamFromRuntimeParameter_Defaults(t *testing.T) {
	t.Parallel()

	param := &rabbitmq.RuntimeParameter{
		Name:        "upstream.dr",
		VirtualHost: "/",
		Component:   rabbitmq.FederationUpstreamComponent,
		Value:       rabbitmq.RuntimeParameterValue{"uri": "amqps://dr.example.com:5671"},
	}

	upstream, err := rabbitmq.FederationUpstreamFromRuntimeParameter(param)
	require.NoError(t, err)

	assert.Equal(t, rabbitmq.TransferAcknowledgementWhenConfirmed, upstream.AckMode)
	assert.Equal(t, rabbitmq.ChannelUseModeMultiple, upstream.ChannelUseMode)
	assert.Equal(t, rabbitmq.FederationCleanupModeDefault, upstream.ResourceCleanupMode)
	assert.Nil(t, upstream.PrefetchCount)
	assert.Nil(t, upstream.Queue)
	assert.Nil(t, upstream.Exchange)
}

func TestFederationUpstreamFromRuntimeParameter_MissingURI(t *testing.T) {
	t.Parallel()

	param := &rabbitmq.RuntimeParameter{
		Name:        "upstream.broken",
		VirtualHost: "/",
		Component:   rabbitmq.FederationUpstreamComponent,
		Value:       rabbitmq.RuntimeParameterValue{"ack-mode": "on-confirm"},
	}

	upstream, err := rabbitmq.FederationUpstreamFromRuntimeParameter(param)

	assert.Nil(t, upstream)

	var convErr *rabbitmq.ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, "FederationUpstream", convErr.Kind)
	assert.Equal(t, "uri", convErr.Property)
}

func TestFederationUpstreamParams_RoundTrip(t *testing.T) {
	t.Parallel()

	params := rabbitmq.NewQueueFederationUpstreamParams(
		"/",
		"upstream.eu-west",
		"amqps://rmq.eu-west.example.com:5671",
		rabbitmq.QueueFederationParams{Queue: "orders"},
	)
	params.AckMode = rabbitmq.TransferAcknowledgementWhenPublished
	params.TrustUserID = true

	definition := params.AsRuntimeParameterDefinition()

	assert.Equal(t, "upstream.eu-west", definition.Name)
	assert.Equal(t, rabbitmq.FederationUpstreamComponent, definition.Component)

	// Declaring and re-reading the upstream goes through JSON, so the
	// typed values degrade to generic ones on the way back.
	encoded, err := json.Marshal(definition)
	require.NoError(t, err)

	var param rabbitmq.RuntimeParameter
	require.NoError(t, json.Unmarshal(encoded, &param))

	upstream, err := rabbitmq.FederationUpstreamFromRuntimeParameter(&param)
	require.NoError(t, err)

	assert.Equal(t, "upstream.eu-west", upstream.Name)
	assert.Equal(t, "/", upstream.VirtualHost)
	assert.Equal(t, "amqps://rmq.eu-west.example.com:5671", upstream.URI)
	assert.Equal(t, rabbitmq.TransferAcknowledgementWhenPublished, upstream.AckMode)
	assert.Equal(t, rabbitmq.ChannelUseModeMultiple, upstream.ChannelUseMode)

	require.NotNil(t, upstream.PrefetchCount)
	assert.Equal(t, rabbitmq.DefaultFederationPrefetch, *upstream.PrefetchCount)
	require.NotNil(t, upstream.ReconnectDelay)
	assert.Equal(t, rabbitmq.DefaultFederationReconnectDelay, *upstream.ReconnectDelay)
	require.NotNil(t, upstream.TrustUserID)
	assert.True(t, *upstream.TrustUserID)
	require.NotNil(t, upstream.Queue)
	assert.Equal(t, "orders", *upstream.Queue)
}

func TestFederationUpstreamParams_SameNamedQueue(t *testing.T) {
	t.Parallel()

	params := rabbitmq.NewQueueFederationUpstreamParams(
		"/",
		"upstream.dr",
		"amqps://dr.example.com:5671",
		rabbitmq.QueueFederationParams{},
	)

	definition := params.AsRuntimeParameterDefinition()

	// An explicit null queue federates every queue with its same-named
	// upstream counterpart.
	queue, present := definition.Value["queue"]
	assert.True(t, present)
	assert.Nil(t, queue)
	assert.NotContains(t, definition.Value, "consumer-tag")
}

func TestFederationUpstream_AsParams(t *testing.T) {
	t.Parallel()

	queue := "orders"
	upstream := &rabbitmq.FederationUpstream{
		Name:           "upstream.eu-west",
		VirtualHost:    "/",
		URI:            "amqps://rmq.eu-west.example.com:5671",
		AckMode:        rabbitmq.TransferAcknowledgementWhenConfirmed,
		ChannelUseMode: rabbitmq.ChannelUseModeMultiple,
		Queue:          &queue,
	}

	params := upstream.AsParams()

	// Unset numeric fields fall back to the plugin defaults.
	assert.Equal(t, rabbitmq.DefaultFederationPrefetch, params.PrefetchCount)
	assert.Equal(t, rabbitmq.DefaultFederationReconnectDelay, params.ReconnectDelay)

	require.NotNil(t, params.QueueFederation)
	assert.Equal(t, "orders", params.QueueFederation.Queue)
	assert.Nil(t, params.ExchangeFederation)
}

func TestFederationUpstream_AsParamsForExchangeFederation(t *testing.T) {
	t.Parallel()

	exchange := "events"
	maxHops := uint8(1)
	upstream := &rabbitmq.FederationUpstream{
		Name:           "upstream.us-east",
		VirtualHost:    "/",
		URI:            "amqps://rmq.us-east.example.com:5671",
		AckMode:        rabbitmq.TransferAcknowledgementWhenConfirmed,
		ChannelUseMode: rabbitmq.ChannelUseModeMultiple,
		Exchange:       &exchange,
		MaxHops:        &maxHops,
	}

	params := upstream.AsParams()

	assert.Nil(t, params.QueueFederation)
	require.NotNil(t, params.ExchangeFederation)
	assert.Equal(t, "events", params.ExchangeFederation.Exchange)
	assert.Equal(t, uint8(1), params.ExchangeFederation.MaxHops)
}
