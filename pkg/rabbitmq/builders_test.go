package rabbitmq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

func TestXArgumentsBuilder(t *testing.T) {
	args := rabbitmq.NewXArgumentsBuilder().
		MessageTTL(30_000).
		MaxLength(100_000).
		OverflowRejectPublish().
		DeadLetterExchange("dlx").
		DeadLetterRoutingKey("expired").
		SingleActiveConsumer(true).
		Build()

	assert.Equal(t, rabbitmq.XArguments{
		"x-message-ttl":             uint64(30_000),
		"x-max-length":              uint64(100_000),
		"x-overflow":                "reject-publish",
		"x-dead-letter-exchange":    "dlx",
		"x-dead-letter-routing-key": "expired",
		"x-single-active-consumer":  true,
	}, args)
}

func TestXArgumentsBuilder_Empty(t *testing.T) {
	// No arguments set means no "arguments" object in the request body.
	assert.Nil(t, rabbitmq.NewXArgumentsBuilder().Build())
}

func TestXArgumentsBuilder_QuorumQueueArguments(t *testing.T) {
	args := rabbitmq.NewXArgumentsBuilder().
		QuorumInitialGroupSize(5).
		DeliveryLimit(10).
		Build()

	assert.Equal(t, rabbitmq.XArguments{
		"x-quorum-initial-group-size": uint32(5),
		"x-delivery-limit":            uint32(10),
	}, args)
}

func TestPolicyDefinitionBuilder(t *testing.T) {
	definition := rabbitmq.NewPolicyDefinitionBuilder().
		MessageTTL(60_000).
		MaxLengthBytes(2_000_000_000).
		OverflowDropHead().
		DeliveryLimit(20).
		Build()

	// Policy definition keys carry no "x-" prefix.
	assert.Equal(t, rabbitmq.PolicyDefinition{
		"message-ttl":      uint64(60_000),
		"max-length-bytes": uint64(2_000_000_000),
		"overflow":         "drop-head",
		"delivery-limit":   uint32(20),
	}, definition)
}

func TestPolicyDefinitionBuilder_StreamKeys(t *testing.T) {
	definition := rabbitmq.NewPolicyDefinitionBuilder().
		MaxAge("7D").
		StreamMaxSegmentSizeBytes(500_000_000).
		Build()

	assert.Equal(t, rabbitmq.PolicyDefinition{
		"max-age":                       "7D",
		"stream-max-segment-size-bytes": uint64(500_000_000),
	}, definition)
}

func TestPolicyDefinitionBuilder_FederationKeys(t *testing.T) {
	definition := rabbitmq.NewPolicyDefinitionBuilder().
		FederationUpstreamSet("all").
		Build()

	assert.Equal(t, rabbitmq.PolicyDefinition{
		"federation-upstream-set": "all",
	}, definition)
}
