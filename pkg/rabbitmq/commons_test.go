package rabbitmq_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

func TestQueueType_PolicyTargetType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		queueType rabbitmq.QueueType
		expected  rabbitmq.PolicyTarget
	}{
		{rabbitmq.QueueTypeClassic, rabbitmq.PolicyTargetClassicQueues},
		{rabbitmq.QueueTypeQuorum, rabbitmq.PolicyTargetQuorumQueues},
		{rabbitmq.QueueTypeStream, rabbitmq.PolicyTargetStreams},
		{rabbitmq.QueueTypeDelayed, rabbitmq.PolicyTargetQueues},
		{rabbitmq.QueueType("x-super-duper"), rabbitmq.PolicyTargetQueues},
	}

	for _, tt := range tests {
		t.Run(string(tt.queueType), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.queueType.PolicyTargetType())
		})
	}
}

func TestPolicyTarget_Matches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		target   rabbitmq.PolicyTarget
		other    rabbitmq.PolicyTarget
		expected bool
	}{
		{"queues covers classic queues", rabbitmq.PolicyTargetQueues, rabbitmq.PolicyTargetClassicQueues, true},
		{"queues covers quorum queues", rabbitmq.PolicyTargetQueues, rabbitmq.PolicyTargetQuorumQueues, true},
		{"queues covers streams", rabbitmq.PolicyTargetQueues, rabbitmq.PolicyTargetStreams, true},
		{"queues does not cover exchanges", rabbitmq.PolicyTargetQueues, rabbitmq.PolicyTargetExchanges, false},
		{"a kind matches itself", rabbitmq.PolicyTargetClassicQueues, rabbitmq.PolicyTargetClassicQueues, true},
		{"specific kinds do not cross-match", rabbitmq.PolicyTargetClassicQueues, rabbitmq.PolicyTargetQuorumQueues, false},
		{"all covers everything", rabbitmq.PolicyTargetAll, rabbitmq.PolicyTargetExchanges, true},
		{"everything is covered by all", rabbitmq.PolicyTargetStreams, rabbitmq.PolicyTargetAll, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.target.Matches(tt.other))
		})
	}
}

func TestNormalizedOverflowBehavior(t *testing.T) {
	t.Parallel()

	assert.Equal(t, rabbitmq.OverflowRejectPublish, rabbitmq.NormalizedOverflowBehavior("reject-publish"))
	assert.Equal(t, rabbitmq.OverflowRejectPublishDlx, rabbitmq.NormalizedOverflowBehavior("reject-publish-dlx"))
	assert.Equal(t, rabbitmq.OverflowDropHead, rabbitmq.NormalizedOverflowBehavior("drop-head"))

	// The broker default wins for anything unrecognized.
	assert.Equal(t, rabbitmq.OverflowDropHead, rabbitmq.NormalizedOverflowBehavior(""))
	assert.Equal(t, rabbitmq.OverflowDropHead, rabbitmq.NormalizedOverflowBehavior("discard-quietly"))
}

func TestNormalizedAcknowledgementMode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, rabbitmq.TransferAcknowledgementImmediate, rabbitmq.NormalizedAcknowledgementMode("no-ack"))
	assert.Equal(t, rabbitmq.TransferAcknowledgementWhenPublished, rabbitmq.NormalizedAcknowledgementMode("on-publish"))
	assert.Equal(t, rabbitmq.TransferAcknowledgementWhenConfirmed, rabbitmq.NormalizedAcknowledgementMode("on-confirm"))

	assert.Equal(t, rabbitmq.TransferAcknowledgementWhenConfirmed, rabbitmq.NormalizedAcknowledgementMode("eventually"))
}

func TestNormalizedChannelUseMode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, rabbitmq.ChannelUseModeSingle, rabbitmq.NormalizedChannelUseMode("single"))
	assert.Equal(t, rabbitmq.ChannelUseModeMultiple, rabbitmq.NormalizedChannelUseMode("multiple"))
	assert.Equal(t, rabbitmq.ChannelUseModeMultiple, rabbitmq.NormalizedChannelUseMode(""))
}

func TestNormalizedFederationCleanupMode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, rabbitmq.FederationCleanupModeNever, rabbitmq.NormalizedFederationCleanupMode("never"))
	assert.Equal(t, rabbitmq.FederationCleanupModeDefault, rabbitmq.NormalizedFederationCleanupMode("default"))
	assert.Equal(t, rabbitmq.FederationCleanupModeDefault, rabbitmq.NormalizedFederationCleanupMode("sometimes"))
}

func TestBindingDestinationType_PathAbbreviation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "q", rabbitmq.BindingDestinationQueue.PathAbbreviation())
	assert.Equal(t, "e", rabbitmq.BindingDestinationExchange.PathAbbreviation())
}

func TestPolicyTarget_DecodePreservesUnknownValues(t *testing.T) {
	t.Parallel()

	payload := `{"name":"p","vhost":"/","pattern":".*","apply-to":"mqtt_things","priority":0,"definition":{}}`

	var policy rabbitmq.Policy
	require.NoError(t, json.Unmarshal([]byte(payload), &policy))

	assert.Equal(t, rabbitmq.PolicyTarget("mqtt_things"), policy.ApplyTo)
	assert.Equal(t, "mqtt_things", policy.ApplyTo.String())
}
