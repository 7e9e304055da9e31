package rabbitmq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

func TestPolicyDefinition_IsEmpty(t *testing.T) {
	t.Parallel()

	var unset rabbitmq.PolicyDefinition
	assert.True(t, unset.IsEmpty())

	assert.True(t, rabbitmq.PolicyDefinition{}.IsEmpty())
	assert.False(t, rabbitmq.PolicyDefinition{"max-age": "1D"}.IsEmpty())
}

func TestPolicyDefinition_KeyClassification(t *testing.T) {
	t.Parallel()

	cmq := rabbitmq.PolicyDefinition{"ha-mode": "exactly", "ha-params": 2}
	assert.True(t, cmq.HasCMQKeys())
	assert.True(t, cmq.HasQuorumQueueIncompatibleKeys())

	// queue-mode is a lazy queue key: not a CMQ key, but still
	// unsupported by quorum queues.
	lazy := rabbitmq.PolicyDefinition{"queue-mode": "lazy"}
	assert.False(t, lazy.HasCMQKeys())
	assert.True(t, lazy.HasQuorumQueueIncompatibleKeys())

	plain := rabbitmq.PolicyDefinition{"max-length": 10_000}
	assert.False(t, plain.HasCMQKeys())
	assert.False(t, plain.HasQuorumQueueIncompatibleKeys())
}

func TestPolicyDefinition_WithoutKeysReturnsACopy(t *testing.T) {
	t.Parallel()

	original := rabbitmq.PolicyDefinition{
		"ha-mode":    "all",
		"max-length": 50_000,
	}

	stripped := original.WithoutKeys([]string{"ha-mode"})

	assert.Equal(t, rabbitmq.PolicyDefinition{"max-length": 50_000}, stripped)
	assert.Equal(t, rabbitmq.PolicyDefinition{"ha-mode": "all", "max-length": 50_000}, original)
}

func TestPolicyDefinition_Merge(t *testing.T) {
	t.Parallel()

	d := rabbitmq.PolicyDefinition{"max-length": 10_000, "overflow": "drop-head"}
	d.Merge(rabbitmq.PolicyDefinition{"overflow": "reject-publish", "message-ttl": 60_000})

	assert.Equal(t, rabbitmq.PolicyDefinition{
		"max-length":  10_000,
		"overflow":    "reject-publish",
		"message-ttl": 60_000,
	}, d)
}

func TestPolicy_DoesMatchObject(t *testing.T) {
	t.Parallel()

	policy := rabbitmq.Policy{
		Name:        "exactly-foo",
		VirtualHost: "/",
		Pattern:     "^foo$",
		ApplyTo:     rabbitmq.PolicyTargetQueues,
		Definition:  rabbitmq.PolicyDefinition{"max-length": 10_000},
	}

	tests := []struct {
		name     string
		vhost    string
		object   string
		target   rabbitmq.PolicyTarget
		expected bool
	}{
		{"classic queue with the exact name", "/", "foo", rabbitmq.PolicyTargetClassicQueues, true},
		{"quorum queue with the exact name", "/", "foo", rabbitmq.PolicyTargetQuorumQueues, true},
		{"stream with the exact name", "/", "foo", rabbitmq.PolicyTargetStreams, true},
		{"name that only shares a prefix", "/", "foobar", rabbitmq.PolicyTargetClassicQueues, false},
		{"queue in another virtual host", "other", "foo", rabbitmq.PolicyTargetClassicQueues, false},
		{"exchange with the exact name", "/", "foo", rabbitmq.PolicyTargetExchanges, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, policy.DoesMatchObject(tt.vhost, tt.object, tt.target))
		})
	}
}

func TestPolicy_DoesMatchObject_InvalidPattern(t *testing.T) {
	t.Parallel()

	policy := rabbitmq.Policy{
		Name:        "broken",
		VirtualHost: "/",
		Pattern:     "((",
		ApplyTo:     rabbitmq.PolicyTargetQueues,
	}

	assert.False(t, policy.DoesMatchObject("/", "((", rabbitmq.PolicyTargetClassicQueues))
}

func TestPolicy_AppliesToAllTargets(t *testing.T) {
	t.Parallel()

	policy := rabbitmq.Policy{
		Name:        "everything",
		VirtualHost: "/",
		Pattern:     ".*",
		ApplyTo:     rabbitmq.PolicyTargetAll,
	}

	assert.True(t, policy.DoesMatchObject("/", "orders", rabbitmq.PolicyTargetClassicQueues))
	assert.True(t, policy.DoesMatchObject("/", "events", rabbitmq.PolicyTargetExchanges))
}

func TestPolicy_InsertDefinitionKey(t *testing.T) {
	t.Parallel()

	policy := rabbitmq.Policy{
		Name:        "blank",
		VirtualHost: "/",
		Pattern:     ".*",
		ApplyTo:     rabbitmq.PolicyTargetQueues,
	}

	policy.InsertDefinitionKey("max-length", 25_000)
	policy.InsertDefinitionKey("overflow", "reject-publish")

	assert.ElementsMatch(t, []string{"max-length", "overflow"}, policy.DefinitionKeys())
	assert.Equal(t, 25_000, policy.Definition["max-length"])
}

func TestPolicy_WithoutCMQKeysReturnsACopy(t *testing.T) {
	t.Parallel()

	policy := rabbitmq.Policy{
		Name:        "cq-ha",
		VirtualHost: "/",
		Pattern:     `^cq\.`,
		ApplyTo:     rabbitmq.PolicyTargetQueues,
		Definition: rabbitmq.PolicyDefinition{
			"ha-mode":    "all",
			"max-length": 50_000,
		},
	}

	stripped := policy.WithoutCMQKeys()

	assert.False(t, stripped.HasCMQKeys())
	assert.Equal(t, rabbitmq.PolicyDefinition{"max-length": 50_000}, stripped.Definition)

	// The source policy keeps its definition.
	assert.True(t, policy.HasCMQKeys())
}

func TestPolicy_WithoutQuorumQueueIncompatibleKeys(t *testing.T) {
	t.Parallel()

	policy := rabbitmq.Policy{
		Name:        "lazy-cq",
		VirtualHost: "/",
		Pattern:     `^cq\.`,
		ApplyTo:     rabbitmq.PolicyTargetQueues,
		Definition: rabbitmq.PolicyDefinition{
			"queue-mode": "lazy",
			"max-length": 50_000,
		},
	}

	migrated := policy.WithoutQuorumQueueIncompatibleKeys()

	assert.Equal(t, rabbitmq.PolicyDefinition{"max-length": 50_000}, migrated.Definition)
}

func TestPolicy_WithOverrides(t *testing.T) {
	t.Parallel()

	policy := rabbitmq.Policy{
		Name:        "original",
		VirtualHost: "/",
		Pattern:     `^qq\.`,
		ApplyTo:     rabbitmq.PolicyTargetQueues,
		Definition: rabbitmq.PolicyDefinition{
			"max-length":     100_000,
			"delivery-limit": 5,
		},
	}

	updated := policy.WithOverrides("override.original", 100, rabbitmq.PolicyDefinition{
		"delivery-limit":       20,
		"dead-letter-exchange": "dlx",
	})

	assert.Equal(t, "override.original", updated.Name)
	assert.Equal(t, int32(100), updated.Priority)
	assert.Equal(t, "/", updated.VirtualHost)
	assert.Equal(t, `^qq\.`, updated.Pattern)
	assert.Equal(t, rabbitmq.PolicyDefinition{
		"max-length":           100_000,
		"delivery-limit":       20,
		"dead-letter-exchange": "dlx",
	}, updated.Definition)

	// The source policy is not modified.
	assert.Equal(t, "original", policy.Name)
	assert.Equal(t, rabbitmq.PolicyDefinition{
		"max-length":     100_000,
		"delivery-limit": 5,
	}, policy.Definition)
}

func TestPolicyWithoutVirtualHost_DoesMatchObject(t *testing.T) {
	t.Parallel()

	policy := rabbitmq.PolicyWithoutVirtualHost{
		Name:    "streams-retention",
		Pattern: `^events\.`,
		ApplyTo: rabbitmq.PolicyTargetStreams,
	}

	assert.True(t, policy.DoesMatchObject("events.ingress", rabbitmq.PolicyTargetStreams))
	assert.False(t, policy.DoesMatchObject("orders", rabbitmq.PolicyTargetStreams))
	assert.False(t, policy.DoesMatchObject("events.ingress", rabbitmq.PolicyTargetClassicQueues))
}
