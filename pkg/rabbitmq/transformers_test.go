package rabbitmq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

// mirroredDefinitionSet is a 3.13-era export that still uses classic
// queue mirroring policies.
func mirroredDefinitionSet() *rabbitmq.ClusterDefinitionSet {
	return &rabbitmq.ClusterDefinitionSet{
		ServerVersion: "3.13.7",
		Users: []rabbitmq.User{
			{
				Name:         "app-1",
				Tags:         rabbitmq.TagList{"management"},
				PasswordHash: "Hbf+Og3meGTNvTtB8uBANrGvL6aqWQyorDAjZ0NsVCLq1Wxs",
			},
			{
				Name:         "app-2",
				Tags:         rabbitmq.TagList{},
				PasswordHash: "xwF5l8vmOPJXoxPYPvnwdnG/4SkBBaHXdTk3kFmnCVGHKjpc",
			},
		},
		VirtualHosts: []rabbitmq.VirtualHost{
			{Name: "/"},
		},
		Permissions: []rabbitmq.Permissions{
			{User: "app-1", VirtualHost: "/", Configure: ".*", Read: ".*", Write: ".*"},
			{User: "app-2", VirtualHost: "/", Configure: "^$", Read: ".*", Write: "^$"},
			{User: "metrics-scraper", VirtualHost: "/", Configure: "^$", Read: ".*", Write: "^$"},
		},
		Parameters: []rabbitmq.RuntimeParameter{
			{
				Name:        "limits",
				VirtualHost: "/",
				Component:   "vhost-limits",
				Value:       rabbitmq.RuntimeParameterValue{"max-connections": 500},
			},
		},
		Policies: []rabbitmq.Policy{
			{
				Name:        "group1-ha",
				VirtualHost: "/",
				Pattern:     `^group1\.`,
				ApplyTo:     rabbitmq.PolicyTargetQueues,
				Priority:    10,
				Definition: rabbitmq.PolicyDefinition{
					"ha-mode":               "exactly",
					"ha-params":             2,
					"ha-promote-on-failure": "always",
					"ha-sync-mode":          "automatic",
					"queue-version":         2,
				},
			},
			{
				Name:        "group2-ha",
				VirtualHost: "/",
				Pattern:     `^group2\.`,
				ApplyTo:     rabbitmq.PolicyTargetQueues,
				Definition: rabbitmq.PolicyDefinition{
					"ha-mode":      "all",
					"ha-sync-mode": "automatic",
				},
			},
			{
				Name:        "logs-retention",
				VirtualHost: "/",
				Pattern:     `^logs\.`,
				ApplyTo:     rabbitmq.PolicyTargetStreams,
				Definition:  rabbitmq.PolicyDefinition{"max-age": "7D"},
			},
		},
		Queues: []rabbitmq.QueueDefinition{
			{Name: "group1.orders", VirtualHost: "/", Durable: true},
			{
				Name:        "group1.invoices",
				VirtualHost: "/",
				Durable:     true,
				Arguments:   rabbitmq.XArguments{rabbitmq.XArgumentQueueType: "classic"},
			},
			{Name: "group2.audit", VirtualHost: "/", Durable: true},
			{
				Name:        "events.ingress",
				VirtualHost: "/",
				Durable:     true,
				Arguments:   rabbitmq.XArguments{rabbitmq.XArgumentQueueType: "stream"},
			},
			{Name: "standalone.tasks", VirtualHost: "/", Durable: true},
		},
	}
}

func TestNoOpTransformer(t *testing.T) {
	t.Parallel()

	defs := mirroredDefinitionSet()
	result := rabbitmq.NoOpTransformer{}.Transform(defs)

	assert.Same(t, defs, result)
	assert.Equal(t, mirroredDefinitionSet(), result)
}

func TestStripCMQKeysFromPolicies(t *testing.T) {
	t.Parallel()

	defs := mirroredDefinitionSet()
	result := rabbitmq.StripCMQKeysFromPolicies{}.Transform(defs)

	group1 := result.FindPolicy("/", "group1-ha")
	require.NotNil(t, group1)
	assert.False(t, group1.HasCMQKeys())
	assert.Equal(t, rabbitmq.PolicyDefinition{"queue-version": 2}, group1.Definition)

	group2 := result.FindPolicy("/", "group2-ha")
	require.NotNil(t, group2)
	assert.True(t, group2.IsEmpty())

	// Policies without CMQ keys come through unchanged.
	logs := result.FindPolicy("/", "logs-retention")
	require.NotNil(t, logs)
	assert.Equal(t, rabbitmq.PolicyDefinition{"max-age": "7D"}, logs.Definition)

	// Queues matched by the mirroring policies switch over to quorum.
	for _, name := range []string{"group1.orders", "group1.invoices", "group2.audit"} {
		q := result.FindQueue("/", name)
		require.NotNil(t, q)
		assert.Equal(t, rabbitmq.QueueTypeQuorum, q.QueueType(), "queue %s", name)
	}

	assert.Equal(t, rabbitmq.QueueTypeStream, result.FindQueue("/", "events.ingress").QueueType())
	assert.Equal(t, rabbitmq.QueueTypeClassic, result.FindQueue("/", "standalone.tasks").QueueType())
}

func TestDropEmptyPolicies(t *testing.T) {
	t.Parallel()

	defs := mirroredDefinitionSet()
	rabbitmq.StripCMQKeysFromPolicies{}.Transform(defs)

	result := rabbitmq.DropEmptyPolicies{}.Transform(defs)

	require.Len(t, result.Policies, 2)
	assert.NotNil(t, result.FindPolicy("/", "group1-ha"))
	assert.NotNil(t, result.FindPolicy("/", "logs-retention"))
	assert.Nil(t, result.FindPolicy("/", "group2-ha"))
}

func TestObfuscateUsernames(t *testing.T) {
	t.Parallel()

	defs := mirroredDefinitionSet()
	originalHashes := []string{defs.Users[0].PasswordHash, defs.Users[1].PasswordHash}

	result := rabbitmq.ObfuscateUsernames{}.Transform(defs)

	require.Len(t, result.Users, 2)
	assert.Equal(t, "obfuscated-user-1", result.Users[0].Name)
	assert.Equal(t, "obfuscated-user-2", result.Users[1].Name)

	// A SHA-256 salted hash is 36 bytes, 48 characters once base64-encoded.
	for i, u := range result.Users {
		assert.NotEqual(t, originalHashes[i], u.PasswordHash)
		assert.Len(t, u.PasswordHash, 48)
	}

	assert.Equal(t, "obfuscated-user-1", result.Permissions[0].User)
	assert.Equal(t, "obfuscated-user-2", result.Permissions[1].User)

	// Permissions of users that are not part of the set keep their name.
	assert.Equal(t, "metrics-scraper", result.Permissions[2].User)
}

func TestExcludeTransformers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		transformer rabbitmq.DefinitionSetTransformer
		check       func(*testing.T, *rabbitmq.ClusterDefinitionSet)
	}{
		{
			name:        "exclude_users",
			transformer: rabbitmq.ExcludeUsers{},
			check: func(t *testing.T, defs *rabbitmq.ClusterDefinitionSet) {
				assert.Empty(t, defs.Users)
				assert.NotEmpty(t, defs.Permissions)
			},
		},
		{
			name:        "exclude_permissions",
			transformer: rabbitmq.ExcludePermissions{},
			check: func(t *testing.T, defs *rabbitmq.ClusterDefinitionSet) {
				assert.Empty(t, defs.Permissions)
				assert.NotEmpty(t, defs.Users)
			},
		},
		{
			name:        "exclude_runtime_parameters",
			transformer: rabbitmq.ExcludeRuntimeParameters{},
			check: func(t *testing.T, defs *rabbitmq.ClusterDefinitionSet) {
				assert.Empty(t, defs.Parameters)
			},
		},
		{
			name:        "exclude_policies",
			transformer: rabbitmq.ExcludePolicies{},
			check: func(t *testing.T, defs *rabbitmq.ClusterDefinitionSet) {
				assert.Empty(t, defs.Policies)
				assert.NotEmpty(t, defs.Queues)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.check(t, tt.transformer.Transform(mirroredDefinitionSet()))
		})
	}
}

func TestTransformationChain_StripThenDrop(t *testing.T) {
	t.Parallel()

	chain, err := rabbitmq.NewTransformationChainOfNames([]string{
		rabbitmq.TransformerStripCMQKeysFromPolicies,
		rabbitmq.TransformerDropEmptyPolicies,
	})
	require.NoError(t, err)

	defs := &rabbitmq.ClusterDefinitionSet{
		Policies: []rabbitmq.Policy{
			{
				Name:        "transient-mirroring",
				VirtualHost: "/",
				Pattern:     `^qq\..*`,
				ApplyTo:     rabbitmq.PolicyTargetQueues,
				Definition:  rabbitmq.PolicyDefinition{"ha-mode": "all"},
			},
		},
		Queues: []rabbitmq.QueueDefinition{
			{Name: "qq.1", VirtualHost: "/", Durable: true, Arguments: rabbitmq.XArguments{}},
		},
	}

	result := chain.Apply(defs)

	assert.Empty(t, result.Policies)

	q := result.FindQueue("/", "qq.1")
	require.NotNil(t, q)
	assert.Equal(t, rabbitmq.QueueTypeQuorum, q.QueueType())
}

func TestNewTransformationChainOfNames_UnknownName(t *testing.T) {
	t.Parallel()

	chain, err := rabbitmq.NewTransformationChainOfNames([]string{
		rabbitmq.TransformerStripCMQKeysFromPolicies,
		"redact_vhost_names",
	})

	require.ErrorIs(t, err, rabbitmq.ErrUnknownTransformer)
	assert.Nil(t, chain)
	assert.Contains(t, err.Error(), `"redact_vhost_names"`)
	assert.Contains(t, err.Error(), "supported:")
}

func TestSupportedTransformerNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		"drop_empty_policies",
		"exclude_permissions",
		"exclude_policies",
		"exclude_runtime_parameters",
		"exclude_users",
		"no_op",
		"obfuscate_usernames",
		"strip_cmq_keys_from_policies",
	}, rabbitmq.SupportedTransformerNames())
}

func TestStripCMQKeysFromVirtualHostPolicies(t *testing.T) {
	t.Parallel()

	defs := &rabbitmq.VirtualHostDefinitionSet{
		Policies: []rabbitmq.PolicyWithoutVirtualHost{
			{
				Name:    "cq-ha",
				Pattern: `^cq\.`,
				ApplyTo: rabbitmq.PolicyTargetQueues,
				Definition: rabbitmq.PolicyDefinition{
					"ha-mode":      "all",
					"ha-sync-mode": "automatic",
				},
			},
		},
		Queues: []rabbitmq.QueueDefinitionWithoutVirtualHost{
			{Name: "cq.1", Durable: true},
			{Name: "other.1", Durable: true},
		},
	}

	result := rabbitmq.StripCMQKeysFromVirtualHostPolicies{}.Transform(defs)

	require.Len(t, result.Policies, 1)
	assert.True(t, result.Policies[0].IsEmpty())
	assert.Equal(t, rabbitmq.QueueTypeQuorum, result.Queues[0].QueueType())
	assert.Equal(t, rabbitmq.QueueTypeClassic, result.Queues[1].QueueType())
}

func TestVirtualHostTransformationChain(t *testing.T) {
	t.Parallel()

	defs := &rabbitmq.VirtualHostDefinitionSet{
		Policies: []rabbitmq.PolicyWithoutVirtualHost{
			{
				Name:       "cq-ha",
				Pattern:    `^cq\.`,
				ApplyTo:    rabbitmq.PolicyTargetQueues,
				Definition: rabbitmq.PolicyDefinition{"ha-mode": "all"},
			},
		},
		Queues: []rabbitmq.QueueDefinitionWithoutVirtualHost{
			{Name: "cq.1", Durable: true},
		},
	}

	chain := &rabbitmq.VirtualHostTransformationChain{
		Transformers: []rabbitmq.VirtualHostDefinitionSetTransformer{
			rabbitmq.StripCMQKeysFromVirtualHostPolicies{},
			rabbitmq.DropEmptyVirtualHostPolicies{},
		},
	}

	result := chain.Apply(defs)

	assert.Empty(t, result.Policies)
	assert.Equal(t, rabbitmq.QueueTypeQuorum, result.Queues[0].QueueType())
}
