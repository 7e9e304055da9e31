package rabbitmq

import "regexp"

// PolicyDefinition is the set of key-value pairs a policy applies to its
// matching objects.
type PolicyDefinition map[string]interface{}

// CMQPolicyKeys are the classic queue mirroring policy keys. The feature
// was removed in RabbitMQ 4.0.
var CMQPolicyKeys = []string{
	"ha-mode",
	"ha-params",
	"ha-promote-on-shutdown",
	"ha-promote-on-failure",
	"ha-sync-mode",
	"ha-sync-batch-size",
}

// QuorumQueueIncompatiblePolicyKeys are the policy keys that quorum queues
// do not support.
var QuorumQueueIncompatiblePolicyKeys = []string{
	"ha-mode",
	"ha-params",
	"ha-promote-on-shutdown",
	"ha-promote-on-failure",
	"ha-sync-mode",
	"ha-sync-batch-size",
	"queue-mode",
}

// IsEmpty reports whether the definition has no keys.
func (d PolicyDefinition) IsEmpty() bool {
	return len(d) == 0
}

// ContainsAnyKeysOf reports whether any of the given keys is present.
func (d PolicyDefinition) ContainsAnyKeysOf(keys []string) bool {
	for _, k := range keys {
		if _, ok := d[k]; ok {
			return true
		}
	}

	return false
}

// HasCMQKeys reports whether any classic queue mirroring key is present.
func (d PolicyDefinition) HasCMQKeys() bool {
	return d.ContainsAnyKeysOf(CMQPolicyKeys)
}

// HasQuorumQueueIncompatibleKeys reports whether any key unsupported by
// quorum queues is present.
func (d PolicyDefinition) HasQuorumQueueIncompatibleKeys() bool {
	return d.ContainsAnyKeysOf(QuorumQueueIncompatiblePolicyKeys)
}

// WithoutKeys returns a copy with the given keys removed.
func (d PolicyDefinition) WithoutKeys(keys []string) PolicyDefinition {
	copied := make(PolicyDefinition, len(d))

	for k, v := range d {
		copied[k] = v
	}

	for _, k := range keys {
		delete(copied, k)
	}

	return copied
}

// WithoutCMQKeys returns a copy with all classic queue mirroring keys
// removed.
func (d PolicyDefinition) WithoutCMQKeys() PolicyDefinition {
	return d.WithoutKeys(CMQPolicyKeys)
}

// WithoutQuorumQueueIncompatibleKeys returns a copy with all keys
// unsupported by quorum queues removed.
func (d PolicyDefinition) WithoutQuorumQueueIncompatibleKeys() PolicyDefinition {
	return d.WithoutKeys(QuorumQueueIncompatiblePolicyKeys)
}

// Merge overlays the other definition's keys onto this one.
func (d PolicyDefinition) Merge(other PolicyDefinition) {
	for k, v := range other {
		d[k] = v
	}
}

// Policy represents a policy: a named pattern plus a definition applied to
// every matching object of the target kind in a virtual host.
type Policy struct {
	Name        string           `json:"name"       yaml:"name"`
	VirtualHost string           `json:"vhost"      yaml:"vhost"`
	Pattern     string           `json:"pattern"    yaml:"pattern"`
	ApplyTo     PolicyTarget     `json:"apply-to"   yaml:"apply-to"`
	Priority    int32            `json:"priority"   yaml:"priority"`
	Definition  PolicyDefinition `json:"definition" yaml:"definition"`
}

// DefinitionKeys returns the keys of the policy definition.
func (p *Policy) DefinitionKeys() []string {
	keys := make([]string, 0, len(p.Definition))

	for k := range p.Definition {
		keys = append(keys, k)
	}

	return keys
}

// InsertDefinitionKey sets a definition key, initializing the definition
// when needed.
func (p *Policy) InsertDefinitionKey(key string, value interface{}) {
	if p.Definition == nil {
		p.Definition = PolicyDefinition{}
	}

	p.Definition[key] = value
}

// DoesMatchObject reports whether this policy applies to the named object
// of the given target kind. A pattern that does not compile matches
// nothing.
func (p *Policy) DoesMatchObject(vhost, name string, target PolicyTarget) bool {
	if !p.ApplyTo.Matches(target) {
		return false
	}

	if p.VirtualHost != vhost {
		return false
	}

	re, err := regexp.Compile(p.Pattern)
	if err != nil {
		return false
	}

	return re.MatchString(name)
}

// IsEmpty reports whether the policy definition has no keys.
func (p *Policy) IsEmpty() bool {
	return p.Definition.IsEmpty()
}

// HasCMQKeys reports whether the definition carries any classic queue
// mirroring key.
func (p *Policy) HasCMQKeys() bool {
	return p.Definition.HasCMQKeys()
}

// HasQuorumQueueIncompatibleKeys reports whether the definition carries
// any key unsupported by quorum queues.
func (p *Policy) HasQuorumQueueIncompatibleKeys() bool {
	return p.Definition.HasQuorumQueueIncompatibleKeys()
}

// WithoutKeys returns a copy of the policy with the given definition keys
// removed.
func (p Policy) WithoutKeys(keys []string) Policy {
	p.Definition = p.Definition.WithoutKeys(keys)
	return p
}

// WithoutCMQKeys returns a copy of the policy with all classic queue
// mirroring keys removed from its definition.
func (p Policy) WithoutCMQKeys() Policy {
	return p.WithoutKeys(CMQPolicyKeys)
}

// WithoutQuorumQueueIncompatibleKeys returns a copy of the policy with all
// keys unsupported by quorum queues removed from its definition.
func (p Policy) WithoutQuorumQueueIncompatibleKeys() Policy {
	return p.WithoutKeys(QuorumQueueIncompatiblePolicyKeys)
}

// WithOverrides returns a copy of the policy under a new name and priority
// with the given definition keys overlaid.
func (p *Policy) WithOverrides(name string, priority int32, overrides PolicyDefinition) Policy {
	copied := *p
	copied.Name = name
	copied.Priority = priority

	definition := p.Definition.WithoutKeys(nil)
	definition.Merge(overrides)
	copied.Definition = definition

	return copied
}

// PolicyWithoutVirtualHost is a policy in a virtual host-specific
// definition set. The virtual host is omitted so the set can be imported
// into an arbitrary virtual host.
type PolicyWithoutVirtualHost struct {
	Name       string           `json:"name"       yaml:"name"`
	Pattern    string           `json:"pattern"    yaml:"pattern"`
	ApplyTo    PolicyTarget     `json:"apply-to"   yaml:"apply-to"`
	Priority   int32            `json:"priority"   yaml:"priority"`
	Definition PolicyDefinition `json:"definition" yaml:"definition"`
}

// DoesMatchObject reports whether this policy applies to the named object
// of the given target kind. All objects in a virtual host-specific set
// share one virtual host, so only the kind and the pattern are checked.
func (p *PolicyWithoutVirtualHost) DoesMatchObject(name string, target PolicyTarget) bool {
	if !p.ApplyTo.Matches(target) {
		return false
	}

	re, err := regexp.Compile(p.Pattern)
	if err != nil {
		return false
	}

	return re.MatchString(name)
}

// IsEmpty reports whether the policy definition has no keys.
func (p *PolicyWithoutVirtualHost) IsEmpty() bool {
	return p.Definition.IsEmpty()
}

// HasCMQKeys reports whether the definition carries any classic queue
// mirroring key.
func (p *PolicyWithoutVirtualHost) HasCMQKeys() bool {
	return p.Definition.HasCMQKeys()
}

// WithoutKeys returns a copy of the policy with the given definition keys
// removed.
func (p PolicyWithoutVirtualHost) WithoutKeys(keys []string) PolicyWithoutVirtualHost {
	p.Definition = p.Definition.WithoutKeys(keys)
	return p
}

// WithoutCMQKeys returns a copy of the policy with all classic queue
// mirroring keys removed from its definition.
func (p PolicyWithoutVirtualHost) WithoutCMQKeys() PolicyWithoutVirtualHost {
	return p.WithoutKeys(CMQPolicyKeys)
}
