package rabbitmq

import (
	"crypto/rand"
	"fmt"
	"sort"
)

// DefinitionSetTransformer rewrites an exported cluster-wide definition
// set in place, for example before importing it into a cluster running a
// newer release series. Transformers never fail: objects they cannot
// improve are left as they are.
type DefinitionSetTransformer interface {
	Transform(defs *ClusterDefinitionSet) *ClusterDefinitionSet
}

// Names accepted by NewTransformationChainOfNames.
const (
	TransformerNoOp                     = "no_op"
	TransformerStripCMQKeysFromPolicies = "strip_cmq_keys_from_policies"
	TransformerDropEmptyPolicies        = "drop_empty_policies"
	TransformerObfuscateUsernames       = "obfuscate_usernames"
	TransformerExcludeUsers             = "exclude_users"
	TransformerExcludePermissions       = "exclude_permissions"
	TransformerExcludeRuntimeParameters = "exclude_runtime_parameters"
	TransformerExcludePolicies          = "exclude_policies"
)

// NoOpTransformer returns the set unchanged.
type NoOpTransformer struct{}

func (t NoOpTransformer) Transform(defs *ClusterDefinitionSet) *ClusterDefinitionSet {
	return defs
}

// StripCMQKeysFromPolicies removes all classic queue mirroring keys from
// every policy definition, then switches the queues matched by those
// policies over to quorum queues. Classic queue mirroring was removed in
// RabbitMQ 4.0, so definition sets that still carry its keys fail to
// import.
type StripCMQKeysFromPolicies struct{}

func (t StripCMQKeysFromPolicies) Transform(defs *ClusterDefinitionSet) *ClusterDefinitionSet {
	updated := defs.UpdatePolicies(func(p Policy) Policy {
		return p.WithoutCMQKeys()
	})

	for i := range updated {
		defs.UpdateQueueTypeOfMatching(&updated[i], QueueTypeQuorum)
	}

	return defs
}

// DropEmptyPolicies removes every policy whose definition has no keys.
// Usually run after StripCMQKeysFromPolicies, which can leave policies
// empty.
type DropEmptyPolicies struct{}

func (t DropEmptyPolicies) Transform(defs *ClusterDefinitionSet) *ClusterDefinitionSet {
	kept := make([]Policy, 0, len(defs.Policies))

	for _, p := range defs.Policies {
		if !p.IsEmpty() {
			kept = append(kept, p)
		}
	}

	defs.Policies = kept

	return defs
}

// ObfuscateUsernames renames every user to "obfuscated-user-{n}" and
// replaces its password hash with a hash of a freshly generated password,
// so that a definition set can be shared without leaking usernames or
// password hashes. Permissions are rewritten to refer to the new names.
type ObfuscateUsernames struct{}

func (t ObfuscateUsernames) Transform(defs *ClusterDefinitionSet) *ClusterDefinitionSet {
	renames := make(map[string]string, len(defs.Users))

	for i := range defs.Users {
		name := fmt.Sprintf("obfuscated-user-%d", i+1)
		renames[defs.Users[i].Name] = name
		defs.Users[i].Name = name

		if hash, err := randomSaltedPasswordHash(); err == nil {
			defs.Users[i].PasswordHash = hash
		}
	}

	for i := range defs.Permissions {
		if name, ok := renames[defs.Permissions[i].User]; ok {
			defs.Permissions[i].User = name
		}
	}

	return defs
}

func randomSaltedPasswordHash() (string, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return "", err
	}

	password := make([]byte, 24)
	if _, err := rand.Read(password); err != nil {
		return "", err
	}

	for i, b := range password {
		password[i] = saltAlphabet[int(b)%len(saltAlphabet)]
	}

	return Base64EncodedSaltedPasswordHashSHA256(salt, string(password)), nil
}

// ExcludeUsers removes all users from the set.
type ExcludeUsers struct{}

func (t ExcludeUsers) Transform(defs *ClusterDefinitionSet) *ClusterDefinitionSet {
	defs.Users = []User{}

	return defs
}

// ExcludePermissions removes all permissions from the set.
type ExcludePermissions struct{}

func (t ExcludePermissions) Transform(defs *ClusterDefinitionSet) *ClusterDefinitionSet {
	defs.Permissions = []Permissions{}

	return defs
}

// ExcludeRuntimeParameters removes all runtime parameters from the set.
// Note that this also removes federation upstreams and dynamic shovels,
// which are stored as runtime parameters.
type ExcludeRuntimeParameters struct{}

func (t ExcludeRuntimeParameters) Transform(defs *ClusterDefinitionSet) *ClusterDefinitionSet {
	defs.Parameters = []RuntimeParameter{}

	return defs
}

// ExcludePolicies removes all policies from the set.
type ExcludePolicies struct{}

func (t ExcludePolicies) Transform(defs *ClusterDefinitionSet) *ClusterDefinitionSet {
	defs.Policies = []Policy{}

	return defs
}

// TransformationChain applies a sequence of transformers in order.
type TransformationChain struct {
	Transformers []DefinitionSetTransformer
}

// NewTransformationChain builds a chain from the given transformers.
func NewTransformationChain(transformers ...DefinitionSetTransformer) *TransformationChain {
	return &TransformationChain{Transformers: transformers}
}

// NewTransformationChainOfNames builds a chain from transformer names,
// such as those passed on a command line. Unknown names result in an
// error that lists the supported ones.
func NewTransformationChainOfNames(names []string) (*TransformationChain, error) {
	transformers := make([]DefinitionSetTransformer, 0, len(names))

	for _, name := range names {
		t, ok := DefinitionSetTransformerNamed(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q (supported: %v)", ErrUnknownTransformer, name, SupportedTransformerNames())
		}

		transformers = append(transformers, t)
	}

	return NewTransformationChain(transformers...), nil
}

// Apply runs every transformer in order on the given set and returns the
// final result.
func (c *TransformationChain) Apply(defs *ClusterDefinitionSet) *ClusterDefinitionSet {
	for _, t := range c.Transformers {
		defs = t.Transform(defs)
	}

	return defs
}

var definitionSetTransformers = map[string]DefinitionSetTransformer{
	TransformerNoOp:                     NoOpTransformer{},
	TransformerStripCMQKeysFromPolicies: StripCMQKeysFromPolicies{},
	TransformerDropEmptyPolicies:        DropEmptyPolicies{},
	TransformerObfuscateUsernames:       ObfuscateUsernames{},
	TransformerExcludeUsers:             ExcludeUsers{},
	TransformerExcludePermissions:       ExcludePermissions{},
	TransformerExcludeRuntimeParameters: ExcludeRuntimeParameters{},
	TransformerExcludePolicies:          ExcludePolicies{},
}

// DefinitionSetTransformerNamed returns the transformer registered under
// the given name.
func DefinitionSetTransformerNamed(name string) (DefinitionSetTransformer, bool) {
	t, ok := definitionSetTransformers[name]

	return t, ok
}

// SupportedTransformerNames returns the names accepted by
// NewTransformationChainOfNames, sorted.
func SupportedTransformerNames() []string {
	names := make([]string, 0, len(definitionSetTransformers))

	for name := range definitionSetTransformers {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// VirtualHostDefinitionSetTransformer rewrites an exported virtual
// host-specific definition set in place.
type VirtualHostDefinitionSetTransformer interface {
	Transform(defs *VirtualHostDefinitionSet) *VirtualHostDefinitionSet
}

// StripCMQKeysFromVirtualHostPolicies is the virtual host-specific
// counterpart of StripCMQKeysFromPolicies.
type StripCMQKeysFromVirtualHostPolicies struct{}

func (t StripCMQKeysFromVirtualHostPolicies) Transform(defs *VirtualHostDefinitionSet) *VirtualHostDefinitionSet {
	updated := defs.UpdatePolicies(func(p PolicyWithoutVirtualHost) PolicyWithoutVirtualHost {
		return p.WithoutCMQKeys()
	})

	for i := range updated {
		defs.UpdateQueueTypeOfMatching(&updated[i], QueueTypeQuorum)
	}

	return defs
}

// DropEmptyVirtualHostPolicies is the virtual host-specific counterpart
// of DropEmptyPolicies.
type DropEmptyVirtualHostPolicies struct{}

func (t DropEmptyVirtualHostPolicies) Transform(defs *VirtualHostDefinitionSet) *VirtualHostDefinitionSet {
	kept := make([]PolicyWithoutVirtualHost, 0, len(defs.Policies))

	for _, p := range defs.Policies {
		if !p.IsEmpty() {
			kept = append(kept, p)
		}
	}

	defs.Policies = kept

	return defs
}

// VirtualHostTransformationChain applies a sequence of virtual
// host-specific transformers in order.
type VirtualHostTransformationChain struct {
	Transformers []VirtualHostDefinitionSetTransformer
}

// Apply runs every transformer in order on the given set and returns the
// final result.
func (c *VirtualHostTransformationChain) Apply(defs *VirtualHostDefinitionSet) *VirtualHostDefinitionSet {
	for _, t := range c.Transformers {
		defs = t.Transform(defs)
	}

	return defs
}
