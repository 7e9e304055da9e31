package rabbitmq

import (
	"reflect"
	"strings"
)

// QueueDefinition is a queue as it appears in an exported definition set:
// its declaration-time properties without any runtime metrics.
type QueueDefinition struct {
	Name        string     `json:"name"        yaml:"name"`
	VirtualHost string     `json:"vhost"       yaml:"vhost"`
	Durable     bool       `json:"durable"     yaml:"durable"`
	AutoDelete  bool       `json:"auto_delete" yaml:"auto_delete"`
	Arguments   XArguments `json:"arguments"   yaml:"arguments"`
}

// QueueType returns the effective queue type from the x-queue-type
// argument, defaulting to classic.
func (q *QueueDefinition) QueueType() QueueType {
	return q.Arguments.QueueTypeArgument()
}

// PolicyTargetType returns the policy target category this queue belongs
// to.
func (q *QueueDefinition) PolicyTargetType() PolicyTarget {
	return q.QueueType().PolicyTargetType()
}

// DoesMatch reports whether the given policy applies to this queue.
func (q *QueueDefinition) DoesMatch(policy *Policy) bool {
	return policy.DoesMatchObject(q.VirtualHost, q.Name, q.PolicyTargetType())
}

// IsServerNamed reports whether the queue was declared with a
// server-generated name.
func (q *QueueDefinition) IsServerNamed() bool {
	return q.Name == "" || strings.HasPrefix(q.Name, "amq.")
}

// HasQueueTTLArgument reports whether the queue has an expiration
// ("x-expires") optional argument.
func (q *QueueDefinition) HasQueueTTLArgument() bool {
	_, ok := q.Arguments[XArgumentExpires]

	return ok
}

// UpdateQueueType sets the x-queue-type argument.
func (q *QueueDefinition) UpdateQueueType(queueType QueueType) {
	if q.Arguments == nil {
		q.Arguments = XArguments{}
	}

	q.Arguments[XArgumentQueueType] = string(queueType)
}

// CompareAndSwapStringArgument replaces the value of a string argument
// when it currently equals the given value.
func (q *QueueDefinition) CompareAndSwapStringArgument(argument, value, newValue string) {
	if raw, ok := q.Arguments[argument]; ok {
		if s, ok := raw.(string); ok && s == value {
			q.Arguments[argument] = newValue
		}
	}
}

// CompareAndSwapOverflowArgument replaces the x-overflow argument when it
// currently equals the given behavior.
func (q *QueueDefinition) CompareAndSwapOverflowArgument(value, newValue OverflowBehavior) {
	q.CompareAndSwapStringArgument(XArgumentOverflow, string(value), string(newValue))
}

// QueueDefinitionWithoutVirtualHost is a queue in a virtual host-specific
// definition set. The virtual host is omitted so the set can be imported
// into an arbitrary virtual host.
type QueueDefinitionWithoutVirtualHost struct {
	Name       string     `json:"name"        yaml:"name"`
	Durable    bool       `json:"durable"     yaml:"durable"`
	AutoDelete bool       `json:"auto_delete" yaml:"auto_delete"`
	Arguments  XArguments `json:"arguments"   yaml:"arguments"`
}

// QueueType returns the effective queue type from the x-queue-type
// argument, defaulting to classic.
func (q *QueueDefinitionWithoutVirtualHost) QueueType() QueueType {
	return q.Arguments.QueueTypeArgument()
}

// PolicyTargetType returns the policy target category this queue belongs
// to.
func (q *QueueDefinitionWithoutVirtualHost) PolicyTargetType() PolicyTarget {
	return q.QueueType().PolicyTargetType()
}

// DoesMatch reports whether the given policy applies to this queue.
func (q *QueueDefinitionWithoutVirtualHost) DoesMatch(policy *PolicyWithoutVirtualHost) bool {
	return policy.DoesMatchObject(q.Name, q.PolicyTargetType())
}

// UpdateQueueType sets the x-queue-type argument.
func (q *QueueDefinitionWithoutVirtualHost) UpdateQueueType(queueType QueueType) {
	if q.Arguments == nil {
		q.Arguments = XArguments{}
	}

	q.Arguments[XArgumentQueueType] = string(queueType)
}

// ExchangeDefinition is an exchange as it appears in an exported
// definition set.
type ExchangeDefinition = ExchangeInfo

// ExchangeDefinitionWithoutVirtualHost is an exchange in a virtual
// host-specific definition set.
type ExchangeDefinitionWithoutVirtualHost struct {
	Name       string     `json:"name"        yaml:"name"`
	Type       string     `json:"type"        yaml:"type"`
	Durable    bool       `json:"durable"     yaml:"durable"`
	AutoDelete bool       `json:"auto_delete" yaml:"auto_delete"`
	Arguments  XArguments `json:"arguments"   yaml:"arguments"`
}

// BindingDefinition is a binding as it appears in an exported definition
// set.
type BindingDefinition = BindingInfo

// BindingDefinitionWithoutVirtualHost is a binding in a virtual
// host-specific definition set.
type BindingDefinitionWithoutVirtualHost struct {
	Source          string                 `json:"source"           yaml:"source"`
	Destination     string                 `json:"destination"      yaml:"destination"`
	DestinationType BindingDestinationType `json:"destination_type" yaml:"destination_type"`
	RoutingKey      string                 `json:"routing_key"      yaml:"routing_key"`
	Arguments       XArguments             `json:"arguments"        yaml:"arguments"`
	PropertiesKey   *string                `json:"properties_key,omitempty" yaml:"properties_key,omitempty"`
}

// ClusterDefinitionSet holds exported definitions of an entire cluster:
// all of its virtual hosts, users, permissions, topologies and policies.
type ClusterDefinitionSet struct {
	ServerVersion string               `json:"rabbitmq_version,omitempty" yaml:"rabbitmq_version,omitempty"`
	Users         []User               `json:"users"       yaml:"users"`
	VirtualHosts  []VirtualHost        `json:"vhosts"      yaml:"vhosts"`
	Permissions   []Permissions        `json:"permissions" yaml:"permissions"`
	Parameters    []RuntimeParameter   `json:"parameters"  yaml:"parameters"`
	Policies      []Policy             `json:"policies"    yaml:"policies"`
	Queues        []QueueDefinition    `json:"queues"      yaml:"queues"`
	Exchanges     []ExchangeDefinition `json:"exchanges"   yaml:"exchanges"`
	Bindings      []BindingDefinition  `json:"bindings"    yaml:"bindings"`
}

// FindPolicy returns the named policy, or nil. The returned pointer
// aliases the set and can be used to modify it in place.
func (s *ClusterDefinitionSet) FindPolicy(vhost, name string) *Policy {
	for i := range s.Policies {
		if s.Policies[i].VirtualHost == vhost && s.Policies[i].Name == name {
			return &s.Policies[i]
		}
	}

	return nil
}

// PoliciesIn returns the policies in the given virtual host.
func (s *ClusterDefinitionSet) PoliciesIn(vhost string) []*Policy {
	var result []*Policy

	for i := range s.Policies {
		if s.Policies[i].VirtualHost == vhost {
			result = append(result, &s.Policies[i])
		}
	}

	return result
}

// FindQueue returns the named queue, or nil. The returned pointer aliases
// the set and can be used to modify it in place.
func (s *ClusterDefinitionSet) FindQueue(vhost, name string) *QueueDefinition {
	for i := range s.Queues {
		if s.Queues[i].VirtualHost == vhost && s.Queues[i].Name == name {
			return &s.Queues[i]
		}
	}

	return nil
}

// QueuesIn returns the queues in the given virtual host.
func (s *ClusterDefinitionSet) QueuesIn(vhost string) []*QueueDefinition {
	var result []*QueueDefinition

	for i := range s.Queues {
		if s.Queues[i].VirtualHost == vhost {
			result = append(result, &s.Queues[i])
		}
	}

	return result
}

// FindExchange returns the named exchange, or nil. The returned pointer
// aliases the set and can be used to modify it in place.
func (s *ClusterDefinitionSet) FindExchange(vhost, name string) *ExchangeDefinition {
	for i := range s.Exchanges {
		if s.Exchanges[i].VirtualHost == vhost && s.Exchanges[i].Name == name {
			return &s.Exchanges[i]
		}
	}

	return nil
}

// ExchangesIn returns the exchanges in the given virtual host.
func (s *ClusterDefinitionSet) ExchangesIn(vhost string) []*ExchangeDefinition {
	var result []*ExchangeDefinition

	for i := range s.Exchanges {
		if s.Exchanges[i].VirtualHost == vhost {
			result = append(result, &s.Exchanges[i])
		}
	}

	return result
}

// UpdatePolicies applies a function to every policy in the set.
func (s *ClusterDefinitionSet) UpdatePolicies(f func(Policy) Policy) []Policy {
	for i := range s.Policies {
		s.Policies[i] = f(s.Policies[i])
	}

	return s.Policies
}

// UpdateQueues applies a function to every queue in the set.
func (s *ClusterDefinitionSet) UpdateQueues(f func(QueueDefinition) QueueDefinition) []QueueDefinition {
	for i := range s.Queues {
		s.Queues[i] = f(s.Queues[i])
	}

	return s.Queues
}

// UpdateQueue applies a function to the named queue and returns the
// updated definition, or nil when no such queue exists.
func (s *ClusterDefinitionSet) UpdateQueue(vhost, name string, f func(QueueDefinition) QueueDefinition) *QueueDefinition {
	for i := range s.Queues {
		if s.Queues[i].VirtualHost == vhost && s.Queues[i].Name == name {
			s.Queues[i] = f(s.Queues[i])

			return &s.Queues[i]
		}
	}

	return nil
}

// QueuesMatching returns the queues the given policy applies to.
func (s *ClusterDefinitionSet) QueuesMatching(policy *Policy) []*QueueDefinition {
	var result []*QueueDefinition

	for i := range s.Queues {
		if s.Queues[i].DoesMatch(policy) {
			result = append(result, &s.Queues[i])
		}
	}

	return result
}

// UpdateQueueType sets the x-queue-type argument of the named queue and
// returns the updated definition, or nil when no such queue exists.
func (s *ClusterDefinitionSet) UpdateQueueType(vhost, name string, queueType QueueType) *QueueDefinition {
	qd := s.FindQueue(vhost, name)
	if qd == nil {
		return nil
	}

	qd.UpdateQueueType(queueType)

	return qd
}

// UpdateQueueTypeOfMatching sets the x-queue-type argument of every queue
// the given policy applies to.
func (s *ClusterDefinitionSet) UpdateQueueTypeOfMatching(policy *Policy, queueType QueueType) {
	for _, qd := range s.QueuesMatching(policy) {
		qd.UpdateQueueType(queueType)
	}
}

// VirtualHostDefinitionSet holds exported definitions of a single virtual
// host. Per-object virtual host fields are omitted so the set can be
// imported into a different virtual host.
type VirtualHostDefinitionSet struct {
	ServerVersion string                                 `json:"rabbitmq_version,omitempty" yaml:"rabbitmq_version,omitempty"`
	Metadata      *VirtualHostMetadata                   `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Parameters    []RuntimeParameterWithoutVirtualHost   `json:"parameters" yaml:"parameters"`
	Policies      []PolicyWithoutVirtualHost             `json:"policies"   yaml:"policies"`
	Queues        []QueueDefinitionWithoutVirtualHost    `json:"queues"     yaml:"queues"`
	Exchanges     []ExchangeDefinitionWithoutVirtualHost `json:"exchanges"  yaml:"exchanges"`
	Bindings      []BindingDefinitionWithoutVirtualHost  `json:"bindings"   yaml:"bindings"`
}

// UpdatePolicies applies a function to every policy in the set and returns
// the updated policies.
func (s *VirtualHostDefinitionSet) UpdatePolicies(f func(PolicyWithoutVirtualHost) PolicyWithoutVirtualHost) []PolicyWithoutVirtualHost {
	for i := range s.Policies {
		s.Policies[i] = f(s.Policies[i])
	}

	return s.Policies
}

// QueuesMatching returns pointers to every queue the given policy applies
// to.
func (s *VirtualHostDefinitionSet) QueuesMatching(policy *PolicyWithoutVirtualHost) []*QueueDefinitionWithoutVirtualHost {
	var result []*QueueDefinitionWithoutVirtualHost

	for i := range s.Queues {
		if s.Queues[i].DoesMatch(policy) {
			result = append(result, &s.Queues[i])
		}
	}

	return result
}

// UpdateQueueTypeOfMatching sets the x-queue-type argument of every queue
// the given policy applies to.
func (s *VirtualHostDefinitionSet) UpdateQueueTypeOfMatching(policy *PolicyWithoutVirtualHost, queueType QueueType) {
	for _, qd := range s.QueuesMatching(policy) {
		qd.UpdateQueueType(queueType)
	}
}

// DiffPair is a before/after pair of an object that exists in both
// compared sets with different contents.
type DiffPair[T any] struct {
	Left  T
	Right T
}

// VecDiff is the outcome of comparing two collections of definitions of
// the same kind.
type VecDiff[T any] struct {
	OnlyInLeft  []T
	OnlyInRight []T
	Modified    []DiffPair[T]
}

// IsEmpty reports whether the compared collections were identical.
func (d *VecDiff[T]) IsEmpty() bool {
	return len(d.OnlyInLeft) == 0 && len(d.OnlyInRight) == 0 && len(d.Modified) == 0
}

// HasChanges reports whether the compared collections differed.
func (d *VecDiff[T]) HasChanges() bool {
	return !d.IsEmpty()
}

// diffByIdentity compares two collections item by item. Items are paired
// up by an identity key; paired items that are not deeply equal are
// reported as modified.
func diffByIdentity[T any, K comparable](left, right []T, id func(*T) K) VecDiff[T] {
	leftKeys := make(map[K]struct{}, len(left))
	rightMap := make(map[K]*T, len(right))

	for i := range right {
		rightMap[id(&right[i])] = &right[i]
	}

	var diff VecDiff[T]

	for i := range left {
		key := id(&left[i])
		leftKeys[key] = struct{}{}

		other, ok := rightMap[key]
		if !ok {
			diff.OnlyInLeft = append(diff.OnlyInLeft, left[i])

			continue
		}

		if !reflect.DeepEqual(left[i], *other) {
			diff.Modified = append(diff.Modified, DiffPair[T]{Left: left[i], Right: *other})
		}
	}

	for i := range right {
		if _, ok := leftKeys[id(&right[i])]; !ok {
			diff.OnlyInRight = append(diff.OnlyInRight, right[i])
		}
	}

	return diff
}

type vhostResourceID struct {
	vhost string
	name  string
}

type userPermissionsID struct {
	user  string
	vhost string
}

type runtimeParameterID struct {
	vhost     string
	name      string
	component string
}

type bindingID struct {
	vhost         string
	source        string
	destination   string
	routingKey    string
	propertiesKey string
}

// ClusterDefinitionSetDiff is the outcome of comparing two cluster-wide
// definition sets collection by collection.
type ClusterDefinitionSetDiff struct {
	Users        VecDiff[User]
	VirtualHosts VecDiff[VirtualHost]
	Permissions  VecDiff[Permissions]
	Parameters   VecDiff[RuntimeParameter]
	Policies     VecDiff[Policy]
	Queues       VecDiff[QueueDefinition]
	Exchanges    VecDiff[ExchangeDefinition]
	Bindings     VecDiff[BindingDefinition]
}

// IsEmpty reports whether the compared sets were identical.
func (d *ClusterDefinitionSetDiff) IsEmpty() bool {
	return d.Users.IsEmpty() &&
		d.VirtualHosts.IsEmpty() &&
		d.Permissions.IsEmpty() &&
		d.Parameters.IsEmpty() &&
		d.Policies.IsEmpty() &&
		d.Queues.IsEmpty() &&
		d.Exchanges.IsEmpty() &&
		d.Bindings.IsEmpty()
}

// HasChanges reports whether the compared sets differed.
func (d *ClusterDefinitionSetDiff) HasChanges() bool {
	return !d.IsEmpty()
}

// Diff compares this definition set to another one. Objects are paired up
// by their natural identity: users and virtual hosts by name, permissions
// by user and virtual host, runtime parameters by virtual host, name and
// component, policies, queues and exchanges by virtual host and name, and
// bindings by their endpoints, routing key and properties key.
func (s *ClusterDefinitionSet) Diff(other *ClusterDefinitionSet) *ClusterDefinitionSetDiff {
	return &ClusterDefinitionSetDiff{
		Users: diffByIdentity(s.Users, other.Users, func(u *User) string {
			return u.Name
		}),
		VirtualHosts: diffByIdentity(s.VirtualHosts, other.VirtualHosts, func(v *VirtualHost) string {
			return v.Name
		}),
		Permissions: diffByIdentity(s.Permissions, other.Permissions, func(p *Permissions) userPermissionsID {
			return userPermissionsID{user: p.User, vhost: p.VirtualHost}
		}),
		Parameters: diffByIdentity(s.Parameters, other.Parameters, func(p *RuntimeParameter) runtimeParameterID {
			return runtimeParameterID{vhost: p.VirtualHost, name: p.Name, component: p.Component}
		}),
		Policies: diffByIdentity(s.Policies, other.Policies, func(p *Policy) vhostResourceID {
			return vhostResourceID{vhost: p.VirtualHost, name: p.Name}
		}),
		Queues: diffByIdentity(s.Queues, other.Queues, func(q *QueueDefinition) vhostResourceID {
			return vhostResourceID{vhost: q.VirtualHost, name: q.Name}
		}),
		Exchanges: diffByIdentity(s.Exchanges, other.Exchanges, func(x *ExchangeDefinition) vhostResourceID {
			return vhostResourceID{vhost: x.VirtualHost, name: x.Name}
		}),
		Bindings: diffByIdentity(s.Bindings, other.Bindings, func(b *BindingDefinition) bindingID {
			id := bindingID{
				vhost:       b.VirtualHost,
				source:      b.Source,
				destination: b.Destination,
				routingKey:  b.RoutingKey,
			}
			if b.PropertiesKey != nil {
				id.propertiesKey = *b.PropertiesKey
			}

			return id
		}),
	}
}
