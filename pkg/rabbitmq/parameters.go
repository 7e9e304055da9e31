package rabbitmq

// RuntimeParameterValue is the component-specific body of a runtime
// parameter.
type RuntimeParameterValue map[string]interface{}

// GetString returns a string key from the parameter value.
func (v RuntimeParameterValue) GetString(key string) (string, bool) {
	raw, ok := v[key]
	if !ok {
		return "", false
	}

	s, ok := raw.(string)

	return s, ok
}

// GetBool returns a boolean key from the parameter value.
func (v RuntimeParameterValue) GetBool(key string) (bool, bool) {
	raw, ok := v[key]
	if !ok {
		return false, false
	}

	b, ok := raw.(bool)

	return b, ok
}

// GetUint returns a non-negative numeric key from the parameter value.
// JSON numbers decode as float64, so other numeric kinds are converted.
func (v RuntimeParameterValue) GetUint(key string) (uint64, bool) {
	raw, ok := v[key]
	if !ok {
		return 0, false
	}

	switch n := raw.(type) {
	case float64:
		if n < 0 {
			return 0, false
		}

		return uint64(n), true
	case int:
		if n < 0 {
			return 0, false
		}

		return uint64(n), true
	case int64:
		if n < 0 {
			return 0, false
		}

		return uint64(n), true
	case uint64:
		return n, true
	default:
		return 0, false
	}
}

// RuntimeParameter represents a virtual host-scoped runtime parameter of a
// component such as "federation-upstream" or "shovel".
type RuntimeParameter struct {
	Name        string                `json:"name"      yaml:"name"`
	VirtualHost string                `json:"vhost"     yaml:"vhost"`
	Component   string                `json:"component" yaml:"component"`
	Value       RuntimeParameterValue `json:"value"     yaml:"value"`
}

// RuntimeParameterWithoutVirtualHost is a runtime parameter in a virtual
// host-specific definition set.
type RuntimeParameterWithoutVirtualHost struct {
	Name      string                `json:"name"      yaml:"name"`
	Component string                `json:"component" yaml:"component"`
	Value     RuntimeParameterValue `json:"value"     yaml:"value"`
}

// GlobalRuntimeParameter represents a cluster-wide runtime parameter such
// as "cluster_name" or "internal_cluster_id".
type GlobalRuntimeParameter struct {
	Name  string      `json:"name"  yaml:"name"`
	Value interface{} `json:"value" yaml:"value"`
}
