package rabbitmq

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Defaults used by NodesProber.
const (
	// DefaultProbeConcurrency is the number of nodes probed at the same
	// time when no explicit concurrency is configured.
	DefaultProbeConcurrency = 5
	// DefaultProbeTimeout bounds an individual reachability probe.
	DefaultProbeTimeout = 60 * time.Second
)

// ReachabilityProbeDetails describes a successful reachability probe.
type ReachabilityProbeDetails struct {
	// CurrentUser is the user the broker authenticated, as reported by
	// GET /api/whoami.
	CurrentUser CurrentUser `json:"current_user" yaml:"current_user"`
	// Duration is the time the probe round trip took.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// ReachabilityProbeOutcome is the result of probing a single node. Exactly
// one of Details and Err is set.
type ReachabilityProbeOutcome struct {
	Details *ReachabilityProbeDetails
	Err     error
}

// Reached reports whether the node accepted the probe.
func (o *ReachabilityProbeOutcome) Reached() bool {
	return o != nil && o.Err == nil
}

// NodeProbeResult pairs a probed endpoint with its outcome.
type NodeProbeResult struct {
	Endpoint string
	Outcome  *ReachabilityProbeOutcome
}

// NodesProber probes several cluster nodes concurrently. Deploy tooling
// uses it to find out which nodes behind a set of endpoints are up and
// accept the configured credentials before running cluster-wide
// operations against one of them.
type NodesProber struct {
	clients     map[string]Client
	concurrency int
	timeout     time.Duration
}

// NewNodesProber returns a prober over the given clients, keyed by
// endpoint. A non-positive concurrency falls back to
// DefaultProbeConcurrency.
func NewNodesProber(clients map[string]Client, concurrency int) *NodesProber {
	if concurrency <= 0 {
		concurrency = DefaultProbeConcurrency
	}

	return &NodesProber{
		clients:     clients,
		concurrency: concurrency,
		timeout:     DefaultProbeTimeout,
	}
}

// SetTimeout sets the per-node probe timeout.
func (p *NodesProber) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// Probe probes all nodes and returns one result per endpoint, ordered by
// endpoint. Individual failures are reported in the outcome, not as an
// error.
func (p *NodesProber) Probe(ctx context.Context) ([]NodeProbeResult, error) {
	if len(p.clients) == 0 {
		return nil, ErrNoNodesToProbe
	}

	endpoints := make([]string, 0, len(p.clients))
	for endpoint := range p.clients {
		endpoints = append(endpoints, endpoint)
	}

	sort.Strings(endpoints)

	results := make([]NodeProbeResult, len(endpoints))

	var waitGroup sync.WaitGroup

	semaphore := make(chan struct{}, p.concurrency)

	for index, endpoint := range endpoints {
		waitGroup.Add(1)

		go func(index int, endpoint string) {
			defer waitGroup.Done()

			// Acquire semaphore
			semaphore <- struct{}{}

			defer func() { <-semaphore }()

			probeCtx, cancel := context.WithTimeout(ctx, p.timeout)
			defer cancel()

			results[index] = NodeProbeResult{
				Endpoint: endpoint,
				Outcome:  p.clients[endpoint].ProbeReachability(probeCtx),
			}
		}(index, endpoint)
	}

	waitGroup.Wait()

	return results, nil
}

// FirstReached returns the endpoint of the first node, in endpoint order,
// that a Probe run found reachable, or false when none was.
func FirstReached(results []NodeProbeResult) (string, bool) {
	for _, result := range results {
		if result.Outcome.Reached() {
			return result.Endpoint, true
		}
	}

	return "", false
}
