package client

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"strconv"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

// HealthClient implements rabbitmq.HealthClient.
//
// Health check endpoints respond with 200 when the check passes and 503
// with a JSON document describing the failure when it does not. The 503
// is decoded into check-specific details and wrapped in a
// rabbitmq.HealthCheckFailedError.
type HealthClient struct {
	httpClient *http.Client
}

// NewHealthClient creates a new health checks client.
func NewHealthClient(httpClient *http.Client) *HealthClient {
	return &HealthClient{
		httpClient: httpClient,
	}
}

// ClusterWideAlarms implements rabbitmq.HealthClient.ClusterWideAlarms.
func (c *HealthClient) ClusterWideAlarms(ctx context.Context) error {
	return c.alarmsCheck(ctx, "health/checks/alarms")
}

// LocalAlarms implements rabbitmq.HealthClient.LocalAlarms.
func (c *HealthClient) LocalAlarms(ctx context.Context) error {
	return c.alarmsCheck(ctx, "health/checks/local-alarms")
}

func (c *HealthClient) alarmsCheck(ctx context.Context, path string) error {
	resp, err := c.check(ctx, path)
	if err != nil {
		return err
	}

	if resp == nil {
		return nil
	}

	var details rabbitmq.ClusterAlarmCheckDetails

	err = json.Unmarshal(resp.Body, &details)
	if err != nil {
		return fmt.Errorf("parsing health check response: %w", err)
	}

	return &rabbitmq.HealthCheckFailedError{
		Path:       path,
		StatusCode: resp.StatusCode,
		Details:    &details,
	}
}

// NodeIsQuorumCritical implements
// rabbitmq.HealthClient.NodeIsQuorumCritical.
func (c *HealthClient) NodeIsQuorumCritical(ctx context.Context) error {
	path := "health/checks/node-is-quorum-critical"

	resp, err := c.check(ctx, path)
	if err != nil {
		return err
	}

	if resp == nil {
		return nil
	}

	var details rabbitmq.QuorumCriticalityCheckDetails

	err = json.Unmarshal(resp.Body, &details)
	if err != nil {
		return fmt.Errorf("parsing health check response: %w", err)
	}

	return &rabbitmq.HealthCheckFailedError{
		Path:       path,
		StatusCode: resp.StatusCode,
		Details:    &details,
	}
}

// PortListener implements rabbitmq.HealthClient.PortListener.
func (c *HealthClient) PortListener(ctx context.Context, port uint16) error {
	path := "health/checks/port-listener/" + strconv.Itoa(int(port))

	resp, err := c.check(ctx, path)
	if err != nil {
		return err
	}

	if resp == nil {
		return nil
	}

	var details rabbitmq.NoActivePortListenerDetails

	err = json.Unmarshal(resp.Body, &details)
	if err != nil {
		return fmt.Errorf("parsing health check response: %w", err)
	}

	return &rabbitmq.HealthCheckFailedError{
		Path:       path,
		StatusCode: resp.StatusCode,
		Details:    &details,
	}
}

// ProtocolListener implements rabbitmq.HealthClient.ProtocolListener.
//
// The failure document changed shape in RabbitMQ 4.1: the "missing" key
// went from a single protocol name to a list of them. Both shapes are
// supported.
func (c *HealthClient) ProtocolListener(ctx context.Context, protocol rabbitmq.SupportedProtocol) error {
	path := "health/checks/protocol-listener/" + http.Path(string(protocol))

	resp, err := c.check(ctx, path)
	if err != nil {
		return err
	}

	if resp == nil {
		return nil
	}

	details, err := parseProtocolListenerDetails(resp.Body)
	if err != nil {
		return fmt.Errorf("parsing health check response: %w", err)
	}

	return &rabbitmq.HealthCheckFailedError{
		Path:       path,
		StatusCode: resp.StatusCode,
		Details:    details,
	}
}

func parseProtocolListenerDetails(body []byte) (rabbitmq.HealthCheckFailureDetails, error) {
	var modern rabbitmq.NoActiveProtocolListenerDetails41AndLater

	err := json.Unmarshal(body, &modern)
	if err == nil {
		return &modern, nil
	}

	var legacy rabbitmq.NoActiveProtocolListenerDetailsPre41

	err = json.Unmarshal(body, &legacy)
	if err != nil {
		return nil, err
	}

	return &legacy, nil
}

// check runs a boolean health check. A passing check returns (nil, nil),
// a failing one returns the 503 response for the caller to decode.
func (c *HealthClient) check(ctx context.Context, path string) (*http.Response, error) {
	req := &http.Request{
		Method:              nethttp.MethodGet,
		Path:                path,
		AcceptedServerError: nethttp.StatusServiceUnavailable,
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("running health check: %w", err)
	}

	if resp.StatusCode == nethttp.StatusServiceUnavailable {
		return resp, nil
	}

	return nil, nil
}
