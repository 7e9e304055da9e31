package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

// LimitsClient implements rabbitmq.LimitsClient.
type LimitsClient struct {
	httpClient *http.Client
}

// NewLimitsClient creates a new limits client.
func NewLimitsClient(httpClient *http.Client) *LimitsClient {
	return &LimitsClient{
		httpClient: httpClient,
	}
}

// limitValueBody carries the numeric value of a limit. The kind goes
// into the request path.
type limitValueBody struct {
	Value int64 `json:"value"`
}

// SetUserLimit implements rabbitmq.LimitsClient.SetUserLimit.
func (c *LimitsClient) SetUserLimit(ctx context.Context, username string, limit rabbitmq.EnforcedLimitParams[rabbitmq.UserLimitTarget]) error {
	path := "user-limits/" + http.Path(username, string(limit.Kind))

	_, err := c.httpClient.Put(ctx, path, limitValueBody{Value: limit.Value})
	if err != nil {
		return fmt.Errorf("setting user limit: %w", err)
	}

	return nil
}

// ClearUserLimit implements rabbitmq.LimitsClient.ClearUserLimit.
func (c *LimitsClient) ClearUserLimit(ctx context.Context, username string, kind rabbitmq.UserLimitTarget) error {
	path := "user-limits/" + http.Path(username, string(kind))

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("clearing user limit: %w", err)
	}

	return nil
}

// ListAllUserLimits implements rabbitmq.LimitsClient.ListAllUserLimits.
func (c *LimitsClient) ListAllUserLimits(ctx context.Context) ([]rabbitmq.UserLimits, error) {
	return c.listUserLimits(ctx, "user-limits")
}

// ListUserLimits implements rabbitmq.LimitsClient.ListUserLimits.
func (c *LimitsClient) ListUserLimits(ctx context.Context, username string) ([]rabbitmq.UserLimits, error) {
	return c.listUserLimits(ctx, "user-limits/"+http.Path(username))
}

// SetVirtualHostLimit implements
// rabbitmq.LimitsClient.SetVirtualHostLimit.
func (c *LimitsClient) SetVirtualHostLimit(ctx context.Context, vhost string, limit rabbitmq.EnforcedLimitParams[rabbitmq.VirtualHostLimitTarget]) error {
	path := "vhost-limits/" + http.Path(vhost, string(limit.Kind))

	_, err := c.httpClient.Put(ctx, path, limitValueBody{Value: limit.Value})
	if err != nil {
		return fmt.Errorf("setting virtual host limit: %w", err)
	}

	return nil
}

// ClearVirtualHostLimit implements
// rabbitmq.LimitsClient.ClearVirtualHostLimit.
func (c *LimitsClient) ClearVirtualHostLimit(ctx context.Context, vhost string, kind rabbitmq.VirtualHostLimitTarget) error {
	path := "vhost-limits/" + http.Path(vhost, string(kind))

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("clearing virtual host limit: %w", err)
	}

	return nil
}

// ListAllVirtualHostLimits implements
// rabbitmq.LimitsClient.ListAllVirtualHostLimits.
func (c *LimitsClient) ListAllVirtualHostLimits(ctx context.Context) ([]rabbitmq.VirtualHostLimits, error) {
	return c.listVirtualHostLimits(ctx, "vhost-limits")
}

// ListVirtualHostLimits implements
// rabbitmq.LimitsClient.ListVirtualHostLimits.
func (c *LimitsClient) ListVirtualHostLimits(ctx context.Context, vhost string) ([]rabbitmq.VirtualHostLimits, error) {
	return c.listVirtualHostLimits(ctx, "vhost-limits/"+http.Path(vhost))
}

func (c *LimitsClient) listUserLimits(ctx context.Context, path string) ([]rabbitmq.UserLimits, error) {
	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing user limits: %w", err)
	}

	var limits []rabbitmq.UserLimits

	err = json.Unmarshal(resp.Body, &limits)
	if err != nil {
		return nil, fmt.Errorf("parsing user limits list: %w", err)
	}

	return limits, nil
}

func (c *LimitsClient) listVirtualHostLimits(ctx context.Context, path string) ([]rabbitmq.VirtualHostLimits, error) {
	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing virtual host limits: %w", err)
	}

	var limits []rabbitmq.VirtualHostLimits

	err = json.Unmarshal(resp.Body, &limits)
	if err != nil {
		return nil, fmt.Errorf("parsing virtual host limits list: %w", err)
	}

	return limits, nil
}
