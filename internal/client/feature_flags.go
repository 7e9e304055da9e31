package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

// FeatureFlagsClient implements rabbitmq.FeatureFlagsClient.
type FeatureFlagsClient struct {
	httpClient *http.Client
}

// NewFeatureFlagsClient creates a new feature flags client.
func NewFeatureFlagsClient(httpClient *http.Client) *FeatureFlagsClient {
	return &FeatureFlagsClient{
		httpClient: httpClient,
	}
}

// List implements rabbitmq.FeatureFlagsClient.List.
func (c *FeatureFlagsClient) List(ctx context.Context) ([]rabbitmq.FeatureFlag, error) {
	resp, err := c.httpClient.Get(ctx, "feature-flags", nil)
	if err != nil {
		return nil, fmt.Errorf("listing feature flags: %w", err)
	}

	var flags []rabbitmq.FeatureFlag

	err = json.Unmarshal(resp.Body, &flags)
	if err != nil {
		return nil, fmt.Errorf("parsing feature flags list: %w", err)
	}

	return flags, nil
}

// Enable implements rabbitmq.FeatureFlagsClient.Enable.
func (c *FeatureFlagsClient) Enable(ctx context.Context, name string) error {
	path := "feature-flags/" + http.Path(name) + "/enable"

	_, err := c.httpClient.Put(ctx, path, map[string]interface{}{})
	if err != nil {
		return fmt.Errorf("enabling feature flag: %w", err)
	}

	return nil
}

// EnableAllStable implements rabbitmq.FeatureFlagsClient.EnableAllStable.
func (c *FeatureFlagsClient) EnableAllStable(ctx context.Context) error {
	flags, err := c.List(ctx)
	if err != nil {
		return err
	}

	for _, flag := range flags {
		if flag.State != rabbitmq.FeatureFlagStateDisabled || flag.Stability != rabbitmq.FeatureFlagStabilityStable {
			continue
		}

		err = c.Enable(ctx, flag.Name)
		if err != nil {
			return err
		}
	}

	return nil
}
