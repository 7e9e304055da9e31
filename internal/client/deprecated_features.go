package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

// DeprecatedFeaturesClient implements rabbitmq.DeprecatedFeaturesClient.
type DeprecatedFeaturesClient struct {
	httpClient *http.Client
}

// NewDeprecatedFeaturesClient creates a new deprecated features client.
func NewDeprecatedFeaturesClient(httpClient *http.Client) *DeprecatedFeaturesClient {
	return &DeprecatedFeaturesClient{
		httpClient: httpClient,
	}
}

// List implements rabbitmq.DeprecatedFeaturesClient.List.
func (c *DeprecatedFeaturesClient) List(ctx context.Context) ([]rabbitmq.DeprecatedFeature, error) {
	return c.list(ctx, "deprecated-features")
}

// ListUsed implements rabbitmq.DeprecatedFeaturesClient.ListUsed.
func (c *DeprecatedFeaturesClient) ListUsed(ctx context.Context) ([]rabbitmq.DeprecatedFeature, error) {
	return c.list(ctx, "deprecated-features/used")
}

func (c *DeprecatedFeaturesClient) list(ctx context.Context, path string) ([]rabbitmq.DeprecatedFeature, error) {
	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing deprecated features: %w", err)
	}

	var features []rabbitmq.DeprecatedFeature

	err = json.Unmarshal(resp.Body, &features)
	if err != nil {
		return nil, fmt.Errorf("parsing deprecated features list: %w", err)
	}

	return features, nil
}
