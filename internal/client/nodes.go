package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

// NodesClient implements rabbitmq.NodesClient.
type NodesClient struct {
	httpClient *http.Client
}

// NewNodesClient creates a new nodes client.
func NewNodesClient(httpClient *http.Client) *NodesClient {
	return &NodesClient{
		httpClient: httpClient,
	}
}

// List implements rabbitmq.NodesClient.List.
func (c *NodesClient) List(ctx context.Context) ([]rabbitmq.ClusterNode, error) {
	resp, err := c.httpClient.Get(ctx, "nodes", nil)
	if err != nil {
		return nil, fmt.Errorf("listing nodes: %w", err)
	}

	var nodes []rabbitmq.ClusterNode

	err = json.Unmarshal(resp.Body, &nodes)
	if err != nil {
		return nil, fmt.Errorf("parsing nodes list: %w", err)
	}

	return nodes, nil
}

// Get implements rabbitmq.NodesClient.Get.
func (c *NodesClient) Get(ctx context.Context, name string) (*rabbitmq.ClusterNode, error) {
	path := "nodes/" + http.Path(name)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting node: %w", err)
	}

	var node rabbitmq.ClusterNode

	err = json.Unmarshal(resp.Body, &node)
	if err != nil {
		return nil, fmt.Errorf("parsing node: %w", err)
	}

	return &node, nil
}

// GetMemoryFootprint implements rabbitmq.NodesClient.GetMemoryFootprint.
func (c *NodesClient) GetMemoryFootprint(ctx context.Context, name string) (*rabbitmq.NodeMemoryFootprint, error) {
	path := "nodes/" + http.Path(name) + "/memory"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting node memory footprint: %w", err)
	}

	var footprint rabbitmq.NodeMemoryFootprint

	err = json.Unmarshal(resp.Body, &footprint)
	if err != nil {
		return nil, fmt.Errorf("parsing node memory footprint: %w", err)
	}

	return &footprint, nil
}
