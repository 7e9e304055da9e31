package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

// clusterTagsParameterName is the global runtime parameter cluster tags
// are stored under.
const clusterTagsParameterName = "cluster_tags"

// ClusterClient implements rabbitmq.ClusterClient.
type ClusterClient struct {
	httpClient *http.Client
	parameters *ParametersClient
}

// NewClusterClient creates a new cluster client.
func NewClusterClient(httpClient *http.Client) *ClusterClient {
	return &ClusterClient{
		httpClient: httpClient,
		parameters: NewParametersClient(httpClient),
	}
}

// Overview implements rabbitmq.ClusterClient.Overview.
func (c *ClusterClient) Overview(ctx context.Context) (*rabbitmq.Overview, error) {
	resp, err := c.httpClient.Get(ctx, "overview", nil)
	if err != nil {
		return nil, fmt.Errorf("getting overview: %w", err)
	}

	var overview rabbitmq.Overview

	err = json.Unmarshal(resp.Body, &overview)
	if err != nil {
		return nil, fmt.Errorf("parsing overview: %w", err)
	}

	return &overview, nil
}

// ServerVersion implements rabbitmq.ClusterClient.ServerVersion.
func (c *ClusterClient) ServerVersion(ctx context.Context) (string, error) {
	overview, err := c.Overview(ctx)
	if err != nil {
		return "", err
	}

	return overview.RabbitMQVersion, nil
}

// GetName implements rabbitmq.ClusterClient.GetName.
func (c *ClusterClient) GetName(ctx context.Context) (*rabbitmq.ClusterIdentity, error) {
	resp, err := c.httpClient.Get(ctx, "cluster-name", nil)
	if err != nil {
		return nil, fmt.Errorf("getting cluster name: %w", err)
	}

	var identity rabbitmq.ClusterIdentity

	err = json.Unmarshal(resp.Body, &identity)
	if err != nil {
		return nil, fmt.Errorf("parsing cluster name: %w", err)
	}

	return &identity, nil
}

// SetName implements rabbitmq.ClusterClient.SetName.
func (c *ClusterClient) SetName(ctx context.Context, name string) error {
	body := map[string]string{"name": name}

	_, err := c.httpClient.Put(ctx, "cluster-name", body)
	if err != nil {
		return fmt.Errorf("setting cluster name: %w", err)
	}

	return nil
}

// GetTags implements rabbitmq.ClusterClient.GetTags. Cluster tags are
// stored as a global runtime parameter.
func (c *ClusterClient) GetTags(ctx context.Context) (rabbitmq.TagMap, error) {
	param, err := c.parameters.GetGlobal(ctx, clusterTagsParameterName)
	if err != nil {
		return nil, fmt.Errorf("getting cluster tags: %w", err)
	}

	tags := rabbitmq.TagMap{}
	if kvs, ok := param.Value.(map[string]interface{}); ok {
		for key, value := range kvs {
			tags[key] = value
		}
	}

	return tags, nil
}

// SetTags implements rabbitmq.ClusterClient.SetTags.
func (c *ClusterClient) SetTags(ctx context.Context, tags rabbitmq.TagMap) error {
	param := &rabbitmq.GlobalRuntimeParameterDefinition{
		Name:  clusterTagsParameterName,
		Value: tags,
	}

	err := c.parameters.UpsertGlobal(ctx, param)
	if err != nil {
		return fmt.Errorf("setting cluster tags: %w", err)
	}

	return nil
}

// ClearTags implements rabbitmq.ClusterClient.ClearTags.
func (c *ClusterClient) ClearTags(ctx context.Context) error {
	err := c.parameters.ClearGlobal(ctx, clusterTagsParameterName, true)
	if err != nil {
		return fmt.Errorf("clearing cluster tags: %w", err)
	}

	return nil
}
