package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

// DefinitionsClient implements rabbitmq.DefinitionsClient.
type DefinitionsClient struct {
	httpClient *http.Client
}

// NewDefinitionsClient creates a new definitions client.
func NewDefinitionsClient(httpClient *http.Client) *DefinitionsClient {
	return &DefinitionsClient{
		httpClient: httpClient,
	}
}

// Export implements rabbitmq.DefinitionsClient.Export.
func (c *DefinitionsClient) Export(ctx context.Context) (*rabbitmq.ClusterDefinitionSet, error) {
	resp, err := c.httpClient.Get(ctx, "definitions", nil)
	if err != nil {
		return nil, fmt.Errorf("exporting definitions: %w", err)
	}

	var defs rabbitmq.ClusterDefinitionSet

	err = json.Unmarshal(resp.Body, &defs)
	if err != nil {
		return nil, fmt.Errorf("parsing definitions: %w", err)
	}

	return &defs, nil
}

// ExportAsString implements rabbitmq.DefinitionsClient.ExportAsString.
// The response document is returned as served, without a decode and
// re-encode round trip.
func (c *DefinitionsClient) ExportAsString(ctx context.Context) (string, error) {
	resp, err := c.httpClient.Get(ctx, "definitions", nil)
	if err != nil {
		return "", fmt.Errorf("exporting definitions: %w", err)
	}

	return string(resp.Body), nil
}

// ExportTransformed implements
// rabbitmq.DefinitionsClient.ExportTransformed.
func (c *DefinitionsClient) ExportTransformed(ctx context.Context, chain *rabbitmq.TransformationChain) (*rabbitmq.ClusterDefinitionSet, error) {
	defs, err := c.Export(ctx)
	if err != nil {
		return nil, err
	}

	return chain.Apply(defs), nil
}

// ExportVirtualHost implements
// rabbitmq.DefinitionsClient.ExportVirtualHost.
func (c *DefinitionsClient) ExportVirtualHost(ctx context.Context, vhost string) (*rabbitmq.VirtualHostDefinitionSet, error) {
	path := "definitions/" + http.Path(vhost)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("exporting virtual host definitions: %w", err)
	}

	var defs rabbitmq.VirtualHostDefinitionSet

	err = json.Unmarshal(resp.Body, &defs)
	if err != nil {
		return nil, fmt.Errorf("parsing virtual host definitions: %w", err)
	}

	return &defs, nil
}

// ExportVirtualHostAsString implements
// rabbitmq.DefinitionsClient.ExportVirtualHostAsString.
func (c *DefinitionsClient) ExportVirtualHostAsString(ctx context.Context, vhost string) (string, error) {
	path := "definitions/" + http.Path(vhost)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return "", fmt.Errorf("exporting virtual host definitions: %w", err)
	}

	return string(resp.Body), nil
}

// Import implements rabbitmq.DefinitionsClient.Import.
func (c *DefinitionsClient) Import(ctx context.Context, defs *rabbitmq.ClusterDefinitionSet) error {
	_, err := c.httpClient.Post(ctx, "definitions", defs)
	if err != nil {
		return fmt.Errorf("importing definitions: %w", err)
	}

	return nil
}

// ImportRaw implements rabbitmq.DefinitionsClient.ImportRaw. The document
// is uploaded as given, so definitions exported by a different tool or a
// much older release can be restored without this client understanding
// every key in them.
func (c *DefinitionsClient) ImportRaw(ctx context.Context, defs []byte) error {
	_, err := c.httpClient.Post(ctx, "definitions", json.RawMessage(defs))
	if err != nil {
		return fmt.Errorf("importing definitions: %w", err)
	}

	return nil
}

// ImportVirtualHost implements
// rabbitmq.DefinitionsClient.ImportVirtualHost.
func (c *DefinitionsClient) ImportVirtualHost(ctx context.Context, vhost string, defs *rabbitmq.VirtualHostDefinitionSet) error {
	path := "definitions/" + http.Path(vhost)

	_, err := c.httpClient.Post(ctx, path, defs)
	if err != nil {
		return fmt.Errorf("importing virtual host definitions: %w", err)
	}

	return nil
}

// ImportVirtualHostRaw implements
// rabbitmq.DefinitionsClient.ImportVirtualHostRaw.
func (c *DefinitionsClient) ImportVirtualHostRaw(ctx context.Context, vhost string, defs []byte) error {
	path := "definitions/" + http.Path(vhost)

	_, err := c.httpClient.Post(ctx, path, json.RawMessage(defs))
	if err != nil {
		return fmt.Errorf("importing virtual host definitions: %w", err)
	}

	return nil
}
