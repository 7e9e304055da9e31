package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

// VirtualHostsClient implements rabbitmq.VirtualHostsClient.
type VirtualHostsClient struct {
	httpClient *http.Client
}

// NewVirtualHostsClient creates a new virtual hosts client.
func NewVirtualHostsClient(httpClient *http.Client) *VirtualHostsClient {
	return &VirtualHostsClient{
		httpClient: httpClient,
	}
}

// List implements rabbitmq.VirtualHostsClient.List.
func (c *VirtualHostsClient) List(ctx context.Context) ([]rabbitmq.VirtualHost, error) {
	resp, err := c.httpClient.Get(ctx, "vhosts", nil)
	if err != nil {
		return nil, fmt.Errorf("listing virtual hosts: %w", err)
	}

	var virtualHosts []rabbitmq.VirtualHost

	err = json.Unmarshal(resp.Body, &virtualHosts)
	if err != nil {
		return nil, fmt.Errorf("parsing virtual hosts list: %w", err)
	}

	return virtualHosts, nil
}

// ListPaged implements rabbitmq.VirtualHostsClient.ListPaged.
func (c *VirtualHostsClient) ListPaged(ctx context.Context, params rabbitmq.PaginationParams) (*rabbitmq.PaginatedResponse[rabbitmq.VirtualHost], error) {
	resp, err := c.httpClient.Get(ctx, "vhosts", params.ToQuery())
	if err != nil {
		return nil, fmt.Errorf("listing virtual hosts page: %w", err)
	}

	var page rabbitmq.PaginatedResponse[rabbitmq.VirtualHost]

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing virtual hosts page: %w", err)
	}

	return &page, nil
}

// Get implements rabbitmq.VirtualHostsClient.Get.
func (c *VirtualHostsClient) Get(ctx context.Context, name string) (*rabbitmq.VirtualHost, error) {
	path := "vhosts/" + http.Path(name)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting virtual host: %w", err)
	}

	var virtualHost rabbitmq.VirtualHost

	err = json.Unmarshal(resp.Body, &virtualHost)
	if err != nil {
		return nil, fmt.Errorf("parsing virtual host: %w", err)
	}

	return &virtualHost, nil
}

// Create implements rabbitmq.VirtualHostsClient.Create.
func (c *VirtualHostsClient) Create(ctx context.Context, params *rabbitmq.VirtualHostParams) error {
	path := "vhosts/" + http.Path(params.Name)

	_, err := c.httpClient.Put(ctx, path, params)
	if err != nil {
		return fmt.Errorf("creating virtual host: %w", err)
	}

	return nil
}

// Update implements rabbitmq.VirtualHostsClient.Update. Virtual host
// creation on this API is an upsert, so Update shares its semantics with
// Create.
func (c *VirtualHostsClient) Update(ctx context.Context, params *rabbitmq.VirtualHostParams) error {
	path := "vhosts/" + http.Path(params.Name)

	_, err := c.httpClient.Put(ctx, path, params)
	if err != nil {
		return fmt.Errorf("updating virtual host: %w", err)
	}

	return nil
}

// Delete implements rabbitmq.VirtualHostsClient.Delete.
func (c *VirtualHostsClient) Delete(ctx context.Context, name string, idempotently bool) error {
	path := "vhosts/" + http.Path(name)

	err := deleteWithOptionalNotFound(ctx, c.httpClient, path, idempotently)
	if err != nil {
		return fmt.Errorf("deleting virtual host: %w", err)
	}

	return nil
}

// EnableDeletionProtection implements
// rabbitmq.VirtualHostsClient.EnableDeletionProtection.
func (c *VirtualHostsClient) EnableDeletionProtection(ctx context.Context, name string) error {
	path := "vhosts/" + http.Path(name) + "/deletion/protection"

	_, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return fmt.Errorf("enabling deletion protection: %w", err)
	}

	return nil
}

// DisableDeletionProtection implements
// rabbitmq.VirtualHostsClient.DisableDeletionProtection.
func (c *VirtualHostsClient) DisableDeletionProtection(ctx context.Context, name string) error {
	path := "vhosts/" + http.Path(name) + "/deletion/protection"

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("disabling deletion protection: %w", err)
	}

	return nil
}
