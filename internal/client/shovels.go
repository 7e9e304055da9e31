package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

// ShovelsClient implements rabbitmq.ShovelsClient.
//
// Dynamic shovels are declared as runtime parameters under the "shovel"
// component. Deletion, however, goes through a shovel-specific endpoint
// that also stops the shovel process.
type ShovelsClient struct {
	httpClient *http.Client
	parameters *ParametersClient
}

// NewShovelsClient creates a new shovels client.
func NewShovelsClient(httpClient *http.Client) *ShovelsClient {
	return &ShovelsClient{
		httpClient: httpClient,
		parameters: NewParametersClient(httpClient),
	}
}

// ListAll implements rabbitmq.ShovelsClient.ListAll.
func (c *ShovelsClient) ListAll(ctx context.Context) ([]rabbitmq.Shovel, error) {
	return c.list(ctx, "shovels")
}

// ListIn implements rabbitmq.ShovelsClient.ListIn.
func (c *ShovelsClient) ListIn(ctx context.Context, vhost string) ([]rabbitmq.Shovel, error) {
	return c.list(ctx, "shovels/"+http.Path(vhost))
}

// DeclareAmqp091 implements rabbitmq.ShovelsClient.DeclareAmqp091.
func (c *ShovelsClient) DeclareAmqp091(ctx context.Context, params rabbitmq.Amqp091ShovelParams) error {
	definition := params.AsRuntimeParameterDefinition()

	err := c.parameters.Upsert(ctx, &definition)
	if err != nil {
		return fmt.Errorf("declaring shovel: %w", err)
	}

	return nil
}

// DeclareAmqp10 implements rabbitmq.ShovelsClient.DeclareAmqp10.
func (c *ShovelsClient) DeclareAmqp10(ctx context.Context, params rabbitmq.Amqp10ShovelParams) error {
	definition := params.AsRuntimeParameterDefinition()

	err := c.parameters.Upsert(ctx, &definition)
	if err != nil {
		return fmt.Errorf("declaring shovel: %w", err)
	}

	return nil
}

// Delete implements rabbitmq.ShovelsClient.Delete.
func (c *ShovelsClient) Delete(ctx context.Context, vhost, name string, idempotently bool) error {
	path := "shovels/vhost/" + http.Path(vhost, name)

	err := deleteWithOptionalNotFound(ctx, c.httpClient, path, idempotently)
	if err != nil {
		return fmt.Errorf("deleting shovel: %w", err)
	}

	return nil
}

func (c *ShovelsClient) list(ctx context.Context, path string) ([]rabbitmq.Shovel, error) {
	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing shovels: %w", err)
	}

	var shovels []rabbitmq.Shovel

	err = json.Unmarshal(resp.Body, &shovels)
	if err != nil {
		return nil, fmt.Errorf("parsing shovels list: %w", err)
	}

	return shovels, nil
}
