package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

// ParametersClient implements rabbitmq.ParametersClient.
type ParametersClient struct {
	httpClient *http.Client
}

// NewParametersClient creates a new runtime parameters client.
func NewParametersClient(httpClient *http.Client) *ParametersClient {
	return &ParametersClient{
		httpClient: httpClient,
	}
}

// List implements rabbitmq.ParametersClient.List.
func (c *ParametersClient) List(ctx context.Context) ([]rabbitmq.RuntimeParameter, error) {
	return c.list(ctx, "parameters")
}

// ListOfComponent implements rabbitmq.ParametersClient.ListOfComponent.
func (c *ParametersClient) ListOfComponent(ctx context.Context, component string) ([]rabbitmq.RuntimeParameter, error) {
	return c.list(ctx, "parameters/"+http.Path(component))
}

// ListOfComponentIn implements
// rabbitmq.ParametersClient.ListOfComponentIn.
func (c *ParametersClient) ListOfComponentIn(ctx context.Context, component, vhost string) ([]rabbitmq.RuntimeParameter, error) {
	return c.list(ctx, "parameters/"+http.Path(component, vhost))
}

// Get implements rabbitmq.ParametersClient.Get.
func (c *ParametersClient) Get(ctx context.Context, component, vhost, name string) (*rabbitmq.RuntimeParameter, error) {
	path := "parameters/" + http.Path(component, vhost, name)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting runtime parameter: %w", err)
	}

	var param rabbitmq.RuntimeParameter

	err = json.Unmarshal(resp.Body, &param)
	if err != nil {
		return nil, fmt.Errorf("parsing runtime parameter: %w", err)
	}

	return &param, nil
}

// Upsert implements rabbitmq.ParametersClient.Upsert.
func (c *ParametersClient) Upsert(ctx context.Context, param *rabbitmq.RuntimeParameterDefinition) error {
	path := "parameters/" + http.Path(param.Component, param.VirtualHost, param.Name)

	_, err := c.httpClient.Put(ctx, path, param)
	if err != nil {
		return fmt.Errorf("setting runtime parameter: %w", err)
	}

	return nil
}

// Clear implements rabbitmq.ParametersClient.Clear.
func (c *ParametersClient) Clear(ctx context.Context, component, vhost, name string, idempotently bool) error {
	path := "parameters/" + http.Path(component, vhost, name)

	err := deleteWithOptionalNotFound(ctx, c.httpClient, path, idempotently)
	if err != nil {
		return fmt.Errorf("clearing runtime parameter: %w", err)
	}

	return nil
}

// ClearAll implements rabbitmq.ParametersClient.ClearAll.
func (c *ParametersClient) ClearAll(ctx context.Context) error {
	params, err := c.List(ctx)
	if err != nil {
		return err
	}

	return c.clearListed(ctx, params)
}

// ClearAllOfComponent implements
// rabbitmq.ParametersClient.ClearAllOfComponent.
func (c *ParametersClient) ClearAllOfComponent(ctx context.Context, component string) error {
	params, err := c.ListOfComponent(ctx, component)
	if err != nil {
		return err
	}

	return c.clearListed(ctx, params)
}

func (c *ParametersClient) clearListed(ctx context.Context, params []rabbitmq.RuntimeParameter) error {
	for _, param := range params {
		err := c.Clear(ctx, param.Component, param.VirtualHost, param.Name, false)
		if err != nil {
			return err
		}
	}

	return nil
}

// ListGlobal implements rabbitmq.ParametersClient.ListGlobal.
func (c *ParametersClient) ListGlobal(ctx context.Context) ([]rabbitmq.GlobalRuntimeParameter, error) {
	resp, err := c.httpClient.Get(ctx, "global-parameters", nil)
	if err != nil {
		return nil, fmt.Errorf("listing global parameters: %w", err)
	}

	var params []rabbitmq.GlobalRuntimeParameter

	err = json.Unmarshal(resp.Body, &params)
	if err != nil {
		return nil, fmt.Errorf("parsing global parameters list: %w", err)
	}

	return params, nil
}

// GetGlobal implements rabbitmq.ParametersClient.GetGlobal.
func (c *ParametersClient) GetGlobal(ctx context.Context, name string) (*rabbitmq.GlobalRuntimeParameter, error) {
	path := "global-parameters/" + http.Path(name)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting global parameter: %w", err)
	}

	var param rabbitmq.GlobalRuntimeParameter

	err = json.Unmarshal(resp.Body, &param)
	if err != nil {
		return nil, fmt.Errorf("parsing global parameter: %w", err)
	}

	return &param, nil
}

// UpsertGlobal implements rabbitmq.ParametersClient.UpsertGlobal.
func (c *ParametersClient) UpsertGlobal(ctx context.Context, param *rabbitmq.GlobalRuntimeParameterDefinition) error {
	path := "global-parameters/" + http.Path(param.Name)

	_, err := c.httpClient.Put(ctx, path, param)
	if err != nil {
		return fmt.Errorf("setting global parameter: %w", err)
	}

	return nil
}

// ClearGlobal implements rabbitmq.ParametersClient.ClearGlobal.
func (c *ParametersClient) ClearGlobal(ctx context.Context, name string, idempotently bool) error {
	path := "global-parameters/" + http.Path(name)

	err := deleteWithOptionalNotFound(ctx, c.httpClient, path, idempotently)
	if err != nil {
		return fmt.Errorf("clearing global parameter: %w", err)
	}

	return nil
}

func (c *ParametersClient) list(ctx context.Context, path string) ([]rabbitmq.RuntimeParameter, error) {
	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing runtime parameters: %w", err)
	}

	var params []rabbitmq.RuntimeParameter

	err = json.Unmarshal(resp.Body, &params)
	if err != nil {
		return nil, fmt.Errorf("parsing runtime parameters list: %w", err)
	}

	return params, nil
}
