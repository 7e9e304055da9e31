package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

// ExchangesClient implements rabbitmq.ExchangesClient.
type ExchangesClient struct {
	httpClient *http.Client
}

// NewExchangesClient creates a new exchanges client.
func NewExchangesClient(httpClient *http.Client) *ExchangesClient {
	return &ExchangesClient{
		httpClient: httpClient,
	}
}

// List implements rabbitmq.ExchangesClient.List.
func (c *ExchangesClient) List(ctx context.Context) ([]rabbitmq.ExchangeInfo, error) {
	resp, err := c.httpClient.Get(ctx, "exchanges", nil)
	if err != nil {
		return nil, fmt.Errorf("listing exchanges: %w", err)
	}

	var exchanges []rabbitmq.ExchangeInfo

	err = json.Unmarshal(resp.Body, &exchanges)
	if err != nil {
		return nil, fmt.Errorf("parsing exchanges list: %w", err)
	}

	return exchanges, nil
}

// ListPaged implements rabbitmq.ExchangesClient.ListPaged.
func (c *ExchangesClient) ListPaged(ctx context.Context, params rabbitmq.PaginationParams) (*rabbitmq.PaginatedResponse[rabbitmq.ExchangeInfo], error) {
	resp, err := c.httpClient.Get(ctx, "exchanges", params.ToQuery())
	if err != nil {
		return nil, fmt.Errorf("listing exchanges page: %w", err)
	}

	var page rabbitmq.PaginatedResponse[rabbitmq.ExchangeInfo]

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing exchanges page: %w", err)
	}

	return &page, nil
}

// ListIn implements rabbitmq.ExchangesClient.ListIn.
func (c *ExchangesClient) ListIn(ctx context.Context, vhost string) ([]rabbitmq.ExchangeInfo, error) {
	path := "exchanges/" + http.Path(vhost)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing exchanges in virtual host: %w", err)
	}

	var exchanges []rabbitmq.ExchangeInfo

	err = json.Unmarshal(resp.Body, &exchanges)
	if err != nil {
		return nil, fmt.Errorf("parsing exchanges list: %w", err)
	}

	return exchanges, nil
}

// ListInPaged implements rabbitmq.ExchangesClient.ListInPaged.
func (c *ExchangesClient) ListInPaged(ctx context.Context, vhost string, params rabbitmq.PaginationParams) (*rabbitmq.PaginatedResponse[rabbitmq.ExchangeInfo], error) {
	path := "exchanges/" + http.Path(vhost)

	resp, err := c.httpClient.Get(ctx, path, params.ToQuery())
	if err != nil {
		return nil, fmt.Errorf("listing exchanges page: %w", err)
	}

	var page rabbitmq.PaginatedResponse[rabbitmq.ExchangeInfo]

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing exchanges page: %w", err)
	}

	return &page, nil
}

// Get implements rabbitmq.ExchangesClient.Get.
func (c *ExchangesClient) Get(ctx context.Context, vhost, name string) (*rabbitmq.ExchangeInfo, error) {
	path := "exchanges/" + http.Path(vhost, name)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting exchange: %w", err)
	}

	var exchange rabbitmq.ExchangeInfo

	err = json.Unmarshal(resp.Body, &exchange)
	if err != nil {
		return nil, fmt.Errorf("parsing exchange: %w", err)
	}

	return &exchange, nil
}

// Declare implements rabbitmq.ExchangesClient.Declare.
func (c *ExchangesClient) Declare(ctx context.Context, vhost string, params *rabbitmq.ExchangeParams) error {
	path := "exchanges/" + http.Path(vhost, params.Name)

	_, err := c.httpClient.Put(ctx, path, params)
	if err != nil {
		return fmt.Errorf("declaring exchange: %w", err)
	}

	return nil
}

// Delete implements rabbitmq.ExchangesClient.Delete.
func (c *ExchangesClient) Delete(ctx context.Context, vhost, name string, idempotently bool) error {
	path := "exchanges/" + http.Path(vhost, name)

	err := deleteWithOptionalNotFound(ctx, c.httpClient, path, idempotently)
	if err != nil {
		return fmt.Errorf("deleting exchange: %w", err)
	}

	return nil
}
