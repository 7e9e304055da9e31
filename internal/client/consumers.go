package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

// ConsumersClient implements rabbitmq.ConsumersClient.
type ConsumersClient struct {
	httpClient *http.Client
}

// NewConsumersClient creates a new consumers client.
func NewConsumersClient(httpClient *http.Client) *ConsumersClient {
	return &ConsumersClient{
		httpClient: httpClient,
	}
}

// List implements rabbitmq.ConsumersClient.List.
func (c *ConsumersClient) List(ctx context.Context) ([]rabbitmq.Consumer, error) {
	resp, err := c.httpClient.Get(ctx, "consumers", nil)
	if err != nil {
		return nil, fmt.Errorf("listing consumers: %w", err)
	}

	var consumers []rabbitmq.Consumer

	err = json.Unmarshal(resp.Body, &consumers)
	if err != nil {
		return nil, fmt.Errorf("parsing consumers list: %w", err)
	}

	return consumers, nil
}

// ListIn implements rabbitmq.ConsumersClient.ListIn.
func (c *ConsumersClient) ListIn(ctx context.Context, vhost string) ([]rabbitmq.Consumer, error) {
	path := "consumers/" + http.Path(vhost)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing consumers in virtual host: %w", err)
	}

	var consumers []rabbitmq.Consumer

	err = json.Unmarshal(resp.Body, &consumers)
	if err != nil {
		return nil, fmt.Errorf("parsing consumers list: %w", err)
	}

	return consumers, nil
}

// ListStreamPublishers implements
// rabbitmq.ConsumersClient.ListStreamPublishers.
func (c *ConsumersClient) ListStreamPublishers(ctx context.Context) ([]rabbitmq.StreamPublisher, error) {
	return c.listStreamPublishers(ctx, "stream/publishers")
}

// ListStreamPublishersIn implements
// rabbitmq.ConsumersClient.ListStreamPublishersIn.
func (c *ConsumersClient) ListStreamPublishersIn(ctx context.Context, vhost string) ([]rabbitmq.StreamPublisher, error) {
	return c.listStreamPublishers(ctx, "stream/publishers/"+http.Path(vhost))
}

// ListStreamPublishersOf implements
// rabbitmq.ConsumersClient.ListStreamPublishersOf.
func (c *ConsumersClient) ListStreamPublishersOf(ctx context.Context, vhost, stream string) ([]rabbitmq.StreamPublisher, error) {
	return c.listStreamPublishers(ctx, "stream/publishers/"+http.Path(vhost, stream))
}

// ListStreamPublishersOnConnection implements
// rabbitmq.ConsumersClient.ListStreamPublishersOnConnection.
func (c *ConsumersClient) ListStreamPublishersOnConnection(ctx context.Context, vhost, name string) ([]rabbitmq.StreamPublisher, error) {
	return c.listStreamPublishers(ctx, "stream/connections/"+http.Path(vhost, name)+"/publishers")
}

func (c *ConsumersClient) listStreamPublishers(ctx context.Context, path string) ([]rabbitmq.StreamPublisher, error) {
	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing stream publishers: %w", err)
	}

	var publishers []rabbitmq.StreamPublisher

	err = json.Unmarshal(resp.Body, &publishers)
	if err != nil {
		return nil, fmt.Errorf("parsing stream publishers list: %w", err)
	}

	return publishers, nil
}

// ListStreamConsumers implements
// rabbitmq.ConsumersClient.ListStreamConsumers.
func (c *ConsumersClient) ListStreamConsumers(ctx context.Context) ([]rabbitmq.StreamConsumer, error) {
	return c.listStreamConsumers(ctx, "stream/consumers")
}

// ListStreamConsumersIn implements
// rabbitmq.ConsumersClient.ListStreamConsumersIn.
func (c *ConsumersClient) ListStreamConsumersIn(ctx context.Context, vhost string) ([]rabbitmq.StreamConsumer, error) {
	return c.listStreamConsumers(ctx, "stream/consumers/"+http.Path(vhost))
}

// ListStreamConsumersOnConnection implements
// rabbitmq.ConsumersClient.ListStreamConsumersOnConnection.
func (c *ConsumersClient) ListStreamConsumersOnConnection(ctx context.Context, vhost, name string) ([]rabbitmq.StreamConsumer, error) {
	return c.listStreamConsumers(ctx, "stream/connections/"+http.Path(vhost, name)+"/consumers")
}

func (c *ConsumersClient) listStreamConsumers(ctx context.Context, path string) ([]rabbitmq.StreamConsumer, error) {
	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing stream consumers: %w", err)
	}

	var consumers []rabbitmq.StreamConsumer

	err = json.Unmarshal(resp.Body, &consumers)
	if err != nil {
		return nil, fmt.Errorf("parsing stream consumers list: %w", err)
	}

	return consumers, nil
}
