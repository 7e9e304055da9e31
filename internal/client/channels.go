package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

// ChannelsClient implements rabbitmq.ChannelsClient.
type ChannelsClient struct {
	httpClient *http.Client
}

// NewChannelsClient creates a new channels client.
func NewChannelsClient(httpClient *http.Client) *ChannelsClient {
	return &ChannelsClient{
		httpClient: httpClient,
	}
}

// List implements rabbitmq.ChannelsClient.List.
func (c *ChannelsClient) List(ctx context.Context) ([]rabbitmq.Channel, error) {
	resp, err := c.httpClient.Get(ctx, "channels", nil)
	if err != nil {
		return nil, fmt.Errorf("listing channels: %w", err)
	}

	var channels []rabbitmq.Channel

	err = json.Unmarshal(resp.Body, &channels)
	if err != nil {
		return nil, fmt.Errorf("parsing channels list: %w", err)
	}

	return channels, nil
}

// ListPaged implements rabbitmq.ChannelsClient.ListPaged.
func (c *ChannelsClient) ListPaged(ctx context.Context, params rabbitmq.PaginationParams) (*rabbitmq.PaginatedResponse[rabbitmq.Channel], error) {
	resp, err := c.httpClient.Get(ctx, "channels", params.ToQuery())
	if err != nil {
		return nil, fmt.Errorf("listing channels page: %w", err)
	}

	var page rabbitmq.PaginatedResponse[rabbitmq.Channel]

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing channels page: %w", err)
	}

	return &page, nil
}

// ListIn implements rabbitmq.ChannelsClient.ListIn.
func (c *ChannelsClient) ListIn(ctx context.Context, vhost string) ([]rabbitmq.Channel, error) {
	path := "vhosts/" + http.Path(vhost) + "/channels"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing channels in virtual host: %w", err)
	}

	var channels []rabbitmq.Channel

	err = json.Unmarshal(resp.Body, &channels)
	if err != nil {
		return nil, fmt.Errorf("parsing channels list: %w", err)
	}

	return channels, nil
}

// ListInPaged implements rabbitmq.ChannelsClient.ListInPaged.
func (c *ChannelsClient) ListInPaged(ctx context.Context, vhost string, params rabbitmq.PaginationParams) (*rabbitmq.PaginatedResponse[rabbitmq.Channel], error) {
	path := "vhosts/" + http.Path(vhost) + "/channels"

	resp, err := c.httpClient.Get(ctx, path, params.ToQuery())
	if err != nil {
		return nil, fmt.Errorf("listing channels page: %w", err)
	}

	var page rabbitmq.PaginatedResponse[rabbitmq.Channel]

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing channels page: %w", err)
	}

	return &page, nil
}

// ListOnConnection implements rabbitmq.ChannelsClient.ListOnConnection.
func (c *ChannelsClient) ListOnConnection(ctx context.Context, connectionName string) ([]rabbitmq.Channel, error) {
	path := "connections/" + http.Path(connectionName) + "/channels"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing channels on connection: %w", err)
	}

	var channels []rabbitmq.Channel

	err = json.Unmarshal(resp.Body, &channels)
	if err != nil {
		return nil, fmt.Errorf("parsing channels list: %w", err)
	}

	return channels, nil
}

// Get implements rabbitmq.ChannelsClient.Get.
func (c *ChannelsClient) Get(ctx context.Context, name string) (*rabbitmq.Channel, error) {
	path := "channels/" + http.Path(name)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting channel: %w", err)
	}

	var channel rabbitmq.Channel

	err = json.Unmarshal(resp.Body, &channel)
	if err != nil {
		return nil, fmt.Errorf("parsing channel: %w", err)
	}

	return &channel, nil
}
