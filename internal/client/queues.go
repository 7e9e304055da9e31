package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

// QueuesClient implements rabbitmq.QueuesClient.
type QueuesClient struct {
	httpClient *http.Client
}

// NewQueuesClient creates a new queues client.
func NewQueuesClient(httpClient *http.Client) *QueuesClient {
	return &QueuesClient{
		httpClient: httpClient,
	}
}

// List implements rabbitmq.QueuesClient.List.
func (c *QueuesClient) List(ctx context.Context) ([]rabbitmq.QueueInfo, error) {
	resp, err := c.httpClient.Get(ctx, "queues", nil)
	if err != nil {
		return nil, fmt.Errorf("listing queues: %w", err)
	}

	var queues []rabbitmq.QueueInfo

	err = json.Unmarshal(resp.Body, &queues)
	if err != nil {
		return nil, fmt.Errorf("parsing queues list: %w", err)
	}

	return queues, nil
}

// ListPaged implements rabbitmq.QueuesClient.ListPaged.
func (c *QueuesClient) ListPaged(ctx context.Context, params rabbitmq.PaginationParams) (*rabbitmq.PaginatedResponse[rabbitmq.QueueInfo], error) {
	resp, err := c.httpClient.Get(ctx, "queues", params.ToQuery())
	if err != nil {
		return nil, fmt.Errorf("listing queues page: %w", err)
	}

	var page rabbitmq.PaginatedResponse[rabbitmq.QueueInfo]

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing queues page: %w", err)
	}

	return &page, nil
}

// ListIn implements rabbitmq.QueuesClient.ListIn.
func (c *QueuesClient) ListIn(ctx context.Context, vhost string) ([]rabbitmq.QueueInfo, error) {
	path := "queues/" + http.Path(vhost)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing queues in virtual host: %w", err)
	}

	var queues []rabbitmq.QueueInfo

	err = json.Unmarshal(resp.Body, &queues)
	if err != nil {
		return nil, fmt.Errorf("parsing queues list: %w", err)
	}

	return queues, nil
}

// ListInPaged implements rabbitmq.QueuesClient.ListInPaged.
func (c *QueuesClient) ListInPaged(ctx context.Context, vhost string, params rabbitmq.PaginationParams) (*rabbitmq.PaginatedResponse[rabbitmq.QueueInfo], error) {
	path := "queues/" + http.Path(vhost)

	resp, err := c.httpClient.Get(ctx, path, params.ToQuery())
	if err != nil {
		return nil, fmt.Errorf("listing queues page: %w", err)
	}

	var page rabbitmq.PaginatedResponse[rabbitmq.QueueInfo]

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing queues page: %w", err)
	}

	return &page, nil
}

// ListWithDetails implements rabbitmq.QueuesClient.ListWithDetails.
func (c *QueuesClient) ListWithDetails(ctx context.Context) ([]rabbitmq.DetailedQueueInfo, error) {
	resp, err := c.httpClient.Get(ctx, "queues/detailed", nil)
	if err != nil {
		return nil, fmt.Errorf("listing queues with details: %w", err)
	}

	var queues []rabbitmq.DetailedQueueInfo

	err = json.Unmarshal(resp.Body, &queues)
	if err != nil {
		return nil, fmt.Errorf("parsing queues list: %w", err)
	}

	return queues, nil
}

// Get implements rabbitmq.QueuesClient.Get.
func (c *QueuesClient) Get(ctx context.Context, vhost, name string) (*rabbitmq.QueueInfo, error) {
	path := "queues/" + http.Path(vhost, name)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting queue: %w", err)
	}

	var queue rabbitmq.QueueInfo

	err = json.Unmarshal(resp.Body, &queue)
	if err != nil {
		return nil, fmt.Errorf("parsing queue: %w", err)
	}

	return &queue, nil
}

// GetStream implements rabbitmq.QueuesClient.GetStream. Streams share the
// queue namespace, so this is Get under a name that reads better in
// stream-centric code.
func (c *QueuesClient) GetStream(ctx context.Context, vhost, name string) (*rabbitmq.QueueInfo, error) {
	return c.Get(ctx, vhost, name)
}

// Declare implements rabbitmq.QueuesClient.Declare.
func (c *QueuesClient) Declare(ctx context.Context, vhost string, params *rabbitmq.QueueParams) error {
	path := "queues/" + http.Path(vhost, params.Name)

	_, err := c.httpClient.Put(ctx, path, params)
	if err != nil {
		return fmt.Errorf("declaring queue: %w", err)
	}

	return nil
}

// DeclareStream implements rabbitmq.QueuesClient.DeclareStream. The
// stream-specific settings are carried as optional queue arguments of a
// stream-typed queue declaration.
func (c *QueuesClient) DeclareStream(ctx context.Context, vhost string, params *rabbitmq.StreamParams) error {
	arguments := rabbitmq.XArguments{}
	for key, value := range params.Arguments {
		arguments[key] = value
	}

	if params.MaxLengthBytes != nil {
		arguments["max_length_bytes"] = *params.MaxLengthBytes
	}

	if params.MaxSegmentLengthBytes != nil {
		arguments["max_segment_length_bytes"] = *params.MaxSegmentLengthBytes
	}

	queueParams := rabbitmq.NewStreamQueueParams(params.Name, arguments)
	path := "queues/" + http.Path(vhost, params.Name)

	_, err := c.httpClient.Put(ctx, path, queueParams)
	if err != nil {
		return fmt.Errorf("declaring stream: %w", err)
	}

	return nil
}

// Delete implements rabbitmq.QueuesClient.Delete.
func (c *QueuesClient) Delete(ctx context.Context, vhost, name string, idempotently bool) error {
	path := "queues/" + http.Path(vhost, name)

	err := deleteWithOptionalNotFound(ctx, c.httpClient, path, idempotently)
	if err != nil {
		return fmt.Errorf("deleting queue: %w", err)
	}

	return nil
}

// DeleteStream implements rabbitmq.QueuesClient.DeleteStream.
func (c *QueuesClient) DeleteStream(ctx context.Context, vhost, name string, idempotently bool) error {
	return c.Delete(ctx, vhost, name, idempotently)
}

// Purge implements rabbitmq.QueuesClient.Purge.
func (c *QueuesClient) Purge(ctx context.Context, vhost, name string) error {
	path := "queues/" + http.Path(vhost, name) + "/contents"

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("purging queue: %w", err)
	}

	return nil
}

// RebalanceLeaders implements rabbitmq.QueuesClient.RebalanceLeaders.
func (c *QueuesClient) RebalanceLeaders(ctx context.Context) error {
	_, err := c.httpClient.Post(ctx, "rebalance/queues", map[string]interface{}{})
	if err != nil {
		return fmt.Errorf("rebalancing queue leaders: %w", err)
	}

	return nil
}
