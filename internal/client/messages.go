package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

// MessagesClient implements rabbitmq.MessagesClient.
type MessagesClient struct {
	httpClient *http.Client
}

// NewMessagesClient creates a new messages client.
func NewMessagesClient(httpClient *http.Client) *MessagesClient {
	return &MessagesClient{
		httpClient: httpClient,
	}
}

// publishBody is the payload of the message publishing endpoint.
type publishBody struct {
	RoutingKey      string                     `json:"routing_key"`
	Payload         string                     `json:"payload"`
	PayloadEncoding string                     `json:"payload_encoding"`
	Properties      rabbitmq.MessageProperties `json:"properties"`
}

// getMessagesBody is the payload of the message fetching endpoint.
type getMessagesBody struct {
	Count    uint32 `json:"count"`
	AckMode  string `json:"ackmode"`
	Encoding string `json:"encoding"`
}

// Publish implements rabbitmq.MessagesClient.Publish.
func (c *MessagesClient) Publish(ctx context.Context, vhost, exchange, routingKey, payload string, properties rabbitmq.MessageProperties) (*rabbitmq.MessageRouted, error) {
	if properties == nil {
		properties = rabbitmq.MessageProperties{}
	}

	path := "exchanges/" + http.Path(vhost, exchange) + "/publish"
	body := publishBody{
		RoutingKey:      routingKey,
		Payload:         payload,
		PayloadEncoding: "string",
		Properties:      properties,
	}

	resp, err := c.httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("publishing message: %w", err)
	}

	var routed rabbitmq.MessageRouted

	err = json.Unmarshal(resp.Body, &routed)
	if err != nil {
		return nil, fmt.Errorf("parsing publish response: %w", err)
	}

	return &routed, nil
}

// Get implements rabbitmq.MessagesClient.Get.
func (c *MessagesClient) Get(ctx context.Context, vhost, queue string, count uint32, ackMode string) ([]rabbitmq.GetMessage, error) {
	path := "queues/" + http.Path(vhost, queue) + "/get"
	body := getMessagesBody{
		Count:    count,
		AckMode:  ackMode,
		Encoding: "auto",
	}

	resp, err := c.httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("fetching messages: %w", err)
	}

	var messages []rabbitmq.GetMessage

	err = json.Unmarshal(resp.Body, &messages)
	if err != nil {
		return nil, fmt.Errorf("parsing messages: %w", err)
	}

	return messages, nil
}
