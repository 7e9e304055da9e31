package client

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

// BindingsClient implements rabbitmq.BindingsClient.
type BindingsClient struct {
	httpClient *http.Client
}

// NewBindingsClient creates a new bindings client.
func NewBindingsClient(httpClient *http.Client) *BindingsClient {
	return &BindingsClient{
		httpClient: httpClient,
	}
}

// bindingCreationBody is the payload of binding creation requests. Both
// fields are optional on the wire.
type bindingCreationBody struct {
	RoutingKey string              `json:"routing_key,omitempty"`
	Arguments  rabbitmq.XArguments `json:"arguments,omitempty"`
}

// List implements rabbitmq.BindingsClient.List.
func (c *BindingsClient) List(ctx context.Context) ([]rabbitmq.BindingInfo, error) {
	resp, err := c.httpClient.Get(ctx, "bindings", nil)
	if err != nil {
		return nil, fmt.Errorf("listing bindings: %w", err)
	}

	var bindings []rabbitmq.BindingInfo

	err = json.Unmarshal(resp.Body, &bindings)
	if err != nil {
		return nil, fmt.Errorf("parsing bindings list: %w", err)
	}

	return bindings, nil
}

// ListIn implements rabbitmq.BindingsClient.ListIn.
func (c *BindingsClient) ListIn(ctx context.Context, vhost string) ([]rabbitmq.BindingInfo, error) {
	path := "bindings/" + http.Path(vhost)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing bindings in virtual host: %w", err)
	}

	var bindings []rabbitmq.BindingInfo

	err = json.Unmarshal(resp.Body, &bindings)
	if err != nil {
		return nil, fmt.Errorf("parsing bindings list: %w", err)
	}

	return bindings, nil
}

// ListQueueBindings implements rabbitmq.BindingsClient.ListQueueBindings.
func (c *BindingsClient) ListQueueBindings(ctx context.Context, vhost, queue string) ([]rabbitmq.BindingInfo, error) {
	path := "queues/" + http.Path(vhost, queue) + "/bindings"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing queue bindings: %w", err)
	}

	var bindings []rabbitmq.BindingInfo

	err = json.Unmarshal(resp.Body, &bindings)
	if err != nil {
		return nil, fmt.Errorf("parsing bindings list: %w", err)
	}

	return bindings, nil
}

// ListExchangeBindingsWithSource implements
// rabbitmq.BindingsClient.ListExchangeBindingsWithSource.
func (c *BindingsClient) ListExchangeBindingsWithSource(ctx context.Context, vhost, exchange string) ([]rabbitmq.BindingInfo, error) {
	return c.listExchangeBindings(ctx, vhost, exchange, rabbitmq.BindingVertexSource)
}

// ListExchangeBindingsWithDestination implements
// rabbitmq.BindingsClient.ListExchangeBindingsWithDestination.
func (c *BindingsClient) ListExchangeBindingsWithDestination(ctx context.Context, vhost, exchange string) ([]rabbitmq.BindingInfo, error) {
	return c.listExchangeBindings(ctx, vhost, exchange, rabbitmq.BindingVertexDestination)
}

func (c *BindingsClient) listExchangeBindings(ctx context.Context, vhost, exchange string, vertex rabbitmq.BindingVertex) ([]rabbitmq.BindingInfo, error) {
	path := "exchanges/" + http.Path(vhost, exchange) + "/bindings/" + http.Path(string(vertex))

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing exchange bindings: %w", err)
	}

	var bindings []rabbitmq.BindingInfo

	err = json.Unmarshal(resp.Body, &bindings)
	if err != nil {
		return nil, fmt.Errorf("parsing bindings list: %w", err)
	}

	return bindings, nil
}

// BindQueue implements rabbitmq.BindingsClient.BindQueue.
func (c *BindingsClient) BindQueue(ctx context.Context, vhost, queue, exchange, routingKey string, arguments rabbitmq.XArguments) error {
	path := "bindings/" + http.Path(vhost) + "/e/" + http.Path(exchange) + "/q/" + http.Path(queue)
	body := bindingCreationBody{RoutingKey: routingKey, Arguments: arguments}

	_, err := c.httpClient.Post(ctx, path, body)
	if err != nil {
		return fmt.Errorf("binding queue: %w", err)
	}

	return nil
}

// BindExchange implements rabbitmq.BindingsClient.BindExchange.
func (c *BindingsClient) BindExchange(ctx context.Context, vhost, destination, source, routingKey string, arguments rabbitmq.XArguments) error {
	path := "bindings/" + http.Path(vhost) + "/e/" + http.Path(source) + "/e/" + http.Path(destination)
	body := bindingCreationBody{RoutingKey: routingKey, Arguments: arguments}

	_, err := c.httpClient.Post(ctx, path, body)
	if err != nil {
		return fmt.Errorf("binding exchange: %w", err)
	}

	return nil
}

// Recreate implements rabbitmq.BindingsClient.Recreate.
func (c *BindingsClient) Recreate(ctx context.Context, binding *rabbitmq.BindingInfo) error {
	if binding.DestinationType == rabbitmq.BindingDestinationQueue {
		return c.BindQueue(ctx, binding.VirtualHost, binding.Destination, binding.Source, binding.RoutingKey, binding.Arguments)
	}

	return c.BindExchange(ctx, binding.VirtualHost, binding.Destination, binding.Source, binding.RoutingKey, binding.Arguments)
}

// Delete implements rabbitmq.BindingsClient.Delete.
//
// Binding deletion needs the server-assigned properties key, so the
// binding is first located among the bindings of its destination by
// comparing the source, the routing key and the arguments.
func (c *BindingsClient) Delete(ctx context.Context, params *rabbitmq.BindingDeletionParams, idempotently bool) error {
	var (
		candidates []rabbitmq.BindingInfo
		err        error
	)

	if params.DestinationType == rabbitmq.BindingDestinationQueue {
		candidates, err = c.ListQueueBindings(ctx, params.VirtualHost, params.Destination)
	} else {
		candidates, err = c.ListExchangeBindingsWithDestination(ctx, params.VirtualHost, params.Destination)
	}

	if err != nil {
		return fmt.Errorf("resolving binding: %w", err)
	}

	var matches []rabbitmq.BindingInfo

	for _, candidate := range candidates {
		if candidate.Source == params.Source &&
			candidate.RoutingKey == params.RoutingKey &&
			equalArguments(candidate.Arguments, params.Arguments) {
			matches = append(matches, candidate)
		}
	}

	switch len(matches) {
	case 0:
		if idempotently {
			return nil
		}

		return fmt.Errorf("deleting binding: %w", rabbitmq.ErrNotFound)
	case 1:
		path := "bindings/" + http.Path(params.VirtualHost) + "/e/" + http.Path(params.Source) +
			"/" + params.DestinationType.PathAbbreviation() + "/" + http.Path(params.Destination)
		if matches[0].PropertiesKey != nil {
			path += "/" + http.Path(*matches[0].PropertiesKey)
		}

		_, err = c.httpClient.Delete(ctx, path)
		if err != nil {
			return fmt.Errorf("deleting binding: %w", err)
		}

		return nil
	default:
		return &rabbitmq.MultipleMatchingBindingsError{
			VirtualHost:     params.VirtualHost,
			Source:          params.Source,
			Destination:     params.Destination,
			DestinationType: params.DestinationType,
			RoutingKey:      params.RoutingKey,
			Bindings:        matches,
		}
	}
}

// equalArguments compares two argument tables, treating nil and empty as
// equal. Listings always carry a table, deletion parameters may not.
func equalArguments(a, b rabbitmq.XArguments) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}

	return reflect.DeepEqual(a, b)
}
