package client

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

// closeReasonHeader carries the reason a connection is being closed. The
// broker forwards it to the affected client in the connection error.
const closeReasonHeader = "X-Reason"

// ConnectionsClient implements rabbitmq.ConnectionsClient.
type ConnectionsClient struct {
	httpClient *http.Client
}

// NewConnectionsClient creates a new connections client.
func NewConnectionsClient(httpClient *http.Client) *ConnectionsClient {
	return &ConnectionsClient{
		httpClient: httpClient,
	}
}

// List implements rabbitmq.ConnectionsClient.List.
func (c *ConnectionsClient) List(ctx context.Context) ([]rabbitmq.Connection, error) {
	resp, err := c.httpClient.Get(ctx, "connections", nil)
	if err != nil {
		return nil, fmt.Errorf("listing connections: %w", err)
	}

	var connections []rabbitmq.Connection

	err = json.Unmarshal(resp.Body, &connections)
	if err != nil {
		return nil, fmt.Errorf("parsing connections list: %w", err)
	}

	return connections, nil
}

// ListPaged implements rabbitmq.ConnectionsClient.ListPaged.
func (c *ConnectionsClient) ListPaged(ctx context.Context, params rabbitmq.PaginationParams) (*rabbitmq.PaginatedResponse[rabbitmq.Connection], error) {
	resp, err := c.httpClient.Get(ctx, "connections", params.ToQuery())
	if err != nil {
		return nil, fmt.Errorf("listing connections page: %w", err)
	}

	var page rabbitmq.PaginatedResponse[rabbitmq.Connection]

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing connections page: %w", err)
	}

	return &page, nil
}

// ListIn implements rabbitmq.ConnectionsClient.ListIn.
func (c *ConnectionsClient) ListIn(ctx context.Context, vhost string) ([]rabbitmq.Connection, error) {
	path := "vhosts/" + http.Path(vhost) + "/connections"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing connections in virtual host: %w", err)
	}

	var connections []rabbitmq.Connection

	err = json.Unmarshal(resp.Body, &connections)
	if err != nil {
		return nil, fmt.Errorf("parsing connections list: %w", err)
	}

	return connections, nil
}

// ListOfUser implements rabbitmq.ConnectionsClient.ListOfUser.
func (c *ConnectionsClient) ListOfUser(ctx context.Context, username string) ([]rabbitmq.UserConnection, error) {
	path := "connections/username/" + http.Path(username)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing connections of user: %w", err)
	}

	var connections []rabbitmq.UserConnection

	err = json.Unmarshal(resp.Body, &connections)
	if err != nil {
		return nil, fmt.Errorf("parsing connections list: %w", err)
	}

	return connections, nil
}

// ListStream implements rabbitmq.ConnectionsClient.ListStream.
func (c *ConnectionsClient) ListStream(ctx context.Context) ([]rabbitmq.Connection, error) {
	resp, err := c.httpClient.Get(ctx, "stream/connections", nil)
	if err != nil {
		return nil, fmt.Errorf("listing stream connections: %w", err)
	}

	var connections []rabbitmq.Connection

	err = json.Unmarshal(resp.Body, &connections)
	if err != nil {
		return nil, fmt.Errorf("parsing connections list: %w", err)
	}

	return connections, nil
}

// ListStreamIn implements rabbitmq.ConnectionsClient.ListStreamIn.
func (c *ConnectionsClient) ListStreamIn(ctx context.Context, vhost string) ([]rabbitmq.Connection, error) {
	path := "stream/connections/" + http.Path(vhost)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing stream connections in virtual host: %w", err)
	}

	var connections []rabbitmq.Connection

	err = json.Unmarshal(resp.Body, &connections)
	if err != nil {
		return nil, fmt.Errorf("parsing connections list: %w", err)
	}

	return connections, nil
}

// Get implements rabbitmq.ConnectionsClient.Get.
func (c *ConnectionsClient) Get(ctx context.Context, name string) (*rabbitmq.Connection, error) {
	path := "connections/" + http.Path(name)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting connection: %w", err)
	}

	var connection rabbitmq.Connection

	err = json.Unmarshal(resp.Body, &connection)
	if err != nil {
		return nil, fmt.Errorf("parsing connection: %w", err)
	}

	return &connection, nil
}

// GetStream implements rabbitmq.ConnectionsClient.GetStream.
func (c *ConnectionsClient) GetStream(ctx context.Context, vhost, name string) (*rabbitmq.Connection, error) {
	path := "stream/connections/" + http.Path(vhost, name)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting stream connection: %w", err)
	}

	var connection rabbitmq.Connection

	err = json.Unmarshal(resp.Body, &connection)
	if err != nil {
		return nil, fmt.Errorf("parsing connection: %w", err)
	}

	return &connection, nil
}

// Close implements rabbitmq.ConnectionsClient.Close.
func (c *ConnectionsClient) Close(ctx context.Context, name, reason string, idempotently bool) error {
	path := "connections/" + http.Path(name)

	err := c.closeWithReason(ctx, path, reason, idempotently)
	if err != nil {
		return fmt.Errorf("closing connection: %w", err)
	}

	return nil
}

// CloseOfUser implements rabbitmq.ConnectionsClient.CloseOfUser.
func (c *ConnectionsClient) CloseOfUser(ctx context.Context, username, reason string, idempotently bool) error {
	path := "connections/username/" + http.Path(username)

	err := c.closeWithReason(ctx, path, reason, idempotently)
	if err != nil {
		return fmt.Errorf("closing connections of user: %w", err)
	}

	return nil
}

func (c *ConnectionsClient) closeWithReason(ctx context.Context, path, reason string, idempotently bool) error {
	req := &http.Request{
		Method: nethttp.MethodDelete,
		Path:   path,
	}
	if idempotently {
		req.AcceptedClientError = nethttp.StatusNotFound
	}

	if reason != "" {
		if !validHeaderValue(reason) {
			return &rabbitmq.InvalidHeaderValueError{Header: closeReasonHeader, Value: reason}
		}

		req.Headers = map[string]string{closeReasonHeader: reason}
	}

	_, err := c.httpClient.Do(ctx, req)

	return err
}

// validHeaderValue reports whether the value can be sent as an HTTP
// header value: no control characters other than horizontal tab.
func validHeaderValue(value string) bool {
	for i := 0; i < len(value); i++ {
		b := value[i]
		if (b < ' ' && b != '\t') || b == 0x7F {
			return false
		}
	}

	return true
}
