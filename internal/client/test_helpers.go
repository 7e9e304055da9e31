package client

import (
	internalhttp "github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
)

// NewTestClient creates a client wired to the given base URL without
// credentials, for use against httptest servers.
func NewTestClient(baseURL string) *Client {
	httpClient := internalhttp.NewClient(baseURL, nil)

	client := &Client{
		httpClient: httpClient,
		endpoint:   baseURL,
	}

	client.initializeResourceClients()

	return client
}
