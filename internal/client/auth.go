package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

// AuthClient implements rabbitmq.AuthClient.
type AuthClient struct {
	httpClient *http.Client
}

// NewAuthClient creates a new authentication information client.
func NewAuthClient(httpClient *http.Client) *AuthClient {
	return &AuthClient{
		httpClient: httpClient,
	}
}

// OAuthConfiguration implements rabbitmq.AuthClient.OAuthConfiguration.
func (c *AuthClient) OAuthConfiguration(ctx context.Context) (*rabbitmq.OAuthConfiguration, error) {
	resp, err := c.httpClient.Get(ctx, "auth", nil)
	if err != nil {
		return nil, fmt.Errorf("getting OAuth configuration: %w", err)
	}

	var config rabbitmq.OAuthConfiguration

	err = json.Unmarshal(resp.Body, &config)
	if err != nil {
		return nil, fmt.Errorf("parsing OAuth configuration: %w", err)
	}

	return &config, nil
}

// AuthenticationAttemptStatistics implements
// rabbitmq.AuthClient.AuthenticationAttemptStatistics.
func (c *AuthClient) AuthenticationAttemptStatistics(ctx context.Context, node string) ([]rabbitmq.AuthenticationAttemptStatistics, error) {
	path := "auth/attempts/" + http.Path(node)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting authentication attempt statistics: %w", err)
	}

	var stats []rabbitmq.AuthenticationAttemptStatistics

	err = json.Unmarshal(resp.Body, &stats)
	if err != nil {
		return nil, fmt.Errorf("parsing authentication attempt statistics: %w", err)
	}

	return stats, nil
}
