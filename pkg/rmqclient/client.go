// Package rmqclient provides the main entry point for creating RabbitMQ
// HTTP API clients.
package rmqclient

import (
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/client"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

// New creates a client for the management API described by the given
// configuration. Omitted fields fall back to the defaults in the
// rabbitmq package: a local node endpoint and the guest user.
//
// The endpoint is normalized before use: a trailing slash is trimmed,
// "https://" is prepended when no scheme is given, and the "/api" base
// path is appended when missing.
func New(config *rabbitmq.Config) (rabbitmq.Client, error) {
	if config == nil {
		return nil, rabbitmq.ErrConfigRequired
	}

	if config.Endpoint == "" {
		config.Endpoint = rabbitmq.DefaultEndpoint
	}

	config.Endpoint = normalizeEndpoint(config.Endpoint)

	if config.Username == "" {
		config.Username = rabbitmq.DefaultUsername
	}

	if config.Password == "" {
		config.Password = rabbitmq.DefaultPassword
	}

	apiClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return apiClient, nil
}

// normalizeEndpoint maps the endpoint spellings users reach for onto
// the canonical "scheme://host:port/api" form.
func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSuffix(endpoint, "/")

	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	if !strings.HasSuffix(endpoint, "/api") {
		endpoint += "/api"
	}

	return endpoint
}

// NewWithEndpoint creates a client for the given endpoint using the
// default guest credentials. Those credentials are limited to local
// connections by the broker.
func NewWithEndpoint(endpoint string) (rabbitmq.Client, error) {
	return New(&rabbitmq.Config{
		Endpoint: endpoint,
	})
}

// NewWithBasicAuth creates a client for the given endpoint using HTTP
// Basic authentication.
func NewWithBasicAuth(endpoint, username, password string) (rabbitmq.Client, error) {
	return New(&rabbitmq.Config{
		Endpoint: endpoint,
		Username: username,
		Password: password,
	})
}

// NewWithTLSPeerVerification creates a client that verifies the server
// certificate against the given TLS configuration. Use it for HTTPS
// endpoints with a custom certificate authority or client certificates.
func NewWithTLSPeerVerification(endpoint, username, password string, tlsConfig *tls.Config) (rabbitmq.Client, error) {
	return New(&rabbitmq.Config{
		Endpoint:  endpoint,
		Username:  username,
		Password:  password,
		TLSConfig: tlsConfig,
	})
}
