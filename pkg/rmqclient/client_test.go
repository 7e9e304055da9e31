package rmqclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rmqclient"
)

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("creates client with config", func(t *testing.T) {
		t.Parallel()

		config := &rabbitmq.Config{
			Endpoint: "https://rmq-1.eng.example.com:15671/api",
			Username: "ops",
			Password: "s3krE7",
		}

		client, err := rmqclient.New(config)
		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.Equal(t, "https://rmq-1.eng.example.com:15671/api", client.Endpoint())
	})

	t.Run("nil config is rejected", func(t *testing.T) {
		t.Parallel()

		client, err := rmqclient.New(nil)
		require.ErrorIs(t, err, rabbitmq.ErrConfigRequired)
		assert.Nil(t, client)
	})

	t.Run("empty config falls back to the local node defaults", func(t *testing.T) {
		t.Parallel()

		client, err := rmqclient.New(&rabbitmq.Config{})
		require.NoError(t, err)
		assert.Equal(t, rabbitmq.DefaultEndpoint, client.Endpoint())
	})
}

func TestNew_EndpointNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		endpoint string
		expected string
	}{
		{
			name:     "already canonical",
			endpoint: "http://localhost:15672/api",
			expected: "http://localhost:15672/api",
		},
		{
			name:     "trailing slash",
			endpoint: "http://localhost:15672/api/",
			expected: "http://localhost:15672/api",
		},
		{
			name:     "missing base path",
			endpoint: "http://localhost:15672",
			expected: "http://localhost:15672/api",
		},
		{
			name:     "missing scheme",
			endpoint: "rmq-1.eng.example.com:15671",
			expected: "https://rmq-1.eng.example.com:15671/api",
		},
		{
			name:     "reverse proxied",
			endpoint: "https://proxy.example.com/rabbitmq/",
			expected: "https://proxy.example.com/rabbitmq/api",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			client, err := rmqclient.NewWithBasicAuth(testCase.endpoint, "guest", "guest")
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, client.Endpoint())
		})
	}
}

func TestNewWithEndpoint(t *testing.T) {
	t.Parallel()

	client, err := rmqclient.NewWithEndpoint("http://localhost:15672")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewWithBasicAuth(t *testing.T) {
	t.Parallel()

	client, err := rmqclient.NewWithBasicAuth("http://localhost:15672", "ops", "s3krE7")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewWithTLSPeerVerification(t *testing.T) {
	t.Parallel()

	client, err := rmqclient.NewWithTLSPeerVerification("rmq-1.eng.example.com:15671", "ops", "s3krE7", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://rmq-1.eng.example.com:15671/api", client.Endpoint())
}

func TestClientIntegration(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		username, password, ok := request.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "ops", username)
		assert.Equal(t, "s3krE7", password)

		switch request.URL.Path {
		case "/api/overview":
			overview := rabbitmq.Overview{
				ClusterName:     "test-cluster",
				RabbitMQVersion: "4.1.2",
			}
			_ = json.NewEncoder(writer).Encode(overview)
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client, err := rmqclient.NewWithBasicAuth(server.URL, "ops", "s3krE7")
	require.NoError(t, err)

	defer func() {
		_ = client.Close()
	}()

	overview, err := client.Cluster().Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test-cluster", overview.ClusterName)
	assert.Equal(t, "4.1.2", overview.RabbitMQVersion)
}
