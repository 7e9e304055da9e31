package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	internalhttp "github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsumersClient_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/consumers", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		consumers := []rabbitmq.Consumer{
			{
				ConsumerTag:   "ctag-1",
				Active:        true,
				ManualAck:     true,
				PrefetchCount: 100,
				Queue:         rabbitmq.NameAndVirtualHost{Name: "cq.1", VirtualHost: "/"},
			},
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(consumers)
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	consumers := NewConsumersClient(client.httpClient)

	result, err := consumers.List(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "ctag-1", result[0].ConsumerTag)
	assert.True(t, result[0].ManualAck)
	assert.Equal(t, "cq.1", result[0].Queue.Name)
}

func TestConsumersClient_ListIn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/consumers/vh-1", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]rabbitmq.Consumer{})
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	consumers := NewConsumersClient(client.httpClient)

	result, err := consumers.ListIn(context.Background(), "vh-1")
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestConsumersClient_ListStreamPublishersOf(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stream/publishers/vh-1/sq.1", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		publishers := []rabbitmq.StreamPublisher{
			{
				Queue:       rabbitmq.NameAndVirtualHost{Name: "sq.1", VirtualHost: "vh-1"},
				Reference:   "publisher-1",
				PublisherID: 1,
				Published:   12345,
				Confirmed:   12340,
			},
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(publishers)
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	consumers := NewConsumersClient(client.httpClient)

	result, err := consumers.ListStreamPublishersOf(context.Background(), "vh-1", "sq.1")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, uint64(12345), result[0].Published)
}

func TestConsumersClient_ListStreamConsumersOnConnection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stream/connections/vh-1/conn-1/consumers", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		streamConsumers := []rabbitmq.StreamConsumer{
			{
				Queue:          rabbitmq.NameAndVirtualHost{Name: "sq.1", VirtualHost: "vh-1"},
				SubscriptionID: 7,
				Offset:         100000,
				OffsetLag:      25,
			},
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(streamConsumers)
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	consumers := NewConsumersClient(client.httpClient)

	result, err := consumers.ListStreamConsumersOnConnection(context.Background(), "vh-1", "conn-1")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, uint32(7), result[0].SubscriptionID)
	assert.Equal(t, uint64(25), result[0].OffsetLag)
}
