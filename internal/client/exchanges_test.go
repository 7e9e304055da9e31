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

func TestExchangesClient_ListIn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/exchanges/vh-1", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		exchanges := []rabbitmq.ExchangeInfo{
			{Name: "amq.direct", VirtualHost: "vh-1", Type: "direct", Durable: true},
			{Name: "amq.topic", VirtualHost: "vh-1", Type: "topic", Durable: true},
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(exchanges)
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	exchanges := NewExchangesClient(client.httpClient)

	result, err := exchanges.ListIn(context.Background(), "vh-1")
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "amq.direct", result[0].Name)
	assert.Equal(t, "direct", result[0].Type)
}

func TestExchangesClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/exchanges/vh-1/x.events", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		exchange := rabbitmq.ExchangeInfo{
			Name:        "x.events",
			VirtualHost: "vh-1",
			Type:        "topic",
			Durable:     true,
			Arguments:   rabbitmq.XArguments{"alternate-exchange": "unroutable"},
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(exchange)
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	exchanges := NewExchangesClient(client.httpClient)

	exchange, err := exchanges.Get(context.Background(), "vh-1", "x.events")
	require.NoError(t, err)
	assert.Equal(t, "x.events", exchange.Name)
	assert.Equal(t, "unroutable", exchange.Arguments["alternate-exchange"])
}

func TestExchangesClient_Declare(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/exchanges/vh-1/x.orders", r.URL.Path)
		assert.Equal(t, "PUT", r.Method)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "topic", body["type"])
		assert.Equal(t, true, body["durable"])
		assert.Equal(t, false, body["auto_delete"])
		// The name travels in the path only.
		assert.NotContains(t, body, "name")

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	exchanges := NewExchangesClient(client.httpClient)

	err := exchanges.Declare(context.Background(), "vh-1", rabbitmq.NewDurableTopicExchangeParams("x.orders", nil))
	require.NoError(t, err)
}

func TestExchangesClient_Delete_Idempotently(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/exchanges/vh-1/gone", r.URL.Path)
		assert.Equal(t, "DELETE", r.Method)

		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Object Not Found", "reason": "Not Found"})
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	exchanges := NewExchangesClient(client.httpClient)

	require.NoError(t, exchanges.Delete(context.Background(), "vh-1", "gone", true))

	err := exchanges.Delete(context.Background(), "vh-1", "gone", false)
	require.Error(t, err)
	assert.True(t, rabbitmq.IsNotFound(err))
}
