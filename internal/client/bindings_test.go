package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	internalhttp "github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindingsClient_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bindings", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		propertiesKey := "events"
		bindings := []rabbitmq.BindingInfo{
			{
				VirtualHost:     "/",
				Source:          "amq.topic",
				Destination:     "cq.1",
				DestinationType: rabbitmq.BindingDestinationQueue,
				RoutingKey:      "events",
				Arguments:       rabbitmq.XArguments{},
				PropertiesKey:   &propertiesKey,
			},
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(bindings)
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	bindings := NewBindingsClient(client.httpClient)

	result, err := bindings.List(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "amq.topic", result[0].Source)
	assert.Equal(t, "cq.1", result[0].Destination)
	assert.Equal(t, rabbitmq.BindingDestinationQueue, result[0].DestinationType)
}

func TestBindingsClient_ListQueueBindings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/queues/vh-1/cq.1/bindings", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		bindings := []rabbitmq.BindingInfo{
			{
				VirtualHost:     "vh-1",
				Source:          "",
				Destination:     "cq.1",
				DestinationType: rabbitmq.BindingDestinationQueue,
				RoutingKey:      "cq.1",
			},
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(bindings)
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	bindings := NewBindingsClient(client.httpClient)

	result, err := bindings.ListQueueBindings(context.Background(), "vh-1", "cq.1")
	require.NoError(t, err)
	require.Len(t, result, 1)
	// The default exchange binding has an empty source.
	assert.Equal(t, "", result[0].Source)
}

func TestBindingsClient_ListExchangeBindingsWithSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/exchanges/vh-1/amq.topic/bindings/source", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]rabbitmq.BindingInfo{})
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	bindings := NewBindingsClient(client.httpClient)

	result, err := bindings.ListExchangeBindingsWithSource(context.Background(), "vh-1", "amq.topic")
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestBindingsClient_BindQueue(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bindings/vh-1/e/amq.direct/q/cq.1", r.URL.Path)
		assert.Equal(t, "POST", r.Method)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "orders.created", body["routing_key"])

		arguments, ok := body["arguments"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "value", arguments["x-custom"])

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	bindings := NewBindingsClient(client.httpClient)

	err := bindings.BindQueue(context.Background(), "vh-1", "cq.1", "amq.direct", "orders.created",
		rabbitmq.XArguments{"x-custom": "value"})
	require.NoError(t, err)
}

func TestBindingsClient_BindExchange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bindings/vh-1/e/upstream/e/downstream", r.URL.Path)
		assert.Equal(t, "POST", r.Method)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "#", body["routing_key"])

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	bindings := NewBindingsClient(client.httpClient)

	err := bindings.BindExchange(context.Background(), "vh-1", "downstream", "upstream", "#", nil)
	require.NoError(t, err)
}

func TestBindingsClient_Delete(t *testing.T) {
	propertiesKey := "orders.created"
	deleted := false

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "GET":
			assert.Equal(t, "/queues/vh-1/cq.1/bindings", r.URL.Path)

			bindings := []rabbitmq.BindingInfo{
				{
					VirtualHost:     "vh-1",
					Source:          "",
					Destination:     "cq.1",
					DestinationType: rabbitmq.BindingDestinationQueue,
					RoutingKey:      "cq.1",
				},
				{
					VirtualHost:     "vh-1",
					Source:          "amq.direct",
					Destination:     "cq.1",
					DestinationType: rabbitmq.BindingDestinationQueue,
					RoutingKey:      "orders.created",
					Arguments:       rabbitmq.XArguments{},
					PropertiesKey:   &propertiesKey,
				},
			}

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(bindings)
		case "DELETE":
			assert.Equal(t, "/bindings/vh-1/e/amq.direct/q/cq.1/orders.created", r.URL.Path)

			deleted = true

			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	bindings := NewBindingsClient(client.httpClient)

	err := bindings.Delete(context.Background(), &rabbitmq.BindingDeletionParams{
		VirtualHost:     "vh-1",
		Source:          "amq.direct",
		Destination:     "cq.1",
		DestinationType: rabbitmq.BindingDestinationQueue,
		RoutingKey:      "orders.created",
	}, false)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestBindingsClient_Delete_NoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]rabbitmq.BindingInfo{})
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	bindings := NewBindingsClient(client.httpClient)

	params := &rabbitmq.BindingDeletionParams{
		VirtualHost:     "vh-1",
		Source:          "amq.direct",
		Destination:     "cq.1",
		DestinationType: rabbitmq.BindingDestinationQueue,
		RoutingKey:      "orders.created",
	}

	require.NoError(t, bindings.Delete(context.Background(), params, true))

	err := bindings.Delete(context.Background(), params, false)
	require.Error(t, err)
	assert.True(t, rabbitmq.IsNotFound(err))
}

func TestBindingsClient_Delete_MultipleMatches(t *testing.T) {
	keyA := "events~a"
	keyB := "events~b"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)

		bindings := []rabbitmq.BindingInfo{
			{
				VirtualHost:     "vh-1",
				Source:          "amq.topic",
				Destination:     "stats",
				DestinationType: rabbitmq.BindingDestinationExchange,
				RoutingKey:      "events",
				PropertiesKey:   &keyA,
			},
			{
				VirtualHost:     "vh-1",
				Source:          "amq.topic",
				Destination:     "stats",
				DestinationType: rabbitmq.BindingDestinationExchange,
				RoutingKey:      "events",
				PropertiesKey:   &keyB,
			},
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(bindings)
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	bindings := NewBindingsClient(client.httpClient)

	err := bindings.Delete(context.Background(), &rabbitmq.BindingDeletionParams{
		VirtualHost:     "vh-1",
		Source:          "amq.topic",
		Destination:     "stats",
		DestinationType: rabbitmq.BindingDestinationExchange,
		RoutingKey:      "events",
	}, false)
	require.Error(t, err)

	var multiErr *rabbitmq.MultipleMatchingBindingsError

	require.True(t, errors.As(err, &multiErr))
	assert.Len(t, multiErr.Bindings, 2)
}
