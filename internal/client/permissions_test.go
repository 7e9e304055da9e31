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

func TestPermissionsClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/permissions/vh-1/app-1", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		permissions := rabbitmq.Permissions{
			User:        "app-1",
			VirtualHost: "vh-1",
			Configure:   "^app-1\\.",
			Write:       "^app-1\\.",
			Read:        ".*",
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(permissions)
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	permissions := NewPermissionsClient(client.httpClient)

	result, err := permissions.Get(context.Background(), "vh-1", "app-1")
	require.NoError(t, err)
	assert.Equal(t, "app-1", result.User)
	assert.Equal(t, "^app-1\\.", result.Configure)
	assert.Equal(t, ".*", result.Read)
}

func TestPermissionsClient_ListOf(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/app-1/permissions", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		permissions := []rabbitmq.Permissions{
			{User: "app-1", VirtualHost: "vh-1", Configure: ".*", Write: ".*", Read: ".*"},
			{User: "app-1", VirtualHost: "vh-2", Configure: "", Write: "", Read: ".*"},
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(permissions)
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	permissions := NewPermissionsClient(client.httpClient)

	result, err := permissions.ListOf(context.Background(), "app-1")
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "vh-1", result[0].VirtualHost)
	assert.Equal(t, "vh-2", result[1].VirtualHost)
}

func TestPermissionsClient_Declare(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/permissions/vh-1/app-2", r.URL.Path)
		assert.Equal(t, "PUT", r.Method)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "^app-2\\.", body["configure"])
		assert.Equal(t, "^app-2\\.", body["write"])
		assert.Equal(t, ".*", body["read"])

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	permissions := NewPermissionsClient(client.httpClient)

	err := permissions.Declare(context.Background(), &rabbitmq.PermissionsParams{
		User:        "app-2",
		VirtualHost: "vh-1",
		Configure:   "^app-2\\.",
		Write:       "^app-2\\.",
		Read:        ".*",
	})
	require.NoError(t, err)
}

func TestPermissionsClient_GrantFull(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/permissions/vh-1/app-3", r.URL.Path)
		assert.Equal(t, "PUT", r.Method)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, ".*", body["configure"])
		assert.Equal(t, ".*", body["write"])
		assert.Equal(t, ".*", body["read"])

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	permissions := NewPermissionsClient(client.httpClient)

	err := permissions.GrantFull(context.Background(), "app-3", "vh-1")
	require.NoError(t, err)
}

func TestPermissionsClient_Clear_Idempotently(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/permissions/vh-1/gone", r.URL.Path)
		assert.Equal(t, "DELETE", r.Method)

		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Object Not Found", "reason": "Not Found"})
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	permissions := NewPermissionsClient(client.httpClient)

	require.NoError(t, permissions.Clear(context.Background(), "vh-1", "gone", true))

	err := permissions.Clear(context.Background(), "vh-1", "gone", false)
	require.Error(t, err)
	assert.True(t, rabbitmq.IsNotFound(err))
}

func TestPermissionsClient_GetTopicPermissionsOf(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/topic-permissions/vh-1/app-1", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		// One entry per exchange the user has topic permissions on.
		permissions := []rabbitmq.TopicPermission{
			{User: "app-1", VirtualHost: "vh-1", Exchange: "amq.topic", Write: "^events\\.", Read: "^events\\."},
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(permissions)
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	permissions := NewPermissionsClient(client.httpClient)

	result, err := permissions.GetTopicPermissionsOf(context.Background(), "vh-1", "app-1")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "amq.topic", result[0].Exchange)
}

func TestPermissionsClient_DeclareTopicPermissions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/topic-permissions/vh-1/app-1", r.URL.Path)
		assert.Equal(t, "PUT", r.Method)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "amq.topic", body["exchange"])
		assert.Equal(t, "^events\\.", body["write"])

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	permissions := NewPermissionsClient(client.httpClient)

	err := permissions.DeclareTopicPermissions(context.Background(), &rabbitmq.TopicPermissionsParams{
		User:        "app-1",
		VirtualHost: "vh-1",
		Exchange:    "amq.topic",
		Write:       "^events\\.",
		Read:        "^events\\.",
	})
	require.NoError(t, err)
}
