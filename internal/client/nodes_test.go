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

func TestNodesClient_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nodes", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		nodes := []rabbitmq.ClusterNode{
			{Name: "rabbit@node-1", Uptime: 86400000, Processors: 8},
			{Name: "rabbit@node-2", Uptime: 86200000, Processors: 8},
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(nodes)
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	nodes := NewNodesClient(client.httpClient)

	result, err := nodes.List(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "rabbit@node-1", result[0].Name)
	assert.Equal(t, uint32(8), result[0].Processors)
}

func TestNodesClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nodes/rabbit@node-1", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		node := rabbitmq.ClusterNode{
			Name:                   "rabbit@node-1",
			HasMemoryAlarmInEffect: true,
			MemoryHighWatermark:    8589934592,
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(node)
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	nodes := NewNodesClient(client.httpClient)

	node, err := nodes.Get(context.Background(), "rabbit@node-1")
	require.NoError(t, err)
	assert.Equal(t, "rabbit@node-1", node.Name)
	assert.True(t, node.HasMemoryAlarmInEffect)
}

func TestNodesClient_GetMemoryFootprint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nodes/rabbit@node-1/memory", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		footprint := rabbitmq.NodeMemoryFootprint{
			Breakdown: &rabbitmq.NodeMemoryBreakdown{
				ConnectionReaders: 4194304,
				ClassicQueueProcs: 16777216,
			},
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(footprint)
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	nodes := NewNodesClient(client.httpClient)

	footprint, err := nodes.GetMemoryFootprint(context.Background(), "rabbit@node-1")
	require.NoError(t, err)
	require.NotNil(t, footprint.Breakdown)
	assert.Equal(t, uint64(16777216), footprint.Breakdown.ClassicQueueProcs)
}
