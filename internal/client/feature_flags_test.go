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

func TestFeatureFlagsClient_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/feature-flags", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		flags := []rabbitmq.FeatureFlag{
			{
				Name:      "khepri_db",
				State:     rabbitmq.FeatureFlagStateEnabled,
				Stability: rabbitmq.FeatureFlagStabilityStable,
			},
			{
				Name:      "rabbitmq_4.0.0",
				State:     rabbitmq.FeatureFlagStateDisabled,
				Stability: rabbitmq.FeatureFlagStabilityStable,
			},
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(flags)
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	featureFlags := NewFeatureFlagsClient(client.httpClient)

	result, err := featureFlags.List(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "khepri_db", result[0].Name)
	assert.Equal(t, rabbitmq.FeatureFlagStateEnabled, result[0].State)
}

func TestFeatureFlagsClient_Enable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/feature-flags/khepri_db/enable", r.URL.Path)
		assert.Equal(t, "PUT", r.Method)

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	featureFlags := NewFeatureFlagsClient(client.httpClient)

	err := featureFlags.Enable(context.Background(), "khepri_db")
	require.NoError(t, err)
}

func TestFeatureFlagsClient_EnableAllStable(t *testing.T) {
	var enabled []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "GET":
			assert.Equal(t, "/feature-flags", r.URL.Path)

			flags := []rabbitmq.FeatureFlag{
				{Name: "stable_on", State: rabbitmq.FeatureFlagStateEnabled, Stability: rabbitmq.FeatureFlagStabilityStable},
				{Name: "stable_off", State: rabbitmq.FeatureFlagStateDisabled, Stability: rabbitmq.FeatureFlagStabilityStable},
				{Name: "experimental_off", State: rabbitmq.FeatureFlagStateDisabled, Stability: rabbitmq.FeatureFlagStabilityExperimental},
			}

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(flags)
		case "PUT":
			enabled = append(enabled, r.URL.Path)

			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer server.Close()

	client := &Client{httpClient: internalhttp.NewClient(server.URL, nil)}
	featureFlags := NewFeatureFlagsClient(client.httpClient)

	err := featureFlags.EnableAllStable(context.Background())
	require.NoError(t, err)
	// Only disabled flags with stable status are enabled.
	assert.Equal(t, []string{"/feature-flags/stable_off/enable"}, enabled)
}
