package rabbitmq

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{
		URL:        "http://localhost:15672/api/queues/%2F/missing",
		StatusCode: 404,
	}

	assert.Equal(t, "object not found: http://localhost:15672/api/queues/%2F/missing (status: 404)", err.Error())

	// Detection must survive wrapping.
	wrapped := fmt.Errorf("deleting queue: %w", err)
	assert.True(t, IsNotFound(wrapped))
	require.ErrorIs(t, wrapped, ErrNotFound)
}

func TestClientError(t *testing.T) {
	t.Run("with parsed response", func(t *testing.T) {
		err := &ClientError{
			URL:        "http://localhost:15672/api/queues/%2F/cq.1",
			StatusCode: 400,
			Response: &ErrorResponse{
				Error:  "bad_request",
				Reason: "invalid queue type",
			},
		}

		assert.Equal(t, "client error: 400 bad_request: invalid queue type", err.Error())
		assert.True(t, IsClientError(err))
	})

	t.Run("without parsed response", func(t *testing.T) {
		err := &ClientError{
			URL:        "http://localhost:15672/api/queues/%2F/cq.1",
			StatusCode: 401,
		}

		assert.Equal(t, "client error: 401 (url: http://localhost:15672/api/queues/%2F/cq.1)", err.Error())
	})
}

func TestServerError(t *testing.T) {
	err := &ServerError{
		URL:        "http://localhost:15672/api/overview",
		StatusCode: 500,
	}

	assert.Equal(t, "server error: 500 (url: http://localhost:15672/api/overview)", err.Error())
	assert.True(t, IsServerError(fmt.Errorf("fetching overview: %w", err)))
	assert.False(t, IsClientError(err))
}

func TestTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &TransportError{
		URL: "http://localhost:15672/api/overview",
		Err: cause,
	}

	assert.Equal(t, "request to http://localhost:15672/api/overview failed: connection refused", err.Error())
	require.ErrorIs(t, err, cause)
}

func TestHealthCheckFailedError(t *testing.T) {
	t.Run("with details", func(t *testing.T) {
		err := &HealthCheckFailedError{
			Path:       "health/checks/alarms",
			StatusCode: 503,
			Details: &ClusterAlarmCheckDetails{
				Reason: "resource alarms are in effect",
			},
		}

		assert.Equal(t, "health check failed: health/checks/alarms: resource alarms are in effect", err.Error())
		assert.True(t, IsHealthCheckFailure(err))
	})

	t.Run("without details", func(t *testing.T) {
		err := &HealthCheckFailedError{
			Path:       "health/checks/local-alarms",
			StatusCode: 503,
		}

		assert.Equal(t, "health check failed: health/checks/local-alarms (status: 503)", err.Error())
	})
}

func TestMultipleMatchingBindingsError(t *testing.T) {
	err := &MultipleMatchingBindingsError{
		VirtualHost:     "vh-1",
		Source:          "amq.direct",
		Destination:     "cq.1",
		DestinationType: BindingDestinationQueue,
		RoutingKey:      "orders.created",
		Bindings:        make([]BindingInfo, 2),
	}

	assert.Equal(t,
		`found 2 bindings between "amq.direct" and "cq.1" in virtual host "vh-1", cannot delete one unambiguously`,
		err.Error())
}

func TestInvalidHeaderValueError(t *testing.T) {
	err := &InvalidHeaderValueError{
		Header: "X-Reason",
		Value:  "line one\r\nline two",
	}

	assert.Equal(t, `value "line one\r\nline two" cannot be used as the X-Reason header`, err.Error())
}

func TestConversionError(t *testing.T) {
	err := &ConversionError{
		Kind:     "Amqp091ShovelParams",
		Property: "src-protocol",
	}

	assert.Equal(t, `cannot convert value to Amqp091ShovelParams: property "src-protocol" is missing or malformed`, err.Error())
}
