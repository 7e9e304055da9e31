package rabbitmq_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

func TestAmqp091ShovelParams_AsRuntimeParameterDefinition(t *testing.T) {
	t.Parallel()

	params := rabbitmq.Amqp091ShovelParams{
		Name:                "drain-dr-queue",
		VirtualHost:         "/",
		AcknowledgementMode: rabbitmq.TransferAcknowledgementWhenConfirmed,
		Source:              rabbitmq.Amqp091QueueSource("amqp://dr.example.com:5672", "overflow"),
		Destination:         rabbitmq.Amqp091ExchangeDestination("amqp://core.example.com:5672", "ingest", "from-dr"),
	}

	definition := params.AsRuntimeParameterDefinition()

	assert.Equal(t, "drain-dr-queue", definition.Name)
	assert.Equal(t, "/", definition.VirtualHost)
	assert.Equal(t, rabbitmq.ShovelComponent, definition.Component)

	// Keys for the unused endpoint kinds must not be present at all, the
	// shovel plugin rejects mixed queue and exchange endpoints.
	assert.Equal(t, rabbitmq.RuntimeParameterValue{
		"src-protocol":      rabbitmq.MessagingProtocolAmqp091,
		"dest-protocol":     rabbitmq.MessagingProtocolAmqp091,
		"src-uri":           "amqp://dr.example.com:5672",
		"dest-uri":          "amqp://core.example.com:5672",
		"ack-mode":          rabbitmq.TransferAcknowledgementWhenConfirmed,
		"src-queue":         "overflow",
		"dest-exchange":     "ingest",
		"dest-exchange-key": "from-dr",
	}, definition.Value)
}

func TestAmqp091ShovelParams_PredeclaredTopology(t *testing.T) {
	t.Parallel()

	delay := uint32(10)
	params := rabbitmq.Amqp091ShovelParams{
		Name:                "drain-dr-queue",
		VirtualHost:         "/",
		AcknowledgementMode: rabbitmq.TransferAcknowledgementWhenConfirmed,
		ReconnectDelay:      &delay,
		Source:              rabbitmq.Amqp091PredeclaredQueueSource("amqp://dr.example.com:5672", "overflow"),
		Destination:         rabbitmq.Amqp091PredeclaredQueueDestination("amqp://core.example.com:5672", "ingest"),
	}

	value := params.AsRuntimeParameterDefinition().Value

	assert.Equal(t, true, value["src-predeclared"])
	assert.Equal(t, true, value["dest-predeclared"])
	assert.Equal(t, uint32(10), value["reconnect-delay"])
	assert.Equal(t, "overflow", value["src-queue"])
	assert.Equal(t, "ingest", value["dest-queue"])
	assert.NotContains(t, value, "src-exchange")
	assert.NotContains(t, value, "dest-exchange")
}

func TestAmqp10ShovelParams_AsRuntimeParameterDefinition(t *testing.T) {
	t.Parallel()

	delay := uint32(10)
	params := rabbitmq.Amqp10ShovelParams{
		Name:                "mirror-telemetry",
		VirtualHost:         "/",
		AcknowledgementMode: rabbitmq.TransferAcknowledgementImmediate,
		ReconnectDelay:      &delay,
		Source:              rabbitmq.Amqp10Source("amqps://edge.example.com:5671", "/queues/telemetry"),
		Destination:         rabbitmq.Amqp10Destination("amqps://core.example.com:5671", "/queues/telemetry.mirror"),
	}

	definition := params.AsRuntimeParameterDefinition()

	assert.Equal(t, rabbitmq.ShovelComponent, definition.Component)
	assert.Equal(t, rabbitmq.RuntimeParameterValue{
		"src-protocol":    rabbitmq.MessagingProtocolAmqp10,
		"dest-protocol":   rabbitmq.MessagingProtocolAmqp10,
		"src-uri":         "amqps://edge.example.com:5671",
		"src-address":     "/queues/telemetry",
		"dest-uri":        "amqps://core.example.com:5671",
		"dest-address":    "/queues/telemetry.mirror",
		"ack-mode":        rabbitmq.TransferAcknowledgementImmediate,
		"reconnect-delay": uint32(10),
	}, definition.Value)
}

func TestShovelParamsFromRuntimeParameter_RoundTrip(t *testing.T) {
	t.Parallel()

	delay := uint32(5)
	params := rabbitmq.Amqp091ShovelParams{
		Name:                "audit-tap",
		VirtualHost:         "/",
		AcknowledgementMode: rabbitmq.TransferAcknowledgementWhenPublished,
		ReconnectDelay:      &delay,
		Source:              rabbitmq.Amqp091ExchangeSource("amqp://a.example.com:5672", "amq.topic", "audit.#"),
		Destination:         rabbitmq.Amqp091PredeclaredQueueDestination("amqp://b.example.com:5672", "audit.archive"),
	}

	// Declaring and re-reading the shovel goes through JSON, so the typed
	// values degrade to generic ones on the way back.
	encoded, err := json.Marshal(params.AsRuntimeParameterDefinition())
	require.NoError(t, err)

	var param rabbitmq.RuntimeParameter
	require.NoError(t, json.Unmarshal(encoded, &param))

	decoded, err := rabbitmq.ShovelParamsFromRuntimeParameter(&param)
	require.NoError(t, err)

	assert.Equal(t, "audit-tap", decoded.Name)
	assert.Equal(t, "/", decoded.VirtualHost)
	assert.Equal(t, "amqp091", decoded.SourceProtocol)
	assert.Equal(t, "amqp091", decoded.DestinationProtocol)
	assert.Equal(t, rabbitmq.TransferAcknowledgementWhenPublished, decoded.AcknowledgementMode)

	assert.Equal(t, "amqp://a.example.com:5672", decoded.SourceURI)
	assert.Equal(t, "amq.topic", decoded.SourceExchange)
	assert.Equal(t, "audit.#", decoded.SourceExchangeRoutingKey)
	assert.Empty(t, decoded.SourceQueue)
	assert.Nil(t, decoded.SourcePredeclared)

	assert.Equal(t, "amqp://b.example.com:5672", decoded.DestinationURI)
	assert.Equal(t, "audit.archive", decoded.DestinationQueue)
	require.NotNil(t, decoded.DestinationPredeclared)
	assert.True(t, *decoded.DestinationPredeclared)

	require.NotNil(t, decoded.ReconnectDelay)
	assert.Equal(t, uint32(5), *decoded.ReconnectDelay)
}

func TestShovelParamsFromRuntimeParameter_MissingKeys(t *testing.T) {
	t.Parallel()

	required := rabbitmq.RuntimeParameterValue{
		"src-protocol":  "amqp091",
		"dest-protocol": "amqp091",
		"src-uri":       "amqp://a.example.com:5672",
		"dest-uri":      "amqp://b.example.com:5672",
	}

	for _, missing := range []string{"src-protocol", "dest-protocol", "src-uri", "dest-uri"} {
		t.Run(missing, func(t *testing.T) {
			t.Parallel()

			value := rabbitmq.RuntimeParameterValue{}
			for key, v := range required {
				if key != missing {
					value[key] = v
				}
			}

			param := &rabbitmq.RuntimeParameter{
				Name:        "incomplete",
				VirtualHost: "/",
				Component:   rabbitmq.ShovelComponent,
				Value:       value,
			}

			params, err := rabbitmq.ShovelParamsFromRuntimeParameter(param)

			assert.Nil(t, params)

			var convErr *rabbitmq.ConversionError
			require.ErrorAs(t, err, &convErr)
			assert.Equal(t, "ShovelParams", convErr.Kind)
			assert.Equal(t, missing, convErr.Property)
		})
	}
}

func TestShovelParams_URIRotation(t *testing.T) {
	t.Parallel()

	param := &rabbitmq.RuntimeParameter{
		Name:        "drain-dr-queue",
		VirtualHost: "/",
		Component:   rabbitmq.ShovelComponent,
		Value: rabbitmq.RuntimeParameterValue{
			"src-protocol":  "amqp091",
			"dest-protocol": "amqp091",
			"src-uri":       "amqp://dr-1.example.com:5672",
			"dest-uri":      "amqp://core-1.example.com:5672",
			"ack-mode":      "on-confirm",
			"src-queue":     "overflow",
			"dest-queue":    "ingest",
		},
	}

	params, err := rabbitmq.ShovelParamsFromRuntimeParameter(param)
	require.NoError(t, err)

	rotated := params.WithSourceURI("amqp://dr-2.example.com:5672").
		WithDestinationURI("amqp://core-2.example.com:5672")

	// The original stays as read, redeclaring uses the copy.
	assert.Equal(t, "amqp://dr-1.example.com:5672", params.SourceURI)
	assert.Equal(t, "amqp://core-1.example.com:5672", params.DestinationURI)

	definition := rotated.AsRuntimeParameterDefinition()

	assert.Equal(t, rabbitmq.ShovelComponent, definition.Component)
	assert.Equal(t, "amqp://dr-2.example.com:5672", definition.Value["src-uri"])
	assert.Equal(t, "amqp://core-2.example.com:5672", definition.Value["dest-uri"])
	assert.Equal(t, "overflow", definition.Value["src-queue"])
	assert.Equal(t, "ingest", definition.Value["dest-queue"])
	assert.Equal(t, rabbitmq.TransferAcknowledgementWhenConfirmed, definition.Value["ack-mode"])
}
