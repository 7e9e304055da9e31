package http_test

import (
	"net/url"
	"testing"

	apihttp "github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePathSegment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "alphanumeric passes through", input: "queue1", expected: "queue1"},
		{name: "default virtual host", input: "/", expected: "%2F"},
		{name: "slash inside a name", input: "foo/bar", expected: "foo%2Fbar"},
		{name: "space", input: "my queue", expected: "my%20queue"},
		{name: "dot and dash are encoded", input: "a.b-c", expected: "a%2Eb%2Dc"},
		{name: "multi-byte characters encode per byte", input: "café", expected: "caf%C3%A9"},
		{name: "empty string", input: "", expected: ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, apihttp.EncodePathSegment(testCase.input))
		})
	}
}

func TestEncodePathSegmentRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{"/", "foo/bar", "amq.direct", "queue name", "vh-1", "café", "a%b", "x?y=z"}

	for _, input := range inputs {
		decoded, err := url.PathUnescape(apihttp.EncodePathSegment(input))
		require.NoError(t, err)
		assert.Equal(t, input, decoded)
	}
}

func TestPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "%2F/orders", apihttp.Path("/", "orders"))
	assert.Equal(t, "vh%2D1/amq%2Edirect", apihttp.Path("vh-1", "amq.direct"))
	assert.Equal(t, "a%20b/c%2Fd", apihttp.Path("a b", "c/d"))
	assert.Equal(t, "single", apihttp.Path("single"))
}
