package rabbitmq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

// The expected values below come from the worked example in the
// Credentials and Passwords guide, https://www.rabbitmq.com/docs/passwords.
var docGuideSalt = []byte{0x90, 0x8D, 0xC6, 0x0A}

func TestBase64EncodedSaltedPasswordHashSHA256(t *testing.T) {
	hash := rabbitmq.Base64EncodedSaltedPasswordHashSHA256(docGuideSalt, "test12")

	assert.Equal(t, "kI3GCqW5JLMJa4iX1lo7X4D6XbYqlLgxIs30+P6tENUV2POR", hash)
}

func TestBase64EncodedSaltedPasswordHashSHA512(t *testing.T) {
	hash := rabbitmq.Base64EncodedSaltedPasswordHashSHA512(docGuideSalt, "test12")

	assert.Equal(t,
		"kI3GChuNuIYf8lRbCCxZjgjKwsY19ns6+uFO0zcXRBGA/XGJPYD8OWMy7EB8TaOmAzjP2azv84GbINYwX2cDWb4DHnc=",
		hash)
}

func TestSaltedPasswordHashSHA256_EmbedsSalt(t *testing.T) {
	hash := rabbitmq.SaltedPasswordHashSHA256(docGuideSalt, "test12")

	// The salt prefixes the digest so the broker can recompute the hash.
	assert.Equal(t, docGuideSalt, hash[:rabbitmq.SaltLength])
	assert.Len(t, hash, rabbitmq.SaltLength+32)
}

func TestGenerateSalt(t *testing.T) {
	salt, err := rabbitmq.GenerateSalt()
	require.NoError(t, err)
	assert.Len(t, salt, rabbitmq.SaltLength)

	for _, b := range salt {
		isAlphanumeric := (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
		assert.True(t, isAlphanumeric, "salt byte %q is not alphanumeric", b)
	}

	other, err := rabbitmq.GenerateSalt()
	require.NoError(t, err)
	assert.NotEqual(t, salt, other)
}
