package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentials_Apply(t *testing.T) {
	credentials := NewCredentials("ops", "s3krE7")

	req, err := http.NewRequest("GET", "http://localhost:15672/api/whoami", nil)
	require.NoError(t, err)

	require.NoError(t, credentials.Apply(req))

	username, password, ok := req.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "ops", username)
	assert.Equal(t, "s3krE7", password)
}

func TestCredentials_Username(t *testing.T) {
	credentials := NewCredentials("ops", "s3krE7")

	username, err := credentials.Username()
	require.NoError(t, err)
	assert.Equal(t, "ops", username)
}

func TestCredentials_CloseWipesBackingArrays(t *testing.T) {
	username := []byte("ops")
	password := []byte("s3krE7")

	credentials := &Credentials{
		username: username,
		password: password,
	}

	require.NoError(t, credentials.Close())

	// The arrays the container owned are zeroed, not just dropped.
	assert.Equal(t, make([]byte, 3), username)
	assert.Equal(t, make([]byte, 6), password)

	_, err := credentials.Username()
	require.ErrorIs(t, err, ErrCredentialsWiped)

	req, err := http.NewRequest("GET", "http://localhost:15672/api/whoami", nil)
	require.NoError(t, err)

	require.ErrorIs(t, credentials.Apply(req), ErrCredentialsWiped)
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestCredentials_CloseIsIdempotent(t *testing.T) {
	credentials := NewCredentials("ops", "s3krE7")

	require.NoError(t, credentials.Close())
	require.NoError(t, credentials.Close())
}
