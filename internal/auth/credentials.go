// Package auth holds the credential container used by the HTTP layer.
package auth

import (
	"errors"
	"net/http"
	"sync"
)

// Static errors for err113 compliance.
var (
	ErrCredentialsWiped = errors.New("credentials have been wiped")
)

// Credentials holds HTTP Basic credentials in wipeable backing arrays.
//
// Go strings are immutable, so the username and password are copied into
// byte slices at construction time and only converted back at the moment a
// request is signed. Close overwrites both arrays, which is as close to
// "the secret does not outlive the client" as a garbage-collected runtime
// allows.
type Credentials struct {
	mutex    sync.RWMutex
	username []byte
	password []byte
	wiped    bool
}

// NewCredentials copies the given username and password into fresh backing
// arrays owned by the container.
func NewCredentials(username, password string) *Credentials {
	return &Credentials{
		username: []byte(username),
		password: []byte(password),
	}
}

// Apply signs the request with the Authorization header derived from the
// stored credentials. It fails once the container has been wiped.
func (c *Credentials) Apply(req *http.Request) error {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.wiped {
		return ErrCredentialsWiped
	}

	req.SetBasicAuth(string(c.username), string(c.password))

	return nil
}

// Username returns the username the container was built with.
func (c *Credentials) Username() (string, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.wiped {
		return "", ErrCredentialsWiped
	}

	return string(c.username), nil
}

// Close overwrites the backing arrays with zeroes and marks the container
// as wiped. Subsequent Apply calls fail. Close is idempotent.
func (c *Credentials) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for i := range c.username {
		c.username[i] = 0
	}

	for i := range c.password {
		c.password[i] = 0
	}

	c.username = nil
	c.password = nil
	c.wiped = true

	return nil
}
