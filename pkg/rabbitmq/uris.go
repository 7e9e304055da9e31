package rabbitmq

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// TLSPeerVerificationMode is the TLS peer verification setting carried in
// connection URI query parameters.
type TLSPeerVerificationMode string

const (
	// TLSPeerVerificationEnabled makes the node verify the peer certificate
	// chain.
	TLSPeerVerificationEnabled TLSPeerVerificationMode = "verify_peer"
	// TLSPeerVerificationDisabled disables peer certificate chain
	// verification.
	TLSPeerVerificationDisabled TLSPeerVerificationMode = "verify_none"
)

// String implements fmt.Stringer.
func (m TLSPeerVerificationMode) String() string {
	return string(m)
}

// TLS-related query parameter keys recognized by RabbitMQ in AMQP
// connection URIs. See https://www.rabbitmq.com/docs/uri-query-parameters.
const (
	URIQueryKeyPeerVerification     = "verify"
	URIQueryKeyCACertFile           = "cacertfile"
	URIQueryKeyClientCertFile       = "certfile"
	URIQueryKeyClientKeyFile        = "keyfile"
	URIQueryKeyServerNameIndication = "server_name_indication"
)

var tlsURIQueryKeys = []string{
	URIQueryKeyPeerVerification,
	URIQueryKeyCACertFile,
	URIQueryKeyClientCertFile,
	URIQueryKeyClientKeyFile,
	URIQueryKeyServerNameIndication,
}

// TLSClientSettings is a group of TLS-related URI query parameters for
// federation upstream and shovel connections. The zero value of a field
// means "leave this parameter alone".
type TLSClientSettings struct {
	PeerVerification     TLSPeerVerificationMode
	CACertFile           string
	ClientCertFile       string
	ClientKeyFile        string
	ServerNameIndication string
}

// URIBuilder edits the query parameters of a RabbitMQ connection URI,
// typically to configure TLS settings of federation upstreams and shovels.
//
// Most URI libraries percent-encode query parameter values. RabbitMQ
// expects raw filesystem paths in parameters such as cacertfile, so the
// builder decodes percent-encoded parameters on load and serializes them
// back without encoding. Each key appears at most once in the result.
type URIBuilder struct {
	url    *url.URL
	params map[string]string
}

// NewURIBuilder parses the given URI and returns a builder over it.
func NewURIBuilder(rawURI string) (*URIBuilder, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URI: %w", err)
	}

	params := make(map[string]string)
	for key, values := range u.Query() {
		if len(values) > 0 {
			params[key] = values[len(values)-1]
		}
	}

	return &URIBuilder{url: u, params: params}, nil
}

// WithTLSPeerVerification sets the peer verification mode ("verify").
func (b *URIBuilder) WithTLSPeerVerification(mode TLSPeerVerificationMode) *URIBuilder {
	return b.WithQueryParam(URIQueryKeyPeerVerification, string(mode))
}

// WithCACertFile sets the CA certificate bundle path ("cacertfile").
func (b *URIBuilder) WithCACertFile(path string) *URIBuilder {
	return b.WithQueryParam(URIQueryKeyCACertFile, path)
}

// WithClientCertFile sets the client certificate path ("certfile").
func (b *URIBuilder) WithClientCertFile(path string) *URIBuilder {
	return b.WithQueryParam(URIQueryKeyClientCertFile, path)
}

// WithClientKeyFile sets the client private key path ("keyfile").
func (b *URIBuilder) WithClientKeyFile(path string) *URIBuilder {
	return b.WithQueryParam(URIQueryKeyClientKeyFile, path)
}

// WithServerNameIndication sets the SNI hostname
// ("server_name_indication").
func (b *URIBuilder) WithServerNameIndication(hostname string) *URIBuilder {
	return b.WithQueryParam(URIQueryKeyServerNameIndication, hostname)
}

// WithQueryParam sets a query parameter, replacing any existing value.
func (b *URIBuilder) WithQueryParam(key, value string) *URIBuilder {
	b.params[key] = value

	return b
}

// WithoutQueryParam removes a query parameter.
func (b *URIBuilder) WithoutQueryParam(key string) *URIBuilder {
	delete(b.params, key)

	return b
}

// Replace removes every TLS-related query parameter and then applies the
// set fields of the given settings.
func (b *URIBuilder) Replace(settings TLSClientSettings) *URIBuilder {
	for _, key := range tlsURIQueryKeys {
		delete(b.params, key)
	}

	return b.applyTLSSettings(settings)
}

// Merge applies the set fields of the given settings, leaving every other
// TLS-related query parameter as it is.
func (b *URIBuilder) Merge(settings TLSClientSettings) *URIBuilder {
	return b.applyTLSSettings(settings)
}

func (b *URIBuilder) applyTLSSettings(settings TLSClientSettings) *URIBuilder {
	if settings.PeerVerification != "" {
		b.WithQueryParam(URIQueryKeyPeerVerification, string(settings.PeerVerification))
	}

	if settings.CACertFile != "" {
		b.WithQueryParam(URIQueryKeyCACertFile, settings.CACertFile)
	}

	if settings.ClientCertFile != "" {
		b.WithQueryParam(URIQueryKeyClientCertFile, settings.ClientCertFile)
	}

	if settings.ClientKeyFile != "" {
		b.WithQueryParam(URIQueryKeyClientKeyFile, settings.ClientKeyFile)
	}

	if settings.ServerNameIndication != "" {
		b.WithQueryParam(URIQueryKeyServerNameIndication, settings.ServerNameIndication)
	}

	return b
}

// QueryParams returns a copy of the current query parameters.
func (b *URIBuilder) QueryParams() map[string]string {
	params := make(map[string]string, len(b.params))
	for key, value := range b.params {
		params[key] = value
	}

	return params
}

// Build returns the final URI. Query parameters are serialized without
// percent-encoding, sorted by key.
func (b *URIBuilder) Build() string {
	if len(b.params) == 0 {
		b.url.RawQuery = ""

		return b.url.String()
	}

	keys := make([]string, 0, len(b.params))
	for key := range b.params {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+b.params[key])
	}

	b.url.RawQuery = strings.Join(pairs, "&")

	return b.url.String()
}
