package rabbitmq

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorResponse is the standard error payload returned by the management API,
// for example {"error": "not_authorised", "reason": "..."}.
type ErrorResponse struct {
	Error  string `json:"error"  yaml:"error"`
	Reason string `json:"reason" yaml:"reason"`
}

// ErrNotFound indicates that the requested object does not exist.
// Use errors.Is to detect it regardless of wrapping.
var ErrNotFound = errors.New("object not found")

// NotFoundError is returned when the API responds with 404 Not Found
// and the request did not list 404 as an accepted status.
type NotFoundError struct {
	URL        string
	StatusCode int
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("object not found: %s (status: %d)", e.URL, e.StatusCode)
}

// Unwrap makes errors.Is(err, ErrNotFound) work.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ClientError is returned for 4xx responses other than 404 that the request
// did not list as accepted.
type ClientError struct {
	URL        string
	StatusCode int
	Headers    http.Header
	Body       []byte
	// Response holds the parsed standard error payload when the body
	// contained one, nil otherwise.
	Response *ErrorResponse
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	if e.Response != nil && e.Response.Reason != "" {
		return fmt.Sprintf("client error: %d %s: %s", e.StatusCode, e.Response.Error, e.Response.Reason)
	}

	return fmt.Sprintf("client error: %d (url: %s)", e.StatusCode, e.URL)
}

// ServerError is returned for 5xx responses that the request did not list
// as accepted.
type ServerError struct {
	URL        string
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: %d (url: %s)", e.StatusCode, e.URL)
}

// TransportError wraps a network-level failure: connection refused, TLS
// handshake failure, timeout, and so on.
type TransportError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

// Unwrap exposes the underlying failure to errors.Is and errors.As.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// HealthCheckFailedError is returned when a health check endpoint reports
// a failed check with a 503 response.
type HealthCheckFailedError struct {
	Path       string
	StatusCode int
	Details    HealthCheckFailureDetails
}

// Error implements the error interface.
func (e *HealthCheckFailedError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("health check failed: %s: %s", e.Path, e.Details.FailureReason())
	}

	return fmt.Sprintf("health check failed: %s (status: %d)", e.Path, e.StatusCode)
}

// MultipleMatchingBindingsError is returned by binding deletion when more
// than one binding matches the given source, destination, routing key and
// arguments, so the operation cannot pick one safely.
type MultipleMatchingBindingsError struct {
	VirtualHost     string
	Source          string
	Destination     string
	DestinationType BindingDestinationType
	RoutingKey      string
	Bindings        []BindingInfo
}

// Error implements the error interface.
func (e *MultipleMatchingBindingsError) Error() string {
	return fmt.Sprintf("found %d bindings between %q and %q in virtual host %q, cannot delete one unambiguously",
		len(e.Bindings), e.Source, e.Destination, e.VirtualHost)
}

// InvalidHeaderValueError is returned when a caller-provided value cannot be
// used as an HTTP header, for example a connection close reason with
// control characters in it.
type InvalidHeaderValueError struct {
	Header string
	Value  string
}

// Error implements the error interface.
func (e *InvalidHeaderValueError) Error() string {
	return fmt.Sprintf("value %q cannot be used as the %s header", e.Value, e.Header)
}

// ConversionError is returned when a runtime parameter value cannot be
// converted to its typed representation, for example a shovel definition
// with no source protocol.
type ConversionError struct {
	// Kind names the target type, for example "Amqp091ShovelParams".
	Kind string
	// Property names the missing or malformed field.
	Property string
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert value to %s: property %q is missing or malformed", e.Kind, e.Property)
}

// Static errors that can be wrapped with context.
var (
	ErrEndpointRequired    = errors.New("API endpoint is required")
	ErrConfigRequired      = errors.New("config is required")
	ErrCredentialsRequired = errors.New("credentials are required")
	ErrNameRequired        = errors.New("name is required")
	ErrVirtualHostRequired = errors.New("virtual host is required")
	ErrClientClosed        = errors.New("client has been closed")
	ErrNoNodesToProbe      = errors.New("no nodes to probe")
	ErrUnknownTransformer  = errors.New("unknown definition set transformer")
)

// IsNotFound reports whether the error indicates a missing object.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsClientError reports whether the error is a 4xx API response.
func IsClientError(err error) bool {
	var ce *ClientError

	return errors.As(err, &ce)
}

// IsServerError reports whether the error is a 5xx API response.
func IsServerError(err error) bool {
	var se *ServerError

	return errors.As(err, &se)
}

// IsHealthCheckFailure reports whether the error is a failed health check.
func IsHealthCheckFailure(err error) bool {
	var hc *HealthCheckFailedError

	return errors.As(err, &hc)
}
