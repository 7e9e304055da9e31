// Package http provides the HTTP transport used to talk to the
// management API: request dispatch, Basic auth, fixed-delay retries and
// status code classification into typed errors.
package http

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/michaelklishin/rabbitmq-http-api-go/internal/auth"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

// Defaults applied when the corresponding option is not given.
const (
	// DefaultRetryDelay is the fixed spacing between request attempts.
	DefaultRetryDelay = 1 * time.Second
	// DefaultTimeout bounds a single request/response cycle.
	DefaultTimeout = 60 * time.Second
)

// Client performs HTTP requests against the management API endpoint.
// All requests carry Basic auth credentials and a JSON Accept header.
// Failed requests are retried a configurable number of times with a
// fixed delay between attempts.
type Client struct {
	endpoint     string
	credentials  *auth.Credentials
	httpClient   *retryablehttp.Client
	logger       rabbitmq.Logger
	userAgent    string
	maxRetries   int
	retryDelay   time.Duration
	timeout      time.Duration
	tlsConfig    *tls.Config
	baseClient   *http.Client
	interceptors *rabbitmq.InterceptorChain
	debug        bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger rabbitmq.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables logging of every request and response.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithRetryConfig sets the number of additional attempts made after a
// failed request and the fixed delay between attempts. Zero retries
// means every request is attempted exactly once.
func WithRetryConfig(maxRetries int, retryDelay time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.retryDelay = retryDelay
	}
}

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout bounds every request/response cycle, including retries of
// the individual attempt. Ignored when WithHTTPClient is used.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithTLSConfig sets the TLS configuration used for HTTPS endpoints.
// Ignored when WithHTTPClient is used.
func WithTLSConfig(tlsConfig *tls.Config) Option {
	return func(c *Client) {
		c.tlsConfig = tlsConfig
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely. The
// caller becomes responsible for timeouts and TLS settings.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.baseClient = httpClient
	}
}

// WithInterceptors installs an interceptor chain that runs around every
// request. Request interceptors run after the request has been signed,
// response interceptors run after status classification.
func WithInterceptors(interceptors *rabbitmq.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = interceptors
	}
}

// NewClient creates an API client for the given endpoint. The endpoint
// is expected to already include the API prefix, for example
// "http://localhost:15672/api". A nil credentials value produces a
// client that sends unauthenticated requests, which the API rejects;
// it is accepted to keep tests simple.
func NewClient(endpoint string, credentials *auth.Credentials, opts ...Option) *Client {
	client := &Client{
		endpoint:    strings.TrimSuffix(endpoint, "/"),
		credentials: credentials,
		retryDelay:  DefaultRetryDelay,
		timeout:     DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	client.httpClient = client.newRetryableClient()

	return client
}

func (c *Client) newRetryableClient() *retryablehttp.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = c.maxRetries
	retryClient.RetryWaitMin = c.retryDelay
	retryClient.RetryWaitMax = c.retryDelay
	retryClient.CheckRetry = c.checkRetry
	retryClient.Backoff = c.backoff
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	if c.baseClient != nil {
		retryClient.HTTPClient = c.baseClient

		return retryClient
	}

	httpClient := &http.Client{Timeout: c.timeout}
	if c.tlsConfig != nil {
		httpClient.Transport = &http.Transport{TLSClientConfig: c.tlsConfig}
	}

	retryClient.HTTPClient = httpClient

	return retryClient
}

// Close wipes the credentials held by the client. The client must not
// be used after Close returns.
func (c *Client) Close() error {
	if c.credentials == nil {
		return nil
	}

	return c.credentials.Close()
}

// Request describes a single API request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string

	// AcceptedClientError designates one 4xx status code that is
	// returned to the caller as a regular response instead of an
	// error. Used for idempotent deletes (404) and similar cases.
	AcceptedClientError int
	// AcceptedServerError is the 5xx counterpart, used by health
	// check endpoints that report failures with a 503.
	AcceptedServerError int
}

// Response is a fully buffered API response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// acceptedCodesKey carries the accepted status codes of a request into
// the retry policy via its context.
type acceptedCodesKey struct{}

// Do executes a request and classifies the response status. For
// classified errors the response is returned alongside the error so
// callers can still inspect status, headers and body.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.endpoint + "/" + strings.TrimPrefix(req.Path, "/")
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var (
		rawBody  interface{}
		bodyData []byte
	)

	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		rawBody = data
		bodyData = data
	}

	ctx = context.WithValue(ctx, acceptedCodesKey{}, [2]int{req.AcceptedClientError, req.AcceptedServerError})

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.credentials != nil {
		err = c.credentials.Apply(httpReq.Request)
		if err != nil {
			if errors.Is(err, auth.ErrCredentialsWiped) {
				return nil, rabbitmq.ErrClientClosed
			}

			return nil, fmt.Errorf("applying credentials: %w", err)
		}
	}

	var interceptedReq *rabbitmq.Request

	if c.interceptors != nil {
		interceptedReq = &rabbitmq.Request{
			Method:  req.Method,
			Path:    req.Path,
			Headers: httpReq.Header,
			Body:    bodyData,
		}

		err = c.interceptors.ExecuteRequestInterceptors(ctx, interceptedReq)
		if err != nil {
			return nil, err
		}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &rabbitmq.TransportError{URL: fullURL, Err: err}
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &rabbitmq.TransportError{URL: fullURL, Err: err}
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    fullURL,
		})
	}

	classifyErr := c.classify(fullURL, req, resp)

	if c.interceptors != nil {
		interceptedResp := &rabbitmq.Response{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       resp.Body,
			Error:      classifyErr,
		}

		err = c.interceptors.ExecuteResponseInterceptors(ctx, interceptedReq, interceptedResp)
		if err != nil {
			return resp, err
		}
	}

	return resp, classifyErr
}

// classify maps a response status to a typed error. Accepted status
// codes pass through so the caller can inspect the response itself.
func (c *Client) classify(fullURL string, req *Request, resp *Response) error {
	status := resp.StatusCode

	switch {
	case status == http.StatusNotFound && req.AcceptedClientError != http.StatusNotFound:
		return &rabbitmq.NotFoundError{URL: fullURL, StatusCode: status}
	case status >= http.StatusBadRequest && status < http.StatusInternalServerError &&
		status != req.AcceptedClientError:
		return c.clientError(fullURL, resp)
	case status >= http.StatusInternalServerError && status != req.AcceptedServerError:
		return &rabbitmq.ServerError{
			URL:        fullURL,
			StatusCode: status,
			Headers:    resp.Headers,
			Body:       resp.Body,
		}
	}

	return nil
}

func (c *Client) clientError(fullURL string, resp *Response) error {
	clientErr := &rabbitmq.ClientError{
		URL:        fullURL,
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}

	var parsed rabbitmq.ErrorResponse
	if err := json.Unmarshal(resp.Body, &parsed); err == nil && parsed.Error != "" {
		clientErr.Response = &parsed
	}

	return clientErr
}

// checkRetry retries transport failures and every status the request
// did not accept. Statuses below 400 and accepted error codes never
// retry.
func (c *Client) checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return true, nil
	}

	if resp.StatusCode < http.StatusBadRequest {
		return false, nil
	}

	accepted, _ := ctx.Value(acceptedCodesKey{}).([2]int)
	if resp.StatusCode == accepted[0] || resp.StatusCode == accepted[1] {
		return false, nil
	}

	return true, nil
}

// backoff spaces attempts by the configured fixed delay, ignoring the
// attempt number.
func (c *Client) backoff(_, _ time.Duration, _ int, _ *http.Response) time.Duration {
	return c.retryDelay
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Post performs a POST request. A nil body sends no payload.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// DeleteWithHeaders performs a DELETE request with additional headers.
func (c *Client) DeleteWithHeaders(ctx context.Context, path string, headers map[string]string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path, Headers: headers})
}
