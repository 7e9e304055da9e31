package client

import (
	"context"
	nethttp "net/http"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
)

// deleteWithOptionalNotFound issues a DELETE request that treats a 404
// response as success when idempotently is true. Most deletion operations
// on this API offer that choice to the caller.
func deleteWithOptionalNotFound(ctx context.Context, httpClient *http.Client, path string, idempotently bool) error {
	req := &http.Request{
		Method: nethttp.MethodDelete,
		Path:   path,
	}
	if idempotently {
		req.AcceptedClientError = nethttp.StatusNotFound
	}

	_, err := httpClient.Do(ctx, req)

	return err
}
