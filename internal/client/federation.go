package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

// FederationClient implements rabbitmq.FederationClient.
//
// Federation upstreams are runtime parameters under the
// "federation-upstream" component, so most operations delegate to the
// parameters client and convert between representations.
type FederationClient struct {
	httpClient *http.Client
	parameters *ParametersClient
}

// NewFederationClient creates a new federation client.
func NewFederationClient(httpClient *http.Client) *FederationClient {
	return &FederationClient{
		httpClient: httpClient,
		parameters: NewParametersClient(httpClient),
	}
}

// ListUpstreams implements rabbitmq.FederationClient.ListUpstreams.
func (c *FederationClient) ListUpstreams(ctx context.Context) ([]rabbitmq.FederationUpstream, error) {
	params, err := c.parameters.ListOfComponent(ctx, rabbitmq.FederationUpstreamComponent)
	if err != nil {
		return nil, fmt.Errorf("listing federation upstreams: %w", err)
	}

	upstreams := make([]rabbitmq.FederationUpstream, 0, len(params))

	for i := range params {
		upstream, err := rabbitmq.FederationUpstreamFromRuntimeParameter(&params[i])
		if err != nil {
			return nil, fmt.Errorf("converting federation upstream: %w", err)
		}

		upstreams = append(upstreams, *upstream)
	}

	return upstreams, nil
}

// GetUpstream implements rabbitmq.FederationClient.GetUpstream.
func (c *FederationClient) GetUpstream(ctx context.Context, vhost, name string) (*rabbitmq.FederationUpstream, error) {
	param, err := c.parameters.Get(ctx, rabbitmq.FederationUpstreamComponent, vhost, name)
	if err != nil {
		return nil, fmt.Errorf("getting federation upstream: %w", err)
	}

	upstream, err := rabbitmq.FederationUpstreamFromRuntimeParameter(param)
	if err != nil {
		return nil, fmt.Errorf("converting federation upstream: %w", err)
	}

	return upstream, nil
}

// DeclareUpstream implements rabbitmq.FederationClient.DeclareUpstream.
func (c *FederationClient) DeclareUpstream(ctx context.Context, params rabbitmq.FederationUpstreamParams) error {
	definition := params.AsRuntimeParameterDefinition()

	err := c.parameters.Upsert(ctx, &definition)
	if err != nil {
		return fmt.Errorf("declaring federation upstream: %w", err)
	}

	return nil
}

// DeleteUpstream implements rabbitmq.FederationClient.DeleteUpstream.
func (c *FederationClient) DeleteUpstream(ctx context.Context, vhost, name string, idempotently bool) error {
	err := c.parameters.Clear(ctx, rabbitmq.FederationUpstreamComponent, vhost, name, idempotently)
	if err != nil {
		return fmt.Errorf("deleting federation upstream: %w", err)
	}

	return nil
}

// ListLinks implements rabbitmq.FederationClient.ListLinks.
func (c *FederationClient) ListLinks(ctx context.Context) ([]rabbitmq.FederationLink, error) {
	resp, err := c.httpClient.Get(ctx, "federation-links", nil)
	if err != nil {
		return nil, fmt.Errorf("listing federation links: %w", err)
	}

	var links []rabbitmq.FederationLink

	err = json.Unmarshal(resp.Body, &links)
	if err != nil {
		return nil, fmt.Errorf("parsing federation links list: %w", err)
	}

	return links, nil
}
