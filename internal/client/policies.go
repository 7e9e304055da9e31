package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

// Base paths of the two policy namespaces. Operator policies have the
// same shape as regular ones but are merged on top of them and cannot be
// overridden by applications.
const (
	policiesBase         = "policies"
	operatorPoliciesBase = "operator-policies"
)

// PoliciesClient implements rabbitmq.PoliciesClient.
type PoliciesClient struct {
	httpClient *http.Client
}

// NewPoliciesClient creates a new policies client.
func NewPoliciesClient(httpClient *http.Client) *PoliciesClient {
	return &PoliciesClient{
		httpClient: httpClient,
	}
}

// List implements rabbitmq.PoliciesClient.List.
func (c *PoliciesClient) List(ctx context.Context) ([]rabbitmq.Policy, error) {
	return c.list(ctx, policiesBase)
}

// ListIn implements rabbitmq.PoliciesClient.ListIn.
func (c *PoliciesClient) ListIn(ctx context.Context, vhost string) ([]rabbitmq.Policy, error) {
	return c.list(ctx, policiesBase+"/"+http.Path(vhost))
}

// Get implements rabbitmq.PoliciesClient.Get.
func (c *PoliciesClient) Get(ctx context.Context, vhost, name string) (*rabbitmq.Policy, error) {
	return c.get(ctx, policiesBase, vhost, name)
}

// Declare implements rabbitmq.PoliciesClient.Declare.
func (c *PoliciesClient) Declare(ctx context.Context, params *rabbitmq.PolicyParams) error {
	return c.declare(ctx, policiesBase, params)
}

// DeclareMultiple implements rabbitmq.PoliciesClient.DeclareMultiple.
func (c *PoliciesClient) DeclareMultiple(ctx context.Context, params []*rabbitmq.PolicyParams) error {
	for _, p := range params {
		err := c.declare(ctx, policiesBase, p)
		if err != nil {
			return err
		}
	}

	return nil
}

// Delete implements rabbitmq.PoliciesClient.Delete.
func (c *PoliciesClient) Delete(ctx context.Context, vhost, name string, idempotently bool) error {
	return c.delete(ctx, policiesBase, vhost, name, idempotently)
}

// DeleteMultipleIn implements rabbitmq.PoliciesClient.DeleteMultipleIn.
// Absent policies are skipped rather than reported as errors.
func (c *PoliciesClient) DeleteMultipleIn(ctx context.Context, vhost string, names []string) error {
	for _, name := range names {
		err := c.delete(ctx, policiesBase, vhost, name, true)
		if err != nil {
			return err
		}
	}

	return nil
}

// ListOperator implements rabbitmq.PoliciesClient.ListOperator.
func (c *PoliciesClient) ListOperator(ctx context.Context) ([]rabbitmq.Policy, error) {
	return c.list(ctx, operatorPoliciesBase)
}

// ListOperatorIn implements rabbitmq.PoliciesClient.ListOperatorIn.
func (c *PoliciesClient) ListOperatorIn(ctx context.Context, vhost string) ([]rabbitmq.Policy, error) {
	return c.list(ctx, operatorPoliciesBase+"/"+http.Path(vhost))
}

// GetOperator implements rabbitmq.PoliciesClient.GetOperator.
func (c *PoliciesClient) GetOperator(ctx context.Context, vhost, name string) (*rabbitmq.Policy, error) {
	return c.get(ctx, operatorPoliciesBase, vhost, name)
}

// DeclareOperator implements rabbitmq.PoliciesClient.DeclareOperator.
func (c *PoliciesClient) DeclareOperator(ctx context.Context, params *rabbitmq.PolicyParams) error {
	return c.declare(ctx, operatorPoliciesBase, params)
}

// DeclareMultipleOperator implements
// rabbitmq.PoliciesClient.DeclareMultipleOperator.
func (c *PoliciesClient) DeclareMultipleOperator(ctx context.Context, params []*rabbitmq.PolicyParams) error {
	for _, p := range params {
		err := c.declare(ctx, operatorPoliciesBase, p)
		if err != nil {
			return err
		}
	}

	return nil
}

// DeleteOperator implements rabbitmq.PoliciesClient.DeleteOperator.
func (c *PoliciesClient) DeleteOperator(ctx context.Context, vhost, name string, idempotently bool) error {
	return c.delete(ctx, operatorPoliciesBase, vhost, name, idempotently)
}

// DeleteMultipleOperatorIn implements
// rabbitmq.PoliciesClient.DeleteMultipleOperatorIn.
func (c *PoliciesClient) DeleteMultipleOperatorIn(ctx context.Context, vhost string, names []string) error {
	for _, name := range names {
		err := c.delete(ctx, operatorPoliciesBase, vhost, name, true)
		if err != nil {
			return err
		}
	}

	return nil
}

func (c *PoliciesClient) list(ctx context.Context, path string) ([]rabbitmq.Policy, error) {
	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing policies: %w", err)
	}

	var policies []rabbitmq.Policy

	err = json.Unmarshal(resp.Body, &policies)
	if err != nil {
		return nil, fmt.Errorf("parsing policies list: %w", err)
	}

	return policies, nil
}

func (c *PoliciesClient) get(ctx context.Context, base, vhost, name string) (*rabbitmq.Policy, error) {
	path := base + "/" + http.Path(vhost, name)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting policy: %w", err)
	}

	var policy rabbitmq.Policy

	err = json.Unmarshal(resp.Body, &policy)
	if err != nil {
		return nil, fmt.Errorf("parsing policy: %w", err)
	}

	return &policy, nil
}

func (c *PoliciesClient) declare(ctx context.Context, base string, params *rabbitmq.PolicyParams) error {
	path := base + "/" + http.Path(params.VirtualHost, params.Name)

	_, err := c.httpClient.Put(ctx, path, params)
	if err != nil {
		return fmt.Errorf("declaring policy: %w", err)
	}

	return nil
}

func (c *PoliciesClient) delete(ctx context.Context, base, vhost, name string, idempotently bool) error {
	path := base + "/" + http.Path(vhost, name)

	err := deleteWithOptionalNotFound(ctx, c.httpClient, path, idempotently)
	if err != nil {
		return fmt.Errorf("deleting policy: %w", err)
	}

	return nil
}
