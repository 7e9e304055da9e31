package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

// PermissionsClient implements rabbitmq.PermissionsClient.
type PermissionsClient struct {
	httpClient *http.Client
}

// NewPermissionsClient creates a new permissions client.
func NewPermissionsClient(httpClient *http.Client) *PermissionsClient {
	return &PermissionsClient{
		httpClient: httpClient,
	}
}

// List implements rabbitmq.PermissionsClient.List.
func (c *PermissionsClient) List(ctx context.Context) ([]rabbitmq.Permissions, error) {
	resp, err := c.httpClient.Get(ctx, "permissions", nil)
	if err != nil {
		return nil, fmt.Errorf("listing permissions: %w", err)
	}

	var permissions []rabbitmq.Permissions

	err = json.Unmarshal(resp.Body, &permissions)
	if err != nil {
		return nil, fmt.Errorf("parsing permissions list: %w", err)
	}

	return permissions, nil
}

// ListIn implements rabbitmq.PermissionsClient.ListIn.
func (c *PermissionsClient) ListIn(ctx context.Context, vhost string) ([]rabbitmq.Permissions, error) {
	path := "vhosts/" + http.Path(vhost) + "/permissions"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing permissions in virtual host: %w", err)
	}

	var permissions []rabbitmq.Permissions

	err = json.Unmarshal(resp.Body, &permissions)
	if err != nil {
		return nil, fmt.Errorf("parsing permissions list: %w", err)
	}

	return permissions, nil
}

// ListOf implements rabbitmq.PermissionsClient.ListOf.
func (c *PermissionsClient) ListOf(ctx context.Context, username string) ([]rabbitmq.Permissions, error) {
	path := "users/" + http.Path(username) + "/permissions"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing permissions of user: %w", err)
	}

	var permissions []rabbitmq.Permissions

	err = json.Unmarshal(resp.Body, &permissions)
	if err != nil {
		return nil, fmt.Errorf("parsing permissions list: %w", err)
	}

	return permissions, nil
}

// Get implements rabbitmq.PermissionsClient.Get.
func (c *PermissionsClient) Get(ctx context.Context, vhost, username string) (*rabbitmq.Permissions, error) {
	path := "permissions/" + http.Path(vhost, username)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting permissions: %w", err)
	}

	var permissions rabbitmq.Permissions

	err = json.Unmarshal(resp.Body, &permissions)
	if err != nil {
		return nil, fmt.Errorf("parsing permissions: %w", err)
	}

	return &permissions, nil
}

// Declare implements rabbitmq.PermissionsClient.Declare.
func (c *PermissionsClient) Declare(ctx context.Context, params *rabbitmq.PermissionsParams) error {
	path := "permissions/" + http.Path(params.VirtualHost, params.User)

	_, err := c.httpClient.Put(ctx, path, params)
	if err != nil {
		return fmt.Errorf("declaring permissions: %w", err)
	}

	return nil
}

// GrantFull implements rabbitmq.PermissionsClient.GrantFull.
func (c *PermissionsClient) GrantFull(ctx context.Context, username, vhost string) error {
	params := &rabbitmq.PermissionsParams{
		User:        username,
		VirtualHost: vhost,
		Configure:   ".*",
		Read:        ".*",
		Write:       ".*",
	}

	return c.Declare(ctx, params)
}

// Clear implements rabbitmq.PermissionsClient.Clear.
func (c *PermissionsClient) Clear(ctx context.Context, vhost, username string, idempotently bool) error {
	path := "permissions/" + http.Path(vhost, username)

	err := deleteWithOptionalNotFound(ctx, c.httpClient, path, idempotently)
	if err != nil {
		return fmt.Errorf("clearing permissions: %w", err)
	}

	return nil
}

// ListTopicPermissions implements
// rabbitmq.PermissionsClient.ListTopicPermissions.
func (c *PermissionsClient) ListTopicPermissions(ctx context.Context) ([]rabbitmq.TopicPermission, error) {
	resp, err := c.httpClient.Get(ctx, "topic-permissions", nil)
	if err != nil {
		return nil, fmt.Errorf("listing topic permissions: %w", err)
	}

	var permissions []rabbitmq.TopicPermission

	err = json.Unmarshal(resp.Body, &permissions)
	if err != nil {
		return nil, fmt.Errorf("parsing topic permissions list: %w", err)
	}

	return permissions, nil
}

// ListTopicPermissionsIn implements
// rabbitmq.PermissionsClient.ListTopicPermissionsIn.
func (c *PermissionsClient) ListTopicPermissionsIn(ctx context.Context, vhost string) ([]rabbitmq.TopicPermission, error) {
	path := "vhosts/" + http.Path(vhost) + "/topic-permissions"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing topic permissions in virtual host: %w", err)
	}

	var permissions []rabbitmq.TopicPermission

	err = json.Unmarshal(resp.Body, &permissions)
	if err != nil {
		return nil, fmt.Errorf("parsing topic permissions list: %w", err)
	}

	return permissions, nil
}

// ListTopicPermissionsOf implements
// rabbitmq.PermissionsClient.ListTopicPermissionsOf.
func (c *PermissionsClient) ListTopicPermissionsOf(ctx context.Context, username string) ([]rabbitmq.TopicPermission, error) {
	path := "users/" + http.Path(username) + "/topic-permissions"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing topic permissions of user: %w", err)
	}

	var permissions []rabbitmq.TopicPermission

	err = json.Unmarshal(resp.Body, &permissions)
	if err != nil {
		return nil, fmt.Errorf("parsing topic permissions list: %w", err)
	}

	return permissions, nil
}

// GetTopicPermissionsOf implements
// rabbitmq.PermissionsClient.GetTopicPermissionsOf. The broker responds
// with a list because a user can have topic permissions on several
// exchanges in the same virtual host.
func (c *PermissionsClient) GetTopicPermissionsOf(ctx context.Context, vhost, username string) ([]rabbitmq.TopicPermission, error) {
	path := "topic-permissions/" + http.Path(vhost, username)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting topic permissions: %w", err)
	}

	var permissions []rabbitmq.TopicPermission

	err = json.Unmarshal(resp.Body, &permissions)
	if err != nil {
		return nil, fmt.Errorf("parsing topic permissions: %w", err)
	}

	return permissions, nil
}

// DeclareTopicPermissions implements
// rabbitmq.PermissionsClient.DeclareTopicPermissions.
func (c *PermissionsClient) DeclareTopicPermissions(ctx context.Context, params *rabbitmq.TopicPermissionsParams) error {
	path := "topic-permissions/" + http.Path(params.VirtualHost, params.User)

	_, err := c.httpClient.Put(ctx, path, params)
	if err != nil {
		return fmt.Errorf("declaring topic permissions: %w", err)
	}

	return nil
}

// ClearTopicPermissions implements
// rabbitmq.PermissionsClient.ClearTopicPermissions.
func (c *PermissionsClient) ClearTopicPermissions(ctx context.Context, vhost, username string, idempotently bool) error {
	path := "topic-permissions/" + http.Path(vhost, username)

	err := deleteWithOptionalNotFound(ctx, c.httpClient, path, idempotently)
	if err != nil {
		return fmt.Errorf("clearing topic permissions: %w", err)
	}

	return nil
}
