package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/http"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

// UsersClient implements rabbitmq.UsersClient.
type UsersClient struct {
	httpClient *http.Client
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client) *UsersClient {
	return &UsersClient{
		httpClient: httpClient,
	}
}

// List implements rabbitmq.UsersClient.List.
func (c *UsersClient) List(ctx context.Context) ([]rabbitmq.User, error) {
	resp, err := c.httpClient.Get(ctx, "users", nil)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	var users []rabbitmq.User

	err = json.Unmarshal(resp.Body, &users)
	if err != nil {
		return nil, fmt.Errorf("parsing users list: %w", err)
	}

	return users, nil
}

// ListPaged implements rabbitmq.UsersClient.ListPaged.
func (c *UsersClient) ListPaged(ctx context.Context, params rabbitmq.PaginationParams) (*rabbitmq.PaginatedResponse[rabbitmq.User], error) {
	resp, err := c.httpClient.Get(ctx, "users", params.ToQuery())
	if err != nil {
		return nil, fmt.Errorf("listing users page: %w", err)
	}

	var page rabbitmq.PaginatedResponse[rabbitmq.User]

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing users page: %w", err)
	}

	return &page, nil
}

// ListWithoutPermissions implements
// rabbitmq.UsersClient.ListWithoutPermissions.
func (c *UsersClient) ListWithoutPermissions(ctx context.Context) ([]rabbitmq.User, error) {
	resp, err := c.httpClient.Get(ctx, "users/without-permissions", nil)
	if err != nil {
		return nil, fmt.Errorf("listing users without permissions: %w", err)
	}

	var users []rabbitmq.User

	err = json.Unmarshal(resp.Body, &users)
	if err != nil {
		return nil, fmt.Errorf("parsing users list: %w", err)
	}

	return users, nil
}

// Get implements rabbitmq.UsersClient.Get.
func (c *UsersClient) Get(ctx context.Context, name string) (*rabbitmq.User, error) {
	path := "users/" + http.Path(name)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	var user rabbitmq.User

	err = json.Unmarshal(resp.Body, &user)
	if err != nil {
		return nil, fmt.Errorf("parsing user: %w", err)
	}

	return &user, nil
}

// Current implements rabbitmq.UsersClient.Current.
func (c *UsersClient) Current(ctx context.Context) (*rabbitmq.CurrentUser, error) {
	resp, err := c.httpClient.Get(ctx, "whoami", nil)
	if err != nil {
		return nil, fmt.Errorf("getting current user: %w", err)
	}

	var user rabbitmq.CurrentUser

	err = json.Unmarshal(resp.Body, &user)
	if err != nil {
		return nil, fmt.Errorf("parsing current user: %w", err)
	}

	return &user, nil
}

// Create implements rabbitmq.UsersClient.Create.
func (c *UsersClient) Create(ctx context.Context, params *rabbitmq.UserParams) error {
	path := "users/" + http.Path(params.Name)

	_, err := c.httpClient.Put(ctx, path, params)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	return nil
}

// Delete implements rabbitmq.UsersClient.Delete.
func (c *UsersClient) Delete(ctx context.Context, username string, idempotently bool) error {
	path := "users/" + http.Path(username)

	err := deleteWithOptionalNotFound(ctx, c.httpClient, path, idempotently)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	return nil
}

// BulkDelete implements rabbitmq.UsersClient.BulkDelete.
func (c *UsersClient) BulkDelete(ctx context.Context, usernames []string) error {
	body := rabbitmq.BulkUserDelete{Usernames: usernames}

	_, err := c.httpClient.Post(ctx, "users/bulk-delete", body)
	if err != nil {
		return fmt.Errorf("deleting users: %w", err)
	}

	return nil
}
