// Package rabbitmq provides types, interfaces, and helpers for working with
// the RabbitMQ HTTP API.
//
// # Overview
//
// The rabbitmq package defines the domain types (e.g., QueueInfo, ExchangeInfo,
// Connection, Policy, VirtualHost) and the interfaces for resource-oriented
// clients (e.g., QueuesClient, ConnectionsClient). A concrete implementation of
// these clients is provided by the rmqclient package, which wires configuration,
// transport, and authentication. Most consumers should import rmqclient to
// construct a client and then interact with the resource client interfaces
// exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
//	  "github.com/michaelklishin/rabbitmq-http-api-go/pkg/rmqclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := rmqclient.New(&rabbitmq.Config{Endpoint: "http://localhost:15672/api"})
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  // List all queues across all virtual hosts
//	  queues, err := cli.Queues().List(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = queues
//	}
//
// # Requests and builders
//
// Mutating operations accept request types (QueueParams, ExchangeParams,
// PolicyParams, UserParams, and so on) whose zero values are close to the
// broker defaults. Optional x-arguments can be assembled with
// NewXArgumentsBuilder, which names the commonly used keys:
//
//	args := rabbitmq.NewXArgumentsBuilder().
//	  MaxLength(100_000).
//	  DeadLetterExchange("dlx").
//	  Build()
//	params := rabbitmq.NewQuorumQueueParams("events", args)
//	err := cli.Queues().Declare(ctx, "/", params)
//
// # Pagination
//
// Endpoints that support server-side paging take PaginationParams and return
// PaginatedResponse values that carry the page geometry alongside the items.
// IsLastPage and NextPage make walking a large listing straightforward.
//
// # Errors
//
// API failures are represented by NotFoundError, ClientError, ServerError, and
// TransportError. Helpers such as IsNotFound, IsClientError, and IsServerError
// make it easy to branch on common cases. Health check failures surface as
// HealthCheckFailedError with the reported details attached.
//
// # Password hashing
//
// User pre-seeding without plaintext passwords is supported through the
// salted hash helpers (GenerateSalt, Base64EncodedSaltedPasswordHashSHA256)
// that produce values accepted by the user management endpoints.
//
// # Definitions and transformers
//
// Exported cluster-wide definition sets can be rewritten before use with
// DefinitionSetTransformer implementations chained via TransformationChain,
// for example to strip classic mirrored queue keys from policies or to drop
// policies the stripping emptied out.
//
// # Resources
//
// Resource clients follow a consistent list-get-declare-delete pattern across
// broker resources (VirtualHosts, Users, Permissions, Queues, Exchanges,
// Bindings, Policies, Parameters, Federation, Shovels, Connections, Channels,
// Consumers, Nodes, Definitions, FeatureFlags, DeprecatedFeatures, Limits,
// Health, Messages). See the individual interfaces in clients.go for the full
// surface area.
package rabbitmq
