// Package rmqclient provides the primary entry point for constructing a
// RabbitMQ HTTP API client that implements the rabbitmq.Client interface.
//
// It layers endpoint normalization, HTTP transport and authentication on
// top of the resource interfaces and types defined in the rabbitmq
// package. Most applications should import rmqclient to build a client,
// then use the returned rabbitmq.Client to access resource-specific
// clients, for example Queues(), Connections(), Definitions(), etc.
//
// Quick start
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
//
//	  // Minimal: a local node with the default guest credentials.
//	  cli, err := rmqclient.New(&rabbitmq.Config{})
//	  if err != nil { log.Fatal(err) }
//
//	  // Or against a specific cluster node. The "/api" base path is
//	  // appended automatically when missing.
//	  cli, err = rmqclient.NewWithBasicAuth("https://rmq-1.eng.example.com:15671", "ops", "s3krE7")
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  // Use resource clients via the rabbitmq.Client interface
//	  queues, err := cli.Queues().List(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = queues
//	}
//
// # Credential handling
//
// The password is copied into a wipeable container at construction time
// and zeroed when Close is called. Requests issued after Close fail.
//
// # Helpers
//
// The package also provides convenience constructors NewWithEndpoint,
// NewWithBasicAuth, and NewWithTLSPeerVerification that wrap New with
// the appropriate configuration.
package rmqclient
