package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewConnectionsCommand creates the connections command group.
func NewConnectionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "connections",
		Aliases: []string{"connection"},
		Short:   "Inspect and close client connections",
		Long:    "List client connections, including RabbitMQ Stream Protocol ones, and close them",
	}

	cmd.AddCommand(newConnectionsListCommand())
	cmd.AddCommand(newConnectionsListInCommand())
	cmd.AddCommand(newConnectionsListOfUserCommand())
	cmd.AddCommand(newConnectionsListStreamCommand())
	cmd.AddCommand(newConnectionsGetCommand())
	cmd.AddCommand(newConnectionsGetStreamCommand())
	cmd.AddCommand(newConnectionsCloseCommand())
	cmd.AddCommand(newConnectionsCloseUserCommand())

	return cmd
}

func newConnectionsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List client connections",
		Long:  "Display all client connections in the cluster",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			connections, err := client.Connections().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list connections: %w", err)
			}

			return renderOutput(connections, func() error {
				return renderConnectionsTable(connections)
			})
		},
	}
}

func newConnectionsListInCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-in",
		Short: "List client connections in a virtual host",
		Long:  "Display client connections in the selected virtual host",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			connections, err := client.Connections().ListIn(ctx, vhost)
			if err != nil {
				return fmt.Errorf("failed to list connections in virtual host '%s': %w", vhost, err)
			}

			return renderOutput(connections, func() error {
				return renderConnectionsTable(connections)
			})
		},
	}
}

func newConnectionsListOfUserCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "of-user USERNAME",
		Short: "List connections of a user",
		Long:  "Display all client connections opened by a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			connections, err := client.Connections().ListOfUser(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to list connections of user '%s': %w", args[0], err)
			}

			return renderOutput(connections, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Name", "Username", "Virtual Host", "Node")

				for _, connection := range connections {
					_ = table.Append([]string{
						connection.Name,
						connection.Username,
						connection.VirtualHost,
						connection.Node,
					})
				}

				_ = table.Render()

				return nil
			})
		},
	}
}

func newConnectionsListStreamCommand() *cobra.Command {
	var in bool

	cmd := &cobra.Command{
		Use:   "list-stream",
		Short: "List stream protocol connections",
		Long:  "Display RabbitMQ Stream Protocol connections, cluster-wide or in the selected virtual host",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			var connections []rabbitmq.Connection
			if in {
				connections, err = client.Connections().ListStreamIn(ctx, viper.GetString("vhost"))
			} else {
				connections, err = client.Connections().ListStream(ctx)
			}

			if err != nil {
				return fmt.Errorf("failed to list stream connections: %w", err)
			}

			return renderOutput(connections, func() error {
				return renderConnectionsTable(connections)
			})
		},
	}

	cmd.Flags().BoolVar(&in, "in-vhost", false, "Only list connections in the selected virtual host")

	return cmd
}

func newConnectionsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Show a client connection",
		Long:  "Display a single client connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			connection, err := client.Connections().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch connection '%s': %w", args[0], err)
			}

			return renderOutput(connection, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append([]string{"Name", connection.Name})
				_ = table.Append([]string{"Username", connection.Username})
				_ = table.Append([]string{"State", orNotAvailable(connection.State)})
				_ = table.Append([]string{"Protocol", connection.Protocol})
				_ = table.Append([]string{"Node", connection.Node})
				_ = table.Append([]string{"Connected At", formatEpochMillis(connection.ConnectedAt)})
				_ = table.Append([]string{"Channels", strconv.FormatUint(uint64(connection.ChannelCount), 10)})
				_ = table.Append([]string{"Client", formatClientProperties(connection.ClientProperties)})

				_ = table.Render()

				return nil
			})
		},
	}
}

func newConnectionsGetStreamCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get-stream NAME",
		Short: "Show a stream protocol connection",
		Long:  "Display a single RabbitMQ Stream Protocol connection in the selected virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			connection, err := client.Connections().GetStream(ctx, vhost, args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch stream connection '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			return renderOutput(connection, func() error {
				return renderConnectionsTable([]rabbitmq.Connection{*connection})
			})
		},
	}
}

func newConnectionsCloseCommand() *cobra.Command {
	var (
		reason       string
		force        bool
		idempotently bool
	)

	cmd := &cobra.Command{
		Use:   "close NAME",
		Short: "Close a client connection",
		Long:  "Close a client connection. The reason is passed on to the client and logged by the broker.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmDeletion("connection", args[0], force) {
				return nil
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			if err := client.Connections().Close(ctx, args[0], reason, idempotently); err != nil {
				return fmt.Errorf("failed to close connection '%s': %w", args[0], err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Closed connection '%s'\n", args[0])

			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "closed by management CLI", "Reason passed on to the client")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	cmd.Flags().BoolVar(&idempotently, "idempotently", false, "Do not fail if the connection is already gone")

	return cmd
}

func newConnectionsCloseUserCommand() *cobra.Command {
	var (
		reason       string
		force        bool
		idempotently bool
	)

	cmd := &cobra.Command{
		Use:   "close-user USERNAME",
		Short: "Close all connections of a user",
		Long:  "Close every client connection opened by a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmDeletion("connections of user", args[0], force) {
				return nil
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			if err := client.Connections().CloseOfUser(ctx, args[0], reason, idempotently); err != nil {
				return fmt.Errorf("failed to close connections of user '%s': %w", args[0], err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Closed connections of user '%s'\n", args[0])

			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "closed by management CLI", "Reason passed on to the clients")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	cmd.Flags().BoolVar(&idempotently, "idempotently", false, "Do not fail if the user has no connections")

	return cmd
}

func renderConnectionsTable(connections []rabbitmq.Connection) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Username", "State", "Protocol", "Channels", "Client", "Node")

	for _, connection := range connections {
		_ = table.Append([]string{
			connection.Name,
			connection.Username,
			orNotAvailable(connection.State),
			connection.Protocol,
			strconv.FormatUint(uint64(connection.ChannelCount), 10),
			abbreviate(formatClientProperties(connection.ClientProperties)),
			connection.Node,
		})
	}

	_ = table.Render()

	return nil
}

func formatClientProperties(properties rabbitmq.ClientProperties) string {
	if properties.Product == "" {
		return NotAvailable
	}

	if properties.Version == "" {
		return properties.Product
	}

	return fmt.Sprintf("%s %s", properties.Product, properties.Version)
}

// formatEpochMillis renders a timestamp in milliseconds since the Unix
// epoch.
func formatEpochMillis(millis uint64) string {
	if millis == 0 {
		return NotAvailable
	}

	return time.UnixMilli(int64(millis)).UTC().Format(time.RFC3339)
}
