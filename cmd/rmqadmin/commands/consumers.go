package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewConsumersCommand creates the consumers command group.
func NewConsumersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "consumers",
		Aliases: []string{"consumer"},
		Short:   "Inspect consumers",
		Long:    "List consumers as well as stream publishers and stream consumers",
	}

	cmd.AddCommand(newConsumersListCommand())
	cmd.AddCommand(newConsumersListInCommand())
	cmd.AddCommand(newStreamPublishersCommand())
	cmd.AddCommand(newStreamConsumersCommand())

	return cmd
}

func newConsumersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List consumers",
		Long:  "Display all consumers in the cluster",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			consumers, err := client.Consumers().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list consumers: %w", err)
			}

			return renderOutput(consumers, func() error {
				return renderConsumersTable(consumers)
			})
		},
	}
}

func newConsumersListInCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-in",
		Short: "List consumers in a virtual host",
		Long:  "Display consumers in the selected virtual host",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			consumers, err := client.Consumers().ListIn(ctx, vhost)
			if err != nil {
				return fmt.Errorf("failed to list consumers in virtual host '%s': %w", vhost, err)
			}

			return renderOutput(consumers, func() error {
				return renderConsumersTable(consumers)
			})
		},
	}
}

func newStreamPublishersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stream-publishers",
		Short: "Inspect stream publishers",
		Long:  "List publishers on streams",
	}

	cmd.AddCommand(newStreamPublishersListCommand())
	cmd.AddCommand(newStreamPublishersOfCommand())
	cmd.AddCommand(newStreamPublishersOnConnectionCommand())

	return cmd
}

func newStreamPublishersListCommand() *cobra.Command {
	var in bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stream publishers",
		Long:  "Display stream publishers, cluster-wide or in the selected virtual host",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			var publishers []rabbitmq.StreamPublisher
			if in {
				publishers, err = client.Consumers().ListStreamPublishersIn(ctx, viper.GetString("vhost"))
			} else {
				publishers, err = client.Consumers().ListStreamPublishers(ctx)
			}

			if err != nil {
				return fmt.Errorf("failed to list stream publishers: %w", err)
			}

			return renderOutput(publishers, func() error {
				return renderStreamPublishersTable(publishers)
			})
		},
	}

	cmd.Flags().BoolVar(&in, "in-vhost", false, "Only list publishers in the selected virtual host")

	return cmd
}

func newStreamPublishersOfCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "of-stream STREAM",
		Short: "List publishers of a stream",
		Long:  "Display the publishers of a single stream in the selected virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			publishers, err := client.Consumers().ListStreamPublishersOf(ctx, vhost, args[0])
			if err != nil {
				return fmt.Errorf("failed to list publishers of stream '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			return renderOutput(publishers, func() error {
				return renderStreamPublishersTable(publishers)
			})
		},
	}
}

func newStreamPublishersOnConnectionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "on-connection CONNECTION",
		Short: "List stream publishers on a connection",
		Long:  "Display the stream publishers on a single stream protocol connection in the selected virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			publishers, err := client.Consumers().ListStreamPublishersOnConnection(ctx, vhost, args[0])
			if err != nil {
				return fmt.Errorf("failed to list stream publishers on connection '%s': %w", args[0], err)
			}

			return renderOutput(publishers, func() error {
				return renderStreamPublishersTable(publishers)
			})
		},
	}
}

func newStreamConsumersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stream-consumers",
		Short: "Inspect stream consumers",
		Long:  "List consumers on streams",
	}

	cmd.AddCommand(newStreamConsumersListCommand())
	cmd.AddCommand(newStreamConsumersOnConnectionCommand())

	return cmd
}

func newStreamConsumersListCommand() *cobra.Command {
	var in bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stream consumers",
		Long:  "Display stream consumers, cluster-wide or in the selected virtual host",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			var consumers []rabbitmq.StreamConsumer
			if in {
				consumers, err = client.Consumers().ListStreamConsumersIn(ctx, viper.GetString("vhost"))
			} else {
				consumers, err = client.Consumers().ListStreamConsumers(ctx)
			}

			if err != nil {
				return fmt.Errorf("failed to list stream consumers: %w", err)
			}

			return renderOutput(consumers, func() error {
				return renderStreamConsumersTable(consumers)
			})
		},
	}

	cmd.Flags().BoolVar(&in, "in-vhost", false, "Only list consumers in the selected virtual host")

	return cmd
}

func newStreamConsumersOnConnectionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "on-connection CONNECTION",
		Short: "List stream consumers on a connection",
		Long:  "Display the stream consumers on a single stream protocol connection in the selected virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			consumers, err := client.Consumers().ListStreamConsumersOnConnection(ctx, vhost, args[0])
			if err != nil {
				return fmt.Errorf("failed to list stream consumers on connection '%s': %w", args[0], err)
			}

			return renderOutput(consumers, func() error {
				return renderStreamConsumersTable(consumers)
			})
		},
	}
}

func renderConsumersTable(consumers []rabbitmq.Consumer) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Consumer Tag", "Queue", "Virtual Host", "Active", "Manual Ack", "Prefetch", "Exclusive")

	for _, consumer := range consumers {
		_ = table.Append([]string{
			consumer.ConsumerTag,
			consumer.Queue.Name,
			consumer.Queue.VirtualHost,
			formatBool(consumer.Active),
			formatBool(consumer.ManualAck),
			strconv.FormatUint(uint64(consumer.PrefetchCount), 10),
			formatBool(consumer.Exclusive),
		})
	}

	_ = table.Render()

	return nil
}

func renderStreamPublishersTable(publishers []rabbitmq.StreamPublisher) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Stream", "Virtual Host", "Publisher ID", "Reference", "Published", "Confirmed", "Errored")

	for _, publisher := range publishers {
		_ = table.Append([]string{
			publisher.Queue.Name,
			publisher.Queue.VirtualHost,
			strconv.FormatUint(uint64(publisher.PublisherID), 10),
			publisher.Reference,
			strconv.FormatUint(publisher.Published, 10),
			strconv.FormatUint(publisher.Confirmed, 10),
			strconv.FormatUint(publisher.Errored, 10),
		})
	}

	_ = table.Render()

	return nil
}

func renderStreamConsumersTable(consumers []rabbitmq.StreamConsumer) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Stream", "Virtual Host", "Subscription ID", "Offset", "Offset Lag", "Consumed")

	for _, consumer := range consumers {
		_ = table.Append([]string{
			consumer.Queue.Name,
			consumer.Queue.VirtualHost,
			strconv.FormatUint(uint64(consumer.SubscriptionID), 10),
			strconv.FormatUint(consumer.Offset, 10),
			strconv.FormatUint(consumer.OffsetLag, 10),
			strconv.FormatUint(consumer.Consumed, 10),
		})
	}

	_ = table.Render()

	return nil
}
