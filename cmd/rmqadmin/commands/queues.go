package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewQueuesCommand creates the queues command group.
func NewQueuesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "queues",
		Aliases: []string{"queue"},
		Short:   "Manage queues",
		Long:    "List, declare, delete and purge queues",
	}

	cmd.AddCommand(newQueuesListCommand())
	cmd.AddCommand(newQueuesListInCommand())
	cmd.AddCommand(newQueuesGetCommand())
	cmd.AddCommand(newQueuesDeclareCommand())
	cmd.AddCommand(newQueuesDeleteCommand())
	cmd.AddCommand(newQueuesPurgeCommand())
	cmd.AddCommand(newQueuesRebalanceCommand())

	return cmd
}

func newQueuesListCommand() *cobra.Command {
	var details bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List queues in all virtual hosts",
		Long:  "Display queues across all virtual hosts, optionally with detailed metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			if details {
				queues, err := client.Queues().ListWithDetails(ctx)
				if err != nil {
					return fmt.Errorf("failed to list queues: %w", err)
				}

				return renderOutput(queues, func() error {
					infos := make([]rabbitmq.QueueInfo, 0, len(queues))
					for _, queue := range queues {
						infos = append(infos, queue.QueueInfo)
					}

					return renderQueuesTable(infos)
				})
			}

			queues, err := client.Queues().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list queues: %w", err)
			}

			return renderOutput(queues, func() error {
				return renderQueuesTable(queues)
			})
		},
	}

	cmd.Flags().BoolVar(&details, "details", false, "Include detailed per-queue metrics")

	return cmd
}

func newQueuesListInCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-in",
		Short: "List queues in a virtual host",
		Long:  "Display queues in the selected virtual host",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			queues, err := client.Queues().ListIn(ctx, vhost)
			if err != nil {
				return fmt.Errorf("failed to list queues in virtual host '%s': %w", vhost, err)
			}

			return renderOutput(queues, func() error {
				return renderQueuesTable(queues)
			})
		},
	}
}

func newQueuesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Show a queue",
		Long:  "Display a single queue in the selected virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			queue, err := client.Queues().Get(ctx, vhost, args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch queue '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			return renderOutput(queue, func() error {
				return renderQueueDetailTable(queue)
			})
		},
	}
}

func newQueuesDeclareCommand() *cobra.Command {
	var (
		queueType  string
		durable    bool
		autoDelete bool
		arguments  map[string]string
	)

	cmd := &cobra.Command{
		Use:     "declare NAME",
		Aliases: []string{"create"},
		Short:   "Declare a queue",
		Long:    "Declare a queue of the given type in the selected virtual host",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireName(args[0]); err != nil {
				return err
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			params := rabbitmq.NewQueueParams(
				args[0],
				rabbitmq.QueueType(queueType),
				durable,
				autoDelete,
				optionalArgumentsFromFlags(arguments),
			)

			if err := client.Queues().Declare(ctx, vhost, params); err != nil {
				return fmt.Errorf("failed to declare queue '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Declared queue '%s' in virtual host '%s'\n", args[0], vhost)

			return nil
		},
	}

	cmd.Flags().StringVar(&queueType, "type", string(rabbitmq.QueueTypeClassic), "Queue type (classic, quorum or stream)")
	cmd.Flags().BoolVar(&durable, "durable", true, "Survive broker restarts")
	cmd.Flags().BoolVar(&autoDelete, "auto-delete", false, "Delete the queue when its last consumer disconnects")
	cmd.Flags().StringToStringVar(&arguments, "arg", nil, "Optional queue argument as key=value (can be repeated)")

	return cmd
}

func newQueuesDeleteCommand() *cobra.Command {
	var (
		force        bool
		idempotently bool
	)

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a queue",
		Long:  "Delete a queue in the selected virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmDeletion("queue", args[0], force) {
				return nil
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			if err := client.Queues().Delete(ctx, vhost, args[0], idempotently); err != nil {
				return fmt.Errorf("failed to delete queue '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted queue '%s' in virtual host '%s'\n", args[0], vhost)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	cmd.Flags().BoolVar(&idempotently, "idempotently", false, "Do not fail if the queue is absent")

	return cmd
}

func newQueuesPurgeCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "purge NAME",
		Short: "Purge a queue",
		Long:  "Remove all messages in ready state from a queue in the selected virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmDeletion("ready messages in queue", args[0], force) {
				return nil
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			if err := client.Queues().Purge(ctx, vhost, args[0]); err != nil {
				return fmt.Errorf("failed to purge queue '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Purged queue '%s' in virtual host '%s'\n", args[0], vhost)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func newQueuesRebalanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rebalance",
		Short: "Rebalance queue leaders",
		Long:  "Trigger a cluster-wide rebalancing of queue leader replicas",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			if err := client.Queues().RebalanceLeaders(ctx); err != nil {
				return fmt.Errorf("failed to rebalance queue leaders: %w", err)
			}

			_, _ = os.Stdout.WriteString("Started queue leader rebalancing\n")

			return nil
		},
	}
}

func renderQueuesTable(queues []rabbitmq.QueueInfo) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Virtual Host", "Type", "Durable", "State", "Messages", "Consumers", "Node")

	for _, queue := range queues {
		_ = table.Append([]string{
			queue.Name,
			queue.VirtualHost,
			queue.Type.String(),
			formatBool(queue.Durable),
			queue.State,
			strconv.FormatUint(queue.MessageCount, 10),
			strconv.FormatUint(uint64(queue.ConsumerCount), 10),
			queue.Node,
		})
	}

	_ = table.Render()

	return nil
}

func renderQueueDetailTable(queue *rabbitmq.QueueInfo) error {
	policy := queue.Policy
	if policy == "" {
		policy = NotAvailable
	}

	members := NotAvailable
	if len(queue.Members) > 0 {
		members = strings.Join(queue.Members, ", ")
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append([]string{"Name", queue.Name})
	_ = table.Append([]string{"Virtual Host", queue.VirtualHost})
	_ = table.Append([]string{"Type", queue.Type.String()})
	_ = table.Append([]string{"Durable", formatBool(queue.Durable)})
	_ = table.Append([]string{"Auto Delete", formatBool(queue.AutoDelete)})
	_ = table.Append([]string{"Exclusive", formatBool(queue.Exclusive)})
	_ = table.Append([]string{"State", queue.State})
	_ = table.Append([]string{"Node", queue.Node})
	_ = table.Append([]string{"Policy", policy})
	_ = table.Append([]string{"Leader", orNotAvailable(queue.Leader)})
	_ = table.Append([]string{"Members", members})
	_ = table.Append([]string{"Messages", strconv.FormatUint(queue.MessageCount, 10)})
	_ = table.Append([]string{"Messages Unacknowledged", strconv.FormatUint(queue.UnacknowledgedMessageCount, 10)})
	_ = table.Append([]string{"Message Bytes", formatBytes(queue.MessageBytes)})
	_ = table.Append([]string{"Memory", formatBytes(queue.Memory)})
	_ = table.Append([]string{"Consumers", strconv.FormatUint(uint64(queue.ConsumerCount), 10)})

	_ = table.Render()

	return nil
}
