package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewMessagesCommand creates the messages command group. These commands use
// polling over the HTTP API and are only meant for development and
// troubleshooting, not for production messaging.
func NewMessagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "messages",
		Aliases: []string{"message"},
		Short:   "Publish and consume messages",
		Long:    "Publish and consume messages over the HTTP API, for troubleshooting only",
	}

	cmd.AddCommand(newMessagesPublishCommand())
	cmd.AddCommand(newMessagesGetCommand())

	return cmd
}

func newMessagesPublishCommand() *cobra.Command {
	var exchange string
	var routingKey string
	var payload string
	var properties map[string]string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a message",
		Long:  "Publish a message to an exchange in the selected virtual host",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			messageProperties := rabbitmq.MessageProperties{}
			for key, value := range properties {
				messageProperties[key] = inferArgumentValue(value)
			}

			routed, err := client.Messages().Publish(ctx, vhost, exchange, routingKey, payload, messageProperties)
			if err != nil {
				return fmt.Errorf("failed to publish message in virtual host '%s': %w", vhost, err)
			}

			return renderOutput(routed, func() error {
				if routed.Routed {
					_, _ = fmt.Fprint(os.Stdout, "Message was published and routed to at least one queue\n")
				} else {
					_, _ = fmt.Fprint(os.Stdout, "Message was published but could not be routed to any queue\n")
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&exchange, "exchange", "", "Exchange to publish to, an empty name means the default exchange")
	cmd.Flags().StringVar(&routingKey, "routing-key", "", "Routing key")
	cmd.Flags().StringVar(&payload, "payload", "", "Message payload")
	cmd.Flags().StringToStringVar(&properties, "property", nil,
		"Message property as key=value, repeatable, e.g. --property delivery_mode=2")
	_ = cmd.MarkFlagRequired("payload")

	return cmd
}

func newMessagesGetCommand() *cobra.Command {
	var count uint32
	var ackMode string

	cmd := &cobra.Command{
		Use:   "get QUEUE",
		Short: "Consume messages from a queue",
		Long:  "Fetch up to a given number of messages from a queue in the selected virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			messages, err := client.Messages().Get(ctx, vhost, args[0], count, ackMode)
			if err != nil {
				return fmt.Errorf("failed to get messages from queue '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			return renderOutput(messages, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Exchange", "Routing Key", "Redelivered", "Properties", "Payload")

				for _, message := range messages {
					exchange := message.Exchange
					if exchange == "" {
						exchange = "(default)"
					}

					_ = table.Append([]string{
						exchange,
						message.RoutingKey,
						formatBool(message.Redelivered),
						abbreviate(formatArguments(message.Properties)),
						abbreviate(message.Payload),
					})
				}

				_ = table.Render()

				return nil
			})
		},
	}

	cmd.Flags().Uint32Var(&count, "count", 1, "Maximum number of messages to fetch")
	cmd.Flags().StringVar(&ackMode, "ack-mode", "ack_requeue_true",
		"One of: ack_requeue_true, ack_requeue_false, reject_requeue_true, reject_requeue_false")

	return cmd
}
