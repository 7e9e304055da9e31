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

// NewChannelsCommand creates the channels command group.
func NewChannelsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "channels",
		Aliases: []string{"channel"},
		Short:   "Inspect channels",
		Long:    "List AMQP 0-9-1 channels and their state",
	}

	cmd.AddCommand(newChannelsListCommand())
	cmd.AddCommand(newChannelsListInCommand())
	cmd.AddCommand(newChannelsListOnConnectionCommand())
	cmd.AddCommand(newChannelsGetCommand())

	return cmd
}

func newChannelsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List channels",
		Long:  "Display all channels in the cluster",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			channels, err := client.Channels().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list channels: %w", err)
			}

			return renderOutput(channels, func() error {
				return renderChannelsTable(channels)
			})
		},
	}
}

func newChannelsListInCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-in",
		Short: "List channels in a virtual host",
		Long:  "Display channels in the selected virtual host",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			channels, err := client.Channels().ListIn(ctx, vhost)
			if err != nil {
				return fmt.Errorf("failed to list channels in virtual host '%s': %w", vhost, err)
			}

			return renderOutput(channels, func() error {
				return renderChannelsTable(channels)
			})
		},
	}
}

func newChannelsListOnConnectionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "on-connection CONNECTION",
		Short: "List channels on a connection",
		Long:  "Display the channels opened on a single client connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			channels, err := client.Channels().ListOnConnection(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to list channels on connection '%s': %w", args[0], err)
			}

			return renderOutput(channels, func() error {
				return renderChannelsTable(channels)
			})
		},
	}
}

func newChannelsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Show a channel",
		Long:  "Display a single channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			channel, err := client.Channels().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch channel '%s': %w", args[0], err)
			}

			return renderOutput(channel, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append([]string{"Name", channel.Name})
				_ = table.Append([]string{"Number", strconv.FormatUint(uint64(channel.ID), 10)})
				_ = table.Append([]string{"Connection", channel.ConnectionDetails.Name})
				_ = table.Append([]string{"Virtual Host", channel.VirtualHost})
				_ = table.Append([]string{"State", string(channel.State)})
				_ = table.Append([]string{"Consumers", strconv.FormatUint(uint64(channel.ConsumerCount), 10)})
				_ = table.Append([]string{"Publisher Confirms", formatBool(channel.HasPublisherConfirmsEnabled)})
				_ = table.Append([]string{"Prefetch", strconv.FormatUint(uint64(channel.PrefetchCount), 10)})
				_ = table.Append([]string{"Unacknowledged", strconv.FormatUint(uint64(channel.MessagesUnacknowledged), 10)})
				_ = table.Append([]string{"Unconfirmed", strconv.FormatUint(uint64(channel.MessagesUnconfirmed), 10)})

				_ = table.Render()

				return nil
			})
		},
	}
}

func renderChannelsTable(channels []rabbitmq.Channel) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Connection", "Virtual Host", "State", "Consumers", "Unacknowledged", "Unconfirmed")

	for _, channel := range channels {
		_ = table.Append([]string{
			channel.Name,
			channel.ConnectionDetails.Name,
			channel.VirtualHost,
			string(channel.State),
			strconv.FormatUint(uint64(channel.ConsumerCount), 10),
			strconv.FormatUint(uint64(channel.MessagesUnacknowledged), 10),
			strconv.FormatUint(uint64(channel.MessagesUnconfirmed), 10),
		})
	}

	_ = table.Render()

	return nil
}
