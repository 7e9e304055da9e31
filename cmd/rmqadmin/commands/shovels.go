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

// NewShovelsCommand creates the shovels command group.
func NewShovelsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "shovels",
		Aliases: []string{"shovel"},
		Short:   "Manage shovels",
		Long:    "List, declare and delete dynamic shovels",
	}

	cmd.AddCommand(newShovelsListCommand())
	cmd.AddCommand(newShovelsListInCommand())
	cmd.AddCommand(newShovelsDeclareAmqp091Command())
	cmd.AddCommand(newShovelsDeclareAmqp10Command())
	cmd.AddCommand(newShovelsDeleteCommand())

	return cmd
}

func newShovelsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List shovels in all virtual hosts",
		Long:  "Display dynamic shovels across all virtual hosts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			shovels, err := client.Shovels().ListAll(ctx)
			if err != nil {
				return fmt.Errorf("failed to list shovels: %w", err)
			}

			return renderOutput(shovels, func() error {
				return renderShovelsTable(shovels)
			})
		},
	}
}

func newShovelsListInCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-in",
		Short: "List shovels in a virtual host",
		Long:  "Display dynamic shovels in the selected virtual host",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			shovels, err := client.Shovels().ListIn(ctx, vhost)
			if err != nil {
				return fmt.Errorf("failed to list shovels in virtual host '%s': %w", vhost, err)
			}

			return renderOutput(shovels, func() error {
				return renderShovelsTable(shovels)
			})
		},
	}
}

func newShovelsDeclareAmqp091Command() *cobra.Command {
	var (
		sourceURI           string
		sourceQueue         string
		sourceExchange      string
		sourceRoutingKey    string
		destinationURI      string
		destinationQueue    string
		destinationExchange string
		destinationKey      string
		ackMode             string
		predeclared         bool
	)

	cmd := &cobra.Command{
		Use:   "declare-amqp091 NAME",
		Short: "Declare an AMQP 0-9-1 shovel",
		Long:  "Declare a dynamic shovel that moves messages between AMQP 0-9-1 endpoints",
		Args:  cobra.ExactArgs(1),
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

			params := rabbitmq.Amqp091ShovelParams{
				Name:                args[0],
				VirtualHost:         vhost,
				AcknowledgementMode: rabbitmq.NormalizedAcknowledgementMode(ackMode),
				Source: rabbitmq.Amqp091ShovelSourceParams{
					SourceURI:                sourceURI,
					SourceQueue:              sourceQueue,
					SourceExchange:           sourceExchange,
					SourceExchangeRoutingKey: sourceRoutingKey,
					Predeclared:              predeclared,
				},
				Destination: rabbitmq.Amqp091ShovelDestinationParams{
					DestinationURI:                destinationURI,
					DestinationQueue:              destinationQueue,
					DestinationExchange:           destinationExchange,
					DestinationExchangeRoutingKey: destinationKey,
					Predeclared:                   predeclared,
				},
			}

			if err := client.Shovels().DeclareAmqp091(ctx, params); err != nil {
				return fmt.Errorf("failed to declare shovel '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Declared shovel '%s' in virtual host '%s'\n", args[0], vhost)

			return nil
		},
	}

	cmd.Flags().StringVar(&sourceURI, "source-uri", "", "AMQP URI of the source endpoint")
	cmd.Flags().StringVar(&sourceQueue, "source-queue", "", "Queue to consume from")
	cmd.Flags().StringVar(&sourceExchange, "source-exchange", "", "Exchange to consume from, an alternative to --source-queue")
	cmd.Flags().StringVar(&sourceRoutingKey, "source-exchange-routing-key", "", "Routing key used when consuming from an exchange")
	cmd.Flags().StringVar(&destinationURI, "destination-uri", "", "AMQP URI of the destination endpoint")
	cmd.Flags().StringVar(&destinationQueue, "destination-queue", "", "Queue to publish to")
	cmd.Flags().StringVar(&destinationExchange, "destination-exchange", "", "Exchange to publish to, an alternative to --destination-queue")
	cmd.Flags().StringVar(&destinationKey, "destination-exchange-routing-key", "", "Routing key used when publishing to an exchange")
	cmd.Flags().StringVar(&ackMode, "ack-mode", string(rabbitmq.TransferAcknowledgementWhenConfirmed), "Acknowledgement mode (on-confirm, on-publish or no-ack)")
	cmd.Flags().BoolVar(&predeclared, "predeclared", false, "Do not declare the source and destination topology")
	_ = cmd.MarkFlagRequired("source-uri")
	_ = cmd.MarkFlagRequired("destination-uri")

	return cmd
}

func newShovelsDeclareAmqp10Command() *cobra.Command {
	var (
		sourceURI          string
		sourceAddress      string
		destinationURI     string
		destinationAddress string
		ackMode            string
	)

	cmd := &cobra.Command{
		Use:   "declare-amqp10 NAME",
		Short: "Declare an AMQP 1.0 shovel",
		Long:  "Declare a dynamic shovel that moves messages between AMQP 1.0 addresses",
		Args:  cobra.ExactArgs(1),
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

			params := rabbitmq.Amqp10ShovelParams{
				Name:                args[0],
				VirtualHost:         vhost,
				AcknowledgementMode: rabbitmq.NormalizedAcknowledgementMode(ackMode),
				Source:              rabbitmq.Amqp10Source(sourceURI, sourceAddress),
				Destination:         rabbitmq.Amqp10Destination(destinationURI, destinationAddress),
			}

			if err := client.Shovels().DeclareAmqp10(ctx, params); err != nil {
				return fmt.Errorf("failed to declare shovel '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Declared shovel '%s' in virtual host '%s'\n", args[0], vhost)

			return nil
		},
	}

	cmd.Flags().StringVar(&sourceURI, "source-uri", "", "AMQP 1.0 URI of the source endpoint")
	cmd.Flags().StringVar(&sourceAddress, "source-address", "", "Address to consume from")
	cmd.Flags().StringVar(&destinationURI, "destination-uri", "", "AMQP 1.0 URI of the destination endpoint")
	cmd.Flags().StringVar(&destinationAddress, "destination-address", "", "Address to publish to")
	cmd.Flags().StringVar(&ackMode, "ack-mode", string(rabbitmq.TransferAcknowledgementWhenConfirmed), "Acknowledgement mode (on-confirm, on-publish or no-ack)")
	_ = cmd.MarkFlagRequired("source-uri")
	_ = cmd.MarkFlagRequired("source-address")
	_ = cmd.MarkFlagRequired("destination-uri")
	_ = cmd.MarkFlagRequired("destination-address")

	return cmd
}

func newShovelsDeleteCommand() *cobra.Command {
	var (
		force        bool
		idempotently bool
	)

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a shovel",
		Long:  "Delete a dynamic shovel in the selected virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmDeletion("shovel", args[0], force) {
				return nil
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			if err := client.Shovels().Delete(ctx, vhost, args[0], idempotently); err != nil {
				return fmt.Errorf("failed to delete shovel '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted shovel '%s' in virtual host '%s'\n", args[0], vhost)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	cmd.Flags().BoolVar(&idempotently, "idempotently", false, "Do not fail if the shovel is absent")

	return cmd
}

func renderShovelsTable(shovels []rabbitmq.Shovel) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Virtual Host", "Type", "State", "Source", "Destination", "Node")

	for _, shovel := range shovels {
		source := orNotAvailable(shovel.Source)
		if source == NotAvailable {
			source = orNotAvailable(shovel.SourceAddress)
		}

		destination := orNotAvailable(shovel.Destination)
		if destination == NotAvailable {
			destination = orNotAvailable(shovel.DestinationAddress)
		}

		_ = table.Append([]string{
			shovel.Name,
			orNotAvailable(shovel.VirtualHost),
			string(shovel.Type),
			string(shovel.State),
			source,
			destination,
			shovel.Node,
		})
	}

	_ = table.Render()

	return nil
}
