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

// NewBindingsCommand creates the bindings command group.
func NewBindingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bindings",
		Aliases: []string{"binding"},
		Short:   "Manage bindings",
		Long:    "List, declare and delete bindings between exchanges, queues and streams",
	}

	cmd.AddCommand(newBindingsListCommand())
	cmd.AddCommand(newBindingsListInCommand())
	cmd.AddCommand(newBindingsOfQueueCommand())
	cmd.AddCommand(newBindingsOfSourceCommand())
	cmd.AddCommand(newBindingsOfDestinationCommand())
	cmd.AddCommand(newBindingsDeclareCommand())
	cmd.AddCommand(newBindingsDeleteCommand())

	return cmd
}

func newBindingsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bindings in all virtual hosts",
		Long:  "Display bindings across all virtual hosts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			bindings, err := client.Bindings().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list bindings: %w", err)
			}

			return renderOutput(bindings, func() error {
				return renderBindingsTable(bindings)
			})
		},
	}
}

func newBindingsListInCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-in",
		Short: "List bindings in a virtual host",
		Long:  "Display bindings in the selected virtual host",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			bindings, err := client.Bindings().ListIn(ctx, vhost)
			if err != nil {
				return fmt.Errorf("failed to list bindings in virtual host '%s': %w", vhost, err)
			}

			return renderOutput(bindings, func() error {
				return renderBindingsTable(bindings)
			})
		},
	}
}

func newBindingsOfQueueCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "of-queue QUEUE",
		Short: "List bindings of a queue",
		Long:  "Display all bindings of a queue or stream in the selected virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			bindings, err := client.Bindings().ListQueueBindings(ctx, vhost, args[0])
			if err != nil {
				return fmt.Errorf("failed to list bindings of queue '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			return renderOutput(bindings, func() error {
				return renderBindingsTable(bindings)
			})
		},
	}
}

func newBindingsOfSourceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "of-source EXCHANGE",
		Short: "List bindings with an exchange as their source",
		Long:  "Display all bindings that route from the given exchange in the selected virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			bindings, err := client.Bindings().ListExchangeBindingsWithSource(ctx, vhost, args[0])
			if err != nil {
				return fmt.Errorf("failed to list bindings of exchange '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			return renderOutput(bindings, func() error {
				return renderBindingsTable(bindings)
			})
		},
	}
}

func newBindingsOfDestinationCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "of-destination EXCHANGE",
		Short: "List bindings with an exchange as their destination",
		Long:  "Display all exchange-to-exchange bindings that route to the given exchange in the selected virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			bindings, err := client.Bindings().ListExchangeBindingsWithDestination(ctx, vhost, args[0])
			if err != nil {
				return fmt.Errorf("failed to list bindings of exchange '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			return renderOutput(bindings, func() error {
				return renderBindingsTable(bindings)
			})
		},
	}
}

func newBindingsDeclareCommand() *cobra.Command {
	var (
		source          string
		destination     string
		destinationType string
		routingKey      string
		arguments       map[string]string
	)

	cmd := &cobra.Command{
		Use:     "declare",
		Aliases: []string{"bind"},
		Short:   "Declare a binding",
		Long:    "Bind a queue, stream or exchange to an exchange in the selected virtual host",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")
			optionalArgs := optionalArgumentsFromFlags(arguments)

			if rabbitmq.BindingDestinationType(destinationType) == rabbitmq.BindingDestinationExchange {
				err = client.Bindings().BindExchange(ctx, vhost, destination, source, routingKey, optionalArgs)
			} else {
				err = client.Bindings().BindQueue(ctx, vhost, destination, source, routingKey, optionalArgs)
			}

			if err != nil {
				return fmt.Errorf("failed to bind '%s' to '%s' in virtual host '%s': %w", destination, source, vhost, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Bound '%s' to '%s' in virtual host '%s'\n", destination, source, vhost)

			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Source exchange")
	cmd.Flags().StringVar(&destination, "destination", "", "Destination queue, stream or exchange")
	cmd.Flags().StringVar(&destinationType, "destination-type", string(rabbitmq.BindingDestinationQueue), "Destination type (queue or exchange)")
	cmd.Flags().StringVar(&routingKey, "routing-key", "", "Routing key")
	cmd.Flags().StringToStringVar(&arguments, "arg", nil, "Optional binding argument as key=value (can be repeated)")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("destination")

	return cmd
}

func newBindingsDeleteCommand() *cobra.Command {
	var (
		source          string
		destination     string
		destinationType string
		routingKey      string
		arguments       map[string]string
		force           bool
		idempotently    bool
	)

	cmd := &cobra.Command{
		Use:     "delete",
		Aliases: []string{"unbind"},
		Short:   "Delete a binding",
		Long:    "Delete the binding that matches the given properties in the selected virtual host",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmDeletion("binding between", fmt.Sprintf("%s' and '%s", source, destination), force) {
				return nil
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			params := &rabbitmq.BindingDeletionParams{
				VirtualHost:     vhost,
				Source:          source,
				Destination:     destination,
				DestinationType: rabbitmq.BindingDestinationType(destinationType),
				RoutingKey:      routingKey,
				Arguments:       optionalArgumentsFromFlags(arguments),
			}

			if err := client.Bindings().Delete(ctx, params, idempotently); err != nil {
				return fmt.Errorf("failed to unbind '%s' from '%s' in virtual host '%s': %w", destination, source, vhost, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Unbound '%s' from '%s' in virtual host '%s'\n", destination, source, vhost)

			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Source exchange")
	cmd.Flags().StringVar(&destination, "destination", "", "Destination queue, stream or exchange")
	cmd.Flags().StringVar(&destinationType, "destination-type", string(rabbitmq.BindingDestinationQueue), "Destination type (queue or exchange)")
	cmd.Flags().StringVar(&routingKey, "routing-key", "", "Routing key")
	cmd.Flags().StringToStringVar(&arguments, "arg", nil, "Binding argument as key=value (can be repeated)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	cmd.Flags().BoolVar(&idempotently, "idempotently", false, "Do not fail if no such binding exists")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("destination")

	return cmd
}

func renderBindingsTable(bindings []rabbitmq.BindingInfo) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Virtual Host", "Source", "Destination", "Destination Type", "Routing Key", "Arguments")

	for _, binding := range bindings {
		source := binding.Source
		if source == "" {
			source = "(default)"
		}

		_ = table.Append([]string{
			binding.VirtualHost,
			source,
			binding.Destination,
			binding.DestinationType.String(),
			binding.RoutingKey,
			formatArguments(binding.Arguments),
		})
	}

	_ = table.Render()

	return nil
}
