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

// NewExchangesCommand creates the exchanges command group.
func NewExchangesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "exchanges",
		Aliases: []string{"exchange"},
		Short:   "Manage exchanges",
		Long:    "List, declare and delete exchanges",
	}

	cmd.AddCommand(newExchangesListCommand())
	cmd.AddCommand(newExchangesListInCommand())
	cmd.AddCommand(newExchangesGetCommand())
	cmd.AddCommand(newExchangesDeclareCommand())
	cmd.AddCommand(newExchangesDeleteCommand())

	return cmd
}

func newExchangesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List exchanges in all virtual hosts",
		Long:  "Display exchanges across all virtual hosts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			exchanges, err := client.Exchanges().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list exchanges: %w", err)
			}

			return renderOutput(exchanges, func() error {
				return renderExchangesTable(exchanges)
			})
		},
	}
}

func newExchangesListInCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-in",
		Short: "List exchanges in a virtual host",
		Long:  "Display exchanges in the selected virtual host",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			exchanges, err := client.Exchanges().ListIn(ctx, vhost)
			if err != nil {
				return fmt.Errorf("failed to list exchanges in virtual host '%s': %w", vhost, err)
			}

			return renderOutput(exchanges, func() error {
				return renderExchangesTable(exchanges)
			})
		},
	}
}

func newExchangesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Show an exchange",
		Long:  "Display a single exchange in the selected virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			exchange, err := client.Exchanges().Get(ctx, vhost, args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch exchange '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			return renderOutput(exchange, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append([]string{"Name", exchange.Name})
				_ = table.Append([]string{"Virtual Host", exchange.VirtualHost})
				_ = table.Append([]string{"Type", exchange.Type})
				_ = table.Append([]string{"Durable", formatBool(exchange.Durable)})
				_ = table.Append([]string{"Auto Delete", formatBool(exchange.AutoDelete)})
				_ = table.Append([]string{"Arguments", formatArguments(exchange.Arguments)})

				_ = table.Render()

				return nil
			})
		},
	}
}

func newExchangesDeclareCommand() *cobra.Command {
	var (
		exchangeType string
		durable      bool
		autoDelete   bool
		arguments    map[string]string
	)

	cmd := &cobra.Command{
		Use:     "declare NAME",
		Aliases: []string{"create"},
		Short:   "Declare an exchange",
		Long:    "Declare an exchange of the given type in the selected virtual host",
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

			params := rabbitmq.NewExchangeParams(
				args[0],
				rabbitmq.ExchangeType(exchangeType),
				durable,
				autoDelete,
				optionalArgumentsFromFlags(arguments),
			)

			if err := client.Exchanges().Declare(ctx, vhost, params); err != nil {
				return fmt.Errorf("failed to declare exchange '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Declared exchange '%s' in virtual host '%s'\n", args[0], vhost)

			return nil
		},
	}

	cmd.Flags().StringVar(&exchangeType, "type", string(rabbitmq.ExchangeTypeDirect), "Exchange type (direct, fanout, topic, headers or a plugin-provided type)")
	cmd.Flags().BoolVar(&durable, "durable", true, "Survive broker restarts")
	cmd.Flags().BoolVar(&autoDelete, "auto-delete", false, "Delete the exchange when the last binding is removed")
	cmd.Flags().StringToStringVar(&arguments, "arg", nil, "Optional exchange argument as key=value (can be repeated)")

	return cmd
}

func newExchangesDeleteCommand() *cobra.Command {
	var (
		force        bool
		idempotently bool
	)

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete an exchange",
		Long:  "Delete an exchange in the selected virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmDeletion("exchange", args[0], force) {
				return nil
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			if err := client.Exchanges().Delete(ctx, vhost, args[0], idempotently); err != nil {
				return fmt.Errorf("failed to delete exchange '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted exchange '%s' in virtual host '%s'\n", args[0], vhost)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	cmd.Flags().BoolVar(&idempotently, "idempotently", false, "Do not fail if the exchange is absent")

	return cmd
}

func renderExchangesTable(exchanges []rabbitmq.ExchangeInfo) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Virtual Host", "Type", "Durable", "Auto Delete")

	for _, exchange := range exchanges {
		name := exchange.Name
		if name == "" {
			name = "(default)"
		}

		_ = table.Append([]string{
			name,
			exchange.VirtualHost,
			exchange.Type,
			formatBool(exchange.Durable),
			formatBool(exchange.AutoDelete),
		})
	}

	_ = table.Render()

	return nil
}
