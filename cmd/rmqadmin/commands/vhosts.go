package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewVirtualHostsCommand creates the vhosts command group.
func NewVirtualHostsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "vhosts",
		Aliases: []string{"vhost"},
		Short:   "Manage virtual hosts",
		Long:    "List, declare, delete and protect virtual hosts",
	}

	cmd.AddCommand(newVirtualHostsListCommand())
	cmd.AddCommand(newVirtualHostsGetCommand())
	cmd.AddCommand(newVirtualHostsDeclareCommand())
	cmd.AddCommand(newVirtualHostsDeleteCommand())
	cmd.AddCommand(newVirtualHostsProtectCommand())
	cmd.AddCommand(newVirtualHostsUnprotectCommand())

	return cmd
}

func newVirtualHostsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List virtual hosts",
		Long:  "Display all virtual hosts in the cluster",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			vhosts, err := client.VirtualHosts().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list virtual hosts: %w", err)
			}

			return renderOutput(vhosts, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Name", "Description", "Default Queue Type", "Tags")

				for _, vhost := range vhosts {
					_ = table.Append([]string{
						vhost.Name,
						orNotAvailable(vhost.Description),
						formatQueueType(vhost.DefaultQueueType),
						formatOptionalTags(vhost.Tags),
					})
				}

				_ = table.Render()

				return nil
			})
		},
	}
}

func newVirtualHostsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Show a virtual host",
		Long:  "Display a single virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			vhost, err := client.VirtualHosts().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch virtual host '%s': %w", args[0], err)
			}

			return renderOutput(vhost, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append([]string{"Name", vhost.Name})
				_ = table.Append([]string{"Description", orNotAvailable(vhost.Description)})
				_ = table.Append([]string{"Default Queue Type", formatQueueType(vhost.DefaultQueueType)})
				_ = table.Append([]string{"Tags", formatOptionalTags(vhost.Tags)})

				_ = table.Render()

				return nil
			})
		},
	}
}

func newVirtualHostsDeclareCommand() *cobra.Command {
	var (
		description      string
		tags             []string
		defaultQueueType string
		tracing          bool
	)

	cmd := &cobra.Command{
		Use:     "declare NAME",
		Aliases: []string{"create"},
		Short:   "Declare a virtual host",
		Long:    "Declare a virtual host with optional metadata",
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

			params := &rabbitmq.VirtualHostParams{
				Name:             args[0],
				Description:      description,
				Tags:             tags,
				DefaultQueueType: rabbitmq.QueueType(defaultQueueType),
				Tracing:          tracing,
			}

			if err := client.VirtualHosts().Create(ctx, params); err != nil {
				return fmt.Errorf("failed to declare virtual host '%s': %w", args[0], err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Declared virtual host '%s'\n", args[0])

			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Virtual host description")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Virtual host tag (can be repeated)")
	cmd.Flags().StringVar(&defaultQueueType, "default-queue-type", "", "Default queue type (classic, quorum or stream)")
	cmd.Flags().BoolVar(&tracing, "tracing", false, "Enable message tracing")

	return cmd
}

func newVirtualHostsDeleteCommand() *cobra.Command {
	var (
		force        bool
		idempotently bool
	)

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a virtual host",
		Long:  "Delete a virtual host and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmDeletion("virtual host", args[0], force) {
				return nil
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			if err := client.VirtualHosts().Delete(ctx, args[0], idempotently); err != nil {
				return fmt.Errorf("failed to delete virtual host '%s': %w", args[0], err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted virtual host '%s'\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	cmd.Flags().BoolVar(&idempotently, "idempotently", false, "Do not fail if the virtual host is absent")

	return cmd
}

func newVirtualHostsProtectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "protect NAME",
		Short: "Protect a virtual host from deletion",
		Long:  "Enable deletion protection for a virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			if err := client.VirtualHosts().EnableDeletionProtection(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to protect virtual host '%s': %w", args[0], err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Virtual host '%s' is now protected from deletion\n", args[0])

			return nil
		},
	}
}

func newVirtualHostsUnprotectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unprotect NAME",
		Short: "Remove deletion protection from a virtual host",
		Long:  "Disable deletion protection for a virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			if err := client.VirtualHosts().DisableDeletionProtection(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to unprotect virtual host '%s': %w", args[0], err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Virtual host '%s' is no longer protected from deletion\n", args[0])

			return nil
		},
	}
}

func formatQueueType(queueType *rabbitmq.QueueType) string {
	if queueType == nil {
		return NotAvailable
	}

	return string(*queueType)
}

func formatOptionalTags(tags *rabbitmq.TagList) string {
	if tags == nil {
		return NotAvailable
	}

	return formatTags(*tags)
}
