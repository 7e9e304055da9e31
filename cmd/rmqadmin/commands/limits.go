package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/constants"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewLimitsCommand creates the limits command group.
func NewLimitsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "limits",
		Short: "Manage limits",
		Long:  "Manage per-user and per-virtual host limits",
	}

	cmd.AddCommand(newUserLimitsCommand())
	cmd.AddCommand(newVirtualHostLimitsCommand())

	return cmd
}

func newUserLimitsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage per-user limits",
		Long:  "Manage per-user limits such as max-connections and max-channels",
	}

	cmd.AddCommand(newUserLimitsListCommand())
	cmd.AddCommand(newUserLimitsOfCommand())
	cmd.AddCommand(newUserLimitsSetCommand())
	cmd.AddCommand(newUserLimitsClearCommand())

	return cmd
}

func newUserLimitsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all user limits",
		Long:  "Display the enforced limits of all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			limits, err := client.Limits().ListAllUserLimits(ctx)
			if err != nil {
				return fmt.Errorf("failed to list user limits: %w", err)
			}

			return renderOutput(limits, func() error {
				return renderUserLimitsTable(limits)
			})
		},
	}
}

func newUserLimitsOfCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "of USERNAME",
		Short: "List limits of a user",
		Long:  "Display the enforced limits of a single user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			limits, err := client.Limits().ListUserLimits(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to list limits of user '%s': %w", args[0], err)
			}

			return renderOutput(limits, func() error {
				return renderUserLimitsTable(limits)
			})
		},
	}
}

func newUserLimitsSetCommand() *cobra.Command {
	var kind string
	var value int64

	cmd := &cobra.Command{
		Use:   "set USERNAME",
		Short: "Set a user limit",
		Long:  "Set or update an enforced limit for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := userLimitTarget(kind)
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			params := rabbitmq.NewEnforcedLimitParams(target, value)

			if err := client.Limits().SetUserLimit(ctx, args[0], params); err != nil {
				return fmt.Errorf("failed to set limit '%s' for user '%s': %w", kind, args[0], err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Set limit '%s' to %d for user '%s'\n", kind, value, args[0])

			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Limit kind, one of: max-connections, max-channels")
	cmd.Flags().Int64Var(&value, "value", 0, "Limit value")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newUserLimitsClearCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "clear USERNAME",
		Short: "Clear a user limit",
		Long:  "Remove an enforced limit of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := userLimitTarget(kind)
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			if err := client.Limits().ClearUserLimit(ctx, args[0], target); err != nil {
				return fmt.Errorf("failed to clear limit '%s' of user '%s': %w", kind, args[0], err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Cleared limit '%s' of user '%s'\n", kind, args[0])

			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Limit kind, one of: max-connections, max-channels")
	_ = cmd.MarkFlagRequired("kind")

	return cmd
}

func newVirtualHostLimitsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vhost",
		Short: "Manage per-virtual host limits",
		Long:  "Manage per-virtual host limits such as max-connections and max-queues",
	}

	cmd.AddCommand(newVirtualHostLimitsListCommand())
	cmd.AddCommand(newVirtualHostLimitsListInCommand())
	cmd.AddCommand(newVirtualHostLimitsSetCommand())
	cmd.AddCommand(newVirtualHostLimitsClearCommand())

	return cmd
}

func newVirtualHostLimitsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all virtual host limits",
		Long:  "Display the enforced limits of all virtual hosts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			limits, err := client.Limits().ListAllVirtualHostLimits(ctx)
			if err != nil {
				return fmt.Errorf("failed to list virtual host limits: %w", err)
			}

			return renderOutput(limits, func() error {
				return renderVirtualHostLimitsTable(limits)
			})
		},
	}
}

func newVirtualHostLimitsListInCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-in",
		Short: "List limits of a virtual host",
		Long:  "Display the enforced limits of the selected virtual host",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			limits, err := client.Limits().ListVirtualHostLimits(ctx, vhost)
			if err != nil {
				return fmt.Errorf("failed to list limits of virtual host '%s': %w", vhost, err)
			}

			return renderOutput(limits, func() error {
				return renderVirtualHostLimitsTable(limits)
			})
		},
	}
}

func newVirtualHostLimitsSetCommand() *cobra.Command {
	var kind string
	var value int64

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set a virtual host limit",
		Long:  "Set or update an enforced limit for the selected virtual host",
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := virtualHostLimitTarget(kind)
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")
			params := rabbitmq.NewEnforcedLimitParams(target, value)

			if err := client.Limits().SetVirtualHostLimit(ctx, vhost, params); err != nil {
				return fmt.Errorf("failed to set limit '%s' for virtual host '%s': %w", kind, vhost, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Set limit '%s' to %d for virtual host '%s'\n", kind, value, vhost)

			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Limit kind, one of: max-connections, max-queues")
	cmd.Flags().Int64Var(&value, "value", 0, "Limit value")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newVirtualHostLimitsClearCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear a virtual host limit",
		Long:  "Remove an enforced limit of the selected virtual host",
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := virtualHostLimitTarget(kind)
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			if err := client.Limits().ClearVirtualHostLimit(ctx, vhost, target); err != nil {
				return fmt.Errorf("failed to clear limit '%s' of virtual host '%s': %w", kind, vhost, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Cleared limit '%s' of virtual host '%s'\n", kind, vhost)

			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Limit kind, one of: max-connections, max-queues")
	_ = cmd.MarkFlagRequired("kind")

	return cmd
}

func userLimitTarget(kind string) (rabbitmq.UserLimitTarget, error) {
	target := rabbitmq.UserLimitTarget(kind)

	switch target {
	case rabbitmq.UserLimitMaxConnections, rabbitmq.UserLimitMaxChannels:
		return target, nil
	default:
		return "", fmt.Errorf("%w: '%s'", constants.ErrInvalidLimitKind, kind)
	}
}

func virtualHostLimitTarget(kind string) (rabbitmq.VirtualHostLimitTarget, error) {
	target := rabbitmq.VirtualHostLimitTarget(kind)

	switch target {
	case rabbitmq.VirtualHostLimitMaxConnections, rabbitmq.VirtualHostLimitMaxQueues:
		return target, nil
	default:
		return "", fmt.Errorf("%w: '%s'", constants.ErrInvalidLimitKind, kind)
	}
}

func renderUserLimitsTable(limits []rabbitmq.UserLimits) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Username", "Limit", "Value")

	for _, entry := range limits {
		for _, kind := range sortedKeys(entry.Limits) {
			_ = table.Append([]string{
				entry.Username,
				displayTitle(kind),
				fmt.Sprintf("%v", entry.Limits[kind]),
			})
		}
	}

	_ = table.Render()

	return nil
}

func renderVirtualHostLimitsTable(limits []rabbitmq.VirtualHostLimits) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Virtual Host", "Limit", "Value")

	for _, entry := range limits {
		for _, kind := range sortedKeys(entry.Limits) {
			_ = table.Append([]string{
				entry.VirtualHost,
				displayTitle(kind),
				fmt.Sprintf("%v", entry.Limits[kind]),
			})
		}
	}

	_ = table.Render()

	return nil
}
