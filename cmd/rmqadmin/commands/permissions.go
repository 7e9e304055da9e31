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

// NewPermissionsCommand creates the permissions command group.
func NewPermissionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "permissions",
		Short: "Manage user permissions",
		Long:  "List, grant and clear user permissions, including topic exchange permissions",
	}

	cmd.AddCommand(newPermissionsListCommand())
	cmd.AddCommand(newPermissionsListInCommand())
	cmd.AddCommand(newPermissionsOfCommand())
	cmd.AddCommand(newPermissionsGetCommand())
	cmd.AddCommand(newPermissionsDeclareCommand())
	cmd.AddCommand(newPermissionsGrantFullCommand())
	cmd.AddCommand(newPermissionsClearCommand())
	cmd.AddCommand(newTopicPermissionsCommand())

	return cmd
}

func newPermissionsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List permissions in all virtual hosts",
		Long:  "Display user permissions across all virtual hosts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			permissions, err := client.Permissions().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list permissions: %w", err)
			}

			return renderOutput(permissions, func() error {
				return renderPermissionsTable(permissions)
			})
		},
	}
}

func newPermissionsListInCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-in",
		Short: "List permissions in a virtual host",
		Long:  "Display user permissions in the selected virtual host",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			permissions, err := client.Permissions().ListIn(ctx, vhost)
			if err != nil {
				return fmt.Errorf("failed to list permissions in virtual host '%s': %w", vhost, err)
			}

			return renderOutput(permissions, func() error {
				return renderPermissionsTable(permissions)
			})
		},
	}
}

func newPermissionsOfCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "of USERNAME",
		Short: "List permissions of a user",
		Long:  "Display the permissions of a user across all virtual hosts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			permissions, err := client.Permissions().ListOf(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to list permissions of user '%s': %w", args[0], err)
			}

			return renderOutput(permissions, func() error {
				return renderPermissionsTable(permissions)
			})
		},
	}
}

func newPermissionsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get USERNAME",
		Short: "Show permissions of a user in a virtual host",
		Long:  "Display the permissions of a user in the selected virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			permissions, err := client.Permissions().Get(ctx, vhost, args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch permissions of user '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			return renderOutput(permissions, func() error {
				return renderPermissionsTable([]rabbitmq.Permissions{*permissions})
			})
		},
	}
}

func newPermissionsDeclareCommand() *cobra.Command {
	var configure, read, write string

	cmd := &cobra.Command{
		Use:     "declare USERNAME",
		Aliases: []string{"grant"},
		Short:   "Grant permissions to a user",
		Long:    "Grant a user permissions in the selected virtual host. An empty pattern matches nothing.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			params := &rabbitmq.PermissionsParams{
				User:        args[0],
				VirtualHost: vhost,
				Configure:   configure,
				Read:        read,
				Write:       write,
			}

			if err := client.Permissions().Declare(ctx, params); err != nil {
				return fmt.Errorf("failed to grant permissions to user '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Granted permissions to user '%s' in virtual host '%s'\n", args[0], vhost)

			return nil
		},
	}

	cmd.Flags().StringVar(&configure, "configure", "", "Configure permission pattern")
	cmd.Flags().StringVar(&read, "read", "", "Read permission pattern")
	cmd.Flags().StringVar(&write, "write", "", "Write permission pattern")

	return cmd
}

func newPermissionsGrantFullCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "grant-full USERNAME",
		Short: "Grant full permissions to a user",
		Long:  "Grant a user full permissions in the selected virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			if err := client.Permissions().GrantFull(ctx, args[0], vhost); err != nil {
				return fmt.Errorf("failed to grant full permissions to user '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Granted full permissions to user '%s' in virtual host '%s'\n", args[0], vhost)

			return nil
		},
	}
}

func newPermissionsClearCommand() *cobra.Command {
	var (
		force        bool
		idempotently bool
	)

	cmd := &cobra.Command{
		Use:   "clear USERNAME",
		Short: "Clear permissions of a user",
		Long:  "Clear the permissions of a user in the selected virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmDeletion("permissions of user", args[0], force) {
				return nil
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			if err := client.Permissions().Clear(ctx, vhost, args[0], idempotently); err != nil {
				return fmt.Errorf("failed to clear permissions of user '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Cleared permissions of user '%s' in virtual host '%s'\n", args[0], vhost)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	cmd.Flags().BoolVar(&idempotently, "idempotently", false, "Do not fail if no permissions are set")

	return cmd
}

func newTopicPermissionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topic",
		Short: "Manage topic exchange permissions",
		Long:  "List, grant and clear user permissions on topic exchanges",
	}

	cmd.AddCommand(newTopicPermissionsListCommand())
	cmd.AddCommand(newTopicPermissionsOfCommand())
	cmd.AddCommand(newTopicPermissionsDeclareCommand())
	cmd.AddCommand(newTopicPermissionsClearCommand())

	return cmd
}

func newTopicPermissionsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List topic permissions",
		Long:  "Display user topic permissions across all virtual hosts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			permissions, err := client.Permissions().ListTopicPermissions(ctx)
			if err != nil {
				return fmt.Errorf("failed to list topic permissions: %w", err)
			}

			return renderOutput(permissions, func() error {
				return renderTopicPermissionsTable(permissions)
			})
		},
	}
}

func newTopicPermissionsOfCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "of USERNAME",
		Short: "List topic permissions of a user",
		Long:  "Display the topic permissions of a user across all virtual hosts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			permissions, err := client.Permissions().ListTopicPermissionsOf(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to list topic permissions of user '%s': %w", args[0], err)
			}

			return renderOutput(permissions, func() error {
				return renderTopicPermissionsTable(permissions)
			})
		},
	}
}

func newTopicPermissionsDeclareCommand() *cobra.Command {
	var exchange, read, write string

	cmd := &cobra.Command{
		Use:     "declare USERNAME",
		Aliases: []string{"grant"},
		Short:   "Grant topic permissions to a user",
		Long:    "Grant a user permissions on a topic exchange in the selected virtual host",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			params := &rabbitmq.TopicPermissionsParams{
				User:        args[0],
				VirtualHost: vhost,
				Exchange:    exchange,
				Read:        read,
				Write:       write,
			}

			if err := client.Permissions().DeclareTopicPermissions(ctx, params); err != nil {
				return fmt.Errorf("failed to grant topic permissions to user '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Granted topic permissions to user '%s' on exchange '%s'\n", args[0], exchange)

			return nil
		},
	}

	cmd.Flags().StringVar(&exchange, "exchange", "", "Topic exchange name")
	cmd.Flags().StringVar(&read, "read", "", "Read permission pattern for routing keys")
	cmd.Flags().StringVar(&write, "write", "", "Write permission pattern for routing keys")
	_ = cmd.MarkFlagRequired("exchange")

	return cmd
}

func newTopicPermissionsClearCommand() *cobra.Command {
	var (
		force        bool
		idempotently bool
	)

	cmd := &cobra.Command{
		Use:   "clear USERNAME",
		Short: "Clear topic permissions of a user",
		Long:  "Clear the topic permissions of a user in the selected virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmDeletion("topic permissions of user", args[0], force) {
				return nil
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			if err := client.Permissions().ClearTopicPermissions(ctx, vhost, args[0], idempotently); err != nil {
				return fmt.Errorf("failed to clear topic permissions of user '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Cleared topic permissions of user '%s' in virtual host '%s'\n", args[0], vhost)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	cmd.Flags().BoolVar(&idempotently, "idempotently", false, "Do not fail if no topic permissions are set")

	return cmd
}

func renderPermissionsTable(permissions []rabbitmq.Permissions) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("User", "Virtual Host", "Configure", "Read", "Write")

	for _, entry := range permissions {
		_ = table.Append([]string{entry.User, entry.VirtualHost, entry.Configure, entry.Read, entry.Write})
	}

	_ = table.Render()

	return nil
}

func renderTopicPermissionsTable(permissions []rabbitmq.TopicPermission) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("User", "Virtual Host", "Exchange", "Read", "Write")

	for _, entry := range permissions {
		_ = table.Append([]string{entry.User, entry.VirtualHost, entry.Exchange, entry.Read, entry.Write})
	}

	_ = table.Render()

	return nil
}
