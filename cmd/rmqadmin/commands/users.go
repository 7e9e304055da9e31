package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage users",
		Long:    "List, declare and delete users in the internal data store",
	}

	cmd.AddCommand(newUsersListCommand())
	cmd.AddCommand(newUsersGetCommand())
	cmd.AddCommand(newUsersWhoamiCommand())
	cmd.AddCommand(newUsersDeclareCommand())
	cmd.AddCommand(newUsersDeleteCommand())

	return cmd
}

func newUsersListCommand() *cobra.Command {
	var withoutPermissions bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Long:  "Display all users, or only those without permissions in any virtual host",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			var users []rabbitmq.User
			if withoutPermissions {
				users, err = client.Users().ListWithoutPermissions(ctx)
			} else {
				users, err = client.Users().List(ctx)
			}

			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			return renderOutput(users, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Name", "Tags", "Password Hash")

				for _, user := range users {
					_ = table.Append([]string{
						user.Name,
						formatTags(user.Tags),
						abbreviate(user.PasswordHash),
					})
				}

				_ = table.Render()

				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&withoutPermissions, "without-permissions", false, "Only list users without permissions in any virtual host")

	return cmd
}

func newUsersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Show a user",
		Long:  "Display a single user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			user, err := client.Users().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch user '%s': %w", args[0], err)
			}

			return renderOutput(user, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append([]string{"Name", user.Name})
				_ = table.Append([]string{"Tags", formatTags(user.Tags)})
				_ = table.Append([]string{"Password Hash", abbreviate(user.PasswordHash)})

				_ = table.Render()

				return nil
			})
		},
	}
}

func newUsersWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user",
		Long:  "Display the user whose credentials this client is configured with",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			user, err := client.Users().Current(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch the current user: %w", err)
			}

			return renderOutput(user, func() error {
				_, _ = fmt.Fprintf(os.Stdout, "Authenticated as '%s' (tags: %s)\n", user.Name, formatTags(user.Tags))

				return nil
			})
		},
	}
}

func newUsersDeclareCommand() *cobra.Command {
	var (
		password     string
		passwordHash string
		tags         string
	)

	cmd := &cobra.Command{
		Use:     "declare NAME",
		Aliases: []string{"create"},
		Short:   "Declare a user",
		Long:    "Declare a user with a salted password hash computed on the client side",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireName(args[0]); err != nil {
				return err
			}

			if password != "" && passwordHash != "" {
				return ErrPasswordOptionsConflict
			}

			if password == "" && passwordHash == "" {
				prompted, err := promptPassword()
				if err != nil {
					return err
				}

				password = prompted
			}

			if passwordHash == "" {
				if password == "" {
					return ErrPasswordRequired
				}

				salt, err := rabbitmq.GenerateSalt()
				if err != nil {
					return err
				}

				passwordHash = rabbitmq.Base64EncodedSaltedPasswordHashSHA256(salt, password)
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			params := &rabbitmq.UserParams{
				Name:         args[0],
				PasswordHash: passwordHash,
				Tags:         tags,
			}

			if err := client.Users().Create(ctx, params); err != nil {
				return fmt.Errorf("failed to declare user '%s': %w", args[0], err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Declared user '%s'\n", args[0])

			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "Password to hash and salt on the client side")
	cmd.Flags().StringVar(&passwordHash, "password-hash", "", "Pre-computed salted password hash")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated user tags, e.g. 'administrator'")

	return cmd
}

func newUsersDeleteCommand() *cobra.Command {
	var (
		force        bool
		idempotently bool
	)

	cmd := &cobra.Command{
		Use:   "delete NAME [NAME...]",
		Short: "Delete one or more users",
		Long:  "Delete users, in a single call when more than one name is given",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmDeletion("user(s)", strings.Join(args, "', '"), force) {
				return nil
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			if len(args) == 1 {
				if err := client.Users().Delete(ctx, args[0], idempotently); err != nil {
					return fmt.Errorf("failed to delete user '%s': %w", args[0], err)
				}

				_, _ = fmt.Fprintf(os.Stdout, "Deleted user '%s'\n", args[0])

				return nil
			}

			if err := client.Users().BulkDelete(ctx, args); err != nil {
				return fmt.Errorf("failed to delete users: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted %d users\n", len(args))

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	cmd.Flags().BoolVar(&idempotently, "idempotently", false, "Do not fail if the user is absent")

	return cmd
}
