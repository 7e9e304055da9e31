package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewAuthCommand creates the auth command group.
func NewAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Inspect authentication settings and statistics",
		Long:  "Inspect OAuth 2 configuration and per-node authentication attempt statistics",
	}

	cmd.AddCommand(newAuthOAuthCommand())
	cmd.AddCommand(newAuthAttemptsCommand())

	return cmd
}

func newAuthOAuthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "oauth",
		Short: "Show OAuth 2 configuration",
		Long:  "Display the OAuth 2 configuration advertised by the broker",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			config, err := client.Auth().OAuthConfiguration(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch OAuth configuration: %w", err)
			}

			return renderOutput(config, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append([]string{"OAuth Enabled", formatBool(config.OAuthEnabled)})
				_ = table.Append([]string{"Client ID", orNotAvailable(config.OAuthClientID)})
				_ = table.Append([]string{"Provider URL", orNotAvailable(config.OAuthProviderURL)})

				_ = table.Render()

				return nil
			})
		},
	}
}

func newAuthAttemptsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "attempts NODE",
		Short: "Show authentication attempt statistics",
		Long:  "Display per-protocol authentication attempt statistics of a cluster member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			stats, err := client.Auth().AuthenticationAttemptStatistics(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch authentication attempts of node '%s': %w", args[0], err)
			}

			return renderOutput(stats, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Protocol", "Attempts", "Succeeded", "Failed")

				for _, entry := range stats {
					_ = table.Append([]string{
						entry.Protocol,
						strconv.FormatUint(entry.AllAttemptCount, 10),
						strconv.FormatUint(entry.SuccessCount, 10),
						strconv.FormatUint(entry.FailureCount, 10),
					})
				}

				_ = table.Render()

				return nil
			})
		},
	}
}
