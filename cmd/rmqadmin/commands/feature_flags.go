package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewFeatureFlagsCommand creates the feature flags command group.
func NewFeatureFlagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "feature-flags",
		Aliases: []string{"feature-flag"},
		Short:   "Manage feature flags",
		Long:    "List and enable feature flags",
	}

	cmd.AddCommand(newFeatureFlagsListCommand())
	cmd.AddCommand(newFeatureFlagsEnableCommand())
	cmd.AddCommand(newFeatureFlagsEnableAllStableCommand())

	return cmd
}

func newFeatureFlagsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List feature flags",
		Long:  "Display all feature flags and their states",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			flags, err := client.FeatureFlags().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list feature flags: %w", err)
			}

			return renderOutput(flags, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Name", "State", "Stability", "Provided By")

				for _, flag := range flags {
					_ = table.Append([]string{
						flag.Name,
						string(flag.State),
						string(flag.Stability),
						flag.ProvidedBy,
					})
				}

				_ = table.Render()

				return nil
			})
		},
	}
}

func newFeatureFlagsEnableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "enable NAME",
		Short: "Enable a feature flag",
		Long:  "Enable a single feature flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			if err := client.FeatureFlags().Enable(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to enable feature flag '%s': %w", args[0], err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Enabled feature flag '%s'\n", args[0])

			return nil
		},
	}
}

func newFeatureFlagsEnableAllStableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "enable-all-stable",
		Short: "Enable all stable feature flags",
		Long:  "Enable every stable feature flag that is still disabled",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			if err := client.FeatureFlags().EnableAllStable(ctx); err != nil {
				return fmt.Errorf("failed to enable all stable feature flags: %w", err)
			}

			_, _ = fmt.Fprint(os.Stdout, "Enabled all stable feature flags\n")

			return nil
		},
	}
}

// NewDeprecatedFeaturesCommand creates the deprecated features command group.
func NewDeprecatedFeaturesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deprecated-features",
		Short: "Inspect deprecated features",
		Long:  "List deprecated features and those in use",
	}

	cmd.AddCommand(newDeprecatedFeaturesListCommand())
	cmd.AddCommand(newDeprecatedFeaturesListUsedCommand())

	return cmd
}

func newDeprecatedFeaturesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List deprecated features",
		Long:  "Display all deprecated features and their deprecation phases",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			features, err := client.DeprecatedFeatures().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list deprecated features: %w", err)
			}

			return renderOutput(features, func() error {
				return renderDeprecatedFeaturesTable(features)
			})
		},
	}
}

func newDeprecatedFeaturesListUsedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-used",
		Short: "List deprecated features in use",
		Long:  "Display the deprecated features that are in use in the cluster",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			features, err := client.DeprecatedFeatures().ListUsed(ctx)
			if err != nil {
				return fmt.Errorf("failed to list deprecated features in use: %w", err)
			}

			return renderOutput(features, func() error {
				return renderDeprecatedFeaturesTable(features)
			})
		},
	}
}

func renderDeprecatedFeaturesTable(features []rabbitmq.DeprecatedFeature) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Deprecation Phase", "Description")

	for _, feature := range features {
		_ = table.Append([]string{
			feature.Name,
			string(feature.DeprecationPhase),
			abbreviate(feature.Description),
		})
	}

	_ = table.Render()

	return nil
}
