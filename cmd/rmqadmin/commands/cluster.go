package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewClusterCommand creates the cluster command group.
func NewClusterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Manage cluster identity",
		Long:  "Inspect and change the cluster name and cluster tags",
	}

	cmd.AddCommand(newClusterNameCommand())
	cmd.AddCommand(newClusterRenameCommand())
	cmd.AddCommand(newClusterTagsCommand())
	cmd.AddCommand(newClusterServerVersionCommand())

	return cmd
}

func newClusterNameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "name",
		Short: "Show the cluster name",
		Long:  "Display the name this cluster identifies itself with",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			identity, err := client.Cluster().GetName(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch cluster name: %w", err)
			}

			return renderOutput(identity, func() error {
				_, _ = fmt.Fprintf(os.Stdout, "%s\n", identity.Name)

				return nil
			})
		},
	}
}

func newClusterRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename NEW_NAME",
		Short: "Rename the cluster",
		Long:  "Set the name this cluster identifies itself with",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := requireName(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			err = client.Cluster().SetName(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to rename cluster to '%s': %w", args[0], err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Cluster renamed to '%s'\n", args[0])

			return nil
		},
	}
}

func newClusterServerVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "server-version",
		Short: "Show the server version",
		Long:  "Display the version of the node that serves the request",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			version, err := client.Cluster().ServerVersion(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch server version: %w", err)
			}

			info := struct {
				Version string `json:"version" yaml:"version"`
			}{Version: version}

			return renderOutput(info, func() error {
				_, _ = fmt.Fprintf(os.Stdout, "%s\n", version)

				return nil
			})
		},
	}
}

func newClusterTagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage cluster tags",
		Long:  "List, set and clear the metadata tags of the cluster",
	}

	cmd.AddCommand(newClusterTagsListCommand())
	cmd.AddCommand(newClusterTagsSetCommand())
	cmd.AddCommand(newClusterTagsClearCommand())

	return cmd
}

func newClusterTagsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cluster tags",
		Long:  "Display the metadata tags of the cluster",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			tags, err := client.Cluster().GetTags(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch cluster tags: %w", err)
			}

			return renderOutput(tags, func() error {
				if len(tags) == 0 {
					_, _ = os.Stdout.WriteString("No cluster tags set\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Key", "Value")

				for _, key := range sortedKeys(tags) {
					_ = table.Append([]string{key, fmt.Sprintf("%v", tags[key])})
				}

				_ = table.Render()

				return nil
			})
		},
	}
}

func newClusterTagsSetCommand() *cobra.Command {
	var tags map[string]string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set cluster tags",
		Long:  "Replace the metadata tags of the cluster with the given set",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			tagMap := make(rabbitmq.TagMap, len(tags))
			for key, value := range tags {
				tagMap[key] = inferArgumentValue(value)
			}

			err = client.Cluster().SetTags(ctx, tagMap)
			if err != nil {
				return fmt.Errorf("failed to set cluster tags: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Set %d cluster tag(s)\n", len(tagMap))

			return nil
		},
	}

	cmd.Flags().StringToStringVar(&tags, "tag", nil, "tag to set (key=value), repeatable")
	_ = cmd.MarkFlagRequired("tag")

	return cmd
}

func newClusterTagsClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear cluster tags",
		Long:  "Remove all metadata tags from the cluster",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			err = client.Cluster().ClearTags(ctx)
			if err != nil {
				return fmt.Errorf("failed to clear cluster tags: %w", err)
			}

			_, _ = os.Stdout.WriteString("Cleared cluster tags\n")

			return nil
		},
	}
}
